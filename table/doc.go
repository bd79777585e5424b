// Package table provides a Bubble Tea component that renders and drives a
// grid.Grid.
//
// The package is responsible for key and mouse handling, hotkey
// resolution, cell layout, the inline cell editor and system clipboard
// integration. Row values are only ever read through the host's Viewer.
package table
