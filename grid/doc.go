// Package grid provides the state engine behind an interactive data grid.
//
// A Grid owns an in-memory row store and projects it through a filter, a
// multi-key sort and an ordered set of visible columns. On top of that
// projection it keeps either a set of rectangular selections or a single
// edit session, records mutations as undoable commands, and moves cells
// through an internal clipboard and escaped tab-separated text.
//
// The grid never looks inside rows. Everything it needs to know about the
// row type is supplied by a RowViewer and its optional capabilities.
package grid
