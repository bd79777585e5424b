package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/iw2rmb/tabula/grid"
	"github.com/iw2rmb/tabula/table"
)

type gridConfig struct {
	HistoryLimit      int `toml:"history_limit"`
	ResortDelayFrames int `toml:"resort_delay_frames"`
}

type tableConfig struct {
	ColumnWidth     int  `toml:"column_width"`
	MaxRowHeight    int  `toml:"max_row_height"`
	RowNumbers      bool `toml:"row_numbers"`
	SingleClickEdit bool `toml:"single_click_edit"`
}

type demoConfig struct {
	// Data is the YAML rows file. Relative paths resolve against the
	// config file's directory.
	Data   string `toml:"data"`
	Locale string `toml:"locale"`

	Grid  gridConfig  `toml:"grid"`
	Table tableConfig `toml:"table"`
}

func defaultConfig() demoConfig {
	return demoConfig{
		Locale: "en",
		Table:  tableConfig{RowNumbers: true},
	}
}

// loadConfig reads path over the defaults. A missing file is not an error.
func loadConfig(path string) (demoConfig, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	if cfg.Data != "" && !filepath.IsAbs(cfg.Data) {
		cfg.Data = filepath.Join(filepath.Dir(path), cfg.Data)
	}
	return cfg, nil
}

func (c demoConfig) tableConfig() table.Config {
	return table.Config{
		Options: grid.Options{
			HistoryLimit:      c.Grid.HistoryLimit,
			ResortDelayFrames: c.Grid.ResortDelayFrames,
		},
		Style:           table.DefaultStyle(),
		ShowRowNumbers:  c.Table.RowNumbers,
		ColumnWidth:     c.Table.ColumnWidth,
		MaxRowHeight:    c.Table.MaxRowHeight,
		SingleClickEdit: c.Table.SingleClickEdit,
	}
}
