package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

type item struct {
	Name  string  `yaml:"name"`
	Qty   int     `yaml:"qty"`
	Price float64 `yaml:"price"`
	Note  string  `yaml:"note,omitempty"`
}

type itemsFile struct {
	Items []item `yaml:"items"`
}

func sampleItems() []item {
	return []item{
		{Name: "Äpfel", Qty: 12, Price: 0.45},
		{Name: "apricots", Qty: 40, Price: 0.30, Note: "ripe"},
		{Name: "Bananen", Qty: 6, Price: 0.25},
		{Name: "cherries", Qty: 200, Price: 0.05, Note: "per piece\nsour"},
		{Name: "Zitronen", Qty: 9, Price: 0.60},
		{Name: "ölive", Qty: 75, Price: 0.12},
	}
}

// loadItems reads the rows file. Without a path, or when the file does not
// exist yet, it returns the built-in sample.
func loadItems(path string) ([]item, error) {
	if path == "" {
		return sampleItems(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return sampleItems(), nil
		}
		return nil, fmt.Errorf("reading data file %s: %w", path, err)
	}

	var f itemsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing data file %s: %w", path, err)
	}
	return f.Items, nil
}

func saveItems(path string, items []item) error {
	data, err := yaml.Marshal(itemsFile{Items: items})
	if err != nil {
		return fmt.Errorf("encoding items: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing data file %s: %w", path, err)
	}
	return nil
}
