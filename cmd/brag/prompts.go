package main

import (
	"fmt"
	"strconv"

	"github.com/braglog/brag/internal/importer"
	"github.com/braglog/brag/internal/store"
	"github.com/braglog/brag/internal/ui"
)

// chooseCategory asks the operator to pick one category and returns
// its id.
func chooseCategory(prompter ui.Prompter, message string, categories []store.Category) (int64, error) {
	options := make([]importer.Option, 0, len(categories))
	byName := make(map[string]int64, len(categories))
	for _, c := range categories {
		options = append(options, importer.Option{Label: c.Name, Value: c.Name})
		byName[c.Name] = c.ID
	}

	choice, err := prompter.Choose(message, options)
	if err != nil {
		return 0, err
	}
	return byName[choice], nil
}

// chooseEntry asks the operator to pick one entry from the list.
func chooseEntry(prompter ui.Prompter, entries []*store.Entry) (*store.Entry, error) {
	options := make([]importer.Option, 0, len(entries))
	byID := make(map[string]*store.Entry, len(entries))
	for _, e := range entries {
		value := strconv.FormatInt(e.ID, 10)
		options = append(options, importer.Option{
			Label: fmt.Sprintf("%s - %s", e.Date, ui.Truncate(e.Text, 50)),
			Value: value,
		})
		byID[value] = e
	}

	choice, err := prompter.Choose("Select an entry to delete:", options)
	if err != nil {
		return nil, err
	}
	return byID[choice], nil
}
