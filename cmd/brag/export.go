package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/braglog/brag/internal/store"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var exportFormat string

// exportedEntry is the stable export shape; internal ids are carried
// so exports can be cross-referenced with the database.
type exportedEntry struct {
	ID        int64  `json:"id" yaml:"id"`
	Text      string `json:"text" yaml:"text"`
	Date      string `json:"date" yaml:"date"`
	Category  string `json:"category,omitempty" yaml:"category,omitempty"`
	Impact    string `json:"impact,omitempty" yaml:"impact,omitempty"`
	Details   string `json:"details,omitempty" yaml:"details,omitempty"`
	SourceID  string `json:"source_id,omitempty" yaml:"source_id,omitempty"`
	SourceURL string `json:"source_url,omitempty" yaml:"source_url,omitempty"`
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all entries as JSON or YAML",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		st, err := openStore(ctx)
		if err != nil {
			fatal(err)
		}
		defer st.Close()

		entries, err := st.ListEntries(ctx, store.ListEntriesFilter{Period: store.PeriodAll})
		if err != nil {
			fatal(err)
		}

		exported := make([]exportedEntry, 0, len(entries))
		for _, e := range entries {
			exported = append(exported, exportedEntry{
				ID:        e.ID,
				Text:      e.Text,
				Date:      e.Date,
				Category:  e.Category,
				Impact:    e.Impact,
				Details:   e.Details,
				SourceID:  e.SourceID,
				SourceURL: e.SourceURL,
			})
		}

		switch exportFormat {
		case "json":
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(exported); err != nil {
				fatal(fmt.Errorf("failed to encode entries: %w", err))
			}
		case "yaml":
			if err := yaml.NewEncoder(os.Stdout).Encode(exported); err != nil {
				fatal(fmt.Errorf("failed to encode entries: %w", err))
			}
		default:
			fatal(fmt.Errorf("unknown format %q (use json or yaml)", exportFormat))
		}
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "output format (json or yaml)")
	rootCmd.AddCommand(exportCmd)
}
