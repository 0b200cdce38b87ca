package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/braglog/brag/internal/dates"
	"github.com/braglog/brag/internal/store"
	"github.com/braglog/brag/internal/ui"
	"github.com/spf13/cobra"
)

var (
	addCategory string
	addImpact   string
	addDate     string
	addDetails  string
)

var addCmd = &cobra.Command{
	Use:   "add <text>",
	Short: "Add a new entry",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		st, err := openStore(ctx)
		if err != nil {
			fatal(err)
		}
		defer st.Close()

		date, err := dates.Parse(addDate, time.Now())
		if err != nil {
			fatal(err)
		}

		entry := store.NewEntry{
			Text:    args[0],
			Date:    date,
			Impact:  addImpact,
			Details: addDetails,
			Source:  "manual",
		}

		if addCategory != "" {
			id, err := st.CategoryIDByName(ctx, addCategory)
			if errors.Is(err, store.ErrNotFound) {
				fmt.Printf("%s Category '%s' not found, skipping\n", ui.RenderWarn("⚠"), addCategory)
			} else if err != nil {
				fatal(err)
			} else {
				entry.CategoryID = &id
			}
		}

		if _, err := st.AddEntry(ctx, entry); err != nil {
			fatal(err)
		}

		fmt.Printf("%s Entry added\n", ui.RenderPass("✓"))
	},
}

var (
	listAll   bool
	listWeek  bool
	listMonth bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List entries",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		st, err := openStore(ctx)
		if err != nil {
			fatal(err)
		}
		defer st.Close()

		// Default window is the trailing week
		filter := store.ListEntriesFilter{Period: store.PeriodWeek}
		if listAll {
			filter.Period = store.PeriodAll
		}
		if listMonth {
			filter.Period = store.PeriodMonth
		}
		if listWeek {
			filter.Period = store.PeriodWeek
		}

		entries, err := st.ListEntries(ctx, filter)
		if err != nil {
			fatal(err)
		}

		printEntryTable(entries)
	},
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a single entry",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			fatal(fmt.Errorf("invalid entry id %q", args[0]))
		}

		st, err := openStore(ctx)
		if err != nil {
			fatal(err)
		}
		defer st.Close()

		entry, err := st.GetEntry(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			fmt.Printf("%s Entry not found\n", ui.RenderWarn("⚠"))
			return
		}
		if err != nil {
			fatal(err)
		}

		fmt.Println()
		fmt.Println(ui.RenderHeader(fmt.Sprintf("Entry #%d (%s)", entry.ID, entry.Date)))
		printField("Text", entry.Text)
		printField("Category", entry.Category)
		printField("Impact", entry.Impact)
		printField("Details", entry.Details)
		printField("Source ID", entry.SourceID)
		printField("Source URL", entry.SourceURL)
	},
}

var (
	editText      string
	editCategory  string
	editImpact    string
	editDate      string
	editDetails   string
	editSource    string
	editSourceID  string
	editSourceURL string
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit an entry by id",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			fatal(fmt.Errorf("invalid entry id %q", args[0]))
		}

		st, err := openStore(ctx)
		if err != nil {
			fatal(err)
		}
		defer st.Close()

		var patch store.EntryPatch

		if cmd.Flags().Changed("text") {
			patch.Text = &editText
		}
		if cmd.Flags().Changed("impact") {
			patch.Impact = &editImpact
		}
		if cmd.Flags().Changed("details") {
			patch.Details = &editDetails
		}
		if cmd.Flags().Changed("source") {
			patch.Source = &editSource
		}
		if cmd.Flags().Changed("source-id") {
			patch.SourceID = &editSourceID
		}
		if cmd.Flags().Changed("source-url") {
			patch.SourceURL = &editSourceURL
		}
		if cmd.Flags().Changed("date") {
			date, err := dates.Parse(editDate, time.Now())
			if err != nil {
				fatal(err)
			}
			patch.Date = &date
		}
		if cmd.Flags().Changed("category") {
			categoryID, err := st.CategoryIDByName(ctx, editCategory)
			if errors.Is(err, store.ErrNotFound) {
				fmt.Fprintf(os.Stderr, "%s Error: Category '%s' not found\n", ui.RenderError("✗"), editCategory)
				os.Exit(1)
			}
			if err != nil {
				fatal(err)
			}
			patch.CategoryID = &categoryID
		}

		err = st.UpdateEntry(ctx, id, patch)
		if errors.Is(err, store.ErrNotFound) {
			fmt.Fprintf(os.Stderr, "%s Error: Entry with id %d not found\n", ui.RenderError("✗"), id)
			return
		}
		if err != nil {
			fatal(err)
		}

		fmt.Printf("%s Entry %d updated\n", ui.RenderPass("✓"), id)
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete an entry",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		st, err := openStore(ctx)
		if err != nil {
			fatal(err)
		}
		defer st.Close()

		var entry *store.Entry

		if len(args) == 1 {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				fatal(fmt.Errorf("invalid entry id %q", args[0]))
			}
			entry, err = st.GetEntry(ctx, id)
			if errors.Is(err, store.ErrNotFound) {
				fmt.Fprintf(os.Stderr, "%s Error: Entry with id %d not found\n", ui.RenderError("✗"), id)
				os.Exit(1)
			}
			if err != nil {
				fatal(err)
			}
		} else {
			entries, err := st.ListEntries(ctx, store.ListEntriesFilter{})
			if err != nil {
				fatal(err)
			}
			if len(entries) == 0 {
				fmt.Printf("%s No entries found\n", ui.RenderWarn("⚠"))
				return
			}

			prompter, err := ui.NewPrompter()
			if err != nil {
				fatal(err)
			}
			entry, err = chooseEntry(prompter, entries)
			if err != nil {
				fatal(err)
			}
		}

		prompter, err := ui.NewPrompter()
		if err != nil {
			fatal(err)
		}
		confirmed, err := prompter.Confirm(
			fmt.Sprintf("Are you sure you want to delete: %q?", ui.Truncate(entry.Text, 50)), false)
		if err != nil {
			fatal(err)
		}
		if !confirmed {
			fmt.Printf("%s Cancelled\n", ui.RenderWarn("⚠"))
			return
		}

		if err := st.DeleteEntry(ctx, entry.ID); err != nil {
			fatal(err)
		}

		fmt.Printf("%s Entry deleted\n", ui.RenderPass("✓"))
	},
}

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Filter entries by category",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		st, err := openStore(ctx)
		if err != nil {
			fatal(err)
		}
		defer st.Close()

		categories, err := st.ListCategories(ctx)
		if err != nil {
			fatal(err)
		}
		if len(categories) == 0 {
			fmt.Printf("%s No categories found, add one first\n", ui.RenderWarn("⚠"))
			return
		}

		prompter, err := ui.NewPrompter()
		if err != nil {
			fatal(err)
		}

		categoryID, err := chooseCategory(prompter, "Select a category to filter by:", categories)
		if err != nil {
			fatal(err)
		}

		entries, err := st.ListEntries(ctx, store.ListEntriesFilter{CategoryID: &categoryID})
		if err != nil {
			fatal(err)
		}
		if len(entries) == 0 {
			fmt.Printf("%s No entries found under this category\n", ui.RenderWarn("⚠"))
			return
		}

		printEntryTable(entries)
	},
}

func printEntryTable(entries []*store.Entry) {
	if len(entries) == 0 {
		fmt.Printf("%s No entries found\n", ui.RenderWarn("⚠"))
		return
	}

	fmt.Printf("%-5s %-12s %-50s %-15s %-8s\n", "ID", "Date", "Text", "Category", "Impact")
	for _, e := range entries {
		category := e.Category
		if category == "" {
			category = "-"
		}
		impact := e.Impact
		if impact == "" {
			impact = "-"
		}
		fmt.Printf("%-5d %-12s %-50s %-15s %-8s\n",
			e.ID, e.Date, ui.Truncate(e.Text, 50), ui.Truncate(category, 15), impact)
	}
	fmt.Println(ui.RenderMuted(fmt.Sprintf("\nTotal: %d entries", len(entries))))
}

func printField(label, value string) {
	if value == "" {
		value = "None"
	}
	fmt.Printf("%s %s\n", ui.RenderAccent(fmt.Sprintf("%-10s:", label)), value)
}

func init() {
	addCmd.Flags().StringVarP(&addCategory, "category", "c", "", "category name")
	addCmd.Flags().StringVarP(&addImpact, "impact", "i", "", "impact level (low/medium/high)")
	addCmd.Flags().StringVarP(&addDate, "date", "d", "", "date (defaults to today; YYYY-MM-DD or e.g. \"yesterday\")")
	addCmd.Flags().StringVar(&addDetails, "details", "", "free-form details")

	listCmd.Flags().BoolVarP(&listAll, "all", "a", false, "show all entries")
	listCmd.Flags().BoolVarP(&listWeek, "week", "w", false, "this week")
	listCmd.Flags().BoolVarP(&listMonth, "month", "m", false, "this month")

	editCmd.Flags().StringVarP(&editText, "text", "n", "", "edit text")
	editCmd.Flags().StringVarP(&editImpact, "impact", "m", "", "edit impact level (low/medium/high)")
	editCmd.Flags().StringVarP(&editCategory, "category", "c", "", "edit category")
	editCmd.Flags().StringVarP(&editDate, "date", "d", "", "edit date")
	editCmd.Flags().StringVar(&editDetails, "details", "", "edit details")
	editCmd.Flags().StringVarP(&editSource, "source", "s", "", "edit source")
	editCmd.Flags().StringVarP(&editSourceID, "source-id", "i", "", "edit source id")
	editCmd.Flags().StringVarP(&editSourceURL, "source-url", "u", "", "edit source url")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(filterCmd)
}
