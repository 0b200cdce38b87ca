package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/braglog/brag/internal/importer"
	"github.com/braglog/brag/internal/store"
	"github.com/braglog/brag/internal/sync"
	"github.com/braglog/brag/internal/ui"
	"github.com/spf13/cobra"
)

var jiraCmd = &cobra.Command{
	Use:   "jira",
	Short: "Jira integration commands",
	Long: `Sync recently closed Jira tickets into a local cache and import
them as entries one at a time.

Requires jira.url, jira.email, and jira.token in config
(run 'brag init' or 'brag config set').`,
}

var jiraSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Fetch recent closed tickets from Jira",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		st, err := openStore(ctx)
		if err != nil {
			fatal(err)
		}
		defer st.Close()

		fmt.Println("Syncing Jira tickets...")

		count, err := sync.New(st, nil).Sync(ctx)
		if err != nil {
			fatal(err)
		}

		fmt.Printf("%s Cached %d Jira tickets\n", ui.RenderPass("✓"), count)
	},
}

var jiraListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show cached Jira tickets",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		st, err := openStore(ctx)
		if err != nil {
			fatal(err)
		}
		defer st.Close()

		printTicketTable(ctx, st)
	},
}

var jiraImportCmd = &cobra.Command{
	Use:   "import <ticket-key>",
	Short: "Import a Jira ticket as an entry",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		st, err := openStore(ctx)
		if err != nil {
			fatal(err)
		}
		defer st.Close()

		prompter, err := ui.NewPrompter()
		if err != nil {
			fatal(err)
		}

		_, err = importer.New(st, prompter, nil, nil).ImportOne(ctx, args[0])
		if errors.Is(err, importer.ErrNotInCache) {
			fmt.Fprintf(os.Stderr, "%s Error: Ticket %s not found in cache\n", ui.RenderError("✗"), args[0])
			fmt.Println(ui.RenderMuted("Run 'brag jira sync' first"))
			os.Exit(1)
		}
		if errors.Is(err, store.ErrAlreadyImported) {
			fmt.Printf("%s Ticket %s already imported\n", ui.RenderWarn("⚠"), args[0])
			return
		}
		if err != nil {
			fatal(err)
		}

		fmt.Printf("%s Imported %s as entry\n", ui.RenderPass("✓"), args[0])
	},
}

var jiraImportAllCmd = &cobra.Command{
	Use:   "import-all",
	Short: "Import all cached Jira tickets one by one",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		st, err := openStore(ctx)
		if err != nil {
			fatal(err)
		}
		defer st.Close()

		count, err := st.TicketCount(ctx)
		if err != nil {
			fatal(err)
		}
		if count == 0 {
			fmt.Printf("%s No cached Jira tickets. Run 'brag jira sync' first.\n", ui.RenderWarn("⚠"))
			return
		}

		fmt.Printf("%s Found %d tickets to import\n", ui.RenderAccent("→"), count)

		prompter, err := ui.NewPrompter()
		if err != nil {
			fatal(err)
		}

		result, err := importer.New(st, prompter, nil, nil).ImportAll(ctx)
		if err != nil {
			fatal(err)
		}

		if result.Quit {
			fmt.Printf("\n%s Stopped importing (%d imported, %d skipped)\n",
				ui.RenderWarn("⚠"), result.Imported, result.Skipped)
			return
		}

		fmt.Printf("\n%s Finished importing all tickets (%d imported, %d skipped)\n",
			ui.RenderPass("✓"), result.Imported, result.Skipped)
	},
}

func printTicketTable(ctx context.Context, st *store.Store) {
	tickets, err := st.ListTickets(ctx)
	if err != nil {
		fatal(err)
	}
	if len(tickets) == 0 {
		fmt.Printf("%s No cached Jira tickets. Run 'brag jira sync' first.\n", ui.RenderWarn("⚠"))
		return
	}

	fmt.Printf("%-15s %-57s %-12s\n", "Key", "Summary", "Resolved")
	for _, t := range tickets {
		resolved := t.ResolvedDate()
		if resolved == "" {
			resolved = "-"
		}
		fmt.Printf("%-15s %-57s %-12s\n",
			ui.RenderAccent(t.TicketKey), ui.Truncate(t.Summary, 57), resolved)
	}
	fmt.Println(ui.RenderMuted(fmt.Sprintf("\nTotal: %d cached tickets", len(tickets))))
}

func init() {
	jiraCmd.AddCommand(jiraSyncCmd)
	jiraCmd.AddCommand(jiraListCmd)
	jiraCmd.AddCommand(jiraImportCmd)
	jiraCmd.AddCommand(jiraImportAllCmd)
	rootCmd.AddCommand(jiraCmd)
}
