package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/braglog/brag/internal/store"
	"github.com/braglog/brag/internal/ui"
	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the Jira ticket cache",
}

var cacheListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all cached tickets",
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

var cacheClearCmd = &cobra.Command{
	Use:   "clear <ticket-key>",
	Short: "Clear a specific cached ticket",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		st, err := openStore(ctx)
		if err != nil {
			fatal(err)
		}
		defer st.Close()

		err = st.DeleteTicket(ctx, args[0])
		if errors.Is(err, store.ErrNotFound) {
			fmt.Fprintf(os.Stderr, "%s Error: Ticket %s not found in cache\n", ui.RenderError("✗"), args[0])
			os.Exit(1)
		}
		if err != nil {
			fatal(err)
		}

		fmt.Printf("%s Removed %s from cache\n", ui.RenderPass("✓"), args[0])
	},
}

var cacheClearAllCmd = &cobra.Command{
	Use:   "clear-all",
	Short: "Clear all cached tickets",
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
			fmt.Printf("%s Cache is already empty\n", ui.RenderWarn("⚠"))
			return
		}

		prompter, err := ui.NewPrompter()
		if err != nil {
			fatal(err)
		}

		confirmed, err := prompter.Confirm(
			fmt.Sprintf("Are you sure you want to clear all %d cached tickets?", count), false)
		if err != nil {
			fatal(err)
		}
		if !confirmed {
			fmt.Printf("%s Cancelled\n", ui.RenderWarn("⚠"))
			return
		}

		cleared, err := st.ClearTickets(ctx)
		if err != nil {
			fatal(err)
		}

		fmt.Printf("%s Cleared %d cached tickets\n", ui.RenderPass("✓"), cleared)
	},
}

func init() {
	cacheCmd.AddCommand(cacheListCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheClearAllCmd)
	rootCmd.AddCommand(cacheCmd)
}
