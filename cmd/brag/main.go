// Command brag is a personal accomplishment ledger with Jira import.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/braglog/brag/internal/logging"
	"github.com/braglog/brag/internal/store"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "brag",
	Short: "Track your work accomplishments",
	Long: `brag keeps a local ledger of your work accomplishments.

Entries live in a SQLite database under ~/.config/brag. Closed Jira
tickets can be synced into a local cache and promoted to entries one
at a time.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "database path (default ~/.config/brag/brag.db, env BRAG_DB)")
	_ = viper.BindPFlag("db", rootCmd.PersistentFlags().Lookup("db"))
	viper.SetEnvPrefix("BRAG")
	_ = viper.BindEnv("db")
}

// dbPath resolves the database location from the --db flag, BRAG_DB,
// or the per-user default.
func dbPath() (string, error) {
	if path := viper.GetString("db"); path != "" {
		return path, nil
	}
	return store.DefaultPath()
}

// openStore opens the database and applies the schema. The caller
// must Close the returned store.
func openStore(ctx context.Context) (*store.Store, error) {
	path, err := dbPath()
	if err != nil {
		return nil, err
	}

	st, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := st.InitSchema(ctx); err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	logging.SetFile(logging.DefaultFile(path))
	return st, nil
}

// fatal prints an error and exits, matching the style used across
// commands.
func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
