package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/braglog/brag/internal/ui"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage config values",
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value (e.g. jira.url, jira.email, jira.token)",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		st, err := openStore(ctx)
		if err != nil {
			fatal(err)
		}
		defer st.Close()

		if err := st.SetConfig(ctx, args[0], args[1]); err != nil {
			fatal(err)
		}

		fmt.Printf("%s Config '%s' set\n", ui.RenderPass("✓"), args[0])
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a config value",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		st, err := openStore(ctx)
		if err != nil {
			fatal(err)
		}
		defer st.Close()

		value, ok, err := st.GetConfig(ctx, args[0])
		if err != nil {
			fatal(err)
		}
		if !ok {
			fmt.Printf("%s Config '%s' not found\n", ui.RenderWarn("⚠"), args[0])
			return
		}

		fmt.Printf("%s: %s\n", ui.RenderAccent(args[0]), value)
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all config values",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		st, err := openStore(ctx)
		if err != nil {
			fatal(err)
		}
		defer st.Close()

		values, err := st.ListConfig(ctx)
		if err != nil {
			fatal(err)
		}
		if len(values) == 0 {
			fmt.Printf("%s No config values set\n", ui.RenderWarn("⚠"))
			return
		}

		fmt.Println(ui.RenderHeader("\nConfiguration:"))
		for _, v := range values {
			fmt.Printf("  %-20s %s\n", ui.RenderAccent(v.Key), maskSecret(v.Key, v.Value))
		}
		fmt.Println(ui.RenderMuted(fmt.Sprintf("\nTotal: %d config values\n", len(values))))
	},
}

// maskSecret hides token/password values, keeping the last four
// characters for recognition.
func maskSecret(key, value string) string {
	if !strings.Contains(key, "token") && !strings.Contains(key, "password") {
		return value
	}
	if len(value) <= 4 {
		return "***"
	}
	return "***" + value[len(value)-4:]
}

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configListCmd)
	rootCmd.AddCommand(configCmd)
}
