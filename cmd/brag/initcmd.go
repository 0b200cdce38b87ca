package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/braglog/brag/internal/sync"
	"github.com/braglog/brag/internal/ui"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize brag configuration",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		fmt.Println(ui.RenderHeader("\nWelcome to brag!\n"))
		fmt.Println("A CLI tool to track your work accomplishments.")

		path, err := dbPath()
		if err != nil {
			fatal(err)
		}

		prompter, err := ui.NewPrompter()
		if err != nil {
			fatal(err)
		}

		if _, err := os.Stat(path); err == nil {
			fmt.Printf("\n%s brag is already initialized at:\n", ui.RenderWarn("⚠"))
			fmt.Println(ui.RenderMuted(path))

			again, err := prompter.Confirm("Do you want to reconfigure?", false)
			if err != nil {
				fatal(err)
			}
			if !again {
				fmt.Println(ui.RenderMuted("\nCancelled. Your existing setup is unchanged."))
				return
			}
		}

		st, err := openStore(ctx)
		if err != nil {
			fatal(err)
		}
		defer st.Close()

		fmt.Printf("%s Database initialized at %s\n", ui.RenderPass("✓"), path)

		fmt.Println(ui.RenderHeader("\nJira Integration (optional)\n"))

		setupJira, err := prompter.Confirm("Do you want to configure Jira integration?", false)
		if err != nil {
			fatal(err)
		}

		if setupJira {
			url, err := prompter.Text("Jira URL (e.g. https://company.atlassian.net):", "")
			if err != nil {
				fatal(err)
			}
			if !strings.HasPrefix(url, "http") {
				fatal(fmt.Errorf("URL must start with http:// or https://"))
			}

			email, err := prompter.Text("Jira email:", "")
			if err != nil {
				fatal(err)
			}
			if !strings.Contains(email, "@") {
				fatal(fmt.Errorf("please enter a valid email"))
			}

			fmt.Println(ui.RenderMuted("\nTo generate a Jira API token:"))
			fmt.Println(ui.RenderMuted("1. Go to https://id.atlassian.com/manage-profile/security/api-tokens"))
			fmt.Println(ui.RenderMuted("2. Click 'Create API token'"))
			fmt.Println(ui.RenderMuted("3. Copy the token\n"))

			token, err := prompter.Secret("Jira API token:")
			if err != nil {
				fatal(err)
			}

			for key, value := range map[string]string{
				sync.KeyJiraURL:   url,
				sync.KeyJiraEmail: email,
				sync.KeyJiraToken: token,
			} {
				if err := st.SetConfig(ctx, key, value); err != nil {
					fatal(err)
				}
			}

			fmt.Printf("\n%s Jira configuration saved\n", ui.RenderPass("✓"))
		}

		fmt.Printf("\n%s Setup complete!\n\n", ui.RenderPass("✓"))
		fmt.Println(ui.RenderAccent("Next steps:"))
		fmt.Printf("  brag add 'your first entry'  %s\n", ui.RenderMuted("- Add an accomplishment"))
		fmt.Printf("  brag list                    %s\n", ui.RenderMuted("- View your entries"))
		fmt.Printf("  brag category list           %s\n", ui.RenderMuted("- See available categories"))
		if setupJira {
			fmt.Printf("  brag jira sync               %s\n", ui.RenderMuted("- Fetch Jira tickets"))
		}
		fmt.Printf("  brag --help                  %s\n", ui.RenderMuted("- See all commands"))
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
