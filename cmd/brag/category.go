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

var categoryCmd = &cobra.Command{
	Use:   "category",
	Short: "Manage categories",
}

var categoryAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a new category",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		st, err := openStore(ctx)
		if err != nil {
			fatal(err)
		}
		defer st.Close()

		_, err = st.AddCategory(ctx, args[0])
		if errors.Is(err, store.ErrCategoryExists) {
			fmt.Fprintf(os.Stderr, "%s Error: Category '%s' already exists\n", ui.RenderError("✗"), args[0])
			os.Exit(1)
		}
		if err != nil {
			fatal(err)
		}

		fmt.Printf("%s Category '%s' added\n", ui.RenderPass("✓"), args[0])
	},
}

var categoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all categories",
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

		fmt.Println(ui.RenderHeader("\nCategories:"))
		for _, c := range categories {
			fmt.Printf("  • %s\n", c.Name)
		}
		fmt.Println(ui.RenderMuted(fmt.Sprintf("\nTotal: %d categories\n", len(categories))))
	},
}

var categoryRenameCmd = &cobra.Command{
	Use:   "rename",
	Short: "Rename a category",
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

		categoryID, err := chooseCategory(prompter, "Select a category to rename:", categories)
		if err != nil {
			fatal(err)
		}

		newName, err := prompter.Text("Enter new category name:", "")
		if err != nil {
			fatal(err)
		}

		if err := st.RenameCategory(ctx, categoryID, newName); err != nil {
			fatal(err)
		}

		fmt.Printf("%s Category updated to '%s'\n", ui.RenderPass("✓"), newName)
	},
}

var categoryDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a category",
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

		categoryID, err := chooseCategory(prompter, "Select a category to delete:", categories)
		if err != nil {
			fatal(err)
		}

		confirmed, err := prompter.Confirm("Are you sure you want to delete this category?", false)
		if err != nil {
			fatal(err)
		}
		if !confirmed {
			fmt.Printf("%s Cancelled\n", ui.RenderWarn("⚠"))
			return
		}

		err = st.DeleteCategory(ctx, categoryID)
		if errors.Is(err, store.ErrCategoryInUse) {
			fmt.Fprintf(os.Stderr, "%s Error: Cannot delete - %v\n", ui.RenderError("✗"), err)
			os.Exit(1)
		}
		if err != nil {
			fatal(err)
		}

		fmt.Printf("%s Category deleted\n", ui.RenderPass("✓"))
	},
}

func init() {
	categoryCmd.AddCommand(categoryAddCmd)
	categoryCmd.AddCommand(categoryListCmd)
	categoryCmd.AddCommand(categoryRenameCmd)
	categoryCmd.AddCommand(categoryDeleteCmd)
	rootCmd.AddCommand(categoryCmd)
}
