package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"novella/internal/application/commands"
)

var bookmarkCmd = &cobra.Command{
	Use:   "bookmark",
	Short: "Manage bookmarks",
	Long: `Add, list, remove and open bookmarks.

Examples:
  novella-cli bookmark add "the lighthouse keeper appears"
  novella-cli bookmark list
  novella-cli bookmark open 3f1c...
  novella-cli bookmark rm 3f1c...`,
}

var bookmarkAddCmd = &cobra.Command{
	Use:   "add [comment]",
	Short: "Bookmark the current paragraph",
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		result, err := commands.NewAddBookmarkCommand(session, strings.Join(args, " ")).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var bookmarkListCmd = &cobra.Command{
	Use:   "list",
	Short: "List bookmarks in reading order",
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		entries, err := commands.NewListBookmarksCommand(session).Execute(cmd.Context())
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("No bookmarks.")
			return nil
		}
		for _, e := range entries {
			fmt.Printf("%s  %-6s %s\n", e.ID, e.Number, e.Comment)
		}
		return nil
	},
}

var bookmarkRemoveCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"remove"},
	Short:   "Remove a bookmark",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		result, err := commands.NewRemoveBookmarkCommand(session, args[0]).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var bookmarkOpenCmd = &cobra.Command{
	Use:   "open <id>",
	Short: "Move to a bookmark",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		result, err := commands.NewGoToBookmarkCommand(session, args[0]).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		fmt.Print(commands.RenderView(result.Step.View))
		return nil
	},
}

func init() {
	bookmarkCmd.AddCommand(bookmarkAddCmd)
	bookmarkCmd.AddCommand(bookmarkListCmd)
	bookmarkCmd.AddCommand(bookmarkRemoveCmd)
	bookmarkCmd.AddCommand(bookmarkOpenCmd)
	rootCmd.AddCommand(bookmarkCmd)
}
