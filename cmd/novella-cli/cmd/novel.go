package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"novella/internal/adapters/editor"
	"novella/internal/application/commands"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the novel file for broken references",
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewValidateNovelCommand(rt.File).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the novel file in $EDITOR",
	RunE: func(cmd *cobra.Command, args []string) error {
		return editor.NewOpener().OpenFile(rt.File.Path())
	},
}

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Copy the novel file into Postgres",
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := rt.Publish(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("Published %s (%d episodes)\n", n.Title, len(n.Episodes))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(publishCmd)
}
