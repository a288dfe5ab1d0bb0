package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"novella/internal/application/commands"
)

var resetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Start the profile over from the first paragraph",
	Long: `Reset clears progress, items, paths and bookmarks for the profile.

Examples:
  novella-cli reset --yes
  novella-cli -p ada reset --yes`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !resetYes {
			return errors.New("reset erases all progress; pass --yes to confirm")
		}
		session, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		result, err := commands.NewResetProfileCommand(session).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List stored profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		names, err := rt.Profiles.List(cmd.Context())
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	},
}

var profilesDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a stored profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := rt.Profiles.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted profile %s\n", args[0])
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "confirm the reset")
	profilesCmd.AddCommand(profilesDeleteCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(profilesCmd)
}
