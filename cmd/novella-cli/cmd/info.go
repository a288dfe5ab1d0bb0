package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"novella/internal/application/commands"
)

var episodesCmd = &cobra.Command{
	Use:   "episodes",
	Short: "List episodes with progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		episodes, err := commands.NewListEpisodesCommand(session, rt.Config.Admin).Execute(cmd.Context())
		if err != nil {
			return err
		}
		for _, ep := range episodes {
			var flags []string
			if ep.Current {
				flags = append(flags, "current")
			}
			if !ep.Accessible {
				flags = append(flags, "locked")
			}
			if ep.GuestLocked {
				flags = append(flags, "members only")
			}
			line := fmt.Sprintf("%2d  %-12s %-24s %d/%d read  ~%d min", ep.Number, ep.ID, ep.Title, ep.Read, ep.Total, ep.Minutes)
			if len(flags) > 0 {
				line += "  [" + strings.Join(flags, ", ") + "]"
			}
			fmt.Println(line)
		}
		return nil
	},
}

var inventoryCmd = &cobra.Command{
	Use:   "inventory",
	Short: "Show items, met characters and active paths",
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		inv, err := commands.NewInventoryCommand(session).Execute(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Println("Collectibles:")
		for _, item := range inv.Collectibles {
			fmt.Printf("  %s  %s\n", item.Name, item.Description)
		}
		fmt.Println("Story items:")
		for _, item := range inv.StoryItems {
			fmt.Printf("  %s  %s\n", item.Name, item.Description)
		}
		fmt.Println("Characters:")
		for _, c := range inv.MetCharacters {
			if c.Comment != "" {
				fmt.Printf("  %s  %s  (%s)\n", c.ID, c.Name, c.Comment)
			} else {
				fmt.Printf("  %s  %s\n", c.ID, c.Name)
			}
		}
		if inv.PathNames != "" {
			fmt.Printf("Paths: %s\n", inv.PathNames)
		}
		return nil
	},
}

var characterCmd = &cobra.Command{
	Use:   "character",
	Short: "Manage met characters",
}

var characterNoteCmd = &cobra.Command{
	Use:   "note <character-id> [comment]",
	Short: "Keep a note on a met character (no comment clears it)",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := openSession(cmd.Context())
		if err != nil {
			return err
		}

		comment := ""
		if len(args) == 2 {
			comment = args[1]
		}
		result, err := commands.NewAnnotateCharacterCommand(session, args[0], comment).Execute(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(episodesCmd)
	rootCmd.AddCommand(inventoryCmd)

	characterCmd.AddCommand(characterNoteCmd)
	rootCmd.AddCommand(characterCmd)
}
