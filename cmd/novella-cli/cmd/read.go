package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"novella/internal/application/commands"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current paragraph",
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		result, err := commands.NewStatusCommand(session).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Print(result.Message)
		return nil
	},
}

func navigateCmd(use, short string, direction commands.Direction) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			session, err := openSession(ctx)
			if err != nil {
				return err
			}
			result, err := commands.NewNavigateCommand(session, direction).Execute(ctx)
			if err != nil {
				return err
			}
			fmt.Println(result.Message)

			if result.Step.Pending != nil {
				step, err := settle(ctx, session, result.Step)
				if err != nil {
					return err
				}
				fmt.Println(commands.DescribeStep(session.Novel(), step))
			}
			fmt.Print(commands.RenderView(session.View()))
			return nil
		},
	}
}

var subCmd = &cobra.Command{
	Use:   "sub",
	Short: "Step through the beats of the current paragraph",
}

var chooseCmd = &cobra.Command{
	Use:   "choose <option-id>",
	Short: "Pick an option of the current choice",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		session, err := openSession(ctx)
		if err != nil {
			return err
		}
		result, err := commands.NewChooseCommand(session, args[0]).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		if _, err := settle(ctx, session, result.Step); err != nil {
			return err
		}
		fmt.Print(commands.RenderView(session.View()))
		return nil
	},
}

var jumpCmd = &cobra.Command{
	Use:   "jump <episode-id>",
	Short: "Start reading an episode from its first paragraph",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		result, err := commands.NewJumpToEpisodeCommand(session, args[0]).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		fmt.Print(commands.RenderView(result.Step.View))
		return nil
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the paragraphs you have unlocked",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		results, err := commands.NewSearchCommand(session, args[0]).Execute(cmd.Context())
		if err != nil {
			return err
		}
		if len(results) == 0 {
			fmt.Println("No results found.")
			return nil
		}
		for _, r := range results {
			fmt.Printf("%-6s %-20s %s\n", r.Number, r.EpisodeTitle, r.MatchedText)
		}
		return nil
	},
}

func init() {
	subCmd.AddCommand(navigateCmd("next", "Reveal the next beat", commands.DirectionSubNext))
	subCmd.AddCommand(navigateCmd("prev", "Hide the last beat", commands.DirectionSubPrevious))

	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(navigateCmd("next", "Advance to the next paragraph", commands.DirectionNext))
	rootCmd.AddCommand(navigateCmd("prev", "Step back within the episode", commands.DirectionPrevious))
	rootCmd.AddCommand(navigateCmd("tap", "Reveal the next beat or advance", commands.DirectionTap))
	rootCmd.AddCommand(subCmd)
	rootCmd.AddCommand(chooseCmd)
	rootCmd.AddCommand(jumpCmd)
	rootCmd.AddCommand(searchCmd)
}
