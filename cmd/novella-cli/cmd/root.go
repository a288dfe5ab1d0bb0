package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"novella/internal/application"
	"novella/internal/bootstrap"
	"novella/internal/config"
)

var (
	configPath  string
	novelPath   string
	profileName string
	dbPath      string
	postgresURL string
	guest       bool
	admin       bool

	rt *bootstrap.Runtime
)

var rootCmd = &cobra.Command{
	Use:   "novella-cli",
	Short: "Read a visual novel from the command line",
	Long: `novella-cli drives the novella reader one step at a time.

Progress is stored per profile, in SQLite by default or in Postgres
when a DSN is given. Every command acts on the profile selected with
--profile.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		applyFlags(cmd, cfg)

		rt, err = bootstrap.Open(cmd.Context(), cfg, config.NewLogger(os.Stderr))
		return err
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if rt == nil {
			return nil
		}
		return rt.Close()
	},
}

// applyFlags lets explicit flags win over the config file
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("novel") {
		cfg.Novel = novelPath
	}
	if flags.Changed("profile") {
		cfg.Profile = profileName
	}
	if flags.Changed("db") {
		cfg.Database = dbPath
	}
	if flags.Changed("postgres") {
		cfg.Postgres = postgresURL
	}
	if guest {
		cfg.Guest.Everyone = true
	}
	if admin {
		cfg.Admin = true
	}
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "YAML config file")
	flags.StringVarP(&novelPath, "novel", "n", config.NovelPath(), "novel file (JSON or YAML)")
	flags.StringVarP(&profileName, "profile", "p", config.ProfileName(), "reader profile")
	flags.StringVar(&dbPath, "db", config.DatabasePath(), "SQLite profile database")
	flags.StringVar(&postgresURL, "postgres", config.PostgresURL(), "Postgres DSN; stores novel and profiles in Postgres")
	flags.BoolVar(&guest, "guest", false, "read as a guest")
	flags.BoolVar(&admin, "admin", false, "ignore path requirements on episodes")
}

// openSession opens the configured profile
func openSession(ctx context.Context) (*application.Session, error) {
	lib, err := rt.Library(ctx)
	if err != nil {
		return nil, err
	}
	return lib.Session(ctx, rt.Config.Profile)
}

// settle waits out deferred transitions so a one-shot command ends on the
// paragraph the reader would see
func settle(ctx context.Context, session *application.Session, step application.StepResult) (application.StepResult, error) {
	for step.Pending != nil {
		pt := step.Pending
		select {
		case <-ctx.Done():
			return step, ctx.Err()
		case <-time.After(pt.Wait(time.Now())):
		}
		next, err := session.Commit(ctx, pt.ID)
		if err != nil {
			return step, err
		}
		step = next
	}
	return step, nil
}
