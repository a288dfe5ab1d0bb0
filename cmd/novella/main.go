package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"novella/internal/adapters/editor"
	"novella/internal/adapters/filesystem"
	"novella/internal/adapters/tui"
	"novella/internal/adapters/tui/views"
	"novella/internal/bootstrap"
	"novella/internal/config"
	"novella/internal/domain"
)

func main() {
	configFlag := flag.String("config", "", "YAML config file")
	novelFlag := flag.String("novel", "", "novel file (overrides config)")
	profileFlag := flag.String("profile", "", "reader profile (overrides config)")
	guestFlag := flag.Bool("guest", false, "read as a guest")
	logFlag := flag.String("log", os.Getenv("NOVELLA_TUI_LOG"), "log file; the screen belongs to the reader")
	flag.Parse()

	if err := run(*configFlag, *novelFlag, *profileFlag, *logFlag, *guestFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, novelPath, profile, logPath string, guest bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if novelPath != "" {
		cfg.Novel = novelPath
	}
	if profile != "" {
		cfg.Profile = profile
	}
	if guest {
		cfg.Guest.Everyone = true
	}

	var logOut io.Writer = io.Discard
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		logOut = f
	}
	logger := config.NewLogger(logOut)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rt, err := bootstrap.Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer rt.Close()

	lib, err := rt.Library(ctx)
	if err != nil {
		return err
	}

	app := tui.NewApp(lib, editor.NewOpener(), tui.Options{
		Profile:   cfg.Profile,
		NovelPath: rt.File.Path(),
		Admin:     cfg.Admin,
		Logger:    logger,
	})
	p := tea.NewProgram(app, tea.WithAltScreen())

	if cfg.Postgres == "" {
		watcher := filesystem.NewWatcher(rt.File, cfg.Timings.WatchDebounce, logger)
		go func() {
			_ = watcher.Watch(ctx,
				func(n *domain.Novel) { p.Send(views.NovelChangedMsg{Novel: n}) },
				func(err error) { p.Send(views.NovelErrorMsg{Err: err}) },
			)
		}()
	}

	_, err = p.Run()
	return err
}
