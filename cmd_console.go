package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/noelruault/lazyops/internal/favorites"
	"github.com/noelruault/lazyops/internal/logger"
	"github.com/noelruault/lazyops/internal/panels"
	"github.com/noelruault/lazyops/internal/realtime"
	"github.com/noelruault/lazyops/internal/ui/console"
)

// runConsole starts the interactive console. Logs go to a file because the
// terminal belongs to the UI.
func runConsole(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logPath, err := cfg.LogPath()
	if err != nil {
		return err
	}
	log, closer, err := logger.NewFile(logPath, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	defer closer.Close()
	defer log.Sync()

	ctx := cmd.Context()
	env := newEnv(cfg, log)
	deps := console.Deps{
		Registry: panels.Default(),
		Env:      env,
		WebURL:   cfg.WebURL,
		Log:      log.Named("console"),
	}

	if favPath, err := favorites.DefaultPath(); err == nil {
		deps.Favorites = favorites.Open(favPath, log.Named("favorites"))
	}
	if exp := newExporter(ctx, cfg, log); exp != nil {
		deps.Exporter = exp
	}
	if env.Auth.Ready() {
		wsURL, err := realtime.DashboardURL(cfg.BaseURL, env.Auth.Token())
		if err != nil {
			log.Warn("dashboard channel disabled", "error", err)
		} else {
			deps.Dashboard = realtime.NewClient(wsURL, log.Named("realtime"))
		}
	}

	log.Info("console started", "base_url", cfg.BaseURL, "locale", string(env.Locale), "log_level", log.GetLevel())
	p := tea.NewProgram(console.New(ctx, deps), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("console: %w", err)
	}
	return nil
}
