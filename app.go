package main

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/noelruault/lazyops/internal/action"
	"github.com/noelruault/lazyops/internal/api"
	"github.com/noelruault/lazyops/internal/config"
	"github.com/noelruault/lazyops/internal/export"
	"github.com/noelruault/lazyops/internal/i18n"
	"github.com/noelruault/lazyops/internal/logger"
	"github.com/noelruault/lazyops/internal/selection"
	"github.com/noelruault/lazyops/internal/ui/shared"
)

// loadConfig reads the config file and applies command line overrides.
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.Load(configPath)
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if localeFlag != "" {
		cfg.Locale = localeFlag
	}
	if verbose {
		cfg.Log.Level = "debug"
	}
	return cfg, nil
}

// newEnv builds the shared environment every binding runs in.
func newEnv(cfg *config.Config, log *logger.Logger) action.Env {
	loc := cfg.Language()
	client := api.New(cfg.BaseURL, cfg.Auth(),
		api.WithTimeout(cfg.API.Timeout),
		api.WithLogger(log.Named("api")),
		api.WithFallbackMessage(i18n.RequestFailed.In(loc)),
	)
	return action.Env{
		Client:    client,
		Auth:      client.Auth(),
		Locale:    loc,
		Selection: selection.New(),
		Utils:     shared.DefaultUtils{},
	}
}

// newExporter returns nil when exports are not configured or the AWS
// configuration cannot be loaded.
func newExporter(ctx context.Context, cfg *config.Config, log *logger.Logger) *export.Exporter {
	if !cfg.Export.Enabled() {
		return nil
	}
	exp, err := export.New(ctx, cfg.Export, nil, log)
	if err != nil {
		log.Warn("export unavailable", "error", err)
		return nil
	}
	return exp
}

// printOutcome writes the banner line and the result detail.
func printOutcome(w io.Writer, out action.Outcome) {
	kind := out.Kind.String()
	if kind == "" {
		kind = "info"
	}
	fmt.Fprintf(w, "[%s] %s\n", kind, out.Message)
	if out.Detail != "" {
		fmt.Fprintln(w, out.Detail)
	}
	keys := make([]string, 0, len(out.Selections))
	for k := range out.Selections {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "%s=%s\n", k, out.Selections[k])
	}
}
