package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/noelruault/lazyops/internal/action"
	"github.com/noelruault/lazyops/internal/export"
	"github.com/noelruault/lazyops/internal/i18n"
	"github.com/noelruault/lazyops/internal/logger"
	"github.com/noelruault/lazyops/internal/panels"
	"github.com/noelruault/lazyops/internal/ui/shared"
)

var (
	runSets   []string
	runExport bool
)

var runCmd = &cobra.Command{
	Use:   "run <panel.action>",
	Short: "Execute one panel action and print its result",
	Long: `Execute one panel action without the interactive console.

Field values are passed with --set name=value. Lines fields accept several
values separated by "\n" or by repeating --set. The command exits non-zero
when the result is a warning or an error.`,
	Example: `  lazyops run alerts.ack --set alert_id=a-1
  lazyops run alerts.batch-close --set batchCloseIds=a-1 --set batchCloseIds=a-2`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeActionKeys,
	RunE:              runAction,
}

// completeActionKeys offers every panel.action key for shell completion.
func completeActionKeys(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var keys []string
	for _, k := range panels.Default().Keys() {
		if strings.HasPrefix(k, toComplete) {
			keys = append(keys, k)
		}
	}
	return keys, cobra.ShellCompDirectiveNoFileComp
}

func init() {
	runCmd.Flags().StringArrayVarP(&runSets, "set", "s", nil, "Field value as name=value (repeatable)")
	runCmd.Flags().BoolVar(&runExport, "export", false, "Upload the result to the configured export bucket")
}

// parseSets turns name=value pairs into a form. Repeated names are joined
// with newlines.
func parseSets(sets []string) (action.Form, error) {
	form := make(action.Form, len(sets))
	for _, s := range sets {
		name, value, ok := strings.Cut(s, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --set %q: expected name=value", s)
		}
		if prev, seen := form[name]; seen {
			value = prev + "\n" + value
		}
		form[name] = value
	}
	return form, nil
}

func runAction(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	defer log.Sync()

	d, ok := panels.Default().Action(args[0])
	if !ok {
		return fmt.Errorf("unknown action %q (see \"lazyops panels\")", args[0])
	}
	form, err := parseSets(runSets)
	if err != nil {
		return err
	}
	for name := range form {
		if _, ok := d.Field(name); !ok {
			return fmt.Errorf("action %s has no field %q", d.Key(), name)
		}
	}

	ctx := cmd.Context()
	env := newEnv(cfg, log)
	b := action.Bind(d, env)
	banner := &shared.Banner{}
	out := b.Submit(ctx, form, banner)
	printOutcome(cmd.OutOrStdout(), out)

	if runExport {
		if err := exportOutcome(cmd, cfg.Export, d, out, log, env.Locale); err != nil {
			return err
		}
	}

	if banner.Kind == shared.KindWarn || banner.Kind == shared.KindDanger {
		return errActionFailed
	}
	return nil
}

func exportOutcome(cmd *cobra.Command, settings export.Settings, d action.Descriptor, out action.Outcome, log *logger.Logger, loc i18n.Locale) error {
	w := cmd.OutOrStdout()
	if !out.Sent {
		fmt.Fprintf(w, "[warn] %s\n", i18n.NothingToExport.In(loc))
		return nil
	}
	if !settings.Enabled() {
		fmt.Fprintf(w, "[warn] %s\n", i18n.ExportDisabled.In(loc))
		return nil
	}
	exp, err := export.New(cmd.Context(), settings, nil, log)
	if err != nil {
		return err
	}
	location, err := exp.Export(cmd.Context(), export.Snapshot{
		Panel:    d.Panel,
		Action:   d.ID,
		Kind:     out.Kind.String(),
		Message:  out.Message,
		Response: out.Response,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "[success] %s\n", i18n.Exported.Format(loc, location))
	return nil
}
