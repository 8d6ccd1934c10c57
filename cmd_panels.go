package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/noelruault/lazyops/internal/panels"
)

var panelsFilter string

var panelsCmd = &cobra.Command{
	Use:   "panels",
	Short: "List panels and their actions",
	Args:  cobra.NoArgs,
	RunE:  runPanels,
}

func init() {
	panelsCmd.Flags().StringVarP(&panelsFilter, "panel", "p", "", "Only list the actions of this panel")
}

func runPanels(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	loc := cfg.Language()
	authCtx := cfg.Auth()

	reg := panels.Default()
	list := reg.Panels()
	if panelsFilter != "" {
		p, ok := reg.Panel(panelsFilter)
		if !ok {
			return fmt.Errorf("unknown panel %q", panelsFilter)
		}
		list = []panels.Panel{p}
	}

	out := cmd.OutOrStdout()
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ACTION\tMETHOD\tPATH\tCAPABILITY\tALLOWED\tTITLE")
	for _, p := range list {
		for _, d := range p.Actions {
			capability := d.Capability
			if capability == "" {
				capability = "-"
			}
			allowed := "no"
			if authCtx.Ready() && authCtx.Can(d.Capability) {
				allowed = "yes"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", d.Key(), d.Method, d.Path, capability, allowed, d.Title.In(loc))
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	caps := authCtx.Capabilities()
	if len(caps) == 0 {
		caps = []string{"-"}
	}
	fmt.Fprintf(out, "\ncapabilities: %s\n", strings.Join(caps, ", "))
	return nil
}
