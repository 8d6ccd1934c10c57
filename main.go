package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	localeFlag string
	verbose    bool
)

// errActionFailed signals a warn or danger outcome already printed to the
// user.
var errActionFailed = errors.New("action failed")

var rootCmd = &cobra.Command{
	Use:   "lazyops",
	Short: "Terminal console for the operations platform",
	Long: `lazyops is a terminal console for the operations platform API.

Run without arguments to open the interactive console. Use "lazyops run" to
execute a single panel action from scripts.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runConsole,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: ~/.lazyops/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&localeFlag, "locale", "", "Display language: zh or en")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(panelsCmd)
	rootCmd.AddCommand(runCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errActionFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		stop()
		os.Exit(1)
	}
}
