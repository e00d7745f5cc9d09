package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/reconcile/internal/config"
	rerrors "github.com/vango-dev/reconcile/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ┬─┐┌─┐┌─┐┌─┐┌┐┌┌─┐┬┬  ┌─┐
  ├┬┘├┤ │  │ ││││├─┘││  ├┤
  ┴└─└─┘└─┘└─┘┘└┘└─┘┴┴─┘└─┘
`

// loader returns the configuration selected by the --config flag.
type loader func() (*config.Config, error)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		var re *rerrors.Error
		if errors.As(err, &re) {
			rerrors.PrintError(re)
		} else {
			fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Inspect and serve virtual tree patches",
		Long: `Reconcile patches real node trees to match virtual trees.

The CLI drives the engine against HTML markup:

  • diff     print the host operations between two trees
  • hydrate  adopt server markup and report mismatches
  • render   print the server rendering of a tree
  • serve    run a live session over a websocket`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"config file (default: nearest reconcile.json or reconcile.yaml)")

	load := func() (*config.Config, error) {
		var (
			cfg *config.Config
			err error
		)
		if configPath != "" {
			cfg, err = config.LoadFile(configPath)
		} else {
			cfg, err = config.LoadFromWorkingDir()
		}
		if err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	rootCmd.AddCommand(
		diffCmd(load),
		hydrateCmd(load),
		renderCmd(load),
		serveCmd(load),
		versionCmd(),
	)
	return rootCmd
}

// printBanner prints the ASCII art banner.
func printBanner(w io.Writer) {
	fmt.Fprint(w, banner)
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[33m⚠\033[0m %s\n", fmt.Sprintf(format, args...))
}

// errorMsg prints an error message.
func errorMsg(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[31m✗\033[0m %s\n", fmt.Sprintf(format, args...))
}
