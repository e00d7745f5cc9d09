package main

import (
	"errors"
	"io"

	"github.com/spf13/cobra"

	"github.com/vango-dev/reconcile/internal/config"
	"github.com/vango-dev/reconcile/pkg/htmldom"
	"github.com/vango-dev/reconcile/pkg/modules"
)

var errHydrationFailed = errors.New("hydration failed")

func hydrateCmd(load loader) *cobra.Command {
	var keyAttrs []string

	cmd := &cobra.Command{
		Use:   "hydrate SERVER.html CLIENT.html",
		Short: "Hydrate server markup against a client tree",
		Long: `Adopt the markup of SERVER.html as the rendering of the tree read from
CLIENT.html and report every mismatch found on the way. The command fails
when hydration bails and the server markup has to be replaced.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			return runHydrate(cmd.OutOrStdout(), cfg, args[0], args[1], keyAttrs)
		},
	}

	cmd.Flags().StringSliceVar(&keyAttrs, "key-attr", nil, "Attributes read as node keys (default key, data-key)")

	return cmd
}

func runHydrate(w io.Writer, cfg *config.Config, serverPath, clientPath string, keyAttrs []string) error {
	server, err := parseRoot(w, cfg, serverPath)
	if err != nil {
		return err
	}
	// readTree drops whitespace-only text; the server side must match.
	htmldom.TrimWhitespace(server)
	client, err := readTree(w, cfg, clientPath, keyAttrs)
	if err != nil {
		return err
	}

	var diags diagnostics
	doc := htmldom.New()
	p, err := newPatcher(cfg, doc, modules.Default(doc), &diags)
	if err != nil {
		return err
	}
	p.Patch(server, client, true, false)

	stats := p.LastStats()
	diags.print(w)
	printStats(w, stats)
	if stats.HydrationFailed {
		errorMsg(w, "%s does not match %s", serverPath, clientPath)
		return errHydrationFailed
	}
	success(w, "hydrated %d nodes", stats.Hydrated)
	return nil
}
