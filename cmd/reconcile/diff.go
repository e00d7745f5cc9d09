package main

import (
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/net/html"

	"github.com/vango-dev/reconcile/internal/config"
	"github.com/vango-dev/reconcile/pkg/htmldom"
	"github.com/vango-dev/reconcile/pkg/modules"
	"github.com/vango-dev/reconcile/pkg/remote"
)

func diffCmd(load loader) *cobra.Command {
	var keyAttrs []string

	cmd := &cobra.Command{
		Use:   "diff OLD.html NEW.html",
		Short: "Print the operations that patch one tree into another",
		Long: `Mount the tree of OLD.html, patch it to the tree of NEW.html and print
every host operation of the second pass, followed by its stats and the
resulting markup.

Examples:
  reconcile diff before.html after.html
  reconcile diff --key-attr data-id a.html b.html`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			return runDiff(cmd.OutOrStdout(), cfg, args[0], args[1], keyAttrs)
		},
	}

	cmd.Flags().StringSliceVar(&keyAttrs, "key-attr", nil, "Attributes read as node keys (default key, data-key)")

	return cmd
}

func runDiff(w io.Writer, cfg *config.Config, oldPath, newPath string, keyAttrs []string) error {
	oldTree, err := readTree(w, cfg, oldPath, keyAttrs)
	if err != nil {
		return err
	}
	newTree, err := readTree(w, cfg, newPath, keyAttrs)
	if err != nil {
		return err
	}

	var diags diagnostics
	rec := remote.NewRecorder(htmldom.New())
	p, err := newPatcher(cfg, rec, modules.Default(rec), &diags)
	if err != nil {
		return err
	}

	p.Patch(nil, oldTree, false, false)
	rec.Flush()
	elm := p.Patch(oldTree, newTree, false, false)
	ops := rec.Flush()

	for _, op := range ops {
		info(w, "%s", op)
	}
	diags.print(w)
	printStats(w, p.LastStats())

	out, err := htmldom.Render(elm.(*html.Node))
	if err != nil {
		return err
	}
	success(w, "%d ops: %s", len(ops), out)
	return nil
}
