package main

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/net/html"

	"github.com/vango-dev/reconcile/internal/config"
	rerrors "github.com/vango-dev/reconcile/internal/errors"
	"github.com/vango-dev/reconcile/pkg/htmldom"
	"github.com/vango-dev/reconcile/pkg/patch"
	"github.com/vango-dev/reconcile/pkg/vdom"
)

func readMarkup(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", rerrors.New("X001").WithDetail("Cannot read " + path).Wrap(err)
	}
	return string(data), nil
}

// parseRoot parses the first element of the file at path. In dev mode,
// lint findings are printed to w.
func parseRoot(w io.Writer, cfg *config.Config, path string) (*html.Node, error) {
	markup, err := readMarkup(path)
	if err != nil {
		return nil, err
	}
	if cfg.Dev {
		lints, err := htmldom.Lint(path, markup)
		if err != nil {
			return nil, rerrors.New("X001").WithDetail("Cannot tokenize " + path).Wrap(err)
		}
		for _, d := range lints {
			warn(w, "%s", d.FormatCompact())
		}
	}
	root, err := htmldom.ParseRoot(markup)
	if err != nil {
		return nil, rerrors.New("X001").WithDetail("No element in " + path).Wrap(err)
	}
	return root, nil
}

// readTree parses the file at path into a virtual tree.
func readTree(w io.Writer, cfg *config.Config, path string, keyAttrs []string) (*vdom.VNode, error) {
	root, err := parseRoot(w, cfg, path)
	if err != nil {
		return nil, err
	}
	return htmldom.ToVNode(root, convertOptions(keyAttrs)...), nil
}

func convertOptions(keyAttrs []string) []htmldom.ConvertOption {
	if len(keyAttrs) == 0 {
		return nil
	}
	return []htmldom.ConvertOption{htmldom.KeyAttrs(keyAttrs...)}
}

// diagnostics collects what a Patcher reports.
type diagnostics []*patch.Diagnostic

func (d *diagnostics) report(diag *patch.Diagnostic) {
	*d = append(*d, diag)
}

func (d diagnostics) codes() []string {
	codes := make([]string, len(d))
	for i, diag := range d {
		codes[i] = diag.Code
	}
	return codes
}

func (d diagnostics) print(w io.Writer) {
	for _, diag := range d {
		warn(w, "%s", diag.FormatCompact())
	}
}

// newPatcher builds a Patcher from the config, reporting into diags.
func newPatcher(cfg *config.Config, host patch.NodeOps, modules []patch.Module, diags *diagnostics) (*patch.Patcher, error) {
	opts, err := cfg.PatchOptions()
	if err != nil {
		return nil, err
	}
	opts = append(opts, patch.WithReporter(diags.report))
	return patch.New(host, modules, opts...), nil
}

func printStats(w io.Writer, s patch.Stats) {
	info(w, "%s", formatStats(s))
}

func formatStats(s patch.Stats) string {
	return fmt.Sprintf("created %d, removed %d, moved %d, patched %d, hydrated %d, diagnostics %d",
		s.Created, s.Removed, s.Moved, s.Patched, s.Hydrated, s.Diagnostics)
}
