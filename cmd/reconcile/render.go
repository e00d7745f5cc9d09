package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/vango-dev/reconcile/internal/config"
	"github.com/vango-dev/reconcile/pkg/render"
)

type renderOptions struct {
	pretty bool
	page   bool
	title  string
}

func renderCmd(load loader) *cobra.Command {
	var opts renderOptions

	cmd := &cobra.Command{
		Use:   "render IN.html",
		Short: "Print the server rendering of a tree",
		Long: `Read IN.html into a virtual tree and render it back to markup, the way
the server renders it before hydration.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			return runRender(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg, args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.pretty, "pretty", false, "Indent the output")
	cmd.Flags().BoolVar(&opts.page, "page", false, "Render a complete HTML document")
	cmd.Flags().StringVar(&opts.title, "title", "", "Document title (with --page)")

	return cmd
}

func runRender(w, errW io.Writer, cfg *config.Config, path string, opts renderOptions) error {
	tree, err := readTree(errW, cfg, path, nil)
	if err != nil {
		return err
	}
	r := render.NewRenderer(render.RendererConfig{
		Pretty:             opts.pretty,
		ServerRenderedAttr: cfg.ServerRenderedAttr,
	})
	if opts.page {
		return r.RenderPage(w, render.PageData{Body: tree, Title: opts.title})
	}
	if err := r.RenderToWriter(w, tree); err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}
