package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/vango-dev/reconcile/internal/config"
	"github.com/vango-dev/reconcile/pkg/htmldom"
	"github.com/vango-dev/reconcile/pkg/instrument"
	"github.com/vango-dev/reconcile/pkg/live"
	"github.com/vango-dev/reconcile/pkg/patch"
	"github.com/vango-dev/reconcile/pkg/render"
	"github.com/vango-dev/reconcile/pkg/vdom"
)

const shutdownTimeout = 5 * time.Second

func serveCmd(load loader) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve [PAGE.html]",
		Short: "Serve a page with a live session",
		Long: `Serve a server-rendered page on / and keep it in sync with clients over
a websocket on the configured live path.

Without PAGE.html a counter is served. With it, the page markup is served
as a static tree.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			view := newCounter().view
			if len(args) == 1 {
				markup, err := readMarkup(args[0])
				if err != nil {
					return err
				}
				view = staticView(markup)
			}
			return runServe(cmd.Context(), cmd.OutOrStdout(), cfg, view)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default from config, :3000)")

	return cmd
}

// server bundles the router with the instrumentation it owns.
type server struct {
	router   chi.Router
	registry *prometheus.Registry
	tracer   *sdktrace.TracerProvider
}

// newServer builds the router. view is called once per page load and once
// per live session; each call must return a fresh tree.
func newServer(cfg *config.Config, logger *slog.Logger, view func() *vdom.VNode) (*server, error) {
	opts, err := cfg.PatchOptions()
	if err != nil {
		return nil, err
	}

	s := &server{router: chi.NewRouter()}
	observers := instrument.Multi{instrument.Log(logger, slog.LevelDebug)}
	if cfg.Metrics.Enabled {
		s.registry = prometheus.NewRegistry()
		observers = append(observers, instrument.NewMetrics(
			instrument.WithNamespace(cfg.Metrics.Namespace),
			instrument.WithRegistry(s.registry),
		))
	}
	if cfg.Tracing.Enabled {
		s.tracer = sdktrace.NewTracerProvider()
		observers = append(observers, instrument.NewTracing(
			instrument.WithTracerName(cfg.Tracing.TracerName),
			instrument.WithTracerProvider(s.tracer),
		))
	}
	opts = append(opts, patch.WithObserver(observers))

	liveCfg := live.DefaultConfig()
	liveCfg.Logger = logger
	liveCfg.PatchOptions = opts

	renderCfg := render.RendererConfig{ServerRenderedAttr: cfg.ServerRenderedAttr}

	r := s.router
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		err := render.NewStreamingRenderer(w, renderCfg).RenderPage(render.PageData{
			Body:         view(),
			Title:        "reconcile",
			LiveEndpoint: cfg.Server.Path,
		})
		if err != nil {
			logger.Error("page render failed", "error", err)
		}
	})
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Handle(cfg.Server.Path, live.NewHandler(func(*live.Session, *http.Request) live.RenderFunc {
		return view
	}, liveCfg))
	if s.registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}
	return s, nil
}

func (s *server) shutdown(ctx context.Context) error {
	if s.tracer == nil {
		return nil
	}
	return s.tracer.Shutdown(ctx)
}

func runServe(ctx context.Context, w io.Writer, cfg *config.Config, view func() *vdom.VNode) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	level := slog.LevelInfo
	if cfg.Dev {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	s, err := newServer(cfg, logger, view)
	if err != nil {
		return err
	}
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	printBanner(w)
	success(w, "listening on %s", cfg.Server.Addr)
	info(w, "live sessions on %s", cfg.Server.Path)
	if s.registry != nil {
		info(w, "metrics on /metrics")
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("serve: shutdown: %w", err)
	}
	return s.shutdown(shutdownCtx)
}

// staticView renders markup as a fixed tree.
func staticView(markup string) func() *vdom.VNode {
	return func() *vdom.VNode {
		root, err := htmldom.ParseRoot(markup)
		if err != nil {
			return vdom.Div(vdom.Textf("cannot parse page: %v", err))
		}
		return htmldom.ToVNode(root)
	}
}
