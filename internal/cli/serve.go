package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/jfortez/flowgraph/pkg/api"
	"github.com/jfortez/flowgraph/pkg/graph"
	"github.com/jfortez/flowgraph/pkg/metrics"
	"github.com/jfortez/flowgraph/pkg/scene"
	"github.com/jfortez/flowgraph/pkg/source"
)

func newServeCmd() *cobra.Command {
	var (
		input      inputFlags
		configPath string
		addr       string
		watch      bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a headless scene behind a read-only HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, fc, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			src, closeSrc, err := input.open(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = closeSrc(context.Background()) }()

			g, err := src.Load(ctx)
			if err != nil {
				return err
			}

			sc := scene.New(cfg)
			if err := sc.SetGraph(g); err != nil {
				return err
			}

			mem, pub := newPublisher(fc)
			sched := scene.NewScheduler(sc, pub)
			defer func() { _ = sched.Close() }()

			holder := &api.GraphHolder{}
			holder.Set(g)

			reloads := make(chan graph.Graph, 1)
			if watch && input.file != "" {
				go func() {
					err := source.Watch(ctx, input.file, source.DefaultDebounce, logger, func(g graph.Graph) {
						select {
						case reloads <- g:
						default: // a newer reload is already queued
						}
					})
					if err != nil {
						logger.Error("watch stopped", "error", err)
					}
				}()
			}

			// The scene loop goroutine owns the scene exclusively; HTTP
			// handlers only read the holder and the memory publisher.
			go runSceneLoop(ctx, sc, sched, holder, reloads, logger)

			httpSrv := &http.Server{Addr: addr, Handler: api.NewServer(holder, mem)}
			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = httpSrv.Shutdown(shutdownCtx)
			}()

			logger.Info("serving", "addr", addr)
			if err := httpSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}

	input.register(cmd)
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "TOML config file")
	cmd.Flags().StringVar(&addr, "addr", ":8417", "HTTP listen address")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "reload the graph file on change")
	return cmd
}

// runSceneLoop drives the headless scene: scheduler ticks, graph reloads,
// and metric updates all happen on this one goroutine.
func runSceneLoop(ctx context.Context, sc *scene.Scene, sched *scene.Scheduler, holder *api.GraphHolder, reloads <-chan graph.Graph, logger *log.Logger) {
	ticker := time.NewTicker(scene.StepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case g := <-reloads:
			if err := sc.SetGraph(g); err != nil {
				logger.Error("reload rejected", "error", err)
				continue
			}
			holder.Set(g)
			metrics.GraphReloads.WithLabelValues("watch").Inc()

		case now := <-ticker.C:
			tick, err := sched.Advance(ctx, now)
			if err != nil {
				logger.Error("publish failed", "error", err)
			}
			metrics.SimAlpha.Set(sc.Simulation().Alpha())
			metrics.SimSteps.Add(float64(tick.Steps))
			if tick.Render {
				metrics.FramesRendered.Inc()
			}
			if tick.Published {
				metrics.SnapshotsPublished.Inc()
			}
			if res := sc.Resolution(); res != nil {
				metrics.VisibleNodes.Set(float64(len(res.VisibleNodes)))
			}
			metrics.CollapsedNodes.Set(float64(len(sc.Collapsed())))
		}
	}
}
