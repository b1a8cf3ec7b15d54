package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jfortez/flowgraph/pkg/errors"
	"github.com/jfortez/flowgraph/pkg/export"
	"github.com/jfortez/flowgraph/pkg/scene"
)

// maxExportSteps bounds the offline simulation so a pathological graph
// cannot hang the command.
const maxExportSteps = 1000

func newExportCmd() *cobra.Command {
	var (
		input      inputFlags
		configPath string
		output     string
		format     string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render the simulated layout to DOT, SVG, or PNG",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			if err := errors.ValidateOutputPath(output); err != nil {
				return err
			}
			if format == "" {
				format = strings.TrimPrefix(filepath.Ext(output), ".")
			}
			switch format {
			case "dot", "svg", "png":
			default:
				return errors.New(errors.ErrCodeInvalidFormat, "unknown export format %q (want dot, svg, or png)", format)
			}

			cfg, _, err := loadConfig(configPath)
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

			// Run the simulation offline until it settles.
			elapsed := stopwatch(logger)
			steps := 0
			for sc.Simulation().Running() && steps < maxExportSteps {
				sc.Simulation().Step()
				steps++
			}
			elapsed(fmt.Sprintf("Converged in %d steps", steps))

			dot := export.ToDOT(sc.Resolution(), sc.Snapshot(time.Now()))

			var data []byte
			switch format {
			case "dot":
				data = []byte(dot)
			case "svg":
				data, err = export.RenderSVG(ctx, dot)
			case "png":
				data, err = export.RenderPNG(ctx, dot)
			}
			if err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
			}

			if err := os.WriteFile(output, data, 0o644); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", output)
			}
			logger.Info("exported", "path", output, "format", format, "nodes", len(sc.Resolution().VisibleNodes))
			return nil
		},
	}

	input.register(cmd)
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "TOML config file")
	cmd.Flags().StringVarP(&output, "output", "o", "layout.svg", "output file path")
	cmd.Flags().StringVar(&format, "format", "", "output format (dot, svg, png); inferred from extension when empty")
	return cmd
}
