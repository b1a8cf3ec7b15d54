package cli

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/jfortez/flowgraph/pkg/errors"
	"github.com/jfortez/flowgraph/pkg/layout"
	"github.com/jfortez/flowgraph/pkg/scene"
	"github.com/jfortez/flowgraph/pkg/sim"
)

// fileConfig is the on-disk TOML shape. Zero values mean "use the default",
// so a partial file only overrides what it names.
type fileConfig struct {
	Layout struct {
		Mode         string  `toml:"mode"`
		RingStep     float64 `toml:"ring_step"`
		BaseRadius   float64 `toml:"base_radius"`
		GrowthFactor float64 `toml:"growth_factor"`
	} `toml:"layout"`

	Collision struct {
		Mode string `toml:"mode"`
	} `toml:"collision"`

	Forces struct {
		Repulsion       float64 `toml:"repulsion"`
		RepulsionCutoff float64 `toml:"repulsion_cutoff"`
		LinkDistance    float64 `toml:"link_distance"`
		LinkStrength    float64 `toml:"link_strength"`
		AnchorStrength  float64 `toml:"anchor_strength"`
		CenterStrength  float64 `toml:"center_strength"`
		CollidePadding  float64 `toml:"collide_padding"`
	} `toml:"forces"`

	Behavior struct {
		Drag            *bool `toml:"drag"`
		HoverHighlight  *bool `toml:"hover_highlight"`
		Ancestors       *bool `toml:"highlight_ancestors"`
		Descendants     *bool `toml:"highlight_descendants"`
		CollapseAtLevel *int  `toml:"collapse_at_level"`
	} `toml:"behavior"`

	Publish struct {
		File      string `toml:"file"`
		RedisAddr string `toml:"redis_addr"`
		RedisKey  string `toml:"redis_key"`
	} `toml:"publish"`
}

// loadConfig reads a TOML config file and folds it over the default scene
// configuration. An empty path returns the defaults untouched.
func loadConfig(path string) (scene.Config, fileConfig, error) {
	cfg := scene.DefaultConfig()
	var fc fileConfig
	if path == "" {
		return cfg, fc, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fc, errors.Wrap(errors.ErrCodeFileNotFound, err, "read config %s", path)
	}
	if err := toml.Unmarshal(data, &fc); err != nil {
		return cfg, fc, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse config %s", path)
	}

	if fc.Layout.Mode != "" {
		mode, err := layout.ParseMode(fc.Layout.Mode)
		if err != nil {
			return cfg, fc, errors.Wrap(errors.ErrCodeInvalidLayout, err, "config %s", path)
		}
		cfg.Layout = mode
	}
	if fc.Layout.RingStep > 0 {
		cfg.LayoutOpts.RingStep = fc.Layout.RingStep
	}
	if fc.Layout.BaseRadius > 0 {
		cfg.LayoutOpts.BaseRadius = fc.Layout.BaseRadius
	}
	if fc.Layout.GrowthFactor > 0 {
		cfg.LayoutOpts.GrowthFactor = fc.Layout.GrowthFactor
	}

	if fc.Collision.Mode != "" {
		mode, ok := sim.ParseCollisionMode(fc.Collision.Mode)
		if !ok {
			return cfg, fc, errors.New(errors.ErrCodeInvalidCollision, "config %s: unknown collision mode %q", path, fc.Collision.Mode)
		}
		cfg.Collision = mode
	}

	if fc.Forces.Repulsion != 0 {
		cfg.Forces.Repulsion = fc.Forces.Repulsion
	}
	if fc.Forces.RepulsionCutoff > 0 {
		cfg.Forces.RepulsionCutoff = fc.Forces.RepulsionCutoff
	}
	if fc.Forces.LinkDistance > 0 {
		cfg.Forces.LinkDistance = fc.Forces.LinkDistance
	}
	if fc.Forces.LinkStrength > 0 {
		cfg.Forces.LinkStrength = fc.Forces.LinkStrength
	}
	if fc.Forces.AnchorStrength > 0 {
		cfg.Forces.AnchorStrength = fc.Forces.AnchorStrength
	}
	if fc.Forces.CenterStrength > 0 {
		cfg.Forces.CenterStrength = fc.Forces.CenterStrength
	}
	if fc.Forces.CollidePadding > 0 {
		cfg.Forces.CollidePadding = fc.Forces.CollidePadding
	}

	if fc.Behavior.Drag != nil {
		cfg.DragEnabled = *fc.Behavior.Drag
	}
	if fc.Behavior.HoverHighlight != nil {
		cfg.HoverHighlight = *fc.Behavior.HoverHighlight
	}
	if fc.Behavior.Ancestors != nil {
		cfg.Highlight.Ancestors = *fc.Behavior.Ancestors
	}
	if fc.Behavior.Descendants != nil {
		cfg.Highlight.Descendants = *fc.Behavior.Descendants
	}
	if fc.Behavior.CollapseAtLevel != nil {
		cfg.CollapseAtLevel = *fc.Behavior.CollapseAtLevel
	}

	return cfg, fc, nil
}
