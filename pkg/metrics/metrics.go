// Package metrics exposes Prometheus instrumentation for a running scene.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// SimAlpha tracks the simulation temperature; 0 means settled.
	SimAlpha = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "flowgraph_sim_alpha",
			Help: "Current simulation temperature (alpha)",
		},
	)

	// SimSteps counts integrator steps taken.
	SimSteps = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "flowgraph_sim_steps_total",
			Help: "Total simulation steps taken",
		},
	)

	// FramesRendered counts render-gate openings.
	FramesRendered = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "flowgraph_frames_rendered_total",
			Help: "Total frames the render gate released",
		},
	)

	// SnapshotsPublished counts position snapshots handed to the publisher.
	SnapshotsPublished = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "flowgraph_snapshots_published_total",
			Help: "Total position snapshots published",
		},
	)

	// VisibleNodes tracks how many nodes survive collapse resolution.
	VisibleNodes = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "flowgraph_visible_nodes",
			Help: "Nodes visible after collapse resolution",
		},
	)

	// CollapsedNodes tracks the size of the collapsed set.
	CollapsedNodes = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "flowgraph_collapsed_nodes",
			Help: "Nodes currently collapsed",
		},
	)

	// GraphReloads counts wholesale graph replacements, by trigger.
	GraphReloads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flowgraph_graph_reloads_total",
			Help: "Total graph document replacements",
		},
		[]string{"trigger"},
	)
)

func init() {
	prometheus.MustRegister(SimAlpha)
	prometheus.MustRegister(SimSteps)
	prometheus.MustRegister(FramesRendered)
	prometheus.MustRegister(SnapshotsPublished)
	prometheus.MustRegister(VisibleNodes)
	prometheus.MustRegister(CollapsedNodes)
	prometheus.MustRegister(GraphReloads)
}
