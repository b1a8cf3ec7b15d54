package cli

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/jfortez/flowgraph/pkg/graph"
	"github.com/jfortez/flowgraph/pkg/scene"
	"github.com/jfortez/flowgraph/pkg/source"
	"github.com/jfortez/flowgraph/pkg/view"
)

// Terminal cells are roughly twice as tall as wide; vertical screen units
// are scaled so circles stay circular on the canvas.
const cellAspect = 2.0

// Canvas styles.
var (
	colorCyan   = lipgloss.Color("36")
	colorYellow = lipgloss.Color("220")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")

	styleNode     = lipgloss.NewStyle().Foreground(colorWhite)
	styleSelected = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleHovered  = lipgloss.NewStyle().Foreground(colorYellow)
	styleDimmed   = lipgloss.NewStyle().Foreground(colorDim)
	styleLink     = lipgloss.NewStyle().Foreground(colorDim)
	styleLabel    = lipgloss.NewStyle().Foreground(colorGray)
	styleStatus   = lipgloss.NewStyle().Foreground(colorGray)
)

type tickMsg time.Time

type reloadMsg struct {
	g graph.Graph
}

// canvasModel is the bubbletea model for the interactive canvas. All scene
// access happens inside Update/View, which bubbletea serializes, so the
// single-threaded scene contract holds.
type canvasModel struct {
	scene  *scene.Scene
	sched  *scene.Scheduler
	logger *log.Logger

	width  int
	height int
	fitted bool
}

func (m canvasModel) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m canvasModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if _, err := m.sched.Advance(context.Background(), time.Time(msg)); err != nil {
			m.logger.Error("publish failed", "error", err)
		}
		return m, tick()

	case reloadMsg:
		if err := m.scene.SetGraph(msg.g); err != nil {
			m.logger.Error("reload rejected", "error", err)
		} else {
			m.logger.Debug("graph replaced", "nodes", len(msg.g.Nodes))
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.fitted && m.width > 0 {
			m.scene.FitToView(float64(m.width), float64(m.height-1)*cellAspect, 4)
			m.fitted = true
		}
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg), nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			_ = m.sched.Close()
			return m, tea.Quit
		case "f":
			m.scene.FitToView(float64(m.width), float64(m.height-1)*cellAspect, 4)
		case "r":
			m.scene.Simulation().Reheat(0.5)
		case "+", "=":
			m.scene.Zoom(m.center(), 1.2)
		case "-":
			m.scene.Zoom(m.center(), 1/1.2)
		}
		return m, nil
	}
	return m, nil
}

func (m canvasModel) center() view.Point {
	return view.Point{X: float64(m.width) / 2, Y: float64(m.height-1) * cellAspect / 2}
}

func (m canvasModel) handleMouse(msg tea.MouseMsg) canvasModel {
	pt := view.Point{X: float64(msg.X), Y: float64(msg.Y) * cellAspect}
	modifier := msg.Shift || msg.Ctrl
	now := time.Now()

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.scene.Zoom(pt, 1.1)
		return m
	case tea.MouseButtonWheelDown:
		m.scene.Zoom(pt, 1/1.1)
		return m
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.scene.Press(pt, modifier, now)
		}
	case tea.MouseActionMotion:
		m.scene.Move(pt, now)
	case tea.MouseActionRelease:
		m.scene.Release(pt, modifier, now)
	}
	return m
}

func (m canvasModel) View() string {
	if m.width == 0 || m.height < 2 {
		return ""
	}
	rows := m.height - 1
	grid := make([][]string, rows)
	for y := range grid {
		grid[y] = make([]string, m.width)
		for x := range grid[y] {
			grid[y][x] = " "
		}
	}

	res := m.scene.Resolution()
	simulation := m.scene.Simulation()
	tr := m.scene.Viewport().Transform()
	highlight := m.scene.Highlight()

	plot := func(sx, sy float64, s string) {
		x := int(math.Round(sx))
		y := int(math.Round(sy / cellAspect))
		if x >= 0 && x < m.width && y >= 0 && y < rows {
			grid[y][x] = s
		}
	}

	if res != nil {
		for _, l := range res.VisibleLinks {
			src, dst := simulation.Node(l.Source), simulation.Node(l.Target)
			if src == nil || dst == nil {
				continue
			}
			a := tr.ToScreen(view.Point{X: src.X, Y: src.Y})
			b := tr.ToScreen(view.Point{X: dst.X, Y: dst.Y})
			dimmed := highlight != nil && (!highlight.Has(l.Source) || !highlight.Has(l.Target))
			m.plotLine(plot, a, b, dimmed)
		}

		for _, n := range simulation.Nodes() {
			p := tr.ToScreen(view.Point{X: n.X, Y: n.Y})
			glyph, style := m.nodeGlyph(n.ID, highlight, res)
			plot(p.X, p.Y, style.Render(glyph))
			if label := m.nodeLabel(n.ID, res, tr.K); label != "" {
				for i, r := range []rune(label) {
					plot(p.X+2+float64(i), p.Y, styleLabel.Render(string(r)))
				}
			}
		}
	}

	var b strings.Builder
	for y := 0; y < rows; y++ {
		b.WriteString(strings.Join(grid[y], ""))
		b.WriteString("\n")
	}
	b.WriteString(m.statusLine(res))
	return b.String()
}

func (m canvasModel) plotLine(plot func(float64, float64, string), a, b view.Point, dimmed bool) {
	if dimmed {
		return
	}
	steps := int(math.Max(math.Abs(b.X-a.X), math.Abs(b.Y-a.Y)/cellAspect))
	for i := 1; i < steps; i++ {
		t := float64(i) / float64(steps)
		plot(a.X+(b.X-a.X)*t, a.Y+(b.Y-a.Y)*t, styleLink.Render("·"))
	}
}

func (m canvasModel) nodeGlyph(id string, highlight graph.Set, res *graph.Resolution) (string, lipgloss.Style) {
	glyph := "●"
	if m.scene.Collapsed().Has(id) && res.HasChildren(id) {
		glyph = "◉"
	}
	switch {
	case m.scene.Selection().Has(id):
		return glyph, styleSelected
	case m.scene.Hover().NodeID() == id:
		return glyph, styleHovered
	case highlight != nil && !highlight.Has(id):
		return "○", styleDimmed
	default:
		return glyph, styleNode
	}
}

// nodeLabel returns the label to draw beside a node: everything when zoomed
// in, only hovered/selected nodes otherwise.
func (m canvasModel) nodeLabel(id string, res *graph.Resolution, zoom float64) string {
	interesting := m.scene.Selection().Has(id) || m.scene.Hover().NodeID() == id
	if zoom < 1.5 && !interesting {
		return ""
	}
	n := res.Node(id)
	if n == nil {
		return ""
	}
	label := []rune(n.DisplayLabel())
	if len(label) > 14 {
		return string(label[:13]) + "…"
	}
	return string(label)
}

func (m canvasModel) statusLine(res *graph.Resolution) string {
	visible, total := 0, 0
	if res != nil {
		visible = len(res.VisibleNodes)
		total = len(res.NodeIDs())
	}
	status := fmt.Sprintf(" alpha %.3f · %d/%d nodes · zoom %.1f× · q quit  f fit  r reheat",
		m.scene.Simulation().Alpha(), visible, total, m.scene.Viewport().Transform().K)
	if len(status) > m.width {
		status = status[:m.width]
	}
	return styleStatus.Render(status)
}

func newViewCmd() *cobra.Command {
	var (
		input      inputFlags
		configPath string
		watch      bool
	)

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Explore a graph in an interactive terminal canvas",
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
			_, pub := newPublisher(fc)
			sched := scene.NewScheduler(sc, pub)

			model := canvasModel{scene: sc, sched: sched, logger: logger}
			p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())

			if watch && input.file != "" {
				watchCtx, cancel := context.WithCancel(ctx)
				defer cancel()
				go func() {
					err := source.Watch(watchCtx, input.file, source.DefaultDebounce, logger, func(g graph.Graph) {
						p.Send(reloadMsg{g: g})
					})
					if err != nil {
						logger.Error("watch stopped", "error", err)
					}
				}()
			}

			_, err = p.Run()
			_ = sched.Close()
			return err
		},
	}

	input.register(cmd)
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "TOML config file")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "reload the graph file on change")
	return cmd
}
