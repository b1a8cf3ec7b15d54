package sim

import "math"

// Config holds the integrator tuning. Zero values fall back to
// [DefaultConfig] equivalents in [New].
type Config struct {
	// AlphaMin is the temperature below which the simulation stops.
	AlphaMin float64
	// AlphaDecay is the per-step interpolation factor toward AlphaTarget.
	AlphaDecay float64
	// AlphaTarget is the temperature alpha decays toward. Raising it above
	// AlphaMin keeps the simulation running (used during drags).
	AlphaTarget float64
	// VelocityDecay is the per-step friction: velocities are scaled by
	// 1 - VelocityDecay before positions integrate.
	VelocityDecay float64
}

// DefaultConfig returns the standard integrator tuning: alpha decays from 1
// toward 0 over roughly 300 steps.
func DefaultConfig() Config {
	return Config{
		AlphaMin:      0.001,
		AlphaDecay:    1 - math.Pow(0.001, 1.0/300),
		VelocityDecay: 0.4,
	}
}

// Force is one composable behavior applied to the simulated nodes each step.
//
// Initialize is called whenever the node array changes; Apply is called once
// per step with the current alpha and is expected to adjust node velocities
// (or, for positional forces like centering, positions directly).
type Force interface {
	Initialize(nodes []*Node)
	Apply(alpha float64)
}

type namedForce struct {
	name  string
	force Force
}

// Simulation integrates node positions under the registered forces.
// It is not safe for concurrent use; the owning scene steps it from the
// single event loop.
type Simulation struct {
	cfg     Config
	alpha   float64
	nodes   []*Node
	byID    map[string]*Node
	forces  []namedForce
	stepped uint64
}

// New creates a simulation with no nodes and no forces, heated to alpha 1.
func New(cfg Config) *Simulation {
	def := DefaultConfig()
	if cfg.AlphaMin == 0 {
		cfg.AlphaMin = def.AlphaMin
	}
	if cfg.AlphaDecay == 0 {
		cfg.AlphaDecay = def.AlphaDecay
	}
	if cfg.VelocityDecay == 0 {
		cfg.VelocityDecay = def.VelocityDecay
	}
	return &Simulation{cfg: cfg, alpha: 1, byID: make(map[string]*Node)}
}

// SetNodes replaces the simulated node array and re-initializes every force.
// Positions and velocities carried on the nodes are preserved as given.
func (s *Simulation) SetNodes(nodes []*Node) {
	s.nodes = nodes
	s.byID = make(map[string]*Node, len(nodes))
	for i, n := range nodes {
		n.index = i
		s.byID[n.ID] = n
	}
	for _, f := range s.forces {
		f.force.Initialize(s.nodes)
	}
}

// AddForce registers (or replaces) a force under a name. A nil force removes
// the name, which lets callers express "collision: none" uniformly.
func (s *Simulation) AddForce(name string, f Force) {
	for i := range s.forces {
		if s.forces[i].name == name {
			if f == nil {
				s.forces = append(s.forces[:i], s.forces[i+1:]...)
				return
			}
			s.forces[i].force = f
			f.Initialize(s.nodes)
			return
		}
	}
	if f == nil {
		return
	}
	s.forces = append(s.forces, namedForce{name: name, force: f})
	f.Initialize(s.nodes)
}

// Force returns the registered force by name, or nil.
func (s *Simulation) Force(name string) Force {
	for _, f := range s.forces {
		if f.name == name {
			return f.force
		}
	}
	return nil
}

// Nodes returns the live node array. Callers must not mutate it while a step
// is in progress; within the single event loop that cannot happen.
func (s *Simulation) Nodes() []*Node { return s.nodes }

// Node returns the simulated node with the given ID, or nil.
func (s *Simulation) Node(id string) *Node { return s.byID[id] }

// Alpha returns the current temperature.
func (s *Simulation) Alpha() float64 { return s.alpha }

// Running reports whether the next Step will advance the simulation.
func (s *Simulation) Running() bool { return s.alpha >= s.cfg.AlphaMin }

// Steps returns how many integration steps have run, mostly for metrics.
func (s *Simulation) Steps() uint64 { return s.stepped }

// Reheat raises alpha to at least the given value, resuming motion without a
// full restart. Values are clamped to [0, 1].
func (s *Simulation) Reheat(alpha float64) {
	alpha = math.Min(math.Max(alpha, 0), 1)
	if alpha > s.alpha {
		s.alpha = alpha
	}
}

// SetAlphaTarget updates the temperature the simulation decays toward.
// Interactive drags set it above AlphaMin so motion continues until release.
func (s *Simulation) SetAlphaTarget(t float64) { s.cfg.AlphaTarget = t }

// Step advances the integrator by one tick: decay alpha, apply every force,
// then integrate velocities into positions with friction. Pinned nodes snap
// to their pin with zeroed velocity. Returns false (without integrating)
// once alpha has decayed below AlphaMin.
func (s *Simulation) Step() bool {
	if !s.Running() {
		return false
	}
	s.alpha += (s.cfg.AlphaTarget - s.alpha) * s.cfg.AlphaDecay

	for _, f := range s.forces {
		f.force.Apply(s.alpha)
	}

	retain := 1 - s.cfg.VelocityDecay
	for _, n := range s.nodes {
		if n.Pinned() {
			n.X, n.Y = *n.FX, *n.FY
			n.VX, n.VY = 0, 0
			continue
		}
		n.VX *= retain
		n.VY *= retain
		n.X += n.VX
		n.Y += n.VY
	}
	s.stepped++
	return true
}
