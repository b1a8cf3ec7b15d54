// Package sim implements the force simulation that positions visible nodes.
//
// # Overview
//
// A [Simulation] integrates node positions and velocities under a composable
// set of forces: many-body repulsion (Barnes-Hut approximated), link
// attraction, collision separation, centering, and a positional anchor that
// pulls each node back toward its layout-assigned target.
//
// The integrator runs on its own clock. A global temperature, alpha, decays
// each step and the simulation stops once alpha falls below a threshold.
// Structural changes and interactions re-heat alpha to resume motion without
// restarting from scratch.
//
// # Stepping
//
//	s := sim.New(sim.DefaultConfig())
//	s.SetNodes(nodes)
//	s.AddForce("charge", sim.NewManyBody(-120, 800))
//	for s.Step() {
//	    // read node positions
//	}
//
// The host decides when to call [Simulation.Step]; the package never spawns
// goroutines or timers, which keeps the whole engine on the caller's single
// event loop.
//
// # Pinning
//
// A pinned node ([Node.Pin]) has its position forced to the pin on every
// step and its velocity zeroed, so no force displaces it — but it still
// repels and attracts its neighbors. Dragging pins the grabbed node;
// releasing unpins it and the node resumes physics on the next re-heat.
package sim
