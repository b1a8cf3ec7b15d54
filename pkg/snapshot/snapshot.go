// Package snapshot publishes throttled node-position snapshots for external
// consumers.
//
// The render loop reads live simulation state directly; tooltips, minimaps,
// and other out-of-band consumers instead read the most recent [Snapshot]
// published here, which may lag the simulation by up to one publication
// interval. Publishers exist for in-process consumers (memory), local files,
// and Redis for out-of-process consumers.
package snapshot

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrNoSnapshot is returned by Latest when nothing has been published yet.
var ErrNoSnapshot = errors.New("no snapshot published")

// Position is one node's published location in simulation space.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Snapshot is the published view of the layout at one instant.
type Snapshot struct {
	TakenAt   time.Time           `json:"taken_at"`
	Alpha     float64             `json:"alpha"`
	Positions map[string]Position `json:"positions"`
}

// Clone deep-copies the snapshot so consumers can hold it across frames.
func (s Snapshot) Clone() Snapshot {
	c := s
	c.Positions = make(map[string]Position, len(s.Positions))
	for id, p := range s.Positions {
		c.Positions[id] = p
	}
	return c
}

// Publisher receives position snapshots at the scheduler's publication rate.
type Publisher interface {
	// Publish stores the snapshot as the latest.
	Publish(ctx context.Context, snap Snapshot) error

	// Latest returns the most recently published snapshot.
	// Returns ErrNoSnapshot when nothing has been published.
	Latest(ctx context.Context) (Snapshot, error)

	// Close releases backend resources.
	Close() error
}

// Memory is the in-process publisher; the serve API and minimap read from
// it. Safe for concurrent reads from HTTP handlers.
type Memory struct {
	mu    sync.RWMutex
	snap  Snapshot
	valid bool
}

// NewMemory creates an empty in-memory publisher.
func NewMemory() *Memory { return &Memory{} }

// Publish stores a deep copy of the snapshot.
func (m *Memory) Publish(_ context.Context, snap Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap = snap.Clone()
	m.valid = true
	return nil
}

// Latest returns a copy of the most recent snapshot.
func (m *Memory) Latest(_ context.Context) (Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.valid {
		return Snapshot{}, ErrNoSnapshot
	}
	return m.snap.Clone(), nil
}

// Close is a no-op for the memory publisher.
func (m *Memory) Close() error { return nil }

// Multi fans one publication out to several publishers; the first error
// wins but all publishers are attempted.
type Multi struct {
	Publishers []Publisher
}

// Publish forwards the snapshot to every publisher.
func (m *Multi) Publish(ctx context.Context, snap Snapshot) error {
	var firstErr error
	for _, p := range m.Publishers {
		if err := p.Publish(ctx, snap); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Latest reads from the first publisher that has a snapshot.
func (m *Multi) Latest(ctx context.Context) (Snapshot, error) {
	for _, p := range m.Publishers {
		snap, err := p.Latest(ctx)
		if err == nil {
			return snap, nil
		}
		if !errors.Is(err, ErrNoSnapshot) {
			return Snapshot{}, err
		}
	}
	return Snapshot{}, ErrNoSnapshot
}

// Close closes every publisher, returning the first error.
func (m *Multi) Close() error {
	var firstErr error
	for _, p := range m.Publishers {
		if err := p.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
