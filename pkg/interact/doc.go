// Package interact resolves pointer coordinates to graph entities and tracks
// the pointer gesture state machine.
//
// # Hit-Testing
//
// [HitTester] answers three geometric queries in simulation space: the
// nearest node whose render radius plus tolerance contains a point, the
// nearest link within a point-to-segment threshold, and whether a point
// falls on a node's expand/collapse button. The button sits along the angle
// from the node's parent (directly below for roots) and only becomes live
// once the zoom level makes it visually meaningful.
//
// # Gesture Machine
//
// [Machine] consumes press/move/release/leave events and emits [Action]
// values the owning scene applies: drag start/move/end (which pin and unpin
// the dragged node), background panning, selection clicks, expand-button
// toggles, and collapse-toggling double clicks. A completed drag suppresses
// the release's click; a double click suppresses the second click's
// selection side effect.
//
// All state lives in explicit mutable fields read fresh on every event, so
// there are no stale captures across re-renders. Timing decisions take the
// caller's clock as an argument; the package owns no timers.
package interact
