// Package view maintains the pan/zoom viewport transform that maps between
// screen space and simulation space.
//
// The transform is the affine map screen = simulation × k + (x, y) with a
// clamped uniform scale. Wheel zooming is anchored at the pointer so the
// simulation-space point under the cursor stays put. External callers (the
// minimap, fit-to-view) may set the transform imperatively; the new value
// becomes the gesture baseline so subsequent pans and zooms compose instead
// of resetting.
package view
