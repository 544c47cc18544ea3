// Package widgets contains dumb render primitives for the dashboard.
//
// Allowed here:
// - stateless drawing/composition helpers (panes, stacks, tables, charts, popup compositor)
//
// Not allowed here:
// - key handling, fetch orchestration, or knowledge of air-quality thresholds
package widgets
