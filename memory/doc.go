// Package memory contains concrete core.Memory implementations. The Memory
// interface itself resides in the core package. Import
// github.com/hupe1980/wolfarena/core and depend on core.Memory in your
// code; select an implementation (like the in-memory log below) at wiring
// time.
//
// A player's memory is append-only: prompts render only a recent window,
// but the stored thought history is never truncated, so an agent's full
// private reasoning survives for post-game inspection.
package memory
