// Package sink contains concrete implementations of core.EventSink.
//
// The canonical EventSink interface lives in the core package to avoid
// dependency cycles and keep domain contracts central. Implementations here
// range from the trivial (NoOp, Fanout) to presentation sinks (Console
// renders styled live narration, Transcript writes a markdown log when the
// game ends) and persistence (Archiver saves the finished game into an
// archive.Store). The ws subpackage broadcasts notices to WebSocket
// spectators.
//
// Every sink honors the fire-and-forget contract: Publish returns promptly
// and swallows its own failures (optionally logging them), so a broken
// spectator surface can never stall or crash the game loop.
package sink
