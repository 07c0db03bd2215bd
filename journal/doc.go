// Package journal houses concrete implementations of the core.EventLog.
// The interface itself (and the PublicEvent type) live in the core package
// to centralize domain contracts. Keeping only implementations here lets
// higher level packages (actors, engine) depend on the contract rather
// than concrete storage.
//
// The journal is the game's single shared source of truth: every speech,
// vote and death lands here in order, and prompts are rendered from a
// recent window of it. Append-only, never rewritten.
package journal
