// Package core provides the foundational domain types and interfaces used by
// WolfArena. It defines the core abstractions for:
//
//   - Players, roles and role-private state (wolf pack membership, seer
//     verdicts, witch consumables)
//   - PublicEvent (immutable entries of the append-only narrative log)
//   - GameState (round counter, phase, roster and public log)
//   - Decision / Action (the structured result of one agent turn)
//   - Gateway (the reasoning-service transport consumed by actors)
//   - EventSink / Notice (fire-and-forget spectator notifications)
//
// The package intentionally keeps implementation concerns (persistence, engine
// orchestration, prompt construction, concrete gateways) out of scope,
// exposing small interfaces to enable custom backends and extensions.
package core
