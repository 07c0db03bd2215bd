// Package actor binds one player to a reasoning gateway. An actor renders
// the player's situation, performs exactly one gateway call, decodes the
// reply into a decision and appends the private thought to the player's
// memory.
//
// The error contract is deliberately narrow: agent misbehavior (transport
// failures, undecodable output) degrades into placeholder or fallback
// decisions so a broken seat can never stall the table. Act returns an
// error only for host-level conditions: context cancellation, an exhausted
// call budget, or a situation that cannot be rendered.
package actor
