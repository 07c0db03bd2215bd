package core

import "context"

// GatewayRequest carries the two text segments sent to the reasoning
// service: a fixed system context describing the assistant's job and a
// per-turn situation description.
type GatewayRequest struct {
	SystemContext string
	Situation     string
}

// GatewayResponse is the raw text returned by the reasoning service. It is
// expected, but never trusted, to contain a JSON decision.
type GatewayResponse struct {
	Text string
}

// Gateway is the transport to an external reasoning service. Implementations
// live in the gateway subpackages (openai, anthropic, gemini) plus scripted
// stand-ins for offline runs and tests.
//
// Respond performs exactly one blocking completion call and must honor ctx
// cancellation. A returned error means the call itself failed (transport,
// auth, provider); callers substitute PlaceholderResponse and keep the game
// moving, so implementations should not retry indefinitely.
type Gateway interface {
	// Name identifies the provider in logs and transcripts.
	Name() string
	Respond(ctx context.Context, req GatewayRequest) (GatewayResponse, error)
}

// PlaceholderResponse is substituted verbatim for the provider text when a
// gateway call fails. It decodes into a thought-only decision so the game
// loop never stalls on reasoning-service unavailability.
const PlaceholderResponse = `{"thought": "call failed", "speech": "...", "action": null}`

// SituationBuilder renders the request segments for one agent turn: the
// fixed system context plus a situation text scoped to the player (role,
// role-private state, personality, recent public log, recent private
// thoughts and the instruction block for kind). The engine depends on this
// signature only; the concrete templates live in the prompt package.
type SituationBuilder interface {
	Build(p *Player, st *GameState, kind ActionKind) (systemContext string, situation string, err error)
}
