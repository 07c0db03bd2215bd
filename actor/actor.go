package actor

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/wolfarena/core"
	"github.com/hupe1980/wolfarena/logging"
	"github.com/hupe1980/wolfarena/protocol"
)

// Options configures an Actor.
type Options struct {
	// Limiter, when set, is consulted before every gateway call.
	Limiter *core.CallLimiter

	// Logger receives per-turn diagnostics. Defaults to a no-op logger.
	Logger logging.Logger
}

// Actor runs the turns of a single player. It owns no game state beyond a
// reference to its player; the orchestrator passes the shared state in for
// reading on every turn.
type Actor struct {
	player  *core.Player
	gateway core.Gateway
	builder core.SituationBuilder
	limiter *core.CallLimiter
	logger  logging.Logger
}

// New binds a player to a gateway and a situation builder, customized by
// optFns.
func New(player *core.Player, gw core.Gateway, builder core.SituationBuilder, optFns ...func(o *Options)) *Actor {
	opts := Options{
		Logger: logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Actor{
		player:  player,
		gateway: gw,
		builder: builder,
		limiter: opts.Limiter,
		logger:  opts.Logger,
	}
}

// Player returns the seat this actor plays.
func (a *Actor) Player() *core.Player { return a.player }

// Act runs one turn: render the situation, call the gateway once, decode
// the reply and memorize the thought. The returned decision is always
// usable; see the package documentation for the error contract.
func (a *Actor) Act(ctx context.Context, st *core.GameState, kind core.ActionKind) (core.Decision, error) {
	if err := ctx.Err(); err != nil {
		return core.Decision{}, err
	}
	if a.limiter != nil {
		if err := a.limiter.Increment(); err != nil {
			return core.Decision{}, err
		}
	}

	sysCtx, situation, err := a.builder.Build(a.player, st, kind)
	if err != nil {
		return core.Decision{}, fmt.Errorf("build situation for player %d: %w", a.player.ID, err)
	}

	start := time.Now()
	resp, err := a.gateway.Respond(ctx, core.GatewayRequest{SystemContext: sysCtx, Situation: situation})
	raw := resp.Text
	if err != nil {
		// Cancellation aborts the run; every other call failure degrades
		// into the placeholder so the game keeps moving.
		if ctx.Err() != nil {
			return core.Decision{}, ctx.Err()
		}
		a.logger.Warn("gateway call failed, substituting placeholder",
			"player", a.player.ID, "provider", a.gateway.Name(), "kind", string(kind), "error", err)
		raw = core.PlaceholderResponse
	}
	a.logger.Debug("gateway call completed",
		"player", a.player.ID, "provider", a.gateway.Name(), "kind", string(kind),
		"duration", time.Since(start), "chars", len(raw))

	d, ok := protocol.Parse(raw)
	if !ok {
		a.logger.Warn("undecodable agent response, using fallback decision",
			"player", a.player.ID, "kind", string(kind))
	}

	a.player.Remember(d.Thought)
	return d, nil
}
