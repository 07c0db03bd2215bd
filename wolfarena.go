// Package wolfarena provides a high-level façade over the game engine,
// enabling a complete unattended Werewolf run in a few lines. Most
// applications interact with this package by:
//  1. Creating a WolfArena via New() (optionally overriding the gateway,
//     spectator sinks and archive)
//  2. Calling Run() and reading the returned Outcome
//
// The façade delegates orchestration to engine.Engine while keeping setup
// ergonomics concise. All defaults are safe for local development and
// testing: the scripted gateway stands in for a live provider and nothing
// touches the network or the filesystem. Production runs typically supply a
// provider gateway, spectator sinks, a durable archive and a structured
// logger.
package wolfarena

import (
	"context"
	"math/rand"

	"github.com/hupe1980/wolfarena/archive"
	"github.com/hupe1980/wolfarena/core"
	"github.com/hupe1980/wolfarena/engine"
	"github.com/hupe1980/wolfarena/logging"
	"github.com/hupe1980/wolfarena/persona"
	"github.com/hupe1980/wolfarena/sink"
)

// Options configures the WolfArena instance.
type Options struct {
	// EngineConfig carries the rule set and the safety rails
	// (composition, round cap, gateway call cap).
	EngineConfig engine.Config

	// Gateway is the reasoning-service transport shared by every agent.
	// Defaults to the deterministic scripted gateway.
	Gateway core.Gateway

	// Sink receives spectator notices. Nil means the game runs without
	// spectators. Compose several with sink.NewFanout.
	Sink core.EventSink

	// Archive, when set, saves the finished game into the store under a
	// fresh game id (see GameID).
	Archive archive.Store

	// Personas overrides the embedded personality pool.
	Personas *persona.Pool

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger

	// Rand drives the role shuffle and the personality draw. Defaults to
	// a time-seeded source; inject a seeded one for reproducible games.
	Rand *rand.Rand
}

// WolfArena is the high-level façade aggregating the engine and the
// spectator surfaces. Like the engine it wraps, it is single-use: one
// WolfArena plays exactly one game.
type WolfArena struct {
	opts     Options
	engine   *engine.Engine
	archiver *sink.Archiver
}

// New creates a new WolfArena instance with optional overrides. With no
// options the game runs fully offline against the scripted gateway.
func New(optFns ...func(o *Options)) *WolfArena {
	opts := Options{
		EngineConfig: engine.DefaultConfig,
		Logger:       logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	var archiver *sink.Archiver
	out := opts.Sink
	if opts.Archive != nil {
		archiver = sink.NewArchiver(opts.Archive, func(o *sink.ArchiverOptions) {
			o.Logger = opts.Logger
		})
		out = sink.NewFanout(opts.Sink, archiver)
	}

	eng := engine.New(func(o *engine.Options) {
		o.Config = opts.EngineConfig
		if opts.Gateway != nil {
			o.Gateway = opts.Gateway
		}
		o.Sink = out
		o.Personas = opts.Personas
		o.Logger = opts.Logger
		o.Rand = opts.Rand
	})

	return &WolfArena{opts: opts, engine: eng, archiver: archiver}
}

// Run plays the game to completion and returns the final outcome. It
// follows the engine's error contract: a budget-capped game still returns
// its outcome alongside core.ErrCallBudget, and a second call returns
// engine.ErrAlreadyRun.
func (w *WolfArena) Run(ctx context.Context) (*core.Outcome, error) {
	return w.engine.Run(ctx)
}

// State exposes the final game state for inspection after the run. It must
// not be mutated.
func (w *WolfArena) State() *core.GameState { return w.engine.State() }

// GameID returns the id the finished game is archived under, or "" when no
// archive store was configured.
func (w *WolfArena) GameID() string {
	if w.archiver == nil {
		return ""
	}
	return w.archiver.GameID()
}
