package engine

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/hupe1980/wolfarena/actor"
	"github.com/hupe1980/wolfarena/core"
	"github.com/hupe1980/wolfarena/gateway"
	"github.com/hupe1980/wolfarena/journal"
	"github.com/hupe1980/wolfarena/logging"
	"github.com/hupe1980/wolfarena/memory"
	"github.com/hupe1980/wolfarena/persona"
	"github.com/hupe1980/wolfarena/prompt"
)

// ErrAlreadyRun is returned when Run is called a second time on the same
// Engine. An Engine hosts exactly one game; create a new one per game.
var ErrAlreadyRun = errors.New("engine: game already run")

// Config defines tuning parameters for one game run.
//
// This configuration focuses on the rule set and the safety rails of an
// unattended run:
//   - Composition: which roles are dealt, and to how many seats
//   - MaxRounds: how many full night+day cycles may execute
//   - MaxGatewayCalls: how many reasoning-service calls the run may spend
//
// Additional concerns such as the gateway transport, the situation builder
// and spectator sinks are injected via functional options rather than
// expanding this struct.
//
// Example:
//
//	cfg := Config{
//	    Composition:     core.DefaultComposition(),
//	    MaxRounds:       20,
//	    MaxGatewayCalls: 150,
//	}
type Config struct {
	// Composition is the role multiset dealt at setup. The engine shuffles
	// a copy of it and seats players 1..len(Composition) in shuffle order.
	// Nil or empty falls back to core.DefaultComposition (2 wolves, 1 seer,
	// 1 witch, 2 villagers).
	Composition []core.Role

	// MaxRounds caps the number of full night+day cycles. A game that is
	// still undecided when the cap is reached ends with the current
	// standings. Set to 0 for unlimited rounds.
	MaxRounds int

	// MaxGatewayCalls caps the number of reasoning-service calls the whole
	// run may spend, enforced by a shared core.CallLimiter. Exceeding it
	// ends the game with the current standings and core.ErrCallBudget.
	// Set to 0 for unlimited calls.
	MaxGatewayCalls int
}

// DefaultConfig provides production-ready default configuration values.
//
// These defaults are chosen for:
//   - Safety: both caps bound the cost of a run nobody is watching
//   - Fidelity: the reference six-player composition keeps games short
//     enough for live providers yet rich enough for real deduction
//
// Configuration values:
//   - Composition: nil (falls back to core.DefaultComposition)
//   - MaxRounds: 30 (far beyond any decisive six-player game)
//   - MaxGatewayCalls: 200 (roughly thirteen six-player rounds)
var DefaultConfig = Config{
	MaxRounds:       30,
	MaxGatewayCalls: 200,
}

// Options configures an Engine instance using the functional options
// pattern.
//
// All dependencies have in-process defaults so that a zero-option Engine
// plays a complete offline game: the scripted gateway stands in for a live
// provider, the prompt builder renders the reference templates and the
// journal keeps the public record in memory.
//
// Example:
//
//	eng := New(func(o *Options) {
//	    o.Gateway = openaiGateway
//	    o.Sink = sink.NewConsole(os.Stdout)
//	    o.Logger = logger
//	})
type Options struct {
	// Config contains the rule set and safety rails for the run.
	// Defaults to DefaultConfig.
	Config Config

	// Gateway is the transport to the reasoning service, shared by every
	// actor. Defaults to the deterministic scripted gateway.
	Gateway core.Gateway

	// Builder renders the request segments for each agent turn.
	// Defaults to prompt.NewBuilder().
	Builder core.SituationBuilder

	// Journal is the append-only public event log.
	// Defaults to an in-memory log.
	Journal core.EventLog

	// Sink receives spectator notices as the game progresses. Nil means
	// the game runs without spectators.
	Sink core.EventSink

	// Personas is the personality pool drawn from during the deal.
	// Nil loads the embedded pool.
	Personas *persona.Pool

	// Logger provides structured logging for the run.
	// Defaults to a no-op logger.
	Logger logging.Logger

	// Rand drives the role shuffle and the personality draw.
	// Defaults to a time-seeded source; inject a seeded one for
	// reproducible games.
	Rand *rand.Rand

	// Roster, when set, skips dealing entirely and seats the given
	// players as-is. The players must arrive fully constructed (roles,
	// personalities, memories, wolf teammates). Intended for tests and
	// resumed games.
	Roster []*core.Player
}

// Engine orchestrates one complete game of Werewolf.
//
// It owns the aggregate game state and is the only component that mutates
// it. Each round it runs the fixed night sub-phases (wolf kill, seer
// investigation, witch potions, resolution), then the day (one speech per
// living player, then one vote), re-checking the win condition after every
// resolution. Actors receive the state to read and answer with decisions;
// all rule enforcement happens here.
//
// Execution is strictly sequential. The only suspension points are the
// gateway calls inside each actor turn, and the engine blocks on every one
// of them before moving on, so no two agents ever decide concurrently and
// the state needs no locking.
//
// An Engine is single-use: Run plays exactly one game and subsequent calls
// return ErrAlreadyRun.
type Engine struct {
	config   Config
	gateway  core.Gateway
	builder  core.SituationBuilder
	journal  core.EventLog
	sink     core.EventSink
	personas *persona.Pool
	logger   logging.Logger
	rand     *rand.Rand
	roster   []*core.Player

	state   *core.GameState
	actors  []*actor.Actor
	limiter *core.CallLimiter

	mu      sync.Mutex
	started bool
}

// New creates an Engine with in-process defaults, customized by optFns.
//
// The zero-option Engine plays a full offline game against the scripted
// gateway. Production runs typically inject a live provider gateway, a
// spectator sink and a logger:
//
//	eng := engine.New(func(o *engine.Options) {
//	    o.Gateway = gw
//	    o.Sink = sinks
//	    o.Logger = logger
//	})
//	outcome, err := eng.Run(ctx)
func New(optFns ...func(o *Options)) *Engine {
	opts := Options{
		Config:  DefaultConfig,
		Gateway: gateway.NewScripted(),
		Builder: prompt.NewBuilder(),
		Journal: journal.NewInMemoryLog(),
		Logger:  logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	r := opts.Rand
	if r == nil {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &Engine{
		config:   opts.Config,
		gateway:  opts.Gateway,
		builder:  opts.Builder,
		journal:  opts.Journal,
		sink:     opts.Sink,
		personas: opts.Personas,
		logger:   opts.Logger,
		rand:     r,
		roster:   opts.Roster,
	}
}

// Run plays the game to completion and returns the final outcome.
//
// The loop alternates night and day, incrementing the round counter only
// after a completed night+day cycle, until one side has won or a safety
// rail trips. Agent misbehavior never surfaces here; malformed output and
// transport failures degrade inside the actors and the game always moves.
//
// Error contract:
//   - Exhausting the gateway call budget returns the outcome computed from
//     the current standings together with core.ErrCallBudget, so callers
//     can both report the partial game and detect the cap.
//   - Context cancellation returns (nil, ctx.Err()) without publishing a
//     game-over notice.
//   - Hitting MaxRounds is not an error: the game concludes with the
//     current standings.
func (e *Engine) Run(ctx context.Context) (*core.Outcome, error) {
	e.mu.Lock()
	already := e.started
	e.started = true
	e.mu.Unlock()
	if already {
		return nil, ErrAlreadyRun
	}

	if err := e.setup(); err != nil {
		return nil, err
	}

	e.logger.Info("game starting",
		"players", len(e.state.Players), "provider", e.gateway.Name(),
		"max_rounds", e.config.MaxRounds, "max_gateway_calls", e.config.MaxGatewayCalls)

	for !e.terminal() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if e.config.MaxRounds > 0 && e.state.Round > e.config.MaxRounds {
			e.logger.Warn("round cap reached, ending game with current standings",
				"round", e.state.Round, "max_rounds", e.config.MaxRounds)
			break
		}

		if err := e.runNight(ctx); err != nil {
			return e.interrupted(err)
		}
		if e.terminal() {
			break
		}
		if err := e.runDay(ctx); err != nil {
			return e.interrupted(err)
		}

		e.state.Round++
	}

	return e.conclude(), nil
}

// State returns the game state for inspection after the run. It must not
// be mutated.
func (e *Engine) State() *core.GameState { return e.state }

// setup deals roles and personalities, builds the roster and binds one
// actor per seat. A roster injected via Options skips the deal.
func (e *Engine) setup() error {
	players := e.roster
	if len(players) == 0 {
		var err error
		players, err = e.deal()
		if err != nil {
			return err
		}
	}

	e.state = core.NewGameState(players, e.journal)
	e.limiter = core.NewCallLimiter(e.config.MaxGatewayCalls)

	e.actors = make([]*actor.Actor, 0, len(players))
	for _, p := range players {
		e.actors = append(e.actors, actor.New(p, e.gateway, e.builder, func(o *actor.Options) {
			o.Limiter = e.limiter
			o.Logger = e.logger
		}))
		e.logger.Debug("role dealt",
			"player", p.ID, "role", string(p.Role), "personality", p.Personality.Name)
	}

	return nil
}

// deal shuffles a copy of the configured composition, seats players
// 1..n in shuffle order, assigns personalities and wires the wolf pack.
func (e *Engine) deal() ([]*core.Player, error) {
	pool := e.personas
	if pool == nil {
		var err error
		pool, err = persona.NewPool()
		if err != nil {
			return nil, fmt.Errorf("load persona pool: %w", err)
		}
	}

	comp := e.config.Composition
	if len(comp) == 0 {
		comp = core.DefaultComposition()
	}
	roles := make([]core.Role, len(comp))
	copy(roles, comp)
	e.rand.Shuffle(len(roles), func(i, j int) { roles[i], roles[j] = roles[j], roles[i] })

	players := make([]*core.Player, 0, len(roles))
	for i, role := range roles {
		players = append(players, core.NewPlayer(i+1, role, pool.Pick(e.rand), memory.NewInMemoryLog()))
	}

	var wolves []int
	for _, p := range players {
		if p.Role == core.RoleWolf {
			wolves = append(wolves, p.ID)
		}
	}
	for _, p := range players {
		if p.Role != core.RoleWolf {
			continue
		}
		for _, id := range wolves {
			if id != p.ID {
				p.Teammates = append(p.Teammates, id)
			}
		}
	}

	return players, nil
}

// actorFor returns the actor seated at id, or nil when no such seat
// exists.
func (e *Engine) actorFor(id int) *actor.Actor {
	for _, a := range e.actors {
		if a.Player().ID == id {
			return a
		}
	}
	return nil
}

// terminal reports whether a win condition holds. The wolves-extinct check
// runs first, so a table with nobody left standing counts as a good-side
// win.
func (e *Engine) terminal() bool {
	w := e.state.AliveWolves()
	if w == 0 {
		return true
	}
	return w >= e.state.AliveGood()
}

// winner names the winning side for the current standings: the wolves win
// whenever any wolf is still alive at exit.
func (e *Engine) winner() core.Side {
	if e.state.AliveWolves() > 0 {
		return core.SideWolf
	}
	return core.SideGood
}

// interrupted maps a loop error to Run's error contract. Budget exhaustion
// still concludes the game; everything else aborts without an outcome.
func (e *Engine) interrupted(err error) (*core.Outcome, error) {
	if errors.Is(err, core.ErrCallBudget) {
		e.logger.Warn("gateway call budget exhausted, ending game with current standings",
			"calls", e.limiter.Count(), "round", e.state.Round)
		return e.conclude(), err
	}
	return nil, err
}

// conclude computes the final outcome, announces it and reveals the roles.
func (e *Engine) conclude() *core.Outcome {
	out := &core.Outcome{
		Winner:  e.winner(),
		Rounds:  e.state.Round,
		Reveals: e.state.Reveals(),
	}

	e.logger.Info("game over",
		"winner", string(out.Winner), "rounds", out.Rounds, "gateway_calls", e.limiter.Count())

	e.publish(core.Notice{
		Kind:    core.NoticeGameOver,
		Round:   e.state.Round,
		Message: fmt.Sprintf("Game over after %d round(s): %s.", out.Rounds, sideClause(out.Winner)),
		Outcome: out,
	})

	return out
}

// publish forwards a notice to the sink, if any. Sinks are fire and
// forget; a nil sink means the game runs without spectators.
func (e *Engine) publish(n core.Notice) {
	if e.sink == nil {
		return
	}
	e.sink.Publish(n)
}

func sideClause(s core.Side) string {
	if s == core.SideWolf {
		return "the werewolves win"
	}
	return "the good side wins"
}
