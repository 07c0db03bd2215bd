// Package engine implements the game orchestration layer for WolfArena.
//
// The Engine owns the complete lifecycle of one unattended game of
// Werewolf: it deals roles and personalities, binds one actor per seat,
// alternates the night and day phases, applies every rule decision to the
// shared game state and evaluates the win condition after each resolution.
//
// # Phase Machine
//
// Each round executes a fixed sequence with no backward transitions:
//
//	Night                      Day
//	┌────────────────────┐     ┌─────────────────────┐
//	│ 1. wolf kill       │     │ 1. speeches         │
//	│ 2. seer checks     │ ──▶ │    (ascending id)   │ ──▶ round++
//	│ 3. witch potions   │     │ 2. vote and tally   │
//	│ 4. resolve deaths  │     │ 3. elimination      │
//	└────────────────────┘     └─────────────────────┘
//	          │                           │
//	          ▼                           ▼
//	   win condition check         win condition check
//
// The win condition terminates the loop when no wolves remain (good side
// wins) or when the wolves match the rest of the table (wolves win), with
// the wolves-extinct check evaluated first.
//
// # Ownership
//
// The Engine and its resolvers are the only writers of the game state.
// Actors receive the state to read and answer with structured decisions;
// all legality checks (dead targets, self-votes, repeated investigations,
// spent potions) happen here, and illegal choices degrade into no-ops
// rather than errors so that agent misbehavior can never wedge a run.
//
// Execution is strictly sequential: the engine blocks on each gateway call
// before taking the next turn, so no two agents decide concurrently and no
// locking of the state is needed.
//
// # Safety Rails
//
// Unattended runs are bounded twice over: Config.MaxRounds caps the number
// of night+day cycles and Config.MaxGatewayCalls caps reasoning-service
// spend through a shared call limiter. The round cap concludes the game
// normally with the current standings; the call budget concludes it and
// returns core.ErrCallBudget alongside the outcome.
//
// # Usage
//
//	eng := engine.New(func(o *engine.Options) {
//	    o.Gateway = gw
//	    o.Sink = sink.NewConsole(os.Stdout)
//	    o.Logger = logger
//	})
//
//	outcome, err := eng.Run(ctx)
//	if err != nil && !errors.Is(err, core.ErrCallBudget) {
//	    return err
//	}
//	fmt.Println("winner:", outcome.Winner)
//
// Spectators observe the run through the optional core.EventSink: phase
// changes, narration, speeches, votes, deaths, eliminations and the final
// outcome are published as structured notices. Sinks are fire and forget
// and never influence control flow.
package engine
