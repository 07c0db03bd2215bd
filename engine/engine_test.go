package engine

import (
	"context"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/wolfarena/core"
	"github.com/hupe1980/wolfarena/gateway"
	"github.com/hupe1980/wolfarena/internal/testutil"
)

// captureSink records every notice it receives.
type captureSink struct {
	mu      sync.Mutex
	notices []core.Notice
}

func (s *captureSink) Publish(n core.Notice) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notices = append(s.notices, n)
}

func (s *captureSink) byKind(kind core.NoticeKind) []core.Notice {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Notice
	for _, n := range s.notices {
		if n.Kind == kind {
			out = append(out, n)
		}
	}
	return out
}

// newTestEngine seats the standard six-player roster against the given
// gateway with no call budget, customized by optFns.
func newTestEngine(gw core.Gateway, optFns ...func(o *Options)) *Engine {
	base := func(o *Options) {
		o.Roster = testutil.StandardRoster()
		o.Gateway = gw
		o.Config.MaxGatewayCalls = 0
	}
	return New(append([]func(o *Options){base}, optFns...)...)
}

func eventsOfKind(log core.EventLog, kind core.EventKind) []core.PublicEvent {
	var out []core.PublicEvent
	for _, ev := range log.Events() {
		if ev.Kind == kind {
			out = append(out, ev)
		}
	}
	return out
}

func TestRun_ScriptedGameCompletes(t *testing.T) {
	scripted := gateway.NewScripted(func(o *gateway.ScriptedOptions) {
		o.Rand = rand.New(rand.NewSource(7))
	})
	eng := New(func(o *Options) {
		o.Gateway = scripted
		o.Rand = rand.New(rand.NewSource(7))
	})

	outcome, err := eng.Run(context.Background())
	require.NoError(t, err)
	require.NotNil(t, outcome)

	assert.Contains(t, []core.Side{core.SideWolf, core.SideGood}, outcome.Winner)
	assert.GreaterOrEqual(t, outcome.Rounds, 1)
	require.Len(t, outcome.Reveals, 6)

	counts := make(map[core.Role]int)
	for _, r := range outcome.Reveals {
		counts[r.Role]++
	}
	assert.Equal(t, 2, counts[core.RoleWolf])
	assert.Equal(t, 1, counts[core.RoleSeer])
	assert.Equal(t, 1, counts[core.RoleWitch])
	assert.Equal(t, 2, counts[core.RoleVillager])
}

func TestRun_DealAssignsSeatsAndPersonas(t *testing.T) {
	eng := New(func(o *Options) {
		o.Rand = rand.New(rand.NewSource(42))
	})

	_, err := eng.Run(context.Background())
	require.NoError(t, err)

	players := eng.State().Players
	require.Len(t, players, 6)

	var wolves []*core.Player
	for i, p := range players {
		assert.Equal(t, i+1, p.ID)
		assert.NotEmpty(t, p.Personality.Name)
		require.NotNil(t, p.Memory)
		if p.Role == core.RoleWolf {
			wolves = append(wolves, p)
		}
	}

	require.Len(t, wolves, 2)
	assert.Equal(t, []int{wolves[1].ID}, wolves[0].Teammates)
	assert.Equal(t, []int{wolves[0].ID}, wolves[1].Teammates)
}

func TestRun_SecondRunRefused(t *testing.T) {
	roster := testutil.NewRosterBuilder().
		Seats(core.RoleWolf, core.RoleWolf, core.RoleVillager).
		Build()
	eng := New(func(o *Options) {
		o.Roster = roster
		o.Gateway = gateway.NewMock()
	})

	outcome, err := eng.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, core.SideWolf, outcome.Winner)
	assert.Equal(t, 1, outcome.Rounds)

	_, err = eng.Run(context.Background())
	assert.ErrorIs(t, err, ErrAlreadyRun)
}

func TestRun_GoodWinsWhenWolvesExtinct(t *testing.T) {
	roster := testutil.NewRosterBuilder().
		Seats(core.RoleVillager, core.RoleSeer, core.RoleWitch).
		Build()
	eng := New(func(o *Options) {
		o.Roster = roster
		o.Gateway = gateway.NewMock()
	})

	outcome, err := eng.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, core.SideGood, outcome.Winner)
}

func TestRun_EmptyTableIsGoodWin(t *testing.T) {
	roster := testutil.StandardRoster()
	for _, p := range roster {
		p.Kill()
	}
	eng := New(func(o *Options) {
		o.Roster = roster
		o.Gateway = gateway.NewMock()
	})

	outcome, err := eng.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, core.SideGood, outcome.Winner)
}

func TestRun_CallBudgetConcludesWithStandings(t *testing.T) {
	gw := gateway.NewMock().SetDefault(testutil.KillResponse(5))
	s := &captureSink{}
	eng := New(func(o *Options) {
		o.Roster = testutil.StandardRoster()
		o.Gateway = gw
		o.Sink = s
		o.Config.MaxGatewayCalls = 1
	})

	outcome, err := eng.Run(context.Background())
	require.ErrorIs(t, err, core.ErrCallBudget)
	require.NotNil(t, outcome)

	assert.Equal(t, core.SideWolf, outcome.Winner)
	assert.Equal(t, 1, outcome.Rounds)
	assert.Equal(t, 1, gw.Calls())

	over := s.byKind(core.NoticeGameOver)
	require.Len(t, over, 1)
	require.NotNil(t, over[0].Outcome)
	assert.Equal(t, core.SideWolf, over[0].Outcome.Winner)
}

func TestRun_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	gw := gateway.NewMock().SetDefault(testutil.IdleResponse())
	s := &captureSink{}
	eng := newTestEngine(gw, func(o *Options) { o.Sink = s })

	outcome, err := eng.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, outcome)
	assert.Empty(t, s.byKind(core.NoticeGameOver))
	assert.Zero(t, gw.Calls())
}

func TestRun_RoundCapEndsGame(t *testing.T) {
	gw := gateway.NewMock().SetDefault(testutil.IdleResponse())
	eng := newTestEngine(gw, func(o *Options) {
		o.Config.MaxRounds = 1
	})

	outcome, err := eng.Run(context.Background())
	require.NoError(t, err)

	// One full cycle where nobody acts: no kill, six blank statements,
	// no valid votes, then the cap trips on the next pass.
	assert.Equal(t, core.SideWolf, outcome.Winner)
	assert.Equal(t, 2, outcome.Rounds)
	assert.Equal(t, 15, gw.Calls())

	speeches := eventsOfKind(eng.State().Log, core.EventSpeech)
	require.Len(t, speeches, 6)
	for _, ev := range speeches {
		assert.Equal(t, "(no statement)", ev.Content)
	}
	assert.Empty(t, eventsOfKind(eng.State().Log, core.EventVote))
}

func TestRun_EndToEnd(t *testing.T) {
	gw := gateway.NewMock().EnqueueAll(
		// Night 1: the wolves strike player 5, the seer checks a wolf,
		// the witch sits on her potions.
		testutil.KillResponse(5),
		testutil.InvestigateResponse(1),
		testutil.IdleResponse(),
		// Day 1: statements from the five survivors.
		testutil.SpeechResponse("Player 5 was one of us. We need to look at who is quiet."),
		testutil.SpeechResponse("I agree with Player 1."),
		testutil.SpeechResponse("I have my suspicions about Player 1."),
		testutil.SpeechResponse("Too early to tell."),
		testutil.SpeechResponse("I will follow the majority."),
		// Day 1: votes split two against two, one self-vote discarded.
		testutil.VoteResponse(2),
		testutil.VoteResponse(1),
		testutil.VoteResponse(1),
		testutil.VoteResponse(2),
		testutil.VoteResponse(6),
		// Night 2: the wolves take the seer, the witch poisons player 6.
		testutil.KillResponse(3),
		testutil.InvestigateResponse(2),
		testutil.PoisonResponse(6),
	)
	s := &captureSink{}
	eng := newTestEngine(gw, func(o *Options) { o.Sink = s })

	outcome, err := eng.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, core.SideWolf, outcome.Winner)
	assert.Equal(t, 2, outcome.Rounds)
	assert.Equal(t, 16, gw.Calls())

	state := eng.State()
	for _, id := range []int{3, 5, 6} {
		assert.False(t, state.PlayerByID(id).Alive, "player %d should be dead", id)
	}
	for _, id := range []int{1, 2, 4} {
		assert.True(t, state.PlayerByID(id).Alive, "player %d should be alive", id)
	}

	deaths := eventsOfKind(state.Log, core.EventDeath)
	require.Len(t, deaths, 3)
	assert.Equal(t, 5, deaths[0].PlayerID)
	assert.Equal(t, string(core.CauseWolfKill), deaths[0].Payload["cause"])
	assert.Equal(t, 1, deaths[0].Round)
	assert.Equal(t, 3, deaths[1].PlayerID)
	assert.Equal(t, 6, deaths[2].PlayerID)
	assert.Equal(t, string(core.CausePoison), deaths[2].Payload["cause"])

	speeches := eventsOfKind(state.Log, core.EventSpeech)
	require.Len(t, speeches, 5)
	wantOrder := []int{1, 2, 3, 4, 6}
	for i, ev := range speeches {
		assert.Equal(t, wantOrder[i], ev.PlayerID)
	}

	// The self-vote never reaches the log.
	votes := eventsOfKind(state.Log, core.EventVote)
	assert.Len(t, votes, 4)

	seer := state.PlayerByID(3)
	assert.Equal(t, core.VerdictEvil, seer.Investigated[1])
	assert.Equal(t, core.VerdictEvil, seer.Investigated[2])

	witch := state.PlayerByID(4)
	assert.True(t, witch.HasAntidote)
	assert.False(t, witch.HasPoison)

	results := s.byKind(core.NoticeVoteResult)
	require.Len(t, results, 1)
	assert.Contains(t, results[0].Message, "tied")
	assert.Empty(t, s.byKind(core.NoticeEliminated))

	over := s.byKind(core.NoticeGameOver)
	require.Len(t, over, 1)
	assert.Contains(t, over[0].Message, "werewolves win")
}
