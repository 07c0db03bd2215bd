package gateway

import (
	"context"
	"math/rand"
	"testing"

	"github.com/hupe1980/wolfarena/core"
	"github.com/hupe1980/wolfarena/internal/testutil"
	"github.com/hupe1980/wolfarena/prompt"
	"github.com/hupe1980/wolfarena/protocol"
)

func seeded(seed int64) func(o *ScriptedOptions) {
	return func(o *ScriptedOptions) { o.Rand = rand.New(rand.NewSource(seed)) }
}

func situationFor(t *testing.T, st *core.GameState, playerID int, kind core.ActionKind) core.GatewayRequest {
	t.Helper()
	sys, situation, err := prompt.NewBuilder().Build(st.PlayerByID(playerID), st, kind)
	if err != nil {
		t.Fatalf("build situation: %v", err)
	}
	return core.GatewayRequest{SystemContext: sys, Situation: situation}
}

func TestScriptedWolfPicksEligibleTarget(t *testing.T) {
	st := testutil.StandardState()
	s := NewScripted(seeded(42))

	for i := 0; i < 20; i++ {
		resp, err := s.Respond(context.Background(), situationFor(t, st, 1, core.ActionKindNight))
		if err != nil {
			t.Fatalf("Respond: %v", err)
		}
		d, ok := protocol.Parse(resp.Text)
		if !ok {
			t.Fatalf("scripted reply did not decode: %q", resp.Text)
		}
		target, hasTarget := d.Target()
		if !hasTarget {
			t.Fatal("wolf reply carries no target")
		}
		if target < 2 || target > 6 {
			t.Fatalf("wolf picked %d, outside the offered targets", target)
		}
	}
}

func TestScriptedSeerWithNoFreshTargetsIdles(t *testing.T) {
	st := testutil.NewState(testutil.NewRosterBuilder().
		Seats(core.RoleWolf, core.RoleSeer).Build())
	seer := st.PlayerByID(2)
	seer.RecordVerdict(1, core.VerdictEvil)

	s := NewScripted(seeded(1))
	resp, err := s.Respond(context.Background(), situationFor(t, st, 2, core.ActionKindNight))
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}
	d, ok := protocol.Parse(resp.Text)
	if !ok {
		t.Fatalf("reply did not decode: %q", resp.Text)
	}
	if _, hasTarget := d.Target(); hasTarget {
		t.Error("seer with nothing to check should not name a target")
	}
}

func TestScriptedWitchBranches(t *testing.T) {
	st := testutil.StandardState()
	st.SetKillTarget(5)
	s := NewScripted(seeded(7))

	saves, poisons, idles := 0, 0, 0
	for i := 0; i < 60; i++ {
		resp, err := s.Respond(context.Background(), situationFor(t, st, 4, core.ActionKindNight))
		if err != nil {
			t.Fatalf("Respond: %v", err)
		}
		d, ok := protocol.Parse(resp.Text)
		if !ok {
			t.Fatalf("reply did not decode: %q", resp.Text)
		}
		if d.Action == nil {
			t.Fatal("witch reply carries no action")
		}
		switch d.Action.Type {
		case core.ActionSave:
			if d.Action.Target != 5 {
				t.Fatalf("save targeted %d, want tonight's victim 5", d.Action.Target)
			}
			saves++
		case core.ActionPoison:
			if d.Action.Target < 1 || d.Action.Target > 6 || d.Action.Target == 4 {
				t.Fatalf("poison targeted %d, outside the offered list", d.Action.Target)
			}
			poisons++
		case core.ActionIdle:
			idles++
		default:
			t.Fatalf("unexpected witch action %q", d.Action.Type)
		}
	}
	if saves == 0 || idles == 0 {
		t.Errorf("expected a mix of saves and idles over 60 draws, got %d/%d/%d", saves, poisons, idles)
	}
}

func TestScriptedVoteAndSpeech(t *testing.T) {
	st := testutil.StandardState()
	s := NewScripted(seeded(3))

	resp, err := s.Respond(context.Background(), situationFor(t, st, 5, core.ActionKindVote))
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}
	d, ok := protocol.Parse(resp.Text)
	if !ok {
		t.Fatalf("vote reply did not decode: %q", resp.Text)
	}
	if target, hasTarget := d.Target(); !hasTarget || target == 5 {
		t.Errorf("vote target = %d, %v; want someone else at the table", target, hasTarget)
	}

	resp, err = s.Respond(context.Background(), situationFor(t, st, 5, core.ActionKindSpeech))
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}
	d, ok = protocol.Parse(resp.Text)
	if !ok {
		t.Fatalf("speech reply did not decode: %q", resp.Text)
	}
	if d.Speech == "" {
		t.Error("speech reply is silent")
	}
}

func TestScriptedDeterministicWithSeed(t *testing.T) {
	st := testutil.StandardState()
	req := situationFor(t, st, 1, core.ActionKindNight)

	a := NewScripted(seeded(99))
	b := NewScripted(seeded(99))
	for i := 0; i < 10; i++ {
		ra, _ := a.Respond(context.Background(), req)
		rb, _ := b.Respond(context.Background(), req)
		if ra.Text != rb.Text {
			t.Fatalf("draw %d diverged:\n%s\n%s", i, ra.Text, rb.Text)
		}
	}
}

func TestScriptedHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewScripted(seeded(1))
	if _, err := s.Respond(ctx, core.GatewayRequest{}); err == nil {
		t.Error("expected context error")
	}
}
