package sink

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hupe1980/wolfarena/core"
)

func TestConsole_NarratesNotices(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(func(o *ConsoleOptions) {
		o.Writer = &buf
	})

	c.Publish(core.Notice{Kind: core.NoticePhaseChange, Round: 1, Message: "Night 1 falls over the village."})
	c.Publish(core.Notice{Kind: core.NoticeAction, Round: 1, Message: "The werewolves are choosing their prey."})
	c.Publish(core.Notice{Kind: core.NoticeSpeech, Round: 1, Message: "Player 3: I heard footsteps by the well."})
	c.Publish(core.Notice{Kind: core.NoticeDeath, Round: 1, Message: "Player 5 was killed during the night"})

	out := buf.String()
	for _, want := range []string{
		"== Night 1 falls over the village. ==",
		"The werewolves are choosing their prey.",
		"Player 3: I heard footsteps by the well.",
		"Player 5 was killed during the night",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if got := strings.Count(out, "\n"); got != 4 {
		t.Fatalf("expected 4 lines, got %d:\n%s", got, out)
	}
}

func TestConsole_GameOverPrintsReveals(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(func(o *ConsoleOptions) {
		o.Writer = &buf
	})

	c.Publish(core.Notice{
		Kind:    core.NoticeGameOver,
		Round:   3,
		Message: "Game over after 3 round(s): the good side wins.",
		Outcome: &core.Outcome{
			Winner: core.SideGood,
			Rounds: 3,
			Reveals: []core.RoleReveal{
				{PlayerID: 1, Role: core.RoleWolf, Alive: false},
				{PlayerID: 2, Role: core.RoleSeer, Alive: true},
			},
		},
	})

	out := buf.String()
	for _, want := range []string{
		"Game over after 3 round(s): the good side wins.",
		"Player 1: Werewolf (dead)",
		"Player 2: Seer (alive)",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestConsole_EmptyMessageWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(func(o *ConsoleOptions) {
		o.Writer = &buf
	})

	c.Publish(core.Notice{Kind: core.NoticeKind("unknown")})

	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}
