package prompt

import (
	"fmt"
	"strings"
	"testing"

	"github.com/hupe1980/wolfarena/core"
	"github.com/hupe1980/wolfarena/internal/testutil"
)

func TestBuildWolfNightSituation(t *testing.T) {
	st := testutil.StandardState()
	wolf := st.PlayerByID(1)

	sys, situation, err := NewBuilder().Build(wolf, st, core.ActionKindNight)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if sys != DefaultSystemContext {
		t.Errorf("unexpected system context: %q", sys)
	}

	for _, want := range []string{
		"You are **Player 1**",
		"Your role is **Werewolf**",
		"Your camp is **Wolf camp**",
		"Your packmates are: Player 2",
		MarkerNightWolf,
	} {
		if !strings.Contains(situation, want) {
			t.Errorf("situation missing %q", want)
		}
	}

	// The eligible list excludes the acting wolf itself.
	if !strings.Contains(situation, MarkerEligible+" Player 2, Player 3, Player 4, Player 5, Player 6") {
		t.Errorf("unexpected eligible list in:\n%s", situation)
	}
}

func TestBuildSeerExcludesInvestigated(t *testing.T) {
	st := testutil.StandardState()
	seer := st.PlayerByID(3)
	seer.RecordVerdict(1, core.VerdictEvil)
	seer.RecordVerdict(5, core.VerdictGood)

	_, situation, err := NewBuilder().Build(seer, st, core.ActionKindNight)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if !strings.Contains(situation, "Player 1 is **a werewolf**") {
		t.Error("investigation record missing wolf verdict")
	}
	if !strings.Contains(situation, "Player 5 is **good**") {
		t.Error("investigation record missing good verdict")
	}
	// Already-checked players never reappear as eligible targets.
	if !strings.Contains(situation, MarkerEligible+" Player 2, Player 4, Player 6") {
		t.Errorf("eligible list should exclude investigated players:\n%s", situation)
	}
}

func TestBuildSeerAllInvestigated(t *testing.T) {
	st := testutil.NewState(testutil.NewRosterBuilder().
		Seats(core.RoleWolf, core.RoleSeer).Build())
	seer := st.PlayerByID(2)
	seer.RecordVerdict(1, core.VerdictEvil)

	_, situation, err := NewBuilder().Build(seer, st, core.ActionKindNight)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !strings.Contains(situation, "already checked every living player") {
		t.Errorf("expected exhausted-targets note in:\n%s", situation)
	}
}

func TestBuildWitchSeesStrikeOnlyAtNight(t *testing.T) {
	st := testutil.StandardState()
	witch := st.PlayerByID(4)
	st.SetKillTarget(5)

	_, night, err := NewBuilder().Build(witch, st, core.ActionKindNight)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !strings.Contains(night, "the wolves struck **Player 5** tonight") {
		t.Error("witch night situation missing strike intel")
	}
	if !strings.Contains(night, "use your **antidote** to save Player 5") {
		t.Error("witch night situation missing antidote option")
	}
	if !strings.Contains(night, "Antidote: available") || !strings.Contains(night, "Poison: available") {
		t.Error("witch potion state missing")
	}

	// The same intel never leaks into day phases.
	st.Phase = core.PhaseDaySpeech
	_, day, err := NewBuilder().Build(witch, st, core.ActionKindSpeech)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if strings.Contains(day, "struck") {
		t.Error("strike intel leaked into a day situation")
	}
}

func TestBuildWitchSpentPotions(t *testing.T) {
	st := testutil.StandardState()
	witch := st.PlayerByID(4)
	witch.UseAntidote()
	witch.UsePoison()

	_, situation, err := NewBuilder().Build(witch, st, core.ActionKindNight)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !strings.Contains(situation, "Your antidote is already spent") {
		t.Error("missing spent-antidote line")
	}
	if !strings.Contains(situation, "Your poison is already spent") {
		t.Error("missing spent-poison line")
	}
}

func TestBuildStrikeIntelHiddenFromOthers(t *testing.T) {
	st := testutil.StandardState()
	st.SetKillTarget(5)
	seer := st.PlayerByID(3)

	_, situation, err := NewBuilder().Build(seer, st, core.ActionKindNight)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if strings.Contains(situation, "struck") || strings.Contains(situation, "Player 5** tonight") {
		t.Error("pending strike leaked to a non-witch player")
	}
}

func TestBuildVoteExcludesSelf(t *testing.T) {
	st := testutil.StandardState()
	st.Phase = core.PhaseDayVote
	villager := st.PlayerByID(5)

	_, situation, err := NewBuilder().Build(villager, st, core.ActionKindVote)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !strings.Contains(situation, MarkerVote) {
		t.Error("missing vote marker")
	}
	if !strings.Contains(situation, MarkerEligible+" Player 1, Player 2, Player 3, Player 4, Player 6") {
		t.Errorf("vote targets should exclude the voter:\n%s", situation)
	}
}

func TestBuildEventWindow(t *testing.T) {
	st := testutil.StandardState()
	for i := 1; i <= 12; i++ {
		st.Log.Append(core.NewSpeechEvent(1, 1, fmt.Sprintf("statement-%d", i)))
	}

	_, situation, err := NewBuilder().Build(st.PlayerByID(5), st, core.ActionKindSpeech)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if strings.Contains(situation, "statement-1\"") || strings.Contains(situation, "statement-2\"") {
		t.Error("events beyond the window leaked into the situation")
	}
	if !strings.Contains(situation, "statement-3") || !strings.Contains(situation, "statement-12") {
		t.Error("expected the ten newest events")
	}
}

func TestBuildThoughtWindowKeepsNumbering(t *testing.T) {
	st := testutil.StandardState()
	p := st.PlayerByID(6)
	for i := 1; i <= 5; i++ {
		p.Remember(fmt.Sprintf("idea-%d", i))
	}

	_, situation, err := NewBuilder().Build(p, st, core.ActionKindSpeech)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if strings.Contains(situation, "Thought 1:") || strings.Contains(situation, "idea-1") {
		t.Error("thoughts beyond the window leaked into the situation")
	}
	for _, want := range []string{"Thought 3: idea-3", "Thought 4: idea-4", "Thought 5: idea-5"} {
		if !strings.Contains(situation, want) {
			t.Errorf("situation missing %q", want)
		}
	}
}

func TestBuildOutputFormats(t *testing.T) {
	st := testutil.StandardState()
	p := st.PlayerByID(5)

	_, speech, _ := NewBuilder().Build(p, st, core.ActionKindSpeech)
	if !strings.Contains(speech, `"speech"`) || strings.Contains(speech, `"type": "vote"`) {
		t.Error("speech format should ask for speech, not a vote action")
	}

	_, vote, _ := NewBuilder().Build(p, st, core.ActionKindVote)
	if !strings.Contains(vote, `"type": "vote"`) {
		t.Error("vote format missing vote action shape")
	}

	_, night, _ := NewBuilder().Build(st.PlayerByID(4), st, core.ActionKindNight)
	for _, verb := range []string{`"save"`, `"poison"`, `"idle"`} {
		if !strings.Contains(night, verb) {
			t.Errorf("night format legend missing %s", verb)
		}
	}
}

func TestBuildDeadPlayersListed(t *testing.T) {
	st := testutil.StandardState()
	st.PlayerByID(2).Kill()
	st.PlayerByID(6).Kill()

	_, situation, err := NewBuilder().Build(st.PlayerByID(1), st, core.ActionKindSpeech)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !strings.Contains(situation, "Dead players: Player 2, Player 6") {
		t.Errorf("missing dead list in:\n%s", situation)
	}
	if !strings.Contains(situation, "(4 alive)") {
		t.Error("missing alive count")
	}
}

func TestBuildCustomSystemContextTemplate(t *testing.T) {
	st := testutil.StandardState()
	b := NewBuilder(func(o *Options) {
		o.SystemContext = NewInstructionFromText("You are {{.Role}} in a {{.PlayerCount}}-player game.")
	})

	sys, _, err := b.Build(st.PlayerByID(3), st, core.ActionKindNight)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if sys != "You are Seer in a 6-player game." {
		t.Errorf("rendered system context = %q", sys)
	}
}

func TestBuildProviderSystemContext(t *testing.T) {
	st := testutil.StandardState()
	b := NewBuilder(func(o *Options) {
		o.SystemContext = NewInstructionFromFunc(func(p *core.Player, _ *core.GameState) (string, error) {
			return fmt.Sprintf("seat %d", p.ID), nil
		})
	})

	sys, _, err := b.Build(st.PlayerByID(2), st, core.ActionKindSpeech)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if sys != "seat 2" {
		t.Errorf("sys = %q", sys)
	}
}
