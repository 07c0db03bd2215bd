package core

import "testing"

func TestEvent_Constructors(t *testing.T) {
	sp := NewSpeechEvent(2, 3, "I trust Player 1")
	if sp.Kind != EventSpeech || sp.Round != 2 || sp.PlayerID != 3 || sp.Phase != PhaseDaySpeech {
		t.Fatalf("NewSpeechEvent did not initialize fields correctly: %+v", sp)
	}
	if sp.ID == "" || sp.Timestamp.IsZero() {
		t.Fatalf("NewSpeechEvent missing id or timestamp: %+v", sp)
	}
	if sp.Content != "I trust Player 1" {
		t.Fatalf("Speech content altered: %q", sp.Content)
	}

	v := NewVoteEvent(1, 4, 2)
	if v.Kind != EventVote || v.PlayerID != 4 || v.Phase != PhaseDayVote {
		t.Fatalf("NewVoteEvent malformed: %+v", v)
	}
	if tgt, ok := v.Payload["target"].(int); !ok || tgt != 2 {
		t.Fatalf("Vote payload missing target: %+v", v.Payload)
	}

	d := NewDeathEvent(1, PhaseNight, 5, CauseWolfKill)
	if d.Kind != EventDeath || d.PlayerID != 5 || d.Phase != PhaseNight {
		t.Fatalf("NewDeathEvent malformed: %+v", d)
	}
	if cause, ok := d.Payload["cause"].(string); !ok || cause != string(CauseWolfKill) {
		t.Fatalf("Death payload missing cause: %+v", d.Payload)
	}
}

func TestEvent_DeathContentPerCause(t *testing.T) {
	cases := map[DeathCause]string{
		CauseWolfKill: "Player 2 was killed during the night",
		CausePoison:   "Player 2 was poisoned during the night",
		CauseVote:     "Player 2 was voted out",
	}
	for cause, want := range cases {
		e := NewDeathEvent(1, PhaseNight, 2, cause)
		if e.Content != want {
			t.Errorf("cause %s: got %q, want %q", cause, e.Content, want)
		}
	}
}

func TestEvent_IDUniqueness(t *testing.T) {
	a := NewID()
	b := NewID()
	if a == b {
		t.Error("Expected unique IDs")
	}
}
