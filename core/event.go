package core

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EventKind classifies a public log entry.
type EventKind string

const (
	EventSpeech EventKind = "speech"
	EventVote   EventKind = "vote"
	EventDeath  EventKind = "death"
)

// DeathCause attributes a death event to the mechanic that produced it.
type DeathCause string

const (
	CauseWolfKill DeathCause = "wolf_kill"
	CausePoison   DeathCause = "poison"
	CauseVote     DeathCause = "voted_out"
)

// PublicEvent is one entry of the append-only public narrative log. After
// emission it must be treated as immutable. Every agent sees the log (window
// limited) when composing its next decision, so events carry only publicly
// known facts: night actions surface here solely as resolved deaths with an
// attributed cause, never as the wolves' pending target.
type PublicEvent struct {
	ID        string         `json:"id"`
	Round     int            `json:"round"`
	Phase     Phase          `json:"phase"`
	Kind      EventKind      `json:"kind"`
	PlayerID  int            `json:"player_id"`
	Content   string         `json:"content"`
	Payload   map[string]any `json:"payload,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// NewSpeechEvent records one day-speech turn. Content is the statement text
// (or the explicit no-statement marker the day coordinator substitutes).
func NewSpeechEvent(round, playerID int, text string) PublicEvent {
	return PublicEvent{
		ID:        NewID(),
		Round:     round,
		Phase:     PhaseDaySpeech,
		Kind:      EventSpeech,
		PlayerID:  playerID,
		Content:   text,
		Timestamp: time.Now().UTC(),
	}
}

// NewVoteEvent records one counted vote. The target also travels in the
// payload under "target" for structured consumers.
func NewVoteEvent(round, voterID, targetID int) PublicEvent {
	return PublicEvent{
		ID:        NewID(),
		Round:     round,
		Phase:     PhaseDayVote,
		Kind:      EventVote,
		PlayerID:  voterID,
		Content:   fmt.Sprintf("Player %d votes to eliminate Player %d", voterID, targetID),
		Payload:   map[string]any{"target": targetID},
		Timestamp: time.Now().UTC(),
	}
}

// NewDeathEvent records a resolved death with its attributed cause.
func NewDeathEvent(round int, phase Phase, playerID int, cause DeathCause) PublicEvent {
	return PublicEvent{
		ID:        NewID(),
		Round:     round,
		Phase:     phase,
		Kind:      EventDeath,
		PlayerID:  playerID,
		Content:   fmt.Sprintf("Player %d %s", playerID, cause.describe()),
		Payload:   map[string]any{"cause": string(cause)},
		Timestamp: time.Now().UTC(),
	}
}

func (c DeathCause) describe() string {
	switch c {
	case CauseWolfKill:
		return "was killed during the night"
	case CausePoison:
		return "was poisoned during the night"
	case CauseVote:
		return "was voted out"
	default:
		return "died"
	}
}

// NewID generates a unique identifier for events.
func NewID() string { return uuid.NewString() }
