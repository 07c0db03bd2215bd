package core

// NoticeKind classifies a spectator notification.
type NoticeKind string

const (
	NoticePhaseChange NoticeKind = "phase_change"
	NoticeAction      NoticeKind = "action"
	NoticeSpeech      NoticeKind = "speech"
	NoticeVote        NoticeKind = "vote"
	NoticeVoteResult  NoticeKind = "vote_result"
	NoticeDeath       NoticeKind = "death"
	NoticeEliminated  NoticeKind = "eliminated"
	NoticeGameOver    NoticeKind = "game_over"
)

// Notice is one structured spectator notification. Event is set for notices
// that mirror a public log entry; Outcome is set on game_over.
type Notice struct {
	Kind    NoticeKind   `json:"kind"`
	Round   int          `json:"round"`
	Phase   Phase        `json:"phase,omitempty"`
	Message string       `json:"message,omitempty"`
	Event   *PublicEvent `json:"event,omitempty"`
	Outcome *Outcome     `json:"outcome,omitempty"`
}

// EventSink receives notices as the game progresses. Publish is fire and
// forget: implementations must return promptly and swallow their own
// failures, because a slow or broken sink must never affect game control
// flow. The engine treats a nil sink as "no spectators".
type EventSink interface {
	Publish(n Notice)
}

// Outcome is the final report of a completed game.
type Outcome struct {
	Winner Side `json:"winner"`
	// Rounds is the value of the round counter when the game ended.
	Rounds  int          `json:"rounds"`
	Reveals []RoleReveal `json:"reveals"`
}

// RoleReveal discloses one seat's hidden role after the game ends.
type RoleReveal struct {
	PlayerID    int    `json:"player_id"`
	Role        Role   `json:"role"`
	Alive       bool   `json:"alive"`
	Personality string `json:"personality,omitempty"`
}
