package core

// Phase names the coarse game phase the orchestrator is executing.
type Phase string

const (
	PhaseNight     Phase = "night"
	PhaseDaySpeech Phase = "day_speech"
	PhaseDayVote   Phase = "day_vote"
)

// EventLog is the append-only store of the public narrative. Entries are
// never mutated or removed; Recent is a display window over a log that keeps
// growing. Implementations must be safe for concurrent readers.
type EventLog interface {
	Append(e PublicEvent)
	// Events returns a defensive copy of the full log in insertion order.
	Events() []PublicEvent
	// Recent returns up to n of the newest entries in insertion order.
	Recent(n int) []PublicEvent
	Len() int
}

// GameState is the aggregate mutable state of one running game. It is owned
// exclusively by the orchestrator and its resolvers; actors receive it to
// read, never to mutate. The roster is ordered by ascending player id.
type GameState struct {
	// Round starts at 1 and increments once per completed night+day cycle.
	Round int
	// Phase is the position of the orchestrator in the current cycle.
	Phase Phase
	// Players is the full roster, the dead included.
	Players []*Player
	// Log is the public narrative every agent sees (window limited).
	Log EventLog

	// KillTarget is the wolves' pending night target. It exists only
	// between the wolf sub-phase and night resolution and is cleared
	// afterwards; the public log only ever sees the resolved death.
	KillTarget *int
}

// NewGameState assembles the initial state for a dealt roster.
func NewGameState(players []*Player, log EventLog) *GameState {
	return &GameState{
		Round:   1,
		Phase:   PhaseNight,
		Players: players,
		Log:     log,
	}
}

// PlayerByID returns the player with the given id, or nil when no such
// player exists.
func (s *GameState) PlayerByID(id int) *Player {
	for _, p := range s.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Alive returns the living players in ascending id order.
func (s *GameState) Alive() []*Player {
	var alive []*Player
	for _, p := range s.Players {
		if p.Alive {
			alive = append(alive, p)
		}
	}
	return alive
}

// AliveIDs returns the ids of the living players in ascending order.
func (s *GameState) AliveIDs() []int {
	var ids []int
	for _, p := range s.Players {
		if p.Alive {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

// AliveWithRole returns the living players holding the role, in ascending id
// order.
func (s *GameState) AliveWithRole(r Role) []*Player {
	var alive []*Player
	for _, p := range s.Players {
		if p.Alive && p.Role == r {
			alive = append(alive, p)
		}
	}
	return alive
}

// AliveWolves counts the living wolves.
func (s *GameState) AliveWolves() int {
	n := 0
	for _, p := range s.Players {
		if p.Alive && p.Role == RoleWolf {
			n++
		}
	}
	return n
}

// AliveGood counts the living non-wolves.
func (s *GameState) AliveGood() int {
	n := 0
	for _, p := range s.Players {
		if p.Alive && p.Role != RoleWolf {
			n++
		}
	}
	return n
}

// ClearKillTarget drops the transient night target.
func (s *GameState) ClearKillTarget() { s.KillTarget = nil }

// SetKillTarget records the wolves' pending target for this night.
func (s *GameState) SetKillTarget(id int) { s.KillTarget = &id }

// Reveals returns the final role reveal for every seat, in roster order.
func (s *GameState) Reveals() []RoleReveal {
	reveals := make([]RoleReveal, 0, len(s.Players))
	for _, p := range s.Players {
		reveals = append(reveals, RoleReveal{
			PlayerID:    p.ID,
			Role:        p.Role,
			Alive:       p.Alive,
			Personality: p.Personality.Name,
		})
	}
	return reveals
}
