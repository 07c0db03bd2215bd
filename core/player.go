package core

// Verdict is the result a seer records about an investigated player.
type Verdict string

const (
	VerdictGood Verdict = "good"
	VerdictEvil Verdict = "evil"
)

// VerdictFor derives the investigation verdict for a role.
func VerdictFor(r Role) Verdict {
	if r.Evil() {
		return VerdictEvil
	}
	return VerdictGood
}

// Personality is a fixed flavor tag assigned at setup. It influences only
// the text sent to the reasoning service, never the rules.
type Personality struct {
	Name  string `yaml:"name" json:"name"`
	Style string `yaml:"style" json:"style"`
}

// Memory is a player's append-only private thought log. Only that player's
// actor may grow it and no other player ever observes it. Stored thoughts
// are never truncated; Recent is a display window, not a cap.
type Memory interface {
	// Append records one private thought at the end of the log.
	Append(thought string)
	// Recent returns up to n of the newest thoughts in insertion order.
	Recent(n int) []string
	// All returns every stored thought in insertion order.
	All() []string
	// Len reports the number of stored thoughts.
	Len() int
}

// Player is one seat at the table. ID and Role are immutable after
// construction; Alive flips to false at most once. Role-private fields are
// populated only for the role they belong to.
type Player struct {
	ID          int
	Role        Role
	Alive       bool
	Personality Personality

	// Teammates lists the ids of the other wolves. Populated for wolves
	// only, symmetric across the pack, fixed at setup.
	Teammates []int

	// Investigated maps a target id to the verdict the seer recorded for
	// it. Entries are never revisited or removed. Seer only.
	Investigated map[int]Verdict

	// HasAntidote and HasPoison are the witch's one-shot consumables. Each
	// flips to false exactly once and never resets.
	HasAntidote bool
	HasPoison   bool

	Memory Memory
}

// NewPlayer constructs a living player with role-private state initialized
// for the given role.
func NewPlayer(id int, role Role, personality Personality, mem Memory) *Player {
	p := &Player{
		ID:          id,
		Role:        role,
		Alive:       true,
		Personality: personality,
		Memory:      mem,
	}
	switch role {
	case RoleSeer:
		p.Investigated = make(map[int]Verdict)
	case RoleWitch:
		p.HasAntidote = true
		p.HasPoison = true
	}
	return p
}

// Kill marks the player dead. Liveness is monotonic; there is no revive.
func (p *Player) Kill() { p.Alive = false }

// RecordVerdict stores an investigation result for target. It reports false
// and leaves state untouched when a verdict for target already exists, so a
// recorded verdict can never be overwritten.
func (p *Player) RecordVerdict(target int, v Verdict) bool {
	if p.Investigated == nil {
		p.Investigated = make(map[int]Verdict)
	}
	if _, ok := p.Investigated[target]; ok {
		return false
	}
	p.Investigated[target] = v
	return true
}

// Knows reports whether a verdict for target has already been recorded.
func (p *Player) Knows(target int) bool {
	_, ok := p.Investigated[target]
	return ok
}

// UseAntidote consumes the antidote. It reports false when the antidote was
// already spent, leaving state unchanged.
func (p *Player) UseAntidote() bool {
	if !p.HasAntidote {
		return false
	}
	p.HasAntidote = false
	return true
}

// UsePoison consumes the poison vial. It reports false when the poison was
// already spent, leaving state unchanged.
func (p *Player) UsePoison() bool {
	if !p.HasPoison {
		return false
	}
	p.HasPoison = false
	return true
}

// Remember appends a private thought to the player's memory. Empty thoughts
// and players without memory are ignored.
func (p *Player) Remember(thought string) {
	if thought == "" || p.Memory == nil {
		return
	}
	p.Memory.Append(thought)
}
