package core

// Role identifies the hidden role a player was dealt at setup. The role set
// is closed; rule logic switches over these constants exhaustively and roles
// never change after construction.
type Role string

const (
	RoleWolf     Role = "wolf"
	RoleSeer     Role = "seer"
	RoleWitch    Role = "witch"
	RoleVillager Role = "villager"
)

// Side groups roles into the two victory camps.
type Side string

const (
	// SideWolf is the wolf pack.
	SideWolf Side = "wolf"
	// SideGood is every non-wolf role.
	SideGood Side = "good"
)

// Side returns the victory camp the role belongs to.
func (r Role) Side() Side {
	if r == RoleWolf {
		return SideWolf
	}
	return SideGood
}

// Evil reports whether the role belongs to the wolf camp. This is exactly
// what a seer investigation reveals about its target.
func (r Role) Evil() bool { return r == RoleWolf }

// Label returns the human-readable role name used in prompts, reveals and
// transcripts.
func (r Role) Label() string {
	switch r {
	case RoleWolf:
		return "Werewolf"
	case RoleSeer:
		return "Seer"
	case RoleWitch:
		return "Witch"
	case RoleVillager:
		return "Villager"
	default:
		return string(r)
	}
}

// DefaultComposition returns the reference six-player role multiset: two
// wolves, one seer, one witch and two villagers. The engine shuffles a copy
// of this slice when dealing roles.
func DefaultComposition() []Role {
	return []Role{RoleWolf, RoleWolf, RoleSeer, RoleWitch, RoleVillager, RoleVillager}
}
