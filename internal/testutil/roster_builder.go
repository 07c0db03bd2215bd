package testutil

import (
	"github.com/hupe1980/wolfarena/core"
	"github.com/hupe1980/wolfarena/journal"
	"github.com/hupe1980/wolfarena/memory"
)

// RosterBuilder helps construct dealt rosters with fluent chaining for
// tests. Seats receive ids 1..n in declaration order, each backed by a
// fresh in-memory thought log, with wolf packmates wired symmetrically.
// Example:
//
//	players := NewRosterBuilder().Seat(core.RoleWolf).Seat(core.RoleSeer).Build()
type RosterBuilder struct {
	roles    []core.Role
	personas []core.Personality
}

// NewRosterBuilder creates an empty roster builder. Use chainable methods
// (Seat, Seats, Persona) then call Build.
func NewRosterBuilder() *RosterBuilder {
	return &RosterBuilder{}
}

// Seat appends one seat with the given role (chainable).
func (b *RosterBuilder) Seat(role core.Role) *RosterBuilder {
	b.roles = append(b.roles, role)
	b.personas = append(b.personas, core.Personality{Name: "plain"})
	return b
}

// Seats appends multiple seats in order (chainable).
func (b *RosterBuilder) Seats(roles ...core.Role) *RosterBuilder {
	for _, r := range roles {
		b.Seat(r)
	}
	return b
}

// Persona overrides the personality of the most recently added seat
// (chainable).
func (b *RosterBuilder) Persona(name, style string) *RosterBuilder {
	if len(b.personas) > 0 {
		b.personas[len(b.personas)-1] = core.Personality{Name: name, Style: style}
	}
	return b
}

// Build returns the dealt roster.
func (b *RosterBuilder) Build() []*core.Player {
	players := make([]*core.Player, 0, len(b.roles))
	for i, role := range b.roles {
		players = append(players, core.NewPlayer(i+1, role, b.personas[i], memory.NewInMemoryLog()))
	}
	wireWolves(players)
	return players
}

// wireWolves populates symmetric packmate lists on every wolf.
func wireWolves(players []*core.Player) {
	var wolfIDs []int
	for _, p := range players {
		if p.Role == core.RoleWolf {
			wolfIDs = append(wolfIDs, p.ID)
		}
	}
	for _, p := range players {
		if p.Role != core.RoleWolf {
			continue
		}
		p.Teammates = nil
		for _, id := range wolfIDs {
			if id != p.ID {
				p.Teammates = append(p.Teammates, id)
			}
		}
	}
}

// StandardRoster deals the reference six-player composition in fixed seat
// order: wolves in seats 1 and 2, seer in 3, witch in 4, villagers in 5
// and 6. Fixed seating keeps test scenarios readable.
func StandardRoster() []*core.Player {
	return NewRosterBuilder().Seats(
		core.RoleWolf,
		core.RoleWolf,
		core.RoleSeer,
		core.RoleWitch,
		core.RoleVillager,
		core.RoleVillager,
	).Build()
}

// NewState wraps a roster in a game state backed by a fresh in-memory
// journal.
func NewState(players []*core.Player) *core.GameState {
	return core.NewGameState(players, journal.NewInMemoryLog())
}

// StandardState is NewState(StandardRoster()).
func StandardState() *core.GameState {
	return NewState(StandardRoster())
}
