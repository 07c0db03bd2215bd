package core

import "testing"

type stubMemory struct{ entries []string }

func (m *stubMemory) Append(thought string) { m.entries = append(m.entries, thought) }
func (m *stubMemory) All() []string         { return m.entries }
func (m *stubMemory) Len() int              { return len(m.entries) }
func (m *stubMemory) Recent(n int) []string {
	if n >= len(m.entries) {
		return m.entries
	}
	return m.entries[len(m.entries)-n:]
}

func TestNewPlayer_RolePrivateState(t *testing.T) {
	witch := NewPlayer(1, RoleWitch, Personality{}, nil)
	if !witch.HasAntidote || !witch.HasPoison {
		t.Fatalf("witch should start with both consumables: %+v", witch)
	}

	seer := NewPlayer(2, RoleSeer, Personality{}, nil)
	if seer.Investigated == nil {
		t.Fatal("seer should start with an empty verdict map")
	}

	villager := NewPlayer(3, RoleVillager, Personality{}, nil)
	if villager.HasAntidote || villager.HasPoison || villager.Investigated != nil {
		t.Fatalf("villager should carry no role-private state: %+v", villager)
	}
	if !villager.Alive {
		t.Fatal("players start alive")
	}
}

func TestPlayer_OneShotConsumables(t *testing.T) {
	w := NewPlayer(1, RoleWitch, Personality{}, nil)

	if !w.UseAntidote() {
		t.Fatal("first antidote use should succeed")
	}
	if w.UseAntidote() {
		t.Fatal("antidote must not be usable twice")
	}
	if w.HasAntidote {
		t.Fatal("antidote flag must stay spent")
	}

	if !w.UsePoison() {
		t.Fatal("first poison use should succeed")
	}
	if w.UsePoison() {
		t.Fatal("poison must not be usable twice")
	}
}

func TestPlayer_VerdictNeverOverwritten(t *testing.T) {
	s := NewPlayer(1, RoleSeer, Personality{}, nil)

	if !s.RecordVerdict(4, VerdictEvil) {
		t.Fatal("first verdict for a target should be recorded")
	}
	if s.RecordVerdict(4, VerdictGood) {
		t.Fatal("a second verdict for the same target must be refused")
	}
	if s.Investigated[4] != VerdictEvil {
		t.Fatalf("original verdict lost: %+v", s.Investigated)
	}
	if !s.Knows(4) || s.Knows(5) {
		t.Fatal("Knows should reflect recorded targets only")
	}
}

func TestPlayer_KillIsMonotonic(t *testing.T) {
	p := NewPlayer(1, RoleVillager, Personality{}, nil)
	p.Kill()
	if p.Alive {
		t.Fatal("Kill should flip liveness")
	}
}

func TestPlayer_Remember(t *testing.T) {
	mem := &stubMemory{}
	p := NewPlayer(1, RoleVillager, Personality{}, mem)

	p.Remember("suspicious of Player 3")
	p.Remember("")
	if mem.Len() != 1 {
		t.Fatalf("empty thoughts must be ignored, got %d entries", mem.Len())
	}

	noMem := NewPlayer(2, RoleVillager, Personality{}, nil)
	noMem.Remember("should not panic")
}

func TestVerdictFor(t *testing.T) {
	if VerdictFor(RoleWolf) != VerdictEvil {
		t.Error("wolves investigate as evil")
	}
	for _, r := range []Role{RoleSeer, RoleWitch, RoleVillager} {
		if VerdictFor(r) != VerdictGood {
			t.Errorf("%s should investigate as good", r)
		}
	}
}
