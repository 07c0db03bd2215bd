package core

import "testing"

func testRoster() []*Player {
	return []*Player{
		NewPlayer(1, RoleWolf, Personality{}, nil),
		NewPlayer(2, RoleWolf, Personality{}, nil),
		NewPlayer(3, RoleSeer, Personality{}, nil),
		NewPlayer(4, RoleWitch, Personality{}, nil),
		NewPlayer(5, RoleVillager, Personality{}, nil),
		NewPlayer(6, RoleVillager, Personality{}, nil),
	}
}

func TestGameState_Lookups(t *testing.T) {
	st := NewGameState(testRoster(), nil)

	if st.Round != 1 || st.Phase != PhaseNight {
		t.Fatalf("fresh state should start at round 1, night: %+v", st)
	}
	if p := st.PlayerByID(4); p == nil || p.Role != RoleWitch {
		t.Fatalf("PlayerByID(4) = %+v", p)
	}
	if p := st.PlayerByID(99); p != nil {
		t.Fatalf("nonexistent id should yield nil, got %+v", p)
	}
}

func TestGameState_AliveOrderingAndCounts(t *testing.T) {
	st := NewGameState(testRoster(), nil)
	st.PlayerByID(2).Kill()
	st.PlayerByID(5).Kill()

	ids := st.AliveIDs()
	want := []int{1, 3, 4, 6}
	if len(ids) != len(want) {
		t.Fatalf("AliveIDs = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("AliveIDs = %v, want %v", ids, want)
		}
	}

	if n := st.AliveWolves(); n != 1 {
		t.Errorf("AliveWolves = %d, want 1", n)
	}
	if n := st.AliveGood(); n != 3 {
		t.Errorf("AliveGood = %d, want 3", n)
	}
	if wolves := st.AliveWithRole(RoleWolf); len(wolves) != 1 || wolves[0].ID != 1 {
		t.Errorf("AliveWithRole(wolf) = %+v", wolves)
	}
	if seers := st.AliveWithRole(RoleSeer); len(seers) != 1 || seers[0].ID != 3 {
		t.Errorf("AliveWithRole(seer) = %+v", seers)
	}
}

func TestGameState_KillTargetLifecycle(t *testing.T) {
	st := NewGameState(testRoster(), nil)

	if st.KillTarget != nil {
		t.Fatal("kill target should start unset")
	}
	st.SetKillTarget(5)
	if st.KillTarget == nil || *st.KillTarget != 5 {
		t.Fatalf("SetKillTarget failed: %+v", st.KillTarget)
	}
	st.ClearKillTarget()
	if st.KillTarget != nil {
		t.Fatal("ClearKillTarget should drop the target")
	}
}

func TestGameState_Reveals(t *testing.T) {
	st := NewGameState(testRoster(), nil)
	st.PlayerByID(3).Kill()

	reveals := st.Reveals()
	if len(reveals) != 6 {
		t.Fatalf("expected a reveal per seat, got %d", len(reveals))
	}
	if reveals[2].PlayerID != 3 || reveals[2].Role != RoleSeer || reveals[2].Alive {
		t.Fatalf("reveal for seat 3 malformed: %+v", reveals[2])
	}
}

func TestDecision_Target(t *testing.T) {
	if _, ok := (Decision{}).Target(); ok {
		t.Error("decision without action has no target")
	}
	if _, ok := (Decision{Action: &Action{Type: ActionIdle}}).Target(); ok {
		t.Error("zero target is not usable")
	}
	if tgt, ok := (Decision{Action: &Action{Type: ActionTarget, Target: 3}}).Target(); !ok || tgt != 3 {
		t.Errorf("Target() = %d, %v", tgt, ok)
	}
}

func TestRole_SideAndLabel(t *testing.T) {
	if RoleWolf.Side() != SideWolf || !RoleWolf.Evil() {
		t.Error("wolf should be on the wolf side")
	}
	for _, r := range []Role{RoleSeer, RoleWitch, RoleVillager} {
		if r.Side() != SideGood || r.Evil() {
			t.Errorf("%s should be on the good side", r)
		}
	}
	if RoleWolf.Label() != "Werewolf" {
		t.Errorf("Label() = %q", RoleWolf.Label())
	}

	comp := DefaultComposition()
	if len(comp) != 6 {
		t.Fatalf("default composition should seat six players, got %d", len(comp))
	}
	wolves := 0
	for _, r := range comp {
		if r == RoleWolf {
			wolves++
		}
	}
	if wolves != 2 {
		t.Errorf("default composition should hold two wolves, got %d", wolves)
	}
}
