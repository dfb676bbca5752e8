package model

import "testing"

func TestTeamRosterAddRemove(t *testing.T) {
	team := NewTeam("The Black Gulls", NewPlanetID())
	p1, p2 := NewPlayerID(), NewPlayerID()

	team.AddPlayer(p1)
	team.AddPlayer(p2)
	if team.RosterSize() != 2 {
		t.Fatalf("roster size = %d, want 2", team.RosterSize())
	}
	if !team.HasPlayer(p1) {
		t.Fatal("expected p1 on roster")
	}

	team.RemovePlayer(p1)
	if team.HasPlayer(p1) {
		t.Fatal("did not expect p1 on roster after removal")
	}
	if team.RosterSize() != 1 {
		t.Fatalf("roster size after removal = %d, want 1", team.RosterSize())
	}
}

func TestTeamResourceBounds(t *testing.T) {
	team := NewTeam("The Rusty Doubloon", NewPlanetID())
	team.Resources[ResourceScraps] = 5

	if team.SubResource(ResourceScraps, 10) {
		t.Fatal("expected insufficient-funds debit to fail")
	}
	if !team.SubResource(ResourceScraps, 5) {
		t.Fatal("expected exact-balance debit to succeed")
	}
	if team.Resources[ResourceScraps] != 0 {
		t.Fatalf("scraps = %d, want 0", team.Resources[ResourceScraps])
	}
}

func TestClearCrewRoleOnRemoval(t *testing.T) {
	team := NewTeam("The Iron Parrot", NewPlanetID())
	captain := NewPlayerID()
	team.AddPlayer(captain)
	team.CrewRoles.Captain = &captain

	team.RemovePlayer(captain)
	if team.CrewRoles.Captain != nil {
		t.Fatal("expected captain role cleared on removal")
	}
}

func TestSpaceshipCapacitiesPositive(t *testing.T) {
	s := NewSpaceship()
	if s.CrewCapacity() <= 0 || s.StorageCapacity() <= 0 || s.FuelCapacity() <= 0 {
		t.Fatal("expected positive base capacities")
	}
	if s.Speed(0) <= 0 {
		t.Fatal("expected positive base speed")
	}
}

func TestSpaceshipSpeedDecreasesWithLoad(t *testing.T) {
	s := NewSpaceship()
	empty := s.Speed(0)
	full := s.Speed(s.StorageCapacity())
	if full >= empty {
		t.Fatalf("loaded speed %v should be less than empty speed %v", full, empty)
	}
}

func TestSpaceshipUpgradeAdvancesTier(t *testing.T) {
	s := NewSpaceship()
	if !s.CanUpgrade(ComponentHull) {
		t.Fatal("expected base hull to be upgradeable")
	}
	before := s.StorageCapacity()
	s.ApplyUpgrade(ComponentHull)
	if s.Hull.Tier != 1 {
		t.Fatalf("hull tier = %d, want 1", s.Hull.Tier)
	}
	if s.StorageCapacity() <= before {
		t.Fatal("expected capacity to grow after hull upgrade")
	}
}

func TestTournamentStateTransitions(t *testing.T) {
	window := RegistrationWindow{
		RegistrationOpensAt:  100,
		RegistrationClosesAt: 200,
		ConfirmationClosesAt: 300,
		StartsAt:             400,
	}
	tour := NewTournament(NewTeamID(), NewPlanetID(), window, 8)

	if got := tour.State(50); got != TournamentStateNone {
		t.Errorf("state before open = %v, want None", got)
	}
	if got := tour.State(150); got != TournamentStateRegistration {
		t.Errorf("state in registration = %v, want Registration", got)
	}
	if got := tour.State(250); got != TournamentStateConfirmation {
		t.Errorf("state in confirmation = %v, want Confirmation", got)
	}
	if got := tour.State(350); got != TournamentStateSyncing {
		t.Errorf("state in syncing = %v, want Syncing", got)
	}
	if got := tour.State(500); got != TournamentStateStarted {
		t.Errorf("state after start = %v, want Started", got)
	}
}

func TestTournamentFull(t *testing.T) {
	tour := NewTournament(NewTeamID(), NewPlanetID(), RegistrationWindow{}, 2)
	tour.Register(NewTeamID(), "A", 5)
	if tour.IsFull() {
		t.Fatal("did not expect full with 1/2 slots")
	}
	tour.Register(NewTeamID(), "B", 5)
	if !tour.IsFull() {
		t.Fatal("expected full with 2/2 slots")
	}
}
