package control

import (
	"testing"

	"github.com/corsair-league/armada/internal/clock"
	"github.com/corsair-league/armada/internal/events"
	"github.com/corsair-league/armada/internal/model"
	"github.com/corsair-league/armada/internal/space"
	"github.com/corsair-league/armada/internal/world"
)

func newTestWorld() *world.World {
	return world.New(7, events.NewBus())
}

func addCrewed(w *world.World, name string, homePlanet model.PlanetID) *model.Team {
	team := model.NewTeam(name, homePlanet)
	team.CurrentLocation = model.TeamLocation{Kind: model.LocationOnPlanet, Planet: homePlanet}
	for i := 0; i < 5; i++ {
		p := &model.Player{ID: model.NewPlayerID(), Name: "crew"}
		p.Team = &team.ID
		p.CurrentLocation = model.Location{WithTeam: true}
		w.Players[p.ID] = p
		team.PlayerIDs = append(team.PlayerIDs, p.ID)
	}
	w.Teams[team.ID] = team
	return team
}

func TestTravelToPlanetDebitsFuelByDuration(t *testing.T) {
	w := newTestWorld()
	origin := model.NewPlanet("Origin", model.PlanetRocky)
	dest := model.NewPlanet("Destination", model.PlanetRocky)
	w.Planets[origin.ID] = origin
	w.Planets[dest.ID] = dest

	team := addCrewed(w, "Crew", origin.ID)
	team.Resources[model.ResourceFuel] = 100

	d := TravelToPlanet(w, team.ID, dest.ID, clock.Tick(0), clock.Tick(100), false)
	if !d.Allowed() {
		t.Fatalf("expected travel allowed, got denial %q", d)
	}
	if team.Resources[model.ResourceFuel] != 5 {
		t.Fatalf("expected 5 fuel remaining (100 - ceil(100*0.95)), got %d", team.Resources[model.ResourceFuel])
	}
	if team.CurrentLocation.Kind != model.LocationTravelling {
		t.Fatalf("expected team travelling, got %v", team.CurrentLocation.Kind)
	}
}

func TestTravelToPlanetDeniesInsufficientFuel(t *testing.T) {
	w := newTestWorld()
	origin := model.NewPlanet("Origin", model.PlanetRocky)
	dest := model.NewPlanet("Destination", model.PlanetRocky)
	w.Planets[origin.ID] = origin
	w.Planets[dest.ID] = dest

	team := addCrewed(w, "Crew", origin.ID)
	team.Resources[model.ResourceFuel] = 10

	d := TravelToPlanet(w, team.ID, dest.ID, clock.Tick(0), clock.Tick(100), false)
	if d != DenyInsufficientFuel {
		t.Fatalf("expected DenyInsufficientFuel, got %q", d)
	}
	if team.Resources[model.ResourceFuel] != 10 {
		t.Fatalf("expected fuel untouched on denial, got %d", team.Resources[model.ResourceFuel])
	}
}

func TestChallengeTeamCreatesLocalGameImmediately(t *testing.T) {
	w := newTestWorld()
	planet := model.NewPlanet("Home", model.PlanetRocky)
	w.Planets[planet.ID] = planet

	home := addCrewed(w, "Home", planet.ID)
	away := addCrewed(w, "Away", planet.ID)

	gameID, d := ChallengeTeam(w, home.ID, away.ID, clock.Tick(0))
	if !d.Allowed() {
		t.Fatalf("expected challenge allowed, got denial %q", d)
	}
	if gameID.IsZero() {
		t.Fatalf("expected a non-zero game id for a local challenge")
	}
	if _, ok := w.Games[gameID]; !ok {
		t.Fatalf("expected game to be created immediately for a local opponent")
	}
	if home.CurrentGame == nil || *home.CurrentGame != gameID {
		t.Fatalf("expected home team's CurrentGame set")
	}
}

func TestChallengeTeamDefersNetworkOpponent(t *testing.T) {
	w := newTestWorld()
	planet := model.NewPlanet("Home", model.PlanetRocky)
	w.Planets[planet.ID] = planet

	home := addCrewed(w, "Home", planet.ID)
	away := addCrewed(w, "Away", planet.ID)
	remote := model.NewPeerID()
	away.PeerID = &remote

	gameID, d := ChallengeTeam(w, home.ID, away.ID, clock.Tick(0))
	if !d.Allowed() {
		t.Fatalf("expected challenge allowed, got denial %q", d)
	}
	if !gameID.IsZero() {
		t.Fatalf("expected no game created yet for a network opponent")
	}
	if len(w.Games) != 0 {
		t.Fatalf("expected no games in the world until the handshake completes")
	}
	if home.CurrentGame != nil {
		t.Fatalf("expected home team to remain idle until the handshake completes")
	}
}

func TestAcceptNetworkChallengeIgnoresCurrentGame(t *testing.T) {
	w := newTestWorld()
	planet := model.NewPlanet("Home", model.PlanetRocky)
	w.Planets[planet.ID] = planet

	proposer := addCrewed(w, "Proposer", planet.ID)
	acceptor := addCrewed(w, "Acceptor", planet.ID)

	busyGame := model.NewGameID()
	acceptor.CurrentGame = &busyGame

	gameID, d := AcceptChallenge(w, acceptor.ID, proposer.ID, clock.Tick(0))
	if !d.Allowed() {
		t.Fatalf("expected accept allowed despite a stale CurrentGame, got denial %q", d)
	}
	if gameID.IsZero() {
		t.Fatalf("expected a game to be created")
	}
}

func TestEndSpaceAdventureDestroyedNeedsRepair(t *testing.T) {
	w := newTestWorld()
	planet := model.NewPlanet("Home", model.PlanetRocky)
	w.Planets[planet.ID] = planet
	team := addCrewed(w, "Crew", planet.ID)
	team.CurrentLocation = model.TeamLocation{Kind: model.LocationOnSpaceAdventure, Planet: planet.ID}
	team.Resources[model.ResourceFuel] = 50

	result := space.Result{Ended: true, Destroyed: true, FuelSpent: 10}
	d := EndSpaceAdventure(w, team.ID, result, clock.Tick(1000))
	if !d.Allowed() {
		t.Fatalf("expected end-adventure allowed, got denial %q", d)
	}
	if !team.SpaceshipNeedsRepair() {
		t.Fatalf("expected a destroyed spaceship to need repair")
	}
	if team.CurrentLocation.Kind != model.LocationOnPlanet {
		t.Fatalf("expected team back on planet, got %v", team.CurrentLocation.Kind)
	}
}

func TestEndSpaceAdventureReturnedClearsDamage(t *testing.T) {
	w := newTestWorld()
	planet := model.NewPlanet("Home", model.PlanetRocky)
	w.Planets[planet.ID] = planet
	team := addCrewed(w, "Crew", planet.ID)
	team.CurrentLocation = model.TeamLocation{Kind: model.LocationOnSpaceAdventure, Planet: planet.ID}
	team.SpaceshipDamage = 9
	team.Resources[model.ResourceFuel] = 50

	result := space.Result{Ended: true, Returned: true, FuelSpent: 5}
	d := EndSpaceAdventure(w, team.ID, result, clock.Tick(1000))
	if !d.Allowed() {
		t.Fatalf("expected end-adventure allowed, got denial %q", d)
	}
	if team.SpaceshipDamage != 0 {
		t.Fatalf("expected damage cleared on a safe return, got %v", team.SpaceshipDamage)
	}
}

func TestQuitGameForfeitsAndArchives(t *testing.T) {
	w := newTestWorld()
	planet := model.NewPlanet("Home", model.PlanetRocky)
	w.Planets[planet.ID] = planet
	home := addCrewed(w, "Home", planet.ID)
	away := addCrewed(w, "Away", planet.ID)

	gameID, d := ChallengeTeam(w, home.ID, away.ID, clock.Tick(0))
	if !d.Allowed() {
		t.Fatalf("setup: expected challenge allowed, got %q", d)
	}

	if d := QuitGame(w, home.ID, clock.Tick(1)); !d.Allowed() {
		t.Fatalf("expected quit allowed, got denial %q", d)
	}
	if _, ok := w.Games[gameID]; ok {
		t.Fatalf("expected game archived out of w.Games")
	}
	if home.CurrentGame != nil {
		t.Fatalf("expected home team freed from the game")
	}
	if len(w.PastGames) != 1 {
		t.Fatalf("expected exactly one archived game, got %d", len(w.PastGames))
	}
}

func TestNextTrainingFocusCyclesThroughGroups(t *testing.T) {
	w := newTestWorld()
	planet := model.NewPlanet("Home", model.PlanetRocky)
	w.Planets[planet.ID] = planet
	team := addCrewed(w, "Crew", planet.ID)

	seen := []*model.SkillGroup{}
	for i := 0; i < 7; i++ {
		if d := NextTrainingFocus(w, team.ID); !d.Allowed() {
			t.Fatalf("expected focus change allowed, got denial %q", d)
		}
		seen = append(seen, team.TrainingFocus)
	}
	if seen[5] != nil {
		t.Fatalf("expected the cycle to return to nil after the 6th advance")
	}
	if seen[6] == nil || *seen[6] != model.SkillGroupAthletics {
		t.Fatalf("expected the cycle to restart at Athletics")
	}
}

func TestHirePlayerDebitsCost(t *testing.T) {
	w := newTestWorld()
	planet := model.NewPlanet("Home", model.PlanetRocky)
	w.Planets[planet.ID] = planet
	team := model.NewTeam("Crew", planet.ID)
	w.Teams[team.ID] = team

	player := &model.Player{ID: model.NewPlayerID(), Name: "Recruit", Age: 20, Population: model.AllPopulations[0]}
	player.CurrentLocation = model.Location{OnPlanet: planet.ID}
	w.Players[player.ID] = player

	before := team.Balance()
	d := HirePlayer(w, team.ID, player.ID)
	if !d.Allowed() {
		t.Fatalf("expected hire allowed, got denial %q", d)
	}
	if team.Balance() >= before {
		t.Fatalf("expected hire to debit satoshi, before=%d after=%d", before, team.Balance())
	}
	if player.Team == nil || *player.Team != team.ID {
		t.Fatalf("expected player assigned to team")
	}
}
