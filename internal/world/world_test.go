package world

import (
	"testing"

	"github.com/corsair-league/armada/internal/clock"
	"github.com/corsair-league/armada/internal/events"
	"github.com/corsair-league/armada/internal/model"
)

func newTestWorld() *World {
	return New(99, events.NewBus())
}

func TestTickAdvancesTravelToDestination(t *testing.T) {
	w := newTestWorld()
	origin := model.NewPlanet("Origin", model.PlanetRocky)
	dest := model.NewPlanet("Destination", model.PlanetRocky)
	w.Planets[origin.ID] = origin
	w.Planets[dest.ID] = dest

	team := model.NewTeam("Crew", origin.ID)
	team.CurrentLocation = model.TeamLocation{
		Kind:    model.LocationTravelling,
		From:    origin.ID,
		To:      dest.ID,
		Started: 0,
		Duration: 5000,
	}
	w.Teams[team.ID] = team

	w.Tick(clock.Tick(1000), 0, nil)
	if team.CurrentLocation.Kind != model.LocationTravelling {
		t.Fatalf("travel ended too early")
	}

	w.Tick(clock.Tick(6000), 0, nil)
	if team.CurrentLocation.Kind != model.LocationOnPlanet {
		t.Fatalf("expected team on planet, got %v", team.CurrentLocation.Kind)
	}
	if team.CurrentLocation.Planet != dest.ID {
		t.Fatalf("expected team at destination")
	}
}

func TestLongTickCommitsTraining(t *testing.T) {
	w := newTestWorld()
	p := &model.Player{ID: model.NewPlayerID(), Name: "Trainee"}
	p.TrainingExp[model.SkillPassing] = 1.0
	w.Players[p.ID] = p

	w.tickLongLocked(clock.Tick(0))

	if p.Skill(model.SkillPassing) <= 0 {
		t.Fatalf("expected training to raise skill, got %v", p.Skill(model.SkillPassing))
	}
	if p.TrainingExp[model.SkillPassing] != 0 {
		t.Fatalf("expected accumulator to reset after commit")
	}
}

func TestTickGamesCompletesAndArchives(t *testing.T) {
	w := newTestWorld()

	players := map[model.PlayerID]*model.Player{}
	var homeStart, awayStart [5]model.PlayerID
	for i := 0; i < 5; i++ {
		hp := &model.Player{ID: model.NewPlayerID(), Name: "H"}
		ap := &model.Player{ID: model.NewPlayerID(), Name: "A"}
		for s := range hp.Skills {
			hp.Skills[s] = 10
			ap.Skills[s] = 10
		}
		players[hp.ID] = hp
		players[ap.ID] = ap
		homeStart[i] = hp.ID
		awayStart[i] = ap.ID
	}
	w.Players = players

	game := &model.Game{
		ID: model.NewGameID(),
		Home: model.TeamInGame{
			TeamID: model.NewTeamID(), StartingLineup: homeStart, OnCourt: homeStart,
			Stats: map[model.PlayerID]*model.StatLine{},
		},
		Away: model.TeamInGame{
			TeamID: model.NewTeamID(), StartingLineup: awayStart, OnCourt: awayStart,
			Stats: map[model.PlayerID]*model.StatLine{},
		},
		Seed: 5,
	}
	w.Games[game.ID] = game

	// Advance far enough in wall-time that the whole game resolves in a
	// single tick call.
	w.mu.Lock()
	w.tickGamesLocked(clock.Tick(10 * 60 * 60 * 1000))
	w.mu.Unlock()

	if _, stillRunning := w.Games[game.ID]; stillRunning {
		t.Fatalf("expected game to be archived")
	}
	if len(w.PastGames) != 1 {
		t.Fatalf("expected exactly one archived game, got %d", len(w.PastGames))
	}
}
