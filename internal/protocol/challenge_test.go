package protocol

import (
	"testing"

	"github.com/corsair-league/armada/internal/model"
	"github.com/corsair-league/armada/internal/world"
)

func addCrewed(w *world.World, name string, homePlanet model.PlanetID) *model.Team {
	team := model.NewTeam(name, homePlanet)
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

// TestChallengeHandshakeInstallsIdenticalGameOnBothSides simulates the
// full ChallengeProposal -> ChallengeAck -> ChallengeConfirm exchange
// across two independent Worlds, passing messages by hand instead of
// over a real connection, and checks both sides end up with the same
// GameID/Seed/Location.
func TestChallengeHandshakeInstallsIdenticalGameOnBothSides(t *testing.T) {
	planet := model.NewPlanet("Port Royal", model.PlanetRocky)

	homeWorld := newTestWorld(10)
	homeWorld.Planets[planet.ID] = planet
	home := addCrewed(homeWorld, "Home Crew", planet.ID)
	home.CurrentLocation = model.TeamLocation{Kind: model.LocationOnPlanet, Planet: planet.ID}

	awayPeerID := model.NewPeerID()

	awayWorld := newTestWorld(20)
	awayWorld.Planets[planet.ID] = planet
	away := addCrewed(awayWorld, "Away Crew", planet.ID)
	away.CurrentLocation = model.TeamLocation{Kind: model.LocationOnPlanet, Planet: planet.ID}

	// Each world must see the other team as network-owned (gossiped).
	homeSideAwayCopy := *away
	homeSideAwayCopy.PeerID = &awayPeerID
	homeWorld.Teams[away.ID] = &homeSideAwayCopy

	homePeerID := model.NewPeerID()
	awaySideHomeCopy := *home
	awaySideHomeCopy.PeerID = &homePeerID
	awayWorld.Teams[home.ID] = &awaySideHomeCopy

	homeBook := NewChallengeBook()
	awayBook := NewChallengeBook()

	proposal, d := homeBook.Propose(homeWorld, home.ID, away.ID)
	if !d.Allowed() {
		t.Fatalf("propose denied: %v", d)
	}

	ack, decline, ok := awayBook.HandleProposal(awayWorld, away.ID, proposal)
	if !ok {
		t.Fatalf("handle proposal denied: %v", decline.Reason)
	}

	confirm, decline, ok := homeBook.HandleAck(homeWorld, ack, 100)
	if !ok {
		t.Fatalf("handle ack denied: %v", decline.Reason)
	}
	if confirm.GameID != proposal.GameID {
		t.Fatalf("expected confirm to carry the proposed game id")
	}

	if d := awayBook.HandleConfirm(awayWorld, confirm); !d.Allowed() {
		t.Fatalf("handle confirm denied: %v", d)
	}

	homeGame, ok := homeWorld.Games[proposal.GameID]
	if !ok {
		t.Fatalf("expected home world to have installed the game")
	}
	awayGame, ok := awayWorld.Games[proposal.GameID]
	if !ok {
		t.Fatalf("expected away world to have installed the game")
	}
	if homeGame.Seed != awayGame.Seed {
		t.Fatalf("expected matching seeds, got %d vs %d", homeGame.Seed, awayGame.Seed)
	}
	if homeGame.Location != awayGame.Location {
		t.Fatalf("expected matching locations")
	}

	homeTeam := homeWorld.Teams[home.ID]
	if homeTeam.CurrentGame == nil || *homeTeam.CurrentGame != proposal.GameID {
		t.Fatalf("expected home team's CurrentGame set")
	}
}

func TestHandleProposalDeclinesWithoutEnoughCrew(t *testing.T) {
	planet := model.NewPlanet("Tortuga", model.PlanetRocky)

	proposerWorld := newTestWorld(1)
	proposerWorld.Planets[planet.ID] = planet
	proposer := addCrewed(proposerWorld, "Proposer", planet.ID)
	proposer.CurrentLocation = model.TeamLocation{Kind: model.LocationOnPlanet, Planet: planet.ID}

	targetWorld := newTestWorld(2)
	targetWorld.Planets[planet.ID] = planet
	target := model.NewTeam("Too Small", planet.ID)
	target.CurrentLocation = model.TeamLocation{Kind: model.LocationOnPlanet, Planet: planet.ID}
	targetWorld.Teams[target.ID] = target

	book := NewChallengeBook()
	proposerPeer := model.NewPeerID()
	proposerCopy := *proposer
	proposerCopy.PeerID = &proposerPeer
	targetWorld.Teams[proposer.ID] = &proposerCopy

	proposal := ChallengeProposal{GameID: model.NewGameID(), Home: model.TeamInGame{TeamID: proposer.ID}}

	_, decline, ok := book.HandleProposal(targetWorld, target.ID, proposal)
	if ok {
		t.Fatalf("expected decline for a roster below the minimum")
	}
	if decline.GameID != proposal.GameID {
		t.Fatalf("expected decline to echo the proposal's game id")
	}
}
