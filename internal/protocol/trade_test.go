package protocol

import (
	"testing"

	"github.com/corsair-league/armada/internal/model"
)

func TestTradeHandshakeSwapsPlayersOnBothSides(t *testing.T) {
	planet := model.NewPlanet("Shipwreck Cove", model.PlanetRocky)

	proposerWorld := newTestWorld(1)
	proposerWorld.Planets[planet.ID] = planet
	proposerTeam := addCrewed(proposerWorld, "Proposer", planet.ID)
	targetPeer := model.NewPeerID()

	targetWorld := newTestWorld(2)
	targetWorld.Planets[planet.ID] = planet
	targetTeam := addCrewed(targetWorld, "Target", planet.ID)
	proposerPeer := model.NewPeerID()

	// Each side's world carries a gossiped shadow copy of the other
	// team/player, as real gossip would have populated before a trade
	// is ever proposed.
	targetShadowOnProposer := *targetTeam
	targetShadowOnProposer.PeerID = &targetPeer
	proposerWorld.Teams[targetTeam.ID] = &targetShadowOnProposer
	for _, id := range targetTeam.PlayerIDs {
		p := *targetWorld.Players[id]
		p.PeerID = &targetPeer
		proposerWorld.Players[id] = &p
	}

	proposerShadowOnTarget := *proposerTeam
	proposerShadowOnTarget.PeerID = &proposerPeer
	targetWorld.Teams[proposerTeam.ID] = &proposerShadowOnTarget
	for _, id := range proposerTeam.PlayerIDs {
		p := *proposerWorld.Players[id]
		p.PeerID = &proposerPeer
		targetWorld.Players[id] = &p
	}

	proposal := TradeProposal{
		ProposerTeamID:   proposerTeam.ID,
		ProposerPlayerID: proposerTeam.PlayerIDs[0],
		TargetTeamID:     targetTeam.ID,
		TargetPlayerID:   targetTeam.PlayerIDs[0],
	}

	accept, decline, ok := HandleTradeProposal(targetWorld, proposal)
	if !ok {
		t.Fatalf("expected trade proposal accepted, got decline %q", decline.Reason)
	}

	if d := HandleTradeAccept(proposerWorld, accept); !d.Allowed() {
		t.Fatalf("expected trade to execute on proposer's world, got %v", d)
	}

	proposerRoster := proposerWorld.Teams[proposerTeam.ID]
	if proposerRoster.HasPlayer(proposal.ProposerPlayerID) {
		t.Fatalf("expected proposer's old player to have left the roster")
	}
	if !proposerRoster.HasPlayer(proposal.TargetPlayerID) {
		t.Fatalf("expected proposer's roster to now hold the target's player")
	}
	if proposerWorld.Players[proposal.TargetPlayerID].Team == nil || *proposerWorld.Players[proposal.TargetPlayerID].Team != proposerTeam.ID {
		t.Fatalf("expected traded-in player's Team pointer updated")
	}

	// The target peer applies the same accept to its own World.
	if d := HandleTradeAccept(targetWorld, accept); !d.Allowed() {
		t.Fatalf("expected trade to execute on target's world, got %v", d)
	}
	if !targetWorld.Teams[targetTeam.ID].HasPlayer(proposal.ProposerPlayerID) {
		t.Fatalf("expected target's roster to now hold the proposer's player")
	}
	if targetWorld.Players[proposal.ProposerPlayerID].Team == nil || *targetWorld.Players[proposal.ProposerPlayerID].Team != targetTeam.ID {
		t.Fatalf("expected traded-in player's Team pointer updated on the target's world")
	}
}
