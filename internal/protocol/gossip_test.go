package protocol

import (
	"testing"

	"github.com/corsair-league/armada/internal/events"
	"github.com/corsair-league/armada/internal/model"
	"github.com/corsair-league/armada/internal/world"
)

func newTestWorld(seed uint64) *world.World {
	return world.New(seed, events.NewBus())
}

// TestGossipConvergesOnHigherVersion is the two-peer scenario: peer A
// holds a team at v=5, peer B holds the same team (by id) at v=3.
// After each merges the other's snapshot, both must end at v=5.
func TestGossipConvergesOnHigherVersion(t *testing.T) {
	home := model.NewPlanet("Home", model.PlanetRocky)

	teamA := model.NewTeam("Crew", home.ID)
	for i := 0; i < 5; i++ {
		teamA.Touch()
	}
	if teamA.Version != 5 {
		t.Fatalf("setup: expected version 5, got %d", teamA.Version)
	}

	teamB := *teamA
	teamB.Version = 3

	peerA := model.NewPeerID()
	peerB := model.NewPeerID()

	worldA := newTestWorld(1)
	worldA.Planets[home.ID] = home
	worldA.Teams[teamA.ID] = teamA

	worldB := newTestWorld(1)
	worldB.Planets[home.ID] = home
	worldB.Teams[teamB.ID] = &teamB

	// B receives A's snapshot (v=5 beats B's v=3).
	applied := MergeTeamSnapshot(worldB, peerA, TeamSnapshot{Team: *teamA})
	if !applied {
		t.Fatalf("expected B to apply A's higher-versioned snapshot")
	}

	// A receives B's now-stale snapshot (v=3, still tagged as B's local
	// copy at merge time — the merge must still prefer the higher
	// version already held locally).
	applied = MergeTeamSnapshot(worldA, peerB, TeamSnapshot{Team: teamB})
	if applied {
		t.Fatalf("expected A to reject B's stale v=3 snapshot")
	}

	if worldA.Teams[teamA.ID].Version != 5 {
		t.Fatalf("A: expected version 5, got %d", worldA.Teams[teamA.ID].Version)
	}
	if worldB.Teams[teamA.ID].Version != 5 {
		t.Fatalf("B: expected version 5, got %d", worldB.Teams[teamA.ID].Version)
	}
}

func TestMergeTeamSnapshotStampsRemotePeerID(t *testing.T) {
	w := newTestWorld(2)
	home := model.NewPlanet("Home", model.PlanetRocky)
	w.Planets[home.ID] = home

	team := model.NewTeam("Visitors", home.ID)
	origin := model.NewPeerID()

	if !MergeTeamSnapshot(w, origin, TeamSnapshot{Team: *team}) {
		t.Fatalf("expected snapshot to apply to a world that doesn't know this team yet")
	}
	merged := w.Teams[team.ID]
	if merged.PeerID == nil || *merged.PeerID != origin {
		t.Fatalf("expected merged team to carry origin peer id, got %v", merged.PeerID)
	}
}

func TestGossipableTeamsExcludesRemoteTeams(t *testing.T) {
	w := newTestWorld(3)
	home := model.NewPlanet("Home", model.PlanetRocky)
	w.Planets[home.ID] = home

	local := model.NewTeam("Local", home.ID)
	w.Teams[local.ID] = local

	remote := model.NewTeam("Remote", home.ID)
	origin := model.NewPeerID()
	remote.PeerID = &origin
	w.Teams[remote.ID] = remote

	snaps := GossipableTeams(w)
	if len(snaps) != 1 {
		t.Fatalf("expected exactly 1 gossipable team, got %d", len(snaps))
	}
	if snaps[0].Team.ID != local.ID {
		t.Fatalf("expected the local team to be gossipable, got %s", snaps[0].Team.ID)
	}
}

func TestEncodeDecodeFrameRoundTrip(t *testing.T) {
	origin := model.NewPeerID()
	seed := BuildSeedInfo(newTestWorld(42), 100)

	data, err := Encode(KindSeedInfo, origin, 100, seed)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	env, err := Decode(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Kind != KindSeedInfo {
		t.Fatalf("expected KindSeedInfo, got %v", env.Kind)
	}
	if env.Origin != origin {
		t.Fatalf("expected origin to round-trip")
	}

	decoded, err := env.DecodeSeedInfo()
	if err != nil {
		t.Fatalf("decode seed info: %v", err)
	}
	if decoded.MasterSeed != 42 {
		t.Fatalf("expected master seed 42, got %d", decoded.MasterSeed)
	}
}

func TestDecodeFrameRejectsCorruptedTrailer(t *testing.T) {
	data, err := Encode(KindChat, model.NewPeerID(), 1, Chat{TeamID: model.NewTeamID(), Text: "ahoy"})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	data[len(data)-1] ^= 0xFF

	if _, err := Decode(data); err == nil {
		t.Fatalf("expected decode to reject a corrupted fingerprint")
	}
}
