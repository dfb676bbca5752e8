package protocol

import (
	"github.com/corsair-league/armada/internal/clock"
	"github.com/corsair-league/armada/internal/model"
	"github.com/corsair-league/armada/internal/world"
)

// BuildSeedInfo reports w's master seed and current tick, the first
// message a peer sends a newly-discovered neighbor.
func BuildSeedInfo(w *world.World, now clock.Tick) SeedInfo {
	return SeedInfo{MasterSeed: w.MasterSeed, Tick: now}
}

// MergeTeamSnapshot applies an incoming TeamSnapshot to w, keeping the
// incoming copy iff its Version is at least the local one for that id
// (spec.md 4.8). origin stamps the team as belonging to the sending
// peer, unless it already names a PeerID of its own (relayed gossip).
// Returns whether the snapshot was applied.
func MergeTeamSnapshot(w *world.World, origin model.PeerID, snap TeamSnapshot) bool {
	w.Lock()
	defer w.Unlock()

	incoming := snap.Team
	local, ok := w.Teams[incoming.ID]
	if ok && local.Version > incoming.Version {
		return false
	}
	if incoming.PeerID == nil {
		incoming.PeerID = markRemote(origin)
	}
	team := incoming
	w.Teams[team.ID] = &team
	w.MarkDirtyLocal()
	return true
}

// MergePlayerSnapshot is MergeTeamSnapshot's counterpart for players.
func MergePlayerSnapshot(w *world.World, origin model.PeerID, snap PlayerSnapshot) bool {
	w.Lock()
	defer w.Unlock()

	incoming := snap.Player
	local, ok := w.Players[incoming.ID]
	if ok && local.Version > incoming.Version {
		return false
	}
	if incoming.PeerID == nil {
		incoming.PeerID = markRemote(origin)
	}
	player := incoming
	w.Players[player.ID] = &player
	w.MarkDirtyLocal()
	return true
}

// GossipableTeams returns the TeamSnapshot payloads worth broadcasting
// right now: every team the caller owns (PeerID nil, i.e. local to
// this process) that the network dirty flag covers. Callers drain
// w.TakeDirtyUI/TakeDirtyNetwork themselves; this only decides which
// teams belong in that broadcast.
func GossipableTeams(w *world.World) []TeamSnapshot {
	w.RLock()
	defer w.RUnlock()

	snaps := make([]TeamSnapshot, 0, len(w.Teams))
	for _, team := range w.Teams {
		if team.PeerID != nil {
			continue // not ours to gossip
		}
		snaps = append(snaps, TeamSnapshot{Team: *team})
	}
	return snaps
}

// GossipablePlayers mirrors GossipableTeams for players belonging to a
// local team.
func GossipablePlayers(w *world.World) []PlayerSnapshot {
	w.RLock()
	defer w.RUnlock()

	snaps := make([]PlayerSnapshot, 0, len(w.Players))
	for _, player := range w.Players {
		if player.PeerID != nil {
			continue
		}
		snaps = append(snaps, PlayerSnapshot{Player: *player})
	}
	return snaps
}

// markRemote stamps an incoming snapshot's owning peer so a recipient
// can tell its own teams/players apart from a peer's, mirroring how
// model.Team/model.Player already carry a PeerID for exactly this.
func markRemote(origin model.PeerID) *model.PeerID {
	id := origin
	return &id
}
