package protocol

import (
	"sync"

	"github.com/corsair-league/armada/internal/clock"
	"github.com/corsair-league/armada/internal/control"
	"github.com/corsair-league/armada/internal/model"
	"github.com/corsair-league/armada/internal/world"
)

// pendingChallenge tracks one challenge handshake in flight, from
// either role, keyed by the proposer-assigned GameID.
type pendingChallenge struct {
	proposer model.TeamID
	target   model.TeamID
	home     model.TeamInGame
	away     model.TeamInGame // populated once this side has built or received it
}

// ChallengeBook holds every challenge handshake this peer is a party
// to until a Confirm or Decline resolves it. Zero value is not usable;
// build with NewChallengeBook.
type ChallengeBook struct {
	mu      sync.Mutex
	pending map[model.GameID]*pendingChallenge
}

func NewChallengeBook() *ChallengeBook {
	return &ChallengeBook{pending: make(map[model.GameID]*pendingChallenge)}
}

func (b *ChallengeBook) put(gameID model.GameID, p *pendingChallenge) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pending[gameID] = p
}

func (b *ChallengeBook) take(gameID model.GameID) (*pendingChallenge, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	p, ok := b.pending[gameID]
	delete(b.pending, gameID)
	return p, ok
}

// Propose opens a challenge from teamID (local) against targetID
// (owned by a remote peer). Call after control.ChallengeTeam has
// already validated and deferred to the network path (it returns a
// zero GameID for a network opponent rather than creating a game).
func (b *ChallengeBook) Propose(w *world.World, teamID, targetID model.TeamID) (ChallengeProposal, control.Denial) {
	home, d := control.BuildTeamInGame(w, teamID)
	if !d.Allowed() {
		return ChallengeProposal{}, d
	}

	gameID := model.NewGameID()
	b.put(gameID, &pendingChallenge{proposer: teamID, target: targetID, home: home})
	return ChallengeProposal{GameID: gameID, Home: home}, control.OK
}

// HandleProposal is the target's half of the handshake: validate the
// challenge is still acceptable, freeze the target's own lineup, and
// reply with either an Ack or a Decline. The second return value is
// only meaningful when ok is false.
func (b *ChallengeBook) HandleProposal(w *world.World, teamID model.TeamID, msg ChallengeProposal) (ack ChallengeAck, decline ChallengeDecline, ok bool) {
	if d := control.ValidateAcceptNetworkChallenge(w, teamID, msg.Home.TeamID); !d.Allowed() {
		return ChallengeAck{}, ChallengeDecline{GameID: msg.GameID, Reason: string(d)}, false
	}
	away, d := control.BuildTeamInGame(w, teamID)
	if !d.Allowed() {
		return ChallengeAck{}, ChallengeDecline{GameID: msg.GameID, Reason: string(d)}, false
	}

	b.put(msg.GameID, &pendingChallenge{proposer: msg.Home.TeamID, target: teamID, home: msg.Home, away: away})
	return ChallengeAck{GameID: msg.GameID, Away: away}, ChallengeDecline{}, true
}

// HandleAck is the proposer's half: re-validate (state may have moved
// on since Propose), install the agreed game on this side, and return
// the ChallengeConfirm to send back so the acceptor can install the
// identical game without generating anything itself.
func (b *ChallengeBook) HandleAck(w *world.World, msg ChallengeAck, now clock.Tick) (confirm ChallengeConfirm, decline ChallengeDecline, ok bool) {
	pending, found := b.take(msg.GameID)
	if !found {
		return ChallengeConfirm{}, ChallengeDecline{GameID: msg.GameID, Reason: "unknown challenge"}, false
	}

	if d := control.ValidateChallengeStillOpen(w, pending.proposer, pending.target); !d.Allowed() {
		return ChallengeConfirm{}, ChallengeDecline{GameID: msg.GameID, Reason: string(d)}, false
	}

	home, d := control.GoToTeam(w, pending.proposer)
	if !d.Allowed() {
		return ChallengeConfirm{}, ChallengeDecline{GameID: msg.GameID, Reason: string(d)}, false
	}
	location := home.CurrentLocation.Planet
	seed := w.MasterSeed ^ foldGameSeed(msg.GameID)

	game := &model.Game{
		ID:         msg.GameID,
		Home:       pending.home,
		Away:       msg.Away,
		Location:   location,
		StartingAt: now,
		Seed:       seed,
	}
	if d := control.ConfirmNetworkGame(w, game, pending.proposer, pending.target); !d.Allowed() {
		return ChallengeConfirm{}, ChallengeDecline{GameID: msg.GameID, Reason: string(d)}, false
	}

	return ChallengeConfirm{GameID: msg.GameID, Location: location, StartingAt: now, Seed: seed}, ChallengeDecline{}, true
}

// HandleConfirm is the acceptor's closing half: install the same game
// the proposer already installed, using the Location/StartingAt/Seed
// it sent rather than deriving anything independently.
func (b *ChallengeBook) HandleConfirm(w *world.World, msg ChallengeConfirm) control.Denial {
	pending, found := b.take(msg.GameID)
	if !found {
		return control.DenyNoSuchGame
	}

	game := &model.Game{
		ID:         msg.GameID,
		Home:       pending.home,
		Away:       pending.away,
		Location:   msg.Location,
		StartingAt: msg.StartingAt,
		Seed:       msg.Seed,
	}
	return control.ConfirmNetworkGame(w, game, pending.proposer, pending.target)
}

// HandleDecline discards a pending challenge either side abandoned.
func (b *ChallengeBook) HandleDecline(msg ChallengeDecline) {
	b.take(msg.GameID)
}

// foldGameSeed XORs gameID's bytes into a single uint64, the same
// per-entity seed-derivation fold control.gameIDSeedMix and
// world.planetSeedMix use for local games and free-pirate generation.
func foldGameSeed(id model.GameID) uint64 {
	var mixed uint64
	for i, bite := range id {
		mixed ^= uint64(bite) << (8 * uint(i%8))
	}
	return mixed
}
