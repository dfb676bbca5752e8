// Package protocol implements the gossip synchronization and
// challenge/trade handshake layer between peers: entity snapshots
// converge by version, and games/trades between two network teams are
// agreed via a small request/response exchange before either side
// mutates its World.
package protocol

import (
	"github.com/corsair-league/armada/internal/clock"
	"github.com/corsair-league/armada/internal/model"
)

// Kind tags the variant carried by a Frame's payload. Values match the
// envelope spec.md 4.8 describes: SeedInfo, TeamSnapshot,
// PlayerSnapshot, the four Challenge messages, the three Trade
// messages, and Chat.
type Kind uint16

const (
	KindSeedInfo Kind = iota
	KindTeamSnapshot
	KindPlayerSnapshot
	KindChallengeProposal
	KindChallengeAck
	KindChallengeConfirm
	KindChallengeDecline
	KindTradeProposal
	KindTradeAccept
	KindTradeDecline
	KindChat
)

func (k Kind) String() string {
	switch k {
	case KindSeedInfo:
		return "SeedInfo"
	case KindTeamSnapshot:
		return "TeamSnapshot"
	case KindPlayerSnapshot:
		return "PlayerSnapshot"
	case KindChallengeProposal:
		return "ChallengeProposal"
	case KindChallengeAck:
		return "ChallengeAck"
	case KindChallengeConfirm:
		return "ChallengeConfirm"
	case KindChallengeDecline:
		return "ChallengeDecline"
	case KindTradeProposal:
		return "TradeProposal"
	case KindTradeAccept:
		return "TradeAccept"
	case KindTradeDecline:
		return "TradeDecline"
	case KindChat:
		return "Chat"
	default:
		return "Unknown"
	}
}

// SeedInfo announces a peer's world seed and tick. Hub requires it as
// the first frame of every connection and takes the peer's identity
// from its Origin; the seed and tick are not compared against the
// local world's.
type SeedInfo struct {
	MasterSeed uint64
	Tick       clock.Tick
}

// TeamSnapshot/PlayerSnapshot are gossiped entity states. A recipient
// keeps whichever copy carries the higher Version for that entity id,
// dropping the lower-versioned one silently.
type TeamSnapshot struct {
	Team model.Team
}

type PlayerSnapshot struct {
	Player model.Player
}

// ChallengeProposal opens the challenge handshake: the proposer
// chooses GameID up front so both sides can later agree on the same
// identifier without a second round trip.
type ChallengeProposal struct {
	GameID model.GameID
	Home   model.TeamInGame
}

// ChallengeAck is the target's affirmative reply, carrying its own
// frozen lineup.
type ChallengeAck struct {
	GameID model.GameID
	Away   model.TeamInGame
}

// ChallengeConfirm closes the handshake: both peers now have enough
// (GameID, Home, Away, StartingAt, Seed) to build the identical Game
// independently.
type ChallengeConfirm struct {
	GameID     model.GameID
	Location   model.PlanetID
	StartingAt clock.Tick
	Seed       uint64
}

// ChallengeDecline may be sent by either side at any point before
// Confirm.
type ChallengeDecline struct {
	GameID model.GameID
	Reason string
}

// TradeProposal/TradeAccept/TradeDecline mirror the challenge
// handshake's shape for a one-for-one player swap.
type TradeProposal struct {
	ProposerTeamID   model.TeamID
	ProposerPlayerID model.PlayerID
	TargetTeamID     model.TeamID
	TargetPlayerID   model.PlayerID
}

type TradeAccept struct {
	ProposerTeamID   model.TeamID
	ProposerPlayerID model.PlayerID
	TargetTeamID     model.TeamID
	TargetPlayerID   model.PlayerID
}

type TradeDecline struct {
	ProposerTeamID model.TeamID
	TargetTeamID   model.TeamID
	Reason         string
}

// Chat carries a team's chat-bubble text to the network, the gossip
// counterpart of control.SendMessage's local-only validation.
type Chat struct {
	TeamID model.TeamID
	Text   string
}
