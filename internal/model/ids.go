// Package model defines the entity types of the simulation (players,
// teams, spaceships, planets, games, tournaments) and the pure
// constructors, accessors and invariant-preserving mutators over them.
package model

import "github.com/google/uuid"

// PlayerID, TeamID, PlanetID, GameID and TournamentID are opaque
// 128-bit identifiers. They are distinct Go types so a TeamID can never
// be passed where a PlayerID is expected.
type (
	PlayerID     uuid.UUID
	TeamID       uuid.UUID
	PlanetID     uuid.UUID
	GameID       uuid.UUID
	TournamentID uuid.UUID
	PeerID       uuid.UUID
)

func NewPlayerID() PlayerID         { return PlayerID(uuid.New()) }
func NewTeamID() TeamID             { return TeamID(uuid.New()) }
func NewPlanetID() PlanetID         { return PlanetID(uuid.New()) }
func NewGameID() GameID             { return GameID(uuid.New()) }
func NewTournamentID() TournamentID { return TournamentID(uuid.New()) }
func NewPeerID() PeerID             { return PeerID(uuid.New()) }

func (id PlayerID) String() string     { return uuid.UUID(id).String() }
func (id TeamID) String() string       { return uuid.UUID(id).String() }
func (id PlanetID) String() string     { return uuid.UUID(id).String() }
func (id GameID) String() string       { return uuid.UUID(id).String() }
func (id TournamentID) String() string { return uuid.UUID(id).String() }
func (id PeerID) String() string       { return uuid.UUID(id).String() }

func (id PlayerID) IsZero() bool     { return id == PlayerID{} }
func (id TeamID) IsZero() bool       { return id == TeamID{} }
func (id PlanetID) IsZero() bool     { return id == PlanetID{} }
func (id GameID) IsZero() bool       { return id == GameID{} }
func (id TournamentID) IsZero() bool { return id == TournamentID{} }
func (id PeerID) IsZero() bool       { return id == PeerID{} }
