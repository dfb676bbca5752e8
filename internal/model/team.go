package model

import "github.com/corsair-league/armada/internal/clock"

// CrewRoles records which players hold the unique crew posts. Mozzo is
// a list: a crew may carry more than one deckhand.
type CrewRoles struct {
	Captain  *PlayerID
	Doctor   *PlayerID
	Pilot    *PlayerID
	Engineer *PlayerID
	Mozzo    []PlayerID
}

// TeamLocationKind tags the union held by TeamLocation.
type TeamLocationKind int

const (
	LocationOnPlanet TeamLocationKind = iota
	LocationTravelling
	LocationExploring
	LocationOnSpaceAdventure
	LocationPlayingGame
)

// TeamLocation is the team-wide state machine: a team is always in
// exactly one of these states, mirroring the per-player Location.
type TeamLocation struct {
	Kind TeamLocationKind

	Planet PlanetID // OnPlanet, Exploring (orbited planet), PlayingGame (venue)

	From, To   PlanetID // Travelling
	Started    clock.Tick
	Duration   clock.Tick // travel/exploration total duration, in ticks

	Game GameID // PlayingGame
}

// TournamentRegistration records a team's standing commitment to a
// tournament, if any.
type TournamentRegistration struct {
	State TournamentRegistrationState
	ID    TournamentID
}

// GameRating tracks a team's competitive rating, split local vs
// network since the two pools never play each other directly.
type GameRating struct {
	Rating float64
	Games  int
}

// Team holds no challenge or trade state: network challenge handshakes
// in flight live in protocol.ChallengeBook, and trade proposals are not
// recorded before they execute, so model has no dependency on the
// protocol package.

// Team is a roster, a spaceship, and everything that moves or is
// contested over the network on a team's behalf.
type Team struct {
	ID           TeamID
	Version      uint64
	Name         string
	CreationTick clock.Tick
	Reputation   float64

	PlayerIDs []PlayerID

	CrewRoles CrewRoles
	Jersey    Jersey
	Resources map[Resource]int

	Spaceship       Spaceship
	SpaceshipDamage float64 // hull damage outstanding since the last space adventure
	HomePlanet      PlanetID
	AsteroidIDs     []PlanetID

	CurrentLocation TeamLocation
	PeerID          *PeerID
	CurrentGame     *GameID

	TournamentRegistration TournamentRegistration
	IsOrganizingTournament *TournamentID

	LocalGameRating   GameRating
	NetworkGameRating GameRating

	Tactic        Tactic
	TrainingFocus *SkillGroup // nil means no focus; one of the five skill groups otherwise

	TotalTravelledKm      float64
	NumberOfSpaceAdventures int

	Honours        map[string]bool
	SpaceCove      *SpaceCove
	TournamentsWon []TournamentID
}

// Jersey is the team's chosen colors, also applied to its spaceship's
// livery.
type Jersey struct {
	Primary   [3]uint8
	Secondary [3]uint8
}

// Tactic is the style a team's lineup defaults to during a match.
type Tactic int

const (
	TacticBalanced Tactic = iota
	TacticRunAndGun
	TacticTurtle
)

// SpaceCove is a team's private asteroid base: a prerequisite for
// certain resource and upgrade operations.
type SpaceCove struct {
	Planet PlanetID
	Ready  bool
}

func NewTeam(name string, homePlanet PlanetID) *Team {
	return &Team{
		ID:         NewTeamID(),
		Name:       name,
		HomePlanet: homePlanet,
		Resources:  map[Resource]int{ResourceSatoshi: InitialTeamBalance},
		Spaceship:  NewSpaceship(),
		CurrentLocation: TeamLocation{
			Kind:   LocationOnPlanet,
			Planet: homePlanet,
		},
		Honours: map[string]bool{},
	}
}

// InitialTeamBalance seeds a new team's satoshi balance.
const InitialTeamBalance = 1000

func (t *Team) Touch() { t.Version++ }

// Balance is the team's satoshi on hand.
func (t *Team) Balance() int { return t.Resources[ResourceSatoshi] }

// AddResource credits amount of resource r, clamping at 0 from below.
func (t *Team) AddResource(r Resource, amount int) {
	t.Resources[r] += amount
	if t.Resources[r] < 0 {
		t.Resources[r] = 0
	}
}

// SubResource debits amount of resource r if sufficient, returning
// false (no mutation) if the team cannot afford it.
func (t *Team) SubResource(r Resource, amount int) bool {
	if t.Resources[r] < amount {
		return false
	}
	t.Resources[r] -= amount
	return true
}

// IsOnPlanet reports the planet the team currently sits on, if any.
func (t *Team) IsOnPlanet() (PlanetID, bool) {
	if t.CurrentLocation.Kind == LocationOnPlanet {
		return t.CurrentLocation.Planet, true
	}
	return PlanetID{}, false
}

// IsTravelling reports whether the team is currently between planets.
func (t *Team) IsTravelling() bool { return t.CurrentLocation.Kind == LocationTravelling }

// PlayingInTournament reports the tournament a team is actively
// playing rounds in, if CurrentLocation reflects a tournament venue.
func (t *Team) PlayingInTournament() (TournamentID, bool) {
	if t.TournamentRegistration.State == RegistrationConfirmed && t.CurrentLocation.Kind == LocationPlayingGame {
		return t.TournamentRegistration.ID, true
	}
	return TournamentID{}, false
}

// SpaceshipNeedsRepair reports whether outstanding hull damage has
// reached the spaceship's durability, grounding it until repaired.
func (t *Team) SpaceshipNeedsRepair() bool {
	return t.SpaceshipDamage >= t.Spaceship.Durability()
}

// HasSpaceCoveOn reports whether the team's space cove sits on planet
// id.
func (t *Team) HasSpaceCoveOn(id PlanetID) bool {
	return t.SpaceCove != nil && t.SpaceCove.Planet == id
}

// RosterSize is the number of hired players.
func (t *Team) RosterSize() int { return len(t.PlayerIDs) }

// HasPlayer reports whether id is on the roster.
func (t *Team) HasPlayer(id PlayerID) bool {
	for _, p := range t.PlayerIDs {
		if p == id {
			return true
		}
	}
	return false
}

// AddPlayer appends id to the roster if not already present.
func (t *Team) AddPlayer(id PlayerID) {
	if !t.HasPlayer(id) {
		t.PlayerIDs = append(t.PlayerIDs, id)
	}
}

// RemovePlayer drops id from the roster and any crew role it held.
func (t *Team) RemovePlayer(id PlayerID) {
	for i, p := range t.PlayerIDs {
		if p == id {
			t.PlayerIDs = append(t.PlayerIDs[:i], t.PlayerIDs[i+1:]...)
			break
		}
	}
	t.ClearCrewRole(id)
}

// ClearCrewRole removes id from whichever crew post it holds, if any.
func (t *Team) ClearCrewRole(id PlayerID) {
	if t.CrewRoles.Captain != nil && *t.CrewRoles.Captain == id {
		t.CrewRoles.Captain = nil
	}
	if t.CrewRoles.Doctor != nil && *t.CrewRoles.Doctor == id {
		t.CrewRoles.Doctor = nil
	}
	if t.CrewRoles.Pilot != nil && *t.CrewRoles.Pilot == id {
		t.CrewRoles.Pilot = nil
	}
	if t.CrewRoles.Engineer != nil && *t.CrewRoles.Engineer == id {
		t.CrewRoles.Engineer = nil
	}
	for i, m := range t.CrewRoles.Mozzo {
		if m == id {
			t.CrewRoles.Mozzo = append(t.CrewRoles.Mozzo[:i], t.CrewRoles.Mozzo[i+1:]...)
			break
		}
	}
}

// MaxCrewSize bounds the crew roster, independent of the playing
// roster (a team may carry support staff beyond its five-a-side).
const MaxCrewSize = 15
