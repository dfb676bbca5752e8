// Package control implements the validation-and-mutation surface
// between an outside caller (CLI, TUI, HTTP client) and the World: a
// family of can_* predicates, the atomic action callbacks that compose
// them with a mutation, and the HTTP surface that exposes both.
package control

// Denial is the reason a predicate refused an action, or the empty
// string if the action is allowed. Unlike an error, a Denial is a
// plain value meant to be shown to a user or silently logged, never
// wrapped or propagated as a Go error.
type Denial string

// OK is the zero Denial: every can_* predicate returns this to mean
// "allowed".
const OK Denial = ""

// Allowed reports whether d represents no denial.
func (d Denial) Allowed() bool { return d == OK }

func (d Denial) String() string {
	if d == OK {
		return "ok"
	}
	return string(d)
}

const (
	DenyNoSuchTeam       Denial = "no such team"
	DenyNoSuchPlayer     Denial = "no such player"
	DenyNoSuchPlanet     Denial = "no such planet"
	DenyNoSuchTournament Denial = "no such tournament"
	DenyNoSuchGame       Denial = "no such game"

	DenyAlreadyInTeam     Denial = "player already belongs to a team"
	DenyRosterFull        Denial = "team is full"
	DenyTeamExploring     Denial = "team is exploring"
	DenyTeamTravelling    Denial = "team is travelling"
	DenyTeamAdventuring   Denial = "team is on a space adventure"
	DenyNotSamePlanet     Denial = "not on the same planet"
	DenyNotEnoughMoney    Denial = "not enough satoshi"
	DenyPlayerTooOld      Denial = "player is too old"
	DenyPlayerNotOnTeam   Denial = "player is not in this team"
	DenyPlayerNotOnAnyTeam Denial = "player is not in a team"
	DenyNotOnPlanet       Denial = "team is not on a planet"
	DenyTeamPlaying       Denial = "team is playing"
	DenyTeamInTournament  Denial = "team is in a tournament"

	DenyAlreadyOnPlanet      Denial = "already on this planet"
	DenyNoCrewToTravel       Denial = "no pirate to travel"
	DenyAlreadyInSpace       Denial = "already in space"
	DenyUpgradingSpaceship   Denial = "spaceship is upgrading"
	DenyPlanetTooFar         Denial = "planet is too far"
	DenyInsufficientFuel     Denial = "not enough fuel"
	DenyNoTeleportPad        Denial = "destination has no teleportation pad"
	DenyTeleportPadNotOwned  Denial = "cannot use a teleportation pad you do not own"
	DenyInsufficientRum      Denial = "not enough rum"

	DenySpaceshipNeedsRepair Denial = "spaceship needs repairs"
	DenyCrewTooTired         Denial = "crew is too tired"
	DenyNotOnThisPlanet      Denial = "not on this planet"

	DenySameTeam             Denial = "cannot play against your own team"
	DenyTeamNotLocal         Denial = "team is not local"
	DenyTeamNotNetwork       Denial = "team is not from the network"
	DenyAlreadyChallenged    Denial = "already challenged this team"
	DenyTournamentMismatch   Denial = "team and opponent tournaments do not match"
	DenyRosterTooSmall       Denial = "not enough pirates to play"

	DenyTargetPlayerElsewhere Denial = "target player is not part of that team"
	DenyTargetPlayerHere      Denial = "target player is already in your team"

	DenyInsufficientResources Denial = "insufficient resources"
	DenyInsufficientStorage   Denial = "not enough storage capacity"
	DenyComponentMaxed        Denial = "component is already at its maximum tier"
	DenyAsteroidUpgraded      Denial = "asteroid already has this upgrade"
	DenyMissingPrerequisite   Denial = "missing prerequisite upgrade"
	DenyUpgradeInProgress     Denial = "an upgrade is already in progress"
	DenyNotOnAsteroid         Denial = "can only build on the asteroid"
	DenyOwnOnlyOneCove        Denial = "already have a space cove"

	DenyTournamentNotOrganizing  Denial = "tournament is not open for registration"
	DenyTournamentNotConfirming  Denial = "tournament is not open for confirmation"
	DenyTournamentFull           Denial = "tournament is full"
	DenyAlreadyRegistered        Denial = "already registered to this tournament"
	DenyRegisteredElsewhere      Denial = "registered to another tournament"
	DenyNotRegistered            Denial = "not registered to this tournament"
	DenyAlreadyOrganizing        Denial = "already organizing a tournament"
	DenyNoSpaceCove              Denial = "cannot organize a tournament without a space cove"
	DenySpaceCoveNotReady        Denial = "space cove is not ready"
	DenyNotAtCovePlanet          Denial = "not at your space cove's planet"
	DenyNotAtTournamentPlanet    Denial = "not at the tournament location"

	DenyNotEnoughResource Denial = "not enough of that resource"

	DenyEmptyMessage      Denial = "message is empty"
	DenyTeamNotPlaying    Denial = "team is not in a game"
	DenyNoActiveAdventure Denial = "team is not on a space adventure"
)
