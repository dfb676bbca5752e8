package control

import (
	"github.com/corsair-league/armada/internal/clock"
	"github.com/corsair-league/armada/internal/model"
	"github.com/corsair-league/armada/internal/world"
)

// Every predicate in this file reads w without locking it: callers
// (internal/control's own actions, or an external caller explicitly
// wrapping a read) are expected to already hold at least w.RLock.

// maxAvgTirednessPerSpaceAdventure bounds the crew's average tiredness
// for a space adventure or exploration departure, scaled to this
// model's [0,20] tiredness range.
const maxAvgTirednessPerSpaceAdventure = 15.0

// CanTravelToPlanet validates departing team for destination, given
// a precomputed travel duration (ticks) and whether this travel is a
// teleport hop. Fuel need = ceil(duration * fuel_consumption_per_tick);
// a teleport instead defers to CanTeleportTo.
func CanTravelToPlanet(w *world.World, teamID model.TeamID, destination model.PlanetID, duration clock.Tick, teleport bool) Denial {
	team, ok := w.Teams[teamID]
	if !ok {
		return DenyNoSuchTeam
	}
	if _, ok := w.Planets[destination]; !ok {
		return DenyNoSuchPlanet
	}
	if len(team.PlayerIDs) == 0 {
		return DenyNoCrewToTravel
	}

	current, onPlanet := team.IsOnPlanet()
	if !onPlanet {
		return DenyAlreadyInSpace
	}
	if current == destination {
		return DenyAlreadyOnPlanet
	}
	if team.Spaceship.PendingUpgrade != nil {
		return DenyUpgradingSpaceship
	}
	if team.CurrentGame != nil {
		return DenyTeamPlaying
	}
	if _, playing := team.PlayingInTournament(); playing {
		return DenyTeamInTournament
	}

	if teleport {
		return CanTeleportTo(w, teamID, destination)
	}

	fuelNeed := fuelNeedForDuration(team, duration)
	if fuelNeed > team.Spaceship.FuelCapacity() {
		return DenyPlanetTooFar
	}
	if fuelNeed > team.Resources[model.ResourceFuel] {
		return DenyInsufficientFuel
	}
	return OK
}

// fuelNeedForDuration is spec.md 4.4's fuel_need = ceil(duration *
// fuel_consumption_per_tick), with duration read as a raw tick count.
func fuelNeedForDuration(team *model.Team, duration clock.Tick) int {
	raw := float64(duration) * team.Spaceship.FuelConsumptionPerTick()
	need := int(raw)
	if float64(need) < raw {
		need++
	}
	return need
}

// CanTeleportTo validates a teleport hop to an owned asteroid or the
// team's home planet; it requires a teleportation pad there and 1 rum
// per crew member.
func CanTeleportTo(w *world.World, teamID model.TeamID, destination model.PlanetID) Denial {
	team, ok := w.Teams[teamID]
	if !ok {
		return DenyNoSuchTeam
	}
	planet, ok := w.Planets[destination]
	if !ok {
		return DenyNoSuchPlanet
	}

	hasPad := team.HomePlanet == destination || planet.HasUpgrade(model.UpgradeTeleportPad)
	if !hasPad {
		return DenyNoTeleportPad
	}
	if team.HomePlanet != destination && !ownsAsteroid(team, destination) {
		return DenyTeleportPadNotOwned
	}

	rumNeeded := len(team.PlayerIDs)
	if team.Resources[model.ResourceRum] < rumNeeded {
		return DenyInsufficientRum
	}
	return OK
}

func ownsAsteroid(team *model.Team, id model.PlanetID) bool {
	for _, a := range team.AsteroidIDs {
		if a == id {
			return true
		}
	}
	return false
}

// canAddPlayer validates that player may join team's roster right now,
// independent of hire cost. CanHirePlayer is its only caller.
func canAddPlayer(w *world.World, team *model.Team, player *model.Player) Denial {
	if player.Team != nil {
		return DenyAlreadyInTeam
	}
	if team.RosterSize() >= team.Spaceship.CrewCapacity() {
		return DenyRosterFull
	}
	switch team.CurrentLocation.Kind {
	case model.LocationExploring:
		return DenyTeamExploring
	case model.LocationTravelling:
		return DenyTeamTravelling
	case model.LocationOnSpaceAdventure:
		return DenyTeamAdventuring
	}

	teamPlanet, teamOnPlanet := team.IsOnPlanet()
	playerOnPlanet := !player.CurrentLocation.WithTeam
	if teamOnPlanet != playerOnPlanet {
		return DenyNotSamePlanet
	}
	if teamOnPlanet && playerOnPlanet && teamPlanet != player.CurrentLocation.OnPlanet {
		return DenyNotSamePlanet
	}
	return OK
}

// canConsiderHiringPlayer validates the hire-cost side of hiring,
// independent of roster/location checks, so UI code can preview
// affordability before a slot opens up.
func canConsiderHiringPlayer(team *model.Team, player *model.Player) Denial {
	relativeAge := model.RelativeAge(player.Age, model.LifespanPeak[player.Population])
	cost := player.HireCost(relativeAge, team.Reputation)
	if team.Balance() < cost {
		return DenyNotEnoughMoney
	}
	if relativeAge >= 1.0 {
		return DenyPlayerTooOld
	}
	return OK
}

// CanHirePlayer composes canAddPlayer and canConsiderHiringPlayer.
func CanHirePlayer(w *world.World, teamID model.TeamID, playerID model.PlayerID) Denial {
	team, ok := w.Teams[teamID]
	if !ok {
		return DenyNoSuchTeam
	}
	player, ok := w.Players[playerID]
	if !ok {
		return DenyNoSuchPlayer
	}
	if d := canAddPlayer(w, team, player); !d.Allowed() {
		return d
	}
	return canConsiderHiringPlayer(team, player)
}

// CanReleasePlayer validates releasing playerID from teamID back to
// free-pirate status.
func CanReleasePlayer(w *world.World, teamID model.TeamID, playerID model.PlayerID) Denial {
	team, ok := w.Teams[teamID]
	if !ok {
		return DenyNoSuchTeam
	}
	player, ok := w.Players[playerID]
	if !ok {
		return DenyNoSuchPlayer
	}
	if !team.HasPlayer(playerID) {
		return DenyPlayerNotOnTeam
	}
	if player.Team == nil {
		return DenyPlayerNotOnAnyTeam
	}
	if _, onPlanet := team.IsOnPlanet(); !onPlanet {
		return DenyNotOnPlanet
	}
	if team.CurrentGame != nil {
		return DenyTeamPlaying
	}
	if _, playing := team.PlayingInTournament(); playing {
		return DenyTeamInTournament
	}
	return OK
}

// CanSetCrewRole validates assigning playerID (already on teamID) to a
// crew post.
func CanSetCrewRole(w *world.World, teamID model.TeamID, playerID model.PlayerID) Denial {
	team, ok := w.Teams[teamID]
	if !ok {
		return DenyNoSuchTeam
	}
	player, ok := w.Players[playerID]
	if !ok {
		return DenyNoSuchPlayer
	}
	if player.Team == nil {
		return DenyPlayerNotOnAnyTeam
	}
	if team.CurrentGame != nil {
		return DenyTeamPlaying
	}
	if _, playing := team.PlayingInTournament(); playing {
		return DenyTeamInTournament
	}
	return OK
}

// canPlayGameWithTeam is the shared core of the three challenge
// predicates: same tournament standing, not yourself, both sides on
// the same planet with enough rostered pirates (tiredness is not
// considered). partOfTournament is the
// tournament both sides must (or must not) share; nil means "neither".
func canPlayGameWithTeam(home, away *model.Team, partOfTournament *model.TournamentID) Denial {
	homeTournament, homePlaying := home.PlayingInTournament()
	awayTournament, awayPlaying := away.PlayingInTournament()
	if !sameTournamentStanding(homeTournament, homePlaying, partOfTournament) {
		return DenyTournamentMismatch
	}
	if !sameTournamentStanding(awayTournament, awayPlaying, partOfTournament) {
		return DenyTournamentMismatch
	}
	if home.ID == away.ID {
		return DenySameTeam
	}
	homePlanet, homeOnPlanet := home.IsOnPlanet()
	if !homeOnPlanet {
		return DenyAlreadyInSpace
	}
	awayPlanet, awayOnPlanet := away.IsOnPlanet()
	if !awayOnPlanet || homePlanet != awayPlanet {
		return DenyNotSamePlanet
	}
	if home.RosterSize() < minPlayersPerGame {
		return DenyRosterTooSmall
	}
	if away.RosterSize() < minPlayersPerGame {
		return DenyRosterTooSmall
	}
	return OK
}

// minPlayersPerGame is the fewest rostered pirates a team needs to field
// a five-a-side game, distinct from MaxCrewSize's upper bound.
const minPlayersPerGame = 5

func sameTournamentStanding(got model.TournamentID, playing bool, want *model.TournamentID) bool {
	if want == nil {
		return !playing
	}
	return playing && got == *want
}

// CanChallengeLocalTeam validates a same-process challenge: both teams
// must be local peers (no PeerID) and idle.
func CanChallengeLocalTeam(w *world.World, teamID, targetID model.TeamID) Denial {
	team, target, d := lookupTwoTeams(w, teamID, targetID)
	if !d.Allowed() {
		return d
	}
	if target.PeerID != nil {
		return DenyTeamNotLocal
	}
	if team.CurrentGame != nil {
		return DenyTeamPlaying
	}
	if target.CurrentGame != nil {
		return DenyTeamPlaying
	}
	return canPlayGameWithTeam(team, target, nil)
}

// CanChallengeNetworkTeam validates sending a ChallengeProposal to a
// remote peer's team.
func CanChallengeNetworkTeam(w *world.World, teamID, targetID model.TeamID, alreadyChallenged bool) Denial {
	team, target, d := lookupTwoTeams(w, teamID, targetID)
	if !d.Allowed() {
		return d
	}
	if target.PeerID == nil {
		return DenyTeamNotNetwork
	}
	if team.CurrentGame != nil {
		return DenyTeamPlaying
	}
	if target.CurrentGame != nil {
		return DenyTeamPlaying
	}
	if alreadyChallenged {
		return DenyAlreadyChallenged
	}
	return canPlayGameWithTeam(team, target, nil)
}

// CanAcceptNetworkChallenge validates the receiving side of a
// ChallengeProposal. It deliberately omits the current_game check that
// CanChallengeLocalTeam/CanChallengeNetworkTeam apply: the proposer and
// acceptor exchange messages across two ticks, so by the time the
// acceptor validates, a third team's challenge may already have set
// current_game without that being a real conflict for this handshake.
func CanAcceptNetworkChallenge(w *world.World, teamID, targetID model.TeamID) Denial {
	team, target, d := lookupTwoTeams(w, teamID, targetID)
	if !d.Allowed() {
		return d
	}
	return canPlayGameWithTeam(team, target, nil)
}

func lookupTwoTeams(w *world.World, teamID, targetID model.TeamID) (*model.Team, *model.Team, Denial) {
	team, ok := w.Teams[teamID]
	if !ok {
		return nil, nil, DenyNoSuchTeam
	}
	target, ok := w.Teams[targetID]
	if !ok {
		return nil, nil, DenyNoSuchTeam
	}
	return team, target, OK
}

// CanTradePlayers validates proposerTeam trading proposerPlayer for
// targetTeam's targetPlayer, from the proposer's point of view.
func CanTradePlayers(w *world.World, proposerTeamID model.TeamID, proposerPlayerID model.PlayerID, targetTeamID model.TeamID, targetPlayerID model.PlayerID) Denial {
	proposerTeam, ok := w.Teams[proposerTeamID]
	if !ok {
		return DenyNoSuchTeam
	}
	targetTeam, ok := w.Teams[targetTeamID]
	if !ok {
		return DenyNoSuchTeam
	}
	proposerPlayer, ok := w.Players[proposerPlayerID]
	if !ok {
		return DenyNoSuchPlayer
	}
	targetPlayer, ok := w.Players[targetPlayerID]
	if !ok {
		return DenyNoSuchPlayer
	}

	if proposerTeam.ID == targetTeam.ID {
		return DenySameTeam
	}
	if proposerPlayer.Team == nil || *proposerPlayer.Team != proposerTeam.ID {
		return DenyTargetPlayerElsewhere
	}
	if targetPlayer.Team == nil || *targetPlayer.Team != targetTeam.ID {
		return DenyTargetPlayerElsewhere
	}
	if *targetPlayer.Team == proposerTeam.ID {
		return DenyTargetPlayerHere
	}

	proposerPlanet, proposerOnPlanet := proposerTeam.IsOnPlanet()
	targetPlanet, targetOnPlanet := targetTeam.IsOnPlanet()
	if !proposerOnPlanet || !targetOnPlanet || proposerPlanet != targetPlanet {
		return DenyNotSamePlanet
	}
	if proposerTeam.CurrentGame != nil {
		return DenyTeamPlaying
	}
	if targetTeam.CurrentGame != nil {
		return DenyTeamPlaying
	}
	if _, playing := proposerTeam.PlayingInTournament(); playing {
		return DenyTeamInTournament
	}
	if _, playing := targetTeam.PlayingInTournament(); playing {
		return DenyTeamInTournament
	}
	return OK
}

// CanUpgradeSpaceship validates upgrading teamID's spaceship component
// kind to its next tier: the team must be on a planet and able to
// afford the upgrade cost.
func CanUpgradeSpaceship(w *world.World, teamID model.TeamID, kind model.ComponentKind) Denial {
	team, ok := w.Teams[teamID]
	if !ok {
		return DenyNoSuchTeam
	}
	if _, onPlanet := team.IsOnPlanet(); !onPlanet {
		return DenyNotOnPlanet
	}
	if team.Spaceship.PendingUpgrade != nil {
		return DenyUpgradeInProgress
	}
	if !team.Spaceship.CanUpgrade(kind) {
		return DenyComponentMaxed
	}
	cost := team.Spaceship.UpgradeCost(kind)
	if d := canAffordResources(team, cost); !d.Allowed() {
		return d
	}
	return OK
}

func canAffordResources(team *model.Team, cost map[model.Resource]int) Denial {
	for resource, amount := range cost {
		if team.Resources[resource] < amount {
			return DenyInsufficientResources
		}
	}
	return OK
}

// CanUpgradeAsteroid validates building upgrade on asteroidID, owned by
// teamID, respecting the teleport-pad -> mining-rig -> refinery
// prerequisite chain.
func CanUpgradeAsteroid(w *world.World, teamID model.TeamID, asteroidID model.PlanetID, upgrade model.PlanetUpgrade, cost map[model.Resource]int) Denial {
	team, ok := w.Teams[teamID]
	if !ok {
		return DenyNoSuchTeam
	}
	asteroid, ok := w.Planets[asteroidID]
	if !ok {
		return DenyNoSuchPlanet
	}
	if asteroid.HasUpgrade(upgrade) {
		return DenyAsteroidUpgraded
	}
	if prereq, needed := prerequisiteFor(upgrade); needed && !asteroid.HasUpgrade(prereq) {
		return DenyMissingPrerequisite
	}
	if planet, onPlanet := team.IsOnPlanet(); !onPlanet || planet != asteroidID {
		return DenyNotOnAsteroid
	}
	return canAffordResources(team, cost)
}

// CanBuildSpaceCove validates establishing a space cove on asteroidID,
// owned by teamID: a team may only ever have one, and must be present
// at the asteroid to build it.
func CanBuildSpaceCove(w *world.World, teamID model.TeamID, asteroidID model.PlanetID, cost map[model.Resource]int) Denial {
	team, ok := w.Teams[teamID]
	if !ok {
		return DenyNoSuchTeam
	}
	if _, ok := w.Planets[asteroidID]; !ok {
		return DenyNoSuchPlanet
	}
	if team.SpaceCove != nil {
		return DenyOwnOnlyOneCove
	}
	if planet, onPlanet := team.IsOnPlanet(); !onPlanet || planet != asteroidID {
		return DenyNotOnAsteroid
	}
	return canAffordResources(team, cost)
}

// prerequisiteFor reports the upgrade that must already be built
// before upgrade, if any, mirroring the teleport-pad -> mining-rig ->
// refinery chain.
func prerequisiteFor(upgrade model.PlanetUpgrade) (model.PlanetUpgrade, bool) {
	switch upgrade {
	case model.UpgradeMiningRig:
		return model.UpgradeTeleportPad, true
	case model.UpgradeRefinery:
		return model.UpgradeMiningRig, true
	default:
		return 0, false
	}
}

// CanRegisterToTournament validates teamID registering for tournament.
func CanRegisterToTournament(w *world.World, teamID model.TeamID, tournamentID model.TournamentID, now clock.Tick) Denial {
	team, ok := w.Teams[teamID]
	if !ok {
		return DenyNoSuchTeam
	}
	tournament, ok := w.Tournaments[tournamentID]
	if !ok {
		return DenyNoSuchTournament
	}
	if tournament.State(now) != model.TournamentStateRegistration {
		return DenyTournamentNotOrganizing
	}
	if _, registered := tournament.Participants[teamID]; registered {
		return DenyAlreadyRegistered
	}
	if team.CurrentGame != nil {
		return DenyTeamPlaying
	}
	if team.TournamentRegistration.State != model.RegistrationNone &&
		team.TournamentRegistration.ID != tournamentID {
		return DenyRegisteredElsewhere
	}
	if planet, onPlanet := team.IsOnPlanet(); !onPlanet || planet != tournament.Planet {
		return DenyNotAtTournamentPlanet
	}
	return OK
}

// CanConfirmTournamentRegistration validates teamID confirming its slot
// in tournament ahead of the confirmation deadline.
func CanConfirmTournamentRegistration(w *world.World, teamID model.TeamID, tournamentID model.TournamentID, now clock.Tick) Denial {
	team, ok := w.Teams[teamID]
	if !ok {
		return DenyNoSuchTeam
	}
	tournament, ok := w.Tournaments[tournamentID]
	if !ok {
		return DenyNoSuchTournament
	}
	if tournament.State(now) != model.TournamentStateConfirmation {
		return DenyTournamentNotConfirming
	}
	if _, registered := tournament.Participants[teamID]; !registered {
		return DenyNotRegistered
	}
	if tournament.IsFull() {
		return DenyTournamentFull
	}
	if team.CurrentGame != nil {
		return DenyTeamPlaying
	}
	if teamID != tournament.Organizer && team.TournamentRegistration.ID != tournamentID {
		return DenyNotRegistered
	}
	if planet, onPlanet := team.IsOnPlanet(); !onPlanet || planet != tournament.Planet {
		return DenyNotAtTournamentPlanet
	}
	return OK
}

// CanOrganizeTournament validates teamID starting a new tournament:
// open question (a) drops the original's kartoffeln precondition, so
// a ready space cove is the only requirement beyond idleness.
func CanOrganizeTournament(w *world.World, teamID model.TeamID) Denial {
	team, ok := w.Teams[teamID]
	if !ok {
		return DenyNoSuchTeam
	}
	if team.CurrentGame != nil {
		return DenyTeamPlaying
	}
	if team.TournamentRegistration.State != model.RegistrationNone {
		return DenyTeamInTournament
	}
	if team.IsOrganizingTournament != nil {
		return DenyAlreadyOrganizing
	}
	if team.SpaceCove == nil {
		return DenyNoSpaceCove
	}
	if !team.SpaceCove.Ready {
		return DenySpaceCoveNotReady
	}
	if planet, onPlanet := team.IsOnPlanet(); !onPlanet || planet != team.SpaceCove.Planet {
		return DenyNotAtCovePlanet
	}
	return OK
}

// CanStartSpaceAdventure validates teamID launching a C5 run.
func CanStartSpaceAdventure(w *world.World, teamID model.TeamID) Denial {
	team, ok := w.Teams[teamID]
	if !ok {
		return DenyNoSuchTeam
	}
	if len(team.PlayerIDs) == 0 {
		return DenyNoCrewToTravel
	}
	if _, onPlanet := team.IsOnPlanet(); !onPlanet {
		return DenyAlreadyInSpace
	}
	if team.Spaceship.PendingUpgrade != nil {
		return DenyUpgradingSpaceship
	}
	if team.CurrentGame != nil {
		return DenyTeamPlaying
	}
	if _, playing := team.PlayingInTournament(); playing {
		return DenyTeamInTournament
	}
	if team.SpaceshipNeedsRepair() {
		return DenySpaceshipNeedsRepair
	}
	if team.Resources[model.ResourceFuel] == 0 {
		return DenyInsufficientFuel
	}
	if averageTiredness(w, team) > maxAvgTirednessPerSpaceAdventure {
		return DenyCrewTooTired
	}
	return OK
}

func averageTiredness(w *world.World, team *model.Team) float64 {
	if len(team.PlayerIDs) == 0 {
		return 0
	}
	sum := 0.0
	for _, id := range team.PlayerIDs {
		if p, ok := w.Players[id]; ok {
			sum += p.Tiredness
		}
	}
	return sum / float64(len(team.PlayerIDs))
}

// CanExploreAroundPlanet validates teamID exploring around planetID for
// explorationDuration ticks; exploration never costs tiredness, so the
// crew-tiredness check from CanStartSpaceAdventure is skipped.
func CanExploreAroundPlanet(w *world.World, teamID model.TeamID, planetID model.PlanetID, explorationDuration clock.Tick) Denial {
	team, ok := w.Teams[teamID]
	if !ok {
		return DenyNoSuchTeam
	}
	if len(team.PlayerIDs) == 0 {
		return DenyNoCrewToTravel
	}
	if _, onPlanet := team.IsOnPlanet(); !onPlanet {
		return DenyAlreadyInSpace
	}
	if team.Spaceship.PendingUpgrade != nil {
		return DenyUpgradingSpaceship
	}
	if team.CurrentGame != nil {
		return DenyTeamPlaying
	}
	if _, playing := team.PlayingInTournament(); playing {
		return DenyTeamInTournament
	}
	if team.SpaceshipNeedsRepair() {
		return DenySpaceshipNeedsRepair
	}
	if team.Resources[model.ResourceFuel] == 0 {
		return DenyInsufficientFuel
	}

	if planet, onPlanet := team.IsOnPlanet(); !onPlanet || planet != planetID {
		return DenyNotOnThisPlanet
	}
	fuelNeed := fuelNeedForDuration(team, explorationDuration)
	if fuelNeed > team.Resources[model.ResourceFuel] {
		return DenyInsufficientFuel
	}
	return OK
}

// CanChangeTrainingFocus validates teamID changing its training focus.
func CanChangeTrainingFocus(w *world.World, teamID model.TeamID) Denial {
	team, ok := w.Teams[teamID]
	if !ok {
		return DenyNoSuchTeam
	}
	if team.CurrentGame != nil {
		return DenyTeamPlaying
	}
	return OK
}

// CanTradeResource validates buying (amount > 0) or selling (amount <
// 0) amount units of resource at unitCost satoshi each.
func CanTradeResource(w *world.World, teamID model.TeamID, resource model.Resource, amount, unitCost int) Denial {
	team, ok := w.Teams[teamID]
	if !ok {
		return DenyNoSuchTeam
	}
	switch {
	case amount > 0:
		totalCost := amount * unitCost
		if team.Balance() < totalCost {
			return DenyNotEnoughMoney
		}
		if resource == model.ResourceFuel {
			if team.Resources[model.ResourceFuel]+amount > team.Spaceship.FuelCapacity() {
				return DenyInsufficientStorage
			}
		} else if usedStorage(team)+amount > team.Spaceship.StorageCapacity() {
			return DenyInsufficientStorage
		}
	case amount < 0:
		if team.Resources[resource] < -amount {
			return DenyNotEnoughResource
		}
	}
	return OK
}

// usedStorage sums every non-fuel resource a team is carrying; fuel is
// tracked against its own capacity per spec.md section 5.
func usedStorage(team *model.Team) int {
	total := 0
	for _, r := range model.AllResources {
		if r == model.ResourceFuel {
			continue
		}
		total += team.Resources[r]
	}
	return total
}
