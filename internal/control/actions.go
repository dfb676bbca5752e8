package control

import (
	"math"

	"github.com/corsair-league/armada/internal/clock"
	"github.com/corsair-league/armada/internal/events"
	"github.com/corsair-league/armada/internal/match"
	"github.com/corsair-league/armada/internal/model"
	"github.com/corsair-league/armada/internal/space"
	"github.com/corsair-league/armada/internal/world"
)

// Every action in this file validates against the matching can_*
// predicate in predicates.go, then mutates *world.World under its own
// Lock/Unlock — there is no separate locking layer. A Denial return
// means the world was left untouched.

// GoToTeam validates that teamID exists. Unlike every other action it
// performs no mutation: the source game's callback of the same name
// only switches which team panel the caller's UI is showing, so here
// it is just the lookup/guard a caller uses before doing that locally.
func GoToTeam(w *world.World, teamID model.TeamID) (*model.Team, Denial) {
	w.RLock()
	defer w.RUnlock()
	team, ok := w.Teams[teamID]
	if !ok {
		return nil, DenyNoSuchTeam
	}
	return team, OK
}

// HirePlayer signs playerID onto teamID's roster, debiting the hire
// cost from the team's satoshi.
func HirePlayer(w *world.World, teamID model.TeamID, playerID model.PlayerID) Denial {
	w.Lock()
	defer w.Unlock()

	if d := CanHirePlayer(w, teamID, playerID); !d.Allowed() {
		return d
	}
	team := w.Teams[teamID]
	player := w.Players[playerID]

	relativeAge := model.RelativeAge(player.Age, model.LifespanPeak[player.Population])
	cost := player.HireCost(relativeAge, team.Reputation)
	team.Resources[model.ResourceSatoshi] -= cost

	team.AddPlayer(playerID)
	player.Team = &teamID
	player.CurrentLocation = model.Location{WithTeam: true}

	team.Touch()
	player.Touch()
	w.MarkDirty()
	return OK
}

// ReleasePlayer drops playerID back to free-pirate status, left at
// teamID's current planet.
func ReleasePlayer(w *world.World, teamID model.TeamID, playerID model.PlayerID) Denial {
	w.Lock()
	defer w.Unlock()

	if d := CanReleasePlayer(w, teamID, playerID); !d.Allowed() {
		return d
	}
	team := w.Teams[teamID]
	player := w.Players[playerID]
	planet, _ := team.IsOnPlanet()

	team.RemovePlayer(playerID)
	player.Team = nil
	player.CurrentLocation = model.Location{OnPlanet: planet}

	team.Touch()
	player.Touch()
	w.MarkDirty()
	return OK
}

// SetCrewRole assigns playerID to a post on teamID, vacating whichever
// post it previously held. CrewRoleMozzo is additive rather than
// exclusive: the player is appended to the Mozzo list.
func SetCrewRole(w *world.World, teamID model.TeamID, playerID model.PlayerID, post model.CrewRole) Denial {
	w.Lock()
	defer w.Unlock()

	if d := CanSetCrewRole(w, teamID, playerID); !d.Allowed() {
		return d
	}
	team := w.Teams[teamID]
	player := w.Players[playerID]

	team.ClearCrewRole(playerID)
	switch post {
	case model.CrewRoleCaptain:
		team.CrewRoles.Captain = &playerID
	case model.CrewRoleDoctor:
		team.CrewRoles.Doctor = &playerID
	case model.CrewRolePilot:
		team.CrewRoles.Pilot = &playerID
	case model.CrewRoleEngineer:
		team.CrewRoles.Engineer = &playerID
	case model.CrewRoleMozzo:
		team.CrewRoles.Mozzo = append(team.CrewRoles.Mozzo, playerID)
	}
	player.CrewRole = post

	team.Touch()
	player.Touch()
	w.MarkDirty()
	return OK
}

// TravelToPlanet departs teamID for destination, debiting fuel (or rum,
// for a teleport hop) up front; tickTravelLocked completes the arrival
// once started+duration has passed.
func TravelToPlanet(w *world.World, teamID model.TeamID, destination model.PlanetID, now, duration clock.Tick, teleport bool) Denial {
	w.Lock()
	defer w.Unlock()

	if d := CanTravelToPlanet(w, teamID, destination, duration, teleport); !d.Allowed() {
		return d
	}
	team := w.Teams[teamID]
	origin, _ := team.IsOnPlanet()

	if teleport {
		team.Resources[model.ResourceRum] -= len(team.PlayerIDs)
	} else {
		team.Resources[model.ResourceFuel] -= fuelNeedForDuration(team, duration)
	}

	team.CurrentLocation = model.TeamLocation{
		Kind:     model.LocationTravelling,
		From:     origin,
		To:       destination,
		Started:  now,
		Duration: duration,
	}
	team.Touch()
	w.MarkDirty()
	return OK
}

// ExploreAroundPlanet sends teamID orbiting planetID for
// explorationDuration ticks, debiting fuel the same way TravelToPlanet
// does. Not itself one of spec's named external actions, but the only
// way to exercise LocationExploring and CanExploreAroundPlanet.
func ExploreAroundPlanet(w *world.World, teamID model.TeamID, planetID model.PlanetID, now, explorationDuration clock.Tick) Denial {
	w.Lock()
	defer w.Unlock()

	if d := CanExploreAroundPlanet(w, teamID, planetID, explorationDuration); !d.Allowed() {
		return d
	}
	team := w.Teams[teamID]
	team.Resources[model.ResourceFuel] -= fuelNeedForDuration(team, explorationDuration)
	team.CurrentLocation = model.TeamLocation{
		Kind:     model.LocationExploring,
		Planet:   planetID,
		Started:  now,
		Duration: explorationDuration,
	}
	team.Touch()
	w.MarkDirty()
	return OK
}

// ChallengeTeam issues a challenge from teamID to targetID. A local
// target (no PeerID) starts the game immediately; a network target
// only validates here, since the game is created once ChallengeConfirm
// completes the handshake (internal/protocol), mirroring the
// ChallengeProposal/Ack/Confirm round trip spec.md 4.8 describes.
func ChallengeTeam(w *world.World, teamID, targetID model.TeamID, now clock.Tick) (model.GameID, Denial) {
	w.Lock()
	defer w.Unlock()

	target, ok := w.Teams[targetID]
	if !ok {
		return model.GameID{}, DenyNoSuchTeam
	}

	if target.PeerID == nil {
		if d := CanChallengeLocalTeam(w, teamID, targetID); !d.Allowed() {
			return model.GameID{}, d
		}
		return createLocalGame(w, w.Teams[teamID], target, now), OK
	}

	if d := CanChallengeNetworkTeam(w, teamID, targetID, false); !d.Allowed() {
		return model.GameID{}, d
	}
	return model.GameID{}, OK
}

// AcceptChallenge is the accepting side's half of a network challenge:
// once the handshake has converged, it creates the game exactly as a
// local challenge would.
func AcceptChallenge(w *world.World, teamID, proposerID model.TeamID, now clock.Tick) (model.GameID, Denial) {
	w.Lock()
	defer w.Unlock()

	if d := CanAcceptNetworkChallenge(w, teamID, proposerID); !d.Allowed() {
		return model.GameID{}, d
	}
	return createLocalGame(w, w.Teams[proposerID], w.Teams[teamID], now), OK
}

func createLocalGame(w *world.World, home, away *model.Team, now clock.Tick) model.GameID {
	id := model.NewGameID()
	planet, _ := home.IsOnPlanet()

	game := &model.Game{
		ID:         id,
		Home:       buildTeamInGame(w, home),
		Away:       buildTeamInGame(w, away),
		Location:   planet,
		StartingAt: now,
		Seed:       w.MasterSeed ^ gameIDSeedMix(id),
	}
	w.Games[id] = game

	for _, team := range [2]*model.Team{home, away} {
		team.CurrentGame = &id
		team.CurrentLocation = model.TeamLocation{Kind: model.LocationPlayingGame, Planet: planet, Game: id}
		team.Touch()
	}
	w.MarkDirty()
	return id
}

func buildTeamInGame(w *world.World, team *model.Team) model.TeamInGame {
	roster := make([]*model.Player, 0, len(team.PlayerIDs))
	for _, id := range team.PlayerIDs {
		if p, ok := w.Players[id]; ok {
			roster = append(roster, p)
		}
	}
	lineup := match.BestLineup(roster)

	stats := make(map[model.PlayerID]*model.StatLine, len(team.PlayerIDs))
	for _, id := range team.PlayerIDs {
		stats[id] = &model.StatLine{}
	}

	return model.TeamInGame{
		TeamID:         team.ID,
		Name:           team.Name,
		PeerID:         team.PeerID,
		Reputation:     team.Reputation,
		Tactic:         team.Tactic,
		StartingLineup: lineup.Starters,
		Bench:          lineup.Bench,
		OnCourt:        lineup.Starters,
		Stats:          stats,
	}
}

// gameIDSeedMix folds a GameID's bytes into a single uint64, the same
// byte-xor-fold world.planetSeedMix uses for free-pirate generation.
func gameIDSeedMix(id model.GameID) uint64 {
	var mixed uint64
	for i, b := range id {
		mixed ^= uint64(b) << (8 * uint(i%8))
	}
	return mixed
}

// CreateTradeProposal validates and, for a local (non-network)
// opponent, immediately executes proposerPlayerID-for-targetPlayerID.
// Against a network team, it only validates: the swap completes once
// the opponent's peer accepts, by internal/protocol calling
// ExecuteTrade directly.
func CreateTradeProposal(w *world.World, proposerTeamID model.TeamID, proposerPlayerID model.PlayerID, targetTeamID model.TeamID, targetPlayerID model.PlayerID) Denial {
	w.Lock()
	defer w.Unlock()

	if d := CanTradePlayers(w, proposerTeamID, proposerPlayerID, targetTeamID, targetPlayerID); !d.Allowed() {
		return d
	}
	if w.Teams[targetTeamID].PeerID != nil {
		return OK
	}
	executeTradeLocked(w, proposerTeamID, proposerPlayerID, targetTeamID, targetPlayerID)
	return OK
}

// ExecuteTrade performs the player swap unconditionally once both
// sides have agreed; used by internal/protocol's trade-accept handler
// for a network trade, and directly by CreateTradeProposal for a local
// one.
func ExecuteTrade(w *world.World, proposerTeamID model.TeamID, proposerPlayerID model.PlayerID, targetTeamID model.TeamID, targetPlayerID model.PlayerID) Denial {
	w.Lock()
	defer w.Unlock()

	if d := CanTradePlayers(w, proposerTeamID, proposerPlayerID, targetTeamID, targetPlayerID); !d.Allowed() {
		return d
	}
	executeTradeLocked(w, proposerTeamID, proposerPlayerID, targetTeamID, targetPlayerID)
	return OK
}

func executeTradeLocked(w *world.World, proposerTeamID model.TeamID, proposerPlayerID model.PlayerID, targetTeamID model.TeamID, targetPlayerID model.PlayerID) {
	proposerTeam := w.Teams[proposerTeamID]
	targetTeam := w.Teams[targetTeamID]
	proposerPlayer := w.Players[proposerPlayerID]
	targetPlayer := w.Players[targetPlayerID]

	proposerTeam.RemovePlayer(proposerPlayerID)
	targetTeam.RemovePlayer(targetPlayerID)
	proposerTeam.AddPlayer(targetPlayerID)
	targetTeam.AddPlayer(proposerPlayerID)

	proposerPlayer.Team = &targetTeamID
	targetPlayer.Team = &proposerTeamID

	proposerTeam.Touch()
	targetTeam.Touch()
	proposerPlayer.Touch()
	targetPlayer.Touch()
	w.MarkDirty()
}

// spaceshipUpgradeDurationTicks is how long a component upgrade takes
// to complete once paid for; the source game's equivalent constant did
// not survive distillation, so this is an own-design choice (three
// long ticks: a deliberately slow, planned purchase rather than an
// instant one).
const spaceshipUpgradeDurationTicks = uint64(3 * clock.LongTickMillis)

// UpgradeSpaceship pays for and queues an upgrade of component kind,
// completed later by World's long tick (completePendingUpgrade).
func UpgradeSpaceship(w *world.World, teamID model.TeamID, kind model.ComponentKind, now clock.Tick) Denial {
	w.Lock()
	defer w.Unlock()

	if d := CanUpgradeSpaceship(w, teamID, kind); !d.Allowed() {
		return d
	}
	team := w.Teams[teamID]
	for resource, amount := range team.Spaceship.UpgradeCost(kind) {
		team.Resources[resource] -= amount
	}
	team.Spaceship.PendingUpgrade = &model.PendingUpgrade{
		Component: kind,
		Started:   uint64(now),
		Duration:  spaceshipUpgradeDurationTicks,
	}
	team.Touch()
	w.MarkDirty()
	return OK
}

// UpgradeAsteroid pays for and immediately applies upgrade on
// asteroidID, owned by teamID. Asteroid upgrades are not queued the way
// spaceship upgrades are (see DESIGN.md's open decision on this), so
// there is no pending state to complete on a later tick.
func UpgradeAsteroid(w *world.World, teamID model.TeamID, asteroidID model.PlanetID, upgrade model.PlanetUpgrade, cost map[model.Resource]int) Denial {
	w.Lock()
	defer w.Unlock()

	if d := CanUpgradeAsteroid(w, teamID, asteroidID, upgrade, cost); !d.Allowed() {
		return d
	}
	team := w.Teams[teamID]
	asteroid := w.Planets[asteroidID]
	for resource, amount := range cost {
		team.Resources[resource] -= amount
	}
	asteroid.Upgrades = append(asteroid.Upgrades, upgrade)
	team.AsteroidIDs = appendUniquePlanet(team.AsteroidIDs, asteroidID)
	team.Touch()
	w.MarkDirty()
	return OK
}

// BuildSpaceCove pays for and establishes teamID's one and only space
// cove on asteroidID.
func BuildSpaceCove(w *world.World, teamID model.TeamID, asteroidID model.PlanetID, cost map[model.Resource]int) Denial {
	w.Lock()
	defer w.Unlock()

	if d := CanBuildSpaceCove(w, teamID, asteroidID, cost); !d.Allowed() {
		return d
	}
	team := w.Teams[teamID]
	for resource, amount := range cost {
		team.Resources[resource] -= amount
	}
	team.SpaceCove = &model.SpaceCove{Planet: asteroidID, Ready: true}
	team.AsteroidIDs = appendUniquePlanet(team.AsteroidIDs, asteroidID)
	team.Touch()
	w.MarkDirty()
	return OK
}

func appendUniquePlanet(ids []model.PlanetID, id model.PlanetID) []model.PlanetID {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}

// StartSpaceAdventure launches a C5 run for teamID, seeded off seed,
// and parks the team in LocationOnSpaceAdventure until EndSpaceAdventure
// applies the run's outcome. The caller (cmd/server) owns stepping the
// returned Scene at the ~30Hz cadence World.Tick expects.
func StartSpaceAdventure(w *world.World, teamID model.TeamID, seed int64) (*space.Scene, Denial) {
	w.Lock()
	defer w.Unlock()

	if d := CanStartSpaceAdventure(w, teamID); !d.Allowed() {
		return nil, d
	}
	team := w.Teams[teamID]
	planet, _ := team.IsOnPlanet()
	team.CurrentLocation = model.TeamLocation{Kind: model.LocationOnSpaceAdventure, Planet: planet}
	team.Touch()
	w.MarkDirty()
	return space.NewScene(team, seed), OK
}

// EndSpaceAdventure applies a finished space.Scene's Result back onto
// teamID: fuel debit, resource credit, hull damage, and the return to
// LocationOnPlanet. A Destroyed run leaves the spaceship needing a full
// repair; a safe Returned run clears any outstanding damage, treating
// the dock as a free repair.
func EndSpaceAdventure(w *world.World, teamID model.TeamID, result space.Result, now clock.Tick) Denial {
	w.Lock()
	defer w.Unlock()

	team, ok := w.Teams[teamID]
	if !ok {
		return DenyNoSuchTeam
	}
	if team.CurrentLocation.Kind != model.LocationOnSpaceAdventure {
		return DenyNoActiveAdventure
	}

	fuelSpent := int(math.Ceil(result.FuelSpent))
	if fuelSpent > team.Resources[model.ResourceFuel] {
		fuelSpent = team.Resources[model.ResourceFuel]
	}
	team.Resources[model.ResourceFuel] -= fuelSpent

	for resource, amount := range result.ResourcesCollected {
		team.AddResource(resource, amount)
	}

	switch {
	case result.Destroyed:
		team.SpaceshipDamage = team.Spaceship.Durability()
	case result.Returned:
		team.SpaceshipDamage = 0
	default:
		team.SpaceshipDamage += result.DamageTaken
		if max := team.Spaceship.Durability(); team.SpaceshipDamage > max {
			team.SpaceshipDamage = max
		}
	}

	planet := team.CurrentLocation.Planet
	team.CurrentLocation = model.TeamLocation{Kind: model.LocationOnPlanet, Planet: planet}
	team.NumberOfSpaceAdventures++
	team.Touch()
	w.MarkDirty()

	w.Events().Push(events.PopupMessage{
		Tick:     now,
		Kind:     events.KindSpaceAdventureEnded,
		TeamID:   teamID,
		PlanetID: planet,
	})
	return OK
}

// SetTeamTactic changes teamID's default lineup tactic.
func SetTeamTactic(w *world.World, teamID model.TeamID, tactic model.Tactic) Denial {
	w.Lock()
	defer w.Unlock()

	team, ok := w.Teams[teamID]
	if !ok {
		return DenyNoSuchTeam
	}
	team.Tactic = tactic
	team.Touch()
	w.MarkDirty()
	return OK
}

// NextTrainingFocus cycles teamID's training focus through the five
// skill groups and back to none. The source game cycles this per
// player; this model's training-focus multiplier (trainingMultiplier,
// internal/world/tick_long.go) is team-wide, so the cycle is too.
func NextTrainingFocus(w *world.World, teamID model.TeamID) Denial {
	w.Lock()
	defer w.Unlock()

	if d := CanChangeTrainingFocus(w, teamID); !d.Allowed() {
		return d
	}
	team := w.Teams[teamID]
	team.TrainingFocus = nextSkillGroup(team.TrainingFocus)
	team.Touch()
	w.MarkDirty()
	return OK
}

func nextSkillGroup(current *model.SkillGroup) *model.SkillGroup {
	if current == nil {
		g := model.SkillGroupAthletics
		return &g
	}
	if *current >= model.SkillGroupMental {
		return nil
	}
	next := *current + 1
	return &next
}

// TradeResource buys (amount > 0) or sells (amount < 0) amount units of
// resource at unitCost satoshi each.
func TradeResource(w *world.World, teamID model.TeamID, resource model.Resource, amount, unitCost int) Denial {
	w.Lock()
	defer w.Unlock()

	if d := CanTradeResource(w, teamID, resource, amount, unitCost); !d.Allowed() {
		return d
	}
	team := w.Teams[teamID]
	team.Resources[resource] += amount
	team.Resources[model.ResourceSatoshi] -= amount * unitCost
	team.Touch()
	w.MarkDirty()
	return OK
}

// SendMessage validates teamID as a known sender for a chat message.
// The actual gossip broadcast is internal/protocol's concern once its
// hub exists; this only gates who may speak as a registered team.
func SendMessage(w *world.World, teamID model.TeamID, text string) Denial {
	w.RLock()
	defer w.RUnlock()

	if _, ok := w.Teams[teamID]; !ok {
		return DenyNoSuchTeam
	}
	if text == "" {
		return DenyEmptyMessage
	}
	return OK
}

// BuildTeamInGame exports the frozen-lineup snapshot internal/protocol
// needs to populate a ChallengeProposal/ChallengeAck's Home/Away field,
// without exposing buildTeamInGame's world-locking contract directly.
func BuildTeamInGame(w *world.World, teamID model.TeamID) (model.TeamInGame, Denial) {
	w.RLock()
	defer w.RUnlock()
	team, ok := w.Teams[teamID]
	if !ok {
		return model.TeamInGame{}, DenyNoSuchTeam
	}
	return buildTeamInGame(w, team), OK
}

// ValidateAcceptNetworkChallenge is CanAcceptNetworkChallenge with its
// own read lock, for internal/protocol to call before sending a
// ChallengeAck — acceptance itself happens later, at Confirm.
func ValidateAcceptNetworkChallenge(w *world.World, teamID, proposerID model.TeamID) Denial {
	w.RLock()
	defer w.RUnlock()
	return CanAcceptNetworkChallenge(w, teamID, proposerID)
}

// ValidateChallengeStillOpen is CanChallengeNetworkTeam with its own
// read lock, re-checked by the proposer once a ChallengeAck arrives
// (state may have moved on since the original ChallengeTeam call).
func ValidateChallengeStillOpen(w *world.World, teamID, targetID model.TeamID) Denial {
	w.RLock()
	defer w.RUnlock()
	return CanChallengeNetworkTeam(w, teamID, targetID, false)
}

// ValidateTrade is CanTradePlayers with its own read lock, for
// internal/protocol to call before replying to a TradeProposal — the
// swap itself only happens once ExecuteTrade runs, on TradeAccept.
func ValidateTrade(w *world.World, proposerTeamID model.TeamID, proposerPlayerID model.PlayerID, targetTeamID model.TeamID, targetPlayerID model.PlayerID) Denial {
	w.RLock()
	defer w.RUnlock()
	return CanTradePlayers(w, proposerTeamID, proposerPlayerID, targetTeamID, targetPlayerID)
}

// ConfirmNetworkGame installs a game both peers independently agreed on
// via the protocol challenge handshake. Unlike createLocalGame it never
// generates a GameID or Seed: both are already fixed by the handshake's
// ChallengeConfirm message, shared verbatim by both sides.
func ConfirmNetworkGame(w *world.World, game *model.Game, homeTeamID, awayTeamID model.TeamID) Denial {
	w.Lock()
	defer w.Unlock()

	home, ok := w.Teams[homeTeamID]
	if !ok {
		return DenyNoSuchTeam
	}
	away, ok := w.Teams[awayTeamID]
	if !ok {
		return DenyNoSuchTeam
	}

	w.Games[game.ID] = game
	for _, team := range [2]*model.Team{home, away} {
		team.CurrentGame = &game.ID
		team.CurrentLocation = model.TeamLocation{Kind: model.LocationPlayingGame, Planet: game.Location, Game: game.ID}
		team.Touch()
	}
	w.MarkDirty()
	return OK
}

// QuitGame forfeits teamID's in-progress game: its timer is forced to
// completion and the game is archived exactly as a naturally finished
// one would be, awarding the win to whichever score currently leads
// (which, after a forfeit, the caller is expected to have already
// zeroed out in the quitting team's favor if that convention applies).
func QuitGame(w *world.World, teamID model.TeamID, now clock.Tick) Denial {
	w.Lock()
	defer w.Unlock()

	team, ok := w.Teams[teamID]
	if !ok {
		return DenyNoSuchTeam
	}
	if team.CurrentGame == nil {
		return DenyTeamNotPlaying
	}
	gameID := *team.CurrentGame
	game, ok := w.Games[gameID]
	if !ok {
		return DenyNoSuchGame
	}
	game.Timer.Period = model.NumPeriods
	w.FinishGame(gameID, now)
	return OK
}
