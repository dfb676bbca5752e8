package model

import "github.com/corsair-league/armada/internal/clock"

// Situation is the match engine's state between actions: it determines
// which actions may be selected next.
type Situation int

const (
	SituationJumpBall Situation = iota
	SituationAfterOffensiveRebound
	SituationAfterDefensiveRebound
	SituationBallInBackcourt
	SituationMissedShot
	SituationCloseShot
	SituationMediumShot
	SituationLongShot
	SituationTurnover
	SituationSubstitution
)

// Advantage is a tri-state modifier applied to action rolls.
type Advantage int

const (
	AdvantageAttack Advantage = iota
	AdvantageNeutral
	AdvantageDefense
)

// Possession identifies which side currently holds the ball.
type Possession int

const (
	PossessionHome Possession = iota
	PossessionAway
)

// Opponent returns the other side.
func (p Possession) Opponent() Possession {
	if p == PossessionHome {
		return PossessionAway
	}
	return PossessionHome
}

// StatLine is a single player's accumulated box-score counters for one
// game.
type StatLine struct {
	Attempted2pt int
	Made2pt      int
	Attempted3pt int
	Made3pt      int
	Assists      int
	Blocks       int
	Steals       int
	OffRebounds  int
	DefRebounds  int
	Turnovers    int
	SecondsPlayed float64
}

// TeamInGame is the frozen snapshot of a team's lineup and tactic used
// to run one game, so the game can be replayed deterministically even
// if the team itself keeps changing.
type TeamInGame struct {
	TeamID     TeamID
	Name       string
	PeerID     *PeerID
	Reputation float64
	Tactic     Tactic

	// StartingLineup holds exactly 5 player ids; Bench holds the rest.
	StartingLineup [5]PlayerID
	Bench          []PlayerID

	// OnCourt mirrors the 5 players currently playing, updated by
	// substitutions during the game; index-aligned with StartingLineup
	// conceptually but may diverge after subs.
	OnCourt [5]PlayerID

	Stats map[PlayerID]*StatLine
}

// GameTimer tracks a game's period and elapsed-in-period ticks.
type GameTimer struct {
	Period  int
	Elapsed uint64 // ticks elapsed within the current period
}

// NumPeriods and PeriodLengthTicks bound a standard game.
const (
	NumPeriods        = 4
	PeriodLengthTicks = 10 * 60 * 1000 // 10 simulated minutes per period, in ms-ticks
)

// IsGameOver reports whether timer has exhausted all periods.
func (t GameTimer) IsGameOver() bool {
	return t.Period >= NumPeriods
}

// ActionResult is one resolved possession-action: the atomic unit
// appended to Game.ActionResults.
type ActionResult struct {
	Situation  Situation
	Advantage  Advantage
	Possession Possession

	AttackerIndex int // index into the possession team's OnCourt
	DefenderIndex int
	AssistFrom    *int // index into the possession team's OnCourt, if assisted
	BlockedBy     *int // index into the defending team's OnCourt, if blocked

	StartAt clock.Tick
	EndAt   clock.Tick

	ScoreChange int
	HomeScore   int
	AwayScore   int

	Description string

	AttackStatsUpdate map[PlayerID]StatLine
	DefenseStatsUpdate map[PlayerID]StatLine
}

// Game is one basketball match, home vs away, advanced action-by-action
// by the match engine until its timer expires.
type Game struct {
	ID   GameID
	Home TeamInGame
	Away TeamInGame

	Location PlanetID

	StartingAt clock.Tick
	Timer      GameTimer
	Possession Possession

	ActionResults []ActionResult

	Seed uint64 // mixed from world master seed + game id, for deterministic replay
}

// HomeScore/AwayScore read the running total off the last action, or 0
// before the first action resolves.
func (g *Game) HomeScore() int {
	if len(g.ActionResults) == 0 {
		return 0
	}
	return g.ActionResults[len(g.ActionResults)-1].HomeScore
}

func (g *Game) AwayScore() int {
	if len(g.ActionResults) == 0 {
		return 0
	}
	return g.ActionResults[len(g.ActionResults)-1].AwayScore
}

// IsOver reports whether the game's timer has run out.
func (g *Game) IsOver() bool { return g.Timer.IsGameOver() }

// GameSummary is the immutable record a completed Game is reduced to
// for past_games archival.
type GameSummary struct {
	ID         GameID
	HomeTeamID TeamID
	AwayTeamID TeamID
	HomeScore  int
	AwayScore  int
	Location   PlanetID
	PlayedAt   clock.Tick
}

func (g *Game) Summarize() GameSummary {
	return GameSummary{
		ID:         g.ID,
		HomeTeamID: g.Home.TeamID,
		AwayTeamID: g.Away.TeamID,
		HomeScore:  g.HomeScore(),
		AwayScore:  g.AwayScore(),
		Location:   g.Location,
		PlayedAt:   g.StartingAt,
	}
}
