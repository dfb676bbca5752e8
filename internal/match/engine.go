package match

import (
	"math/rand"
	"time"

	"github.com/corsair-league/armada/internal/clock"
	"github.com/corsair-league/armada/internal/model"
)

// Engine advances one Game at a time. It keeps two independent RNGs so
// narrative text can vary without perturbing mechanics: actionRng
// drives every roll that affects the score or stats, descriptionRng
// only selects which canned sentence narrates the outcome.
type Engine struct {
	actionRng      *rand.Rand
	descriptionRng *rand.Rand
}

// NewEngine derives both RNGs from a single seed mixed with the game
// id, so any two peers replaying the same (seed, game id) converge on
// identical mechanics and identical commentary.
func NewEngine(masterSeed uint64, gameID model.GameID) *Engine {
	idBytes := [16]byte(gameID)
	var mixed uint64
	for i, b := range idBytes {
		mixed ^= uint64(b) << (8 * uint(i%8))
	}
	actionSeed := masterSeed ^ mixed
	descSeed := masterSeed ^ (mixed * 2654435761) ^ 0x9E3779B97F4A7C15

	return &Engine{
		actionRng:      rand.New(rand.NewSource(int64(actionSeed))),
		descriptionRng: rand.New(rand.NewSource(int64(descSeed))),
	}
}

// Step resolves exactly one action and appends its ActionResult to
// game.ActionResults, advancing the game timer by the action's
// duration. It returns false once the game's timer has run out.
func (e *Engine) Step(game *model.Game, players map[model.PlayerID]*model.Player, now clock.Tick) bool {
	if game.IsOver() {
		return false
	}

	situation, possession := currentSituationAndPossession(game)
	side := e.sideFor(game, possession)
	action := e.selectAction(situation, side.Tactic)

	result := e.resolveAction(game, players, action, situation, possession, now)
	game.ActionResults = append(game.ActionResults, result)

	advanceTimer(&game.Timer, result.EndAt.Sub(result.StartAt))
	e.evaluateSubstitutions(game, players)

	return !game.IsOver()
}

func (e *Engine) sideFor(game *model.Game, possession model.Possession) *model.TeamInGame {
	if possession == model.PossessionHome {
		return &game.Home
	}
	return &game.Away
}

// currentSituationAndPossession starts every game at SituationJumpBall
// with the ball given to Home; there's no tip-off contest, so
// selectAction's default case resolves it the same as any other
// open-possession situation (a tactic-driven shot or play selection).
func currentSituationAndPossession(game *model.Game) (model.Situation, model.Possession) {
	if len(game.ActionResults) == 0 {
		return model.SituationJumpBall, model.PossessionHome
	}
	last := game.ActionResults[len(game.ActionResults)-1]
	return last.Situation, last.Possession
}

// selectAction maps (situation, tactic) to the next action, per
// spec.md 4.5 step 2. Deterministic on actionRng so replay holds.
func (e *Engine) selectAction(situation model.Situation, tactic model.Tactic) Action {
	switch situation {
	case model.SituationAfterOffensiveRebound, model.SituationAfterDefensiveRebound, model.SituationBallInBackcourt:
		return ActionDribble
	case model.SituationMissedShot:
		if e.actionRng.Float64() < 0.5 {
			return ActionOffRebound
		}
		return ActionDefRebound
	case model.SituationTurnover:
		return ActionDribble
	default:
		return e.selectShotOrPlay(tactic)
	}
}

func (e *Engine) selectShotOrPlay(tactic model.Tactic) Action {
	r := e.actionRng.Float64()
	switch tactic {
	case model.TacticRunAndGun:
		switch {
		case r < 0.08:
			return ActionTurnover
		case r < 0.15:
			return ActionBrawl
		case r < 0.45:
			return ActionCloseShot
		case r < 0.75:
			return ActionMediumShot
		default:
			return ActionLongShot
		}
	case model.TacticTurtle:
		switch {
		case r < 0.05:
			return ActionTurnover
		case r < 0.10:
			return ActionBrawl
		case r < 0.25:
			return ActionPass
		case r < 0.70:
			return ActionCloseShot
		case r < 0.90:
			return ActionMediumShot
		default:
			return ActionLongShot
		}
	default: // TacticBalanced
		switch {
		case r < 0.06:
			return ActionTurnover
		case r < 0.12:
			return ActionBrawl
		case r < 0.22:
			return ActionPass
		case r < 0.55:
			return ActionCloseShot
		case r < 0.85:
			return ActionMediumShot
		default:
			return ActionLongShot
		}
	}
}

func advanceTimer(timer *model.GameTimer, elapsed time.Duration) {
	timer.Elapsed += uint64(elapsed / time.Millisecond)
	for timer.Elapsed >= model.PeriodLengthTicks && timer.Period < model.NumPeriods {
		timer.Elapsed -= model.PeriodLengthTicks
		timer.Period++
	}
}
