// Package match implements the per-possession action pipeline that
// drives one basketball game to completion, plus the best-lineup
// assignment used to pick a team's starting five.
package match

import "github.com/corsair-league/armada/internal/model"

// Action is the thing a possession does next, chosen from the
// possession team's tactic and the current Situation.
type Action int

const (
	ActionBrawl Action = iota
	ActionDribble
	ActionPass
	ActionOffRebound
	ActionDefRebound
	ActionCloseShot
	ActionMediumShot
	ActionLongShot
	ActionTurnover
	ActionSubstitution
)

// ShotDifficulty is both the shot category and its roll handicap.
type ShotDifficulty int

const (
	ShotClose  ShotDifficulty = 20
	ShotMedium ShotDifficulty = 27
	ShotLong   ShotDifficulty = 35
)

func (d ShotDifficulty) ScoreValue() int {
	if d == ShotLong {
		return 3
	}
	return 2
}

// AdvDefenseLimit is the roll threshold at or below which a failed
// Advantage=Defense shot counts as blocked.
const AdvDefenseLimit = -20

// TirednessCost categorizes how much an action wears a player down.
type TirednessCost float64

const (
	TirednessNone   TirednessCost = 0.0
	TirednessLow    TirednessCost = 0.025
	TirednessMedium TirednessCost = 1.0
	TirednessHigh   TirednessCost = 2.5
)

// Morale deltas applied on notable outcomes.
const (
	MoraleBonusSmall  = 0.25
	MoraleBonusMedium = 0.5
	MoraleBonusLarge  = 1.0
	MoraleMalusSmall  = -0.25
	MoraleMalusMedium = -0.5
	MoraleMalusLarge  = -1.0
)

// MinTirednessForSub: a starter is considered for substitution once
// their tiredness crosses this threshold.
const MinTirednessForSub = 10.0

// RecoveringTirednessPerShortTick is how much a benched player
// recovers each short tick of game time.
const RecoveringTirednessPerShortTick = 0.05

// Position indexes the five on-court roles, used by lineup assignment
// and shot-position sampling.
type Position int

const (
	PositionPointGuard Position = iota
	PositionShootingGuard
	PositionSmallForward
	PositionPowerForward
	PositionCenter
)

// positionSkillWeights weights each skill group's contribution to a
// player's rating at a given position; index-aligned with
// model.SkillGroup.
var positionSkillWeights = map[Position][5]float64{
	PositionPointGuard:    {0.9, 0.7, 0.6, 1.1, 1.2},
	PositionShootingGuard: {1.0, 1.1, 0.7, 1.0, 0.9},
	PositionSmallForward:  {1.0, 1.0, 0.9, 0.9, 0.8},
	PositionPowerForward:  {1.1, 0.8, 1.1, 0.8, 0.7},
	PositionCenter:        {1.0, 0.6, 1.2, 0.7, 0.6},
}

// PositionRating is a player's composite rating when slotted at
// position pos: the weighted sum of their five skill-group averages.
func PositionRating(p *model.Player, pos Position) float64 {
	weights := positionSkillWeights[pos]
	total := 0.0
	for g := model.SkillGroupAthletics; g <= model.SkillGroupMental; g++ {
		total += p.GroupAverage(g) * weights[g]
	}
	return total
}

// TirednessWeightedRating is used to rank bench candidates for
// substitution: zero if knocked out, else rating scaled down as
// tiredness climbs.
func TirednessWeightedRating(p *model.Player, pos Position) float64 {
	if p.IsKnockedOut() {
		return 0
	}
	return PositionRating(p, pos) * (model.MaxTiredness - p.Tiredness/2)
}
