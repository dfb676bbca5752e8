package match

import (
	"time"

	"github.com/corsair-league/armada/internal/clock"
	"github.com/corsair-league/armada/internal/model"
)

// resolveShot implements spec.md 4.5 step 3 for CloseShot/MediumShot/
// LongShot: roll = shooter.roll + atk_skill - (difficulty + defense
// adjustment), where the adjustment is 0/half/full of the defenders'
// composite depending on advantage.
func (e *Engine) resolveShot(
	game *model.Game,
	players map[model.PlayerID]*model.Player,
	difficulty ShotDifficulty,
	situation model.Situation,
	possession model.Possession,
	now clock.Tick,
) model.ActionResult {
	offense := e.sideFor(game, possession)
	defense := e.sideFor(game, possession.Opponent())

	shooterIdx := e.actionRng.Intn(5)
	shooter := players[offense.OnCourt[shooterIdx]]

	advantage := e.rollAdvantage()
	defenderIdx := e.actionRng.Intn(5)
	defenders := []int{defenderIdx}
	if advantage == model.AdvantageDefense {
		extra := (defenderIdx + 1) % 5
		defenders = append(defenders, extra)
	}

	atkSkill := atkSkillFor(shooter, difficulty)
	defSkill := 0.0
	for _, di := range defenders {
		d := players[defense.OnCourt[di]]
		contribution := float64(d.Roll(e.actionRng)) / float64(len(defenders))
		if !d.IsKnockedOut() {
			contribution += d.Skill(model.SkillBlock)
		}
		defSkill += contribution
	}

	var roll float64
	switch advantage {
	case model.AdvantageAttack:
		roll = float64(shooter.Roll(e.actionRng)) + atkSkill - float64(difficulty)
	case model.AdvantageNeutral:
		roll = float64(shooter.Roll(e.actionRng)) + atkSkill - (float64(difficulty) + defSkill/2)
	default:
		roll = float64(shooter.Roll(e.actionRng)) + atkSkill - (float64(difficulty) + defSkill)
	}

	success := roll > 0
	var blockedBy *int
	if !success && advantage == model.AdvantageDefense && roll <= AdvDefenseLimit {
		b := defenders[0]
		blockedBy = &b
	}

	result := model.ActionResult{
		Situation:     shotSituation(difficulty),
		Advantage:     advantage,
		Possession:    possession,
		AttackerIndex: shooterIdx,
		DefenderIndex: defenders[0],
		BlockedBy:     blockedBy,
		StartAt:       now,
		EndAt:         now.Add(shotDuration),
	}

	applyShotStats(&result, shooter, offense, defense, difficulty, success, blockedBy)
	applyShotMorale(shooter, players[defense.OnCourt[defenders[0]]], success, blockedBy)

	if success {
		result.ScoreChange = difficulty.ScoreValue()
		if possession == model.PossessionHome {
			result.HomeScore = prevHomeScore(game) + result.ScoreChange
			result.AwayScore = prevAwayScore(game)
		} else {
			result.HomeScore = prevHomeScore(game)
			result.AwayScore = prevAwayScore(game) + result.ScoreChange
		}
		result.Possession = possession.Opponent()
	} else {
		result.Situation = model.SituationMissedShot
		result.HomeScore = prevHomeScore(game)
		result.AwayScore = prevAwayScore(game)
		// Attackers get a malus in the ensuing rebound action.
		if advantage == model.AdvantageAttack {
			result.Advantage = model.AdvantageNeutral
		} else {
			result.Advantage = model.AdvantageDefense
		}
	}

	result.Description = describeShot(e.descriptionRng, difficulty, advantage, success, blockedBy != nil)
	return result
}

const shotDuration time.Duration = 14_000 * time.Millisecond // ~14 game-seconds per possession

func atkSkillFor(p *model.Player, d ShotDifficulty) float64 {
	switch d {
	case ShotClose:
		return p.Skill(model.SkillCloseShot)
	case ShotMedium:
		return p.Skill(model.SkillMediumShot)
	default:
		return p.Skill(model.SkillLongShot)
	}
}

func shotSituation(d ShotDifficulty) model.Situation {
	switch d {
	case ShotClose:
		return model.SituationCloseShot
	case ShotMedium:
		return model.SituationMediumShot
	default:
		return model.SituationLongShot
	}
}

func (e *Engine) rollAdvantage() model.Advantage {
	r := e.actionRng.Intn(3)
	return model.Advantage(r)
}

func prevHomeScore(game *model.Game) int {
	if len(game.ActionResults) == 0 {
		return 0
	}
	return game.ActionResults[len(game.ActionResults)-1].HomeScore
}

func prevAwayScore(game *model.Game) int {
	if len(game.ActionResults) == 0 {
		return 0
	}
	return game.ActionResults[len(game.ActionResults)-1].AwayScore
}

func applyShotStats(result *model.ActionResult, shooter *model.Player, offense, defense *model.TeamInGame, difficulty ShotDifficulty, success bool, blockedBy *int) {
	line := offense.Stats[shooter.ID]
	if line == nil {
		line = &model.StatLine{}
		offense.Stats[shooter.ID] = line
	}
	if difficulty == ShotLong {
		line.Attempted3pt++
		if success {
			line.Made3pt++
		}
	} else {
		line.Attempted2pt++
		if success {
			line.Made2pt++
		}
	}

	if blockedBy != nil {
		blocker := defense.OnCourt[*blockedBy]
		bLine := defense.Stats[blocker]
		if bLine == nil {
			bLine = &model.StatLine{}
			defense.Stats[blocker] = bLine
		}
		bLine.Blocks++
	}

	cost := TirednessMedium
	if difficulty == ShotClose {
		cost = TirednessLow
	}
	shooter.AdjustTiredness(float64(cost))
}

func applyShotMorale(shooter, primaryDefender *model.Player, success bool, blockedBy *int) {
	switch {
	case success:
		shooter.AdjustMorale(MoraleBonusLarge)
	case blockedBy != nil:
		shooter.AdjustMorale(MoraleMalusLarge)
		if primaryDefender != nil {
			primaryDefender.AdjustMorale(MoraleBonusMedium)
		}
	default:
		shooter.AdjustMorale(MoraleMalusMedium)
	}
}
