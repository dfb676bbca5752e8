package match

import (
	"time"

	"github.com/corsair-league/armada/internal/clock"
	"github.com/corsair-league/armada/internal/model"
)

const defaultActionDuration time.Duration = 6_000 * time.Millisecond

// resolveAction dispatches to the action-specific logic, per spec.md
// 4.5 step 3.
func (e *Engine) resolveAction(
	game *model.Game,
	players map[model.PlayerID]*model.Player,
	action Action,
	situation model.Situation,
	possession model.Possession,
	now clock.Tick,
) model.ActionResult {
	switch action {
	case ActionCloseShot:
		return e.resolveShot(game, players, ShotClose, situation, possession, now)
	case ActionMediumShot:
		return e.resolveShot(game, players, ShotMedium, situation, possession, now)
	case ActionLongShot:
		return e.resolveShot(game, players, ShotLong, situation, possession, now)
	case ActionOffRebound:
		return e.resolveRebound(game, players, possession, true, now)
	case ActionDefRebound:
		return e.resolveRebound(game, players, possession, false, now)
	case ActionBrawl:
		return e.resolveBrawl(game, players, possession, now)
	case ActionDribble:
		return e.resolvePassthrough(game, possession, model.SituationBallInBackcourt, now)
	case ActionPass:
		return e.resolvePass(game, players, possession, now)
	case ActionTurnover:
		return e.resolveTurnover(game, players, possession, now)
	default:
		return e.resolvePassthrough(game, possession, situation, now)
	}
}

// resolveRebound resolves a MissedShot situation into a new
// possession: offensive reboundersretain the ball with reduced
// advantage (per spec.md's "attackers become defenders for the
// rebound with reduced advantage"); defensive rebounders flip
// possession outright.
func (e *Engine) resolveRebound(game *model.Game, players map[model.PlayerID]*model.Player, possession model.Possession, offensive bool, now clock.Tick) model.ActionResult {
	side := e.sideFor(game, possession)
	reboundSide := side
	situation := model.SituationAfterDefensiveRebound
	nextPossession := possession.Opponent()
	if offensive {
		reboundSide = side
		situation = model.SituationAfterOffensiveRebound
		nextPossession = possession
	} else {
		reboundSide = e.sideFor(game, possession.Opponent())
	}

	idx := e.actionRng.Intn(5)
	rebounder := players[reboundSide.OnCourt[idx]]

	line := reboundSide.Stats[rebounder.ID]
	if line == nil {
		line = &model.StatLine{}
		reboundSide.Stats[rebounder.ID] = line
	}
	if offensive {
		line.OffRebounds++
	} else {
		line.DefRebounds++
	}
	rebounder.AdjustTiredness(float64(TirednessLow))

	return model.ActionResult{
		Situation:     situation,
		Advantage:     model.AdvantageNeutral,
		Possession:    nextPossession,
		AttackerIndex: idx,
		StartAt:       now,
		EndAt:         now.Add(defaultActionDuration),
		HomeScore:     prevHomeScore(game),
		AwayScore:     prevAwayScore(game),
		Description:   describeRebound(e.descriptionRng, rebounder, offensive),
	}
}

func (e *Engine) resolveBrawl(game *model.Game, players map[model.PlayerID]*model.Player, possession model.Possession, now clock.Tick) model.ActionResult {
	offense := e.sideFor(game, possession)
	defense := e.sideFor(game, possession.Opponent())

	atkIdx, defIdx := e.actionRng.Intn(5), e.actionRng.Intn(5)
	attacker := players[offense.OnCourt[atkIdx]]
	defender := players[defense.OnCourt[defIdx]]

	killerBonus := 0.0
	if attacker.Trait == model.TraitKiller {
		killerBonus = 3
	}
	roll := float64(attacker.Roll(e.actionRng)) + attacker.Skill(model.SkillStrength) + killerBonus -
		(float64(defender.Roll(e.actionRng)) + defender.Skill(model.SkillStrength))

	nextPossession := possession
	if roll <= 0 {
		nextPossession = possession.Opponent()
	}

	attacker.AdjustTiredness(float64(TirednessMedium))
	defender.AdjustTiredness(float64(TirednessMedium))

	return model.ActionResult{
		Situation:     model.SituationBallInBackcourt,
		Advantage:     model.AdvantageNeutral,
		Possession:    nextPossession,
		AttackerIndex: atkIdx,
		DefenderIndex: defIdx,
		StartAt:       now,
		EndAt:         now.Add(defaultActionDuration),
		HomeScore:     prevHomeScore(game),
		AwayScore:     prevAwayScore(game),
		Description:   describeBrawl(e.descriptionRng, attacker, defender, roll > 0),
	}
}

func (e *Engine) resolvePass(game *model.Game, players map[model.PlayerID]*model.Player, possession model.Possession, now clock.Tick) model.ActionResult {
	side := e.sideFor(game, possession)
	fromIdx := e.actionRng.Intn(5)
	toIdx := e.actionRng.Intn(5)
	for toIdx == fromIdx {
		toIdx = e.actionRng.Intn(5)
	}
	passer := players[side.OnCourt[fromIdx]]
	passer.AdjustTiredness(float64(TirednessNone))

	return model.ActionResult{
		Situation:     model.SituationBallInBackcourt,
		Advantage:     model.AdvantageNeutral,
		Possession:    possession,
		AttackerIndex: toIdx,
		AssistFrom:    &fromIdx,
		StartAt:       now,
		EndAt:         now.Add(defaultActionDuration / 2),
		HomeScore:     prevHomeScore(game),
		AwayScore:     prevAwayScore(game),
		Description:   describePass(e.descriptionRng, passer),
	}
}

func (e *Engine) resolveTurnover(game *model.Game, players map[model.PlayerID]*model.Player, possession model.Possession, now clock.Tick) model.ActionResult {
	side := e.sideFor(game, possession)
	idx := e.actionRng.Intn(5)
	culprit := players[side.OnCourt[idx]]

	line := side.Stats[culprit.ID]
	if line == nil {
		line = &model.StatLine{}
		side.Stats[culprit.ID] = line
	}
	line.Turnovers++
	culprit.AdjustMorale(MoraleMalusSmall)

	return model.ActionResult{
		Situation:     model.SituationTurnover,
		Advantage:     model.AdvantageNeutral,
		Possession:    possession.Opponent(),
		AttackerIndex: idx,
		StartAt:       now,
		EndAt:         now.Add(defaultActionDuration / 2),
		HomeScore:     prevHomeScore(game),
		AwayScore:     prevAwayScore(game),
		Description:   describeTurnover(e.descriptionRng, culprit),
	}
}

// resolvePassthrough advances the clock without a meaningful mechanical
// outcome (Dribble, and any action without a dedicated resolver).
func (e *Engine) resolvePassthrough(game *model.Game, possession model.Possession, situation model.Situation, now clock.Tick) model.ActionResult {
	return model.ActionResult{
		Situation:   situation,
		Advantage:   model.AdvantageNeutral,
		Possession:  possession,
		StartAt:     now,
		EndAt:       now.Add(defaultActionDuration / 3),
		HomeScore:   prevHomeScore(game),
		AwayScore:   prevAwayScore(game),
		Description: "",
	}
}
