package match

import "github.com/corsair-league/armada/internal/model"

// evaluateSubstitutions swaps out any on-court player whose tiredness
// has crossed MinTirednessForSub for the best available bench player
// at that position, per spec.md 4.5's substitution rule. Benched
// players recover while they sit.
func (e *Engine) evaluateSubstitutions(game *model.Game, players map[model.PlayerID]*model.Player) {
	substituteSide(&game.Home, players)
	substituteSide(&game.Away, players)
}

func substituteSide(side *model.TeamInGame, players map[model.PlayerID]*model.Player) {
	for _, id := range side.Bench {
		if p, ok := players[id]; ok {
			p.AdjustTiredness(-RecoveringTirednessPerShortTick)
		}
	}

	for slot := 0; slot < 5; slot++ {
		pos := Position(slot)
		onCourt := players[side.OnCourt[slot]]
		if onCourt == nil || onCourt.Tiredness < MinTirednessForSub {
			continue
		}

		bestIdx := -1
		bestRating := TirednessWeightedRating(onCourt, pos)
		for i, id := range side.Bench {
			candidate := players[id]
			if candidate == nil {
				continue
			}
			if r := TirednessWeightedRating(candidate, pos); r > bestRating {
				bestRating = r
				bestIdx = i
			}
		}
		if bestIdx < 0 {
			continue
		}

		incomingID := side.Bench[bestIdx]
		outgoingID := side.OnCourt[slot]
		side.OnCourt[slot] = incomingID
		side.Bench[bestIdx] = outgoingID
	}
}
