package match

import (
	"fmt"
	"math/rand"

	"github.com/corsair-league/armada/internal/model"
)

// describeShot picks one of several canned sentences narrating a shot
// outcome, keyed by difficulty/advantage/success/block so replay text
// stays stable across peers seeded identically. Wording only, never
// read by the mechanics.
func describeShot(rng *rand.Rand, difficulty ShotDifficulty, advantage model.Advantage, success, blocked bool) string {
	kind := shotLabel(difficulty)
	switch {
	case blocked:
		return pick(rng, []string{
			fmt.Sprintf("%s rejected at the rim!", kind),
			fmt.Sprintf("swatted clean, %s denied.", kind),
			fmt.Sprintf("the %s never had a chance.", kind),
		})
	case success && advantage == model.AdvantageAttack:
		return pick(rng, []string{
			fmt.Sprintf("%s, nothing but net.", kind),
			fmt.Sprintf("wide open %s, good.", kind),
			fmt.Sprintf("%s drops in easily.", kind),
		})
	case success:
		return pick(rng, []string{
			fmt.Sprintf("%s finds the bottom of the net.", kind),
			fmt.Sprintf("contested %s, still good.", kind),
			fmt.Sprintf("%s banks home.", kind),
		})
	default:
		return pick(rng, []string{
			fmt.Sprintf("%s rims out.", kind),
			fmt.Sprintf("%s misses everything.", kind),
			fmt.Sprintf("no good on the %s.", kind),
		})
	}
}

func shotLabel(d ShotDifficulty) string {
	switch d {
	case ShotClose:
		return "layup"
	case ShotMedium:
		return "jumper"
	default:
		return "three"
	}
}

func describeRebound(rng *rand.Rand, p *model.Player, offensive bool) string {
	if offensive {
		return pick(rng, []string{
			p.Name + " claws back the offensive board.",
			p.Name + " tips it out to extend the possession.",
		})
	}
	return pick(rng, []string{
		p.Name + " cleans up the defensive glass.",
		p.Name + " secures the rebound.",
	})
}

func describeBrawl(rng *rand.Rand, attacker, defender *model.Player, attackerWon bool) string {
	if attackerWon {
		return pick(rng, []string{
			fmt.Sprintf("%s shoves past %s in the scramble.", attacker.Name, defender.Name),
			fmt.Sprintf("%s wins the tussle under the basket.", attacker.Name),
		})
	}
	return pick(rng, []string{
		fmt.Sprintf("%s holds firm against %s.", defender.Name, attacker.Name),
		fmt.Sprintf("%s comes out on top of the scrum.", defender.Name),
	})
}

func describePass(rng *rand.Rand, p *model.Player) string {
	return pick(rng, []string{
		p.Name + " swings the ball around the perimeter.",
		p.Name + " finds the open teammate.",
	})
}

func describeTurnover(rng *rand.Rand, p *model.Player) string {
	return pick(rng, []string{
		p.Name + " loses the handle.",
		p.Name + " throws it away.",
		"stolen off " + p.Name + "'s dribble.",
	})
}

func pick(rng *rand.Rand, options []string) string {
	return options[rng.Intn(len(options))]
}
