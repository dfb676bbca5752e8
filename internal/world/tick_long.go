package world

import (
	"math/rand"

	"github.com/corsair-league/armada/internal/clock"
	"github.com/corsair-league/armada/internal/events"
	"github.com/corsair-league/armada/internal/model"
)

// tickLongLocked runs the once-per-hour maintenance pass: aging,
// training commit, free-pirate refresh, and upgrade completion.
// Callers must hold w.mu.
func (w *World) tickLongLocked(now clock.Tick) {
	for _, p := range w.Players {
		var team *model.Team
		if p.Team != nil {
			team = w.Teams[*p.Team]
		}
		ageAndTrain(p, team)
	}
	for _, team := range w.Teams {
		completePendingUpgrade(team, now, w.events)
	}
	w.refreshFreePiratesLocked(now)
}

// ageAndTrain advances a player's age by one long tick and commits
// their accumulated training experience into skill points, honoring
// per-skill growth caps (including the image-feature caps from
// genesis) and the team's training-focus multiplier, if any.
func ageAndTrain(p *model.Player, team *model.Team) {
	p.Age += model.AgeIncrementPerLongTick
	p.SnapshotSkillsForDisplay()

	for i := range p.TrainingExp {
		skill := model.Skill(i)
		exp := p.TrainingExp[skill]
		if exp == 0 {
			continue
		}

		gain := exp * trainingMultiplier(team, skill)
		if gain > model.MaxSkillIncreasePerLongTick {
			gain = model.MaxSkillIncreasePerLongTick
		}

		if cap, capped := p.TrainingCap(skill); capped {
			current := p.Skill(skill)
			if current >= cap {
				gain = 0
			} else if current+gain > cap {
				gain = cap - current
			}
		}

		p.SetSkill(skill, p.Skill(skill)+gain)
		p.TrainingExp[skill] = 0
	}
}

// trainingMultiplier implements the focus rule: 2x for the in-focus
// group, 0.5x for every other group, 1x when the team has no focus set
// (or the player is a free pirate).
func trainingMultiplier(team *model.Team, skill model.Skill) float64 {
	if team == nil || team.TrainingFocus == nil {
		return model.TrainingNoFocusMultiplier
	}
	if *team.TrainingFocus == skill.Group() {
		return model.TrainingFocusMultiplier
	}
	return model.TrainingOffFocusMultiplier
}

func completePendingUpgrade(team *model.Team, now clock.Tick, bus *events.Bus) {
	pending := team.Spaceship.PendingUpgrade
	if pending == nil {
		return
	}
	if now < clock.Tick(pending.Started)+clock.Tick(pending.Duration) {
		return
	}

	team.Spaceship.ApplyUpgrade(pending.Component)
	team.Spaceship.PendingUpgrade = nil
	team.Touch()

	bus.Push(events.PopupMessage{
		Tick:   now,
		Kind:   events.KindUpgradeComplete,
		TeamID: team.ID,
	})
}

// refreshFreePiratesLocked tops up each planet's free-pirate pool back
// to MinFreePiratesPerPlanet, generating new pirates from a seed mixed
// from the world's master seed, the planet id and now, so the refresh
// replays identically given the same snapshot.
func (w *World) refreshFreePiratesLocked(now clock.Tick) {
	for _, planet := range w.Planets {
		free := 0
		for _, p := range w.Players {
			if p.Team == nil && p.CurrentLocation.OnPlanet == planet.ID {
				free++
			}
		}
		for free < model.MinFreePiratesPerPlanet {
			seed := w.MasterSeed ^ uint64(now) ^ planetSeedMix(planet.ID) ^ uint64(free)
			rng := rand.New(rand.NewSource(int64(seed)))
			p := model.GeneratePlayer(rng, planet.ID, 10)
			p.CurrentLocation = model.Location{OnPlanet: planet.ID}
			w.Players[p.ID] = p
			planet.PopulationComposition[p.Population]++
			free++
		}
	}
}

func planetSeedMix(id model.PlanetID) uint64 {
	var mixed uint64
	for i, b := range id {
		mixed ^= uint64(b) << (8 * uint(i%8))
	}
	return mixed
}
