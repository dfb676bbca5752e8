package model

import "math"

// Location describes where a player currently is.
type Location struct {
	OnPlanet PlanetID // valid iff WithTeam is false
	WithTeam bool
}

// Player is a single pirate: a basketball player with a crew role, a
// home planet, and a travel/training/morale state evolved by World's
// long-tick handler and the match engine.
type Player struct {
	ID         PlayerID
	Name       string
	HomePlanet PlanetID
	Age        float64
	Population Population
	Pronouns   Pronouns
	WeightKg   float64
	HeightCm   float64
	CrewRole   CrewRole
	Team       *TeamID // nil when a free pirate

	Skills           [NumSkills]float64
	PreviousSkills   [NumSkills]float64 // snapshot for UI deltas, not an invariant target
	Potential        float64
	Reputation       float64
	Morale           float64
	Tiredness        float64
	TrainingExp      [NumSkills]float64 // fractional accumulator, committed on long tick
	Trait            Trait
	ImageHook        bool
	ImageEyePatch    bool
	ImageWoodenLeg   bool
	CurrentLocation  Location
	Version          uint64
	PeerID           *PeerID // non-nil iff the player belongs to a remote team
}

// Skill returns the clamped value of skill s.
func (p *Player) Skill(s Skill) float64 { return p.Skills[s] }

// SetSkill sets skill s, clamping to [MinSkill, MaxSkill].
func (p *Player) SetSkill(s Skill, v float64) {
	p.Skills[s] = clamp(v, MinSkill, MaxSkill)
}

// AverageSkill is the unweighted mean across all 20 skills.
func (p *Player) AverageSkill() float64 {
	sum := 0.0
	for _, v := range p.Skills {
		sum += v
	}
	return sum / float64(NumSkills)
}

// GroupAverage returns the mean of the four skills in g.
func (p *Player) GroupAverage(g SkillGroup) float64 {
	base := int(g) * 4
	sum := 0.0
	for i := 0; i < 4; i++ {
		sum += p.Skills[base+i]
	}
	return sum / 4
}

// IsKnockedOut reports the invariant "knocked-out iff tiredness==MAX".
func (p *Player) IsKnockedOut() bool { return p.Tiredness >= MaxTiredness }

// IsFreePirate reports whether the player currently belongs to no team.
func (p *Player) IsFreePirate() bool { return p.Team == nil }

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// RelativeAge maps Age into [0,~1.3] against an assumed career span,
// used by the tent-shaped age modifier. lifespan is population
// dependent in genesis.go; callers pass it explicitly so this stays a
// pure function.
func RelativeAge(age, lifespanPeak float64) float64 {
	if lifespanPeak <= 0 {
		return 0
	}
	return age / lifespanPeak
}

// AgeModifier is the tent curve used by BareValue: it decreases
// linearly from 1.5 at relative age 0 to 1.0 at
// PeakPerformanceRelativeAge, then decreases linearly from 1.0 down to
// 0.5 at relative age 1.0 (and continues past it on the same slope).
func AgeModifier(relativeAge float64) float64 {
	peak := PeakPerformanceRelativeAge
	if relativeAge <= peak {
		return -relativeAge/(2*peak) + 1.5
	}
	return (relativeAge + peak - 2) / (2*peak - 2)
}

// GenerationLevelModifier is the tent curve used when sampling a new
// player's starting skills from a base level: it rises linearly from 0
// at relative age 0 to 1.0 at PeakPerformanceRelativeAge, then falls
// linearly back to 0 at relative age 1.0.
func GenerationLevelModifier(relativeAge float64) float64 {
	peak := PeakPerformanceRelativeAge
	if relativeAge <= peak {
		return relativeAge / peak
	}
	return (relativeAge - 1) / (peak - 1)
}

// TraitBonus returns the trait-value multiplier: 1 if no trait is
// present, else 1 + TraitBonusK*reputation^(1/3).
func TraitBonus(trait Trait, reputation float64) float64 {
	if trait == TraitNone {
		return 1
	}
	r := reputation
	if r < 0 {
		r = 0
	}
	return 1 + TraitBonusK*math.Cbrt(r)
}

// BareValue is a player's intrinsic market price, per spec.md 4.2:
// averageSkill * ageModifier * traitBonus, floored at 0.
func (p *Player) BareValue(relativeAge float64) float64 {
	v := p.AverageSkill() * AgeModifier(relativeAge) * TraitBonus(p.Trait, p.Reputation)
	if v < 0 {
		return 0
	}
	return v
}

// HireCost computes the cost to hire p onto team with the given
// reputation, per spec.md 4.2:
//
//	HireCost = CostPerValue * BareValue * (5*player.reputation - team.reputation)
//
// floored at MinHireCostSatoshi.
func (p *Player) HireCost(relativeAge, teamReputation float64) int {
	raw := CostPerValue * p.BareValue(relativeAge) * (5*p.Reputation - teamReputation)
	cost := int(math.Round(raw))
	if cost < MinHireCostSatoshi {
		return MinHireCostSatoshi
	}
	return cost
}

// Roll returns a player's action-resolution roll in [0, 2*MaxSkill],
// per spec.md 4.2:
//
//	clamped below by morale/2
//	clamped above by 0 if tiredness == MAX
//	else 2*(MAX_TIREDNESS - max(0, tiredness - MinTirednessForRollDecline))
func (p *Player) Roll(rng interface{ Intn(int) int }) int {
	base := rng.Intn(2*MaxSkill + 1)

	lower := int(p.Morale / 2)
	if base < lower {
		base = lower
	}

	var upper int
	if p.Tiredness >= MaxTiredness {
		upper = 0
	} else {
		decline := p.Tiredness - MinTirednessForRollDecline
		if decline < 0 {
			decline = 0
		}
		upper = int(2 * (MaxTiredness - decline))
	}
	if base > upper {
		base = upper
	}
	if base < 0 {
		base = 0
	}
	return base
}

// Heal/TakeMorale/TakeTiredness-style mutators used by the match engine
// and world long-tick; all clamp into their documented ranges.

func (p *Player) AdjustMorale(delta float64) {
	p.Morale = clamp(p.Morale+delta, MinMorale, MaxMorale)
}

func (p *Player) AdjustTiredness(delta float64) {
	p.Tiredness = clamp(p.Tiredness+delta, MinTiredness, MaxTiredness)
}

func (p *Player) RecoverFully() {
	p.Tiredness = MinTiredness
	p.Morale = MaxMorale
}

// SnapshotSkillsForDisplay copies the current skills into
// PreviousSkills, called before a long-tick skill commit so the UI can
// show deltas.
func (p *Player) SnapshotSkillsForDisplay() {
	p.PreviousSkills = p.Skills
}

// Touch increments the version counter; every mutator that changes
// externally-visible state must call this so gossip convergence
// (spec.md 4.8, invariant 5) can compare versions.
func (p *Player) Touch() { p.Version++ }
