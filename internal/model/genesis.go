package model

import (
	"fmt"
	"math"
	"math/rand"
)

// LifespanPeak is the age (in years) at which a population's relative
// age reaches 1.0 for BareValue/generation purposes. Populations with
// shorter or longer careers shift the whole age-modifier tent.
var LifespanPeak = map[Population]float64{
	PopulationHuman:     38,
	PopulationYardalaim: 42,
	PopulationPolpett:   30,
	PopulationJuppa:     50,
	PopulationGaldari:   45,
	PopulationPupparoll: 26,
	PopulationOctopulp:  60,
}

// Image-feature thresholds: a newly generated player below the skill
// threshold on the associated attribute gets the cosmetic feature, and
// training on that attribute is capped at the threshold from then on
// (see Player.TrainingCap).
const (
	WoodenLegMaxQuickness  = 4.0
	EyePatchMaxVision      = 4.0
	HookMaxBallHandling    = 4.0
)

// TraitProbability is the chance a qualifying player is assigned a
// special trait at generation time.
const TraitProbability = 0.05

var firstNamesByPopulation = map[Population][]string{
	PopulationHuman:     {"Jack", "Anne", "Morgan", "Henry", "Mary", "Edward"},
	PopulationYardalaim: {"Thrak", "Vorn", "Grael", "Bolrik", "Skarn"},
	PopulationPolpett:   {"Squib", "Plonk", "Gorb", "Mizzle", "Frop"},
	PopulationJuppa:     {"Xyra", "Quell", "Nyss", "Orvek", "Thalir"},
	PopulationGaldari:   {"Karesh", "Veloc", "Dravin", "Zessa", "Orund"},
	PopulationPupparoll: {"Bip", "Roo", "Nubbin", "Wiggle", "Poff"},
	PopulationOctopulp:  {"Inkar", "Tentac", "Glorb", "Suctor", "Wavel"},
}

var lastNames = []string{
	"Blackwood", "Ironhand", "Saltbeard", "Redtooth", "Stormrigger",
	"Duskwalker", "Ashgrave", "Cinderkeel", "Drift", "Hollowmast",
}

// RandomName samples a population-flavored name.
func RandomName(rng *rand.Rand, pop Population) string {
	firsts := firstNamesByPopulation[pop]
	if len(firsts) == 0 {
		firsts = firstNamesByPopulation[PopulationHuman]
	}
	return fmt.Sprintf("%s %s", firsts[rng.Intn(len(firsts))], lastNames[rng.Intn(len(lastNames))])
}

// GeneratePlayer creates a new free pirate at homePlanet, sampling age,
// population, body, skills, potential, reputation and cosmetic/trait
// features deterministically from rng. baseLevel scales starting skill
// rolls (0 for a rookie free-pirate pool, higher for "star" generation
// events).
func GeneratePlayer(rng *rand.Rand, homePlanet PlanetID, baseLevel float64) *Player {
	pop := AllPopulations[rng.Intn(len(AllPopulations))]
	peak := LifespanPeak[pop]

	age := rng.Float64() * peak * 1.3
	relativeAge := RelativeAge(age, peak)

	levelMod := GenerationLevelModifier(relativeAge)
	level := baseLevel * levelMod

	p := &Player{
		ID:         NewPlayerID(),
		Name:       RandomName(rng, pop),
		HomePlanet: homePlanet,
		Age:        age,
		Population: pop,
		Pronouns:   Pronouns(rng.Intn(3)),
		WeightKg:   70 + rng.Float64()*50,
		HeightCm:   165 + rng.Float64()*35,
		CrewRole:   CrewRoleNone,
		Morale:     MaxMorale,
		Tiredness:  MinTiredness,
		CurrentLocation: Location{
			OnPlanet: homePlanet,
			WithTeam: false,
		},
	}

	for s := Skill(0); s < NumSkills; s++ {
		noise := (rng.Float64()*2 - 1) * 4 // +/- 4 around the leveled base
		p.SetSkill(s, level+noise)
	}

	applyPopulationModifiers(p, pop)
	applyCosmeticFeatures(rng, p)
	applyTrait(rng, p)

	p.PreviousSkills = p.Skills

	extraPotential := math.Abs(rng.NormFloat64() * 5.75)
	p.Potential = clamp(p.AverageSkill()+extraPotential, MinPotential, MaxPotential)
	p.Reputation = clamp(p.AverageSkill()/5+relativeAge*5, 0, 20)

	return p
}

// applyPopulationModifiers nudges height/weight and a couple of skill
// groups per population, mirroring the source game's per-species body
// and skill flavor (e.g. Yardalaim run tall and strong, Pupparoll are
// compact and quick).
func applyPopulationModifiers(p *Player, pop Population) {
	switch pop {
	case PopulationYardalaim:
		p.HeightCm = math.Min(p.HeightCm*1.08, 230)
		p.SetSkill(SkillStrength, p.Skill(SkillStrength)+2)
	case PopulationPolpett:
		p.SetSkill(SkillBlock, p.Skill(SkillBlock)+2)
		p.SetSkill(SkillQuickness, p.Skill(SkillQuickness)-1)
	case PopulationJuppa:
		p.SetSkill(SkillVision, p.Skill(SkillVision)+2)
	case PopulationGaldari:
		p.SetSkill(SkillLeadership, p.Skill(SkillLeadership)+2)
	case PopulationPupparoll:
		p.HeightCm = math.Max(p.HeightCm*0.85, 140)
		p.SetSkill(SkillQuickness, p.Skill(SkillQuickness)+2)
	case PopulationOctopulp:
		p.SetSkill(SkillBallHandling, p.Skill(SkillBallHandling)+2)
		p.SetSkill(SkillDribbling, p.Skill(SkillDribbling)+2)
	}
}

// applyCosmeticFeatures assigns the hook/eye-patch/wooden-leg look to a
// player whose corresponding skill rolled low, and gives a small
// charisma bump for the battle scar. These features later cap how far
// that skill can improve through training (Player.TrainingCap).
func applyCosmeticFeatures(rng *rand.Rand, p *Player) {
	if p.Skill(SkillQuickness) < WoodenLegMaxQuickness {
		p.ImageWoodenLeg = true
		p.SetSkill(SkillCharisma, p.Skill(SkillCharisma)+1)
	}
	if p.Skill(SkillVision) < EyePatchMaxVision {
		p.ImageEyePatch = true
		p.SetSkill(SkillCharisma, p.Skill(SkillCharisma)+1)
	}
	if p.Skill(SkillBallHandling) < HookMaxBallHandling {
		p.ImageHook = true
		p.SetSkill(SkillCharisma, p.Skill(SkillCharisma)+1)
	}
	_ = rng // reserved for future cosmetic variants (scar pattern, coat color, ...)
}

// applyTrait rolls for a single special trait, in the same priority
// order and threshold style as the source game: strength for Killer,
// charisma for Showpirate, vision for Spugna, stamina for Relentless.
func applyTrait(rng *rand.Rand, p *Player) {
	switch {
	case p.Skill(SkillStrength) > 15 && rng.Float64() < TraitProbability:
		p.Trait = TraitKiller
	case p.Skill(SkillCharisma) > 15 && rng.Float64() < TraitProbability:
		p.Trait = TraitShowpirate
	case p.Skill(SkillVision) > 10 && rng.Float64() < TraitProbability:
		p.Trait = TraitSpugna
	case p.Skill(SkillStamina) > 15 && rng.Float64() < TraitProbability:
		p.Trait = TraitRelentless
	}
}

// TrainingCap reports the ceiling a cosmetic feature imposes on skill
// s's long-tick training gain, or (0,false) if s is uncapped.
func (p *Player) TrainingCap(s Skill) (cap float64, capped bool) {
	switch {
	case s == SkillQuickness && p.ImageWoodenLeg:
		return WoodenLegMaxQuickness, true
	case s == SkillVision && p.ImageEyePatch:
		return EyePatchMaxVision, true
	case s == SkillBallHandling && p.ImageHook:
		return HookMaxBallHandling, true
	default:
		return 0, false
	}
}
