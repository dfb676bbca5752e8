package model

// Skill/morale/tiredness/potential are all clamped to this range.
const (
	MinSkill      = 0
	MaxSkill      = 20
	MinMorale     = 0
	MaxMorale     = 20
	MinTiredness  = 0
	MaxTiredness  = 20
	MinPotential  = 0
	MaxPotential  = 20
)

// MinTirednessForRollDecline and roll bounds (spec.md 4.2).
const (
	MinTirednessForRollDecline = 5.0
	AdvantageDefenseLimit      = -20.0
)

// PEAK_PERFORMANCE_RELATIVE_AGE: the relative age (0..1 over a career
// span) at which BareValue/skill-generation age modifiers peak.
const PeakPerformanceRelativeAge = 0.45

// Trait bonus coefficient: traitBonus = 1 + k*reputation^(1/3).
const TraitBonusK = 0.15

// CostPerValue scales BareValue into a hire-cost quote.
const CostPerValue = 250.0

// MinHireCostSatoshi is the floor applied to any computed hire cost.
const MinHireCostSatoshi = 1

// Population is a player's species.
type Population int

const (
	PopulationHuman Population = iota
	PopulationYardalaim
	PopulationPolpett
	PopulationJuppa
	PopulationGaldari
	PopulationPupparoll
	PopulationOctopulp
)

func (p Population) String() string {
	switch p {
	case PopulationHuman:
		return "Human"
	case PopulationYardalaim:
		return "Yardalaim"
	case PopulationPolpett:
		return "Polpett"
	case PopulationJuppa:
		return "Juppa"
	case PopulationGaldari:
		return "Galdari"
	case PopulationPupparoll:
		return "Pupparoll"
	case PopulationOctopulp:
		return "Octopulp"
	default:
		return "Unknown"
	}
}

// AllPopulations lists every population, used for seeded sampling.
var AllPopulations = []Population{
	PopulationHuman, PopulationYardalaim, PopulationPolpett, PopulationJuppa,
	PopulationGaldari, PopulationPupparoll, PopulationOctopulp,
}

// Pronouns used for a player's flavor text; purely descriptive.
type Pronouns int

const (
	PronounsThey Pronouns = iota
	PronounsShe
	PronounsHe
)

// CrewRole is a player's role aboard the team's spaceship.
type CrewRole int

const (
	CrewRoleNone CrewRole = iota
	CrewRoleCaptain
	CrewRoleDoctor
	CrewRolePilot
	CrewRoleEngineer
	CrewRoleMozzo
)

// SkillGroup partitions the 20 skills into five groups of four.
type SkillGroup int

const (
	SkillGroupAthletics SkillGroup = iota
	SkillGroupOffense
	SkillGroupDefense
	SkillGroupTechnical
	SkillGroupMental
)

// Skill identifies one of the 20 individual skills, four per group, in
// group-major order so Skill/4 == its SkillGroup.
type Skill int

const (
	// Athletics
	SkillQuickness Skill = iota
	SkillVertical
	SkillStrength
	SkillStamina
	// Offense
	SkillCloseShot
	SkillMediumShot
	SkillLongShot
	SkillPassing
	// Defense
	SkillBlock
	SkillSteal
	SkillDefensiveRebound
	SkillOffensiveRebound
	// Technical
	SkillBallHandling
	SkillPostMoves
	SkillDribbling
	SkillFreeThrow
	// Mental
	SkillVision
	SkillCharisma
	SkillLeadership
	SkillStamina2 // mental stamina/composure, distinct from athletic stamina
)

const NumSkills = 20

// Group returns the SkillGroup a Skill belongs to.
func (s Skill) Group() SkillGroup { return SkillGroup(int(s) / 4) }

// Trait is a rare permanent modifier.
type Trait int

const (
	TraitNone Trait = iota
	TraitKiller
	TraitRelentless
	TraitShowpirate
	TraitSpugna
)

// Resource is a fungible good tracked per-team.
type Resource int

const (
	ResourceSatoshi Resource = iota
	ResourceGold
	ResourceScraps
	ResourceRum
	ResourceFuel
)

var AllResources = []Resource{ResourceSatoshi, ResourceGold, ResourceScraps, ResourceRum, ResourceFuel}

// ComponentStyle is a spaceship component's design family.
type ComponentStyle int

const (
	StyleShuttle ComponentStyle = iota
	StylePincher
	StyleJester
)

// PlanetType classifies a Planet.
type PlanetType int

const (
	PlanetSol PlanetType = iota
	PlanetEarth
	PlanetAsteroid
	PlanetRocky
	PlanetGas
	PlanetRing
	PlanetBlackHole
)

// Long-tick training constants (spec.md 9, "Training focus").
const (
	MaxSkillIncreasePerLongTick  = 0.2
	TrainingFocusMultiplier      = 2.0
	TrainingOffFocusMultiplier   = 0.5
	TrainingNoFocusMultiplier    = 1.0
	AgeIncrementPerLongTick      = 1.0 / (24 * 365) // one long tick is one simulated hour
	MinFreePiratesPerPlanet      = 3
)

// TournamentRegistrationState is a team's registration status for one
// tournament.
type TournamentRegistrationState int

const (
	RegistrationNone TournamentRegistrationState = iota
	RegistrationPending
	RegistrationRegistered
	RegistrationConfirmed
)

// TournamentState is derived from wall-clock comparisons against a
// tournament's windows (glossary: "Tournament state").
type TournamentState int

const (
	TournamentStateNone TournamentState = iota
	TournamentStateRegistration
	TournamentStateConfirmation
	TournamentStateSyncing
	TournamentStateStarted
	TournamentStateEnded
	TournamentStateCanceled
)
