package model

// OrbitalGeometry places a planet in its system: axis tilt plus
// rotation/revolution periods, in ticks.
type OrbitalGeometry struct {
	Axis              float64
	RotationPeriod    uint64
	RevolutionPeriod  uint64
}

// PlanetUpgrade is a discrete improvement purchasable on an
// owned asteroid (teleport pad, mining rig, ...).
type PlanetUpgrade int

const (
	UpgradeTeleportPad PlanetUpgrade = iota
	UpgradeMiningRig
	UpgradeRefinery
)

// Planet is a system body: a sun, a populated world, or an asteroid a
// team may claim.
type Planet struct {
	ID       PlanetID
	Name     string
	Type     PlanetType
	Geometry OrbitalGeometry
	Parent   *PlanetID
	Satellites []PlanetID

	TeamsPresent []TeamID
	Resources    map[Resource]int
	Upgrades     []PlanetUpgrade

	// PopulationComposition counts free pirates by species present on
	// this planet, used to weight new free-pirate generation.
	PopulationComposition map[Population]int
}

func NewPlanet(name string, kind PlanetType) *Planet {
	return &Planet{
		ID:                     NewPlanetID(),
		Name:                   name,
		Type:                   kind,
		Resources:              map[Resource]int{},
		PopulationComposition:  map[Population]int{},
	}
}

// HasUpgrade reports whether the planet carries upgrade u.
func (p *Planet) HasUpgrade(u PlanetUpgrade) bool {
	for _, existing := range p.Upgrades {
		if existing == u {
			return true
		}
	}
	return false
}

// IsOwnedBy reports whether team is among those present (asteroids are
// "owned" by virtue of being the team's recorded AsteroidIDs on Team,
// not tracked here; this only reflects physical presence).
func (p *Planet) IsOwnedBy(team TeamID) bool {
	for _, t := range p.TeamsPresent {
		if t == team {
			return true
		}
	}
	return false
}
