package model

// Component is a spaceship part: a (style, tier) pair. Tier increases
// with upgrades; within a style, not every component style supports
// every tier (Jester ships, for instance, only ever have one hull
// tier) — see maxTierForStyle.
type Component struct {
	Style ComponentStyle
	Tier  int
}

// Spaceship is a team's one and only vessel: three upgradeable
// components (hull, engine, storage) whose tiers determine crew
// capacity, cargo/fuel capacity, speed and durability.
type Spaceship struct {
	Hull    Component
	Engine  Component
	Storage Component

	PendingUpgrade *PendingUpgrade
}

// PendingUpgrade tracks an in-progress component upgrade, resolved by
// World's long tick once Started+Duration has passed.
type PendingUpgrade struct {
	Component ComponentKind
	Started   uint64 // tick
	Duration  uint64 // ticks
}

type ComponentKind int

const (
	ComponentHull ComponentKind = iota
	ComponentEngine
	ComponentStorage
)

// maxTierForStyle bounds how many tiers a style's component line
// supports before an upgrade must first switch style (Shuttle -> 3
// tiers, Pincher -> 2, Jester -> 1), mirroring the source game's
// Hull/Engine/Storage enums which enumerate more Shuttle variants than
// Pincher or Jester ones.
func maxTierForStyle(style ComponentStyle) int {
	switch style {
	case StyleShuttle:
		return 2
	case StylePincher:
		return 1
	case StyleJester:
		return 0
	default:
		return 0
	}
}

func NewSpaceship() Spaceship {
	return Spaceship{
		Hull:    Component{Style: StyleShuttle, Tier: 0},
		Engine:  Component{Style: StyleShuttle, Tier: 0},
		Storage: Component{Style: StyleShuttle, Tier: 0},
	}
}

// hullTable/engineTable/storageTable give the per-style baseline used to
// scale a component's capacity/speed/cost by its tier. Index 0 is the
// style's first tier.
type componentStats struct {
	crewCapacity              int
	storageCapacity           int
	fuelCapacity              int
	fuelConsumptionPerTick    float64
	speed                     float64
	durability                float64
	costSatoshi               int
}

var hullTable = map[ComponentStyle][]componentStats{
	StyleShuttle: {
		{crewCapacity: 7, storageCapacity: 2100, fuelCapacity: 110, fuelConsumptionPerTick: 0.95, speed: 1.25, durability: 16, costSatoshi: 15000},
		{crewCapacity: 8, storageCapacity: 3000, fuelCapacity: 200, fuelConsumptionPerTick: 1.0, speed: 1.0, durability: 18, costSatoshi: 25000},
		{crewCapacity: 9, storageCapacity: 5000, fuelCapacity: 380, fuelConsumptionPerTick: 1.05, speed: 0.92, durability: 19, costSatoshi: 32000},
	},
	StylePincher: {
		{crewCapacity: 8, storageCapacity: 2000, fuelCapacity: 300, fuelConsumptionPerTick: 1.05, speed: 1.15, durability: 18, costSatoshi: 27000},
		{crewCapacity: 9, storageCapacity: 3800, fuelCapacity: 500, fuelConsumptionPerTick: 1.1, speed: 0.95, durability: 20, costSatoshi: 45000},
	},
	StyleJester: {
		{crewCapacity: 8, storageCapacity: 1000, fuelCapacity: 400, fuelConsumptionPerTick: 1.06, speed: 1.05, durability: 16, costSatoshi: 35000},
	},
}

var engineTable = map[ComponentStyle][]componentStats{
	StyleShuttle: {
		{fuelConsumptionPerTick: 1.0, speed: 1.0, costSatoshi: 8000},
		{fuelConsumptionPerTick: 1.6, speed: 1.4, costSatoshi: 16000},
		{fuelConsumptionPerTick: 2.2, speed: 1.8, costSatoshi: 28000},
	},
	StylePincher: {
		{fuelConsumptionPerTick: 1.3, speed: 1.3, costSatoshi: 18000},
		{fuelConsumptionPerTick: 2.0, speed: 1.7, costSatoshi: 32000},
	},
	StyleJester: {
		{fuelConsumptionPerTick: 1.1, speed: 1.6, costSatoshi: 30000},
	},
}

var storageTable = map[ComponentStyle][]componentStats{
	StyleShuttle: {
		{storageCapacity: 1000, costSatoshi: 6000},
		{storageCapacity: 2200, costSatoshi: 14000},
		{storageCapacity: 4000, costSatoshi: 24000},
	},
	StylePincher: {
		{storageCapacity: 1500, costSatoshi: 12000},
		{storageCapacity: 3000, costSatoshi: 26000},
	},
	StyleJester: {
		{storageCapacity: 900, costSatoshi: 20000},
	},
}

func lookup(table map[ComponentStyle][]componentStats, c Component) componentStats {
	row := table[c.Style]
	if len(row) == 0 {
		return componentStats{}
	}
	tier := c.Tier
	if tier >= len(row) {
		tier = len(row) - 1
	}
	if tier < 0 {
		tier = 0
	}
	return row[tier]
}

// CrewCapacity is bounded by the hull alone.
func (s Spaceship) CrewCapacity() int { return lookup(hullTable, s.Hull).crewCapacity }

// StorageCapacity sums the hull's intrinsic cargo space and the
// storage component's added capacity.
func (s Spaceship) StorageCapacity() int {
	return lookup(hullTable, s.Hull).storageCapacity + lookup(storageTable, s.Storage).storageCapacity
}

// FuelCapacity is the hull's tank size.
func (s Spaceship) FuelCapacity() int { return lookup(hullTable, s.Hull).fuelCapacity }

// Speed combines hull drag and engine thrust; storageUnits (cargo
// currently loaded, in the same units as StorageCapacity) reduces
// speed proportionally to how full the hold is, matching the source
// game's loaded-ship penalty.
func (s Spaceship) Speed(storageUnits int) float64 {
	base := lookup(hullTable, s.Hull).speed * lookup(engineTable, s.Engine).speed
	capacity := s.StorageCapacity()
	if capacity <= 0 {
		return base
	}
	loadFraction := float64(storageUnits) / float64(capacity)
	if loadFraction > 1 {
		loadFraction = 1
	}
	return base * (1 - 0.3*loadFraction)
}

// FuelConsumptionPerTick is the hull and engine's combined burn rate.
func (s Spaceship) FuelConsumptionPerTick() float64 {
	return lookup(hullTable, s.Hull).fuelConsumptionPerTick * lookup(engineTable, s.Engine).fuelConsumptionPerTick
}

// Durability is the hull's structural rating, consumed by Space
// Adventure collision damage.
func (s Spaceship) Durability() float64 { return lookup(hullTable, s.Hull).durability }

// CanUpgrade reports whether component kind has a next tier within
// its style that costs more than the current one -- a
// same-or-cheaper "next" means the component line is maxed out.
func (s Spaceship) CanUpgrade(kind ComponentKind) bool {
	table, current := s.tableAndComponent(kind)
	next := nextComponent(current)
	return lookup(table, next).costSatoshi > lookup(table, current).costSatoshi
}

// UpgradeCost returns the resource cost of advancing kind to its next
// tier: satoshi for the delta in component cost, plus scraps, plus
// gold on a style's final tier, mirroring the source game's
// upgrade_cost tables.
func (s Spaceship) UpgradeCost(kind ComponentKind) map[Resource]int {
	table, current := s.tableAndComponent(kind)
	next := nextComponent(current)
	delta := lookup(table, next).costSatoshi - lookup(table, current).costSatoshi
	if delta <= 0 {
		return nil
	}
	scrapsDivisor := map[ComponentStyle]int{StyleShuttle: 28, StylePincher: 32, StyleJester: 36}[current.Style]
	if scrapsDivisor == 0 {
		scrapsDivisor = 30
	}
	cost := map[Resource]int{
		ResourceSatoshi: delta,
		ResourceScraps:  delta / scrapsDivisor,
	}
	if isFinalTier(current.Style, next.Tier) {
		goldDivisor := map[ComponentStyle]int{StyleShuttle: 4000, StylePincher: 3000, StyleJester: 2750}[current.Style]
		cost[ResourceGold] = delta / goldDivisor
	}
	return cost
}

func isFinalTier(style ComponentStyle, tier int) bool {
	return tier >= maxTierForStyle(style)
}

func (s Spaceship) tableAndComponent(kind ComponentKind) (map[ComponentStyle][]componentStats, Component) {
	switch kind {
	case ComponentHull:
		return hullTable, s.Hull
	case ComponentEngine:
		return engineTable, s.Engine
	default:
		return storageTable, s.Storage
	}
}

// nextComponent advances a component within its style's tier ladder;
// at the style's top tier it returns the component unchanged
// (the source game then requires a style switch, which is a player
// choice this model leaves to the caller).
func nextComponent(c Component) Component {
	max := maxTierForStyle(c.Style)
	if c.Tier >= max {
		return c
	}
	return Component{Style: c.Style, Tier: c.Tier + 1}
}

// ApplyUpgrade advances the given component to its next tier.
func (s *Spaceship) ApplyUpgrade(kind ComponentKind) {
	switch kind {
	case ComponentHull:
		s.Hull = nextComponent(s.Hull)
	case ComponentEngine:
		s.Engine = nextComponent(s.Engine)
	case ComponentStorage:
		s.Storage = nextComponent(s.Storage)
	}
}
