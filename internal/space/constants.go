// Package space implements the space adventure scene: a real-time 2D
// sandbox where a team's spaceship forages an asteroid field, fights
// off rival scavengers, collects resources and eventually burns fuel
// back to its asteroid planet or aborts the run.
//
// The scene owns its own entity map and runs a fixed seven-step
// pipeline once per frame: input, body update, sprite update, broad
// phase, narrow phase, resolution, callback drain. It never reaches
// into internal/world; World drives it through the SpaceAdventureStepper
// interface and reads back a Result once the run ends.
package space

const (
	frictionCoeff = 0.1
	thrustMod     = 1.5

	// fuelConsumptionMod is the per-second fuel drain per unit of thrust
	// while the player pilots the ship in the real-time scene; it does
	// not depend on the spaceship's FuelConsumptionPerTick rating.
	fuelConsumptionMod = 0.004

	maxSpaceshipSpeedMod = 13.5

	asteroidGenerationProbability           = 0.05
	difficultyForAsteroidPlanetGeneration   = 60
	npcSpawnProbabilityPerDifficultyLevel   = 0.01

	screenWidth  = 200.0
	screenHeight = 128.0

	maxLayer = 5

	spaceshipCollisionDamage           = 5.0
	projectileSpaceshipDamageMultiplier = 2.0

	asteroidPlanetRadius = 18
	asteroidBigRadius    = 6
	asteroidSmallRadius  = 3
	fragmentRadius       = 1
	collectorRadius      = 40
	shieldRadius         = 10
	projectileRadius     = 1
	npcSpaceshipRadius   = 4

	projectileSpeed    = 60.0
	projectileLifetime = 3.0

	defaultAutofireInterval = 0.35

	flowFieldCellSize = 8.0
)
