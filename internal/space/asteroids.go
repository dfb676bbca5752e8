package space

import "fmt"

// maybeSpawnAsteroid rolls the per-frame asteroid generation check.
// Past a difficulty threshold there is a small additional chance of
// spawning a second asteroid planet instead, mirroring the source
// game's escalating-difficulty field density.
func (s *Scene) maybeSpawnAsteroid() {
	if s.rng.Float64() >= asteroidGenerationProbability {
		return
	}
	if s.difficulty >= difficultyForAsteroidPlanetGeneration && s.rng.Float64() < 0.1 {
		s.spawnAsteroidAtEdge(AsteroidBig)
		return
	}
	size := AsteroidSize(s.rng.Intn(2)) // Big or Small; Fragment only from splits
	s.spawnAsteroidAtEdge(size)
}

func (s *Scene) spawnAsteroidAtEdge(size AsteroidSize) {
	x := screenWidth - 2
	y := screenHeight*0.1 + s.rng.Float64()*screenHeight*0.8
	if s.asteroidsCongestedNear(x, y) {
		return
	}
	vx := -(4 + s.rng.Float64()*6)
	vy := -2 + s.rng.Float64()*4
	s.spawnAsteroid(x, y, vx, vy, size)
}

// asteroidsCongestedNear rebuilds the asteroid spatial grid and reports
// whether the field is already crowded around (x, y), so a new arrival
// doesn't spawn directly on top of existing debris.
func (s *Scene) asteroidsCongestedNear(x, y float64) bool {
	s.grid.Clear()
	for _, e := range s.entities {
		if e.Kind == KindAsteroid && !e.Destroyed {
			s.grid.Insert(uint32(e.ID), e.X, e.Y)
		}
	}
	return len(s.grid.QueryRadius(x, y, 12)) >= 3
}

func (s *Scene) spawnAsteroid(x, y, vx, vy float64, size AsteroidSize) EntityID {
	radius := int16(asteroidBigRadius)
	damage := 12.0
	switch size {
	case AsteroidSmall:
		radius = asteroidSmallRadius
		damage = 6
	case AsteroidFragment:
		radius = fragmentRadius * 2
		damage = 2
	}
	return s.insert(&Entity{
		Kind:            KindAsteroid,
		Collider:        ColliderAsteroid,
		Layer:           0,
		X:               x,
		Y:               y,
		VX:              vx,
		VY:              vy,
		HitBox:          NewCircleHitBox(radius),
		AsteroidSize:    size,
		CollisionDamage: damage,
		VisualEffects:   map[VisualEffect]float64{},
	})
}

// splitAsteroid spawns the debris of a destroyed asteroid: a big
// asteroid becomes two small ones with opposing random velocity
// perturbations plus one fragment; a small asteroid becomes a single
// fragment; fragments do not split further.
func (s *Scene) splitAsteroid(a *Entity) {
	switch a.AsteroidSize {
	case AsteroidBig:
		rx := 0.5 + s.rng.Float64()
		ry := 0.5 + s.rng.Float64()
		sign := -1.0
		if s.rng.Intn(2) == 0 {
			sign = 1.0
		}
		s.spawnAsteroid(a.X, a.Y, a.VX+rx, a.VY+sign*ry, AsteroidSmall)
		s.spawnAsteroid(a.X, a.Y, a.VX-rx, a.VY-sign*ry, AsteroidSmall)
		s.spawnAsteroid(a.X, a.Y, a.VX/4, a.VY/4, AsteroidFragment)
	case AsteroidSmall:
		s.spawnAsteroid(a.X, a.Y, a.VX, a.VY, AsteroidFragment)
	case AsteroidFragment:
	}
}

// maybeSpawnRivalScavenger spawns an NPC spaceship that steers toward
// the asteroid planet via a flow field once the run's difficulty
// passes a threshold, up to a small cap so the scene doesn't fill up
// with rivals over a long run.
func (s *Scene) maybeSpawnRivalScavenger() {
	if s.difficulty < 20 {
		return
	}
	if s.countNPCShips() >= 2 {
		return
	}
	if s.rng.Float64() >= npcSpawnProbabilityPerDifficultyLevel {
		return
	}

	id := s.nextID
	goalKey := fmt.Sprintf("rival-%d", id)
	s.insert(&Entity{
		Kind:            KindSpaceship,
		Collider:        ColliderSpaceship,
		Layer:           0,
		X:               screenWidth - 4,
		Y:               screenHeight * s.rng.Float64(),
		HitBox:          NewRectHitBox(npcSpaceshipRadius, npcSpaceshipRadius),
		IsPlayer:        false,
		Durability:      30,
		MaxDurability:   30,
		MaxSpeed:        8,
		VisualEffects:   map[VisualEffect]float64{},
		npcGoalKey:      goalKey,
	})
}

func (s *Scene) countNPCShips() int {
	n := 0
	for _, e := range s.entities {
		if e.Kind == KindSpaceship && !e.IsPlayer && !e.Destroyed {
			n++
		}
	}
	return n
}
