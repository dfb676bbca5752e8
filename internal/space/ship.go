package space

import (
	"math"

	"github.com/corsair-league/armada/internal/model"
)

// spawnPlayerShip places the team's spaceship at the scene's entry
// point (opposite the asteroid field) using its model.Spaceship stats
// to derive durability, fuel and speed caps.
func (s *Scene) spawnPlayerShip(team *model.Team) {
	ship := team.Spaceship
	e := &Entity{
		Kind:          KindSpaceship,
		Collider:      ColliderSpaceship,
		Layer:         0,
		Active:        true,
		X:             screenWidth * 0.1,
		Y:             screenHeight * 0.5,
		HitBox:        NewRectHitBox(4, 3),
		IsPlayer:      true,
		TeamID:        team.ID,
		Durability:    ship.Durability(),
		MaxDurability: ship.Durability(),
		Fuel:          float64(team.Resources[model.ResourceFuel]),
		FuelCapacity:  float64(ship.FuelCapacity()),
		Thrust:        thrustMod,
		MaxSpeed:      ship.Speed(0) * maxSpaceshipSpeedMod,
		MaxCharge:     100,
		Charge:        100,
		VisualEffects: map[VisualEffect]float64{},
	}
	s.playerID = s.insert(e)

	shield := &Entity{
		Kind:                KindShield,
		Collider:            ColliderShield,
		Layer:               0,
		Active:              false,
		X:                   e.X,
		Y:                   e.Y,
		HitBox:              NewCircleHitBox(shieldRadius),
		ChargeCostPerSecond: 12,
		Durability:          20,
		MaxDurability:       20,
		VisualEffects:       map[VisualEffect]float64{},
	}
	shieldID := s.insert(shield)
	e.ShieldID = &shieldID

	collector := &Entity{
		Kind:          KindCollector,
		Collider:      ColliderCollector,
		Layer:         0,
		Active:        true,
		X:             e.X,
		Y:             e.Y,
		HitBox:        NewCircleHitBox(collectorRadius),
		VisualEffects: map[VisualEffect]float64{},
	}
	s.insert(collector)
}

func (s *Scene) spawnAsteroidPlanet(x, y float64) {
	s.insert(&Entity{
		Kind:            KindAsteroidPlanet,
		Collider:        ColliderAsteroidPlanet,
		Layer:           0,
		X:               x,
		Y:               y,
		HitBox:          NewCircleHitBox(asteroidPlanetRadius),
		CollisionDamage: 1,
		VisualEffects:   map[VisualEffect]float64{},
	})
}

// applyInput consumes this frame's queued player inputs. Each input
// kind takes effect at most once per frame, except Shoot, which fires
// once per queued occurrence. Movement inputs add thrust-scaled
// acceleration; the others act immediately.
func (s *Scene) applyInput(dt float64) {
	ship := s.entities[s.playerID]
	if ship == nil || ship.Destroyed {
		s.queuedInputs = s.queuedInputs[:0]
		return
	}

	thrusted := false
	applied := make(map[PlayerInput]bool, len(s.queuedInputs))
	for _, in := range s.queuedInputs {
		if in != InputShoot {
			if applied[in] {
				continue
			}
			applied[in] = true
		}
		switch in {
		case InputMoveLeft:
			ship.AX -= ship.Thrust * 100
			thrusted = true
		case InputMoveRight:
			ship.AX += ship.Thrust * 100
			thrusted = true
		case InputMoveUp:
			ship.AY -= ship.Thrust * 100
			thrusted = true
		case InputMoveDown:
			ship.AY += ship.Thrust * 100
			thrusted = true
		case InputToggleAutofire:
			ship.AutofireOn = !ship.AutofireOn
		case InputShoot:
			s.fireProjectile(ship)
		case InputReleaseScraps:
			s.releaseScraps(ship)
		case InputToggleShield:
			s.toggleShield(ship)
		}
	}
	s.queuedInputs = s.queuedInputs[:0]

	if thrusted && ship.Fuel > 0 {
		burn := ship.FuelConsumption(dt)
		ship.Fuel -= burn
		s.result.FuelSpent += burn
		if ship.Fuel < 0 {
			ship.Fuel = 0
		}
	}
}

// FuelConsumption is the amount of fuel a frame of active piloting
// burns: fuelConsumptionMod per unit of thrust per second. The
// spaceship's FuelConsumptionPerTick rating does not enter into it.
func (e *Entity) FuelConsumption(dt float64) float64 {
	return fuelConsumptionMod * e.Thrust * dt
}

func (s *Scene) fireProjectile(ship *Entity) {
	if ship.Fuel <= 0 {
		return
	}
	dirX, dirY := 1.0, 0.0
	if speed := ship.VX*ship.VX + ship.VY*ship.VY; speed > 0.01 {
		mag := math.Hypot(ship.VX, ship.VY)
		dirX, dirY = ship.VX/mag, ship.VY/mag
	}
	var filterID *EntityID
	if ship.ShieldID != nil {
		id := *ship.ShieldID
		filterID = &id
	}
	s.insert(&Entity{
		Kind:            KindProjectile,
		Collider:        ColliderProjectile,
		Layer:           0,
		X:               ship.X,
		Y:               ship.Y,
		VX:              dirX * projectileSpeed,
		VY:              dirY * projectileSpeed,
		HitBox:          NewRectHitBox(projectileRadius, projectileRadius),
		ShotBy:          ship.ID,
		FilterShieldID:  filterID,
		CollisionDamage: 8,
		VisualEffects:   map[VisualEffect]float64{},
	})
}

func (s *Scene) releaseScraps(ship *Entity) {
	amount := ship.StorageUsed
	if amount <= 0 {
		return
	}
	ship.StorageUsed = 0
	s.insert(&Entity{
		Kind:          KindFragment,
		Collider:      ColliderFragment,
		Layer:         0,
		X:             ship.X,
		Y:             ship.Y,
		VX:            -ship.VX * 0.5,
		VY:            -ship.VY * 0.5,
		HitBox:        NewCircleHitBox(fragmentRadius),
		Resource:      model.ResourceScraps,
		Amount:        amount,
		VisualEffects: map[VisualEffect]float64{},
	})
}

func (s *Scene) toggleShield(ship *Entity) {
	if ship.ShieldID == nil {
		return
	}
	shield := s.entities[*ship.ShieldID]
	if shield == nil {
		return
	}
	if !shield.Active && ship.Charge <= 0 {
		return
	}
	shield.Active = !shield.Active
	ship.ShieldOn = shield.Active
}
