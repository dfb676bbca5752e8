package space

import "github.com/corsair-league/armada/internal/model"

// drainCallbacks applies every queued callback exactly once, in the
// order resolution produced them. Each handler mutates its single
// target entity directly and never re-invokes the queue while another
// callback for the same entity is being handled, satisfying the
// no-reentrancy rule resolution relies on.
func (s *Scene) drainCallbacks(dt float64) {
	queue := s.callbacks
	s.callbacks = nil

	for _, cb := range queue {
		target := s.entities[cb.Target]
		if target == nil {
			continue
		}
		switch cb.Kind {
		case CallbackDestroyEntity:
			s.destroyEntity(target)
		case CallbackGenerateParticle:
			s.insert(&Entity{
				Kind:           KindParticle,
				Collider:       ColliderNone,
				Layer:          cb.ParticleLayer,
				X:              cb.ParticleX,
				Y:              cb.ParticleY,
				VX:             cb.ParticleVX,
				VY:             cb.ParticleVY,
				HitBox:         NewHitBox(nil),
				Color:          cb.ParticleColor,
				DecayRemaining: cb.ParticleLifetime,
				VisualEffects:  map[VisualEffect]float64{},
			})
		case CallbackDamageEntity:
			s.damageEntity(target, cb.Damage)
		case CallbackAddVisualEffect:
			target.VisualEffects[cb.Effect] = cb.EffectDuration
		case CallbackSetAcceleration:
			target.AX, target.AY = cb.AccelX, cb.AccelY
		case CallbackSetCenterPosition:
			target.X, target.Y = cb.CenterX, cb.CenterY
		case CallbackActivateEntity:
			target.Active = true
		case CallbackDeactivateEntity:
			target.Active = false
		case CallbackUseCharge:
			s.useCharge(target, cb.ChargeAmount)
		case CallbackLandSpaceshipOnAsteroid:
			s.landShip(target)
		case CallbackCollectFragment:
			s.collectFragment(target, cb.FragmentResource, cb.FragmentAmount)
		}
	}
}

// destroyEntity removes an entity, splitting asteroids into debris
// first. A spaceship's shield and collector entities are left in
// place.
func (s *Scene) destroyEntity(e *Entity) {
	if e.Destroyed {
		return
	}
	if e.Kind == KindAsteroid {
		s.splitAsteroid(e)
	}
	e.Destroyed = true
	delete(s.entities, e.ID)
}

func (s *Scene) damageEntity(e *Entity, amount float64) {
	if amount <= 0 || e.Destroyed {
		return
	}
	switch e.Kind {
	case KindSpaceship:
		e.Durability -= amount
		if e.IsPlayer {
			s.result.DamageTaken += amount
		}
		if e.Durability <= 0 {
			e.Destroyed = true
			if e.IsPlayer {
				s.result.Destroyed = true
				s.active = false
			}
		}
	case KindAsteroid:
		e.CollisionDamage -= amount
		if e.CollisionDamage <= 0 {
			s.destroyEntity(e)
		}
	case KindShield:
		e.Durability -= amount
		if e.Durability <= 0 {
			e.Active = false
			e.Durability = e.MaxDurability
		}
	}
}

func (s *Scene) useCharge(ship *Entity, amount float64) {
	ship.Charge -= amount
	if ship.Charge <= 0 {
		ship.Charge = 0
		if ship.ShieldID != nil {
			if shield := s.entities[*ship.ShieldID]; shield != nil {
				shield.Active = false
				ship.ShieldOn = false
			}
		}
	}
}

func (s *Scene) landShip(ship *Entity) {
	if !ship.IsPlayer {
		return
	}
	s.result.Returned = true
	s.active = false
}

func (s *Scene) collectFragment(ship *Entity, resource model.Resource, amount int) {
	if !ship.IsPlayer {
		return
	}
	ship.StorageUsed += amount
	s.result.ResourcesCollected[resource] += amount
}

// checkEndConditions stops the scene once fuel runs out (the ship
// drifts to a halt and the run is abandoned) in addition to the
// destroy/land conditions already applied inline by their callbacks.
func (s *Scene) checkEndConditions() {
	if !s.active {
		s.result.Ended = true
		return
	}
	ship := s.entities[s.playerID]
	if ship == nil {
		s.active = false
		s.result.Ended = true
		return
	}
	const driftThreshold = 0.05
	if ship.Fuel <= 0 && ship.VX*ship.VX+ship.VY*ship.VY < driftThreshold*driftThreshold {
		s.active = false
		s.result.Ended = true
	}
}
