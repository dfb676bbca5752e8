package space

import "math/rand"

// resolveCollision dispatches a confirmed collision between one and
// other into zero or more queued callbacks, mirroring the source
// game's get_collision_callbacks match on (ColliderType, ColliderType)
// pairs. Symmetric pairs delegate to their canonical ordering by
// swapping arguments, exactly as the source does.
func resolveCollision(one, other *Entity, point Offset, dt float64, rng *rand.Rand) []Callback {
	switch {
	case one.Collider == ColliderAsteroidPlanet && other.Collider == ColliderAsteroid:
		return []Callback{{Kind: CallbackDamageEntity, Target: other.ID, Damage: one.CollisionDamage}}
	case one.Collider == ColliderAsteroid && other.Collider == ColliderAsteroidPlanet:
		return resolveCollision(other, one, point, dt, rng)

	case one.Collider == ColliderAsteroidPlanet && other.Collider == ColliderSpaceship:
		if other.IsPlayer {
			return []Callback{{Kind: CallbackLandSpaceshipOnAsteroid, Target: other.ID}}
		}
		return nil
	case one.Collider == ColliderSpaceship && other.Collider == ColliderAsteroidPlanet:
		return resolveCollision(other, one, point, dt, rng)

	case one.Collider == ColliderProjectile && other.Collider == ColliderAsteroid:
		vx := one.VX*randRange(rng, 0.1, 0.15) + randRange(rng, -1, 1)*12
		vy := one.VY*randRange(rng, 0.1, 0.15) + randRange(rng, -1, 1)*12
		return []Callback{
			{Kind: CallbackDestroyEntity, Target: one.ID},
			{
				Kind: CallbackGenerateParticle, ParticleX: float64(point.X), ParticleY: float64(point.Y),
				ParticleVX: vx, ParticleVY: vy,
				ParticleColor:    grayParticleColor(rng),
				ParticleLifetime: 1.0 + randRange(rng, 0, 1.5),
				ParticleLayer:    2,
			},
			{Kind: CallbackDamageEntity, Target: other.ID, Damage: one.CollisionDamage},
		}
	case one.Collider == ColliderAsteroid && other.Collider == ColliderProjectile:
		return resolveCollision(other, one, point, dt, rng)

	case one.Collider == ColliderProjectile && other.Collider == ColliderSpaceship:
		if one.ShotBy == other.ID {
			return nil
		}
		vx := one.VX*randRange(rng, -0.1, 0.01) + randRange(rng, -1, 1)*8
		vy := one.VY*randRange(rng, -0.1, 0.01) + randRange(rng, -1, 1)*8
		return []Callback{
			{Kind: CallbackDestroyEntity, Target: one.ID},
			{
				Kind: CallbackGenerateParticle, ParticleX: float64(point.X), ParticleY: float64(point.Y),
				ParticleVX: vx, ParticleVY: vy,
				ParticleColor:    [3]uint8{210 + uint8(rng.Intn(46)), 55, 75},
				ParticleLifetime: 1.0 + randRange(rng, 0, 1.5),
				ParticleLayer:    2,
			},
			{Kind: CallbackDamageEntity, Target: other.ID, Damage: one.CollisionDamage * projectileSpaceshipDamageMultiplier},
		}
	case one.Collider == ColliderSpaceship && other.Collider == ColliderProjectile:
		return resolveCollision(other, one, point, dt, rng)

	case one.Collider == ColliderProjectile && other.Collider == ColliderShield:
		if !other.Active || (one.FilterShieldID != nil && *one.FilterShieldID == other.ID) {
			return nil
		}
		vx := one.VX*randRange(rng, -0.15, -0.05) + randRange(rng, -1, 1)*4
		vy := one.VY*randRange(rng, -0.15, -0.05) + randRange(rng, -1, 1)*4
		return []Callback{
			{Kind: CallbackDestroyEntity, Target: one.ID},
			{
				Kind: CallbackGenerateParticle, ParticleX: float64(point.X), ParticleY: float64(point.Y),
				ParticleVX: vx, ParticleVY: vy,
				ParticleColor:    [3]uint8{210 + uint8(rng.Intn(46)), 125, 25},
				ParticleLifetime: 1.0 + randRange(rng, 0, 1.5),
				ParticleLayer:    2,
			},
			{Kind: CallbackDamageEntity, Target: other.ID, Damage: one.CollisionDamage},
		}
	case one.Collider == ColliderShield && other.Collider == ColliderProjectile:
		return resolveCollision(other, one, point, dt, rng)

	case one.Collider == ColliderAsteroid && other.Collider == ColliderShield:
		if !other.Active {
			return nil
		}
		return []Callback{
			{Kind: CallbackDamageEntity, Target: one.ID, Damage: other.CollisionDamage},
			{Kind: CallbackDamageEntity, Target: other.ID, Damage: one.CollisionDamage},
		}
	case one.Collider == ColliderShield && other.Collider == ColliderAsteroid:
		return resolveCollision(other, one, point, dt, rng)

	case one.Collider == ColliderSpaceship && other.Collider == ColliderAsteroid:
		return []Callback{
			{Kind: CallbackDamageEntity, Target: one.ID, Damage: other.CollisionDamage},
			{Kind: CallbackDestroyEntity, Target: other.ID},
		}
	case one.Collider == ColliderAsteroid && other.Collider == ColliderSpaceship:
		return resolveCollision(other, one, point, dt, rng)

	case one.Collider == ColliderSpaceship && other.Collider == ColliderFragment:
		g := Offset{other.posOffset().X - one.posOffset().X, other.posOffset().Y - one.posOffset().Y}
		if !one.HitBox.contains(g) {
			return nil
		}
		return []Callback{
			{Kind: CallbackAddVisualEffect, Target: one.ID, Effect: EffectColorMask, EffectDuration: 0.5},
			{Kind: CallbackCollectFragment, Target: one.ID, FragmentResource: other.Resource, FragmentAmount: other.Amount},
			{Kind: CallbackDestroyEntity, Target: other.ID},
		}
	case one.Collider == ColliderFragment && other.Collider == ColliderSpaceship:
		return resolveCollision(other, one, point, dt, rng)

	case one.Collider == ColliderSpaceship && other.Collider == ColliderShield:
		if one.ShieldID != nil && *one.ShieldID == other.ID && other.Active {
			return []Callback{{Kind: CallbackUseCharge, Target: one.ID, ChargeAmount: other.ChargeCostPerSecond * dt}}
		}
		return nil
	case one.Collider == ColliderShield && other.Collider == ColliderSpaceship:
		return resolveCollision(other, one, point, dt, rng)

	case one.Collider == ColliderCollector && other.Collider == ColliderFragment:
		if !one.Active {
			return nil
		}
		cx, cy := one.center()
		return []Callback{{Kind: CallbackSetAcceleration, Target: other.ID, AccelX: cx - other.X, AccelY: cy - other.Y}}
	case one.Collider == ColliderFragment && other.Collider == ColliderCollector:
		return resolveCollision(other, one, point, dt, rng)

	case one.Collider == ColliderSpaceship && other.Collider == ColliderSpaceship:
		return []Callback{
			{Kind: CallbackDamageEntity, Target: one.ID, Damage: spaceshipCollisionDamage},
			{Kind: CallbackSetAcceleration, Target: one.ID, AccelX: -one.VX, AccelY: -one.VY},
			{Kind: CallbackDamageEntity, Target: other.ID, Damage: spaceshipCollisionDamage},
			{Kind: CallbackSetAcceleration, Target: other.ID, AccelX: -one.VX, AccelY: -one.VY},
		}

	default:
		return nil
	}
}

func randRange(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func grayParticleColor(rng *rand.Rand) [3]uint8 {
	base := uint8(55 + rng.Intn(25))
	return [3]uint8{base, base, base}
}
