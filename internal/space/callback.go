package space

import "github.com/corsair-league/armada/internal/model"

// CallbackKind tags the single queue the scene drains once per tick
// after resolution, per the source game's SpaceCallback enum.
type CallbackKind int

const (
	CallbackDestroyEntity CallbackKind = iota
	CallbackGenerateParticle
	CallbackDamageEntity
	CallbackAddVisualEffect
	CallbackSetAcceleration
	CallbackSetCenterPosition
	CallbackActivateEntity
	CallbackDeactivateEntity
	CallbackUseCharge
	CallbackLandSpaceshipOnAsteroid
	CallbackCollectFragment
)

// Callback is a single deferred mutation produced during resolution.
// Exactly one target entity (Target) is addressed; fields outside the
// callback's Kind are zero/ignored.
type Callback struct {
	Kind   CallbackKind
	Target EntityID

	Damage float64

	ParticleX, ParticleY   float64
	ParticleVX, ParticleVY float64
	ParticleColor          [3]uint8
	ParticleLifetime       float64
	ParticleLayer          int

	Effect          VisualEffect
	EffectDuration  float64

	AccelX, AccelY float64

	CenterX, CenterY float64

	ChargeAmount float64

	FragmentResource model.Resource
	FragmentAmount   int
}
