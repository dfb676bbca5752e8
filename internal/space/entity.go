package space

import (
	"math"

	"github.com/corsair-league/armada/internal/model"
)

// EntityID identifies an entity within one scene. IDs are never reused
// within a scene's lifetime.
type EntityID uint64

// Kind tags the tagged union held by Entity: exactly one of the
// per-kind payload fields below is meaningful for a given Kind.
type Kind int

const (
	KindSpaceship Kind = iota
	KindAsteroid
	KindAsteroidPlanet
	KindProjectile
	KindShield
	KindCollector
	KindFragment
	KindParticle
)

// ColliderType drives collision-pair dispatch in resolveCollision. It
// mirrors Kind closely but None marks entities (decaying particles with
// no collider) excluded from all collision phases.
type ColliderType int

const (
	ColliderNone ColliderType = iota
	ColliderAsteroid
	ColliderAsteroidPlanet
	ColliderSpaceship
	ColliderProjectile
	ColliderShield
	ColliderCollector
	ColliderFragment
)

// AsteroidSize governs an asteroid's hitbox radius and its split
// behaviour once destroyed.
type AsteroidSize int

const (
	AsteroidBig AsteroidSize = iota
	AsteroidSmall
	AsteroidFragment
)

// VisualEffect is a client-facing rendering hint; the simulation only
// tracks remaining duration so a UI layer can fade it out.
type VisualEffect int

const (
	EffectColorMask VisualEffect = iota
	EffectFlash
)

// Offset is an integer point relative to an entity's position, used
// for hitbox membership and collision-path walking.
type Offset struct {
	X, Y int16
}

// HitBox is a fixed set of offsets relative to an entity's rounded
// integer position, plus the bounding box they imply. Constructed once
// per entity and reused every frame (asteroids/ships don't change
// their footprint mid-scene).
type HitBox struct {
	offsets             map[Offset]struct{}
	topLeft, bottomRight Offset
}

// NewHitBox builds a HitBox from an explicit offset set, computing its
// bounding box the way the source game's HitBox::From does.
func NewHitBox(offsets []Offset) HitBox {
	if len(offsets) == 0 {
		return HitBox{offsets: map[Offset]struct{}{}}
	}
	set := make(map[Offset]struct{}, len(offsets))
	minX, maxX := offsets[0].X, offsets[0].X
	minY, maxY := offsets[0].Y, offsets[0].Y
	for _, o := range offsets {
		set[o] = struct{}{}
		if o.X < minX {
			minX = o.X
		}
		if o.X > maxX {
			maxX = o.X
		}
		if o.Y < minY {
			minY = o.Y
		}
		if o.Y > maxY {
			maxY = o.Y
		}
	}
	return HitBox{offsets: set, topLeft: Offset{minX, minY}, bottomRight: Offset{maxX, maxY}}
}

// NewCircleHitBox builds a filled circular hitbox of the given radius,
// grounded on the source game's collector/shield hitbox construction
// (every integer point within radius, membership only).
func NewCircleHitBox(radius int16) HitBox {
	offsets := make([]Offset, 0, int(radius)*int(radius)*4)
	maxDistSq := int(radius) * int(radius)
	for x := -radius; x <= radius; x++ {
		for y := -radius; y <= radius; y++ {
			distSq := int(x)*int(x) + int(y)*int(y)
			if distSq <= maxDistSq {
				offsets = append(offsets, Offset{x, y})
			}
		}
	}
	return NewHitBox(offsets)
}

// NewRectHitBox builds a filled rectangular hitbox centered on the
// entity's position, halfW/halfH on each side.
func NewRectHitBox(halfW, halfH int16) HitBox {
	offsets := make([]Offset, 0, int(halfW*2+1)*int(halfH*2+1))
	for x := -halfW; x <= halfW; x++ {
		for y := -halfH; y <= halfH; y++ {
			offsets = append(offsets, Offset{x, y})
		}
	}
	return NewHitBox(offsets)
}

func (h HitBox) contains(o Offset) bool {
	_, ok := h.offsets[o]
	return ok
}

// Entity is the tagged union for every object the scene simulates. A
// single flat struct (rather than per-kind types behind an interface)
// keeps the seven-step pipeline a straightforward type switch on Kind,
// matching how compact the source game's per-entity state actually is
// once sprite/animation concerns are stripped out.
type Entity struct {
	ID     EntityID
	Kind   Kind
	Collider ColliderType
	Layer  int

	X, Y         float64
	PrevX, PrevY float64
	VX, VY       float64
	AX, AY       float64

	HitBox HitBox

	Active    bool
	Destroyed bool

	CollisionDamage float64

	// Projectile
	ShotBy         EntityID
	FilterShieldID *EntityID

	// Shield
	ChargeCostPerSecond float64

	// Spaceship
	IsPlayer    bool
	TeamID      model.TeamID
	ShieldID    *EntityID
	ShieldOn    bool
	Charge      float64
	MaxCharge   float64
	Durability  float64
	MaxDurability float64
	Fuel        float64
	FuelCapacity float64
	Thrust      float64
	MaxSpeed    float64
	AutofireOn  bool
	autofireElapsed float64
	StorageUsed int

	// Fragment
	Resource model.Resource
	Amount   int

	// Asteroid
	AsteroidSize AsteroidSize

	// Particle
	DecayRemaining float64 // < 0 means immortal
	Color          [3]uint8

	VisualEffects map[VisualEffect]float64

	// npcGoalKey names the flow field this entity (an NPC spaceship)
	// steers along; empty for player-controlled or non-navigating
	// entities.
	npcGoalKey string
}

func (e *Entity) posOffset() Offset {
	return Offset{int16(math.Round(e.X)), int16(math.Round(e.Y))}
}

func (e *Entity) prevPosOffset() Offset {
	return Offset{int16(math.Round(e.PrevX)), int16(math.Round(e.PrevY))}
}

// rect returns the entity's current axis-aligned bounds.
func (e *Entity) rect() (Offset, Offset) {
	p := e.posOffset()
	return Offset{p.X + e.HitBox.topLeft.X, p.Y + e.HitBox.topLeft.Y},
		Offset{p.X + e.HitBox.bottomRight.X, p.Y + e.HitBox.bottomRight.Y}
}

// previousRect mirrors rect using the position held before this
// frame's body update, so broad phase catches fast-moving entities
// that fully crossed each other within one frame.
func (e *Entity) previousRect() (Offset, Offset) {
	p := e.prevPosOffset()
	return Offset{p.X + e.HitBox.topLeft.X, p.Y + e.HitBox.topLeft.Y},
		Offset{p.X + e.HitBox.bottomRight.X, p.Y + e.HitBox.bottomRight.Y}
}

func (e *Entity) center() (float64, float64) {
	return e.X + float64(e.HitBox.topLeft.X+e.HitBox.bottomRight.X)/2,
		e.Y + float64(e.HitBox.topLeft.Y+e.HitBox.bottomRight.Y)/2
}
