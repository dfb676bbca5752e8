package space

import (
	"math"
	"math/rand"

	"github.com/corsair-league/armada/internal/model"
	"github.com/corsair-league/armada/internal/space/spatial"
)

// PlayerInput is one frame's worth of player intent. Idempotent:
// queuing the same input twice in one frame before Step runs has the
// same effect as queuing it once, except Shoot (fires once per queued
// occurrence while the ship has fuel).
type PlayerInput int

const (
	InputMoveLeft PlayerInput = iota
	InputMoveRight
	InputMoveUp
	InputMoveDown
	InputToggleAutofire
	InputShoot
	InputReleaseScraps
	InputToggleShield
)

// Result is read by the caller (world/control) once Active() goes
// false, and applied back to the team's model.Team/model.Spaceship —
// the scene itself never mutates those directly, keeping this package
// free of a dependency on internal/world.
type Result struct {
	Ended              bool
	Returned           bool // docked back at an asteroid planet under its own power
	Destroyed          bool // durability reached zero
	FuelSpent          float64
	DamageTaken        float64
	ResourcesCollected map[model.Resource]int
}

// Scene owns every entity in one space adventure run. It is
// single-threaded: all mutation happens inside Step, called by the
// owner (internal/world) at a fixed ~30Hz cadence with a clamped dt.
type Scene struct {
	rng *rand.Rand

	entities map[EntityID]*Entity
	nextID   EntityID
	playerID EntityID

	queuedInputs []PlayerInput
	callbacks    []Callback

	sap        *spatial.SweepAndPrune
	flowFields *spatial.FlowFieldManager
	grid       *spatial.SpatialGrid

	active     bool
	elapsed    float64
	difficulty int

	teamID model.TeamID
	result Result

	asteroidPlanetX, asteroidPlanetY float64
}

// NewScene starts a run for team, seeded off masterSeed and the team's
// id so two peers replaying the same tournament or exploration outcome
// derive independent but reproducible scenes.
func NewScene(team *model.Team, seed int64) *Scene {
	s := &Scene{
		rng:        rand.New(rand.NewSource(seed)),
		entities:   make(map[EntityID]*Entity, 64),
		active:     true,
		teamID:     team.ID,
		sap:        spatial.NewSweepAndPrune(256),
		flowFields: spatial.NewFlowFieldManager(screenWidth, screenHeight, flowFieldCellSize),
		grid:       spatial.NewSpatialGrid(screenWidth, screenHeight, flowFieldCellSize, 256),
		result:     Result{ResourcesCollected: map[model.Resource]int{}},
	}

	s.asteroidPlanetX, s.asteroidPlanetY = screenWidth*0.85, screenHeight*0.5
	s.spawnAsteroidPlanet(s.asteroidPlanetX, s.asteroidPlanetY)
	s.spawnPlayerShip(team)

	return s
}

func (s *Scene) nextEntityID() EntityID {
	id := s.nextID
	s.nextID++
	return id
}

func (s *Scene) insert(e *Entity) EntityID {
	e.ID = s.nextEntityID()
	s.entities[e.ID] = e
	return e.ID
}

// Active reports whether the scene still wants Step calls.
func (s *Scene) Active() bool { return s.active }

// Result returns the accumulated outcome. Only meaningful once Active
// returns false.
func (s *Scene) Result() Result { return s.result }

// QueueInput records player intent to be applied on the next Step.
func (s *Scene) QueueInput(in PlayerInput) {
	s.queuedInputs = append(s.queuedInputs, in)
}

// Step advances the scene by one frame through the seven-stage
// pipeline: input, body update, sprite update, broad phase, narrow
// phase, resolution, callback drain.
func (s *Scene) Step(dt float64) {
	if !s.active {
		return
	}
	s.elapsed += dt
	s.difficulty = int(s.elapsed)

	s.applyInput(dt)
	s.updateBodies(dt)
	s.updateSprites(dt)
	s.maybeSpawnAsteroid()
	s.maybeSpawnRivalScavenger()

	pairs := s.broadPhase()
	for _, pair := range pairs {
		one, ok1 := s.entities[pair.a]
		other, ok2 := s.entities[pair.b]
		if !ok1 || !ok2 || one.Destroyed || other.Destroyed {
			continue
		}
		if point, hit := areColliding(one, other); hit {
			s.callbacks = append(s.callbacks, resolveCollision(one, other, point, dt, s.rng)...)
		}
	}

	s.drainCallbacks(dt)
	s.checkEndConditions()
}

type entityPair struct{ a, b EntityID }

// broadPhase runs the x-axis sweep-and-prune over every live entity to
// cut down the O(n^2) pair count before the precise per-pair check;
// the precise layer/AABB test still runs inside areColliding for every
// surviving candidate.
func (s *Scene) broadPhase() []entityPair {
	ids := make([]EntityID, 0, len(s.entities))
	bounds := make([]sapEntity, 0, len(s.entities))
	for id, e := range s.entities {
		if e.Destroyed || e.Collider == ColliderNone {
			continue
		}
		ids = append(ids, id)
		top, bottom := e.rect()
		bounds = append(bounds, sapEntity{
			minX: float32(math.Min(float64(top.X), float64(bottom.X))),
			maxX: float32(math.Max(float64(top.X), float64(bottom.X))),
		})
	}
	entityIfaces := make([]spatial.SAPEntity, len(bounds))
	for i := range bounds {
		b := bounds[i]
		entityIfaces[i] = b
	}
	rawPairs := s.sap.Update(entityIfaces)

	pairs := make([]entityPair, 0, len(rawPairs))
	for _, p := range rawPairs {
		pairs = append(pairs, entityPair{a: ids[p.A], b: ids[p.B]})
	}
	return pairs
}

type sapEntity struct{ minX, maxX float32 }

func (b sapEntity) GetBounds() (float32, float32) { return b.minX, b.maxX }

// updateBodies integrates acceleration and velocity for every entity:
// new_velocity = velocity + (acceleration - friction*velocity)*dt,
// new_position = position + new_velocity*dt, clamped to the scene
// bounds; entities that would leave the bounds entirely are destroyed.
func (s *Scene) updateBodies(dt float64) {
	for _, e := range s.entities {
		if e.Destroyed {
			continue
		}
		e.PrevX, e.PrevY = e.X, e.Y

		ax := e.AX - frictionCoeff*e.VX
		ay := e.AY - frictionCoeff*e.VY
		e.VX += ax * dt
		e.VY += ay * dt
		e.AX, e.AY = 0, 0

		if e.MaxSpeed > 0 {
			speed := math.Hypot(e.VX, e.VY)
			if speed > e.MaxSpeed {
				scale := e.MaxSpeed / speed
				e.VX *= scale
				e.VY *= scale
			}
		}

		e.X += e.VX * dt
		e.Y += e.VY * dt

		if e.X < 0 || e.X > screenWidth || e.Y < 0 || e.Y > screenHeight {
			if e.Kind == KindSpaceship && e.IsPlayer {
				e.X = math.Max(0, math.Min(screenWidth, e.X))
				e.Y = math.Max(0, math.Min(screenHeight, e.Y))
			} else {
				e.Destroyed = true
			}
		}
	}
}

// updateSprites advances visual-effect durations and the autofire
// cooldown; it has no animation frames to speak of since this
// simulation never renders pixels.
func (s *Scene) updateSprites(dt float64) {
	for _, e := range s.entities {
		if e.Destroyed {
			continue
		}
		for eff, remaining := range e.VisualEffects {
			remaining -= dt
			if remaining <= 0 {
				delete(e.VisualEffects, eff)
			} else {
				e.VisualEffects[eff] = remaining
			}
		}
		if e.Kind == KindSpaceship && e.IsPlayer && e.AutofireOn {
			e.autofireElapsed += dt
			if e.autofireElapsed >= defaultAutofireInterval {
				e.autofireElapsed = 0
				s.fireProjectile(e)
			}
		}
		if e.Kind == KindSpaceship && !e.IsPlayer && e.npcGoalKey != "" {
			s.steerAlongFlowField(e)
		}
		if e.Kind == KindParticle && e.DecayRemaining >= 0 {
			e.DecayRemaining -= dt
			if e.DecayRemaining <= 0 {
				e.Destroyed = true
			}
		}
	}
}

// steerAlongFlowField pulls an NPC spaceship's acceleration toward the
// direction given by its assigned flow field, regenerated lazily the
// first time it's looked up for this goal.
func (s *Scene) steerAlongFlowField(e *Entity) {
	field := s.flowFields.GetOrCreate(e.npcGoalKey, s.asteroidPlanetX, s.asteroidPlanetY)
	vx, vy := field.Lookup(e.X, e.Y)
	e.AX += float64(vx) * thrustMod * 4
	e.AY += float64(vy) * thrustMod * 4
}
