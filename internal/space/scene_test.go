package space

import (
	"testing"

	"github.com/corsair-league/armada/internal/model"
)

func newTestTeam() *model.Team {
	team := model.NewTeam("Test Crew", model.NewPlanetID())
	team.Resources[model.ResourceFuel] = 100
	return team
}

func TestSceneStepsWithoutPanicking(t *testing.T) {
	scene := NewScene(newTestTeam(), 42)
	for i := 0; i < 300; i++ {
		scene.QueueInput(InputMoveRight)
		scene.Step(1.0 / 30.0)
		if !scene.Active() {
			break
		}
	}
}

func TestThrustBurnsFuel(t *testing.T) {
	scene := NewScene(newTestTeam(), 7)
	ship := scene.entities[scene.playerID]
	before := ship.Fuel

	scene.QueueInput(InputMoveRight)
	scene.Step(1.0 / 30.0)

	if ship.Fuel >= before {
		t.Fatalf("expected fuel to decrease from %v, got %v", before, ship.Fuel)
	}
	if scene.result.FuelSpent <= 0 {
		t.Fatalf("expected FuelSpent to accumulate, got %v", scene.result.FuelSpent)
	}
}

func TestBigAsteroidSplitsIntoDebris(t *testing.T) {
	scene := NewScene(newTestTeam(), 3)
	before := len(scene.entities)

	id := scene.spawnAsteroid(50, 50, -1, 0, AsteroidBig)
	a := scene.entities[id]
	scene.destroyEntity(a)

	// two small asteroids + one fragment, the big one removed.
	if got := len(scene.entities) - before; got != 3 {
		t.Fatalf("expected 3 new debris entities, got %d", got)
	}
	if _, ok := scene.entities[id]; ok {
		t.Fatalf("expected destroyed asteroid to be removed")
	}
}

func TestSmallAsteroidSplitsIntoSingleFragment(t *testing.T) {
	scene := NewScene(newTestTeam(), 3)
	before := len(scene.entities)

	id := scene.spawnAsteroid(50, 50, -1, 0, AsteroidSmall)
	scene.destroyEntity(scene.entities[id])

	if got := len(scene.entities) - before; got != 1 {
		t.Fatalf("expected exactly 1 fragment, got %d", got)
	}
}

func TestLandingOnAsteroidPlanetEndsScene(t *testing.T) {
	scene := NewScene(newTestTeam(), 1)

	scene.callbacks = append(scene.callbacks, Callback{Kind: CallbackLandSpaceshipOnAsteroid, Target: scene.playerID})
	scene.drainCallbacks(1.0 / 30.0)

	if scene.Active() {
		t.Fatalf("expected scene to end after landing")
	}
	if !scene.Result().Returned {
		t.Fatalf("expected Result.Returned to be true")
	}
}

func TestCollectFragmentCreditsResult(t *testing.T) {
	scene := NewScene(newTestTeam(), 1)

	scene.callbacks = append(scene.callbacks, Callback{
		Kind: CallbackCollectFragment, Target: scene.playerID,
		FragmentResource: model.ResourceScraps, FragmentAmount: 5,
	})
	scene.drainCallbacks(1.0 / 30.0)

	if got := scene.Result().ResourcesCollected[model.ResourceScraps]; got != 5 {
		t.Fatalf("expected 5 scraps collected, got %d", got)
	}
}

func TestDamageDestroysPlayerShip(t *testing.T) {
	scene := NewScene(newTestTeam(), 1)
	ship := scene.entities[scene.playerID]

	scene.damageEntity(ship, ship.MaxDurability+1)

	if scene.Active() {
		t.Fatalf("expected scene to end once ship is destroyed")
	}
	if !scene.Result().Destroyed {
		t.Fatalf("expected Result.Destroyed to be true")
	}
}

func TestAreCollidingRespectsLayer(t *testing.T) {
	a := &Entity{Collider: ColliderAsteroid, Layer: 0, HitBox: NewCircleHitBox(3)}
	b := &Entity{Collider: ColliderAsteroid, Layer: 1, HitBox: NewCircleHitBox(3)}
	a.X, a.Y, a.PrevX, a.PrevY = 10, 10, 10, 10
	b.X, b.Y, b.PrevX, b.PrevY = 10, 10, 10, 10

	if _, hit := areColliding(a, b); hit {
		t.Fatalf("expected no collision across different layers")
	}
}

func TestAreCollidingDetectsOverlap(t *testing.T) {
	a := &Entity{Collider: ColliderAsteroid, Layer: 0, HitBox: NewCircleHitBox(3)}
	b := &Entity{Collider: ColliderAsteroid, Layer: 0, HitBox: NewCircleHitBox(3)}
	a.X, a.Y, a.PrevX, a.PrevY = 10, 10, 10, 10
	b.X, b.Y, b.PrevX, b.PrevY = 11, 10, 11, 10

	if _, hit := areColliding(a, b); !hit {
		t.Fatalf("expected overlapping circular hitboxes to collide")
	}
}
