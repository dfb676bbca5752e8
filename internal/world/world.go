// Package world owns every entity in the simulation and advances it
// through the four tick entry points: travel, games, space adventure
// and the long (hourly) tick.
package world

import (
	"sync"
	"time"

	"github.com/corsair-league/armada/internal/clock"
	"github.com/corsair-league/armada/internal/events"
	"github.com/corsair-league/armada/internal/match"
	"github.com/corsair-league/armada/internal/model"
)

// World is the single authoritative in-process state. All mutation
// goes through its methods; readers take the RLock (RLock/RUnlock)
// or go through a Snapshot.
type World struct {
	mu sync.RWMutex

	Players     map[model.PlayerID]*model.Player
	Teams       map[model.TeamID]*model.Team
	Planets     map[model.PlanetID]*model.Planet
	Games       map[model.GameID]*model.Game
	Tournaments map[model.TournamentID]*model.Tournament
	PastGames   []model.GameSummary

	MasterSeed uint64

	// Dirty flags: raised by any mutator, consumed (and cleared) by the
	// UI and network components. Never cleared by the simulation itself.
	dirty        bool
	dirtyUI      bool
	dirtyNetwork bool

	lastShort  clock.Tick
	lastMedium clock.Tick
	lastLong   clock.Tick

	// tournamentsEnded remembers which tournaments have already had
	// their completion announced, so tickTournamentsLocked doesn't
	// re-push the same popup every medium tick once a bracket finishes.
	tournamentsEnded map[model.TournamentID]bool

	// gameEngines holds one live match.Engine per in-progress game, so
	// its action/description RNG streams continue across tick calls
	// instead of re-seeding (and replaying the same early rolls) every
	// short tick. Removed once the game finishes.
	gameEngines map[model.GameID]*match.Engine

	events *events.Bus
	snaps  *SnapshotPool
}

func New(seed uint64, bus *events.Bus) *World {
	return &World{
		Players:          make(map[model.PlayerID]*model.Player),
		Teams:            make(map[model.TeamID]*model.Team),
		Planets:          make(map[model.PlanetID]*model.Planet),
		Games:            make(map[model.GameID]*model.Game),
		Tournaments:      make(map[model.TournamentID]*model.Tournament),
		tournamentsEnded: make(map[model.TournamentID]bool),
		gameEngines:      make(map[model.GameID]*match.Engine),
		MasterSeed:       seed,
		events:           bus,
		snaps:            NewSnapshotPool(),
	}
}

// MarkDirty raises all three dirty flags; call after any mutation that
// should eventually reach both the UI and the network.
func (w *World) MarkDirty() {
	w.dirty = true
	w.dirtyUI = true
	w.dirtyNetwork = true
}

// MarkDirtyLocal raises dirty+dirtyUI only, for mutations that do not
// need to be gossiped (e.g. derived-cache recompute).
func (w *World) MarkDirtyLocal() {
	w.dirty = true
	w.dirtyUI = true
}

// TakeDirtyUI reports and clears the UI dirty flag.
func (w *World) TakeDirtyUI() bool {
	v := w.dirtyUI
	w.dirtyUI = false
	return v
}

// TakeDirtyNetwork reports and clears the network dirty flag.
func (w *World) TakeDirtyNetwork() bool {
	v := w.dirtyNetwork
	w.dirtyNetwork = false
	return v
}

// IsDirty reports the raw dirty flag without clearing it.
func (w *World) IsDirty() bool { return w.dirty }

// Lock/Unlock/RLock/RUnlock expose the world's mutex directly so
// control-surface callbacks (internal/control) can validate-then-mutate
// atomically without a second locking layer.
func (w *World) Lock()    { w.mu.Lock() }
func (w *World) Unlock()  { w.mu.Unlock() }
func (w *World) RLock()   { w.mu.RLock() }
func (w *World) RUnlock() { w.mu.RUnlock() }

// Events returns the world's popup/event bus.
func (w *World) Events() *events.Bus { return w.events }

// Tick advances every cadence whose boundary now crosses, in the
// spec's required order: travel/landing effects precede game advances;
// game advances precede space-adventure frames; space-adventure frames
// precede long-tick rollover.
func (w *World) Tick(now clock.Tick, spaceAdventureDt float64, space SpaceAdventureStepper) {
	started := time.Now()
	w.mu.Lock()
	defer w.mu.Unlock()
	defer w.recordTickMetrics(started)

	if clock.ShortBoundary(w.lastShort, now) || w.lastShort == 0 {
		w.tickTravelLocked(now)
		w.tickGamesLocked(now)
	}
	if space != nil && space.Active() {
		w.tickSpaceAdventureLocked(space, spaceAdventureDt)
	}
	if clock.LongBoundary(w.lastLong, now) {
		w.tickLongLocked(now)
		w.lastLong = now
	}
	if clock.MediumBoundary(w.lastMedium, now) {
		w.tickTournamentsLocked(now)
		w.lastMedium = now
	}
	w.lastShort = now
}

// SpaceAdventureStepper abstracts the C5 scene so World does not import
// internal/space directly (it would create an import cycle once space
// needs World-derived team/spaceship data); the concrete *space.Scene
// satisfies this.
type SpaceAdventureStepper interface {
	Active() bool
	Step(dt float64)
}

func (w *World) tickSpaceAdventureLocked(space SpaceAdventureStepper, dt float64) {
	const maxStep = 1.0 / 15.0 // clamp dt to prevent tunnelling at ~<15fps
	if dt > maxStep {
		dt = maxStep
	}
	space.Step(dt)
}

// Snapshot publishes an immutable read-only view for the UI/network
// layers, using a lock-free triple buffer so the tick loop never blocks
// on a slow consumer.
func (w *World) Snapshot() *Snapshot {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.snaps.Publish(w)
}
