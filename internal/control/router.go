package control

import (
	"sync"

	"github.com/corsair-league/armada/internal/clock"
	"github.com/corsair-league/armada/internal/model"
	"github.com/corsair-league/armada/internal/space"
	"github.com/corsair-league/armada/internal/world"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// RouterConfig holds everything NewRouter needs to build the HTTP
// control surface, dependency-injected so tests can point it at a
// scratch World via httptest without starting a real tick loop.
type RouterConfig struct {
	// World is the authoritative state every handler validates against
	// and mutates (required).
	World *world.World

	// Now supplies the current simulation tick for handlers that need
	// one (travel/exploration start, challenge/quit timestamps). If
	// nil, clock.Now is used.
	Now func() clock.Tick

	// CORSOrigins overrides the default allowed origins.
	CORSOrigins []string

	// DisableLogging turns off the request logger middleware, useful
	// for benchmarks and quiet test output.
	DisableLogging bool
}

// routerHandlers holds the dependencies route handlers close over,
// plus the in-memory registry of space adventures in flight (the HTTP
// surface starts/feeds/reads them; cmd/server's tick loop is what
// actually calls Scene.Step at the ~30Hz cadence).
type routerHandlers struct {
	world      *world.World
	now        func() clock.Tick
	adventures *AdventureRegistry
}

// NewRouter constructs the control-surface HTTP router. It is pure: no
// goroutines, no listeners, safe to use with httptest.NewServer. The
// returned AdventureRegistry is the same instance the handlers
// populate; cmd/server's tick loop polls its Active() snapshot at the
// ~30Hz cadence World.Tick expects for a space adventure scene.
func NewRouter(cfg RouterConfig) (*chi.Mux, *AdventureRegistry) {
	r := chi.NewRouter()

	if !cfg.DisableLogging {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)

	origins := cfg.CORSOrigins
	if origins == nil {
		origins = []string{"http://localhost:*", "http://127.0.0.1:*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	now := cfg.Now
	if now == nil {
		now = clock.Now
	}

	h := &routerHandlers{
		world:      cfg.World,
		now:        now,
		adventures: NewAdventureRegistry(),
	}

	r.Route("/api/teams/{teamID}", func(r chi.Router) {
		r.Get("/", h.handleGoToTeam)
		r.Post("/hire", h.handleHirePlayer)
		r.Post("/release", h.handleReleasePlayer)
		r.Post("/crew-role", h.handleSetCrewRole)
		r.Post("/travel", h.handleTravelToPlanet)
		r.Post("/explore", h.handleExploreAroundPlanet)
		r.Post("/challenge", h.handleChallengeTeam)
		r.Post("/accept-challenge", h.handleAcceptChallenge)
		r.Post("/trade-proposal", h.handleCreateTradeProposal)
		r.Post("/trade-resource", h.handleTradeResource)
		r.Post("/upgrade-spaceship", h.handleUpgradeSpaceship)
		r.Post("/upgrade-asteroid", h.handleUpgradeAsteroid)
		r.Post("/build-space-cove", h.handleBuildSpaceCove)
		r.Post("/tactic", h.handleSetTeamTactic)
		r.Post("/training-focus/next", h.handleNextTrainingFocus)
		r.Post("/message", h.handleSendMessage)
		r.Post("/quit-game", h.handleQuitGame)

		r.Route("/space-adventure", func(r chi.Router) {
			r.Post("/start", h.handleStartSpaceAdventure)
			r.Post("/input", h.handleSpaceAdventureInput)
			r.Get("/status", h.handleSpaceAdventureStatus)
			r.Post("/finish", h.handleFinishSpaceAdventure)
		})
	})

	return r, h.adventures
}

// AdventureRegistry tracks the one space.Scene a team may have active
// at a time, keyed by team id. Scene.Step is never called from here;
// only cmd/server's tick loop steps scenes, at the fixed cadence
// World.Tick expects.
type AdventureRegistry struct {
	mu     sync.Mutex
	byTeam map[model.TeamID]*space.Scene
}

func NewAdventureRegistry() *AdventureRegistry {
	return &AdventureRegistry{byTeam: make(map[model.TeamID]*space.Scene)}
}

func (r *AdventureRegistry) put(teamID model.TeamID, scene *space.Scene) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byTeam[teamID] = scene
}

func (r *AdventureRegistry) get(teamID model.TeamID) (*space.Scene, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	scene, ok := r.byTeam[teamID]
	return scene, ok
}

func (r *AdventureRegistry) delete(teamID model.TeamID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byTeam, teamID)
}

// Active returns a snapshot of every currently-tracked scene, for
// cmd/server's tick loop to step each one per real-time frame.
func (r *AdventureRegistry) Active() []*space.Scene {
	r.mu.Lock()
	defer r.mu.Unlock()
	scenes := make([]*space.Scene, 0, len(r.byTeam))
	for _, s := range r.byTeam {
		scenes = append(scenes, s)
	}
	return scenes
}
