package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/corsair-league/armada/internal/archive"
	"github.com/corsair-league/armada/internal/clock"
	"github.com/corsair-league/armada/internal/config"
	"github.com/corsair-league/armada/internal/control"
	"github.com/corsair-league/armada/internal/events"
	"github.com/corsair-league/armada/internal/model"
	"github.com/corsair-league/armada/internal/protocol"
	"github.com/corsair-league/armada/internal/world"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := godotenv.Load("../.env"); err != nil {
		if err := godotenv.Load(".env"); err != nil {
			log.Println("no .env file found, using environment variables only")
		}
	}

	log.Println("================================")
	log.Println(" CORSAIR LEAGUE - WORLD ENGINE")
	log.Println("================================")

	appConfig := config.Load()

	bus := events.NewBus()
	w := world.New(appConfig.Sim.MasterSeed, bus)
	log.Printf("world seeded: %d", appConfig.Sim.MasterSeed)

	var store *archive.Store
	if appConfig.Archive.Enabled {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		s, err := archive.Connect(ctx, appConfig.Archive.MongoURI, appConfig.Archive.DatabaseName)
		cancel()
		if err != nil {
			log.Printf("archive disabled: %v", err)
		} else {
			store = s
			log.Printf("archive connected: %s", appConfig.Archive.DatabaseName)
		}
	} else {
		log.Println("archive disabled (no MONGO_URI)")
	}

	if os.Getenv("DISABLE_DEBUG_SERVER") != "true" {
		if err := control.StartDebugServer(control.DefaultObservabilityConfig()); err != nil {
			log.Printf("debug server disabled: %v", err)
		}
	}

	router, adventures := control.NewRouter(control.RouterConfig{
		World: w,
		Now:   clock.Now,
	})

	self := model.NewPeerID()
	book := protocol.NewChallengeBook()
	hub := protocol.NewHub(self, w, book)
	router.Get(appConfig.Network.PeerListenAddr, hub.HandleWebSocket)

	for _, peerURL := range appConfig.Network.SeedPeers {
		if err := hub.Dial(peerURL); err != nil {
			log.Printf("dial %s failed: %v", peerURL, err)
		}
	}

	// hub.Run has no cancellation of its own; it gossips for the
	// process lifetime, so it's launched fire-and-forget rather than
	// folded into the errgroup below.
	go hub.Run(clock.Now)

	httpServer := &http.Server{
		Addr:    ":" + strconv.Itoa(appConfig.Server.Port),
		Handler: router,
	}

	// The HTTP listener and the sim loop both stop cleanly on request
	// (Shutdown and the stop channel respectively), so an errgroup
	// coordinates their exit and surfaces whichever one failed first.
	var g errgroup.Group
	stop := make(chan struct{})

	g.Go(func() error {
		log.Printf("control surface on http://localhost%s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		runSimLoop(w, adventures, bus, store, appConfig.Sim.SpaceAdventureFPS, stop)
		return nil
	})

	log.Println("ready, press Ctrl+C to stop")
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")
	close(stop)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(shutdownCtx)

	if err := g.Wait(); err != nil {
		log.Printf("shutdown error: %v", err)
	}

	if store != nil {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = store.Close(closeCtx)
	}
	log.Println("goodbye")
}

// runSimLoop is the single-threaded cooperative main loop: it steps
// every in-flight space adventure at fps, and advances World's tick
// cadences once per frame. World.Tick is idempotent for a given `now`
// across repeated calls within the same frame, so stepping N distinct
// scenes in sequence is safe.
func runSimLoop(w *world.World, adventures *control.AdventureRegistry, bus *events.Bus, store *archive.Store, fps int, stop <-chan struct{}) {
	if fps <= 0 {
		fps = 30
	}
	dt := 1.0 / float64(fps)
	ticker := time.NewTicker(time.Duration(dt * float64(time.Second)))
	defer ticker.Stop()

	archivedGames := 0
	archivedTournaments := make(map[model.TournamentID]bool)

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			now := clock.Now()
			scenes := adventures.Active()
			if len(scenes) == 0 {
				w.Tick(now, dt, nil)
			} else {
				for _, scene := range scenes {
					w.Tick(now, dt, scene)
				}
			}
			drainPopups(bus)
			if store != nil {
				archivedGames = archiveNewGames(w, store, archivedGames)
				archiveFinishedTournaments(w, store, archivedTournaments, now)
			}
		}
	}
}

func drainPopups(bus *events.Bus) {
	for _, msg := range bus.Drain() {
		switch msg.Kind {
		case events.KindError, events.KindWarning:
			log.Printf("[popup] %s", msg.Text)
		}
	}
}

func archiveNewGames(w *world.World, store *archive.Store, already int) int {
	w.RLock()
	fresh := append([]model.GameSummary(nil), w.PastGames[already:]...)
	w.RUnlock()

	for _, g := range fresh {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := store.RecordGame(ctx, g); err != nil {
			log.Printf("archive game %s failed: %v", g.ID, err)
		}
		cancel()
	}
	return already + len(fresh)
}

func archiveFinishedTournaments(w *world.World, store *archive.Store, seen map[model.TournamentID]bool, now clock.Tick) {
	w.RLock()
	var toArchive []*model.Tournament
	for id, t := range w.Tournaments {
		if seen[id] {
			continue
		}
		if t.State(now) == model.TournamentStateEnded {
			toArchive = append(toArchive, t)
		}
	}
	w.RUnlock()

	for _, t := range toArchive {
		seen[t.ID] = true
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := store.RecordTournament(ctx, t, now); err != nil {
			log.Printf("archive tournament %s failed: %v", t.ID, err)
		}
		cancel()
	}
}
