package world

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	tickDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "world_tick_duration_seconds",
		Help:    "Time spent in World.Tick",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
	})

	playerCount = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "world_player_count",
		Help: "Current number of players known to the world",
	})

	teamCount = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "world_team_count",
		Help: "Current number of teams known to the world",
	})

	liveGameCount = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "world_live_game_count",
		Help: "Number of games currently in progress",
	})
)

func (w *World) recordTickMetrics(start time.Time) {
	tickDuration.Observe(time.Since(start).Seconds())
	playerCount.Set(float64(len(w.Players)))
	teamCount.Set(float64(len(w.Teams)))
	liveGameCount.Set(float64(len(w.Games)))
}
