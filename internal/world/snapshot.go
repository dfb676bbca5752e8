package world

import (
	"sync/atomic"
	"time"

	"golang.org/x/exp/maps"

	"github.com/corsair-league/armada/internal/model"
)

// Snapshot is an immutable, UI/network-facing view of the world at one
// instant. Fields mirror World's maps but hold independent slices so a
// consumer can range over them without touching the live mutex.
type Snapshot struct {
	Sequence  uint64
	Timestamp time.Time

	Teams       []*model.Team
	Players     []*model.Player
	Games       []*model.Game
	Tournaments []*model.Tournament
}

func (s *Snapshot) reset() {
	s.Teams = s.Teams[:0]
	s.Players = s.Players[:0]
	s.Games = s.Games[:0]
	s.Tournaments = s.Tournaments[:0]
}

// SnapshotPool pre-allocates three Snapshot buffers and hands them out
// in rotation, so repeated publication never allocates once the
// world's entity counts stabilize. Lock-free producer/consumer via
// atomics: the tick goroutine is the sole producer, any number of
// readers may call Publish's returned pointer concurrently provided
// they treat it as read-only.
type SnapshotPool struct {
	buffers  [3]Snapshot
	writeIdx uint32
	readIdx  uint32
	sequence uint64
}

func NewSnapshotPool() *SnapshotPool {
	pool := &SnapshotPool{}
	for i := range pool.buffers {
		pool.buffers[i] = Snapshot{
			Teams:       make([]*model.Team, 0, 64),
			Players:     make([]*model.Player, 0, 512),
			Games:       make([]*model.Game, 0, 32),
			Tournaments: make([]*model.Tournament, 0, 8),
		}
	}
	return pool
}

// Publish copies w's current entity maps into the next write buffer
// and atomically advances the read pointer to it.
func (p *SnapshotPool) Publish(w *World) *Snapshot {
	idx := atomic.AddUint32(&p.writeIdx, 1) % 3
	snap := &p.buffers[idx]
	snap.reset()

	snap.Teams = append(snap.Teams, maps.Values(w.Teams)...)
	snap.Players = append(snap.Players, maps.Values(w.Players)...)
	snap.Games = append(snap.Games, maps.Values(w.Games)...)
	snap.Tournaments = append(snap.Tournaments, maps.Values(w.Tournaments)...)

	snap.Sequence = atomic.AddUint64(&p.sequence, 1)
	snap.Timestamp = time.Now()

	atomic.StoreUint32(&p.readIdx, idx)
	return snap
}

// Latest returns the most recently published snapshot without forcing
// a new publication, or nil if Publish has never been called.
func (p *SnapshotPool) Latest() *Snapshot {
	idx := atomic.LoadUint32(&p.readIdx)
	snap := &p.buffers[idx%3]
	if snap.Sequence == 0 {
		return nil
	}
	return snap
}
