// Package events implements the popup/event bus: a bounded FIFO of
// outcomes surfaced to the UI (landings, discoveries, errors).
package events

import (
	"sync"

	"github.com/corsair-league/armada/internal/clock"
	"github.com/corsair-league/armada/internal/model"
)

// Kind tags the payload carried by a PopupMessage.
type Kind int

const (
	KindLanding Kind = iota
	KindExplorationComplete
	KindSpaceAdventureEnded
	KindUpgradeComplete
	KindTournamentTransition
	KindGameCompleted
	KindChallengeReceived
	KindTradeReceived
	KindWarning
	KindError
)

// Skippable reports whether a message of this kind may be silently
// evicted to make room under buffer pressure, as opposed to one a user
// is actively waiting on (e.g. an Error from their own action).
func (k Kind) Skippable() bool {
	switch k {
	case KindWarning, KindError:
		return false
	default:
		return true
	}
}

// PopupMessage is one bus entry: an originating tick and its payload.
type PopupMessage struct {
	Tick clock.Tick
	Kind Kind

	TeamID   model.TeamID
	PlanetID model.PlanetID
	GameID   model.GameID
	Text     string
}

// MaxPopupMessages bounds the bus; once full, the oldest skippable
// message is evicted before a new push.
const MaxPopupMessages = 256

// Bus is a FIFO the UI consumes from the front; producers (world tick,
// match completion, collisions) push unconditionally.
type Bus struct {
	mu    sync.Mutex
	queue []PopupMessage
}

func NewBus() *Bus {
	return &Bus{queue: make([]PopupMessage, 0, MaxPopupMessages)}
}

// Push enqueues msg, evicting the oldest skippable entry first if the
// bus is at capacity. If every entry is non-skippable, the new message
// is dropped rather than growing unboundedly.
func (b *Bus) Push(msg PopupMessage) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.queue) >= MaxPopupMessages {
		if !b.evictOldestSkippableLocked() {
			return
		}
	}
	b.queue = append(b.queue, msg)
}

func (b *Bus) evictOldestSkippableLocked() bool {
	for i, m := range b.queue {
		if m.Kind.Skippable() {
			b.queue = append(b.queue[:i], b.queue[i+1:]...)
			return true
		}
	}
	return false
}

// Pop removes and returns the oldest message, or false if empty.
func (b *Bus) Pop() (PopupMessage, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.queue) == 0 {
		return PopupMessage{}, false
	}
	msg := b.queue[0]
	b.queue = b.queue[1:]
	return msg, true
}

// Len reports the number of queued messages.
func (b *Bus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.queue)
}

// Drain pops every queued message in order.
func (b *Bus) Drain() []PopupMessage {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]PopupMessage, len(b.queue))
	copy(out, b.queue)
	b.queue = b.queue[:0]
	return out
}
