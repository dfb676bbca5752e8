package spatial

import (
	"sort"
)

// SweepAndPrune is the broad phase for the space adventure scene's
// collision pass: a 1-axis sweep over entity bounding intervals
// (spaceships, asteroids, projectiles, shield bubbles) that reports
// every pair close enough on X to be worth a narrow-phase circle
// check. Projecting onto a single axis and tracking an active set as
// the sweep crosses interval starts/ends turns an O(n^2) all-pairs
// check into roughly O(n log n) (or O(n) once the active set is
// mostly stable frame to frame).
//
// Origin: Baraff & Witkin (SIGGRAPH 1992); Bullet Physics (2003)
type SweepAndPrune struct {
	endpoints  []SAPEndpoint   // min/max endpoints for the current frame
	pairs      []CollisionPair // output buffer, reused across calls
	active     []uint32        // entities whose interval currently overlaps the sweep position
	useInsSort bool            // insertion sort for frame-to-frame coherence
}

// SAPEndpoint is one end of an entity's bounding interval on the sweep axis.
type SAPEndpoint struct {
	Value    float32 // X coordinate
	EntityID uint32  // index into the entity slice passed to Update
	IsMin    bool    // true = interval start, false = interval end
}

// CollisionPair is two entity indices whose X intervals overlap;
// narrow phase still needs to confirm an actual circle-circle hit.
type CollisionPair struct {
	A, B uint32
}

// SAPEntity is implemented by anything the scene wants broad-phased:
// spaceships, asteroids, fragments, projectiles, shield bubbles.
type SAPEntity interface {
	GetBounds() (minX, maxX float32)
}

// NewSweepAndPrune preallocates buffers for up to maxEntities entities.
// The space adventure scene sizes this to comfortably hold a busy
// asteroid field plus every ship, projectile and fragment in flight.
func NewSweepAndPrune(maxEntities int) *SweepAndPrune {
	return &SweepAndPrune{
		endpoints:  make([]SAPEndpoint, 0, maxEntities*2),
		pairs:      make([]CollisionPair, 0, maxEntities),
		active:     make([]uint32, 0, maxEntities/4),
		useInsSort: true,
	}
}

// UpdateFromSlice rebuilds endpoints from entity positions sharing a
// single AABB half-width and returns the overlapping pairs found this
// frame. The returned slice is reused on the next call.
func (s *SweepAndPrune) UpdateFromSlice(positions [][2]float32, radius float32) []CollisionPair {
	s.pairs = s.pairs[:0]
	s.endpoints = s.endpoints[:0]

	for i, pos := range positions {
		x := pos[0]
		s.endpoints = append(s.endpoints,
			SAPEndpoint{x - radius, uint32(i), true},
			SAPEndpoint{x + radius, uint32(i), false},
		)
	}

	if s.useInsSort && len(s.endpoints) > 1 {
		insertionSortEndpoints(s.endpoints)
	} else {
		sort.Slice(s.endpoints, func(i, j int) bool {
			return s.endpoints[i].Value < s.endpoints[j].Value
		})
	}

	s.active = s.active[:0]

	for _, ep := range s.endpoints {
		if ep.IsMin {
			for _, other := range s.active {
				s.pairs = append(s.pairs, CollisionPair{ep.EntityID, other})
			}
			s.active = append(s.active, ep.EntityID)
		} else {
			for i, id := range s.active {
				if id == ep.EntityID {
					s.active[i] = s.active[len(s.active)-1]
					s.active = s.active[:len(s.active)-1]
					break
				}
			}
		}
	}

	return s.pairs
}

// Update rebuilds from entities implementing SAPEntity, each with its
// own bounding interval (ships and asteroids don't share a radius).
func (s *SweepAndPrune) Update(entities []SAPEntity) []CollisionPair {
	s.pairs = s.pairs[:0]
	s.endpoints = s.endpoints[:0]

	for i, e := range entities {
		minX, maxX := e.GetBounds()
		s.endpoints = append(s.endpoints,
			SAPEndpoint{minX, uint32(i), true},
			SAPEndpoint{maxX, uint32(i), false},
		)
	}

	if s.useInsSort && len(s.endpoints) > 1 {
		insertionSortEndpoints(s.endpoints)
	} else {
		sort.Slice(s.endpoints, func(i, j int) bool {
			return s.endpoints[i].Value < s.endpoints[j].Value
		})
	}

	s.active = s.active[:0]

	for _, ep := range s.endpoints {
		if ep.IsMin {
			for _, other := range s.active {
				s.pairs = append(s.pairs, CollisionPair{ep.EntityID, other})
			}
			s.active = append(s.active, ep.EntityID)
		} else {
			for i, id := range s.active {
				if id == ep.EntityID {
					s.active[i] = s.active[len(s.active)-1]
					s.active = s.active[:len(s.active)-1]
					break
				}
			}
		}
	}

	return s.pairs
}

// SetInsertionSort toggles the temporal-coherence insertion sort.
// Default true: the scene's entities rarely jump far between frames,
// so endpoints stay nearly sorted and insertion sort beats O(n log n).
// A scene with few entities or erratic movement can disable it to fall
// back to Go's standard sort.
func (s *SweepAndPrune) SetInsertionSort(enabled bool) {
	s.useInsSort = enabled
}

// insertionSortEndpoints sorts endpoints in place. O(n) when the list
// is already close to sorted, which holds frame to frame once ships
// and asteroids have settled into their usual drift speeds.
func insertionSortEndpoints(eps []SAPEndpoint) {
	for i := 1; i < len(eps); i++ {
		key := eps[i]
		j := i - 1
		for j >= 0 && eps[j].Value > key.Value {
			eps[j+1] = eps[j]
			j--
		}
		eps[j+1] = key
	}
}
