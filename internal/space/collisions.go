package space

import "math"

// checkBroadPhaseCollision rejects a pair whose axis-aligned bounds
// cannot possibly overlap in either their previous or current frame,
// on either axis. Ported directly from the source game's
// check_broad_phase_collision: a pair only survives if no axis
// separates them in both frames at once.
func checkBroadPhaseCollision(one, other *Entity) bool {
	s1Min, s1Max := one.previousRect()
	o1Min, o1Max := other.previousRect()
	s2Min, s2Max := one.rect()
	o2Min, o2Max := other.rect()

	if (s1Min.X > o1Max.X && s2Min.X > o2Max.X) ||
		(o1Min.X > s1Max.X && o2Min.X > s2Max.X) ||
		(s1Min.Y > o1Max.Y && s2Min.Y > o2Max.Y) ||
		(o1Min.Y > s1Max.Y && o2Min.Y > s2Max.Y) {
		return false
	}
	return true
}

// checkGranularPhaseCollision reports the first hitbox offset of one
// that lands on an offset of other's hitbox at their current
// positions.
func checkGranularPhaseCollision(one, other *Entity) (Offset, bool) {
	onePos := one.posOffset()
	otherPos := other.posOffset()
	for point := range one.HitBox.offsets {
		g := Offset{onePos.X + point.X - otherPos.X, onePos.Y + point.Y - otherPos.Y}
		if other.HitBox.contains(g) {
			return Offset{onePos.X + point.X, onePos.Y + point.Y}, true
		}
	}
	return Offset{}, false
}

// checkPhysicalCollision walks the discrete path one's hitbox traveled
// from its previous to its current position (a Bresenham-like sweep
// using slope = dy/dx when dx != 0, or a pure vertical sweep
// otherwise) and reports the first point along that path that lands
// inside other's hitbox. This catches fast entities that fully crossed
// each other within a single frame, at the cost of not checking
// rotation-only motion — adequate for axis-aligned sprites.
func checkPhysicalCollision(one, other *Entity) (Offset, bool) {
	onePos := one.posOffset()
	onePrev := one.prevPosOffset()
	if onePrev == onePos {
		return Offset{}, false
	}
	otherPos := other.posOffset()

	path := Offset{onePrev.X - onePos.X, onePrev.Y - onePos.Y}

	check := func(dx, dy int16) (Offset, bool) {
		for point := range one.HitBox.offsets {
			g := Offset{onePos.X + point.X + dx - otherPos.X, onePos.Y + point.Y + dy - otherPos.Y}
			if other.HitBox.contains(g) {
				return Offset{onePos.X + point.X + dx, onePos.Y + point.Y + dy}, true
			}
		}
		return Offset{}, false
	}

	if path.X != 0 {
		slope := float64(path.Y) / float64(path.X)
		if path.X > 0 {
			for x := int16(0); x <= path.X; x++ {
				y := int16(math.Round(slope * float64(x)))
				if p, ok := check(x, y); ok {
					return p, true
				}
			}
		} else {
			for x := path.X; x <= 0; x++ {
				y := int16(math.Round(slope * float64(x)))
				if p, ok := check(x, y); ok {
					return p, true
				}
			}
		}
	} else if path.Y > 0 {
		for y := int16(0); y <= path.Y; y++ {
			if p, ok := check(path.X, y); ok {
				return p, true
			}
		}
	} else {
		for y := path.Y; y <= 0; y++ {
			if p, ok := check(path.X, y); ok {
				return p, true
			}
		}
	}
	return Offset{}, false
}

// areColliding runs the three-phase pipeline (broad, granular,
// physical both ways) and returns the first collision point found.
func areColliding(one, other *Entity) (Offset, bool) {
	if one.Collider == ColliderNone || other.Collider == ColliderNone {
		return Offset{}, false
	}
	if one.Layer != other.Layer {
		return Offset{}, false
	}
	if !checkBroadPhaseCollision(one, other) {
		return Offset{}, false
	}
	if p, ok := checkGranularPhaseCollision(one, other); ok {
		return p, true
	}
	if p, ok := checkPhysicalCollision(one, other); ok {
		return p, true
	}
	if p, ok := checkPhysicalCollision(other, one); ok {
		return p, true
	}
	return Offset{}, false
}
