package match

import (
	"sort"

	"github.com/corsair-league/armada/internal/model"
)

// Lineup is the outcome of best-lineup assignment: five starters,
// index-aligned to Position, and an ordered bench.
type Lineup struct {
	Starters [5]model.PlayerID
	Bench    []model.PlayerID
}

// maxCandidatesForPermutation bounds how many top-rated players are
// considered for full 5-permutation search; beyond this the search
// space (n!/(n-5)!) grows too fast for a per-possession recomputation.
const maxCandidatesForPermutation = model.MaxCrewSize

// BestLineup chooses the 5-player-to-position assignment that
// maximises total PositionRating, by enumerating every 5-permutation
// of the top maxCandidatesForPermutation players by composite rating.
// Remaining players form the bench, sorted by tiredness-weighted
// rating at their best position.
func BestLineup(players []*model.Player) Lineup {
	if len(players) <= 5 {
		return trivialLineup(players)
	}

	sorted := append([]*model.Player(nil), players...)
	sort.Slice(sorted, func(i, j int) bool {
		return compositeRating(sorted[i]) > compositeRating(sorted[j])
	})
	if len(sorted) > maxCandidatesForPermutation {
		sorted = sorted[:maxCandidatesForPermutation]
	}

	best := Lineup{}
	bestScore := -1.0
	permuteFive(sorted, func(assignment [5]*model.Player) {
		score := 0.0
		for i, p := range assignment {
			score += PositionRating(p, Position(i))
		}
		if score > bestScore {
			bestScore = score
			for i, p := range assignment {
				best.Starters[i] = p.ID
			}
		}
	})

	starterSet := map[model.PlayerID]bool{}
	for _, id := range best.Starters {
		starterSet[id] = true
	}
	var bench []*model.Player
	for _, p := range players {
		if !starterSet[p.ID] {
			bench = append(bench, p)
		}
	}
	sort.Slice(bench, func(i, j int) bool {
		return bestPositionRating(bench[i]) > bestPositionRating(bench[j])
	})
	for _, p := range bench {
		best.Bench = append(best.Bench, p.ID)
	}
	return best
}

func trivialLineup(players []*model.Player) Lineup {
	var l Lineup
	for i, p := range players {
		if i >= 5 {
			break
		}
		l.Starters[i] = p.ID
	}
	return l
}

func compositeRating(p *model.Player) float64 {
	return p.AverageSkill() * (model.MaxTiredness - p.Tiredness/2) / model.MaxTiredness
}

func bestPositionRating(p *model.Player) float64 {
	best := 0.0
	for pos := PositionPointGuard; pos <= PositionCenter; pos++ {
		if r := TirednessWeightedRating(p, pos); r > best {
			best = r
		}
	}
	return best
}

// permuteFive calls visit once for every ordered 5-tuple drawn without
// repetition from candidates (a 5-permutation), in the reference
// approach's brute-force style.
func permuteFive(candidates []*model.Player, visit func([5]*model.Player)) {
	n := len(candidates)
	if n < 5 {
		return
	}
	used := make([]bool, n)
	var assignment [5]*model.Player

	var recurse func(depth int)
	recurse = func(depth int) {
		if depth == 5 {
			visit(assignment)
			return
		}
		for i := 0; i < n; i++ {
			if used[i] {
				continue
			}
			used[i] = true
			assignment[depth] = candidates[i]
			recurse(depth + 1)
			used[i] = false
		}
	}
	recurse(0)
}
