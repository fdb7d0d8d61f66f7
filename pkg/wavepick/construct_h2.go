package wavepick

import (
	"math"
	"math/rand/v2"
)

const alphaH2 = 0.5

// ConstructH2 builds a feasible State using cache-backed GRASP: each
// candidate order's score is an adaptive log-ratio of running units to
// running aisles, estimating new aisles needed via the top cached provider
// of each short item. Deficits introduced by a committed order are closed
// immediately via State.RepairSolution; if repair cannot close them the
// order is rolled back.
//
// Grounded on original_source/src/include/heuristic2.cpp's HeurCached::construction.
func ConstructH2(s *State, c *Caches, rng *rand.Rand) []int {
	p := s.p

	candidates := make([]int, len(p.orders))
	for i := range candidates {
		candidates[i] = i
	}

	var aisleList []int

	for len(candidates) > 0 {
		type scored struct {
			score float64
			order int
		}
		var rcl []scored
		minScore, maxScore := math.Inf(1), math.Inf(-1)

		for _, orderIdx := range candidates {
			if s.currentTotalUnits+c.orderTotalUnits[orderIdx] > int64(p.ub) {
				continue
			}

			estimatedNewAisles := 0
			for _, l := range p.orders[orderIdx] {
				if s.itemBalance[l.Item] < int64(l.Qty) {
					covered := false
					if tops := c.itemToAisles[l.Item]; len(tops) > 0 {
						if s.aisleSelected.Contains(uint32(tops[0].Idx)) {
							covered = true
						}
					}
					if !covered {
						estimatedNewAisles++
					}
				}
			}

			score := math.Log(float64(s.currentTotalUnits+c.orderTotalUnits[orderIdx])) -
				math.Log(float64(s.SelectedAisleCount()+estimatedNewAisles+1))

			rcl = append(rcl, scored{score: score, order: orderIdx})
			if score < minScore {
				minScore = score
			}
			if score > maxScore {
				maxScore = score
			}
		}

		if len(rcl) == 0 {
			break
		}

		threshold := maxScore - alphaH2*(maxScore-minScore)
		var final []int
		for _, sc := range rcl {
			if sc.score >= threshold {
				final = append(final, sc.order)
			}
		}
		if len(final) == 0 {
			final = append(final, rcl[0].order)
		}

		pick := final[rng.IntN(len(final))]
		s.AddOrder(pick)

		if _, err := s.RepairSolution(&aisleList); err != nil {
			s.RemoveOrder(pick)
		}

		for i, v := range candidates {
			if v == pick {
				candidates = append(candidates[:i], candidates[i+1:]...)
				break
			}
		}
	}

	return s.PruneAisles(aisleList)
}
