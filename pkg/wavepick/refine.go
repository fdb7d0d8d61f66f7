package wavepick

import "math/rand/v2"

// aisleProbeSamples bounds how many random unselected aisles the AISLE move
// samples per round, matching heuristic2.cpp's fixed sample of 16.
const aisleProbeSamples = 16

// Refine performs local search over a State shared by H2, H3, and H4: an
// ADD pass (free-fill any order that now fits without new aisles), a DROP
// pass (remove an order and re-prune, keeping the move if score improves),
// and an AISLE pass (probe a small random sample of unselected aisles and
// commit the best-scoring one if it helps). Each round applies at most one
// improving move; the loop stops once no move improves the score.
//
// Grounded on original_source/src/include/heuristic2.cpp's
// HeurCached::refinement, generalized to operate on any State regardless of
// which constructor produced it.
func Refine(s *State, aisleList []int, rng *rand.Rand) []int {
	_, _ = s.RepairSolution(&aisleList)
	aisleList = s.PruneAisles(aisleList)

	for {
		improved := false
		currentScore := s.Score()

		var unselected []int
		for o := 0; o < len(s.p.orders); o++ {
			if !s.IsOrderSelected(o) {
				unselected = append(unselected, o)
			}
		}

		for _, u := range unselected {
			if !s.CanFitOrder(u) {
				continue
			}
			s.AddOrder(u)
			if s.IsFeasible() && s.Score() > currentScore+1e-9 {
				improved = true
				break
			}
			s.RemoveOrder(u)
		}
		if improved {
			continue
		}

		selected := s.SelectedOrders()
		for _, orderIdx := range selected {
			s.RemoveOrder(orderIdx)
			before := append([]int(nil), aisleList...)
			aisleList = s.PruneAisles(aisleList)

			var newScore float64
			if n := s.SelectedAisleCount(); n > 0 {
				newScore = float64(s.currentTotalUnits) / float64(n)
			}

			if newScore > currentScore+1e-9 && s.currentTotalUnits >= int64(s.p.lb) {
				improved = true
				break
			}
			s.AddOrder(orderIdx)
			for _, a := range before {
				if !s.IsAisleSelected(a) {
					s.AddAisle(a)
				}
			}
			aisleList = before
		}
		if improved {
			continue
		}

		if len(s.p.aisles) > 0 {
			bestAisle := -1
			var bestNewItems int64 = -1
			for i := 0; i < aisleProbeSamples; i++ {
				candidate := rng.IntN(len(s.p.aisles))
				if s.IsAisleSelected(candidate) {
					continue
				}
				newItems := s.EstimateNewItemsForAisle(candidate)
				if newItems > bestNewItems {
					bestAisle, bestNewItems = candidate, newItems
				}
			}

			if bestAisle != -1 {
				newScore := float64(s.currentTotalUnits+bestNewItems) / float64(s.SelectedAisleCount()+1)
				if newScore > currentScore {
					s.AddAisleWithOrdersGreedy(bestAisle)
					aisleList = append(aisleList, bestAisle)
					improved = true
				}
			}
		}
		if improved {
			continue
		}

		break
	}

	return aisleList
}
