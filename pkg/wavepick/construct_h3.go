package wavepick

import (
	"math"
	"math/rand/v2"
)

const (
	alphaH3     = 0.5
	sampleSize3 = 80
)

// ConstructH3 builds a feasible solution using sampled GRASP: rather than
// scoring every remaining order each round, it scores a fixed-size random
// sample (sampleSize3), bounding each round's work regardless of how many
// orders remain. Candidates are held in a swap-and-pop pool so removal is
// O(1) and needs no search.
//
// Grounded on original_source/src/include/heuristic3.cpp's Heur3::construction.
func ConstructH3(p *Problem, c *Caches, rng *rand.Rand) Solution {
	s := NewState(p, c)

	candidates := make([]int, len(p.orders))
	for i := range candidates {
		candidates[i] = i
	}
	validCount := len(candidates)

	var orders []int
	var aisleList []int

	for validCount > 0 {
		type sample struct {
			score float64
			pos   int
		}
		var sampleRCL []sample
		minScore, maxScore := math.Inf(1), math.Inf(-1)

		attempts := sampleSize3
		if validCount < attempts {
			attempts = validCount
		}

		for k := 0; k < attempts; k++ {
			randPos := rng.IntN(validCount)
			orderIdx := candidates[randPos]

			if s.currentTotalUnits+c.orderTotalUnits[orderIdx] > int64(p.ub) {
				sampleRCL = append(sampleRCL, sample{score: -1.0, pos: randPos})
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
				math.Log(float64(len(aisleList)+estimatedNewAisles+1))

			sampleRCL = append(sampleRCL, sample{score: score, pos: randPos})
			if score > maxScore {
				maxScore = score
			}
			if score < minScore && score > -0.5 {
				minScore = score
			}
		}

		var validPositions []int
		threshold := maxScore - alphaH3*(maxScore-minScore)
		for _, sm := range sampleRCL {
			if sm.score < -0.5 {
				continue
			}
			if sm.score >= threshold {
				validPositions = append(validPositions, sm.pos)
			}
		}

		var chosenPos int
		tryToAdd := false
		if len(validPositions) == 0 {
			if len(sampleRCL) > 0 {
				chosenPos = sampleRCL[0].pos
			} else {
				chosenPos = rng.IntN(validCount)
			}
		} else {
			chosenPos = validPositions[rng.IntN(len(validPositions))]
			tryToAdd = true
		}

		if tryToAdd {
			orderIdx := candidates[chosenPos]
			s.AddOrder(orderIdx)
			if _, err := s.RepairSolution(&aisleList); err == nil {
				orders = append(orders, orderIdx)
			} else {
				s.RemoveOrder(orderIdx)
			}
		}

		last := validCount - 1
		candidates[chosenPos], candidates[last] = candidates[last], candidates[chosenPos]
		validCount--
	}

	aisleList = s.PruneAisles(aisleList)
	return Solution{Orders: orders, Aisles: aisleList}
}
