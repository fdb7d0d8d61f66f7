package wavepick

import (
	"math"
	"math/rand/v2"
)

const (
	alphaH4     = 0.5
	sampleSize4 = 80
)

// ConstructH4 builds a State aisle-first: each round samples a fixed-size
// pool of unselected aisles, scores each by the log of units it would
// newly cover, and adds one aisle picked uniformly from the restricted
// candidate list of near-best sampled aisles (alphaH4) together with every
// order it newly makes fit (State.AddAisleWithOrdersGreedy).
// Stops as soon as the State is feasible or candidates are exhausted.
//
// Grounded on original_source/src/include/heuristic4.cpp's Heur4::construction.
func ConstructH4(s *State, rng *rand.Rand) {
	p := s.p

	aisleCandidates := make([]int, len(p.aisles))
	for i := range aisleCandidates {
		aisleCandidates[i] = i
	}

	for len(aisleCandidates) > 0 {
		if s.IsFeasible() {
			break
		}

		type sample struct {
			score float64
			pos   int
		}
		var sampleRCL []sample
		minScore, maxScore := math.Inf(1), math.Inf(-1)

		attempts := sampleSize4
		if len(aisleCandidates) < attempts {
			attempts = len(aisleCandidates)
		}

		for k := 0; k < attempts; k++ {
			randPos := rng.IntN(len(aisleCandidates))
			aisleIdx := aisleCandidates[randPos]

			estimatedNewItems := s.EstimateNewItemsForAisle(aisleIdx)
			score := math.Log(float64(s.currentTotalUnits + estimatedNewItems + 1))

			sampleRCL = append(sampleRCL, sample{score: score, pos: randPos})
			if score > maxScore {
				maxScore = score
			}
			if score < minScore && score > -0.5 {
				minScore = score
			}
		}

		var validPositions []int
		threshold := maxScore - alphaH4*(maxScore-minScore)
		for _, sm := range sampleRCL {
			if sm.score < -0.5 {
				continue
			}
			if sm.score >= threshold {
				validPositions = append(validPositions, sm.pos)
			}
		}

		var chosenPos int
		if len(validPositions) == 0 {
			if len(sampleRCL) > 0 {
				chosenPos = sampleRCL[0].pos
			} else {
				chosenPos = rng.IntN(len(aisleCandidates))
			}
		} else {
			chosenPos = validPositions[rng.IntN(len(validPositions))]
			aisleIdx := aisleCandidates[chosenPos]
			s.AddAisleWithOrdersGreedy(aisleIdx)
		}

		last := len(aisleCandidates) - 1
		aisleCandidates[chosenPos], aisleCandidates[last] = aisleCandidates[last], aisleCandidates[chosenPos]
		aisleCandidates = aisleCandidates[:last]
	}
}
