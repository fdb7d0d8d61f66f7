package wavepick

import "math/rand/v2"

const alphaH1 = 0.3

// ConstructH1 builds a feasible solution using order-centric GRASP without
// any precomputed caches: remaining aisle stock is tracked in a local
// per-aisle map, rebuilt fresh for each run.
//
// Grounded line-for-line on original_source/src/main.cpp's construction().
func ConstructH1(p *Problem, rng *rand.Rand) Solution {
	candidates := make([]int, len(p.orders))
	for i := range candidates {
		candidates[i] = i
	}

	remainingStock := make([]map[int]int, len(p.aisles))
	for a, lines := range p.aisles {
		m := make(map[int]int, len(lines))
		for _, l := range lines {
			m[l.Item] += l.Qty
		}
		remainingStock[a] = m
	}

	var sol Solution
	currentAisles := make(map[int]bool)
	var currentTotalUnits int64

	for len(candidates) > 0 {
		type scored struct {
			cost  float64
			order int
		}
		var costList []scored
		var invalid []int
		bestCost, worstCost := -1e18, 1e18

		for ci, orderIdx := range candidates {
			lines := p.orders[orderIdx]
			var unitsInCandidate int64
			itemsNeeded := make(map[int]int, len(lines))
			for _, l := range lines {
				unitsInCandidate += int64(l.Qty)
				itemsNeeded[l.Item] += l.Qty
			}

			if currentTotalUnits+unitsInCandidate > int64(p.ub) {
				invalid = append(invalid, ci)
				continue
			}

			feasible := true
			for item, qty := range itemsNeeded {
				var totalAvailable int
				for a := range p.aisles {
					totalAvailable += remainingStock[a][item]
				}
				if totalAvailable < qty {
					feasible = false
					break
				}
			}
			if !feasible {
				invalid = append(invalid, ci)
				continue
			}

			newAislesNeeded := make(map[int]bool)
			for _, l := range lines {
				for a := range p.aisles {
					if remainingStock[a][l.Item] > 0 && !currentAisles[a] {
						newAislesNeeded[a] = true
					}
				}
			}

			cost := float64(unitsInCandidate) / (1.0 + float64(len(newAislesNeeded)))
			costList = append(costList, scored{cost: cost, order: orderIdx})
			if cost > bestCost {
				bestCost = cost
			}
			if cost < worstCost {
				worstCost = cost
			}
		}

		candidates = removeIndices(candidates, invalid)
		if len(candidates) == 0 || len(costList) == 0 {
			break
		}

		limit := bestCost - alphaH1*(bestCost-worstCost)
		var rcl []int
		for _, cs := range costList {
			if cs.cost >= limit {
				rcl = append(rcl, cs.order)
			}
		}
		if len(rcl) == 0 {
			maxCost, bestOrder := -1e18, -1
			for _, cs := range costList {
				if cs.cost > maxCost {
					maxCost, bestOrder = cs.cost, cs.order
				}
			}
			if bestOrder != -1 {
				rcl = append(rcl, bestOrder)
			}
		}
		if len(rcl) == 0 {
			break
		}

		chosen := rcl[rng.IntN(len(rcl))]
		sol.Orders = append(sol.Orders, chosen)

		var unitsAdded int64
		for _, l := range p.orders[chosen] {
			item, need := l.Item, l.Qty
			for a := range sol.Aisles {
				if need == 0 {
					break
				}
				aisleIdx := sol.Aisles[a]
				if remainingStock[aisleIdx][item] > 0 {
					take := min(need, remainingStock[aisleIdx][item])
					remainingStock[aisleIdx][item] -= take
					need -= take
				}
			}
			if need > 0 {
				for a := range p.aisles {
					if need == 0 {
						break
					}
					if currentAisles[a] {
						continue
					}
					if remainingStock[a][item] > 0 {
						take := min(need, remainingStock[a][item])
						remainingStock[a][item] -= take
						need -= take
						sol.Aisles = append(sol.Aisles, a)
						currentAisles[a] = true
					}
				}
			}
			unitsAdded += int64(l.Qty - need)
		}
		currentTotalUnits += unitsAdded

		for ci, c := range candidates {
			if c == chosen {
				candidates = append(candidates[:ci], candidates[ci+1:]...)
				break
			}
		}
	}

	return sol
}

func removeIndices(s []int, indicesDesc []int) []int {
	// indicesDesc need not be sorted; sort descending so erases don't shift
	// earlier indices we still need to remove.
	idx := append([]int(nil), indicesDesc...)
	for i := 0; i < len(idx); i++ {
		for j := i + 1; j < len(idx); j++ {
			if idx[j] > idx[i] {
				idx[i], idx[j] = idx[j], idx[i]
			}
		}
	}
	for _, pos := range idx {
		if pos < len(s) {
			s = append(s[:pos], s[pos+1:]...)
		}
	}
	return s
}
