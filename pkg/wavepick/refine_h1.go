package wavepick

import "sort"

// recomputeAisles rebuilds, from scratch, the aisle set that covers orders
// under p: it aggregates total per-item demand across orders, then walks
// aisles in index order taking stock to cover that demand, recording every
// aisle it draws from. Used by RefineH1 in place of an incrementally
// maintained State, per spec.md's design note that H1's refiner is
// self-contained and does not keep a State.
//
// Grounded on original_source/src/main.cpp's recomputeSolution.
func recomputeAisles(p *Problem, orders []int) (aisles []int, feasible bool) {
	if len(orders) == 0 {
		return nil, p.lb <= 0
	}

	var totalUnits int64
	for _, o := range orders {
		for _, l := range p.orders[o] {
			totalUnits += int64(l.Qty)
		}
	}
	if totalUnits < int64(p.lb) || totalUnits > int64(p.ub) {
		return nil, false
	}

	localStock := make([]map[int]int, len(p.aisles))
	for a, lines := range p.aisles {
		m := make(map[int]int, len(lines))
		for _, l := range lines {
			m[l.Item] += l.Qty
		}
		localStock[a] = m
	}

	totalNeeded := make(map[int]int)
	for _, o := range orders {
		for _, l := range p.orders[o] {
			totalNeeded[l.Item] += l.Qty
		}
	}
	items := make([]int, 0, len(totalNeeded))
	for item := range totalNeeded {
		items = append(items, item)
	}
	sort.Ints(items)

	visited := make(map[int]bool)
	for _, item := range items {
		need := totalNeeded[item]
		for a := 0; a < len(p.aisles) && need > 0; a++ {
			if stock := localStock[a][item]; stock > 0 {
				take := min(need, stock)
				localStock[a][item] -= take
				need -= take
				visited[a] = true
			}
		}
		if need > 0 {
			return nil, false
		}
	}

	aisles = make([]int, 0, len(visited))
	for a := range visited {
		aisles = append(aisles, a)
	}
	sort.Ints(aisles)
	return aisles, true
}

// RefineH1 runs ADD / REMOVE / SWAP neighborhood search directly over whole
// order sets, recomputing feasibility and aisle coverage from scratch after
// every tentative change via recomputeAisles, rather than through an
// incrementally-maintained State.
//
// Grounded on original_source/src/main.cpp's refine.
func RefineH1(p *Problem, c *Caches, sol Solution) Solution {
	temp := Solution{
		Orders: append([]int(nil), sol.Orders...),
		Aisles: append([]int(nil), sol.Aisles...),
	}

	improved := true
	for improved {
		improved = false
		currentObj := temp.Score(c)

		in := make(map[int]bool, len(temp.Orders))
		for _, o := range temp.Orders {
			in[o] = true
		}
		var out []int
		for j := 0; j < len(p.orders); j++ {
			if !in[j] {
				out = append(out, j)
			}
		}

		// ADD
		for _, add := range out {
			candidate := append(append([]int(nil), temp.Orders...), add)
			if aisles, ok := recomputeAisles(p, candidate); ok {
				neighbor := Solution{Orders: candidate, Aisles: aisles}
				if neighbor.Score(c) > currentObj+1e-9 {
					temp = neighbor
					improved = true
					break
				}
			}
		}
		if improved {
			continue
		}

		// REMOVE
		for i := range temp.Orders {
			candidate := make([]int, 0, len(temp.Orders)-1)
			candidate = append(candidate, temp.Orders[:i]...)
			candidate = append(candidate, temp.Orders[i+1:]...)
			if aisles, ok := recomputeAisles(p, candidate); ok {
				neighbor := Solution{Orders: candidate, Aisles: aisles}
				if neighbor.Score(c) > currentObj+1e-9 {
					temp = neighbor
					improved = true
					break
				}
			}
		}
		if improved {
			continue
		}

		// SWAP
		current := append([]int(nil), temp.Orders...)
	swapLoop:
		for i, removeIdx := range current {
			for _, addIdx := range out {
				if addIdx == removeIdx {
					continue
				}
				candidate := append([]int(nil), current...)
				candidate[i] = addIdx
				if aisles, ok := recomputeAisles(p, candidate); ok {
					neighbor := Solution{Orders: candidate, Aisles: aisles}
					if neighbor.Score(c) > currentObj+1e-9 {
						temp = neighbor
						improved = true
						break swapLoop
					}
				}
			}
		}
	}

	return temp
}
