package wavepick

import "fmt"

// Solution is the value-type output of the search: the selected order and
// aisle index sets, per spec.md §3.
type Solution struct {
	Orders []int
	Aisles []int
}

// TotalUnits returns the sum of order totals for this solution under p's
// caches.
func (sol Solution) TotalUnits(c *Caches) int64 {
	var total int64
	for _, o := range sol.Orders {
		total += c.orderTotalUnits[o]
	}
	return total
}

// Score returns totalUnits / |aisles|, or 0 if aisles is empty.
func (sol Solution) Score(c *Caches) float64 {
	if len(sol.Aisles) == 0 {
		return 0
	}
	return float64(sol.TotalUnits(c)) / float64(len(sol.Aisles))
}

// FromState extracts a Solution from a State's current selection bitmaps.
func FromState(s *State) Solution {
	return Solution{Orders: s.SelectedOrders(), Aisles: s.SelectedAisles()}
}

// Verify independently recomputes feasibility from the Problem alone,
// without relying on any incrementally-maintained State. This is spec.md
// §4.6's feasibility verifier, used to gate acceptance into the Driver's
// best slot. Grounded on original_source/src/main.cpp's recomputeSolution.
func Verify(p *Problem, sol Solution) error {
	balance := make([]int64, p.itemCount)
	for _, a := range sol.Aisles {
		if a < 0 || a >= len(p.aisles) {
			return fmt.Errorf("wavepick: solution references out-of-range aisle %d", a)
		}
		for _, l := range p.aisles[a] {
			balance[l.Item] += int64(l.Qty)
		}
	}

	var totalUnits int64
	for _, o := range sol.Orders {
		if o < 0 || o >= len(p.orders) {
			return fmt.Errorf("wavepick: solution references out-of-range order %d", o)
		}
		for _, l := range p.orders[o] {
			balance[l.Item] -= int64(l.Qty)
			totalUnits += int64(l.Qty)
		}
	}

	for item, bal := range balance {
		if bal < 0 {
			return fmt.Errorf("%w: item %d short by %d units", ErrInfeasibleSolution, item, -bal)
		}
	}
	if totalUnits < int64(p.lb) || totalUnits > int64(p.ub) {
		return fmt.Errorf("%w: total units %d outside [%d, %d]", ErrInfeasibleSolution, totalUnits, p.lb, p.ub)
	}
	return nil
}
