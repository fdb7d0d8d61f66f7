package wavepick

import (
	"github.com/RoaringBitmap/roaring/v2"
)

// repairTopK bounds how many cached aisle candidates RepairSolution
// considers per deficit item, matching caches.hpp's repairSolution.
const repairTopK = 5

type repairFailure struct{}

func (repairFailure) Error() string { return "wavepick: repair could not eliminate deficit" }

// ErrRepairFailed is returned by State.RepairSolution when no aisle
// selection can eliminate the remaining deficits.
var ErrRepairFailed error = repairFailure{}

// State is the mutable, per-worker feasibility ledger described in
// spec.md §4.2. It tracks which orders and aisles are selected, the
// per-item supply-minus-demand balance, the set of items in deficit, and
// the running total of picked units.
//
// Selection is held in roaring.Bitmap fields; SelectedOrders and
// SelectedAisles derive sorted lists from them via ToArray. RepairSolution
// and PruneAisles also take a caller-held aisle list, which they update in
// step with the bitmap; the constructors and Refine pass that list along
// rather than re-deriving it. A State is grounded on
// original_source/src/include/caches.hpp's struct State, generalized to use
// roaring bitmaps instead of []bool/unordered_set.
type State struct {
	p *Problem
	c *Caches

	orderSelected *roaring.Bitmap
	aisleSelected *roaring.Bitmap
	deficitItems  *roaring.Bitmap

	itemBalance       []int64
	currentTotalUnits int64
}

// NewState returns an empty, feasible-if-lb-is-zero State over p and c.
func NewState(p *Problem, c *Caches) *State {
	return &State{
		p:             p,
		c:             c,
		orderSelected: roaring.NewBitmap(),
		aisleSelected: roaring.NewBitmap(),
		deficitItems:  roaring.NewBitmap(),
		itemBalance:   make([]int64, p.itemCount),
	}
}

// CurrentTotalUnits returns the running total of units across selected orders.
func (s *State) CurrentTotalUnits() int64 { return s.currentTotalUnits }

// IsOrderSelected reports whether order o is currently selected.
func (s *State) IsOrderSelected(o int) bool { return s.orderSelected.Contains(uint32(o)) }

// IsAisleSelected reports whether aisle a is currently selected.
func (s *State) IsAisleSelected(a int) bool { return s.aisleSelected.Contains(uint32(a)) }

// SelectedOrders returns the sorted list of selected order indices, derived
// from the selection bitmap.
func (s *State) SelectedOrders() []int { return toIntSlice(s.orderSelected) }

// SelectedAisles returns the sorted list of selected aisle indices, derived
// from the selection bitmap.
func (s *State) SelectedAisles() []int { return toIntSlice(s.aisleSelected) }

// SelectedAisleCount returns the number of selected aisles.
func (s *State) SelectedAisleCount() int { return int(s.aisleSelected.GetCardinality()) }

// SelectedOrderCount returns the number of selected orders.
func (s *State) SelectedOrderCount() int { return int(s.orderSelected.GetCardinality()) }

// ItemBalance returns (stock in selected aisles) - (demand of selected
// orders) for item i.
func (s *State) ItemBalance(i int) int64 { return s.itemBalance[i] }

// HasDeficit reports whether any item currently has negative balance.
func (s *State) HasDeficit() bool { return !s.deficitItems.IsEmpty() }

// IsFeasible reports whether the State satisfies spec.md §3's feasibility
// invariant: no deficit items, and lb <= currentTotalUnits <= ub.
func (s *State) IsFeasible() bool {
	return s.deficitItems.IsEmpty() &&
		s.currentTotalUnits >= int64(s.p.lb) &&
		s.currentTotalUnits <= int64(s.p.ub)
}

// Score returns currentTotalUnits / |selectedAisles|, or 0 if no aisle is
// selected, matching spec.md's GLOSSARY definition of Score.
func (s *State) Score() float64 {
	n := s.aisleSelected.GetCardinality()
	if n == 0 {
		return 0
	}
	return float64(s.currentTotalUnits) / float64(n)
}

// AddAisle selects aisle a, crediting its stock to itemBalance and clearing
// any item whose balance transitions from negative to non-negative. O(row
// size). No-op if a is already selected.
func (s *State) AddAisle(a int) {
	if s.aisleSelected.Contains(uint32(a)) {
		return
	}
	s.aisleSelected.Add(uint32(a))
	for _, l := range s.p.aisles[a] {
		wasDeficit := s.itemBalance[l.Item] < 0
		s.itemBalance[l.Item] += int64(l.Qty)
		if wasDeficit && s.itemBalance[l.Item] >= 0 {
			s.deficitItems.Remove(uint32(l.Item))
		}
	}
}

// RemoveAisle deselects aisle a, the exact inverse of AddAisle. O(row size).
// No-op if a is not selected.
func (s *State) RemoveAisle(a int) {
	if !s.aisleSelected.Contains(uint32(a)) {
		return
	}
	s.aisleSelected.Remove(uint32(a))
	for _, l := range s.p.aisles[a] {
		wasOK := s.itemBalance[l.Item] >= 0
		s.itemBalance[l.Item] -= int64(l.Qty)
		if wasOK && s.itemBalance[l.Item] < 0 {
			s.deficitItems.Add(uint32(l.Item))
		}
	}
}

// AddOrder selects order o, debiting its demand from itemBalance and
// accumulating its units into currentTotalUnits. O(row size). No-op if o is
// already selected.
func (s *State) AddOrder(o int) {
	if s.orderSelected.Contains(uint32(o)) {
		return
	}
	s.orderSelected.Add(uint32(o))
	s.currentTotalUnits += s.c.orderTotalUnits[o]
	for _, l := range s.p.orders[o] {
		wasOK := s.itemBalance[l.Item] >= 0
		s.itemBalance[l.Item] -= int64(l.Qty)
		if wasOK && s.itemBalance[l.Item] < 0 {
			s.deficitItems.Add(uint32(l.Item))
		}
	}
}

// RemoveOrder deselects order o, the exact inverse of AddOrder. O(row size).
// No-op if o is not selected.
func (s *State) RemoveOrder(o int) {
	if !s.orderSelected.Contains(uint32(o)) {
		return
	}
	s.orderSelected.Remove(uint32(o))
	s.currentTotalUnits -= s.c.orderTotalUnits[o]
	for _, l := range s.p.orders[o] {
		wasDeficit := s.itemBalance[l.Item] < 0
		s.itemBalance[l.Item] += int64(l.Qty)
		if wasDeficit && s.itemBalance[l.Item] >= 0 {
			s.deficitItems.Remove(uint32(l.Item))
		}
	}
}

// CanFitOrder reports whether order o can be added without exceeding ub and
// without introducing any deficit: every item it demands must already have
// non-negative surplus covering it. O(row size).
func (s *State) CanFitOrder(o int) bool {
	if s.currentTotalUnits+s.c.orderTotalUnits[o] > int64(s.p.ub) {
		return false
	}
	for _, l := range s.p.orders[o] {
		if s.itemBalance[l.Item] < int64(l.Qty) {
			return false
		}
	}
	return true
}

// EstimateNewItemsForAisle returns, for each item stocked by aisle a, the
// lesser of its stock quantity and the item's current unmet demand, summed
// over the aisle. Used to score candidate aisles without committing to them.
func (s *State) EstimateNewItemsForAisle(a int) int64 {
	var total int64
	for _, l := range s.p.aisles[a] {
		unmet := -s.itemBalance[l.Item]
		if unmet <= 0 {
			continue
		}
		take := int64(l.Qty)
		if unmet < take {
			take = unmet
		}
		total += take
	}
	return total
}

// PruneAisles removes from aisleList (and deselects) every aisle whose
// removal keeps every item it touches non-negative, repeating passes until
// none can be removed. aisleList is mutated via swap-pop and its new
// (possibly shorter) slice is returned.
func (s *State) PruneAisles(aisleList []int) []int {
	for {
		removedAny := false
		for i := 0; i < len(aisleList); {
			a := aisleList[i]
			canRemove := true
			for _, l := range s.p.aisles[a] {
				if s.itemBalance[l.Item]-int64(l.Qty) < 0 {
					canRemove = false
					break
				}
			}
			if canRemove {
				s.RemoveAisle(a)
				last := len(aisleList) - 1
				aisleList[i], aisleList[last] = aisleList[last], aisleList[i]
				aisleList = aisleList[:last]
				removedAny = true
				continue
			}
			i++
		}
		if !removedAny {
			break
		}
	}
	return aisleList
}

// PruneOrders drops selected orders demanding deficit items, in cache order,
// until every deficit item's balance is non-negative. This is used to force
// feasibility back when aisles alone cannot be grown (e.g. ub pressure).
func (s *State) PruneOrders() {
	deficit := s.deficitItems.ToArray()
	for _, item32 := range deficit {
		item := int(item32)
		for s.itemBalance[item] < 0 {
			removed := false
			for _, oi := range s.c.itemToOrders[item] {
				if s.orderSelected.Contains(uint32(oi.Idx)) {
					s.RemoveOrder(oi.Idx)
					removed = true
					break
				}
			}
			if !removed {
				break
			}
		}
	}
}

// RepairSolution greedily adds aisles until no item is in deficit. At each
// step it scores every unselected aisle among the top repairTopK cached
// providers of each deficit item, crediting it with min(qty_in_aisle,
// deficit_magnitude), then adds the highest-scoring aisle (ties: lowest
// index). Appends added aisles to aisleList and returns the count added, or
// ErrRepairFailed if no candidate exists while a deficit remains.
func (s *State) RepairSolution(aisleList *[]int) (int, error) {
	added := 0
	for !s.deficitItems.IsEmpty() {
		scores := make(map[int]int64)
		for _, item32 := range s.deficitItems.ToArray() {
			item := int(item32)
			needed := -s.itemBalance[item]
			checks := 0
			for _, qi := range s.c.itemToAisles[item] {
				if s.aisleSelected.Contains(uint32(qi.Idx)) {
					continue
				}
				useful := int64(qi.Qty)
				if needed < useful {
					useful = needed
				}
				scores[qi.Idx] += useful
				checks++
				if checks >= repairTopK {
					break
				}
			}
		}
		if len(scores) == 0 {
			return added, ErrRepairFailed
		}
		best, bestScore := -1, int64(-1)
		for a, sc := range scores {
			if sc > bestScore || (sc == bestScore && a < best) {
				best, bestScore = a, sc
			}
		}
		s.AddAisle(best)
		*aisleList = append(*aisleList, best)
		added++
	}
	return added, nil
}

// AddAisleWithOrdersGreedy adds aisle a, then repeatedly adds any unselected
// order that now satisfies CanFitOrder (a "free fill"), until none remains.
func (s *State) AddAisleWithOrdersGreedy(a int) {
	s.AddAisle(a)
	for {
		addedAny := false
		for o := 0; o < len(s.p.orders); o++ {
			if s.orderSelected.Contains(uint32(o)) {
				continue
			}
			if s.CanFitOrder(o) {
				s.AddOrder(o)
				addedAny = true
			}
		}
		if !addedAny {
			break
		}
	}
}

func toIntSlice(bm *roaring.Bitmap) []int {
	arr := bm.ToArray()
	out := make([]int, len(arr))
	for i, v := range arr {
		out[i] = int(v)
	}
	return out
}
