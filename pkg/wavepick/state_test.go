package wavepick

import "testing"

func newTestState(t *testing.T) (*Problem, *Caches, *State) {
	t.Helper()
	b := NewBuilder(3)
	b.AddOrder([]Line{{Item: 0, Qty: 2}})             // order 0
	b.AddOrder([]Line{{Item: 1, Qty: 1}, {Item: 2, Qty: 3}}) // order 1
	b.AddOrder([]Line{{Item: 0, Qty: 10}})            // order 2 (too big for most aisles)
	b.AddAisle([]Line{{Item: 0, Qty: 5}, {Item: 1, Qty: 2}}) // aisle 0
	b.AddAisle([]Line{{Item: 2, Qty: 4}})             // aisle 1
	b.SetBounds(0, 100)
	p, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	c := BuildCaches(p)
	return p, c, NewState(p, c)
}

func TestStateAddRemoveAisleIsIdentity(t *testing.T) {
	p, _, s := newTestState(t)
	_ = p
	before := snapshotBalance(s)

	s.AddAisle(0)
	s.RemoveAisle(0)

	after := snapshotBalance(s)
	if !sliceEqual64(before, after) {
		t.Fatalf("add/remove aisle not an identity: before=%v after=%v", before, after)
	}
	if s.HasDeficit() {
		t.Error("empty state should have no deficit")
	}
	if s.SelectedAisleCount() != 0 {
		t.Error("aisle should be deselected after remove")
	}
}

func TestStateAddRemoveOrderIsIdentity(t *testing.T) {
	_, _, s := newTestState(t)
	before := snapshotBalance(s)
	beforeUnits := s.CurrentTotalUnits()

	s.AddOrder(0)
	s.RemoveOrder(0)

	after := snapshotBalance(s)
	if !sliceEqual64(before, after) {
		t.Fatalf("add/remove order not an identity: before=%v after=%v", before, after)
	}
	if s.CurrentTotalUnits() != beforeUnits {
		t.Errorf("currentTotalUnits not restored: got %d want %d", s.CurrentTotalUnits(), beforeUnits)
	}
}

func TestStateDeficitTracksExactlyNegativeBalance(t *testing.T) {
	_, _, s := newTestState(t)
	s.AddOrder(1) // needs item1:1, item2:3, neither stocked yet

	if !s.HasDeficit() {
		t.Fatal("expected deficit after adding unfed order")
	}
	if s.ItemBalance(1) >= 0 || s.ItemBalance(2) >= 0 {
		t.Errorf("expected negative balances, got item1=%d item2=%d", s.ItemBalance(1), s.ItemBalance(2))
	}

	s.AddAisle(0) // covers item1
	s.AddAisle(1) // covers item2
	if s.HasDeficit() {
		t.Error("expected no deficit once both aisles are added")
	}
}

func TestStateCurrentTotalUnitsMatchesSelection(t *testing.T) {
	_, c, s := newTestState(t)
	s.AddOrder(0)
	s.AddOrder(1)

	var want int64
	for _, o := range s.SelectedOrders() {
		want += c.OrderTotalUnits(o)
	}
	if s.CurrentTotalUnits() != want {
		t.Errorf("currentTotalUnits = %d, want %d", s.CurrentTotalUnits(), want)
	}
}

func TestStateCanFitOrderRespectsBalance(t *testing.T) {
	_, _, s := newTestState(t)
	s.AddAisle(0)

	if !s.CanFitOrder(0) {
		t.Error("order 0 should fit: aisle 0 covers item 0 qty 2")
	}
	if s.CanFitOrder(2) {
		t.Error("order 2 demands 10 units of item 0 but aisle 0 only stocks 5")
	}
}

func TestStatePruneAislesRemovesOnlyRedundantAisles(t *testing.T) {
	_, _, s := newTestState(t)
	s.AddAisle(0)
	s.AddAisle(1)
	s.AddOrder(1) // needs item1:1 (aisle0 has 2), item2:3 (aisle1 has 4)

	list := []int{0, 1}
	list = s.PruneAisles(list)

	for _, a := range list {
		if !s.IsAisleSelected(a) {
			t.Errorf("aisle %d in returned list but not selected", a)
		}
	}
	// Neither aisle is fully redundant here (each supplies a distinct
	// item order 1 needs), so both should remain.
	if len(list) != 2 {
		t.Errorf("expected both aisles to remain, got %v", list)
	}
}

func TestStatePruneAislesDropsTrulyRedundantAisle(t *testing.T) {
	_, _, s := newTestState(t)
	s.AddAisle(0)
	s.AddAisle(1)
	// No orders selected: removing either aisle keeps every touched item's
	// balance non-negative (nothing demands anything).
	list := []int{0, 1}
	list = s.PruneAisles(list)
	if len(list) != 0 {
		t.Errorf("expected all aisles pruned with no demand, got %v", list)
	}
	if s.SelectedAisleCount() != 0 {
		t.Errorf("expected no aisles selected after pruning, got %d", s.SelectedAisleCount())
	}
}

func TestStateRepairSolutionClearsDeficit(t *testing.T) {
	_, _, s := newTestState(t)
	s.AddOrder(1)
	if !s.HasDeficit() {
		t.Fatal("expected deficit before repair")
	}

	var aisleList []int
	added, err := s.RepairSolution(&aisleList)
	if err != nil {
		t.Fatalf("RepairSolution: %v", err)
	}
	if added == 0 {
		t.Error("expected at least one aisle added")
	}
	if s.HasDeficit() {
		t.Error("expected no deficit after successful repair")
	}
}

func TestStateRepairSolutionFailsWhenNoSupplyExists(t *testing.T) {
	b := NewBuilder(1)
	b.AddOrder([]Line{{Item: 0, Qty: 5}})
	b.SetBounds(0, 10)
	p, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	c := BuildCaches(p)
	s := NewState(p, c)
	s.AddOrder(0)

	var aisleList []int
	_, err = s.RepairSolution(&aisleList)
	if err != ErrRepairFailed {
		t.Fatalf("expected ErrRepairFailed, got %v", err)
	}
}

func TestStateAddAisleWithOrdersGreedyFreeFills(t *testing.T) {
	_, _, s := newTestState(t)
	s.AddAisleWithOrdersGreedy(0)

	if !s.IsAisleSelected(0) {
		t.Error("aisle 0 should be selected")
	}
	if !s.IsOrderSelected(0) {
		t.Error("order 0 should have been free-filled (fits entirely within aisle 0's stock)")
	}
}

func TestStateEstimateNewItemsForAisle(t *testing.T) {
	_, _, s := newTestState(t)
	s.AddOrder(1) // deficit: item1 needs 1, item2 needs 3

	got := s.EstimateNewItemsForAisle(0) // aisle 0 stocks item0:5 (no deficit), item1:2
	if got != 1 {
		t.Errorf("EstimateNewItemsForAisle(0) = %d, want 1 (min(2,1) for item1)", got)
	}
}

func snapshotBalance(s *State) []int64 {
	out := make([]int64, len(s.itemBalance))
	copy(out, s.itemBalance)
	return out
}

func sliceEqual64(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
