package wavepick

import "testing"

func buildTestProblem(t *testing.T) *Problem {
	t.Helper()
	b := NewBuilder(2)
	b.AddOrder([]Line{{Item: 0, Qty: 3}})
	b.AddOrder([]Line{{Item: 0, Qty: 1}, {Item: 1, Qty: 2}})
	b.AddAisle([]Line{{Item: 0, Qty: 5}})
	b.AddAisle([]Line{{Item: 0, Qty: 10}, {Item: 1, Qty: 4}})
	b.SetBounds(0, 20)
	p, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return p
}

func TestBuildCachesSortsDescendingByQty(t *testing.T) {
	p := buildTestProblem(t)
	c := BuildCaches(p)

	item0 := c.ItemToAisles(0)
	if len(item0) != 2 {
		t.Fatalf("expected 2 aisles for item 0, got %d", len(item0))
	}
	if item0[0].Qty < item0[1].Qty {
		t.Errorf("itemToAisles not sorted descending: %v", item0)
	}
	if item0[0].Idx != 1 {
		t.Errorf("expected aisle 1 (qty 10) first, got aisle %d", item0[0].Idx)
	}
}

func TestBuildCachesOrderTotalsAndAvailability(t *testing.T) {
	p := buildTestProblem(t)
	c := BuildCaches(p)

	if got := c.OrderTotalUnits(0); got != 3 {
		t.Errorf("order 0 total = %d, want 3", got)
	}
	if got := c.OrderTotalUnits(1); got != 3 {
		t.Errorf("order 1 total = %d, want 3", got)
	}
	if got := c.GlobalItemAvailability(0); got != 15 {
		t.Errorf("item 0 availability = %d, want 15", got)
	}
	if got := c.GlobalItemAvailability(1); got != 4 {
		t.Errorf("item 1 availability = %d, want 4", got)
	}
}
