package wavepick

import "testing"

func TestBuilderCoalescesDuplicateItems(t *testing.T) {
	b := NewBuilder(2)
	b.AddOrder([]Line{{Item: 0, Qty: 2}, {Item: 0, Qty: 3}, {Item: 1, Qty: 1}})
	p, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	lines := p.Order(0)
	if len(lines) != 2 {
		t.Fatalf("expected 2 coalesced lines, got %d: %v", len(lines), lines)
	}
	for _, l := range lines {
		if l.Item == 0 && l.Qty != 5 {
			t.Errorf("item 0 qty = %d, want 5", l.Qty)
		}
	}
}

func TestBuilderValidateRejectsOutOfRangeItem(t *testing.T) {
	b := NewBuilder(1)
	b.AddOrder([]Line{{Item: 5, Qty: 1}})
	b.SetBounds(0, 10)
	if _, err := b.Build(); err == nil {
		t.Fatal("expected error for out-of-range item")
	}
}

func TestBuilderValidateRejectsNonPositiveQty(t *testing.T) {
	b := NewBuilder(1)
	b.AddAisle([]Line{{Item: 0, Qty: 0}})
	if _, err := b.Build(); err == nil {
		t.Fatal("expected error for non-positive quantity")
	}
}

func TestBuilderValidateRejectsUBLessThanLB(t *testing.T) {
	b := NewBuilder(1)
	b.SetBounds(5, 2)
	if _, err := b.Build(); err == nil {
		t.Fatal("expected error for ub < lb")
	}
}

func TestBuilderBuildTwiceFails(t *testing.T) {
	b := NewBuilder(1)
	if _, err := b.Build(); err != nil {
		t.Fatalf("first Build: %v", err)
	}
	if _, err := b.Build(); err == nil {
		t.Fatal("expected error on second Build")
	}
}

func TestEmptyInstance(t *testing.T) {
	b := NewBuilder(0)
	p, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if p.OrderCount() != 0 || p.AisleCount() != 0 || p.ItemCount() != 0 {
		t.Fatalf("expected an all-empty instance, got %s", p)
	}
}
