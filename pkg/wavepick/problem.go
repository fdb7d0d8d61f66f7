// Package wavepick implements the warehouse wave-picking search engine:
// a GRASP-style constructive/refinement metaheuristic over a catalog of
// orders and aisles, driven by a parallel multi-start loop.
package wavepick

import (
	"fmt"
	"sync"
)

// Line is a single (item, quantity) pair within an order or an aisle.
type Line struct {
	Item int
	Qty  int
}

// Problem is the immutable input instance: a catalog of orders, a catalog
// of aisles, the item space size, and the wave-size window.
//
// Problem is constructed once via Builder and is safe for concurrent
// read-only access by every worker thereafter.
type Problem struct {
	orders    [][]Line
	aisles    [][]Line
	itemCount int
	lb, ub    int
}

// OrderCount returns the number of orders in the catalog.
func (p *Problem) OrderCount() int { return len(p.orders) }

// AisleCount returns the number of aisles in the catalog.
func (p *Problem) AisleCount() int { return len(p.aisles) }

// ItemCount returns the size of the item space.
func (p *Problem) ItemCount() int { return p.itemCount }

// LB returns the lower bound of the wave-size window.
func (p *Problem) LB() int { return p.lb }

// UB returns the upper bound of the wave-size window.
func (p *Problem) UB() int { return p.ub }

// Order returns the coalesced lines of order o.
func (p *Problem) Order(o int) []Line { return p.orders[o] }

// Aisle returns the coalesced lines of aisle a.
func (p *Problem) Aisle(a int) []Line { return p.aisles[a] }

// Builder assembles a Problem incrementally. It is safe for sequential use
// during construction; a Problem produced by Build is immutable thereafter.
//
// Builder coalesces duplicate items within a single order or aisle by
// summing their quantities, resolving the ingest-contract open question
// in spec.md §9 by construction: constructors never observe a repeated
// item within one line list.
type Builder struct {
	mu        sync.Mutex
	orders    [][]Line
	aisles    [][]Line
	itemCount int
	lb, ub    int
	built     bool
}

// NewBuilder returns an empty Builder for an item space of the given size.
func NewBuilder(itemCount int) *Builder {
	return &Builder{itemCount: itemCount}
}

// AddOrder appends an order to the catalog, coalescing duplicate items.
// Returns the new order's index.
func (b *Builder) AddOrder(lines []Line) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.orders = append(b.orders, coalesce(lines))
	return len(b.orders) - 1
}

// AddAisle appends an aisle to the catalog, coalescing duplicate items.
// Returns the new aisle's index.
func (b *Builder) AddAisle(lines []Line) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.aisles = append(b.aisles, coalesce(lines))
	return len(b.aisles) - 1
}

// SetBounds sets the wave-size window [lb, ub].
func (b *Builder) SetBounds(lb, ub int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lb, b.ub = lb, ub
}

func coalesce(lines []Line) []Line {
	if len(lines) == 0 {
		return nil
	}
	byItem := make(map[int]int, len(lines))
	order := make([]int, 0, len(lines))
	for _, l := range lines {
		if _, ok := byItem[l.Item]; !ok {
			order = append(order, l.Item)
		}
		byItem[l.Item] += l.Qty
	}
	out := make([]Line, len(order))
	for i, item := range order {
		out[i] = Line{Item: item, Qty: byItem[item]}
	}
	return out
}

// Build freezes the Builder into an immutable Problem. The Builder must not
// be used again afterward.
func (b *Builder) Build() (*Problem, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.built {
		return nil, fmt.Errorf("wavepick: Builder already built")
	}
	b.built = true
	p := &Problem{
		orders:    b.orders,
		aisles:    b.aisles,
		itemCount: b.itemCount,
		lb:        b.lb,
		ub:        b.ub,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks the structural invariants spec.md §3 requires of a
// Problem: every referenced item ID is within [0, itemCount), quantities
// are positive, and lb <= ub.
func (p *Problem) Validate() error {
	if p.lb < 0 {
		return fmt.Errorf("wavepick: lb must be >= 0, got %d", p.lb)
	}
	if p.ub < p.lb {
		return fmt.Errorf("wavepick: ub (%d) must be >= lb (%d)", p.ub, p.lb)
	}
	for oi, lines := range p.orders {
		for _, l := range lines {
			if l.Item < 0 || l.Item >= p.itemCount {
				return fmt.Errorf("wavepick: order %d references item %d outside [0, %d)", oi, l.Item, p.itemCount)
			}
			if l.Qty < 1 {
				return fmt.Errorf("wavepick: order %d has non-positive quantity %d for item %d", oi, l.Qty, l.Item)
			}
		}
	}
	for ai, lines := range p.aisles {
		for _, l := range lines {
			if l.Item < 0 || l.Item >= p.itemCount {
				return fmt.Errorf("wavepick: aisle %d references item %d outside [0, %d)", ai, l.Item, p.itemCount)
			}
			if l.Qty < 1 {
				return fmt.Errorf("wavepick: aisle %d has non-positive quantity %d for item %d", ai, l.Qty, l.Item)
			}
		}
	}
	return nil
}

// String returns a human-readable summary of the instance.
func (p *Problem) String() string {
	return fmt.Sprintf("Problem{orders: %d, aisles: %d, items: %d, lb: %d, ub: %d}",
		len(p.orders), len(p.aisles), p.itemCount, p.lb, p.ub)
}
