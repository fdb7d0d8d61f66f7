package wavepick

import "sort"

// qtyIdx pairs a quantity with the order or aisle index it belongs to.
type qtyIdx struct {
	Qty int
	Idx int
}

// Caches holds the derived indices built once per Problem: per-item aisle
// and order lookup lists, per-order total units, and per-item global
// availability. Caches are immutable and read-many, write-once; they are
// shared by every worker without synchronization.
//
// Grounded on original_source/src/include/caches.hpp's Caches struct.
type Caches struct {
	itemToAisles            [][]qtyIdx
	itemToOrders            [][]qtyIdx
	orderTotalUnits         []int64
	globalItemAvailability  []int64
}

// BuildCaches computes the Caches for p in one linear pass, then sorts each
// itemToAisles[i] by descending quantity (ties broken by ascending aisle
// index), which is what the repair and estimate operations in State rely on.
func BuildCaches(p *Problem) *Caches {
	n := p.itemCount
	c := &Caches{
		itemToAisles:           make([][]qtyIdx, n),
		itemToOrders:           make([][]qtyIdx, n),
		orderTotalUnits:        make([]int64, len(p.orders)),
		globalItemAvailability: make([]int64, n),
	}

	for ai, lines := range p.aisles {
		for _, l := range lines {
			c.itemToAisles[l.Item] = append(c.itemToAisles[l.Item], qtyIdx{Qty: l.Qty, Idx: ai})
			c.globalItemAvailability[l.Item] += int64(l.Qty)
		}
	}

	for oi, lines := range p.orders {
		var total int64
		for _, l := range lines {
			c.itemToOrders[l.Item] = append(c.itemToOrders[l.Item], qtyIdx{Qty: l.Qty, Idx: oi})
			total += int64(l.Qty)
		}
		c.orderTotalUnits[oi] = total
	}

	for _, list := range c.itemToAisles {
		sort.Slice(list, func(i, j int) bool {
			if list[i].Qty != list[j].Qty {
				return list[i].Qty > list[j].Qty
			}
			return list[i].Idx < list[j].Idx
		})
	}

	return c
}

// OrderTotalUnits returns the precomputed total quantity of order o.
func (c *Caches) OrderTotalUnits(o int) int64 { return c.orderTotalUnits[o] }

// GlobalItemAvailability returns the total stock of item i across all aisles.
func (c *Caches) GlobalItemAvailability(i int) int64 { return c.globalItemAvailability[i] }

// ItemToAisles returns the (qty, aisleIdx) pairs carrying item i, sorted by
// descending qty then ascending aisleIdx. Callers must not mutate the slice.
func (c *Caches) ItemToAisles(i int) []qtyIdx { return c.itemToAisles[i] }

// ItemToOrders returns the (qty, orderIdx) pairs demanding item i. Callers
// must not mutate the slice.
func (c *Caches) ItemToOrders(i int) []qtyIdx { return c.itemToOrders[i] }
