// Command wavepick-exact solves a wave-picking instance to proven
// optimality with a two-stage mixed-integer program, as the excluded
// "baseline exact solver" collaborator spec.md §6 names but does not
// specify the implementation of.
//
// Grounded structurally on other_examples/nextmv-io-demos__main.go's
// mip.NewModel/mip.NewSolver("highs", ...) usage, and on the two-stage
// algorithm in original_source/baseline/main.cpp (minimize aisles, then
// maximize units for each aisle count K from the minimum upward).
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/nextmv-io/sdk/mip"

	"github.com/wavepick/wavepick/internal/ioformat"
	"github.com/wavepick/wavepick/pkg/wavepick"
)

func main() {
	maxAisles := flag.Int("max-aisles", 0, "cap on K search (0 = no cap beyond problem's aisle count)")
	budget := flag.Duration("time-budget", 2*time.Minute, "wall-clock budget for the whole two-stage search")
	flag.Parse()

	problem, err := ioformat.ReadInstance(os.Stdin)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	sol, err := solveExact(problem, *maxAisles, *budget)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		// spec.md §7: no feasible solution is not a fatal condition.
		if err := ioformat.WriteSolution(os.Stdout, wavepick.Solution{}); err != nil {
			os.Exit(1)
		}
		return
	}

	if err := ioformat.WriteSolution(os.Stdout, sol); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// buildModel constructs the shared x_o/y_a coverage model used by both
// stages: unit-bound constraint, plus one coverage inequality per item
// (demand from selected orders must not exceed supply from selected
// aisles).
func buildModel(p *wavepick.Problem) (m mip.Model, x, y []mip.Bool) {
	m = mip.NewModel()

	x = make([]mip.Bool, p.OrderCount())
	for i := range x {
		x[i] = m.NewBool()
	}
	y = make([]mip.Bool, p.AisleCount())
	for i := range y {
		y[i] = m.NewBool()
	}

	units := m.NewConstraint(mip.GreaterThanOrEqual, float64(p.LB()))
	unitsUB := m.NewConstraint(mip.LessThanOrEqual, float64(p.UB()))
	for o := 0; o < p.OrderCount(); o++ {
		var total float64
		for _, l := range p.Order(o) {
			total += float64(l.Qty)
		}
		units.NewTerm(total, x[o])
		unitsUB.NewTerm(total, x[o])
	}

	itemDemandCoeff := make(map[int]map[int]float64) // item -> order -> qty
	itemSupplyCoeff := make(map[int]map[int]float64) // item -> aisle -> qty
	for o := 0; o < p.OrderCount(); o++ {
		for _, l := range p.Order(o) {
			if itemDemandCoeff[l.Item] == nil {
				itemDemandCoeff[l.Item] = make(map[int]float64)
			}
			itemDemandCoeff[l.Item][o] += float64(l.Qty)
		}
	}
	for a := 0; a < p.AisleCount(); a++ {
		for _, l := range p.Aisle(a) {
			if itemSupplyCoeff[l.Item] == nil {
				itemSupplyCoeff[l.Item] = make(map[int]float64)
			}
			itemSupplyCoeff[l.Item][a] += float64(l.Qty)
		}
	}

	for item := 0; item < p.ItemCount(); item++ {
		demand, hasDemand := itemDemandCoeff[item]
		supply, hasSupply := itemSupplyCoeff[item]
		if !hasDemand {
			continue
		}
		coverage := m.NewConstraint(mip.LessThanOrEqual, 0)
		for o, qty := range demand {
			coverage.NewTerm(qty, x[o])
		}
		if hasSupply {
			for a, qty := range supply {
				coverage.NewTerm(-qty, y[a])
			}
		}
	}

	return m, x, y
}

func solveExact(p *wavepick.Problem, maxAisles int, budget time.Duration) (wavepick.Solution, error) {
	if maxAisles <= 0 || maxAisles > p.AisleCount() {
		maxAisles = p.AisleCount()
	}
	deadline := time.Now().Add(budget)

	// Stage 1: minimize the number of selected aisles subject to the
	// coverage and unit-bound constraints, to find K_min.
	m1, _, y1 := buildModel(p)
	m1.Objective().SetMinimize()
	for _, v := range y1 {
		m1.Objective().NewTerm(1, v)
	}

	kMin, err := solveAndRound(m1, time.Until(deadline))
	if err != nil {
		return wavepick.Solution{}, fmt.Errorf("wavepick-exact: stage 1 (minimize aisles): %w", err)
	}

	var best wavepick.Solution
	var bestScore float64

	// Stage 2: for each K from K_min upward, maximize total units with
	// exactly K aisles selected, tracking the best units/K ratio.
	for k := kMin; k <= maxAisles; k++ {
		if time.Now().After(deadline) {
			break
		}
		// Units never exceed ub, so no K from here on can beat ub/K.
		if bestScore > 0 && float64(p.UB())/float64(k) <= bestScore {
			break
		}

		m2, x2, y2 := buildModel(p)
		exactlyK := m2.NewConstraint(mip.Equal, float64(k))
		for _, v := range y2 {
			exactlyK.NewTerm(1, v)
		}

		m2.Objective().SetMaximize()
		for o, v := range x2 {
			var total float64
			for _, l := range p.Order(o) {
				total += float64(l.Qty)
			}
			m2.Objective().NewTerm(total, v)
		}

		solver, err := mip.NewSolver("highs", m2)
		if err != nil {
			return wavepick.Solution{}, fmt.Errorf("wavepick-exact: new solver: %w", err)
		}
		opts := mip.SolveOptions{Duration: time.Until(deadline)}

		solution, err := solver.Solve(opts)
		if err != nil || solution == nil || !solution.HasValues() {
			continue
		}

		score := solution.ObjectiveValue() / float64(k)
		if score <= bestScore {
			continue
		}

		var orders, aisles []int
		for o, v := range x2 {
			if solution.Value(v) > 0.5 {
				orders = append(orders, o)
			}
		}
		for a, v := range y2 {
			if solution.Value(v) > 0.5 {
				aisles = append(aisles, a)
			}
		}
		best = wavepick.Solution{Orders: orders, Aisles: aisles}
		bestScore = score
	}

	if bestScore == 0 {
		return wavepick.Solution{}, fmt.Errorf("wavepick-exact: no feasible solution within K in [%d, %d]", kMin, maxAisles)
	}
	return best, nil
}

func solveAndRound(m mip.Model, budget time.Duration) (int, error) {
	solver, err := mip.NewSolver("highs", m)
	if err != nil {
		return 0, err
	}
	var opts mip.SolveOptions
	if budget > 0 {
		opts.Duration = budget
	}
	solution, err := solver.Solve(opts)
	if err != nil {
		return 0, err
	}
	if solution == nil || !solution.HasValues() {
		return 0, fmt.Errorf("no feasible aisle cover")
	}
	return int(solution.ObjectiveValue() + 0.5), nil
}
