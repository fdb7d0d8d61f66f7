package wavepick

import (
	"math/rand/v2"
	"testing"
)

func buildConstructTestProblem(t *testing.T) *Problem {
	t.Helper()
	b := NewBuilder(4)
	b.AddOrder([]Line{{Item: 0, Qty: 2}, {Item: 1, Qty: 1}})
	b.AddOrder([]Line{{Item: 1, Qty: 2}, {Item: 2, Qty: 3}})
	b.AddOrder([]Line{{Item: 3, Qty: 4}})
	b.AddOrder([]Line{{Item: 0, Qty: 1}, {Item: 3, Qty: 2}})
	b.AddAisle([]Line{{Item: 0, Qty: 10}, {Item: 1, Qty: 10}})
	b.AddAisle([]Line{{Item: 2, Qty: 10}, {Item: 3, Qty: 10}})
	b.SetBounds(1, 50)
	p, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return p
}

func TestConstructH1ProducesVerifiableOrInfeasibleSolution(t *testing.T) {
	p := buildConstructTestProblem(t)
	rng := rand.New(rand.NewPCG(1, 1))
	sol := ConstructH1(p, rng)
	if err := Verify(p, sol); err != nil {
		t.Skipf("H1 produced an infeasible solution this run (permitted by spec.md §4.3): %v", err)
	}
}

func TestConstructH2ProducesFeasibleSolution(t *testing.T) {
	p := buildConstructTestProblem(t)
	c := BuildCaches(p)
	s := NewState(p, c)
	rng := rand.New(rand.NewPCG(2, 2))
	aisleList := ConstructH2(s, c, rng)
	sol := Solution{Orders: s.SelectedOrders(), Aisles: aisleList}
	if err := Verify(p, sol); err != nil {
		t.Errorf("H2 solution failed verification: %v", err)
	}
}

func TestConstructH3ProducesFeasibleSolution(t *testing.T) {
	p := buildConstructTestProblem(t)
	c := BuildCaches(p)
	rng := rand.New(rand.NewPCG(3, 3))
	sol := ConstructH3(p, c, rng)
	if err := Verify(p, sol); err != nil {
		t.Errorf("H3 solution failed verification: %v", err)
	}
}

func TestConstructH4ProducesFeasibleSolution(t *testing.T) {
	p := buildConstructTestProblem(t)
	c := BuildCaches(p)
	s := NewState(p, c)
	rng := rand.New(rand.NewPCG(4, 4))
	ConstructH4(s, rng)
	sol := FromState(s)
	if err := Verify(p, sol); err != nil {
		t.Errorf("H4 solution failed verification: %v", err)
	}
}

func TestRefineNeverWorsensScore(t *testing.T) {
	p := buildConstructTestProblem(t)
	c := BuildCaches(p)
	s := NewState(p, c)
	rng := rand.New(rand.NewPCG(5, 5))
	aisleList := ConstructH2(s, c, rng)
	before := s.Score()

	aisleList = Refine(s, aisleList, rng)
	after := Solution{Orders: s.SelectedOrders(), Aisles: aisleList}.Score(c)

	if after < before-1e-9 {
		t.Errorf("Refine worsened score: before=%v after=%v", before, after)
	}
	if err := Verify(p, Solution{Orders: s.SelectedOrders(), Aisles: aisleList}); err != nil {
		t.Errorf("refined solution failed verification: %v", err)
	}
}

func TestRefineH1NeverWorsensScore(t *testing.T) {
	p := buildConstructTestProblem(t)
	c := BuildCaches(p)
	rng := rand.New(rand.NewPCG(6, 6))
	sol := ConstructH1(p, rng)
	if err := Verify(p, sol); err != nil {
		t.Skip("H1 construction produced an infeasible seed this run")
	}
	before := sol.Score(c)

	refined := RefineH1(p, c, sol)
	after := refined.Score(c)

	if after < before-1e-9 {
		t.Errorf("RefineH1 worsened score: before=%v after=%v", before, after)
	}
	if err := Verify(p, refined); err != nil {
		t.Errorf("RefineH1 output failed verification: %v", err)
	}
}
