package ioformat

import (
	"bytes"
	"strings"
	"testing"

	"github.com/wavepick/wavepick/pkg/wavepick"
)

func TestWriteSolutionFormat(t *testing.T) {
	sol := wavepick.Solution{Orders: []int{2, 0}, Aisles: []int{1}}
	var buf bytes.Buffer
	if err := WriteSolution(&buf, sol); err != nil {
		t.Fatalf("WriteSolution: %v", err)
	}
	want := "2\n2\n0\n1\n1\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestWriteSolutionEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSolution(&buf, wavepick.Solution{}); err != nil {
		t.Fatalf("WriteSolution: %v", err)
	}
	want := "0\n0\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestWriteSolutionRoundTripsIndexSets(t *testing.T) {
	sol := wavepick.Solution{Orders: []int{3, 1, 4}, Aisles: []int{9}}
	var buf bytes.Buffer
	if err := WriteSolution(&buf, sol); err != nil {
		t.Fatalf("WriteSolution: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if lines[0] != "3" {
		t.Fatalf("order count line = %q, want %q", lines[0], "3")
	}
	gotOrders := map[string]bool{lines[1]: true, lines[2]: true, lines[3]: true}
	for _, o := range []string{"3", "1", "4"} {
		if !gotOrders[o] {
			t.Errorf("missing order %s in output", o)
		}
	}
}
