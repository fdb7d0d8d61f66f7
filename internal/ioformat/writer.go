package ioformat

import (
	"bufio"
	"io"
	"strconv"

	"github.com/wavepick/wavepick/pkg/wavepick"
)

// WriteSolution writes sol to w in spec.md §6's output format: the order
// count and indices, then the aisle count and indices, one per line. An
// empty Solution (no feasible run) writes two zero lines.
func WriteSolution(w io.Writer, sol wavepick.Solution) error {
	bw := bufio.NewWriter(w)

	writeLine := func(v int) error {
		_, err := bw.WriteString(strconv.Itoa(v) + "\n")
		return err
	}

	if err := writeLine(len(sol.Orders)); err != nil {
		return err
	}
	for _, o := range sol.Orders {
		if err := writeLine(o); err != nil {
			return err
		}
	}

	if err := writeLine(len(sol.Aisles)); err != nil {
		return err
	}
	for _, a := range sol.Aisles {
		if err := writeLine(a); err != nil {
			return err
		}
	}

	return bw.Flush()
}
