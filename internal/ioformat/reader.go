// Package ioformat implements the plain-text instance and solution formats
// spec.md §6 describes, plus an improvement-log appender, kept outside
// pkg/wavepick per spec.md §1's "thin collaborator" framing.
package ioformat

import (
	"bufio"
	"fmt"
	"io"

	"github.com/wavepick/wavepick/pkg/wavepick"
)

// ErrMalformedInstance wraps any token-parse failure while reading an
// instance, per spec.md §7's "Input format error" (fatal, diagnostic line).
type ErrMalformedInstance struct {
	Context string
	Err     error
}

func (e *ErrMalformedInstance) Error() string {
	return fmt.Sprintf("wavepick: malformed instance (%s): %v", e.Context, e.Err)
}

func (e *ErrMalformedInstance) Unwrap() error { return e.Err }

// scanner wraps a bufio.Scanner configured for whitespace-delimited integer
// tokens, matching spec.md §6's "text, whitespace-separated" input format.
type scanner struct {
	sc *bufio.Scanner
}

func newScanner(r io.Reader) *scanner {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &scanner{sc: sc}
}

func (s *scanner) nextInt(context string) (int, error) {
	if !s.sc.Scan() {
		if err := s.sc.Err(); err != nil {
			return 0, &ErrMalformedInstance{Context: context, Err: err}
		}
		return 0, &ErrMalformedInstance{Context: context, Err: io.ErrUnexpectedEOF}
	}
	var v int
	if _, err := fmt.Sscan(s.sc.Text(), &v); err != nil {
		return 0, &ErrMalformedInstance{Context: context, Err: err}
	}
	return v, nil
}

// ReadInstance parses spec.md §6's instance format from r and returns a
// frozen Problem, duplicate item lines coalesced at ingest by
// wavepick.Builder.
func ReadInstance(r io.Reader) (*wavepick.Problem, error) {
	s := newScanner(r)

	orderCount, err := s.nextInt("order count")
	if err != nil {
		return nil, err
	}
	itemCount, err := s.nextInt("item count")
	if err != nil {
		return nil, err
	}
	aisleCount, err := s.nextInt("aisle count")
	if err != nil {
		return nil, err
	}

	b := wavepick.NewBuilder(itemCount)

	readLines := func(context string) ([]wavepick.Line, error) {
		k, err := s.nextInt(context + " line count")
		if err != nil {
			return nil, err
		}
		lines := make([]wavepick.Line, 0, k)
		for i := 0; i < k; i++ {
			item, err := s.nextInt(context + " item")
			if err != nil {
				return nil, err
			}
			qty, err := s.nextInt(context + " quantity")
			if err != nil {
				return nil, err
			}
			lines = append(lines, wavepick.Line{Item: item, Qty: qty})
		}
		return lines, nil
	}

	for i := 0; i < orderCount; i++ {
		lines, err := readLines("order")
		if err != nil {
			return nil, err
		}
		b.AddOrder(lines)
	}
	for i := 0; i < aisleCount; i++ {
		lines, err := readLines("aisle")
		if err != nil {
			return nil, err
		}
		b.AddAisle(lines)
	}

	lb, err := s.nextInt("lb")
	if err != nil {
		return nil, err
	}
	ub, err := s.nextInt("ub")
	if err != nil {
		return nil, err
	}
	b.SetBounds(lb, ub)

	return b.Build()
}
