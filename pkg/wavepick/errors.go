package wavepick

import "errors"

// ErrNoFeasibleSolution is returned by Driver.Run when no restart produced a
// feasible Solution with a positive score.
var ErrNoFeasibleSolution = errors.New("wavepick: constructor produced no feasible solution")

// ErrInfeasibleSolution is wrapped in the error Verify returns when it
// rejects a candidate solution (spec.md §4.6). The Driver discards such
// candidates and never returns this error.
var ErrInfeasibleSolution = errors.New("wavepick: candidate solution failed feasibility verification")
