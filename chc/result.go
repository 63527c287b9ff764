package chc

import "errors"

// ErrNoCgo is returned by New in builds without cgo.
var ErrNoCgo = errors.New("chc: the Z3 engine requires cgo")

// CheckResult is the verdict of a reachability query.
type CheckResult int

const (
	// Satisfiable means the goal is reachable; a counterexample graph is
	// attached.
	Satisfiable CheckResult = iota
	// Unsatisfiable means the engine proved the goal unreachable.
	Unsatisfiable
	// Unknown means the engine stopped without a verdict and without an
	// error; ReasonUnknown tells why.
	Unknown
	// Error means no answer could be obtained: translation failed or the
	// engine raised an error, including running out of its resource limit.
	Error
)

var resultNames = map[CheckResult]string{
	Satisfiable:   "SATISFIABLE",
	Unsatisfiable: "UNSATISFIABLE",
	Unknown:       "UNKNOWN",
	Error:         "ERROR",
}

func (r CheckResult) String() string {
	if s, ok := resultNames[r]; ok {
		return s
	}
	return "CheckResult(?)"
}
