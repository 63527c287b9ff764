//go:build cgo
// +build cgo

package z3

/*
#include <stdlib.h>
#include "z3.h"
*/
import "C"

import (
	"errors"
	"runtime"
)

// CheckResult captures the outcome of a fixedpoint query.
type CheckResult int

const (
	// Unknown indicates the engine could not decide the query.
	Unknown CheckResult = iota
	// Sat indicates the query is derivable from the rules.
	Sat
	// Unsat indicates the query is not derivable.
	Unsat
)

func (r CheckResult) String() string {
	switch r {
	case Sat:
		return "sat"
	case Unsat:
		return "unsat"
	default:
		return "unknown"
	}
}

// Fixedpoint wraps a Z3_fixedpoint engine holding a set of Horn rules.
type Fixedpoint struct {
	ctx *Context
	f   C.Z3_fixedpoint
}

// NewFixedpoint creates an empty fixedpoint engine attached to the context.
func (ctx *Context) NewFixedpoint() *Fixedpoint {
	f := &Fixedpoint{ctx, C.Z3_mk_fixedpoint(ctx.c)}
	C.Z3_fixedpoint_inc_ref(ctx.c, f.f)
	runtime.SetFinalizer(f, func(x *Fixedpoint) { x.Close() })
	return f
}

// Close releases the engine reference. Repeated calls are no-ops.
func (f *Fixedpoint) Close() {
	if f != nil && f.f != nil && f.ctx.c != nil {
		C.Z3_fixedpoint_dec_ref(f.ctx.c, f.f)
		f.f = nil
	}
}

// SetParams applies a parameter set, for example engine selection and
// Spacer tuning knobs.
func (f *Fixedpoint) SetParams(p *Params) error {
	C.Z3_fixedpoint_set_params(f.ctx.c, f.f, p.p)
	return f.ctx.Err()
}

// RegisterRelation marks decl as a relation that may occur as a rule head.
func (f *Fixedpoint) RegisterRelation(decl FuncDecl) error {
	if decl.d == nil {
		return errors.New("z3: nil relation declaration")
	}
	C.Z3_fixedpoint_register_relation(f.ctx.c, f.f, decl.d)
	return f.ctx.Err()
}

// AddRule adds a Horn rule. The name tags the rule so it can be recognised
// in proofs; an empty name leaves the rule anonymous.
func (f *Fixedpoint) AddRule(rule AST, name string) error {
	if rule.a == nil {
		return errors.New("z3: nil rule")
	}
	C.Z3_fixedpoint_add_rule(f.ctx.c, f.f, rule.a, f.ctx.StringSymbol(name))
	return f.ctx.Err()
}

// Query asks whether goal is derivable from the rules. An error means the
// engine raised an exception and the result carries no information.
func (f *Fixedpoint) Query(goal AST) (CheckResult, error) {
	if goal.a == nil {
		return Unknown, errors.New("z3: nil query")
	}
	r := C.Z3_fixedpoint_query(f.ctx.c, f.f, goal.a)
	if err := f.ctx.Err(); err != nil {
		return Unknown, err
	}
	switch r {
	case C.Z3_L_TRUE:
		return Sat, nil
	case C.Z3_L_FALSE:
		return Unsat, nil
	default:
		return Unknown, nil
	}
}

// Answer returns the engine's answer to the last query: a ground refutation
// proof after Sat, relation definitions after Unsat.
func (f *Fixedpoint) Answer() (AST, error) {
	a := C.Z3_fixedpoint_get_answer(f.ctx.c, f.f)
	if err := f.ctx.Err(); err != nil {
		return AST{}, err
	}
	if a == nil {
		return AST{}, errors.New("z3: no answer available")
	}
	return wrap(f.ctx, a), nil
}

// ReasonUnknown explains why the last query returned Unknown.
func (f *Fixedpoint) ReasonUnknown() string {
	if f == nil || f.f == nil {
		return ""
	}
	s := C.Z3_fixedpoint_get_reason_unknown(f.ctx.c, f.f)
	if s == nil {
		return ""
	}
	return C.GoString(s)
}

// String returns the registered rules in SMT-LIB form.
func (f *Fixedpoint) String() string {
	if f == nil || f.f == nil {
		return "<nil-fixedpoint>"
	}
	s := C.Z3_fixedpoint_to_string(f.ctx.c, f.f, 0, nil)
	if s == nil {
		return "<invalid-fixedpoint>"
	}
	return C.GoString(s)
}
