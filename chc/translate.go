//go:build cgo
// +build cgo

package chc

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/vhavlena/chc-go/smt"
	"github.com/vhavlena/chc-go/z3"
)

type tupleDecl struct {
	sort    z3.Sort
	decls   z3.Tuple
	members []string
}

// translator maps smt expressions onto terms of one Z3 context. It owns the
// table of declared constants; functions live in the context's declaration
// table.
type translator struct {
	ctx       *z3.Context
	constants map[string]z3.AST
	order     []string
	tuples    map[string]tupleDecl
}

func newTranslator(ctx *z3.Context) *translator {
	return &translator{
		ctx:       ctx,
		constants: make(map[string]z3.AST),
		tuples:    make(map[string]tupleDecl),
	}
}

// declareVariable creates a function declaration for function sorts and a
// constant otherwise. Redeclaring a constant replaces its handle in place.
func (t *translator) declareVariable(name string, sort *smt.Sort) error {
	if sort.Kind == smt.KindFunction {
		dom := make([]z3.Sort, 0, len(sort.Domain))
		for _, d := range sort.Domain {
			s, err := t.sort(d)
			if err != nil {
				return err
			}
			dom = append(dom, s)
		}
		rng, err := t.sort(sort.Range)
		if err != nil {
			return err
		}
		t.ctx.FuncDecl(name, dom, rng)
		return nil
	}
	s, err := t.sort(sort)
	if err != nil {
		return err
	}
	if _, ok := t.constants[name]; !ok {
		t.order = append(t.order, name)
	}
	t.constants[name] = t.ctx.Const(name, s)
	return nil
}

// freeVariables returns the declared constants in declaration order.
func (t *translator) freeVariables() []z3.AST {
	vars := make([]z3.AST, 0, len(t.order))
	for _, name := range t.order {
		vars = append(vars, t.constants[name])
	}
	return vars
}

// constantsIn returns the declared constants occurring in e, in declaration
// order.
func (t *translator) constantsIn(e z3.AST) []z3.AST {
	seen := map[uint]bool{}
	e.Walk(func(node z3.AST) bool {
		id := node.ID()
		if seen[id] {
			return false
		}
		seen[id] = true
		return true
	})
	var out []z3.AST
	for _, name := range t.order {
		if c := t.constants[name]; seen[c.ID()] {
			out = append(out, c)
		}
	}
	return out
}

func (t *translator) function(name string) (z3.FuncDecl, bool) {
	return t.ctx.FuncDeclByName(name)
}

func (t *translator) sort(s *smt.Sort) (z3.Sort, error) {
	if s == nil {
		return z3.Sort{}, errors.New("missing sort")
	}
	switch s.Kind {
	case smt.KindBool:
		return t.ctx.BoolSort(), nil
	case smt.KindInt:
		return t.ctx.IntSort(), nil
	case smt.KindArray:
		if len(s.Domain) != 1 {
			return z3.Sort{}, fmt.Errorf("array sort needs one index sort, got %d", len(s.Domain))
		}
		idx, err := t.sort(s.Domain[0])
		if err != nil {
			return z3.Sort{}, err
		}
		elem, err := t.sort(s.Range)
		if err != nil {
			return z3.Sort{}, err
		}
		return t.ctx.ArraySort(idx, elem), nil
	case smt.KindTuple:
		td, err := t.tuple(s)
		return td.sort, err
	default:
		return z3.Sort{}, fmt.Errorf("unsupported sort %s", s)
	}
}

func (t *translator) tuple(s *smt.Sort) (tupleDecl, error) {
	if td, ok := t.tuples[s.Name]; ok {
		return td, nil
	}
	fields := make([]z3.TupleField, 0, len(s.Members))
	for i, m := range s.Members {
		ms, err := t.sort(s.MemberSorts[i])
		if err != nil {
			return tupleDecl{}, err
		}
		fields = append(fields, z3.TupleField{Name: m, Sort: ms})
	}
	srt, decls := t.ctx.TupleSort(s.Name, fields)
	td := tupleDecl{sort: srt, decls: decls, members: s.Members}
	t.tuples[s.Name] = td
	return td, nil
}

// translate builds the Z3 term for e. Unknown symbols, arity mismatches and
// ill-sorted terms are reported as errors.
func (t *translator) translate(e smt.Expression) (z3.AST, error) {
	args := make([]z3.AST, 0, len(e.Arguments))
	for _, a := range e.Arguments {
		ta, err := t.translate(a)
		if err != nil {
			return z3.AST{}, err
		}
		args = append(args, ta)
	}

	if len(args) == 0 {
		if c, ok := t.constants[e.Name]; ok {
			return c, nil
		}
		switch {
		case e.Name == "true" || e.Name == "false":
			return t.ctx.BoolVal(e.Name == "true"), nil
		case e.IsNumeral():
			v, _ := strconv.ParseInt(e.Name, 10, 64)
			return t.ctx.IntVal(v), nil
		}
	}

	if decl, ok := t.function(e.Name); ok {
		if decl.Arity() != len(args) {
			return z3.AST{}, fmt.Errorf("%s expects %d arguments, got %d", e.Name, decl.Arity(), len(args))
		}
		return t.checked(e, t.ctx.App(decl, args...))
	}
	if e.Sort != nil && e.Sort.Kind == smt.KindTuple && e.Name == e.Sort.Name {
		td, err := t.tuple(e.Sort)
		if err != nil {
			return z3.AST{}, err
		}
		if len(args) != len(td.members) {
			return z3.AST{}, fmt.Errorf("tuple %s expects %d members, got %d", e.Name, len(td.members), len(args))
		}
		return t.checked(e, t.ctx.App(td.decls.Constructor, args...))
	}
	if len(e.Arguments) == 1 && e.Arguments[0].Sort != nil && e.Arguments[0].Sort.Kind == smt.KindTuple {
		td, err := t.tuple(e.Arguments[0].Sort)
		if err != nil {
			return z3.AST{}, err
		}
		for i, m := range td.members {
			if m == e.Name {
				return t.checked(e, t.ctx.App(td.decls.Projections[i], args[0]))
			}
		}
	}
	return t.operator(e, args)
}

func (t *translator) operator(e smt.Expression, args []z3.AST) (z3.AST, error) {
	need := func(n int) error {
		if len(args) != n {
			return fmt.Errorf("%s expects %d arguments, got %d", e.Name, n, len(args))
		}
		return nil
	}
	var r z3.AST
	switch e.Name {
	case smt.OpAnd, smt.OpOr, smt.OpAdd, smt.OpMul:
		if len(args) == 0 {
			return z3.AST{}, fmt.Errorf("%s needs at least one argument", e.Name)
		}
		switch e.Name {
		case smt.OpAnd:
			r = z3.And(args...)
		case smt.OpOr:
			r = z3.Or(args...)
		case smt.OpAdd:
			r = z3.Add(args...)
		default:
			r = z3.Mul(args...)
		}
	case smt.OpSub:
		switch len(args) {
		case 0:
			return z3.AST{}, errors.New("- needs at least one argument")
		case 1:
			r = z3.Neg(args[0])
		default:
			r = z3.Sub(args...)
		}
	case smt.OpNot:
		if err := need(1); err != nil {
			return z3.AST{}, err
		}
		r = args[0].Not()
	case smt.OpImplies, smt.OpEq, smt.OpLt, smt.OpLe, smt.OpGt, smt.OpGe, smt.OpSelect:
		if err := need(2); err != nil {
			return z3.AST{}, err
		}
		r = binary(e.Name, args[0], args[1])
	case smt.OpIte, smt.OpStore:
		if err := need(3); err != nil {
			return z3.AST{}, err
		}
		if e.Name == smt.OpIte {
			r = z3.Ite(args[0], args[1], args[2])
		} else {
			r = z3.Store(args[0], args[1], args[2])
		}
	default:
		return z3.AST{}, fmt.Errorf("unknown symbol %q", e.Name)
	}
	return t.checked(e, r)
}

func binary(name string, x, y z3.AST) z3.AST {
	switch name {
	case smt.OpImplies:
		return z3.Implies(x, y)
	case smt.OpEq:
		return z3.Eq(x, y)
	case smt.OpLt:
		return z3.Lt(x, y)
	case smt.OpLe:
		return z3.Le(x, y)
	case smt.OpGt:
		return z3.Gt(x, y)
	case smt.OpGe:
		return z3.Ge(x, y)
	default:
		return z3.Select(x, y)
	}
}

func (t *translator) checked(e smt.Expression, a z3.AST) (z3.AST, error) {
	if err := t.ctx.Err(); err != nil {
		return z3.AST{}, fmt.Errorf("translate %s: %w", e.Name, err)
	}
	if !a.Valid() {
		return z3.AST{}, fmt.Errorf("translate %s: ill-formed term", e.Name)
	}
	return a, nil
}
