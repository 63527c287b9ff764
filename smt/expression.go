package smt

import (
	"strconv"
	"strings"
)

// Operator names recognised by the translator.
const (
	OpAnd     = "and"
	OpOr      = "or"
	OpNot     = "not"
	OpImplies = "=>"
	OpEq      = "="
	OpLt      = "<"
	OpLe      = "<="
	OpGt      = ">"
	OpGe      = ">="
	OpAdd     = "+"
	OpSub     = "-"
	OpMul     = "*"
	OpIte     = "ite"
	OpSelect  = "select"
	OpStore   = "store"
)

// Expression is an immutable term: a symbol applied to arguments. Variables,
// numerals and the boolean constants have no arguments.
type Expression struct {
	Name      string
	Arguments []Expression
	Sort      *Sort
}

// Var refers to a variable or relation symbol of the given sort.
func Var(name string, sort *Sort) Expression {
	return Expression{Name: name, Sort: sort}
}

// Int returns an integer numeral.
func Int(v int64) Expression {
	return Expression{Name: strconv.FormatInt(v, 10), Sort: IntSort()}
}

// Bool returns the constant true or false.
func Bool(b bool) Expression {
	return Expression{Name: strconv.FormatBool(b), Sort: BoolSort()}
}

// Apply applies a function or relation symbol to arguments. fn must have a
// function sort.
func Apply(fn Expression, args ...Expression) Expression {
	if fn.Sort == nil || fn.Sort.Kind != KindFunction {
		panic("smt: " + fn.Name + " is not a function")
	}
	if len(args) != len(fn.Sort.Domain) {
		panic("smt: wrong number of arguments for " + fn.Name)
	}
	return Expression{Name: fn.Name, Arguments: args, Sort: fn.Sort.Range}
}

func op(name string, sort *Sort, args ...Expression) Expression {
	return Expression{Name: name, Arguments: args, Sort: sort}
}

func And(args ...Expression) Expression  { return op(OpAnd, BoolSort(), args...) }
func Or(args ...Expression) Expression   { return op(OpOr, BoolSort(), args...) }
func Not(e Expression) Expression        { return op(OpNot, BoolSort(), e) }
func Implies(a, b Expression) Expression { return op(OpImplies, BoolSort(), a, b) }
func Eq(a, b Expression) Expression      { return op(OpEq, BoolSort(), a, b) }
func Lt(a, b Expression) Expression      { return op(OpLt, BoolSort(), a, b) }
func Le(a, b Expression) Expression      { return op(OpLe, BoolSort(), a, b) }
func Gt(a, b Expression) Expression      { return op(OpGt, BoolSort(), a, b) }
func Ge(a, b Expression) Expression      { return op(OpGe, BoolSort(), a, b) }
func Add(args ...Expression) Expression  { return op(OpAdd, IntSort(), args...) }
func Sub(args ...Expression) Expression  { return op(OpSub, IntSort(), args...) }
func Mul(args ...Expression) Expression  { return op(OpMul, IntSort(), args...) }

// Ite chooses t when c holds and e otherwise.
func Ite(c, t, e Expression) Expression { return op(OpIte, t.Sort, c, t, e) }

// Select reads array at index.
func Select(array, index Expression) Expression {
	var elem *Sort
	if array.Sort != nil {
		elem = array.Sort.Range
	}
	return op(OpSelect, elem, array, index)
}

// Store writes value at index, yielding a new array.
func Store(array, index, value Expression) Expression {
	return op(OpStore, array.Sort, array, index, value)
}

// Construct builds a value of a tuple sort from its members, in order.
func Construct(tuple *Sort, members ...Expression) Expression {
	if tuple == nil || tuple.Kind != KindTuple {
		panic("smt: Construct needs a tuple sort")
	}
	return op(tuple.Name, tuple, members...)
}

// Member projects the named member out of a tuple-sorted expression.
func Member(tuple Expression, name string) Expression {
	if tuple.Sort == nil || tuple.Sort.Kind != KindTuple {
		panic("smt: Member needs a tuple-sorted expression")
	}
	for i, m := range tuple.Sort.Members {
		if m == name {
			return op(name, tuple.Sort.MemberSorts[i], tuple)
		}
	}
	panic("smt: tuple " + tuple.Sort.Name + " has no member " + name)
}

// IsNumeral reports whether the expression is an integer literal.
func (e Expression) IsNumeral() bool {
	if len(e.Arguments) != 0 || e.Name == "" {
		return false
	}
	_, err := strconv.ParseInt(e.Name, 10, 64)
	return err == nil
}

// String renders the expression in SMT-LIB prefix notation.
func (e Expression) String() string {
	if len(e.Arguments) == 0 {
		return e.Name
	}
	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(e.Name)
	for _, a := range e.Arguments {
		b.WriteByte(' ')
		b.WriteString(a.String())
	}
	b.WriteByte(')')
	return b.String()
}
