// Package smt holds the solver-independent formula layer: sorts and immutable
// expression trees that the chc package translates into engine terms.
package smt

import "strings"

// Kind discriminates the sort families understood by the translator.
type Kind int

const (
	KindBool Kind = iota
	KindInt
	KindArray
	KindFunction
	KindTuple
)

var kindNames = map[Kind]string{
	KindBool:     "Bool",
	KindInt:      "Int",
	KindArray:    "Array",
	KindFunction: "Function",
	KindTuple:    "Tuple",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Kind(?)"
}

// Sort describes the type of a variable, a relation argument or a term.
//
// Domain and Range are used by arrays (one index sort) and functions. Tuples
// carry a name and one member name and sort per field.
type Sort struct {
	Kind        Kind
	Domain      []*Sort
	Range       *Sort
	Name        string
	Members     []string
	MemberSorts []*Sort
}

// BoolSort returns the boolean sort.
func BoolSort() *Sort { return &Sort{Kind: KindBool} }

// IntSort returns the sort of mathematical integers.
func IntSort() *Sort { return &Sort{Kind: KindInt} }

// ArraySort returns the sort of arrays from index to element.
func ArraySort(index, element *Sort) *Sort {
	return &Sort{Kind: KindArray, Domain: []*Sort{index}, Range: element}
}

// FunctionSort returns the sort of functions from domain to codomain.
// Relations are functions with a Bool codomain.
func FunctionSort(domain []*Sort, codomain *Sort) *Sort {
	return &Sort{Kind: KindFunction, Domain: domain, Range: codomain}
}

// TupleSort returns a named record sort. members and sorts must have the same
// length.
func TupleSort(name string, members []string, sorts []*Sort) *Sort {
	if len(members) != len(sorts) {
		panic("smt: tuple member names and sorts differ in length")
	}
	return &Sort{Kind: KindTuple, Name: name, Members: members, MemberSorts: sorts}
}

// Equal reports structural equality.
func (s *Sort) Equal(o *Sort) bool {
	if s == nil || o == nil {
		return s == o
	}
	if s.Kind != o.Kind || s.Name != o.Name {
		return false
	}
	if !equalSorts(s.Domain, o.Domain) || !equalSorts(s.MemberSorts, o.MemberSorts) {
		return false
	}
	if len(s.Members) != len(o.Members) {
		return false
	}
	for i := range s.Members {
		if s.Members[i] != o.Members[i] {
			return false
		}
	}
	if (s.Range == nil) != (o.Range == nil) {
		return false
	}
	return s.Range == nil || s.Range.Equal(o.Range)
}

func equalSorts(a, b []*Sort) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// String renders the sort in SMT-LIB notation.
func (s *Sort) String() string {
	if s == nil {
		return "<nil>"
	}
	switch s.Kind {
	case KindBool, KindInt:
		return s.Kind.String()
	case KindArray:
		return "(Array " + s.Domain[0].String() + " " + s.Range.String() + ")"
	case KindFunction:
		parts := make([]string, 0, len(s.Domain))
		for _, d := range s.Domain {
			parts = append(parts, d.String())
		}
		return "((" + strings.Join(parts, " ") + ") " + s.Range.String() + ")"
	case KindTuple:
		return s.Name
	default:
		return s.Kind.String()
	}
}
