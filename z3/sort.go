//go:build cgo
// +build cgo

package z3

/*
#include <stdlib.h>
#include "z3.h"
*/
import "C"

import "unsafe"

// Sort wraps Z3_sort.
type Sort struct {
	ctx *Context
	s   C.Z3_sort
}

// BoolSort returns the boolean sort.
func (ctx *Context) BoolSort() Sort {
	return Sort{ctx, C.Z3_mk_bool_sort(ctx.c)}
}

// IntSort returns the integer sort representing mathematical integers.
func (ctx *Context) IntSort() Sort {
	return Sort{ctx, C.Z3_mk_int_sort(ctx.c)}
}

// ArraySort returns the sort of arrays mapping domain to rng.
func (ctx *Context) ArraySort(domain, rng Sort) Sort {
	return Sort{ctx, C.Z3_mk_array_sort(ctx.c, domain.s, rng.s)}
}

// TupleField names one projection of a tuple sort.
type TupleField struct {
	Name string
	Sort Sort
}

// Tuple collects the declarations that come with a tuple sort: the
// constructor and one projection per field, in field order.
type Tuple struct {
	Constructor FuncDecl
	Projections []FuncDecl
}

// TupleSort declares a single-constructor datatype named name. The constructor
// shares the sort's name. Declaring the same name twice yields two distinct,
// incompatible sorts, so callers should cache the result.
func (ctx *Context) TupleSort(name string, fields []TupleField) (Sort, Tuple) {
	sym := ctx.StringSymbol(name)
	n := len(fields)
	syms := make([]C.Z3_symbol, n+1)
	sorts := make([]C.Z3_sort, n+1)
	projs := make([]C.Z3_func_decl, n+1)
	for i, f := range fields {
		cstr := C.CString(f.Name)
		syms[i] = C.Z3_mk_string_symbol(ctx.c, cstr)
		C.free(unsafe.Pointer(cstr))
		sorts[i] = f.Sort.s
	}
	var mk C.Z3_func_decl
	srt := C.Z3_mk_tuple_sort(ctx.c, sym, C.uint(n),
		(*C.Z3_symbol)(unsafe.Pointer(&syms[0])),
		(*C.Z3_sort)(unsafe.Pointer(&sorts[0])),
		&mk,
		(*C.Z3_func_decl)(unsafe.Pointer(&projs[0])))
	t := Tuple{Constructor: FuncDecl{ctx, mk}}
	for i := 0; i < n; i++ {
		t.Projections = append(t.Projections, FuncDecl{ctx, projs[i]})
	}
	return Sort{ctx, srt}, t
}

// String returns an SMT-LIB-like textual representation of the sort.
func (s Sort) String() string {
	if s.ctx == nil || s.s == nil {
		return ""
	}
	str := C.Z3_sort_to_string(s.ctx.c, s.s)
	if str == nil {
		return "<invalid-sort>"
	}
	return C.GoString(str)
}

// Name returns the symbolic name of the sort if available.
func (s Sort) Name() string {
	if s.ctx == nil || s.s == nil {
		return ""
	}
	sym := C.Z3_get_sort_name(s.ctx.c, s.s)
	return symbolToString(s.ctx, sym)
}
