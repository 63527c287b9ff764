//go:build cgo
// +build cgo

package z3

/*
#include <stdlib.h>
#include "z3.h"
*/
import "C"

import (
	"strconv"
	"unsafe"
)

// Const creates a constant with the given name and sort.
func (ctx *Context) Const(name string, s Sort) AST {
	sym := ctx.StringSymbol(name)
	return wrap(ctx, C.Z3_mk_const(ctx.c, sym, s.s))
}

// FuncDecl declares an uninterpreted function. The declaration is recorded
// under its name, replacing any earlier declaration, so FuncDeclByName always
// returns the latest one.
func (ctx *Context) FuncDecl(name string, domain []Sort, rng Sort) FuncDecl {
	sym := ctx.StringSymbol(name)
	var dom *C.Z3_sort
	if len(domain) > 0 {
		cdom := make([]C.Z3_sort, len(domain))
		for i, s := range domain {
			cdom[i] = s.s
		}
		dom = (*C.Z3_sort)(unsafe.Pointer(&cdom[0]))
	}
	d := FuncDecl{ctx, C.Z3_mk_func_decl(ctx.c, sym, C.uint(len(domain)), dom, rng.s)}
	if ctx.funcDecls == nil {
		ctx.funcDecls = make(map[string]FuncDecl)
	}
	ctx.funcDecls[name] = d
	return d
}

// FuncDeclByName returns a function declaration previously created with
// FuncDecl.
func (ctx *Context) FuncDeclByName(name string) (FuncDecl, bool) {
	if ctx == nil || name == "" || ctx.funcDecls == nil {
		return FuncDecl{}, false
	}
	decl, ok := ctx.funcDecls[name]
	return decl, ok
}

// IntVal creates an integer numeral AST from the provided value.
func (ctx *Context) IntVal(v int64) AST {
	// Use string-based numeral creation to avoid platform-dependent C integer types.
	cstr := C.CString(strconv.FormatInt(v, 10))
	defer C.free(unsafe.Pointer(cstr))
	return wrap(ctx, C.Z3_mk_numeral(ctx.c, cstr, ctx.IntSort().s))
}

// BoolVal creates a boolean constant true/false.
func (ctx *Context) BoolVal(b bool) AST {
	var a C.Z3_ast
	if b {
		a = C.Z3_mk_true(ctx.c)
	} else {
		a = C.Z3_mk_false(ctx.c)
	}
	return wrap(ctx, a)
}

// App applies a function declaration to the provided arguments and returns the resulting AST.
func (ctx *Context) App(f FuncDecl, args ...AST) AST {
	var a C.Z3_ast
	if len(args) == 0 {
		a = C.Z3_mk_app(ctx.c, f.d, 0, nil)
	} else {
		a = C.Z3_mk_app(ctx.c, f.d, C.uint(len(args)), cASTs(args))
	}
	return wrap(ctx, a)
}

// ForAll universally quantifies body over the given constants. An empty
// bound list returns body unchanged.
func (ctx *Context) ForAll(bound []AST, body AST) AST {
	if len(bound) == 0 {
		return body
	}
	apps := make([]C.Z3_app, len(bound))
	for i, b := range bound {
		apps[i] = C.Z3_to_app(ctx.c, b.a)
	}
	a := C.Z3_mk_forall_const(ctx.c, 0, C.uint(len(apps)), (*C.Z3_app)(unsafe.Pointer(&apps[0])), 0, nil, body.a)
	return wrap(ctx, a)
}

// Exists existentially quantifies body over the given constants. An empty
// bound list returns body unchanged.
func (ctx *Context) Exists(bound []AST, body AST) AST {
	if len(bound) == 0 {
		return body
	}
	apps := make([]C.Z3_app, len(bound))
	for i, b := range bound {
		apps[i] = C.Z3_to_app(ctx.c, b.a)
	}
	a := C.Z3_mk_exists_const(ctx.c, 0, C.uint(len(apps)), (*C.Z3_app)(unsafe.Pointer(&apps[0])), 0, nil, body.a)
	return wrap(ctx, a)
}

func cASTs(args []AST) *C.Z3_ast {
	cargs := make([]C.Z3_ast, len(args))
	for i, a := range args {
		cargs[i] = a.a
	}
	return (*C.Z3_ast)(unsafe.Pointer(&cargs[0]))
}

// wrap takes a reference on a freshly built term. Z3 returns NULL for
// ill-sorted input; the nil AST is passed through and Context.Err explains it.
func wrap(ctx *Context, a C.Z3_ast) AST {
	if a == nil {
		return AST{ctx, nil}
	}
	C.Z3_inc_ref(ctx.c, a)
	return AST{ctx, a}
}

// Not returns the logical negation of the AST.
func (t AST) Not() AST {
	return wrap(t.ctx, C.Z3_mk_not(t.ctx.c, t.a))
}

// And builds a conjunction over all provided ASTs.
func And(args ...AST) AST {
	if len(args) == 0 {
		panic("And requires at least one arg")
	}
	ctx := args[0].ctx
	return wrap(ctx, C.Z3_mk_and(ctx.c, C.uint(len(args)), cASTs(args)))
}

// Or builds a disjunction over all provided ASTs.
func Or(args ...AST) AST {
	if len(args) == 0 {
		panic("Or requires at least one arg")
	}
	ctx := args[0].ctx
	return wrap(ctx, C.Z3_mk_or(ctx.c, C.uint(len(args)), cASTs(args)))
}

// Add sums all provided numeric ASTs.
func Add(args ...AST) AST {
	if len(args) == 0 {
		panic("Add requires at least one arg")
	}
	ctx := args[0].ctx
	return wrap(ctx, C.Z3_mk_add(ctx.c, C.uint(len(args)), cASTs(args)))
}

// Sub subtracts subsequent ASTs from the first argument.
func Sub(args ...AST) AST {
	if len(args) == 0 {
		panic("Sub requires at least one arg")
	}
	ctx := args[0].ctx
	return wrap(ctx, C.Z3_mk_sub(ctx.c, C.uint(len(args)), cASTs(args)))
}

// Mul multiplies all provided numeric ASTs.
func Mul(args ...AST) AST {
	if len(args) == 0 {
		panic("Mul requires at least one arg")
	}
	ctx := args[0].ctx
	return wrap(ctx, C.Z3_mk_mul(ctx.c, C.uint(len(args)), cASTs(args)))
}

// Neg builds the arithmetic negation -x.
func Neg(x AST) AST { return wrap(x.ctx, C.Z3_mk_unary_minus(x.ctx.c, x.a)) }

// Eq builds an equality between two ASTs.
func Eq(x, y AST) AST { return wrap(x.ctx, C.Z3_mk_eq(x.ctx.c, x.a, y.a)) }

// Le builds the constraint x <= y.
func Le(x, y AST) AST { return wrap(x.ctx, C.Z3_mk_le(x.ctx.c, x.a, y.a)) }

// Lt builds the constraint x < y.
func Lt(x, y AST) AST { return wrap(x.ctx, C.Z3_mk_lt(x.ctx.c, x.a, y.a)) }

// Ge builds the constraint x >= y.
func Ge(x, y AST) AST { return wrap(x.ctx, C.Z3_mk_ge(x.ctx.c, x.a, y.a)) }

// Gt builds the constraint x > y.
func Gt(x, y AST) AST { return wrap(x.ctx, C.Z3_mk_gt(x.ctx.c, x.a, y.a)) }

// Implies builds the implication x => y.
func Implies(x, y AST) AST { return wrap(x.ctx, C.Z3_mk_implies(x.ctx.c, x.a, y.a)) }

// Ite builds an if-then-else over c, t, and e.
func Ite(c, t, e AST) AST { return wrap(c.ctx, C.Z3_mk_ite(c.ctx.c, c.a, t.a, e.a)) }

// Select builds an array select expression.
func Select(array, index AST) AST {
	return wrap(array.ctx, C.Z3_mk_select(array.ctx.c, array.a, index.a))
}

// Store builds the array obtained by writing value at index.
func Store(array, index, value AST) AST {
	return wrap(array.ctx, C.Z3_mk_store(array.ctx.c, array.a, index.a, value.a))
}
