//go:build cgo
// +build cgo

package z3

/*
#include <stdlib.h>
#include "z3.h"
*/
import "C"

import (
	"runtime"
	"unsafe"
)

// SetGlobalParam sets a global Z3 parameter such as "rlimit". Global
// parameters affect every context and engine in the current process, and
// contexts read most of them when they are created.
func SetGlobalParam(key, value string) {
	k := C.CString(key)
	v := C.CString(value)
	C.Z3_global_param_set(k, v)
	C.free(unsafe.Pointer(k))
	C.free(unsafe.Pointer(v))
}

// Params wraps a reference-counted Z3_params set used to configure engines.
type Params struct {
	ctx *Context
	p   C.Z3_params
}

// NewParams creates an empty parameter set bound to the context.
func (ctx *Context) NewParams() *Params {
	p := &Params{ctx, C.Z3_mk_params(ctx.c)}
	C.Z3_params_inc_ref(ctx.c, p.p)
	runtime.SetFinalizer(p, func(x *Params) { x.Close() })
	return p
}

// Close releases the parameter set. Repeated calls are no-ops.
func (p *Params) Close() {
	if p != nil && p.p != nil && p.ctx.c != nil {
		C.Z3_params_dec_ref(p.ctx.c, p.p)
		p.p = nil
	}
}

// SetBool sets a boolean parameter.
func (p *Params) SetBool(key string, value bool) {
	C.Z3_params_set_bool(p.ctx.c, p.p, p.ctx.StringSymbol(key), C.bool(value))
}

// SetUint sets an unsigned integer parameter.
func (p *Params) SetUint(key string, value uint) {
	C.Z3_params_set_uint(p.ctx.c, p.p, p.ctx.StringSymbol(key), C.uint(value))
}

// SetSymbol sets a symbol-valued parameter such as "fp.engine".
func (p *Params) SetSymbol(key, value string) {
	C.Z3_params_set_symbol(p.ctx.c, p.p, p.ctx.StringSymbol(key), p.ctx.StringSymbol(value))
}

// String renders the parameter set the way Z3 prints it.
func (p *Params) String() string {
	if p == nil || p.p == nil {
		return ""
	}
	return C.GoString(C.Z3_params_to_string(p.ctx.c, p.p))
}
