//go:build cgo
// +build cgo

// Package z3 provides a minimal Go binding to Z3's C API, covering what a
// Constrained Horn Clause front end needs: contexts, sorts, terms, quantifiers,
// parameter sets and the fixedpoint (Spacer) engine together with enough AST
// introspection to walk the refutation proofs it produces.
package z3

/*
// cgo headers (linker flags are provided via separate build-tagged files).
#include <stdlib.h>
#include "z3.h"

// Install a no-op error handler so Z3 doesn't abort on errors; we'll query errors from Go.
void go_z3_error_handler(Z3_context c, Z3_error_code e) {
	// no-op
}
static void z3_set_noop_error_handler(Z3_context c) {
	Z3_set_error_handler(c, go_z3_error_handler);
}
*/
import "C"
import (
	"errors"
	"runtime"
	"unsafe"
)

// Context wraps Z3_context.
type Context struct {
	c         C.Z3_context
	funcDecls map[string]FuncDecl
}

// Config wraps Z3_config.
type Config struct{ cfg C.Z3_config }

// NewConfig creates a default config with auto configuration enabled. Callers
// can mutate the returned Config via SetParam before NewContext consumes it.
func NewConfig() *Config {
	cfg := &Config{cfg: C.Z3_mk_config()}
	cfg.SetParam("auto_config", "true")
	return cfg
}

// SetParam sets a configuration parameter before creating a context. Z3 only
// consults these parameters at context creation time, so mutating the config
// after NewContext has been called has no effect on existing contexts.
func (cfg *Config) SetParam(key, value string) {
	if cfg == nil || cfg.cfg == nil {
		return
	}
	k := C.CString(key)
	v := C.CString(value)
	C.Z3_set_param_value(cfg.cfg, k, v)
	C.free(unsafe.Pointer(k))
	C.free(unsafe.Pointer(v))
}

// Close frees the config. It is safe to call multiple times or on a nil
// receiver.
func (cfg *Config) Close() {
	if cfg != nil && cfg.cfg != nil {
		C.Z3_del_config(cfg.cfg)
		cfg.cfg = nil
	}
}

// NewContext creates a new Z3 context with the given config (optional). When no
// config is provided a temporary config is created under the hood. Contexts
// install a no-op error handler so Z3 surfaces errors through Go return values
// instead of aborting the process.
func NewContext(cfg *Config) *Context {
	var c C.Z3_context
	if cfg != nil {
		c = C.Z3_mk_context(cfg.cfg)
	} else {
		tmp := C.Z3_mk_config()
		c = C.Z3_mk_context(tmp)
		C.Z3_del_config(tmp)
	}
	C.z3_set_noop_error_handler(c)
	ctx := &Context{c: c, funcDecls: make(map[string]FuncDecl)}
	runtime.SetFinalizer(ctx, func(x *Context) { x.Close() })
	return ctx
}

// Close deletes the context and clears the bookkeeping caches. After Close
// returns the context must not be used.
func (ctx *Context) Close() {
	if ctx != nil && ctx.c != nil {
		C.Z3_del_context(ctx.c)
		ctx.c = nil
	}
	if ctx != nil {
		ctx.funcDecls = nil
	}
}

// Err reports the error raised by the most recent Z3 API call on this
// context, or nil. Z3 resets the code at the start of every call, so Err must
// be consulted right after the operation it is meant to check.
func (ctx *Context) Err() error {
	if ctx == nil || ctx.c == nil {
		return errors.New("z3: closed context")
	}
	code := C.Z3_get_error_code(ctx.c)
	if code == C.Z3_OK {
		return nil
	}
	msg := C.Z3_get_error_msg(ctx.c, code)
	if msg == nil {
		return errors.New("z3: unknown error")
	}
	return errors.New("z3: " + C.GoString(msg))
}

// StringSymbol creates a Z3 symbol from the provided Go string.
func (ctx *Context) StringSymbol(name string) C.Z3_symbol {
	cstr := C.CString(name)
	defer C.free(unsafe.Pointer(cstr))
	return C.Z3_mk_string_symbol(ctx.c, cstr)
}

// String returns an SMT-LIB-like textual representation of the AST.
func (a AST) String() string {
	if a.a == nil {
		return "<nil>"
	}
	s := C.Z3_ast_to_string(a.ctx.c, a.a)
	if s == nil {
		return "<invalid>"
	}
	return C.GoString(s)
}
