//go:build cgo
// +build cgo

package chc

import "github.com/vhavlena/chc-go/z3"

// proofTerm exposes a Z3 proof AST to the extractor.
type proofTerm struct {
	z3.AST
}

func (p proofTerm) IsHyperResolve() bool {
	return p.IsApp() && p.Decl().Kind() == z3.DeclOpPrHyperResolve
}

func (p proofTerm) IsFalse() bool {
	v, ok := p.BoolValue()
	return ok && !v
}

func (p proofTerm) NumArgs() int { return p.NumChildren() }

// Arg returns argument i. Spacer lists the premises of a hyper-resolution
// step in reverse rule-body order; they are presented in body order.
func (p proofTerm) Arg(i int) ProofTerm {
	if n := p.NumArgs(); i > 0 && i < n-1 && p.IsHyperResolve() {
		i = n - 1 - i
	}
	return proofTerm{p.Child(i)}
}

func (p proofTerm) Name() string { return p.Decl().Name() }
