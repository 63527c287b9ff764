//go:build !cgo
// +build !cgo

package chc

import "github.com/vhavlena/chc-go/smt"

// Interface is a placeholder when cgo is disabled; New always fails.
type Interface struct{}

func New(...Option) (*Interface, error) { return nil, ErrNoCgo }

func (i *Interface) Close()                                       {}
func (i *Interface) RegisterRelation(smt.Expression) error        { return ErrNoCgo }
func (i *Interface) AddRule(smt.Expression, string) error         { return ErrNoCgo }
func (i *Interface) Query(smt.Expression) (CheckResult, CexGraph) { return Error, CexGraph{} }
func (i *Interface) Options() Options                             { return DefaultOptions() }
func (i *Interface) ReasonUnknown() string                        { return "" }
func (i *Interface) Rules() string                                { return "" }
func (i *Interface) LastError() error                             { return ErrNoCgo }

// DeclareVariable panics on a nil sort, as the engine-backed build does.
func (i *Interface) DeclareVariable(name string, sort *smt.Sort) {
	mustf(sort != nil, "variable %s declared without a sort", name)
}
