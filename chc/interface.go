//go:build cgo
// +build cgo

// Package chc poses Constrained Horn Clause reachability queries to Z3's
// fixedpoint engine and turns the refutations it returns into
// counterexample graphs.
//
// An Interface owns one Z3 context and one engine. It is not safe for
// concurrent use; callers serialise access themselves.
package chc

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vhavlena/chc-go/smt"
	"github.com/vhavlena/chc-go/z3"
)

// Interface accumulates relations and rules across calls and answers
// reachability queries over them.
type Interface struct {
	ctx       *z3.Context
	fp        *z3.Fixedpoint
	tr        *translator
	relations map[string]bool
	opts      Options
	logger    *zap.Logger
	lastErr   error
}

// New configures Z3 and creates an empty rule set. The global part of the
// configuration (see Options) is applied to the whole process before the
// context is created.
func New(options ...Option) (*Interface, error) {
	cfg := newConfig(options)
	if err := cfg.opts.Validate(); err != nil {
		return nil, err
	}
	for _, p := range cfg.opts.globalParams() {
		z3.SetGlobalParam(p.key, p.text())
	}

	zcfg := z3.NewConfig()
	defer zcfg.Close()
	ctx := z3.NewContext(zcfg)
	fp := ctx.NewFixedpoint()

	params := ctx.NewParams()
	defer params.Close()
	for _, p := range cfg.opts.engineParams() {
		switch v := p.value.(type) {
		case bool:
			params.SetBool(p.key, v)
		case uint:
			params.SetUint(p.key, v)
		case string:
			params.SetSymbol(p.key, v)
		}
	}
	if err := fp.SetParams(params); err != nil {
		fp.Close()
		ctx.Close()
		return nil, fmt.Errorf("chc: configure engine: %w", err)
	}
	cfg.logger.Debug("chc engine configured",
		zap.Uint("rlimit", cfg.opts.ResourceLimit),
		zap.String("params", params.String()))

	return &Interface{
		ctx:    ctx,
		fp:     fp,
		tr:        newTranslator(ctx),
		relations: make(map[string]bool),
		opts:      cfg.opts,
		logger:    cfg.logger,
	}, nil
}

// Close releases the engine and the context.
func (i *Interface) Close() {
	i.fp.Close()
	i.ctx.Close()
}

// DeclareVariable declares a typed symbol. Symbols of function sort become
// relations or functions; everything else becomes a free variable that later
// rules are quantified over. A nil sort panics.
func (i *Interface) DeclareVariable(name string, sort *smt.Sort) {
	mustf(sort != nil, "variable %s declared without a sort", name)
	if err := i.tr.declareVariable(name, sort); err != nil {
		panic(fmt.Sprintf("chc: declare %s: %v", name, err))
	}
	i.logger.Debug("declared variable", zap.String("name", name), zap.Stringer("sort", sort))
}

// RegisterRelation makes the relation named by expr usable as a rule head.
// The relation must have been declared with a function sort.
func (i *Interface) RegisterRelation(expr smt.Expression) error {
	decl, ok := i.tr.function(expr.Name)
	if !ok {
		return fmt.Errorf("chc: relation %s is not declared", expr.Name)
	}
	if err := i.fp.RegisterRelation(decl); err != nil {
		return fmt.Errorf("chc: register relation %s: %w", expr.Name, err)
	}
	i.relations[expr.Name] = true
	i.logger.Debug("registered relation", zap.String("name", expr.Name))
	return nil
}

// AddRule adds the Horn clause expr under name. When variables are declared
// the rule is universally quantified over all of them as they stand at this
// call, whether or not they occur in expr.
func (i *Interface) AddRule(expr smt.Expression, name string) error {
	rule, err := i.tr.translate(expr)
	if err != nil {
		return fmt.Errorf("chc: rule %s: %w", name, err)
	}
	vars := i.tr.freeVariables()
	rule = i.ctx.ForAll(vars, rule)
	if err := i.fp.AddRule(rule, name); err != nil {
		return fmt.Errorf("chc: rule %s: %w", name, err)
	}
	i.logger.Debug("added rule", zap.String("name", name), zap.Int("bound_vars", len(vars)))
	return nil
}

// Query asks whether expr is reachable from the rules. Declared variables
// occurring in expr are existentially quantified. A Satisfiable verdict comes
// with the counterexample graph; every other verdict with an empty one. When
// expr is a ground application of a registered relation the graph is rooted
// at that application. Query blocks until the engine answers or exhausts its
// resource limit, which yields Error.
func (i *Interface) Query(expr smt.Expression) (CheckResult, CexGraph) {
	logger := i.logger.With(zap.String("query_id", uuid.NewString()))
	start := time.Now()

	result, graph, err := i.query(expr)
	i.lastErr = err
	if err != nil {
		logger.Warn("chc query failed", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		return Error, CexGraph{}
	}
	fields := []zap.Field{
		zap.Stringer("result", result),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("nodes", len(graph.Nodes)),
		zap.Int("edges", graph.NumEdges()),
	}
	if result == Unknown {
		fields = append(fields, zap.String("reason", i.fp.ReasonUnknown()))
	}
	logger.Info("chc query finished", fields...)
	return result, graph
}

func (i *Interface) query(expr smt.Expression) (CheckResult, CexGraph, error) {
	goal, err := i.tr.translate(expr)
	if err != nil {
		return Error, CexGraph{}, fmt.Errorf("chc: query: %w", err)
	}
	bound := i.tr.constantsIn(goal)
	verdict, err := i.fp.Query(i.ctx.Exists(bound, goal))
	if err != nil {
		return Error, CexGraph{}, fmt.Errorf("chc: query: %w", err)
	}
	switch verdict {
	case z3.Sat:
		proof, err := i.fp.Answer()
		if err != nil {
			return Error, CexGraph{}, fmt.Errorf("chc: refutation: %w", err)
		}
		g := ExtractCexGraph(proofTerm{proof})
		if len(bound) == 0 && goal.IsApp() && i.relations[goal.Decl().Name()] {
			g = rootAtGoal(g, goalNode(goal), func(name string) bool { return i.relations[name] })
		}
		return Satisfiable, g, nil
	case z3.Unsat:
		// TODO: extract the inductive invariants from the answer once
		// consumers have a representation for them.
		return Unsatisfiable, CexGraph{}, nil
	default:
		return Unknown, CexGraph{}, nil
	}
}

func goalNode(goal z3.AST) CexNode {
	n := CexNode{Name: goal.Decl().Name(), Args: make([]string, 0, goal.NumChildren())}
	for _, c := range goal.Children() {
		n.Args = append(n.Args, c.String())
	}
	return n
}

// Options returns the configuration the Interface was built with.
func (i *Interface) Options() Options { return i.opts }

// ReasonUnknown is the engine's explanation for the last Unknown verdict.
func (i *Interface) ReasonUnknown() string { return i.fp.ReasonUnknown() }

// Rules renders the registered rule set in SMT-LIB form.
func (i *Interface) Rules() string { return i.fp.String() }

// LastError is the cause of the last Error verdict, nil after any other one.
func (i *Interface) LastError() error { return i.lastErr }
