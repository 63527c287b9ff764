//go:build cgo
// +build cgo

package chc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/vhavlena/chc-go/smt"
)

var unaryRel = smt.FunctionSort([]*smt.Sort{smt.IntSort()}, smt.BoolSort())

func newInterface(t *testing.T, opts ...Option) *Interface {
	t.Helper()
	opts = append([]Option{WithLogger(zaptest.NewLogger(t))}, opts...)
	i, err := New(opts...)
	require.NoError(t, err)
	t.Cleanup(i.Close)
	return i
}

// relation declares and registers a unary Int relation.
func relation(t *testing.T, i *Interface, name string) smt.Expression {
	t.Helper()
	i.DeclareVariable(name, unaryRel)
	r := smt.Var(name, unaryRel)
	require.NoError(t, i.RegisterRelation(r))
	return r
}

// requireWellFormed checks that every edge ends at a node and every node
// has an edge list.
func requireWellFormed(t *testing.T, g CexGraph) {
	t.Helper()
	require.Contains(t, g.Nodes, g.Root)
	for id, children := range g.Edges {
		require.Contains(t, g.Nodes, id)
		for _, c := range children {
			require.Contains(t, g.Nodes, c, "dangling edge %d -> %d", id, c)
		}
	}
	for id := range g.Nodes {
		require.Contains(t, g.Edges, id)
	}
}

func hasNode(g CexGraph, want CexNode) bool {
	for _, n := range g.Nodes {
		if n.Name == want.Name && assert.ObjectsAreEqual(want.Args, n.Args) {
			return true
		}
	}
	return false
}

func TestQueryReachableFact(t *testing.T) {
	i := newInterface(t)
	r := relation(t, i, "R")
	require.NoError(t, i.AddRule(smt.Apply(r, smt.Int(0)), "fact"))

	result, g := i.Query(smt.Apply(r, smt.Int(0)))

	require.Equal(t, Satisfiable, result)
	require.NoError(t, i.LastError())
	requireWellFormed(t, g)
	assert.Equal(t, map[uint]CexNode{g.Root: {Name: "R", Args: []string{"0"}}}, g.Nodes, "graph %+v", g)
	assert.Zero(t, g.NumEdges())
}

func TestQueryReachableChain(t *testing.T) {
	i := newInterface(t)
	i.DeclareVariable("x", smt.IntSort())
	x := smt.Var("x", smt.IntSort())
	r := relation(t, i, "R")
	require.NoError(t, i.AddRule(smt.Apply(r, smt.Int(0)), "init"))
	require.NoError(t, i.AddRule(smt.Implies(smt.Apply(r, x), smt.Apply(r, smt.Add(x, smt.Int(1)))), "step"))

	result, g := i.Query(smt.Apply(r, smt.Int(2)))

	require.Equal(t, Satisfiable, result)
	requireWellFormed(t, g)
	assert.Equal(t, CexNode{Name: "R", Args: []string{"2"}}, g.Nodes[g.Root], "graph %+v", g)
	assert.True(t, hasNode(g, CexNode{Name: "R", Args: []string{"0"}}), "graph %+v", g)
	assert.NotZero(t, g.NumEdges())
}

func TestQueryWithFreeVariable(t *testing.T) {
	i := newInterface(t)
	i.DeclareVariable("x", smt.IntSort())
	x := smt.Var("x", smt.IntSort())
	r := relation(t, i, "R")
	require.NoError(t, i.AddRule(smt.Apply(r, smt.Int(0)), "init"))
	require.NoError(t, i.AddRule(smt.Implies(smt.Apply(r, x), smt.Apply(r, smt.Add(x, smt.Int(1)))), "step"))

	result, g := i.Query(smt.And(smt.Apply(r, x), smt.Gt(x, smt.Int(1))))

	require.Equal(t, Satisfiable, result, "%v", i.LastError())
	requireWellFormed(t, g)
	assert.True(t, hasNode(g, CexNode{Name: "R", Args: []string{"0"}}), "graph %+v", g)
}

// premiseNames returns the relation names of the premises of the node
// named head, in edge order.
func premiseNames(t *testing.T, g CexGraph, head string) []string {
	t.Helper()
	for id, n := range g.Nodes {
		if n.Name != head {
			continue
		}
		names := []string{}
		for _, child := range g.Children(id) {
			names = append(names, g.Nodes[child].Name)
		}
		return names
	}
	t.Fatalf("no %s node in graph %+v", head, g)
	return nil
}

func TestQueryNonlinearRuleKeepsBodyOrder(t *testing.T) {
	cases := []struct {
		name string
		body func(a, b smt.Expression) smt.Expression
		want []string
	}{
		{"A then B", func(a, b smt.Expression) smt.Expression { return smt.And(a, b) }, []string{"A", "B"}},
		{"B then A", func(a, b smt.Expression) smt.Expression { return smt.And(b, a) }, []string{"B", "A"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			i := newInterface(t)
			i.DeclareVariable("x", smt.IntSort())
			i.DeclareVariable("y", smt.IntSort())
			x := smt.Var("x", smt.IntSort())
			y := smt.Var("y", smt.IntSort())
			a := relation(t, i, "A")
			b := relation(t, i, "B")
			c := relation(t, i, "C")
			require.NoError(t, i.AddRule(smt.Apply(a, smt.Int(0)), "a"))
			require.NoError(t, i.AddRule(smt.Apply(b, smt.Int(1)), "b"))
			require.NoError(t, i.AddRule(smt.Implies(
				tc.body(smt.Apply(a, x), smt.Apply(b, y)),
				smt.Apply(c, smt.Add(x, y)),
			), "c"))

			result, g := i.Query(smt.Apply(c, smt.Int(1)))

			require.Equal(t, Satisfiable, result)
			requireWellFormed(t, g)
			assert.Equal(t, tc.want, premiseNames(t, g, "C"))
		})
	}
}

func TestQueryUnreachable(t *testing.T) {
	i := newInterface(t)
	i.DeclareVariable("x", smt.IntSort())
	x := smt.Var("x", smt.IntSort())
	r := relation(t, i, "R")
	require.NoError(t, i.AddRule(smt.Implies(smt.Gt(x, smt.Int(0)), smt.Apply(r, x)), "pos"))

	result, g := i.Query(smt.And(smt.Apply(r, x), smt.Lt(x, smt.Int(0))))

	assert.Equal(t, Unsatisfiable, result, "%v", i.LastError())
	assert.True(t, g.Empty())
	assert.NoError(t, i.LastError())
}

func TestQueryResourceLimitExhausted(t *testing.T) {
	opts := DefaultOptions()
	opts.ResourceLimit = 1
	i := newInterface(t, WithOptions(opts))
	i.DeclareVariable("x", smt.IntSort())
	x := smt.Var("x", smt.IntSort())
	r := relation(t, i, "R")
	require.NoError(t, i.AddRule(smt.Apply(r, smt.Int(0)), "init"))
	require.NoError(t, i.AddRule(smt.Implies(smt.Apply(r, x), smt.Apply(r, smt.Add(x, smt.Int(1)))), "step"))

	result, g := i.Query(smt.Apply(r, smt.Int(50)))

	assert.Equal(t, Error, result)
	assert.True(t, g.Empty())
	require.Error(t, i.LastError())
	assert.Contains(t, i.LastError().Error(), "resource limit")
}

func TestQueryTranslationFailure(t *testing.T) {
	i := newInterface(t)
	r := relation(t, i, "R")
	require.NoError(t, i.AddRule(smt.Apply(r, smt.Int(0)), "fact"))

	result, g := i.Query(smt.Gt(smt.Var("nope", smt.IntSort()), smt.Int(0)))
	assert.Equal(t, Error, result)
	assert.True(t, g.Empty())
	require.Error(t, i.LastError())
	assert.Contains(t, i.LastError().Error(), "nope")

	result, _ = i.Query(smt.Apply(r, smt.Int(0)))
	assert.Equal(t, Satisfiable, result)
	assert.NoError(t, i.LastError())
}

func TestQueryIllSortedGoal(t *testing.T) {
	i := newInterface(t)
	i.DeclareVariable("b", smt.BoolSort())

	result, g := i.Query(smt.Lt(smt.Var("b", smt.BoolSort()), smt.Int(1)))

	assert.Equal(t, Error, result)
	assert.True(t, g.Empty())
	assert.Error(t, i.LastError())
}

func TestRuleErrors(t *testing.T) {
	i := newInterface(t)

	err := i.RegisterRelation(smt.Var("Missing", unaryRel))
	assert.ErrorContains(t, err, "Missing")

	err = i.AddRule(smt.Var("ghost", smt.BoolSort()), "ghost")
	assert.ErrorContains(t, err, "ghost")
}

func TestDeclareVariableWithoutSortPanics(t *testing.T) {
	i := newInterface(t)
	assert.Panics(t, func() { i.DeclareVariable("x", nil) })
}

func TestRulesRendering(t *testing.T) {
	i := newInterface(t)
	r := relation(t, i, "Reach")
	require.NoError(t, i.AddRule(smt.Apply(r, smt.Int(3)), "seed"))

	assert.Contains(t, i.Rules(), "Reach")
}

func TestTupleAndArrayRulesTranslate(t *testing.T) {
	pair := smt.TupleSort("pair", []string{"fst", "snd"}, []*smt.Sort{smt.IntSort(), smt.IntSort()})
	arr := smt.ArraySort(smt.IntSort(), smt.IntSort())
	rel := smt.FunctionSort([]*smt.Sort{pair, arr}, smt.BoolSort())

	i := newInterface(t)
	i.DeclareVariable("p", pair)
	i.DeclareVariable("a", arr)
	i.DeclareVariable("S", rel)
	p := smt.Var("p", pair)
	a := smt.Var("a", arr)
	s := smt.Var("S", rel)
	require.NoError(t, i.RegisterRelation(s))

	require.NoError(t, i.AddRule(smt.Implies(
		smt.And(
			smt.Eq(p, smt.Construct(pair, smt.Int(1), smt.Int(2))),
			smt.Eq(smt.Select(a, smt.Int(0)), smt.Member(p, "snd")),
		),
		smt.Apply(s, p, a),
	), "init"))

	assert.Contains(t, i.Rules(), "S")
}

func TestNewRejectsInvalidOptions(t *testing.T) {
	_, err := New(WithOptions(Options{}))
	assert.Error(t, err)
}

func TestQueryLogsVerdict(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	i := newInterface(t, WithLogger(zap.New(core)))
	r := relation(t, i, "R")
	require.NoError(t, i.AddRule(smt.Apply(r, smt.Int(0)), "fact"))

	i.Query(smt.Apply(r, smt.Int(0)))
	i.Query(smt.Var("undeclared", smt.BoolSort()))

	finished := logs.FilterMessage("chc query finished").All()
	require.Len(t, finished, 1)
	fields := finished[0].ContextMap()
	assert.Equal(t, "SATISFIABLE", fields["result"])
	assert.NotEmpty(t, fields["query_id"])

	failed := logs.FilterMessage("chc query failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, zapcore.WarnLevel, failed[0].Level)
	assert.NotEqual(t, fields["query_id"], failed[0].ContextMap()["query_id"])
}
