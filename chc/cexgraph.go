package chc

import "fmt"

// ProofTerm is the view of a refutation proof node the extractor works on.
// Ids must be stable for the lifetime of the proof and shared by every
// occurrence of the same sub-proof.
type ProofTerm interface {
	ID() uint
	IsApp() bool
	// IsHyperResolve reports a hyper-resolution step, whose arguments are
	// ordered justification, premises, conclusion.
	IsHyperResolve() bool
	// IsFalse reports the boolean constant false.
	IsFalse() bool
	NumArgs() int
	Arg(i int) ProofTerm
	// Name is the symbol of an application.
	Name() string
	String() string
}

// CexNode labels a counterexample node with the predicate application it
// derives.
type CexNode struct {
	Name string
	Args []string
}

// CexGraph is a counterexample: predicate applications keyed by proof node
// id, and for every node the ids of the premises it was derived from, in
// premise order. Every node has an Edges entry; leaves have an empty one.
// Ids are local to the proof they came from.
type CexGraph struct {
	Root  uint
	Nodes map[uint]CexNode
	Edges map[uint][]uint
}

// Empty reports whether the graph has no nodes.
func (g CexGraph) Empty() bool { return len(g.Nodes) == 0 }

// NumEdges counts edges over all nodes.
func (g CexGraph) NumEdges() int {
	n := 0
	for _, es := range g.Edges {
		n += len(es)
	}
	return n
}

// Children returns the premises of id in derivation order.
func (g CexGraph) Children(id uint) []uint { return g.Edges[id] }

// proofStep is the closed set of node shapes met while walking a proof.
type proofStep interface{ isProofStep() }

// hyperResolution derives conclusion from premises.
type hyperResolution struct {
	premises   []ProofTerm
	conclusion ProofTerm
}

// leafFact is any node that is not expanded further.
type leafFact struct {
	fact ProofTerm
}

func (hyperResolution) isProofStep() {}
func (leafFact) isProofStep()        {}

func classify(node ProofTerm) proofStep {
	mustf(node.IsApp(), "proof node %d is not an application", node.ID())
	if !node.IsHyperResolve() {
		return leafFact{fact: fact(node)}
	}
	k := node.NumArgs()
	mustf(k > 0, "hyper-resolution node %d has no arguments", node.ID())
	step := hyperResolution{conclusion: node.Arg(k - 1)}
	for i := 1; i < k-1; i++ {
		step.premises = append(step.premises, node.Arg(i))
	}
	return step
}

// fact returns what a proof node derives: a bare application derives itself,
// any other node its last argument.
func fact(node ProofTerm) ProofTerm {
	mustf(node.IsApp(), "proof node %d is not an application", node.ID())
	if node.NumArgs() == 0 {
		return node
	}
	return node.Arg(node.NumArgs() - 1)
}

func label(node ProofTerm) CexNode {
	pred := fact(node)
	mustf(pred.IsApp(), "fact of proof node %d is not a predicate application", node.ID())
	n := CexNode{Name: pred.Name(), Args: make([]string, 0, pred.NumArgs())}
	for i := 0; i < pred.NumArgs(); i++ {
		n.Args = append(n.Args, pred.Arg(i).String())
	}
	return n
}

// ExtractCexGraph converts a ground refutation into a counterexample graph.
// The root of the refutation must derive false; its first argument is the
// step deriving the query, which becomes the graph root. Shared sub-proofs
// become a single node with one incoming edge per referencing parent.
//
// A proof of any other shape panics: it means the engine produced a format
// this package does not understand.
func ExtractCexGraph(proof ProofTerm) CexGraph {
	mustf(proof.IsApp(), "refutation root is not an application")
	mustf(fact(proof).IsFalse(), "refutation does not derive false")
	mustf(proof.NumArgs() > 0, "refutation has no query step")

	root := proof.Arg(0)
	g := CexGraph{
		Root:  root.ID(),
		Nodes: map[uint]CexNode{root.ID(): label(root)},
		Edges: map[uint][]uint{root.ID(): {}},
	}
	visited := map[uint]struct{}{root.ID(): {}}
	stack := []ProofTerm{root}

	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		id := node.ID()
		_, ok := g.Nodes[id]
		mustf(ok, "proof node %d was scheduled without a graph entry", id)

		switch step := classify(node).(type) {
		case hyperResolution:
			for _, premise := range step.premises {
				pid := premise.ID()
				if _, seen := visited[pid]; !seen {
					visited[pid] = struct{}{}
					stack = append(stack, premise)
				}
				if _, ok := g.Nodes[pid]; !ok {
					g.Nodes[pid] = label(premise)
					g.Edges[pid] = []uint{}
				}
				g.Edges[id] = append(g.Edges[id], pid)
			}
		case leafFact:
		}
	}
	return g
}

// rootAtGoal re-roots g at the goal application when the engine answered
// through a query predicate of its own, i.e. the root is not a relation.
// A query step whose single premise is the goal is dropped; otherwise the
// query step, which is equivalent to the goal, takes the goal's label. g's
// maps are updated in place.
func rootAtGoal(g CexGraph, goal CexNode, isRelation func(name string) bool) CexGraph {
	root, ok := g.Nodes[g.Root]
	if !ok || isRelation(root.Name) {
		return g
	}
	if children := g.Edges[g.Root]; len(children) == 1 && sameNode(g.Nodes[children[0]], goal) {
		delete(g.Nodes, g.Root)
		delete(g.Edges, g.Root)
		g.Root = children[0]
		return g
	}
	g.Nodes[g.Root] = goal
	return g
}

func sameNode(a, b CexNode) bool {
	if a.Name != b.Name || len(a.Args) != len(b.Args) {
		return false
	}
	for i := range a.Args {
		if a.Args[i] != b.Args[i] {
			return false
		}
	}
	return true
}

func mustf(cond bool, format string, args ...interface{}) {
	if !cond {
		panic(fmt.Sprintf("chc: "+format, args...))
	}
}
