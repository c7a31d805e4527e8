// Package planner computes a rule-dependency graph and drives bottom-up
// fixpoint evaluation of its strongly connected components in dependency
// order.
package planner

import "github.com/wbrown/stratadb/datalog"

// Graph is the rule-dependency graph. Nodes are rule indices into the same
// []datalog.Rule slice the graph was built from. An edge from -> to exists
// iff some body predicate of rule `from` references the head name of rule
// `to`, i.e. rule `from` depends on rule `to`. Multiple body predicates
// referencing the same head collapse to one logical edge; rule nodes are
// never back-linked to the rules themselves, keeping the graph a derived
// view with no ownership cycles back into the rule set.
type Graph struct {
	n   int
	adj [][]int
}

// BuildGraph constructs the dependency graph over rules: rule i depends on
// rule j whenever one of i's body predicates names j's head relation.
func BuildGraph(rules []datalog.Rule) *Graph {
	headRules := make(map[string][]int)
	for i, r := range rules {
		headRules[r.Head.Name] = append(headRules[r.Head.Name], i)
	}

	g := &Graph{n: len(rules), adj: make([][]int, len(rules))}
	for i, r := range rules {
		seen := make(map[int]bool)
		for _, b := range r.Body {
			for _, j := range headRules[b.Name] {
				if !seen[j] {
					g.adj[i] = append(g.adj[i], j)
					seen[j] = true
				}
			}
		}
	}
	return g
}

// reverse returns the transpose graph: every edge from -> to flipped to
// to -> from.
func (g *Graph) reverse() *Graph {
	rg := &Graph{n: g.n, adj: make([][]int, g.n)}
	for from, tos := range g.adj {
		for _, to := range tos {
			rg.adj[to] = append(rg.adj[to], from)
		}
	}
	return rg
}

// SCCs returns the graph's strongly connected components, each a list of
// rule indices, in the order Kosaraju's algorithm produces them: build the
// reverse graph, run a DFS forest over it visiting nodes in ascending index
// order to get a postorder stack, then pop that stack and run DFS on the
// forward graph from each unvisited node to collect one component per call.
// This order is a reverse-topological order of the component DAG — a
// component's dependencies are fully computed before the component itself,
// which is exactly the order the fixpoint driver needs to process them in.
func (g *Graph) SCCs() [][]int {
	rev := g.reverse()
	visited := make([]bool, g.n)
	var stack []int
	for i := 0; i < g.n; i++ {
		if !visited[i] {
			rev.dfsPostorder(i, visited, &stack)
		}
	}

	visited2 := make([]bool, g.n)
	var comps [][]int
	for i := len(stack) - 1; i >= 0; i-- {
		n := stack[i]
		if visited2[n] {
			continue
		}
		var comp []int
		g.dfsCollect(n, visited2, &comp)
		comps = append(comps, comp)
	}
	return comps
}

func (g *Graph) dfsPostorder(n int, visited []bool, stack *[]int) {
	visited[n] = true
	for _, m := range g.adj[n] {
		if !visited[m] {
			g.dfsPostorder(m, visited, stack)
		}
	}
	*stack = append(*stack, n)
}

func (g *Graph) dfsCollect(n int, visited []bool, comp *[]int) {
	visited[n] = true
	*comp = append(*comp, n)
	for _, m := range g.adj[n] {
		if !visited[m] {
			g.dfsCollect(m, visited, comp)
		}
	}
}

// IsRecursive reports whether a component needs iteration to a fixed point:
// true for any component with more than one rule, or a single-rule
// component whose one rule has a self-loop (its body references its own
// head), false for a single non-self-referencing rule, which needs exactly
// one evaluation pass.
func (g *Graph) IsRecursive(comp []int) bool {
	if len(comp) > 1 {
		return true
	}
	n := comp[0]
	for _, m := range g.adj[n] {
		if m == n {
			return true
		}
	}
	return false
}
