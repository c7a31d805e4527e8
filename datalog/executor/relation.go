// Package executor implements the relational-algebra evaluation engine: the
// Relation type and its operations, the Database that holds relations by
// name, the Predicate Evaluator that turns a single predicate reference
// into a relation of bindings, and the Query Runner.
package executor

import (
	"fmt"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/wbrown/stratadb/datalog"
)

// Relation is a named (scheme, set-of-tuples) pair implementing relational
// algebra. Relations returned by algebra operations are fresh values;
// Relation is never mutated in place except by Database, which replaces a
// head relation's tuple set with its union with newly derived tuples.
type Relation struct {
	name   string
	scheme datalog.Scheme
	tuples map[string]datalog.Tuple
}

// New returns an empty relation with the given name and scheme.
func New(name string, scheme datalog.Scheme) *Relation {
	return &Relation{
		name:   name,
		scheme: scheme.Clone(),
		tuples: make(map[string]datalog.Tuple),
	}
}

// Name returns the relation's name.
func (r *Relation) Name() string {
	return r.name
}

// Scheme returns the relation's column names, in order.
func (r *Relation) Scheme() datalog.Scheme {
	return r.scheme
}

// Size returns the relation's tuple-set cardinality.
func (r *Relation) Size() int {
	return len(r.tuples)
}

// Add inserts a tuple, ignoring it if an equal tuple is already present.
// Panics if the tuple's arity disagrees with the relation's scheme: that is
// an internal invariant violation, never a user-facing error.
func (r *Relation) Add(t datalog.Tuple) {
	if len(t) != len(r.scheme) {
		panic(fmt.Sprintf("executor: tuple arity %d does not match scheme %v", len(t), r.scheme))
	}
	r.tuples[t.Key()] = t
}

// Sorted returns the relation's tuples in lexicographic order by value
// sequence, the deterministic iteration and printing order the contract
// requires.
func (r *Relation) Sorted() []datalog.Tuple {
	out := make([]datalog.Tuple, 0, len(r.tuples))
	for _, t := range r.tuples {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// String prints the relation as its tuples, one per line, each formatted as
// "  name=value, name=value, ...", sorted lexicographically.
func (r *Relation) String() string {
	lines := make([]string, 0, len(r.tuples))
	for _, t := range r.Sorted() {
		lines = append(lines, "  "+t.Format(r.scheme))
	}
	return strings.Join(lines, "\n")
}

// Table renders the relation as a markdown table via tablewriter. This is
// additive diagnostic output (CLI -table flag); the contractual output
// format is String(), never this.
func (r *Relation) Table() string {
	var b strings.Builder

	alignment := make([]tw.Align, len(r.scheme))
	for i := range alignment {
		alignment[i] = tw.AlignNone
	}

	table := tablewriter.NewTable(&b,
		tablewriter.WithRenderer(renderer.NewMarkdown()),
		tablewriter.WithAlignment(alignment),
		tablewriter.WithHeaderAutoFormat(tw.Off),
	)
	table.Header([]string(r.scheme))
	for _, t := range r.Sorted() {
		row := make([]string, len(t))
		for i, v := range t {
			row[i] = string(v)
		}
		table.Append(row)
	}
	table.Render()
	fmt.Fprintf(&b, "\n_%d rows_\n", r.Size())
	return b.String()
}

// WithName returns a shallow copy of the relation under a different name,
// sharing its scheme and tuple set. Used when a derived relation (which
// naturally takes its leftmost body predicate's name as it is built) must be
// attributed to a rule's head relation instead.
func (r *Relation) WithName(name string) *Relation {
	return &Relation{name: name, scheme: r.scheme, tuples: r.tuples}
}

// SelectConst keeps tuples with tuple[i] == v, preserving name and scheme.
// Panics if i is out of range: the Predicate Evaluator only ever supplies
// in-range positions, so an out-of-range index is a bug, not ill-formed
// input.
func (r *Relation) SelectConst(i int, v datalog.Value) *Relation {
	if i < 0 || i >= len(r.scheme) {
		panic(fmt.Sprintf("executor: select_const index %d out of range for scheme %v", i, r.scheme))
	}
	out := New(r.name, r.scheme)
	for _, t := range r.tuples {
		if t[i] == v {
			out.Add(t)
		}
	}
	return out
}

// SelectEq keeps tuples where tuple[positions[0]] == tuple[positions[k]] for
// every k, enforcing a repeated variable within one predicate. Requires at
// least two positions.
func (r *Relation) SelectEq(positions []int) *Relation {
	if len(positions) < 2 {
		panic("executor: select_eq requires at least two positions")
	}
	for _, p := range positions {
		if p < 0 || p >= len(r.scheme) {
			panic(fmt.Sprintf("executor: select_eq position %d out of range for scheme %v", p, r.scheme))
		}
	}
	out := New(r.name, r.scheme)
	first := positions[0]
	for _, t := range r.tuples {
		equal := true
		for _, p := range positions[1:] {
			if t[p] != t[first] {
				equal = false
				break
			}
		}
		if equal {
			out.Add(t)
		}
	}
	return out
}

// Project produces a relation whose scheme is [scheme[i] for i in indices]
// (order preserved, duplicates allowed), with tuples the pointwise
// projections. Empty indices yields a relation with an empty scheme and no
// tuples. Panics on an out-of-range index (internal invariant violation).
func (r *Relation) Project(indices []int) *Relation {
	newScheme := make(datalog.Scheme, len(indices))
	for i, idx := range indices {
		if idx < 0 || idx >= len(r.scheme) {
			panic(fmt.Sprintf("executor: project index %d out of range for scheme %v", idx, r.scheme))
		}
		newScheme[i] = r.scheme[idx]
	}
	out := New(r.name, newScheme)
	if len(indices) == 0 {
		return out
	}
	for _, t := range r.tuples {
		nt := make(datalog.Tuple, len(indices))
		for i, idx := range indices {
			nt[i] = t[idx]
		}
		out.Add(nt)
	}
	return out
}

// ProjectNames resolves each name to the first matching column in scheme and
// delegates to Project. Returns an error if a name does not exist: unlike
// Project's index form, this is reachable from caller-supplied head/rename
// names and so is not treated as a bug.
func (r *Relation) ProjectNames(names []string) (*Relation, error) {
	indices := make([]int, len(names))
	for i, name := range names {
		idx := r.scheme.IndexOf(name)
		if idx < 0 {
			return nil, fmt.Errorf("executor: relation %q has no column %q", r.name, name)
		}
		indices[i] = idx
	}
	return r.Project(indices), nil
}

// Rename replaces the scheme column-wise; tuples are unchanged. Requires
// len(newNames) == arity.
func (r *Relation) Rename(newNames []string) *Relation {
	if len(newNames) != len(r.scheme) {
		panic(fmt.Sprintf("executor: rename needs %d names, got %d", len(r.scheme), len(newNames)))
	}
	out := New(r.name, datalog.Scheme(newNames))
	for _, t := range r.tuples {
		out.Add(t)
	}
	return out
}

// Union returns the set union of tuples, requiring identical schemes (same
// length, same names in the same order). Preserves self's name.
func (r *Relation) Union(other *Relation) (*Relation, error) {
	if !r.scheme.Equal(other.scheme) {
		return nil, &datalog.SchemeMismatchError{Left: r.name, Right: other.name}
	}
	out := New(r.name, r.scheme)
	for _, t := range r.tuples {
		out.Add(t)
	}
	for _, t := range other.tuples {
		out.Add(t)
	}
	return out, nil
}

// Difference returns tuples present in self but not in other, requiring
// identical schemes.
func (r *Relation) Difference(other *Relation) (*Relation, error) {
	if !r.scheme.Equal(other.scheme) {
		return nil, &datalog.SchemeMismatchError{Left: r.name, Right: other.name}
	}
	out := New(r.name, r.scheme)
	for k, t := range r.tuples {
		if _, ok := other.tuples[k]; !ok {
			out.Add(t)
		}
	}
	return out, nil
}

// NaturalJoin joins self with other over columns sharing a name. The
// combined scheme is self's scheme followed by other's column names that do
// not already appear in self's scheme, in other's original order. For every
// shared name, every occurrence's value must agree across a candidate pair.
// Preserves self's name. There is no "unjoinable" error: non-matching pairs
// are simply excluded from the result.
func (r *Relation) NaturalJoin(other *Relation) *Relation {
	rightOnly, rightOnlyIdx := extraColumns(r.scheme, other.scheme)
	newScheme := append(r.scheme.Clone(), rightOnly...)
	out := New(r.name, newScheme)

	shared := sharedPositions(r.scheme, other.scheme)

	for _, lt := range r.tuples {
		for _, rt := range other.tuples {
			if !joinable(lt, rt, shared) {
				continue
			}
			nt := make(datalog.Tuple, 0, len(newScheme))
			nt = append(nt, lt...)
			for _, idx := range rightOnlyIdx {
				nt = append(nt, rt[idx])
			}
			out.Add(nt)
		}
	}
	return out
}

// extraColumns returns the names (and their indices in rightScheme) of
// right's columns that do not already appear, by name, in left.
func extraColumns(left, right datalog.Scheme) (datalog.Scheme, []int) {
	var names datalog.Scheme
	var idx []int
	for i, name := range right {
		if left.IndexOf(name) < 0 {
			names = append(names, name)
			idx = append(idx, i)
		}
	}
	return names, idx
}

type joinPos struct {
	left, right []int // all positions in left/right sharing one name
}

// sharedPositions groups, for every name common to both schemes, all
// positions at which that name occurs in each scheme.
func sharedPositions(left, right datalog.Scheme) []joinPos {
	byName := make(map[string]*joinPos)
	var order []string
	for i, name := range left {
		jp, ok := byName[name]
		if !ok {
			jp = &joinPos{}
			byName[name] = jp
			order = append(order, name)
		}
		jp.left = append(jp.left, i)
	}
	for i, name := range right {
		if jp, ok := byName[name]; ok {
			jp.right = append(jp.right, i)
		}
	}
	var shared []joinPos
	for _, name := range order {
		jp := byName[name]
		if len(jp.right) > 0 {
			shared = append(shared, *jp)
		}
	}
	return shared
}

// joinable reports whether every shared-name column agrees, across all its
// occurrences on both sides, between the two candidate tuples.
func joinable(left, right datalog.Tuple, shared []joinPos) bool {
	for _, jp := range shared {
		v := left[jp.left[0]]
		for _, li := range jp.left {
			if left[li] != v {
				return false
			}
		}
		for _, ri := range jp.right {
			if right[ri] != v {
				return false
			}
		}
	}
	return true
}
