package datalog

import "strings"

// Predicate is a reference to a relation by name with a fixed-order list of
// parameters, e.g. Path(X,Y) or snap("12345",N,A,P). Schemes and rule heads
// carry only Variable parameters; facts carry only Constant parameters;
// query and rule-body predicates may mix both.
type Predicate struct {
	Name   string
	Params []Param
}

// Arity returns the number of parameters.
func (p Predicate) Arity() int {
	return len(p.Params)
}

// String renders the predicate in traditional datalog syntax.
func (p Predicate) String() string {
	var b strings.Builder
	b.WriteString(p.Name)
	b.WriteByte('(')
	for i, param := range p.Params {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(param.String())
	}
	b.WriteByte(')')
	return b.String()
}

// Rule is a head predicate derived from a conjunction of one or more body
// predicates: Head :- Body[0], Body[1], ...
type Rule struct {
	Head Predicate
	Body []Predicate
}

// String renders the rule in traditional datalog syntax.
func (r Rule) String() string {
	var b strings.Builder
	b.WriteString(r.Head.String())
	b.WriteString(" :- ")
	for i, p := range r.Body {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(p.String())
	}
	b.WriteString(".")
	return b.String()
}

// Program is the full AST produced by the parser: the declared schemes,
// ground facts, recursive rules, and queries of a single datalog source
// file, plus the set of distinct constants seen across the facts (the
// Herbrand domain the fixpoint driver's termination argument relies on).
type Program struct {
	Schemes []Predicate
	Facts   []Predicate
	Rules   []Rule
	Queries []Predicate
	Domain  map[Value]struct{}
}

// NewProgram returns an empty Program ready to be populated by a parser.
func NewProgram() *Program {
	return &Program{Domain: make(map[Value]struct{})}
}

// AddDomainValue records v as a member of the Herbrand domain.
func (p *Program) AddDomainValue(v Value) {
	p.Domain[v] = struct{}{}
}
