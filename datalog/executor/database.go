package executor

import (
	"sort"
	"sync"

	"github.com/wbrown/stratadb/datalog"
)

// Database holds every declared relation by name. It is the single point of
// mutation in the engine: Union replaces a named relation's tuple set with
// its union with a newly derived relation, which is how the fixpoint driver
// commits each pass's results.
type Database struct {
	mu        sync.RWMutex
	relations map[string]*Relation
	order     []string // declaration order, for deterministic dumps
}

// NewDatabase returns a Database seeded with one empty relation per declared
// scheme.
func NewDatabase(schemes []datalog.Predicate) (*Database, error) {
	db := &Database{relations: make(map[string]*Relation)}
	for _, s := range schemes {
		names := make([]string, len(s.Params))
		for i, p := range s.Params {
			v, ok := p.(datalog.Variable)
			if !ok {
				return nil, &datalog.ArityMismatchError{Name: s.Name, Expected: len(s.Params), Got: len(s.Params)}
			}
			names[i] = v.Name
		}
		db.relations[s.Name] = New(s.Name, datalog.Scheme(names))
		db.order = append(db.order, s.Name)
	}
	return db, nil
}

// Get returns the named relation, or an UndeclaredRelationError if no scheme
// declared it.
func (db *Database) Get(name string) (*Relation, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	r, ok := db.relations[name]
	if !ok {
		return nil, &datalog.UndeclaredRelationError{Name: name}
	}
	return r, nil
}

// AddFact inserts a single ground fact's tuple into its relation, checking
// arity and that every parameter is a Constant.
func (db *Database) AddFact(p datalog.Predicate) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	r, ok := db.relations[p.Name]
	if !ok {
		return &datalog.UndeclaredRelationError{Name: p.Name}
	}
	if p.Arity() != len(r.scheme) {
		return &datalog.ArityMismatchError{Name: p.Name, Expected: len(r.scheme), Got: p.Arity()}
	}
	t := make(datalog.Tuple, p.Arity())
	for i, param := range p.Params {
		c, ok := param.(datalog.Constant)
		if !ok {
			return &datalog.ArityMismatchError{Name: p.Name, Expected: len(r.scheme), Got: p.Arity()}
		}
		t[i] = c.Value
	}
	r.Add(t)
	return nil
}

// Union replaces the named relation with its union with derived, reporting
// the tuples newly added (derived minus the relation's prior contents),
// which the fixpoint driver uses to detect whether a pass made progress.
func (db *Database) Union(name string, derived *Relation) (added *Relation, err error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	current, ok := db.relations[name]
	if !ok {
		return nil, &datalog.UndeclaredRelationError{Name: name}
	}
	newOnly, err := derived.Difference(current)
	if err != nil {
		return nil, err
	}
	merged, err := current.Union(derived)
	if err != nil {
		return nil, err
	}
	db.relations[name] = merged
	return newOnly, nil
}

// Names returns every declared relation name in declaration order.
func (db *Database) Names() []string {
	out := make([]string, len(db.order))
	copy(out, db.order)
	return out
}

// SortedNames returns every declared relation name alphabetically, the order
// queries are reported to the user in Interpreter.cpp-derived CLIs.
func (db *Database) SortedNames() []string {
	out := db.Names()
	sort.Strings(out)
	return out
}
