package datalog

import "fmt"

// UndeclaredRelationError reports a reference to a relation name with no
// corresponding Scheme. It is fatal: the program was not well-formed.
type UndeclaredRelationError struct {
	Name string
}

func (e *UndeclaredRelationError) Error() string {
	return fmt.Sprintf("datalog: undeclared relation %q", e.Name)
}

// ArityMismatchError reports a fact, rule head, or query whose parameter
// count disagrees with its relation's declared scheme. It is also raised,
// with Expected equal to Got, when a parameter has the wrong kind: a
// Constant in a scheme or rule head, or a Variable in a fact.
type ArityMismatchError struct {
	Name     string
	Expected int
	Got      int
}

func (e *ArityMismatchError) Error() string {
	return fmt.Sprintf("datalog: %q expects %d argument(s), got %d", e.Name, e.Expected, e.Got)
}

// SchemeMismatchError reports an attempt to union or difference two
// relations whose schemes are not identical in length and column order.
type SchemeMismatchError struct {
	Left  string
	Right string
}

func (e *SchemeMismatchError) Error() string {
	return fmt.Sprintf("datalog: relations %q and %q are not union compatible", e.Left, e.Right)
}
