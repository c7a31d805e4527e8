package executor

import (
	"fmt"
	"strings"

	"github.com/wbrown/stratadb/datalog"
)

// RunQuery evaluates a query predicate against db and renders it in the
// traditional "Name(args)? Yes(n)" / "Name(args)? No" report, followed by one
// indented line per satisfying binding when the answer is Yes.
func RunQuery(db *Database, q datalog.Predicate) (string, error) {
	rel, err := EvaluatePredicate(db, q)
	if err != nil {
		return "", err
	}

	header := q.String() + "? "
	if rel.Size() == 0 {
		return header + "No", nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%sYes(%d)", header, rel.Size())
	if len(rel.Scheme()) == 0 {
		return b.String(), nil
	}
	for _, t := range rel.Sorted() {
		b.WriteString("\n  ")
		b.WriteString(t.Format(rel.Scheme()))
	}
	return b.String(), nil
}
