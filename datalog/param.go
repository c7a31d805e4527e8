package datalog

// Param is a single argument of a predicate reference: either a Constant or
// a Variable. Head predicates of rules and schemes contain only Variables;
// facts contain only Constants; query and body predicates may contain
// either. This tagged-variant shape replaces the original C++ source's
// boolean "isID" flag, which encoded "true means variable name, false means
// string literal" positionally and implicitly.
type Param interface {
	isParam()
	String() string
}

// Constant is a literal datalog value appearing as a predicate argument.
type Constant struct {
	Value Value
}

func (Constant) isParam() {}

func (c Constant) String() string {
	return string(c.Value)
}

// Variable is a named placeholder appearing as a predicate argument.
type Variable struct {
	Name string
}

func (Variable) isParam() {}

func (v Variable) String() string {
	return v.Name
}
