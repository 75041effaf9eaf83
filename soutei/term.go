package soutei

import "fmt"

// Term is either a ground Value or a Var. There are no function symbols,
// so terms never nest.
type Term interface {
	IsVariable() bool
	String() string
}

// Const wraps a ground value as a term.
type Const struct {
	Value Value
}

func (c Const) IsVariable() bool { return false }
func (c Const) String() string   { return FormatValue(c.Value) }

// Var is a variable identifier. Source variables carry epoch 0; the
// resolver rewrites them to the epoch of the rule invocation, so two
// instances of the same rule never share variables regardless of name.
type Var struct {
	Epoch int
	Name  string
}

func (v Var) IsVariable() bool { return true }

func (v Var) String() string {
	if v.Epoch == 0 {
		return "?" + v.Name
	}
	return fmt.Sprintf("?%s#%d", v.Name, v.Epoch)
}

// NewVar creates a source-level variable (epoch 0).
func NewVar(name string) Var {
	return Var{Name: name}
}

// TermsEqual reports structural equality of two terms.
func TermsEqual(a, b Term) bool {
	switch at := a.(type) {
	case Const:
		if bt, ok := b.(Const); ok {
			return ValuesEqual(at.Value, bt.Value)
		}
		return false
	case Var:
		if bt, ok := b.(Var); ok {
			return at == bt
		}
		return false
	}
	return false
}

// atEpoch rewrites a source variable to the given epoch. Constants pass
// through untouched.
func atEpoch(t Term, epoch int) Term {
	if v, ok := t.(Var); ok {
		v.Epoch = epoch
		return v
	}
	return t
}
