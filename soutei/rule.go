package soutei

import "fmt"

// AssertionRef is the "assn" part of "assn says lit": either a principal
// term or a lexically distinguished native assertion name. Keeping the
// two tagged distinctly (rather than collapsing both into Value) leaves
// room for signed native assertions later.
type AssertionRef interface {
	isAssertionRef()
	String() string
}

// PrincipalRef refers to a rule assertion by principal value. The term
// may be a variable, in which case it must be ground by the time the
// resolver reaches the goal.
type PrincipalRef struct {
	Term Term
}

func (PrincipalRef) isAssertionRef() {}
func (r PrincipalRef) String() string { return r.Term.String() }

// NativeRef refers to a native assertion by name. Native references are
// never variables.
type NativeRef struct {
	Name string
}

func (NativeRef) isAssertionRef() {}
func (r NativeRef) String() string { return ":" + r.Name }

// Goal is a body literal: assn says lit. It is the unit of resolution.
type Goal struct {
	Assn AssertionRef
	Lit  Literal
}

func (g Goal) String() string {
	return fmt.Sprintf("%s says %s", g.Assn, g.Lit)
}

// AtEpoch rewrites the goal's source variables (including a variable
// assertion reference) to the given epoch.
func (g Goal) AtEpoch(epoch int) Goal {
	assn := g.Assn
	if p, ok := assn.(PrincipalRef); ok {
		assn = PrincipalRef{Term: atEpoch(p.Term, epoch)}
	}
	return Goal{Assn: assn, Lit: g.Lit.AtEpoch(epoch)}
}

// Rule is head :- body. Head variables are source variables; the
// resolver annotates them with the rule instance's epoch at evaluation
// time. A rule with an empty body is a fact.
type Rule struct {
	Head Literal
	Body []Goal
}

func (r Rule) String() string {
	if len(r.Body) == 0 {
		return r.Head.String() + "."
	}
	s := r.Head.String() + " :- "
	for i, g := range r.Body {
		if i > 0 {
			s += ", "
		}
		s += g.String()
	}
	return s + "."
}
