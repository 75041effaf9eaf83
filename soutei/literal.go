package soutei

import (
	"fmt"
	"strings"
)

// PredKey identifies a predicate by name and arity. Two predicates with
// the same name but different arity are distinct.
type PredKey struct {
	Name  string
	Arity int
}

func (k PredKey) String() string {
	return fmt.Sprintf("%s/%d", k.Name, k.Arity)
}

// Literal is a predicate applied to an ordered sequence of terms.
// The argument count always equals the predicate's arity; NewLiteral
// derives the key from the arguments so the invariant holds by
// construction.
type Literal struct {
	Pred PredKey
	Args []Term
}

// NewLiteral creates a literal, deriving the predicate key from the
// argument count.
func NewLiteral(name string, args ...Term) Literal {
	return Literal{
		Pred: PredKey{Name: name, Arity: len(args)},
		Args: args,
	}
}

func (l Literal) String() string {
	if len(l.Args) == 0 {
		return l.Pred.Name
	}
	parts := make([]string, len(l.Args))
	for i, a := range l.Args {
		parts[i] = a.String()
	}
	return l.Pred.Name + "(" + strings.Join(parts, ", ") + ")"
}

// AtEpoch returns a copy of the literal with every source variable
// rewritten to the given epoch.
func (l Literal) AtEpoch(epoch int) Literal {
	args := make([]Term, len(l.Args))
	for i, a := range l.Args {
		args[i] = atEpoch(a, epoch)
	}
	return Literal{Pred: l.Pred, Args: args}
}

// Mode is the declared direction of a native predicate argument.
type Mode int

const (
	// In arguments must be ground at the moment of call.
	In Mode = iota
	// Out arguments may be unbound; the predicate grounds them on success.
	Out
)

func (m Mode) String() string {
	if m == In {
		return "in"
	}
	return "out"
}

// ModedArg pairs a placeholder name with its mode.
type ModedArg struct {
	Name string
	Mode Mode
}

// ModedLiteral is the signature a native predicate advertises: the
// predicate key plus per-argument modes. The mode checker consults it
// when accepting user rules that call the predicate.
type ModedLiteral struct {
	Pred PredKey
	Args []ModedArg
}

func (m ModedLiteral) String() string {
	parts := make([]string, len(m.Args))
	for i, a := range m.Args {
		parts[i] = fmt.Sprintf("%s:%s", a.Name, a.Mode)
	}
	return m.Pred.Name + "(" + strings.Join(parts, ", ") + ")"
}
