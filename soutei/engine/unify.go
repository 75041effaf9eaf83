package engine

import (
	"github.com/wbrown/janus-soutei/soutei"
)

// Unify attempts to make two terms equal under the state's substitution.
// On success it returns the (possibly extended) state; on failure it
// returns (nil, false). Failure is not an error - it signals "no solution
// on this branch" to the scheduler.
//
// With no compound terms there is nothing to occur-check: a variable can
// only be bound to a value or to another variable, and bindings always
// point from the newly bound variable to the representative, so the
// substitution stays acyclic.
func Unify(st *State, a, b soutei.Term) (*State, bool) {
	a = st.Walk(a)
	b = st.Walk(b)

	if soutei.TermsEqual(a, b) {
		return st, true
	}
	if av, ok := a.(soutei.Var); ok {
		return st.extend(av, b), true
	}
	if bv, ok := b.(soutei.Var); ok {
		return st.extend(bv, a), true
	}
	return nil, false
}

// UnifyArgs unifies two argument vectors pairwise. A length mismatch is
// a unification failure, not a contract violation; arities are checked
// at construction time elsewhere.
func UnifyArgs(st *State, xs, ys []soutei.Term) (*State, bool) {
	if len(xs) != len(ys) {
		return nil, false
	}
	for i := range xs {
		var ok bool
		st, ok = Unify(st, xs[i], ys[i])
		if !ok {
			return nil, false
		}
	}
	return st, true
}
