package engine

import (
	"github.com/wbrown/janus-soutei/soutei"
)

// binding is one cell of the persistent substitution. Extending the
// substitution conses a new cell; sibling branches keep their own chain,
// so backtracking needs no trail.
type binding struct {
	v    soutei.Var
	t    soutei.Term
	next *binding
}

// State is the runtime state threaded through a resolution branch: the
// substitution, the next fresh epoch, and the database. States are
// immutable; every extension returns a new State sharing the old chain.
// The observer is shared across branches deliberately - events on
// abandoned branches are still performed in scheduler-visit order.
type State struct {
	env   *binding
	epoch int
	db    Database
	obs   *Observer
}

// newState creates the initial state for a run. The epoch counter starts
// at 1 so that rule instances never collide with query variables, which
// carry epoch 0.
func newState(db Database, obs *Observer) *State {
	return &State{epoch: 1, db: db, obs: obs}
}

// Walk returns the representative of a term under the current
// substitution: values map to themselves, unbound variables to
// themselves, bound variables to the walk of their binding. The
// substitution is acyclic by construction, so the loop terminates.
func (s *State) Walk(t soutei.Term) soutei.Term {
	for {
		v, ok := t.(soutei.Var)
		if !ok {
			return t
		}
		bound, ok := s.lookup(v)
		if !ok {
			return t
		}
		t = bound
	}
}

func (s *State) lookup(v soutei.Var) (soutei.Term, bool) {
	for b := s.env; b != nil; b = b.next {
		if b.v == v {
			return b.t, true
		}
	}
	return nil, false
}

// extend binds v to t in a new state. Callers must pass a walked v that
// is unbound; Unify is the only caller.
func (s *State) extend(v soutei.Var, t soutei.Term) *State {
	ns := *s
	ns.env = &binding{v: v, t: t, next: s.env}
	return &ns
}

// nextEpoch allocates a fresh epoch for one predicate invocation and
// returns the successor state. The bump is per invocation, not per rule:
// every rule in the dispatched group shares the returned epoch, while a
// recursive call sees the incremented counter and allocates its own.
func (s *State) nextEpoch() (*State, int) {
	e := s.epoch
	ns := *s
	ns.epoch = e + 1
	return &ns, e
}

// Observer returns the run's observer. Never nil-dereferences: a nil
// observer is valid and all its methods are no-ops.
func (s *State) Observer() *Observer {
	return s.obs
}

// WalkLiteral applies the current substitution to every argument of a
// literal. This is what turns a successful resolution into the grounded
// call-site literal the caller sees.
func (s *State) WalkLiteral(lit soutei.Literal) soutei.Literal {
	args := make([]soutei.Term, len(lit.Args))
	for i, a := range lit.Args {
		args[i] = s.Walk(a)
	}
	return soutei.Literal{Pred: lit.Pred, Args: args}
}
