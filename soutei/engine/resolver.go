package engine

import (
	"github.com/wbrown/janus-soutei/soutei"
)

// Resolve finds the compiled predicate for a goal and dispatches the
// call against it. Dispatch always goes through one suspension node -
// that yield is what lets the scheduler interleave recursive queries
// instead of diving depth-first into one rule forever.
//
// Any lookup failure - missing assertion, missing predicate, unground
// assertion reference - fails the branch by returning the empty stream.
func Resolve(goal soutei.Goal, st *State) *Stream {
	pred, ok := st.lookupPred(goal)
	if !ok {
		return nil
	}
	call := goal.Lit
	return Suspend(func() *Stream {
		st.obs.dispatch(goal)
		return pred(call, st)
	})
}

// lookupPred selects the compiled predicate the goal addresses. Native
// references index the native map by name; principal references are
// walked and must be ground values before indexing the rule map.
func (s *State) lookupPred(goal soutei.Goal) (CompiledPred, bool) {
	switch ref := goal.Assn.(type) {
	case soutei.NativeRef:
		asn, ok := s.db.Native[ref.Name]
		if !ok {
			s.obs.missingAssertion(ref)
			return nil, false
		}
		np, ok := asn[goal.Lit.Pred]
		if !ok {
			s.obs.missingPredicate(ref, goal.Lit.Pred)
			return nil, false
		}
		return np.Eval, true

	case soutei.PrincipalRef:
		t := s.Walk(ref.Term)
		c, ok := t.(soutei.Const)
		if !ok {
			s.obs.ungroundAssertion(goal)
			return nil, false
		}
		if !soutei.ValidValue(c.Value) {
			return nil, false
		}
		asn, ok := s.db.Rules[c.Value]
		if !ok {
			s.obs.missingAssertion(ref)
			return nil, false
		}
		pred, ok := asn[goal.Lit.Pred]
		if !ok {
			s.obs.missingPredicate(ref, goal.Lit.Pred)
			return nil, false
		}
		return pred, true
	}
	return nil, false
}

// compileGroup compiles the rules sharing one predicate key into a
// single dispatchable predicate. Each invocation allocates one fresh
// epoch shared by every rule in the group, then branches over the rules
// with fair disjunction.
func compileGroup(rules []soutei.Rule) CompiledPred {
	return func(call soutei.Literal, st *State) *Stream {
		st, epoch := st.nextEpoch()
		var out *Stream
		for i := len(rules) - 1; i >= 0; i-- {
			out = Interleave(ruleBranch(rules[i], epoch, call, st), out)
		}
		return out
	}
}

// ruleBranch tries one rule: rename the head into the invocation epoch,
// unify it with the call, then resolve the body literals in order.
func ruleBranch(rule soutei.Rule, epoch int, call soutei.Literal, st *State) *Stream {
	head := rule.Head.AtEpoch(epoch)
	st, ok := UnifyArgs(st, head.Args, call.Args)
	if !ok {
		return nil
	}
	return resolveBody(rule.Body, epoch, st)
}

// resolveBody conjoins the body goals left to right. The recursion is
// guarded: Resolve returns a suspension before doing any work, so even a
// left-recursive first goal cannot run away.
func resolveBody(body []soutei.Goal, epoch int, st *State) *Stream {
	if len(body) == 0 {
		return Unit(st)
	}
	goal := body[0].AtEpoch(epoch)
	rest := body[1:]
	return Bind(Resolve(goal, st), func(st2 *State) *Stream {
		return resolveBody(rest, epoch, st2)
	})
}
