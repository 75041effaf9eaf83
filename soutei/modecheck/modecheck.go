// Package modecheck validates submitted rules against the moded
// signatures that native predicates advertise. The engine itself only
// fails branches at runtime; the checker refuses rules up front so a
// misdirected native call never reaches evaluation.
package modecheck

import (
	"fmt"

	"github.com/wbrown/janus-soutei/soutei"
	"github.com/wbrown/janus-soutei/soutei/engine"
)

// Violation pinpoints one mode error in a submitted assertion.
type Violation struct {
	Rule int // rule index within the assertion
	Goal int // body goal index within the rule, -1 for head problems
	Msg  string
}

func (v Violation) Error() string {
	if v.Goal < 0 {
		return fmt.Sprintf("rule %d: %s", v.Rule, v.Msg)
	}
	return fmt.Sprintf("rule %d, goal %d: %s", v.Rule, v.Goal, v.Msg)
}

// CheckAssertion checks every rule of an assertion against the native
// signatures. It returns all violations found; an empty slice means the
// assertion is acceptable.
//
// The dataflow is left to right within each rule body. Head variables
// count as known: the checker treats them as supplied ground by the
// caller. A variable additionally becomes known once it
// appears anywhere in a completed rule-assertion goal, or in an Out
// position of a completed native goal. Native In positions and variable
// assertion references must be known at their position.
func CheckAssertion(rules []soutei.Rule, natives map[string]engine.NativeAssertion) []Violation {
	var violations []Violation
	for i, rule := range rules {
		violations = append(violations, checkRule(i, rule, natives)...)
	}
	return violations
}

func checkRule(ruleIdx int, rule soutei.Rule, natives map[string]engine.NativeAssertion) []Violation {
	var violations []Violation

	known := make(map[string]bool)
	for _, arg := range rule.Head.Args {
		if v, ok := arg.(soutei.Var); ok {
			known[v.Name] = true
		}
	}

	for gi, goal := range rule.Body {
		switch ref := goal.Assn.(type) {
		case soutei.PrincipalRef:
			if v, ok := ref.Term.(soutei.Var); ok && !known[v.Name] {
				violations = append(violations, Violation{
					Rule: ruleIdx, Goal: gi,
					Msg: fmt.Sprintf("assertion reference ?%s cannot be ground at call position", v.Name),
				})
			}
			// A rule-assertion goal may ground any of its variables.
			for _, arg := range goal.Lit.Args {
				if v, ok := arg.(soutei.Var); ok {
					known[v.Name] = true
				}
			}

		case soutei.NativeRef:
			sig, ok := lookupSig(natives, ref.Name, goal.Lit.Pred)
			if !ok {
				violations = append(violations, Violation{
					Rule: ruleIdx, Goal: gi,
					Msg: fmt.Sprintf("unknown native predicate :%s says %s", ref.Name, goal.Lit.Pred),
				})
				continue
			}
			for ai, arg := range goal.Lit.Args {
				v, isVar := arg.(soutei.Var)
				switch sig.Args[ai].Mode {
				case soutei.In:
					if isVar && !known[v.Name] {
						violations = append(violations, Violation{
							Rule: ruleIdx, Goal: gi,
							Msg: fmt.Sprintf("argument %s of %s is In but ?%s cannot be ground here",
								sig.Args[ai].Name, goal.Lit.Pred, v.Name),
						})
					}
				case soutei.Out:
					// The evaluator grounds every Out argument on
					// success, so the variable is known afterwards.
					if isVar {
						known[v.Name] = true
					}
				}
			}
		}
	}
	return violations
}

func lookupSig(natives map[string]engine.NativeAssertion, name string, key soutei.PredKey) (soutei.ModedLiteral, bool) {
	asn, ok := natives[name]
	if !ok {
		return soutei.ModedLiteral{}, false
	}
	np, ok := asn[key]
	if !ok {
		return soutei.ModedLiteral{}, false
	}
	return np.Sig, true
}
