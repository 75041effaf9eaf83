package engine

import (
	"fmt"

	"github.com/wbrown/janus-soutei/soutei"
)

// CompiledPred resolves a caller-side literal against one predicate and
// emits zero or more successful states. The call literal carries the
// caller's epoch variables; the predicate renames its own variables
// apart before unifying.
type CompiledPred func(call soutei.Literal, st *State) *Stream

// Assertion is a compiled rule assertion: predicate key to compiled
// predicate.
type Assertion map[soutei.PredKey]CompiledPred

// NativePred bundles the invocation function of a host-language
// predicate with the moded signature the mode checker consults.
type NativePred struct {
	Sig  soutei.ModedLiteral
	Eval CompiledPred
}

// NativeAssertion is a native assertion: predicate key to native
// predicate.
type NativeAssertion map[soutei.PredKey]NativePred

// Database holds rule assertions keyed by principal value and native
// assertions keyed by name. The two namespaces never overlap - they use
// distinct key types in distinct maps. The database is read-only during
// a query; installs and retracts produce a new value.
type Database struct {
	Rules  map[soutei.Value]Assertion
	Native map[string]NativeAssertion
}

// NewDatabase creates an empty database.
func NewDatabase() Database {
	return Database{
		Rules:  make(map[soutei.Value]Assertion),
		Native: make(map[string]NativeAssertion),
	}
}

// Merge unions two databases componentwise; entries in other win on
// collision. This is the database's monoid operation.
func (db Database) Merge(other Database) Database {
	out := db.clone()
	for principal, asn := range other.Rules {
		out.Rules[principal] = asn
	}
	for name, asn := range other.Native {
		out.Native[name] = asn
	}
	return out
}

// InstallRules returns a database with the assertion bound to the
// principal replaced.
func (db Database) InstallRules(principal soutei.Value, asn Assertion) Database {
	out := db.clone()
	out.Rules[principal] = asn
	return out
}

// RetractRules returns a database with the principal's assertion
// removed.
func (db Database) RetractRules(principal soutei.Value) Database {
	out := db.clone()
	delete(out.Rules, principal)
	return out
}

// InstallNative returns a database with the named native assertion
// replaced.
func (db Database) InstallNative(name string, asn NativeAssertion) Database {
	out := db.clone()
	out.Native[name] = asn
	return out
}

// clone copies the top-level maps; assertion values are shared, which is
// safe because compiled assertions are immutable once built.
func (db Database) clone() Database {
	out := NewDatabase()
	for principal, asn := range db.Rules {
		out.Rules[principal] = asn
	}
	for name, asn := range db.Native {
		out.Native[name] = asn
	}
	return out
}

// CompileRules groups rules by head predicate key and wraps each group
// in a compiled predicate. Rules keep their relative order within a
// group, though under fair disjunction the order only affects answer
// order, never answer existence.
func CompileRules(rules []soutei.Rule) (Assertion, error) {
	groups := make(map[soutei.PredKey][]soutei.Rule)
	var order []soutei.PredKey

	for i, r := range rules {
		if r.Head.Pred.Arity != len(r.Head.Args) {
			return nil, fmt.Errorf("rule %d: head %s declares arity %d but has %d arguments",
				i, r.Head.Pred.Name, r.Head.Pred.Arity, len(r.Head.Args))
		}
		for _, g := range r.Body {
			if g.Lit.Pred.Arity != len(g.Lit.Args) {
				return nil, fmt.Errorf("rule %d: body literal %s declares arity %d but has %d arguments",
					i, g.Lit.Pred.Name, g.Lit.Pred.Arity, len(g.Lit.Args))
			}
		}
		key := r.Head.Pred
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], r)
	}

	asn := make(Assertion, len(groups))
	for _, key := range order {
		asn[key] = compileGroup(groups[key])
	}
	return asn, nil
}
