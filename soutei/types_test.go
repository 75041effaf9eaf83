package soutei

import (
	"testing"
)

func TestLiteralString(t *testing.T) {
	lit := NewLiteral("edge", Const{Value: int64(1)}, NewVar("y"))
	if got := lit.String(); got != "edge(1, ?y)" {
		t.Errorf("got %q", got)
	}

	zero := NewLiteral("ready")
	if got := zero.String(); got != "ready" {
		t.Errorf("got %q", got)
	}
}

func TestNewLiteralDerivesArity(t *testing.T) {
	lit := NewLiteral("p", Const{Value: "a"}, Const{Value: "b"})
	if lit.Pred.Arity != 2 {
		t.Errorf("expected arity 2, got %d", lit.Pred.Arity)
	}
	if (lit.Pred != PredKey{Name: "p", Arity: 2}) {
		t.Errorf("unexpected key %v", lit.Pred)
	}
}

func TestAtEpochRewritesVariables(t *testing.T) {
	lit := NewLiteral("p", NewVar("x"), Const{Value: "c"})
	renamed := lit.AtEpoch(7)

	v, ok := renamed.Args[0].(Var)
	if !ok || v.Epoch != 7 || v.Name != "x" {
		t.Errorf("expected ?x#7, got %v", renamed.Args[0])
	}
	if !TermsEqual(renamed.Args[1], Const{Value: "c"}) {
		t.Errorf("constant should pass through, got %v", renamed.Args[1])
	}

	// The source literal is untouched.
	if lit.Args[0].(Var).Epoch != 0 {
		t.Error("AtEpoch must not mutate the source literal")
	}
}

func TestGoalAtEpochRewritesAssertionRef(t *testing.T) {
	goal := Goal{
		Assn: PrincipalRef{Term: NewVar("a")},
		Lit:  NewLiteral("p", NewVar("x")),
	}
	renamed := goal.AtEpoch(3)

	ref := renamed.Assn.(PrincipalRef)
	if ref.Term.(Var).Epoch != 3 {
		t.Errorf("assertion reference variable should be renamed, got %v", ref.Term)
	}

	native := Goal{Assn: NativeRef{Name: "ldap"}, Lit: NewLiteral("p", NewVar("x"))}
	if native.AtEpoch(3).Assn.(NativeRef).Name != "ldap" {
		t.Error("native references pass through unchanged")
	}
}

func TestRuleString(t *testing.T) {
	rule := Rule{
		Head: NewLiteral("path", NewVar("x"), NewVar("y")),
		Body: []Goal{
			{Assn: PrincipalRef{Term: Const{Value: "app"}}, Lit: NewLiteral("edge", NewVar("x"), NewVar("y"))},
		},
	}
	want := "path(?x, ?y) :- app says edge(?x, ?y)."
	if got := rule.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	fact := Rule{Head: NewLiteral("edge", Const{Value: int64(1)}, Const{Value: int64(2)})}
	if got := fact.String(); got != "edge(1, 2)." {
		t.Errorf("got %q", got)
	}
}

func TestModedLiteralString(t *testing.T) {
	sig := ModedLiteral{
		Pred: PredKey{Name: "user-group", Arity: 2},
		Args: []ModedArg{{Name: "user", Mode: In}, {Name: "group", Mode: Out}},
	}
	if got := sig.String(); got != "user-group(user:in, group:out)" {
		t.Errorf("got %q", got)
	}
}
