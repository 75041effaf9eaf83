package engine

import (
	"testing"

	"github.com/wbrown/janus-soutei/soutei"
	"github.com/wbrown/janus-soutei/soutei/annotations"
)

func TestCompileQuery(t *testing.T) {
	q := CompileQuery("app", "path", []soutei.Term{soutei.NewVar("x")})
	ref, ok := q.Assn.(soutei.PrincipalRef)
	if !ok {
		t.Fatalf("expected principal ref, got %T", q.Assn)
	}
	if c := ref.Term.(soutei.Const); c.Value != "app" {
		t.Errorf("principal = %v", c.Value)
	}

	// A leading colon selects the native namespace; the colon itself is
	// stripped, matching the rule-file syntax.
	nq := CompileQuery(":ldap", "user-group", []soutei.Term{soutei.NewVar("u"), soutei.NewVar("g")})
	nref, ok := nq.Assn.(soutei.NativeRef)
	if !ok {
		t.Fatalf("expected native ref, got %T", nq.Assn)
	}
	if nref.Name != "ldap" {
		t.Errorf("native name = %q", nref.Name)
	}
}

func TestRunStatsTermination(t *testing.T) {
	db := reachabilityDB(t)

	// A single-fact query exhausts its stream.
	_, stats := RunWithOptions(Options{}, testStepLimit, testAnswerLimit, db, intQuery("edge", 1, 2))
	if stats.Termination != TermExhausted {
		t.Errorf("expected exhausted, got %s", stats.Termination)
	}
	if stats.Answers != 1 {
		t.Errorf("expected 1 answer, got %d", stats.Answers)
	}

	// The recursive query fills the answer budget first.
	_, stats = RunWithOptions(Options{}, testStepLimit, 5, db, intQuery("path", 1, "y"))
	if stats.Termination != TermAnswerLimit {
		t.Errorf("expected answer-limit, got %s", stats.Termination)
	}
	if stats.Answers != 5 {
		t.Errorf("expected 5 answers, got %d", stats.Answers)
	}

	if stats.RunID == "" {
		t.Error("runs must carry an identifier")
	}
}

func TestRunEmitsAnnotations(t *testing.T) {
	db := reachabilityDB(t)

	var names []string
	opts := Options{Handler: func(e annotations.Event) { names = append(names, e.Name) }}
	answers, _ := RunWithOptions(opts, testStepLimit, testAnswerLimit, db, intQuery("edge", 1, 2))
	if len(answers) != 1 {
		t.Fatalf("expected 1 answer, got %d", len(answers))
	}

	seen := make(map[string]bool)
	for _, n := range names {
		seen[n] = true
	}
	for _, want := range []string{
		annotations.RunInvoked,
		annotations.ResolveDispatch,
		annotations.AnswerEmitted,
		annotations.RunCompleted,
	} {
		if !seen[want] {
			t.Errorf("missing event %s in %v", want, names)
		}
	}
}
