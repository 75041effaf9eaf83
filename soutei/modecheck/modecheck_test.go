package modecheck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wbrown/janus-soutei/soutei"
	"github.com/wbrown/janus-soutei/soutei/engine"
	"github.com/wbrown/janus-soutei/soutei/native"
	"github.com/wbrown/janus-soutei/soutei/parser"
)

// testNatives declares :ldap with user-group(user:in, group:out).
func testNatives(t *testing.T) map[string]engine.NativeAssertion {
	t.Helper()
	groups := native.Func("user-group",
		[]native.ArgDecoder{native.StringArg("user")},
		native.List{Elem: native.Value{Name: "group"}},
		nil)
	asn, err := native.NewAssertion(groups)
	require.NoError(t, err)
	return map[string]engine.NativeAssertion{"ldap": asn}
}

func mustParse(t *testing.T, source string) []soutei.Rule {
	t.Helper()
	rules, err := parser.ParseAssertion(source)
	require.NoError(t, err)
	return rules
}

func TestAcceptsWellModedRules(t *testing.T) {
	rules := mustParse(t, `
may(?u, read) :- :ldap says user-group(?u, staff).
reach(?x, ?y) :- app says edge(?x, ?y).
groups(?u, ?g) :- :ldap says user-group(?u, ?g).
`)
	assert.Empty(t, CheckAssertion(rules, testNatives(t)))
}

func TestRejectsUnknownNativePredicate(t *testing.T) {
	rules := mustParse(t, `p(?x) :- :ldap says no-such(?x).`)

	violations := CheckAssertion(rules, testNatives(t))
	require.Len(t, violations, 1)
	assert.Contains(t, violations[0].Error(), "unknown native predicate")

	rules = mustParse(t, `p(?x) :- :nowhere says user-group(?x, staff).`)
	violations = CheckAssertion(rules, testNatives(t))
	require.Len(t, violations, 1)
}

func TestRejectsUngroundableInArgument(t *testing.T) {
	// ?u appears nowhere before the native call and not in the head.
	rules := mustParse(t, `anyone(?g) :- :ldap says user-group(?u, ?g).`)

	violations := CheckAssertion(rules, testNatives(t))
	require.Len(t, violations, 1)
	assert.Equal(t, 0, violations[0].Rule)
	assert.Equal(t, 0, violations[0].Goal)
	assert.Contains(t, violations[0].Msg, "?u")
}

func TestHeadVariablesCountAsKnown(t *testing.T) {
	rules := mustParse(t, `may(?u) :- :ldap says user-group(?u, staff).`)
	assert.Empty(t, CheckAssertion(rules, testNatives(t)))
}

func TestPriorGoalGroundsLaterIn(t *testing.T) {
	rules := mustParse(t, `
ok(?g) :- app says current-user(?u), :ldap says user-group(?u, ?g).
`)
	assert.Empty(t, CheckAssertion(rules, testNatives(t)))
}

func TestOutPositionGroundsVariable(t *testing.T) {
	// ?g is ground after the first native call, so using it as a
	// principal afterwards is fine.
	rules := mustParse(t, `
may(?u, ?r) :- :ldap says user-group(?u, ?g), ?g says grants(?r).
`)
	assert.Empty(t, CheckAssertion(rules, testNatives(t)))
}

func TestRejectsUngroundableAssertionRef(t *testing.T) {
	rules := mustParse(t, `broken(?r) :- ?who says grants(?r).`)

	violations := CheckAssertion(rules, testNatives(t))
	require.Len(t, violations, 1)
	assert.Contains(t, violations[0].Msg, "?who")
}

func TestAssertionRefGroundedByPriorGoal(t *testing.T) {
	rules := mustParse(t, `
may(?r) :- app says owner(?o), ?o says grants(?r).
`)
	assert.Empty(t, CheckAssertion(rules, testNatives(t)))
}

func TestReportsMultipleViolations(t *testing.T) {
	rules := mustParse(t, `
a(?g) :- :ldap says user-group(?u, ?g).
b(?r) :- ?who says grants(?r).
`)
	violations := CheckAssertion(rules, testNatives(t))
	assert.Len(t, violations, 2)
	assert.Equal(t, 0, violations[0].Rule)
	assert.Equal(t, 1, violations[1].Rule)
}
