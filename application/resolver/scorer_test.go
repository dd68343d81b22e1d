package resolver

import (
	"testing"

	"ui_mapping/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scoreOf(t *testing.T, queryText, contextHint string, record entities.ElementRecord) entities.ScoredCandidate {
	t.Helper()
	scored, ok := NewScorer(DefaultConfig()).Score(entities.Query{Text: queryText, Context: contextHint}, record)
	require.True(t, ok, "expected %q to match %q", queryText, record.Identifier)
	return scored
}

func TestScoreExactIsSeparatorInsensitive(t *testing.T) {
	record := rec("login_button_submit", "login")

	for _, q := range []string{"login_button_submit", "LOGIN_BUTTON_SUBMIT", "login button submit", "  login_button_submit  "} {
		scored := scoreOf(t, q, "", record)
		assert.Equal(t, entities.MatchExact, scored.MatchedVia, "query %q", q)
	}
}

func TestScoreTierOrdering(t *testing.T) {
	record := rec("login_button_submit", "login")
	record.Text = "Sign In"

	exact := scoreOf(t, "login_button_submit", "", record)
	prefix := scoreOf(t, "login_button", "", record)
	contains := scoreOf(t, "button_submit", "", record)
	pattern := scoreOf(t, "login_*_submit", "", record)
	overlap := scoreOf(t, "sign in please", "", record)

	assert.Equal(t, entities.MatchPrefix, prefix.MatchedVia)
	assert.Equal(t, entities.MatchContains, contains.MatchedVia)
	assert.Equal(t, entities.MatchPattern, pattern.MatchedVia)
	assert.Equal(t, entities.MatchWordOverlap, overlap.MatchedVia)

	assert.Greater(t, exact.Score, prefix.Score)
	assert.Greater(t, prefix.Score, contains.Score)
	assert.Greater(t, contains.Score, pattern.Score)
	assert.Greater(t, pattern.Score, overlap.Score)
}

func TestScorePatternAnchoring(t *testing.T) {
	scorer := NewScorer(DefaultConfig())
	record := rec("login_button_submit", "login")

	scored, ok := scorer.Score(entities.Query{Text: "button*"}, record)
	require.True(t, ok)
	assert.NotEqual(t, entities.MatchPattern, scored.MatchedVia, "anchored pattern must not match mid-identifier")

	matched := scoreOf(t, "*button*", "", record)
	assert.Equal(t, entities.MatchPattern, matched.MatchedVia)

	full := scoreOf(t, "login*submit", "", record)
	assert.Equal(t, entities.MatchPattern, full.MatchedVia)
}

func TestScoreWordOverlapProportionalToMatchedTokens(t *testing.T) {
	record := rec("login_text_input_username", "login")
	record.Text = "Username"

	full := scoreOf(t, "username input", "", record)
	partial := scoreOf(t, "username zorro", "", record)

	assert.Equal(t, entities.MatchWordOverlap, full.MatchedVia)
	assert.Equal(t, entities.MatchWordOverlap, partial.MatchedVia)
	assert.Greater(t, full.Score, partial.Score)
}

func TestScoreAlternativeNames(t *testing.T) {
	record := rec("login_button_submit", "login")
	record.AlternativeNames = []string{"authenticate", "log me on"}

	exact := scoreOf(t, "authenticate", "", record)
	assert.Equal(t, entities.MatchAlternativeName, exact.MatchedVia)

	later := rec("login_button_submit", "login")
	later.AlternativeNames = []string{"log me on", "authenticate"}
	laterScored := scoreOf(t, "authenticate", "", later)
	assert.Equal(t, entities.MatchAlternativeName, laterScored.MatchedVia)

	assert.Greater(t, exact.Score, laterScored.Score, "earlier entries score higher")
}

func TestScoreAlternativeNameBelowWordOverlap(t *testing.T) {
	overlapRecord := rec("cart_button_checkout", "cart")
	overlap := scoreOf(t, "checkout now please", "", overlapRecord)

	altRecord := rec("cart_button_pay", "cart")
	altRecord.AlternativeNames = []string{"proceed"}
	alt := scoreOf(t, "proceed", "", altRecord)

	assert.Equal(t, entities.MatchWordOverlap, overlap.MatchedVia)
	assert.Equal(t, entities.MatchAlternativeName, alt.MatchedVia)
	assert.Greater(t, overlap.Score, alt.Score)
}

func TestScoreNoMatchExcluded(t *testing.T) {
	scorer := NewScorer(DefaultConfig())
	record := rec("login_button_submit", "login")

	_, ok := scorer.Score(entities.Query{Text: "weather forecast", Context: "login"}, record)
	assert.False(t, ok, "context alone must never create a match")
}

func TestScoreContextBonusBeatsWrongContextExact(t *testing.T) {
	rightContext := rec("checkout_button_order", "checkout")
	rightContext.Text = "Place Order"
	overlap := scoreOf(t, "place order", "checkout", rightContext)

	wrongContext := rec("place_order", "archive")
	exact := scoreOf(t, "place order", "checkout", wrongContext)

	assert.Equal(t, entities.MatchWordOverlap, overlap.MatchedVia)
	assert.Equal(t, entities.MatchExact, exact.MatchedVia)
	assert.Greater(t, overlap.Score, exact.Score)
}

func TestScoreExactBeatsOverlapUnderEqualContext(t *testing.T) {
	exactRecord := rec("login_button_submit", "login")
	overlapRecord := rec("login_link_reset", "login")
	overlapRecord.Text = "submit a reset request"

	exact := scoreOf(t, "login button submit", "login", exactRecord)
	overlap := scoreOf(t, "login button submit", "login", overlapRecord)

	assert.Greater(t, exact.Score, overlap.Score)
}
