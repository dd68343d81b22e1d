package resolver

import (
	"io"
	"sync"
	"testing"

	"ui_mapping/domain/entities"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewEngine(DefaultConfig(), logger)
}

func loadSubmitButtons(t *testing.T, engine *Engine) {
	t.Helper()
	require.NoError(t, engine.Load("login", []entities.ElementRecord{{
		Identifier: "login_button_submit",
		TagName:    "button",
		Text:       "Sign In",
		DOMPath:    "/html/body/form/button[1]",
	}}))
	require.NoError(t, engine.Load("checkout", []entities.ElementRecord{{
		Identifier: "checkout_button_submit",
		TagName:    "button",
		Text:       "Place Order",
		DOMPath:    "/html/body/main/button[1]",
	}}))
}

func TestResolveBeforeLoadIsStoreEmpty(t *testing.T) {
	engine := newTestEngine(t)

	_, err := engine.Resolve("anything", "")
	var storeEmpty *StoreEmptyError
	assert.ErrorAs(t, err, &storeEmpty)
}

func TestResolveEmptyScopeIsNotFound(t *testing.T) {
	engine := newTestEngine(t)
	require.NoError(t, engine.Load("billing", nil))

	_, err := engine.Resolve("anything", "billing")
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "anything", notFound.Query.Text)
	assert.Equal(t, "billing", notFound.Query.Context)
}

func TestResolveAmbiguousWithoutContext(t *testing.T) {
	engine := newTestEngine(t)
	loadSubmitButtons(t, engine)

	_, err := engine.Resolve("submit", "")
	var ambiguous *AmbiguityError
	require.ErrorAs(t, err, &ambiguous)
	require.Len(t, ambiguous.Report.TiedCandidates, 2)
	assert.Contains(t, ambiguous.Report.Suggestions, "login submit")
	assert.Contains(t, ambiguous.Report.Suggestions, "checkout submit")
}

func TestResolveContextNarrows(t *testing.T) {
	engine := newTestEngine(t)
	loadSubmitButtons(t, engine)

	locator, err := engine.Resolve("submit", "login")
	require.NoError(t, err)
	assert.Equal(t, entities.StrategyText, locator.Strategy)
	assert.Equal(t, `button:has-text("Sign In")`, locator.Expression)
}

func TestResolveIdenticalIdentifiersAcrossContexts(t *testing.T) {
	engine := newTestEngine(t)
	require.NoError(t, engine.Load("login", []entities.ElementRecord{{
		Identifier: "button_submit",
		TagName:    "button",
		Text:       "Sign In",
		DOMPath:    "/html/body/form/button[1]",
	}}))
	require.NoError(t, engine.Load("checkout", []entities.ElementRecord{{
		Identifier: "button_submit",
		TagName:    "button",
		Text:       "Place Order",
		DOMPath:    "/html/body/main/button[1]",
	}}))

	locator, err := engine.Resolve("button_submit", "login")
	require.NoError(t, err, "scoped resolution must never be ambiguous across contexts")
	assert.Equal(t, `button:has-text("Sign In")`, locator.Expression)
}

func TestResolveDataTestIDScenario(t *testing.T) {
	engine := newTestEngine(t)
	require.NoError(t, engine.Load("profile", []entities.ElementRecord{{
		Identifier: "profile_button_save",
		TagName:    "button",
		Attributes: map[string]string{"data-testid": "profile_save_btn"},
		DOMPath:    "/html/body/button[1]",
	}}))

	locator, err := engine.Resolve("save", "profile")
	require.NoError(t, err)
	assert.Equal(t, entities.StrategyDataTestID, locator.Strategy)
	assert.Contains(t, locator.Expression, "profile_save_btn")
}

func TestResolveFallsBackToGlobalWhenScopeUnknown(t *testing.T) {
	engine := newTestEngine(t)
	loadSubmitButtons(t, engine)

	locator, err := engine.Resolve("login_button_submit", "nonexistent")
	require.NoError(t, err)
	assert.Equal(t, `button:has-text("Sign In")`, locator.Expression)
}

func TestResolveIsDeterministic(t *testing.T) {
	engine := newTestEngine(t)
	loadSubmitButtons(t, engine)

	first, err1 := engine.Resolve("login", "")
	second, err2 := engine.Resolve("login", "")

	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, first, second)
}

func TestResolveExactBeatsWordOverlap(t *testing.T) {
	engine := newTestEngine(t)
	require.NoError(t, engine.Load("login", []entities.ElementRecord{
		{
			Identifier: "login_button_submit",
			TagName:    "button",
			DOMPath:    "/html/body/form/button[1]",
		},
		{
			Identifier: "login_link_help",
			TagName:    "a",
			Text:       "how to submit the login form",
			DOMPath:    "/html/body/a[1]",
		},
	}))

	locator, err := engine.Resolve("login_button_submit", "login")
	require.NoError(t, err)
	assert.Equal(t, "/html/body/form/button[1]", locator.Expression)
}

func TestLoadRejectsEmptyDOMPath(t *testing.T) {
	engine := newTestEngine(t)

	err := engine.Load("login", []entities.ElementRecord{{
		Identifier: "login_button_submit",
		TagName:    "button",
	}})
	assert.Error(t, err)
}

func TestLoadNormalizesRecords(t *testing.T) {
	engine := newTestEngine(t)
	require.NoError(t, engine.Load("login", []entities.ElementRecord{{
		Identifier: "  Login Button Submit ",
		TagName:    "BUTTON",
		Text:       "  Sign In  ",
		DOMPath:    "/html/body/button[1]",
	}}))

	records := engine.Records("login")
	require.Len(t, records, 1)
	assert.Equal(t, "login_button_submit", records[0].Identifier)
	assert.Equal(t, "button", records[0].TagName)
	assert.Equal(t, "Sign In", records[0].Text)
	assert.Equal(t, "login", records[0].FeatureContext)
	assert.NotNil(t, records[0].Attributes)
	assert.NotNil(t, records[0].AlternativeNames)
}

func TestConcurrentResolvesShareOneStore(t *testing.T) {
	engine := newTestEngine(t)
	loadSubmitButtons(t, engine)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			locator, err := engine.Resolve("submit", "login")
			assert.NoError(t, err)
			assert.Equal(t, `button:has-text("Sign In")`, locator.Expression)
		}()
	}
	wg.Wait()
}
