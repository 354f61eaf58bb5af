package businessflow

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/brandscope-io/brandscope/app/services"
	"github.com/brandscope-io/brandscope/config"
	"github.com/brandscope-io/brandscope/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubCompletionService answers every call with a fixed response or error and
// records what it was asked.
type stubCompletionService struct {
	response string
	err      error
	requests []*services.CompletionRequest
}

func (s *stubCompletionService) Complete(_ context.Context, req *services.CompletionRequest) (string, error) {
	s.requests = append(s.requests, req)
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func newSelectorTestFlow(stub *stubCompletionService) *RecommendationFlowImpl {
	return &RecommendationFlowImpl{
		completionService: stub,
		completionConfig: &config.CompletionConfig{
			SelectorModel:  "selector-model",
			GeneratorModel: "generator-model",
		},
		diag: NewDiagnosticLog(50),
	}
}

func sampleBundle() *MarketingBundle {
	brand := &models.BrandInfo{
		Name:        "Acme Analytics",
		WebsiteURL:  "https://acme.example.com",
		Description: "Self-serve product analytics for mid-market teams",
	}
	icps := []models.ICPPersona{
		{Name: "Growth Marketer Mia", Role: "Head of Growth", Goals: "More inbound leads", Challenges: "Small team"},
		{Name: "Data-Driven Dana", Role: "VP Analytics", Goals: "Trustworthy metrics", Challenges: "Attribution"},
	}
	chats := []models.ChatSample{
		{ID: "chat_0001", Model: "gpt-4o", UserText: "Best analytics tool for startups?", AssistantText: "Several options..."},
	}
	domains := []models.CitedDomain{
		{Domain: "reddit.com", Type: models.DomainTypeUGC, UsagePercent: 12.5, AvgCitations: 34.2},
	}
	return NewMarketingBundle(brand, icps, chats, domains)
}

func selectorJSON(actionIDs ...string) string {
	entries := ""
	for i, id := range actionIDs {
		if i > 0 {
			entries += ","
		}
		entries += fmt.Sprintf(`{"action_id":%q,"rationale":"fits the data","target_icps":["Growth Marketer Mia"],"priority":%d}`, id, i+1)
	}
	return `{"selected_actions":[` + entries + `]}`
}

func assertBusinessErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	var bizErr *BusinessError
	require.ErrorAs(t, err, &bizErr)
	assert.Equal(t, code, bizErr.Code)
}

func TestSelectActionsValidResponse(t *testing.T) {
	stub := &stubCompletionService{response: selectorJSON("linkedin_posts", "blog_content", "email_campaigns")}
	flow := newSelectorTestFlow(stub)

	selected, warnings, err := flow.selectActions(context.Background(), sampleBundle())
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, selected, 3)
	assert.Equal(t, "linkedin_posts", selected[0].ActionID)
	assert.Equal(t, []string{"Growth Marketer Mia"}, selected[0].TargetICPs)
	assert.Equal(t, float64(1), selected[0].Priority)

	// The selector call carries the selector model and the strict schema
	require.Len(t, stub.requests, 1)
	assert.Equal(t, "selector-model", stub.requests[0].Model)
	require.NotNil(t, stub.requests[0].Schema)
	assert.Equal(t, "strategic_recommendations", stub.requests[0].Schema.Name)
	assert.Contains(t, stub.requests[0].UserPrompt, "ALLOWED ACTIONS")
	assert.Contains(t, stub.requests[0].UserPrompt, "Acme Analytics")

	// The exchange lands in the diagnostic log
	assert.Equal(t, 1, flow.diag.Len())
}

func TestSelectActionsAcceptsFencedJSON(t *testing.T) {
	stub := &stubCompletionService{response: "```json\n" + selectorJSON("linkedin_posts", "blog_content", "email_campaigns") + "\n```"}
	flow := newSelectorTestFlow(stub)

	selected, warnings, err := flow.selectActions(context.Background(), sampleBundle())
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Len(t, selected, 3)
}

func TestSelectActionsCallFailure(t *testing.T) {
	stub := &stubCompletionService{err: errors.New("upstream down")}
	flow := newSelectorTestFlow(stub)

	_, _, err := flow.selectActions(context.Background(), sampleBundle())
	assertBusinessErrorCode(t, err, "SELECTOR_CALL_FAILED")

	// Failures are recorded too
	entries := flow.diag.Entries()
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Response, "ERROR")
}

func TestSelectActionsEmptyResponse(t *testing.T) {
	stub := &stubCompletionService{response: "   \n"}
	flow := newSelectorTestFlow(stub)

	_, _, err := flow.selectActions(context.Background(), sampleBundle())
	assertBusinessErrorCode(t, err, "EMPTY_COMPLETION_RESPONSE")
	assert.True(t, IsEmptyCompletionResponse(err))
}

func TestSelectActionsMalformedJSON(t *testing.T) {
	stub := &stubCompletionService{response: "this is not json"}
	flow := newSelectorTestFlow(stub)

	_, _, err := flow.selectActions(context.Background(), sampleBundle())
	assertBusinessErrorCode(t, err, "SCHEMA_PARSE_ERROR")
	assert.True(t, IsSchemaParse(err))
}

func TestSelectActionsMissingSelectedActionsField(t *testing.T) {
	stub := &stubCompletionService{response: `{"recommendations":[]}`}
	flow := newSelectorTestFlow(stub)

	_, _, err := flow.selectActions(context.Background(), sampleBundle())
	assertBusinessErrorCode(t, err, "MISSING_SELECTED_ACTIONS")
	assert.True(t, IsMissingSelectedActions(err))
}

func TestSelectActionsZeroActions(t *testing.T) {
	stub := &stubCompletionService{response: `{"selected_actions":[]}`}
	flow := newSelectorTestFlow(stub)

	_, _, err := flow.selectActions(context.Background(), sampleBundle())
	assertBusinessErrorCode(t, err, "NO_ACTIONS_SELECTED")
	assert.True(t, IsNoActionsSelected(err))
}

func TestSelectActionsCountOutsideRangeWarns(t *testing.T) {
	tests := []struct {
		name       string
		actionIDs  []string
		wantWarn   bool
		wantInWarn string
	}{
		{
			name:      "three actions is fine",
			actionIDs: []string{"linkedin_posts", "blog_content", "email_campaigns"},
			wantWarn:  false,
		},
		{
			name:      "five actions is fine",
			actionIDs: []string{"linkedin_posts", "blog_content", "email_campaigns", "guest_posting", "social_media_threads"},
			wantWarn:  false,
		},
		{
			name:       "two actions warns but proceeds",
			actionIDs:  []string{"linkedin_posts", "blog_content"},
			wantWarn:   true,
			wantInWarn: "got 2",
		},
		{
			name:       "six actions warns but proceeds",
			actionIDs:  []string{"linkedin_posts", "blog_content", "email_campaigns", "guest_posting", "social_media_threads", "content_partnerships"},
			wantWarn:   true,
			wantInWarn: "got 6",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubCompletionService{response: selectorJSON(tt.actionIDs...)}
			flow := newSelectorTestFlow(stub)

			selected, warnings, err := flow.selectActions(context.Background(), sampleBundle())
			require.NoError(t, err)
			assert.Len(t, selected, len(tt.actionIDs))

			if tt.wantWarn {
				require.Len(t, warnings, 1)
				assert.Contains(t, warnings[0], tt.wantInWarn)
			} else {
				assert.Empty(t, warnings)
			}
		})
	}
}

func TestSelectActionsRejectsUnknownActionID(t *testing.T) {
	// One bad ID rejects the entire selection, valid entries included
	stub := &stubCompletionService{response: selectorJSON("linkedin_posts", "tiktok_dances", "email_campaigns")}
	flow := newSelectorTestFlow(stub)

	selected, warnings, err := flow.selectActions(context.Background(), sampleBundle())
	assert.Nil(t, selected)
	assert.Nil(t, warnings)
	assertBusinessErrorCode(t, err, "INVALID_ACTION_ID")
	assert.True(t, IsInvalidActionID(err))
	assert.Contains(t, err.Error(), "tiktok_dances")
	assert.Contains(t, err.Error(), "linkedin_posts")
}

func TestGenerateExamplesValidResponse(t *testing.T) {
	stub := &stubCompletionService{response: `{"examples":[{"title":"Why attribution breaks","content":"Long form content...","targeting_notes":"VP personas"}]}`}
	flow := newSelectorTestFlow(stub)

	action := ActionByID("linkedin_posts")
	require.NotNil(t, action)
	sel := &SelectedAction{ActionID: "linkedin_posts", Rationale: "fits", TargetICPs: []string{"Growth Marketer Mia"}, Priority: 1}

	examples, err := flow.generateExamples(context.Background(), sampleBundle(), action, sel)
	require.NoError(t, err)
	require.Len(t, examples, 1)
	assert.Equal(t, "Why attribution breaks", examples[0].Title)

	// The generator call carries the generator model and the content schema
	require.Len(t, stub.requests, 1)
	assert.Equal(t, "generator-model", stub.requests[0].Model)
	require.NotNil(t, stub.requests[0].Schema)
	assert.Equal(t, "content_examples", stub.requests[0].Schema.Name)
}

func TestGenerateExamplesFailureModes(t *testing.T) {
	action := ActionByID("blog_content")
	require.NotNil(t, action)
	sel := &SelectedAction{ActionID: "blog_content", Rationale: "fits", TargetICPs: []string{"Data-Driven Dana"}, Priority: 2}

	tests := []struct {
		name      string
		response  string
		callErr   error
		wantIs    error
		wantNotIs bool
	}{
		{
			name:      "call error",
			callErr:   errors.New("timeout"),
			wantNotIs: true,
		},
		{
			name:     "empty response",
			response: "",
			wantIs:   ErrEmptyCompletionResponse,
		},
		{
			name:     "malformed json",
			response: "{broken",
			wantIs:   ErrSchemaParse,
		},
		{
			name:     "missing examples key",
			response: `{"items":[]}`,
			wantIs:   ErrMissingExamples,
		},
		{
			name:     "zero examples",
			response: `{"examples":[]}`,
			wantIs:   ErrNoExamplesGenerated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubCompletionService{response: tt.response, err: tt.callErr}
			flow := newSelectorTestFlow(stub)

			examples, err := flow.generateExamples(context.Background(), sampleBundle(), action, sel)
			assert.Nil(t, examples)
			require.Error(t, err)
			if tt.wantIs != nil {
				assert.True(t, errors.Is(err, tt.wantIs))
			}
		})
	}
}

func TestGeneratorSkipReason(t *testing.T) {
	tests := []struct {
		err    error
		reason string
	}{
		{ErrEmptyCompletionResponse, "Empty response from completion API"},
		{ErrMissingExamples, "No 'examples' key in response"},
		{ErrNoExamplesGenerated, "No examples generated"},
		{fmt.Errorf("%w: unexpected token", ErrSchemaParse), "Failed to parse content generator response"},
		{errors.New("network down"), "Content generator call failed"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.reason, generatorSkipReason(tt.err))
	}
}

func TestDebugLogsRoundTrip(t *testing.T) {
	flow := newSelectorTestFlow(&stubCompletionService{})
	flow.diag.Record("Strategic Selector", "selector-model", "", "system", "user", `{"selected_actions":[]}`)
	flow.diag.Record("Content Generator (Blog Content Ideas)", "generator-model", "blog_content", "system", "user", `{"examples":[]}`)

	logs, err := flow.DebugLogs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, logs.Total)
	require.Len(t, logs.Entries, 2)

	// Newest first
	assert.Equal(t, "Content Generator (Blog Content Ideas)", logs.Entries[0].Agent)
	assert.Equal(t, "blog_content", logs.Entries[0].Request.Action)
	assert.Equal(t, "Strategic Selector", logs.Entries[1].Agent)

	cleared, err := flow.ClearDebugLogs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, cleared.Cleared)

	logs, err = flow.DebugLogs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, logs.Total)
	assert.Empty(t, logs.Entries)
}
