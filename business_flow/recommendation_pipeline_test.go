package businessflow

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/brandscope-io/brandscope/app/services"
	"github.com/brandscope-io/brandscope/config"
	"github.com/brandscope-io/brandscope/models"
	"github.com/brandscope-io/brandscope/repository"
	testingutil "github.com/brandscope-io/brandscope/testing"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// scriptedCompletionService plays back one response per call, in order. The
// pipeline makes one selector call followed by one generator call per
// selected action, so a script reads like the run it drives.
type scriptedCompletionService struct {
	responses []scriptedResponse
	requests  []*services.CompletionRequest
}

type scriptedResponse struct {
	text string
	err  error
}

func (s *scriptedCompletionService) Complete(_ context.Context, req *services.CompletionRequest) (string, error) {
	s.requests = append(s.requests, req)
	i := len(s.requests) - 1
	if i >= len(s.responses) {
		return "", fmt.Errorf("unexpected completion call %d", i+1)
	}
	return s.responses[i].text, s.responses[i].err
}

// withTestDB provisions a throwaway database per test and skips when no
// postgres server is reachable via the TEST_DB_* environment.
func withTestDB(t *testing.T, fn func(t *testing.T, testDB *testingutil.TestDB)) {
	t.Helper()
	testDB, err := testingutil.SetupTestDB()
	if err != nil {
		t.Skipf("test database unavailable: %v", err)
	}
	defer func() { _ = testDB.TeardownTestDB() }()
	fn(t, testDB)
}

func newPipelineFlow(testDB *testingutil.TestDB, completion services.CompletionService) *RecommendationFlowImpl {
	return &RecommendationFlowImpl{
		db:                testDB.DB,
		brandRepo:         repository.NewBrandInfoRepository(testDB.DB),
		icpRepo:           repository.NewICPPersonaRepository(testDB.DB),
		chatRepo:          repository.NewChatSampleRepository(testDB.DB),
		domainRepo:        repository.NewCitedDomainRepository(testDB.DB),
		sessionRepo:       repository.NewRecommendationSessionRepository(testDB.DB),
		actionRepo:        repository.NewRecommendationActionRepository(testDB.DB),
		exampleRepo:       repository.NewRecommendationExampleRepository(testDB.DB),
		completionService: completion,
		completionConfig: &config.CompletionConfig{
			SelectorModel:  "selector-model",
			GeneratorModel: "generator-model",
		},
		cacheConfig: &config.CacheConfig{},
		diag:        NewDiagnosticLog(50),
	}
}

func seedPipelineData(t *testing.T, testDB *testingutil.TestDB) {
	t.Helper()
	fixtures := testingutil.NewTestFixtures(testDB)

	_, err := fixtures.CreateTestBrand("Acme Analytics", "https://acme.example.com", "Self-serve product analytics")
	require.NoError(t, err)
	_, err = fixtures.CreateTestPersona("Growth Marketer Mia")
	require.NoError(t, err)
	_, err = fixtures.CreateTestPersona("Data-Driven Dana")
	require.NoError(t, err)
	_, err = fixtures.CreateTestChat("chat_0001", "gpt-4o")
	require.NoError(t, err)
	_, err = fixtures.CreateTestDomain("reddit.com", models.DomainTypeUGC, 34.2)
	require.NoError(t, err)
	_, err = fixtures.CreateTestDomain("techcrunch.com", models.DomainTypeEditorial, 21.5)
	require.NoError(t, err)
}

func TestGenerateRecommendationsPipeline(t *testing.T) {
	withTestDB(t, func(t *testing.T, testDB *testingutil.TestDB) {
		ctx := context.Background()
		seedPipelineData(t, testDB)

		// One selector call, then one generator call per selected action.
		// The blog generator answers with nothing, so that action is
		// skipped while the other two commit.
		script := &scriptedCompletionService{responses: []scriptedResponse{
			{text: `{"selected_actions":[` +
				`{"action_id":"linkedin_posts","rationale":"audience lives there","target_icps":["Growth Marketer Mia"],"priority":1},` +
				`{"action_id":"blog_content","rationale":"search demand","target_icps":["Growth Marketer Mia","Data-Driven Dana"],"priority":2},` +
				`{"action_id":"guest_posting","rationale":"borrow authority","target_icps":["Data-Driven Dana"],"priority":0}]}`},
			{text: "```json\n" +
				`{"examples":[` +
				`{"title":"   ","content":"Post body one","targeting_notes":"Mia"},` +
				`{"title":"Attribution myths","content":"Post body two","targeting_notes":"Dana"}]}` +
				"\n```"},
			{text: ""},
			{text: `{"examples":[{"title":"Pitch: analytics benchmarks","content":"Outline for an editorial pitch","targeting_notes":"Dana"}]}`},
		}}
		flow := newPipelineFlow(testDB, script)

		resp, err := flow.Generate(ctx, NewClientMetadata("127.0.0.1", "test-agent"))
		require.NoError(t, err)
		require.NotNil(t, resp)

		assert.Equal(t, "Recommendations generated", resp.Message)
		assert.NotZero(t, resp.SessionID)
		_, err = uuid.Parse(resp.SessionUUID)
		assert.NoError(t, err)
		assert.Empty(t, resp.Warnings)

		require.Len(t, resp.Actions, 2)
		assert.Equal(t, "linkedin_posts", resp.Actions[0].ActionType)
		assert.Equal(t, "LinkedIn Thought Leadership Posts", resp.Actions[0].ActionName)
		assert.Equal(t, 1, resp.Actions[0].Priority)
		assert.Equal(t, 2, resp.Actions[0].ExampleCount)
		assert.Equal(t, "guest_posting", resp.Actions[1].ActionType)
		// Priority 0 from the selector falls back to the catch-all bucket
		assert.Equal(t, 99, resp.Actions[1].Priority)
		assert.Equal(t, 1, resp.Actions[1].ExampleCount)

		require.Len(t, resp.Skipped, 1)
		assert.Equal(t, "blog_content", resp.Skipped[0].ActionType)
		assert.Equal(t, "Empty response from completion API", resp.Skipped[0].Reason)

		require.Len(t, script.requests, 4)
		assert.Equal(t, "selector-model", script.requests[0].Model)
		assert.NotNil(t, script.requests[0].Schema)
		for _, req := range script.requests[1:] {
			assert.Equal(t, "generator-model", req.Model)
		}

		t.Run("persisted session detail", func(t *testing.T) {
			detail, err := flow.GetSession(ctx, resp.SessionID)
			require.NoError(t, err)
			require.NotNil(t, detail)

			assert.Equal(t, "Acme Analytics", detail.BrandName)
			assert.Equal(t, 2, detail.DataSnapshot.ICPCount)
			assert.Equal(t, 1, detail.DataSnapshot.ChatCount)
			assert.Equal(t, 2, detail.DataSnapshot.DomainCount)

			require.Len(t, detail.Actions, 2)
			assert.Equal(t, "linkedin_posts", detail.Actions[0].ActionType)
			assert.Equal(t, []string{"Growth Marketer Mia"}, detail.Actions[0].TargetICPs)
			require.Len(t, detail.Actions[0].Examples, 2)
			// Whitespace titles fall back to the placeholder
			assert.Equal(t, "Untitled", detail.Actions[0].Examples[0].Title)
			assert.Equal(t, "Attribution myths", detail.Actions[0].Examples[1].Title)

			assert.Equal(t, "guest_posting", detail.Actions[1].ActionType)
			assert.Equal(t, 99, detail.Actions[1].Priority)
			assert.Equal(t, []string{"Data-Driven Dana"}, detail.Actions[1].TargetICPs)
			require.Len(t, detail.Actions[1].Examples, 1)
			assert.Equal(t, "Pitch: analytics benchmarks", detail.Actions[1].Examples[0].Title)
		})

		t.Run("latest returns the run", func(t *testing.T) {
			latest, err := flow.Latest(ctx)
			require.NoError(t, err)
			require.NotNil(t, latest)
			assert.Equal(t, resp.SessionID, latest.ID)
		})

		t.Run("session list", func(t *testing.T) {
			list, err := flow.ListSessions(ctx, 0, 0)
			require.NoError(t, err)
			require.Len(t, list.Sessions, 1)
			assert.Equal(t, int64(1), list.Total)
			assert.Equal(t, resp.SessionID, list.Sessions[0].ID)
			assert.Equal(t, 2, list.Sessions[0].ActionCount)
		})

		t.Run("xlsx export", func(t *testing.T) {
			filename, data, err := flow.ExportSessionXLSX(ctx, resp.SessionID)
			require.NoError(t, err)
			assert.Equal(t, fmt.Sprintf("recommendations_session_%d.xlsx", resp.SessionID), filename)
			require.NotEmpty(t, data)

			xl, err := excelize.OpenReader(bytes.NewReader(data))
			require.NoError(t, err)
			defer func() { _ = xl.Close() }()

			sheets := xl.GetSheetList()
			assert.Contains(t, sheets, "Summary")
			assert.Contains(t, sheets, "Actions")
			assert.Contains(t, sheets, "Examples")

			summaryRows, err := xl.GetRows("Summary")
			require.NoError(t, err)
			require.GreaterOrEqual(t, len(summaryRows), 9)
			assert.Equal(t, []string{"Brand", "Acme Analytics"}, summaryRows[3])

			actionRows, err := xl.GetRows("Actions")
			require.NoError(t, err)
			require.Len(t, actionRows, 3)
			assert.Equal(t, []string{"action_type", "action_name", "priority", "target_icps", "rationale", "example_count"}, actionRows[0])
			assert.Equal(t, []string{"linkedin_posts", "LinkedIn Thought Leadership Posts", "1", "Growth Marketer Mia", "audience lives there", "2"}, actionRows[1])
			assert.Equal(t, "guest_posting", actionRows[2][0])
			assert.Equal(t, "99", actionRows[2][2])

			exampleRows, err := xl.GetRows("Examples")
			require.NoError(t, err)
			require.Len(t, exampleRows, 4)
			assert.Equal(t, "Untitled", exampleRows[1][2])
			assert.Equal(t, "Pitch: analytics benchmarks", exampleRows[3][2])
		})

		t.Run("diagnostic log captured every exchange", func(t *testing.T) {
			logs, err := flow.DebugLogs(ctx)
			require.NoError(t, err)
			require.Equal(t, 4, logs.Total)
			// Newest first: the guest generator ran last, the selector first
			assert.Equal(t, "Content Generator (Guest Posting Opportunities)", logs.Entries[0].Agent)
			assert.Equal(t, "Strategic Selector", logs.Entries[3].Agent)
			assert.Equal(t, "selector-model", logs.Entries[3].Model)
		})
	})
}

func TestGenerateRecommendationsPreconditions(t *testing.T) {
	withTestDB(t, func(t *testing.T, testDB *testingutil.TestDB) {
		ctx := context.Background()
		script := &scriptedCompletionService{}
		flow := newPipelineFlow(testDB, script)

		t.Run("brand must be configured", func(t *testing.T) {
			_, err := flow.Generate(ctx, NewClientMetadata("127.0.0.1", "test-agent"))
			assertBusinessErrorCode(t, err, "BRAND_NOT_CONFIGURED")
			assert.Empty(t, script.requests)
		})

		t.Run("at least one persona required", func(t *testing.T) {
			fixtures := testingutil.NewTestFixtures(testDB)
			_, err := fixtures.CreateTestBrand("Acme Analytics", "https://acme.example.com", "")
			require.NoError(t, err)

			_, err = flow.Generate(ctx, NewClientMetadata("127.0.0.1", "test-agent"))
			assertBusinessErrorCode(t, err, "NO_ICP_PERSONAS")
			assert.Empty(t, script.requests)
		})

		t.Run("missing session lookups", func(t *testing.T) {
			_, err := flow.GetSession(ctx, 999999)
			assertBusinessErrorCode(t, err, "SESSION_NOT_FOUND")

			_, _, err = flow.ExportSessionXLSX(ctx, 999999)
			assertBusinessErrorCode(t, err, "SESSION_NOT_FOUND")

			_, err = flow.Latest(ctx)
			assertBusinessErrorCode(t, err, "NO_SESSIONS")
		})
	})
}

func TestGenerateSelectorFailureLeavesNoSession(t *testing.T) {
	withTestDB(t, func(t *testing.T, testDB *testingutil.TestDB) {
		ctx := context.Background()
		seedPipelineData(t, testDB)

		script := &scriptedCompletionService{responses: []scriptedResponse{
			{text: "the selector went off script"},
		}}
		flow := newPipelineFlow(testDB, script)

		_, err := flow.Generate(ctx, NewClientMetadata("127.0.0.1", "test-agent"))
		assertBusinessErrorCode(t, err, "SCHEMA_PARSE_ERROR")

		sessionRepo := repository.NewRecommendationSessionRepository(testDB.DB)
		count, err := sessionRepo.Count(ctx, models.RecommendationSessionFilter{})
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}
