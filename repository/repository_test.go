package repository

import (
	"testing"
	"time"

	"github.com/brandscope-io/brandscope/models"
	testingutil "github.com/brandscope-io/brandscope/testing"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

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

func TestBrandInfoRepository(t *testing.T) {
	withTestDB(t, func(t *testing.T, testDB *testingutil.TestDB) {
		ctx := testingutil.CreateTestContext()
		repo := NewBrandInfoRepository(testDB.DB)

		t.Run("get before configuration returns nil", func(t *testing.T) {
			brand, err := repo.Get(ctx)
			require.NoError(t, err)
			assert.Nil(t, brand)
		})

		t.Run("upsert creates the fixed row", func(t *testing.T) {
			err := repo.Upsert(ctx, &models.BrandInfo{
				Name:        "Acme Analytics",
				WebsiteURL:  "https://acme.example.com",
				Description: "Self-serve analytics",
			})
			require.NoError(t, err)

			brand, err := repo.Get(ctx)
			require.NoError(t, err)
			require.NotNil(t, brand)
			assert.Equal(t, models.BrandInfoID, brand.ID)
			assert.Equal(t, "Acme Analytics", brand.Name)
			assert.Equal(t, "Self-serve analytics", brand.Description)
		})

		t.Run("upsert replaces rather than appends", func(t *testing.T) {
			err := repo.Upsert(ctx, &models.BrandInfo{
				Name:       "Acme Robotics",
				WebsiteURL: "https://robots.acme.example.com",
			})
			require.NoError(t, err)

			count, err := repo.Count(ctx, models.BrandInfoFilter{})
			require.NoError(t, err)
			assert.Equal(t, int64(1), count)

			brand, err := repo.Get(ctx)
			require.NoError(t, err)
			require.NotNil(t, brand)
			assert.Equal(t, "Acme Robotics", brand.Name)
			// The description column is replaced wholesale on upsert
			assert.Empty(t, brand.Description)
		})
	})
}

func TestICPPersonaRepository(t *testing.T) {
	withTestDB(t, func(t *testing.T, testDB *testingutil.TestDB) {
		ctx := testingutil.CreateTestContext()
		repo := NewICPPersonaRepository(testDB.DB)

		for _, name := range []string{"Zoe", "Adam", "Mia"} {
			err := repo.Save(ctx, &models.ICPPersona{
				Name:       name,
				Role:       "Head of Growth",
				Goals:      "More inbound leads",
				Challenges: "Small team",
			})
			require.NoError(t, err)
		}

		t.Run("by name", func(t *testing.T) {
			persona, err := repo.ByName(ctx, "Adam")
			require.NoError(t, err)
			require.NotNil(t, persona)
			assert.Equal(t, "Head of Growth", persona.Role)

			missing, err := repo.ByName(ctx, "Ghost")
			require.NoError(t, err)
			assert.Nil(t, missing)
		})

		t.Run("list all sorts by name", func(t *testing.T) {
			personas, err := repo.ListAll(ctx)
			require.NoError(t, err)
			require.Len(t, personas, 3)
			assert.Equal(t, "Adam", personas[0].Name)
			assert.Equal(t, "Mia", personas[1].Name)
			assert.Equal(t, "Zoe", personas[2].Name)
		})

		t.Run("update rewrites mutable fields", func(t *testing.T) {
			err := repo.Update(ctx, &models.ICPPersona{
				Name:       "Adam",
				Role:       "VP Marketing",
				Goals:      "Pipeline",
				Challenges: "Attribution",
			})
			require.NoError(t, err)

			persona, err := repo.ByName(ctx, "Adam")
			require.NoError(t, err)
			require.NotNil(t, persona)
			assert.Equal(t, "VP Marketing", persona.Role)
			assert.Equal(t, "Pipeline", persona.Goals)
		})

		t.Run("update unknown persona", func(t *testing.T) {
			err := repo.Update(ctx, &models.ICPPersona{Name: "Ghost", Role: "r", Goals: "g", Challenges: "c"})
			assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
		})

		t.Run("delete by name", func(t *testing.T) {
			require.NoError(t, repo.DeleteByName(ctx, "Mia"))

			persona, err := repo.ByName(ctx, "Mia")
			require.NoError(t, err)
			assert.Nil(t, persona)

			assert.ErrorIs(t, repo.DeleteByName(ctx, "Mia"), gorm.ErrRecordNotFound)
		})

		t.Run("delete all", func(t *testing.T) {
			require.NoError(t, repo.DeleteAll(ctx))

			count, err := repo.Count(ctx, models.ICPPersonaFilter{})
			require.NoError(t, err)
			assert.Zero(t, count)
		})
	})
}

func TestCitedDomainRepository(t *testing.T) {
	withTestDB(t, func(t *testing.T, testDB *testingutil.TestDB) {
		ctx := testingutil.CreateTestContext()
		repo := NewCitedDomainRepository(testDB.DB)

		t.Run("upsert batch dedupes within the batch", func(t *testing.T) {
			err := repo.UpsertBatch(ctx, []*models.CitedDomain{
				{Domain: "a.example.com", Type: models.DomainTypeUGC, UsagePercent: 5, AvgCitations: 10},
				{Domain: "b.example.com", Type: models.DomainTypeEditorial, UsagePercent: 3, AvgCitations: 5},
				{Domain: "a.example.com", Type: models.DomainTypeCorporate, UsagePercent: 9, AvgCitations: 99},
			})
			require.NoError(t, err)

			count, err := repo.Count(ctx, models.CitedDomainFilter{})
			require.NoError(t, err)
			assert.Equal(t, int64(2), count)

			// First occurrence in the batch wins
			row, err := repo.ByDomain(ctx, "a.example.com")
			require.NoError(t, err)
			require.NotNil(t, row)
			assert.Equal(t, models.DomainTypeUGC, row.Type)
			assert.InDelta(t, 10, row.AvgCitations, 1e-9)
		})

		t.Run("re-import replaces metrics", func(t *testing.T) {
			err := repo.UpsertBatch(ctx, []*models.CitedDomain{
				{Domain: "a.example.com", Type: models.DomainTypeCompetitor, UsagePercent: 7.5, AvgCitations: 42},
			})
			require.NoError(t, err)

			count, err := repo.Count(ctx, models.CitedDomainFilter{})
			require.NoError(t, err)
			assert.Equal(t, int64(2), count)

			row, err := repo.ByDomain(ctx, "a.example.com")
			require.NoError(t, err)
			require.NotNil(t, row)
			assert.Equal(t, models.DomainTypeCompetitor, row.Type)
			assert.InDelta(t, 42, row.AvgCitations, 1e-9)
		})

		t.Run("by domain miss returns nil", func(t *testing.T) {
			row, err := repo.ByDomain(ctx, "nowhere.example.com")
			require.NoError(t, err)
			assert.Nil(t, row)
		})

		t.Run("list top cited orders by citations then domain", func(t *testing.T) {
			err := repo.UpsertBatch(ctx, []*models.CitedDomain{
				{Domain: "b.example.com", Type: models.DomainTypeEditorial, AvgCitations: 42},
				{Domain: "c.example.com", Type: models.DomainTypeOther, AvgCitations: 7},
			})
			require.NoError(t, err)

			rows, err := repo.ListTopCited(ctx, 10)
			require.NoError(t, err)
			require.Len(t, rows, 3)
			// a and b tie at 42, the tie breaks alphabetically
			assert.Equal(t, "a.example.com", rows[0].Domain)
			assert.Equal(t, "b.example.com", rows[1].Domain)
			assert.Equal(t, "c.example.com", rows[2].Domain)

			limited, err := repo.ListTopCited(ctx, 2)
			require.NoError(t, err)
			require.Len(t, limited, 2)
			assert.Equal(t, "b.example.com", limited[1].Domain)
		})

		t.Run("delete all", func(t *testing.T) {
			require.NoError(t, repo.DeleteAll(ctx))

			count, err := repo.Count(ctx, models.CitedDomainFilter{})
			require.NoError(t, err)
			assert.Zero(t, count)
		})
	})
}

func TestChatSampleRepository(t *testing.T) {
	withTestDB(t, func(t *testing.T, testDB *testingutil.TestDB) {
		ctx := testingutil.CreateTestContext()
		repo := NewChatSampleRepository(testDB.DB)

		older := time.Date(2024, 4, 1, 10, 0, 0, 0, time.UTC)
		newer := time.Date(2024, 4, 1, 11, 0, 0, 0, time.UTC)

		err := repo.UpsertBatch(ctx, []*models.ChatSample{
			{ID: "chat-old", Model: "gpt-4o", UserText: "first question", CreatedAt: older, UpdatedAt: older},
			{ID: "chat-b", Model: "claude", UserText: "second question", CreatedAt: newer, UpdatedAt: newer},
			{ID: "chat-a", Model: "gpt-4o", UserText: "third question", AssistantText: "an answer", CreatedAt: newer, UpdatedAt: newer},
		})
		require.NoError(t, err)

		t.Run("list recent orders newest first with stable ties", func(t *testing.T) {
			rows, err := repo.ListRecent(ctx, 10)
			require.NoError(t, err)
			require.Len(t, rows, 3)
			assert.Equal(t, "chat-a", rows[0].ID)
			assert.Equal(t, "chat-b", rows[1].ID)
			assert.Equal(t, "chat-old", rows[2].ID)

			limited, err := repo.ListRecent(ctx, 2)
			require.NoError(t, err)
			require.Len(t, limited, 2)
			assert.Equal(t, "chat-b", limited[1].ID)
		})

		t.Run("by chat id", func(t *testing.T) {
			row, err := repo.ByChatID(ctx, "chat-a")
			require.NoError(t, err)
			require.NotNil(t, row)
			assert.Equal(t, "an answer", row.AssistantText)

			missing, err := repo.ByChatID(ctx, "chat-z")
			require.NoError(t, err)
			assert.Nil(t, missing)
		})

		t.Run("re-import replaces content", func(t *testing.T) {
			err := repo.UpsertBatch(ctx, []*models.ChatSample{
				{ID: "chat-a", Model: "gpt-4o-mini", UserText: "third question", AssistantText: "a better answer", CreatedAt: newer, UpdatedAt: newer.Add(time.Minute)},
			})
			require.NoError(t, err)

			count, err := repo.Count(ctx, models.ChatSampleFilter{})
			require.NoError(t, err)
			assert.Equal(t, int64(3), count)

			row, err := repo.ByChatID(ctx, "chat-a")
			require.NoError(t, err)
			require.NotNil(t, row)
			assert.Equal(t, "gpt-4o-mini", row.Model)
			assert.Equal(t, "a better answer", row.AssistantText)
		})

		t.Run("batch with duplicate ids inserts once", func(t *testing.T) {
			err := repo.UpsertBatch(ctx, []*models.ChatSample{
				{ID: "chat-dup", Model: "claude", UserText: "kept"},
				{ID: "chat-dup", Model: "claude", UserText: "dropped"},
			})
			require.NoError(t, err)

			row, err := repo.ByChatID(ctx, "chat-dup")
			require.NoError(t, err)
			require.NotNil(t, row)
			assert.Equal(t, "kept", row.UserText)
		})

		t.Run("delete all", func(t *testing.T) {
			require.NoError(t, repo.DeleteAll(ctx))

			count, err := repo.Count(ctx, models.ChatSampleFilter{})
			require.NoError(t, err)
			assert.Zero(t, count)
		})
	})
}

func TestRecommendationRepositories(t *testing.T) {
	withTestDB(t, func(t *testing.T, testDB *testingutil.TestDB) {
		ctx := testingutil.CreateTestContext()
		sessionRepo := NewRecommendationSessionRepository(testDB.DB)
		actionRepo := NewRecommendationActionRepository(testDB.DB)
		exampleRepo := NewRecommendationExampleRepository(testDB.DB)

		t.Run("latest on empty store returns nil", func(t *testing.T) {
			session, err := sessionRepo.Latest(ctx)
			require.NoError(t, err)
			assert.Nil(t, session)
		})

		first := &models.RecommendationSession{
			BrandName:    "Acme",
			DataSnapshot: `{"icp_count":2,"chat_count":5,"domain_count":4}`,
			CreatedAt:    time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
		}
		require.NoError(t, sessionRepo.Save(ctx, first))
		assert.NotZero(t, first.ID)
		assert.NotEmpty(t, first.UUID.String())

		lowPriority := &models.RecommendationAction{
			SessionID:  first.ID,
			ActionType: models.ActionTypeBlogContent,
			ActionName: "Blog Content Ideas",
			Rationale:  "search demand",
			TargetICPs: pq.StringArray{"Mia", "Dana"},
			Priority:   2,
		}
		require.NoError(t, actionRepo.Save(ctx, lowPriority))

		topPriority := &models.RecommendationAction{
			SessionID:  first.ID,
			ActionType: models.ActionTypeLinkedInPosts,
			ActionName: "LinkedIn Thought Leadership Posts",
			Rationale:  "audience lives there",
			TargetICPs: pq.StringArray{"Mia"},
			Priority:   1,
		}
		require.NoError(t, actionRepo.Save(ctx, topPriority))

		for _, title := range []string{"First example", "Second example"} {
			require.NoError(t, exampleRepo.Save(ctx, &models.RecommendationExample{
				ActionID:       topPriority.ID,
				Title:          title,
				Content:        "Body",
				TargetingNotes: "Mia",
			}))
		}

		t.Run("by id with details preloads in order", func(t *testing.T) {
			session, err := sessionRepo.ByIDWithDetails(ctx, first.ID)
			require.NoError(t, err)
			require.NotNil(t, session)
			require.Len(t, session.Actions, 2)
			assert.Equal(t, models.ActionTypeLinkedInPosts, session.Actions[0].ActionType)
			assert.Equal(t, []string{"Mia"}, []string(session.Actions[0].TargetICPs))
			require.Len(t, session.Actions[0].Examples, 2)
			assert.Equal(t, "First example", session.Actions[0].Examples[0].Title)
			assert.Empty(t, session.Actions[1].Examples)
		})

		t.Run("by id with details miss returns nil", func(t *testing.T) {
			session, err := sessionRepo.ByIDWithDetails(ctx, 999999)
			require.NoError(t, err)
			assert.Nil(t, session)
		})

		second := &models.RecommendationSession{
			BrandName:    "Acme",
			DataSnapshot: `{"icp_count":3,"chat_count":6,"domain_count":4}`,
			CreatedAt:    time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC),
		}
		require.NoError(t, sessionRepo.Save(ctx, second))

		t.Run("latest picks the newest session", func(t *testing.T) {
			session, err := sessionRepo.Latest(ctx)
			require.NoError(t, err)
			require.NotNil(t, session)
			assert.Equal(t, second.ID, session.ID)
		})

		t.Run("list sessions newest first", func(t *testing.T) {
			sessions, err := sessionRepo.ListSessions(ctx, 10, 0)
			require.NoError(t, err)
			require.Len(t, sessions, 2)
			assert.Equal(t, second.ID, sessions[0].ID)
			assert.Equal(t, first.ID, sessions[1].ID)
			// Summaries carry actions but ordering still applies
			require.Len(t, sessions[1].Actions, 2)
			assert.Equal(t, 1, sessions[1].Actions[0].Priority)

			limited, err := sessionRepo.ListSessions(ctx, 1, 0)
			require.NoError(t, err)
			require.Len(t, limited, 1)
			assert.Equal(t, second.ID, limited[0].ID)

			offset, err := sessionRepo.ListSessions(ctx, 1, 1)
			require.NoError(t, err)
			require.Len(t, offset, 1)
			assert.Equal(t, first.ID, offset[0].ID)
		})

		t.Run("list actions by session", func(t *testing.T) {
			actions, err := actionRepo.ListBySession(ctx, first.ID)
			require.NoError(t, err)
			require.Len(t, actions, 2)
			assert.Equal(t, models.ActionTypeLinkedInPosts, actions[0].ActionType)
			assert.Equal(t, models.ActionTypeBlogContent, actions[1].ActionType)
		})

		t.Run("list examples by action", func(t *testing.T) {
			examples, err := exampleRepo.ListByAction(ctx, topPriority.ID)
			require.NoError(t, err)
			require.Len(t, examples, 2)
			assert.Equal(t, "First example", examples[0].Title)

			empty, err := exampleRepo.ListByAction(ctx, lowPriority.ID)
			require.NoError(t, err)
			assert.Empty(t, empty)
		})
	})
}
