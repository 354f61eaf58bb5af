package businessflow

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/brandscope-io/brandscope/app/dto"
	"github.com/brandscope-io/brandscope/config"
	"github.com/brandscope-io/brandscope/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newICPTestFlow(icpRepo *fakeICPRepo) *ICPFlowImpl {
	return &ICPFlowImpl{
		icpRepo: icpRepo,
		diag:    NewDiagnosticLog(50),
	}
}

func newSuggestTestFlow(icpRepo *fakeICPRepo, brandRepo *fakeBrandRepo, chatRepo *fakeChatRepo, domainRepo *fakeDomainRepo, completion *stubCompletionService) *ICPFlowImpl {
	return &ICPFlowImpl{
		icpRepo:           icpRepo,
		brandRepo:         brandRepo,
		chatRepo:          chatRepo,
		domainRepo:        domainRepo,
		completionService: completion,
		completionConfig:  &config.CompletionConfig{GeneratorModel: "generator-model"},
		diag:              NewDiagnosticLog(50),
	}
}

func TestICPListSortedByName(t *testing.T) {
	repo := newFakeICPRepo(
		models.ICPPersona{Name: "Zoe", Role: "CTO", Goals: "g", Challenges: "c"},
		models.ICPPersona{Name: "Adam", Role: "CMO", Goals: "g", Challenges: "c"},
	)
	flow := newICPTestFlow(repo)

	resp, err := flow.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
	require.Len(t, resp.Personas, 2)
	assert.Equal(t, "Adam", resp.Personas[0].Name)
	assert.Equal(t, "Zoe", resp.Personas[1].Name)
}

func TestICPCreate(t *testing.T) {
	t.Run("trims and saves", func(t *testing.T) {
		repo := newFakeICPRepo()
		flow := newICPTestFlow(repo)

		resp, err := flow.Create(context.Background(), &dto.CreateICPRequest{
			Name:       "  Growth Marketer Mia  ",
			Role:       " Head of Growth ",
			Goals:      " More leads ",
			Challenges: " Small team ",
		}, importMeta())
		require.NoError(t, err)

		assert.Equal(t, "ICP persona created", resp.Message)
		assert.Equal(t, "Growth Marketer Mia", resp.Persona.Name)
		assert.Equal(t, "Head of Growth", resp.Persona.Role)

		stored, err := repo.ByName(context.Background(), "Growth Marketer Mia")
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, "More leads", stored.Goals)
	})

	t.Run("requires every field", func(t *testing.T) {
		tests := []*dto.CreateICPRequest{
			{Name: "", Role: "r", Goals: "g", Challenges: "c"},
			{Name: "n", Role: "  ", Goals: "g", Challenges: "c"},
			{Name: "n", Role: "r", Goals: "", Challenges: "c"},
			{Name: "n", Role: "r", Goals: "g", Challenges: "\t"},
		}
		for i, req := range tests {
			t.Run(fmt.Sprintf("case_%d", i), func(t *testing.T) {
				flow := newICPTestFlow(newFakeICPRepo())

				_, err := flow.Create(context.Background(), req, importMeta())
				assertBusinessErrorCode(t, err, "ICP_FIELDS_REQUIRED")
				assert.True(t, IsPersonaFieldsRequired(err))
			})
		}
	})

	t.Run("rejects duplicate name", func(t *testing.T) {
		repo := newFakeICPRepo(models.ICPPersona{Name: "Mia", Role: "r", Goals: "g", Challenges: "c"})
		flow := newICPTestFlow(repo)

		_, err := flow.Create(context.Background(), &dto.CreateICPRequest{
			Name: "Mia", Role: "r2", Goals: "g2", Challenges: "c2",
		}, importMeta())
		assertBusinessErrorCode(t, err, "ICP_ALREADY_EXISTS")
		assert.True(t, IsICPPersonaAlreadyExists(err))
	})
}

func TestICPUpdate(t *testing.T) {
	t.Run("updates existing", func(t *testing.T) {
		repo := newFakeICPRepo(models.ICPPersona{Name: "Mia", Role: "Head of Growth", Goals: "g", Challenges: "c"})
		flow := newICPTestFlow(repo)

		resp, err := flow.Update(context.Background(), "Mia", &dto.UpdateICPRequest{
			Role:       "VP Marketing",
			Goals:      "Pipeline",
			Challenges: "Attribution",
		}, importMeta())
		require.NoError(t, err)

		assert.Equal(t, "ICP persona updated", resp.Message)
		assert.Equal(t, "Mia", resp.Persona.Name)
		assert.Equal(t, "VP Marketing", resp.Persona.Role)

		stored, _ := repo.ByName(context.Background(), "Mia")
		require.NotNil(t, stored)
		assert.Equal(t, "Pipeline", stored.Goals)
	})

	t.Run("not found", func(t *testing.T) {
		flow := newICPTestFlow(newFakeICPRepo())

		_, err := flow.Update(context.Background(), "Ghost", &dto.UpdateICPRequest{
			Role: "r", Goals: "g", Challenges: "c",
		}, importMeta())
		assertBusinessErrorCode(t, err, "ICP_NOT_FOUND")
		assert.True(t, IsICPPersonaNotFound(err))
	})

	t.Run("requires fields", func(t *testing.T) {
		flow := newICPTestFlow(newFakeICPRepo())

		_, err := flow.Update(context.Background(), "Mia", &dto.UpdateICPRequest{
			Role: "", Goals: "g", Challenges: "c",
		}, importMeta())
		assertBusinessErrorCode(t, err, "ICP_FIELDS_REQUIRED")
	})
}

func TestICPDelete(t *testing.T) {
	t.Run("deletes existing", func(t *testing.T) {
		repo := newFakeICPRepo(models.ICPPersona{Name: "Mia", Role: "r", Goals: "g", Challenges: "c"})
		flow := newICPTestFlow(repo)

		resp, err := flow.Delete(context.Background(), "Mia", importMeta())
		require.NoError(t, err)
		assert.Equal(t, "ICP persona deleted", resp.Message)
		assert.Equal(t, int64(1), resp.Deleted)

		stored, _ := repo.ByName(context.Background(), "Mia")
		assert.Nil(t, stored)
	})

	t.Run("not found", func(t *testing.T) {
		flow := newICPTestFlow(newFakeICPRepo())

		_, err := flow.Delete(context.Background(), "Ghost", importMeta())
		assertBusinessErrorCode(t, err, "ICP_NOT_FOUND")
	})

	t.Run("blank name", func(t *testing.T) {
		flow := newICPTestFlow(newFakeICPRepo())

		_, err := flow.Delete(context.Background(), "   ", importMeta())
		assertBusinessErrorCode(t, err, "ICP_FIELDS_REQUIRED")
	})
}

func TestICPDeleteAll(t *testing.T) {
	repo := newFakeICPRepo(
		models.ICPPersona{Name: "Mia", Role: "r", Goals: "g", Challenges: "c"},
		models.ICPPersona{Name: "Dana", Role: "r", Goals: "g", Challenges: "c"},
		models.ICPPersona{Name: "Sam", Role: "r", Goals: "g", Challenges: "c"},
	)
	flow := newICPTestFlow(repo)

	resp, err := flow.DeleteAll(context.Background(), importMeta())
	require.NoError(t, err)
	assert.Equal(t, "All ICP personas deleted", resp.Message)
	assert.Equal(t, int64(3), resp.Deleted)

	list, _ := repo.ListAll(context.Background())
	assert.Empty(t, list)
}

func suggestionJSON(names ...string) string {
	entries := ""
	for i, name := range names {
		if i > 0 {
			entries += ","
		}
		entries += fmt.Sprintf(`{"name":%q,"role":" VP Operations ","goals":"Reduce cost","challenges":"Legacy stack"}`, name)
	}
	return `{"personas":[` + entries + `]}`
}

func TestICPSuggest(t *testing.T) {
	brandRepo := &fakeBrandRepo{brand: &models.BrandInfo{ID: models.BrandInfoID, Name: "Acme", WebsiteURL: "https://acme.example.com"}}

	t.Run("happy path does not persist drafts", func(t *testing.T) {
		icpRepo := newFakeICPRepo(models.ICPPersona{Name: "Mia", Role: "r", Goals: "g", Challenges: "c"})
		completion := &stubCompletionService{response: suggestionJSON("Ops Olivia", "Finance Felix")}
		flow := newSuggestTestFlow(icpRepo, brandRepo, &fakeChatRepo{}, &fakeDomainRepo{}, completion)

		resp, err := flow.Suggest(context.Background(), &dto.SuggestICPsRequest{Count: 2}, importMeta())
		require.NoError(t, err)

		assert.Equal(t, "Persona suggestions generated", resp.Message)
		require.Len(t, resp.Personas, 2)
		assert.Equal(t, "Ops Olivia", resp.Personas[0].Name)
		// Draft fields come back trimmed
		assert.Equal(t, "VP Operations", resp.Personas[0].Role)

		// Drafts are for review only; the store is untouched
		list, _ := icpRepo.ListAll(context.Background())
		assert.Len(t, list, 1)

		// The suggester call uses the generator model with the persona schema
		require.Len(t, completion.requests, 1)
		assert.Equal(t, "generator-model", completion.requests[0].Model)
		require.NotNil(t, completion.requests[0].Schema)
		assert.Equal(t, "persona_suggestions", completion.requests[0].Schema.Name)
		assert.Contains(t, completion.requests[0].SystemPrompt, "propose 2 new Ideal Customer Profile")
	})

	t.Run("count defaults and caps", func(t *testing.T) {
		tests := []struct {
			requested int
			effective int
		}{
			{0, 3},
			{-2, 3},
			{4, 4},
			{9, 5},
		}
		for _, tt := range tests {
			completion := &stubCompletionService{response: suggestionJSON("Draft")}
			flow := newSuggestTestFlow(newFakeICPRepo(), brandRepo, &fakeChatRepo{}, &fakeDomainRepo{}, completion)

			_, err := flow.Suggest(context.Background(), &dto.SuggestICPsRequest{Count: tt.requested}, importMeta())
			require.NoError(t, err)
			require.Len(t, completion.requests, 1)
			assert.Contains(t, completion.requests[0].SystemPrompt, fmt.Sprintf("propose %d new", tt.effective))
		}
	})

	t.Run("brand required", func(t *testing.T) {
		flow := newSuggestTestFlow(newFakeICPRepo(), &fakeBrandRepo{}, &fakeChatRepo{}, &fakeDomainRepo{}, &stubCompletionService{})

		_, err := flow.Suggest(context.Background(), &dto.SuggestICPsRequest{}, importMeta())
		assertBusinessErrorCode(t, err, "BRAND_NOT_CONFIGURED")
	})

	t.Run("completion failure", func(t *testing.T) {
		flow := newSuggestTestFlow(newFakeICPRepo(), brandRepo, &fakeChatRepo{}, &fakeDomainRepo{}, &stubCompletionService{err: errors.New("timeout")})

		_, err := flow.Suggest(context.Background(), &dto.SuggestICPsRequest{}, importMeta())
		assertBusinessErrorCode(t, err, "SUGGESTION_FAILED")
	})

	t.Run("malformed response", func(t *testing.T) {
		flow := newSuggestTestFlow(newFakeICPRepo(), brandRepo, &fakeChatRepo{}, &fakeDomainRepo{}, &stubCompletionService{response: "not json"})

		_, err := flow.Suggest(context.Background(), &dto.SuggestICPsRequest{}, importMeta())
		assertBusinessErrorCode(t, err, "SCHEMA_PARSE_ERROR")
	})

	t.Run("no personas in response", func(t *testing.T) {
		flow := newSuggestTestFlow(newFakeICPRepo(), brandRepo, &fakeChatRepo{}, &fakeDomainRepo{}, &stubCompletionService{response: `{"personas":[]}`})

		_, err := flow.Suggest(context.Background(), &dto.SuggestICPsRequest{}, importMeta())
		assertBusinessErrorCode(t, err, "EMPTY_COMPLETION_RESPONSE")
	})
}
