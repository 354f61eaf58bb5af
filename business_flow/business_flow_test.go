package businessflow

import (
	"testing"
	"time"

	"github.com/brandscope-io/brandscope/config"
	"github.com/brandscope-io/brandscope/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientMetadata(t *testing.T) {
	meta := NewClientMetadata("203.0.113.9", "curl/8.5")
	assert.Equal(t, "203.0.113.9", meta.IPAddress)
	assert.Equal(t, "curl/8.5", meta.UserAgent)
	assert.Empty(t, meta.RequestID)

	meta.SetRequestID("req-42")
	assert.Equal(t, "req-42", meta.RequestID)
}

func TestRedisKeyPrefixing(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		key    string
		want   string
	}{
		{"plain prefix", "brandscope", "market:status", "brandscope:market:status"},
		{"trailing colon stripped", "brandscope:", "market:status", "brandscope:market:status"},
		{"empty prefix", "", "market:status", "market:status"},
		{"colon only prefix", ":", "market:status", "market:status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.CacheConfig{RedisPrefix: tt.prefix}
			assert.Equal(t, tt.want, redisKey(cfg, tt.key))
		})
	}
}

func TestToBrandInfoDTO(t *testing.T) {
	updated := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	got := ToBrandInfoDTO(models.BrandInfo{
		Name:        "Acme",
		WebsiteURL:  "https://acme.example.com",
		Description: "Robots",
		UpdatedAt:   updated,
	})

	assert.Equal(t, "Acme", got.Name)
	assert.Equal(t, "2024-03-01T09:30:00Z", got.UpdatedAt)
}

func TestToRecommendationActionDTO(t *testing.T) {
	t.Run("maps fields and nested examples", func(t *testing.T) {
		got := ToRecommendationActionDTO(models.RecommendationAction{
			ID:         7,
			ActionType: models.ActionTypeBlogContent,
			ActionName: "Blog Content Ideas",
			Rationale:  "search demand",
			TargetICPs: pq.StringArray{"Mia", "Dana"},
			Priority:   2,
			Examples: []models.RecommendationExample{
				{ID: 11, Title: "Post one", Content: "Body", TargetingNotes: "Mia"},
			},
		})

		assert.Equal(t, uint(7), got.ID)
		assert.Equal(t, "blog_content", got.ActionType)
		assert.Equal(t, []string{"Mia", "Dana"}, got.TargetICPs)
		require.Len(t, got.Examples, 1)
		assert.Equal(t, "Post one", got.Examples[0].Title)
	})

	t.Run("nil target icps become empty slice", func(t *testing.T) {
		got := ToRecommendationActionDTO(models.RecommendationAction{ActionType: models.ActionTypeBlogContent})
		assert.NotNil(t, got.TargetICPs)
		assert.Empty(t, got.TargetICPs)
		assert.NotNil(t, got.Examples)
	})
}

func TestToRecommendationSessionDTO(t *testing.T) {
	id := uuid.New()
	created := time.Date(2024, 5, 20, 14, 0, 0, 0, time.UTC)

	t.Run("parses snapshot json", func(t *testing.T) {
		got := ToRecommendationSessionDTO(models.RecommendationSession{
			ID:           3,
			UUID:         id,
			CreatedAt:    created,
			BrandName:    "Acme",
			DataSnapshot: `{"icp_count":2,"chat_count":40,"domain_count":15}`,
			Actions: []models.RecommendationAction{
				{ActionType: models.ActionTypeLinkedInPosts, ActionName: "LinkedIn Thought Leadership Posts"},
			},
		})

		assert.Equal(t, uint(3), got.ID)
		assert.Equal(t, id.String(), got.UUID)
		assert.Equal(t, "2024-05-20T14:00:00Z", got.CreatedAt)
		assert.Equal(t, 2, got.DataSnapshot.ICPCount)
		assert.Equal(t, 40, got.DataSnapshot.ChatCount)
		assert.Equal(t, 15, got.DataSnapshot.DomainCount)
		require.Len(t, got.Actions, 1)
		assert.Equal(t, "linkedin_posts", got.Actions[0].ActionType)
	})

	t.Run("bad snapshot json yields zero counts", func(t *testing.T) {
		got := ToRecommendationSessionDTO(models.RecommendationSession{
			UUID:         id,
			DataSnapshot: "{broken",
		})
		assert.Zero(t, got.DataSnapshot.ICPCount)
		assert.Zero(t, got.DataSnapshot.ChatCount)
	})
}

func TestToSessionSummaryDTO(t *testing.T) {
	id := uuid.New()
	got := ToSessionSummaryDTO(models.RecommendationSession{
		ID:           9,
		UUID:         id,
		BrandName:    "Acme",
		DataSnapshot: `{"icp_count":1,"chat_count":2,"domain_count":3}`,
		Actions: []models.RecommendationAction{
			{ActionType: models.ActionTypeBlogContent},
			{ActionType: models.ActionTypeEmailCampaigns},
		},
	})

	assert.Equal(t, uint(9), got.ID)
	assert.Equal(t, 2, got.ActionCount)
	assert.Equal(t, 3, got.DataSnapshot.DomainCount)
}

func TestToChatSampleDTO(t *testing.T) {
	got := ToChatSampleDTO(models.ChatSample{
		ID:            "chat_0001",
		Model:         "gpt-4o",
		UserText:      "Question",
		AssistantText: "Answer",
	})
	assert.Equal(t, "chat_0001", got.ID)
	assert.Equal(t, "Answer", got.AssistantText)
}
