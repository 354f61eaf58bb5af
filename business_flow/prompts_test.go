package businessflow

import (
	"fmt"
	"strings"
	"testing"

	"github.com/brandscope-io/brandscope/models"
	"github.com/brandscope-io/brandscope/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMarketingBundle(t *testing.T) {
	brand := &models.BrandInfo{Name: "Acme", WebsiteURL: "https://acme.example.com", Description: "Analytics"}
	icps := []models.ICPPersona{{Name: "Mia", Role: "Head of Growth", Goals: "Leads", Challenges: "Budget"}}
	chats := []models.ChatSample{{ID: "c1", Model: "gpt-4o", UserText: "What tool?", AssistantText: "Try these"}}
	domains := []models.CitedDomain{{Domain: "reddit.com", Type: models.DomainTypeUGC, UsagePercent: 12.5, AvgCitations: 34.2}}

	bundle := NewMarketingBundle(brand, icps, chats, domains)

	assert.Equal(t, "Acme", bundle.Brand.Name)
	assert.Equal(t, "https://acme.example.com", bundle.Brand.URL)
	assert.Equal(t, "Analytics", bundle.Brand.Description)

	require.Len(t, bundle.ICPs, 1)
	assert.Equal(t, "Mia", bundle.ICPs[0].Name)
	assert.Equal(t, "Head of Growth", bundle.ICPs[0].Role)

	require.Len(t, bundle.Chats, 1)
	assert.Equal(t, "What tool?", bundle.Chats[0].UserQuestion)
	assert.Equal(t, "Try these", bundle.Chats[0].AssistantResponse)
	assert.Equal(t, "gpt-4o", bundle.Chats[0].Model)

	require.Len(t, bundle.Domains, 1)
	assert.Equal(t, "reddit.com", bundle.Domains[0].Domain)
	assert.Equal(t, "UGC", bundle.Domains[0].Type)
	assert.Equal(t, 12.5, bundle.Domains[0].UsagePercent)
}

func TestNewMarketingBundleNilBrand(t *testing.T) {
	bundle := NewMarketingBundle(nil, nil, nil, nil)
	assert.Empty(t, bundle.Brand.Name)
	assert.Empty(t, bundle.ICPs)
	assert.Empty(t, bundle.Chats)
	assert.Empty(t, bundle.Domains)
}

func TestBuildSelectorUserPromptContents(t *testing.T) {
	prompt := BuildSelectorUserPrompt(sampleBundle())

	assert.Contains(t, prompt, "BRAND:")
	assert.Contains(t, prompt, "ICP PERSONAS:")
	assert.Contains(t, prompt, "SAMPLE CHAT CONVERSATIONS")
	assert.Contains(t, prompt, "TOP CITED DOMAINS:")
	assert.Contains(t, prompt, "ALLOWED ACTIONS TO CHOOSE FROM:")

	assert.Contains(t, prompt, "Acme Analytics")
	assert.Contains(t, prompt, "Growth Marketer Mia")
	assert.Contains(t, prompt, "reddit.com")

	// The full closed catalog is embedded so the selector cannot invent IDs
	for _, id := range ActionCatalogIDs() {
		assert.Contains(t, prompt, id)
	}
}

func TestBuildSelectorUserPromptCapsChatsAndDomains(t *testing.T) {
	var chats []models.ChatSample
	for i := 1; i <= utils.MaxChatSamplesInPrompt+2; i++ {
		chats = append(chats, models.ChatSample{
			ID:       fmt.Sprintf("chat-%02d", i),
			Model:    "gpt-4o",
			UserText: fmt.Sprintf("question-%02d", i),
		})
	}
	var domains []models.CitedDomain
	for i := 1; i <= utils.MaxCitedDomainsInPrompt+3; i++ {
		domains = append(domains, models.CitedDomain{
			Domain: fmt.Sprintf("site-%02d.example.com", i),
			Type:   models.DomainTypeEditorial,
		})
	}

	brand := &models.BrandInfo{Name: "Acme", WebsiteURL: "https://acme.example.com"}
	bundle := NewMarketingBundle(brand, []models.ICPPersona{{Name: "Mia"}}, chats, domains)
	prompt := BuildSelectorUserPrompt(bundle)

	assert.Contains(t, prompt, fmt.Sprintf("question-%02d", utils.MaxChatSamplesInPrompt))
	assert.NotContains(t, prompt, fmt.Sprintf("question-%02d", utils.MaxChatSamplesInPrompt+1))
	assert.Contains(t, prompt, fmt.Sprintf("site-%02d.example.com", utils.MaxCitedDomainsInPrompt))
	assert.NotContains(t, prompt, fmt.Sprintf("site-%02d.example.com", utils.MaxCitedDomainsInPrompt+1))
}

func TestBuildGeneratorSystemPromptPerAction(t *testing.T) {
	sel := &SelectedAction{
		ActionID:   "blog_content",
		Rationale:  "high search intent in the chat data",
		TargetICPs: []string{"Growth Marketer Mia", "Data-Driven Dana"},
		Priority:   1,
	}

	tests := []struct {
		actionID string
		marker   string
	}{
		{"blog_content", "expert blog content writer"},
		{"linkedin_posts", "expert LinkedIn content strategist"},
		{"email_campaigns", "expert email copywriter"},
		{"guest_posting", "guest post pitching"},
		{"social_media_threads", "viral social media threads"},
		{"content_partnerships", "forming content partnerships"},
	}

	for _, tt := range tests {
		t.Run(tt.actionID, func(t *testing.T) {
			action := ActionByID(tt.actionID)
			require.NotNil(t, action)

			prompt := BuildGeneratorSystemPrompt(action, sel)
			assert.Contains(t, prompt, tt.marker)
			assert.Contains(t, prompt, action.Name)
			assert.Contains(t, prompt, sel.Rationale)
			assert.Contains(t, prompt, "Growth Marketer Mia, Data-Driven Dana")
		})
	}
}

func TestBuildGeneratorSystemPromptFallback(t *testing.T) {
	action := &MarketingAction{
		ID:          models.ActionType("webinar_series"),
		Name:        "Webinar Series",
		Description: "Run a monthly expert webinar",
	}
	sel := &SelectedAction{ActionID: "webinar_series", Rationale: "audience asks live questions", TargetICPs: []string{"Mia"}}

	prompt := BuildGeneratorSystemPrompt(action, sel)
	assert.Contains(t, prompt, "expert marketing content creator")
	assert.Contains(t, prompt, "Webinar Series")
	assert.Contains(t, prompt, "Run a monthly expert webinar")
}

func TestBuildGeneratorUserPrompt(t *testing.T) {
	prompt := BuildGeneratorUserPrompt(sampleBundle(), "Blog Content Ideas", 2)

	assert.Contains(t, prompt, "Generate 2 COMPLETE, READY-TO-USE examples")
	assert.Contains(t, prompt, "blog content ideas")
	assert.Contains(t, prompt, "Create 2 high-quality examples now.")
	assert.Contains(t, prompt, "Acme Analytics")
}

func TestExampleCountHint(t *testing.T) {
	tests := []struct {
		name     string
		actionID string
		icpCount int
		want     int
	}{
		{"blog is always two", "blog_content", 0, 2},
		{"blog ignores icp count", "blog_content", 7, 2},
		{"linkedin no targets", "linkedin_posts", 0, 1},
		{"linkedin one target", "linkedin_posts", 1, 2},
		{"linkedin two targets", "linkedin_posts", 2, 3},
		{"linkedin capped at three", "linkedin_posts", 5, 3},
		{"email scales", "email_campaigns", 1, 2},
		{"threads capped", "social_media_threads", 4, 3},
		{"guest posting small audience", "guest_posting", 2, 2},
		{"guest posting wide audience", "guest_posting", 3, 3},
		{"partnerships small audience", "content_partnerships", 1, 2},
		{"unknown action wide audience", "webinar_series", 4, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExampleCountHint(tt.actionID, tt.icpCount))
		})
	}
}

func TestBuildBrandDescriptionPrompts(t *testing.T) {
	system := BuildBrandDescriptionSystemPrompt()
	assert.Contains(t, system, "brand descriptions")

	user := BuildBrandDescriptionUserPrompt("Acme", "https://acme.example.com", "We build robots.")
	assert.Contains(t, user, "Acme")
	assert.Contains(t, user, "https://acme.example.com")
	assert.Contains(t, user, "We build robots.")
}

func TestBuildPersonaSuggestionPrompts(t *testing.T) {
	system := BuildPersonaSuggestionSystemPrompt(4)
	assert.Contains(t, system, "propose 4 new Ideal Customer Profile (ICP) personas")

	user := BuildPersonaSuggestionUserPrompt(sampleBundle(), 3)
	assert.Contains(t, user, "Propose 3 ICP personas")
	assert.Contains(t, user, "EXISTING ICP PERSONAS (do not duplicate these):")
	assert.Contains(t, user, "Growth Marketer Mia")
	assert.Contains(t, user, "Create 3 distinct, well-grounded personas now.")
}

func TestResponseSchemas(t *testing.T) {
	selector := StrategicRecommendationsSchema()
	require.NotNil(t, selector)
	assert.Equal(t, "strategic_recommendations", selector.Name)
	assert.Equal(t, []string{"selected_actions"}, selector.Schema["required"])

	generator := ContentExamplesSchema()
	require.NotNil(t, generator)
	assert.Equal(t, "content_examples", generator.Name)
	assert.Equal(t, []string{"examples"}, generator.Schema["required"])

	personas := PersonaSuggestionsSchema()
	require.NotNil(t, personas)
	assert.Equal(t, "persona_suggestions", personas.Name)
	assert.Equal(t, []string{"personas"}, personas.Schema["required"])
}

func TestSelectorSystemPromptFramesTheTask(t *testing.T) {
	prompt := BuildSelectorSystemPrompt()
	assert.Contains(t, prompt, "strategic marketing advisor")
	assert.Contains(t, prompt, "3-5")
	assert.True(t, strings.Contains(prompt, "allowed actions"))
}
