package businessflow

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/brandscope-io/brandscope/app/services"
	"github.com/brandscope-io/brandscope/models"
	"github.com/brandscope-io/brandscope/utils"
)

// BrandPromptData is the brand record as embedded in completion prompts
type BrandPromptData struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

// ICPPromptData is a persona record as embedded in completion prompts
type ICPPromptData struct {
	Name       string `json:"name"`
	Role       string `json:"role"`
	Goals      string `json:"goals"`
	Challenges string `json:"challenges"`
}

// ChatPromptData is a chat sample as embedded in completion prompts
type ChatPromptData struct {
	UserQuestion      string `json:"user_question"`
	AssistantResponse string `json:"assistant_response"`
	Model             string `json:"model"`
}

// DomainPromptData is a cited domain as embedded in completion prompts
type DomainPromptData struct {
	Domain       string  `json:"domain"`
	Type         string  `json:"type"`
	UsagePercent float64 `json:"usage_percent"`
	AvgCitations float64 `json:"avg_citations"`
}

// MarketingBundle aggregates everything the recommendation pipeline reads
// from storage before calling the completion API.
type MarketingBundle struct {
	Brand   BrandPromptData
	ICPs    []ICPPromptData
	Chats   []ChatPromptData
	Domains []DomainPromptData
}

// NewMarketingBundle converts storage models into the prompt-facing bundle.
func NewMarketingBundle(brand *models.BrandInfo, icps []models.ICPPersona, chats []models.ChatSample, domains []models.CitedDomain) *MarketingBundle {
	bundle := &MarketingBundle{
		ICPs:    make([]ICPPromptData, 0, len(icps)),
		Chats:   make([]ChatPromptData, 0, len(chats)),
		Domains: make([]DomainPromptData, 0, len(domains)),
	}
	if brand != nil {
		bundle.Brand = BrandPromptData{
			Name:        brand.Name,
			URL:         brand.WebsiteURL,
			Description: brand.Description,
		}
	}
	for _, icp := range icps {
		bundle.ICPs = append(bundle.ICPs, ICPPromptData{
			Name:       icp.Name,
			Role:       icp.Role,
			Goals:      icp.Goals,
			Challenges: icp.Challenges,
		})
	}
	for _, chat := range chats {
		bundle.Chats = append(bundle.Chats, ChatPromptData{
			UserQuestion:      chat.UserText,
			AssistantResponse: chat.AssistantText,
			Model:             chat.Model,
		})
	}
	for _, domain := range domains {
		bundle.Domains = append(bundle.Domains, DomainPromptData{
			Domain:       domain.Domain,
			Type:         string(domain.Type),
			UsagePercent: domain.UsagePercent,
			AvgCitations: domain.AvgCitations,
		})
	}
	return bundle
}

// SelectedAction is one entry of the strategic selector's response.
type SelectedAction struct {
	ActionID   string   `json:"action_id"`
	Rationale  string   `json:"rationale"`
	TargetICPs []string `json:"target_icps"`
	Priority   float64  `json:"priority"`
}

// GeneratedExample is one entry of the content generator's response.
type GeneratedExample struct {
	Title          string `json:"title"`
	Content        string `json:"content"`
	TargetingNotes string `json:"targeting_notes"`
}

// SuggestedPersona is one entry of the persona suggester's response.
type SuggestedPersona struct {
	Name       string `json:"name"`
	Role       string `json:"role"`
	Goals      string `json:"goals"`
	Challenges string `json:"challenges"`
}

const selectorSystemPrompt = `You are a strategic marketing advisor. Your task is to analyze the provided brand, ICP, chat, and domain data, then select 3-5 most relevant marketing actions from the allowed actions list.

For each selected action, provide:
1. A clear rationale explaining why this action is valuable based on the data
2. Which ICP personas would benefit most
3. A priority ranking (1 being highest priority)

Only select action_ids from the allowed actions list provided. Select between 3 and 5 actions.`

// BuildSelectorSystemPrompt returns the strategic selector role framing.
func BuildSelectorSystemPrompt() string {
	return selectorSystemPrompt
}

// BuildSelectorUserPrompt embeds the aggregated bundle and the action catalog
// into the strategic selector's user message. Chats are capped at 10 entries
// and domains at 15 to bound prompt size.
func BuildSelectorUserPrompt(bundle *MarketingBundle) string {
	return fmt.Sprintf(`Analyze this data and select the most impactful marketing actions:

BRAND:
%s

ICP PERSONAS:
%s

SAMPLE CHAT CONVERSATIONS (showing common questions/topics):
%s

TOP CITED DOMAINS:
%s

ALLOWED ACTIONS TO CHOOSE FROM:
%s

Select 3-5 actions and provide your analysis.`,
		mustJSONIndent(bundle.Brand),
		mustJSONIndent(bundle.ICPs),
		mustJSONIndent(limitChats(bundle.Chats, utils.MaxChatSamplesInPrompt)),
		mustJSONIndent(limitDomains(bundle.Domains, utils.MaxCitedDomainsInPrompt)),
		mustJSONIndent(marketingActionCatalog),
	)
}

// BuildGeneratorSystemPrompt returns the action-specific content generator
// role framing. Unknown action IDs get the generic fallback template.
func BuildGeneratorSystemPrompt(action *MarketingAction, selected *SelectedAction) string {
	switch action.ID {
	case models.ActionTypeBlogContent:
		return blogContentSystemPrompt(action, selected)
	case models.ActionTypeLinkedInPosts:
		return linkedInPostsSystemPrompt(action, selected)
	case models.ActionTypeEmailCampaigns:
		return emailCampaignsSystemPrompt(action, selected)
	case models.ActionTypeGuestPosting:
		return guestPostingSystemPrompt(action, selected)
	case models.ActionTypeSocialMediaThreads:
		return socialMediaThreadsSystemPrompt(action, selected)
	case models.ActionTypeContentPartnerships:
		return contentPartnershipsSystemPrompt(action, selected)
	default:
		return genericSystemPrompt(action, selected)
	}
}

func blogContentSystemPrompt(action *MarketingAction, selected *SelectedAction) string {
	return fmt.Sprintf(`You are an expert blog content writer. Your task is to write 2-3 COMPLETE blog post articles (not outlines or summaries).

ACTION: %s
STRATEGIC RATIONALE: %s
TARGET ICPS: %s

CRITICAL INSTRUCTIONS:
- Write the ACTUAL blog post content, ready to publish
- Each blog post should be 800-1500 words minimum
- Use markdown formatting (headers, lists, bold, etc.)
- Include: compelling introduction, 3-5 detailed sections, and strong conclusion
- Reference specific pain points from the ICP data
- Mention relevant domains/sources from the data where appropriate
- Add SEO-friendly headers and natural keyword integration
- DO NOT write a summary or description of what the blog should be - write the actual content
- DO NOT write meta-instructions like "This post should include..." - just write the post itself

Generate 2-3 complete, ready-to-publish blog articles.`,
		action.Name, selected.Rationale, strings.Join(selected.TargetICPs, ", "))
}

func linkedInPostsSystemPrompt(action *MarketingAction, selected *SelectedAction) string {
	return fmt.Sprintf(`You are an expert LinkedIn content strategist. Your task is to write 2-4 COMPLETE LinkedIn posts (not descriptions of posts).

ACTION: %s
STRATEGIC RATIONALE: %s
TARGET ICPS: %s

CRITICAL INSTRUCTIONS:
- Write the ACTUAL post text that can be copy-pasted directly to LinkedIn
- Each post should be 150-300 words (LinkedIn optimal length)
- Include a hook in the first line, valuable insights in the body, and a call-to-action
- Use line breaks for readability (max 2-3 sentences per paragraph)
- Make it conversational and engaging
- Reference specific insights from ICP challenges or chat data
- DO NOT write "This post should talk about..." - write the actual post text
- You may use emojis if appropriate for the brand voice

Generate 2-4 complete, ready-to-post LinkedIn posts.`,
		action.Name, selected.Rationale, strings.Join(selected.TargetICPs, ", "))
}

func emailCampaignsSystemPrompt(action *MarketingAction, selected *SelectedAction) string {
	return fmt.Sprintf(`You are an expert email copywriter. Your task is to write 2-4 COMPLETE email messages (not outlines).

ACTION: %s
STRATEGIC RATIONALE: %s
TARGET ICPS: %s

CRITICAL INSTRUCTIONS:
- Write the ACTUAL email content including subject line and body
- Format each example as: Subject line, then email body
- Keep emails concise (200-400 words)
- Personalize to the ICP's role, goals, and challenges
- Include a clear call-to-action
- Use compelling subject lines (under 50 characters)
- DO NOT write "This email should address..." - write the actual email
- Make it sound natural and personal, not salesy

Generate 2-4 complete, ready-to-send email campaigns.`,
		action.Name, selected.Rationale, strings.Join(selected.TargetICPs, ", "))
}

func guestPostingSystemPrompt(action *MarketingAction, selected *SelectedAction) string {
	return fmt.Sprintf(`You are an expert at guest post pitching. Your task is to create 2-3 COMPLETE pitch packages.

ACTION: %s
STRATEGIC RATIONALE: %s
TARGET ICPS: %s

CRITICAL INSTRUCTIONS:
- For each example, provide TWO parts: 1) Pitch email to the publication, 2) Article outline
- The pitch email should be 150-250 words, persuasive and specific
- Identify specific high-authority domains from the data to target
- The article outline should include title, introduction summary, 4-6 key sections with bullet points
- Explain why this topic fits the publication's audience
- DO NOT write "Pitch publications that..." - write actual pitch emails
- Reference the brand's expertise and value proposition

Generate 2-3 complete guest post pitch packages (each with pitch email + article outline).`,
		action.Name, selected.Rationale, strings.Join(selected.TargetICPs, ", "))
}

func socialMediaThreadsSystemPrompt(action *MarketingAction, selected *SelectedAction) string {
	return fmt.Sprintf(`You are an expert at creating viral social media threads. Your task is to write 2-4 COMPLETE threads.

ACTION: %s
STRATEGIC RATIONALE: %s
TARGET ICPS: %s

CRITICAL INSTRUCTIONS:
- Write the ACTUAL thread text for Twitter/X or LinkedIn
- Each thread should be 5-10 tweets/posts
- Number each post (1/10, 2/10, etc.)
- First post should be a compelling hook
- Each subsequent post should build on the previous one
- Use short, punchy sentences
- Include insights from ICP challenges or chat data
- End with a strong call-to-action
- DO NOT write "This thread should cover..." - write the actual thread
- Keep each post under 280 characters if for Twitter

Generate 2-4 complete, ready-to-post social media threads.`,
		action.Name, selected.Rationale, strings.Join(selected.TargetICPs, ", "))
}

func contentPartnershipsSystemPrompt(action *MarketingAction, selected *SelectedAction) string {
	return fmt.Sprintf(`You are an expert at forming content partnerships. Your task is to create 2-3 COMPLETE partnership proposals.

ACTION: %s
STRATEGIC RATIONALE: %s
TARGET ICPS: %s

CRITICAL INSTRUCTIONS:
- For each example, provide: 1) Target partner (specific domain from data), 2) Outreach email, 3) Collaboration idea
- The outreach email should be 200-300 words, professional and value-focused
- Propose specific, mutually beneficial collaboration ideas
- Reference why this partnership makes sense based on their content/audience
- Include clear next steps
- DO NOT write "Reach out to partners who..." - identify specific partners and write actual outreach
- Make it personalized and compelling

Generate 2-3 complete partnership proposals (each with target, email, and collaboration idea).`,
		action.Name, selected.Rationale, strings.Join(selected.TargetICPs, ", "))
}

func genericSystemPrompt(action *MarketingAction, selected *SelectedAction) string {
	return fmt.Sprintf(`You are an expert marketing content creator. Your task is to generate 2-4 concrete, ready-to-use examples for the following marketing action:

ACTION: %s
DESCRIPTION: %s
STRATEGIC RATIONALE: %s
TARGET ICPS: %s

CRITICAL: Write the ACTUAL content, not a description or outline of what the content should be.

Create examples that are:
1. Specific and actionable (not generic templates)
2. Tailored to the brand and ICP personas
3. Reference insights from the chat data and domain analysis where relevant
4. Professional and compelling
5. Ready to use immediately without further editing

Generate between 2 and 4 high-quality, complete examples.`,
		action.Name, action.Description, selected.Rationale, strings.Join(selected.TargetICPs, ", "))
}

// ExampleCountHint returns how many examples to request for an action.
// Long-form content gets fewer, short-form scales with the number of target
// ICPs. The hint is advisory only; returned counts are not re-validated.
func ExampleCountHint(actionID string, targetICPCount int) int {
	switch models.ActionType(actionID) {
	case models.ActionTypeBlogContent:
		return 2
	case models.ActionTypeLinkedInPosts, models.ActionTypeEmailCampaigns, models.ActionTypeSocialMediaThreads:
		count := targetICPCount + 1
		if count > 3 {
			count = 3
		}
		return count
	default:
		if targetICPCount <= 2 {
			return 2
		}
		return 3
	}
}

// BuildGeneratorUserPrompt embeds the bundle into the content generator's
// user message for one action.
func BuildGeneratorUserPrompt(bundle *MarketingBundle, actionName string, exampleCount int) string {
	return fmt.Sprintf(`Generate %d COMPLETE, READY-TO-USE examples based on this context:

BRAND:
%s

ICP PERSONAS (these are your target audience):
%s

SAMPLE CHAT CONVERSATIONS (real questions/topics from potential customers):
%s

TOP CITED DOMAINS (authoritative sources in this space):
%s

REMEMBER: Write the actual %s, NOT a description of what to write.
The output should be immediately usable without any additional work.

Create %d high-quality examples now.`,
		exampleCount,
		mustJSONIndent(bundle.Brand),
		mustJSONIndent(bundle.ICPs),
		mustJSONIndent(limitChats(bundle.Chats, utils.MaxChatSamplesInPrompt)),
		mustJSONIndent(limitDomains(bundle.Domains, utils.MaxCitedDomainsInPrompt)),
		strings.ToLower(actionName),
		exampleCount,
	)
}

const brandDescriptionSystemPrompt = "You are a marketing expert who writes concise, compelling brand descriptions. Create a 2-3 paragraph description that captures the essence of the brand, its value proposition, and what makes it unique."

// BuildBrandDescriptionSystemPrompt returns the brand describer role framing.
func BuildBrandDescriptionSystemPrompt() string {
	return brandDescriptionSystemPrompt
}

// BuildBrandDescriptionUserPrompt embeds the scraped website text into the
// brand describer's user message.
func BuildBrandDescriptionUserPrompt(name, websiteURL, websiteText string) string {
	return fmt.Sprintf("Based on the following website content for %s (%s), write a concise brand description:\n\n%s", name, websiteURL, websiteText)
}

// BuildPersonaSuggestionSystemPrompt returns the persona suggester role
// framing for the requested number of drafts.
func BuildPersonaSuggestionSystemPrompt(count int) string {
	return fmt.Sprintf(`You are an expert B2B marketing strategist. Your task is to propose %d new Ideal Customer Profile (ICP) personas for the brand described in the provided data.

For each persona, provide:
1. A short, memorable name (e.g. "Enterprise Emma", "Startup Sam")
2. Their job role or title
3. Their goals as short bullet-style lines
4. Their challenges as short bullet-style lines

Ground every persona in the brand description, chat conversations, and cited domains provided. Do not duplicate any existing persona.`, count)
}

// BuildPersonaSuggestionUserPrompt embeds the bundle into the persona
// suggester's user message.
func BuildPersonaSuggestionUserPrompt(bundle *MarketingBundle, count int) string {
	return fmt.Sprintf(`Propose %d ICP personas based on this context:

BRAND:
%s

EXISTING ICP PERSONAS (do not duplicate these):
%s

SAMPLE CHAT CONVERSATIONS (real questions/topics from potential customers):
%s

TOP CITED DOMAINS (authoritative sources in this space):
%s

Create %d distinct, well-grounded personas now.`,
		count,
		mustJSONIndent(bundle.Brand),
		mustJSONIndent(bundle.ICPs),
		mustJSONIndent(limitChats(bundle.Chats, utils.MaxChatSamplesInPrompt)),
		mustJSONIndent(limitDomains(bundle.Domains, utils.MaxCitedDomainsInPrompt)),
		count,
	)
}

// StrategicRecommendationsSchema is the strict response schema for the
// strategic selector.
func StrategicRecommendationsSchema() *services.JSONSchemaFormat {
	return &services.JSONSchemaFormat{
		Name: "strategic_recommendations",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"selected_actions": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"action_id": map[string]any{"type": "string"},
							"rationale": map[string]any{"type": "string"},
							"target_icps": map[string]any{
								"type":  "array",
								"items": map[string]any{"type": "string"},
							},
							"priority": map[string]any{"type": "number"},
						},
						"required":             []string{"action_id", "rationale", "target_icps", "priority"},
						"additionalProperties": false,
					},
				},
			},
			"required":             []string{"selected_actions"},
			"additionalProperties": false,
		},
	}
}

// ContentExamplesSchema is the strict response schema for the content
// generator.
func ContentExamplesSchema() *services.JSONSchemaFormat {
	return &services.JSONSchemaFormat{
		Name: "content_examples",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"examples": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"title":           map[string]any{"type": "string"},
							"content":         map[string]any{"type": "string"},
							"targeting_notes": map[string]any{"type": "string"},
						},
						"required":             []string{"title", "content", "targeting_notes"},
						"additionalProperties": false,
					},
				},
			},
			"required":             []string{"examples"},
			"additionalProperties": false,
		},
	}
}

// PersonaSuggestionsSchema is the strict response schema for the persona
// suggester.
func PersonaSuggestionsSchema() *services.JSONSchemaFormat {
	return &services.JSONSchemaFormat{
		Name: "persona_suggestions",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"personas": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"name":       map[string]any{"type": "string"},
							"role":       map[string]any{"type": "string"},
							"goals":      map[string]any{"type": "string"},
							"challenges": map[string]any{"type": "string"},
						},
						"required":             []string{"name", "role", "goals", "challenges"},
						"additionalProperties": false,
					},
				},
			},
			"required":             []string{"personas"},
			"additionalProperties": false,
		},
	}
}

func mustJSONIndent(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "[]"
	}
	return string(data)
}

func limitChats(chats []ChatPromptData, limit int) []ChatPromptData {
	if len(chats) > limit {
		return chats[:limit]
	}
	return chats
}

func limitDomains(domains []DomainPromptData, limit int) []DomainPromptData {
	if len(domains) > limit {
		return domains[:limit]
	}
	return domains
}
