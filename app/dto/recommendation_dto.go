package dto

// DataSnapshotDTO records how much market data fed a recommendation session
type DataSnapshotDTO struct {
	ICPCount    int `json:"icp_count" example:"3"`
	ChatCount   int `json:"chat_count" example:"20"`
	DomainCount int `json:"domain_count" example:"20"`
}

// GeneratedActionSummary summarizes one persisted action of a pipeline run
type GeneratedActionSummary struct {
	ActionType   string `json:"action_type" example:"linkedin_posts"`
	ActionName   string `json:"action_name" example:"LinkedIn Posts"`
	Priority     int    `json:"priority" example:"1"`
	ExampleCount int    `json:"example_count" example:"3"`
}

// SkippedAction records an action the pipeline selected but could not complete
type SkippedAction struct {
	ActionType string `json:"action_type" example:"guest_posting"`
	Reason     string `json:"reason" example:"Empty response from completion API"`
}

// GenerateRecommendationsResponse represents the result of a full pipeline run
type GenerateRecommendationsResponse struct {
	Message     string                   `json:"message" example:"Recommendations generated"`
	SessionID   uint                     `json:"session_id" example:"7"`
	SessionUUID string                   `json:"session_uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	Actions     []GeneratedActionSummary `json:"actions"`
	Skipped     []SkippedAction          `json:"skipped,omitempty"`
	Warnings    []string                 `json:"warnings,omitempty"`
}

// RecommendationExampleDTO is the API representation of one generated content example
type RecommendationExampleDTO struct {
	ID             uint   `json:"id" example:"42"`
	Title          string `json:"title" example:"Why attribution breaks at scale"`
	Content        string `json:"content" example:"Most growth teams discover the same thing..."`
	TargetingNotes string `json:"targeting_notes,omitempty" example:"Best for VP-level personas on LinkedIn"`
}

// RecommendationActionDTO is the API representation of one recommended action
// with its generated examples
type RecommendationActionDTO struct {
	ID         uint                       `json:"id" example:"12"`
	ActionType string                     `json:"action_type" example:"linkedin_posts"`
	ActionName string                     `json:"action_name" example:"LinkedIn Posts"`
	Rationale  string                     `json:"rationale" example:"The brand's ICPs are most reachable on LinkedIn..."`
	TargetICPs []string                   `json:"target_icps"`
	Priority   int                        `json:"priority" example:"1"`
	Examples   []RecommendationExampleDTO `json:"examples"`
}

// RecommendationSessionDTO is the full API representation of one pipeline run
type RecommendationSessionDTO struct {
	ID           uint                      `json:"id" example:"7"`
	UUID         string                    `json:"uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	CreatedAt    string                    `json:"created_at" example:"2024-01-15T10:30:00Z"`
	BrandName    string                    `json:"brand_name" example:"Acme Analytics"`
	DataSnapshot DataSnapshotDTO           `json:"data_snapshot"`
	Actions      []RecommendationActionDTO `json:"actions"`
}

// SessionSummaryDTO is the list representation of a session without example payloads
type SessionSummaryDTO struct {
	ID           uint            `json:"id" example:"7"`
	UUID         string          `json:"uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	CreatedAt    string          `json:"created_at" example:"2024-01-15T10:30:00Z"`
	BrandName    string          `json:"brand_name" example:"Acme Analytics"`
	DataSnapshot DataSnapshotDTO `json:"data_snapshot"`
	ActionCount  int             `json:"action_count" example:"4"`
}

// ListSessionsResponse represents stored sessions, newest first
type ListSessionsResponse struct {
	Sessions []SessionSummaryDTO `json:"sessions"`
	Total    int64               `json:"total" example:"9"`
}

// DiagnosticRequestDTO is the request half of a recorded completion exchange
type DiagnosticRequestDTO struct {
	Action       string `json:"action,omitempty" example:"linkedin_posts"`
	SystemPrompt string `json:"system_prompt" example:"You are a strategic B2B marketing consultant..."`
	UserPrompt   string `json:"user_prompt" example:"# BRAND PROFILE..."`
}

// DiagnosticEntryDTO is one recorded completion exchange, newest first
type DiagnosticEntryDTO struct {
	Timestamp string               `json:"timestamp" example:"2024-01-15T10:30:00Z"`
	Agent     string               `json:"agent" example:"Strategic Selector"`
	Model     string               `json:"model" example:"openai/gpt-5"`
	Request   DiagnosticRequestDTO `json:"request"`
	Response  string               `json:"response" example:"{\"selected_actions\":[...]}"`
}

// DiagnosticLogResponse represents the in-memory completion exchange log
type DiagnosticLogResponse struct {
	Entries []DiagnosticEntryDTO `json:"entries"`
	Total   int                  `json:"total" example:"12"`
}

// ClearDiagnosticLogResponse represents the result of clearing the diagnostic log
type ClearDiagnosticLogResponse struct {
	Message string `json:"message" example:"Debug logs cleared"`
	Cleared int    `json:"cleared" example:"12"`
}
