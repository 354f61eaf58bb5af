package dto

// ICPPersonaDTO is the API representation of an ideal customer profile persona
type ICPPersonaDTO struct {
	Name       string `json:"name" example:"Growth Marketer Mia"`
	Role       string `json:"role" example:"Head of Growth at a B2B SaaS startup"`
	Goals      string `json:"goals" example:"Increase qualified inbound leads without growing paid spend"`
	Challenges string `json:"challenges" example:"Small team, limited time for content production"`
}

// ListICPsResponse represents the stored personas ordered by name
type ListICPsResponse struct {
	Personas []ICPPersonaDTO `json:"personas"`
	Total    int             `json:"total" example:"3"`
}

// CreateICPRequest represents the request payload for creating a persona
type CreateICPRequest struct {
	Name       string `json:"name" validate:"required,min=1,max=255" example:"Growth Marketer Mia"`
	Role       string `json:"role" validate:"required,min=1,max=255" example:"Head of Growth at a B2B SaaS startup"`
	Goals      string `json:"goals" validate:"required,min=1" example:"Increase qualified inbound leads without growing paid spend"`
	Challenges string `json:"challenges" validate:"required,min=1" example:"Small team, limited time for content production"`
}

// UpdateICPRequest represents the request payload for updating a persona.
// The name comes from the URL path and cannot be changed.
type UpdateICPRequest struct {
	Role       string `json:"role" validate:"required,min=1,max=255" example:"VP of Marketing"`
	Goals      string `json:"goals" validate:"required,min=1" example:"Build a repeatable demand generation engine"`
	Challenges string `json:"challenges" validate:"required,min=1" example:"Attribution across many channels is unreliable"`
}

// ICPPersonaResponse represents the result of creating or updating a persona
type ICPPersonaResponse struct {
	Message string        `json:"message" example:"ICP persona created"`
	Persona ICPPersonaDTO `json:"persona"`
}

// DeleteICPsResponse represents the result of deleting one or all personas
type DeleteICPsResponse struct {
	Message string `json:"message" example:"ICP persona deleted"`
	Deleted int64  `json:"deleted" example:"1"`
}

// SuggestICPsRequest represents the request payload for AI persona suggestions
type SuggestICPsRequest struct {
	Count int `json:"count" validate:"omitempty,min=1,max=5" example:"3"`
}

// SuggestICPsResponse carries suggested persona drafts. Drafts are returned
// for review and are not persisted.
type SuggestICPsResponse struct {
	Message  string          `json:"message" example:"Persona suggestions generated"`
	Personas []ICPPersonaDTO `json:"personas"`
}
