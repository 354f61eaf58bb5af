// Package businessflow contains the business logic for the application.
package businessflow

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/brandscope-io/brandscope/app/dto"
	"github.com/brandscope-io/brandscope/config"
	"github.com/brandscope-io/brandscope/models"
)

const RequestIDKey = "X-Request-ID"

// ClientMetadata holds client-related information for request tracking
type ClientMetadata struct {
	IPAddress string `json:"ip_address"`
	UserAgent string `json:"user_agent"`
	RequestID string `json:"request_id,omitempty"`
}

// NewClientMetadata creates a new ClientMetadata instance with basic information
func NewClientMetadata(ipAddress, userAgent string) *ClientMetadata {
	return &ClientMetadata{
		IPAddress: ipAddress,
		UserAgent: userAgent,
	}
}

// SetRequestID sets the request ID
func (cm *ClientMetadata) SetRequestID(requestID string) {
	cm.RequestID = requestID
}

// redisKey builds a namespaced cache key using the configured Redis prefix
func redisKey(cfg config.CacheConfig, key string) string {
	prefix := strings.TrimSuffix(cfg.RedisPrefix, ":")
	if prefix == "" {
		return key
	}
	return prefix + ":" + key
}

// ToBrandInfoDTO converts a brand model to its API representation
func ToBrandInfoDTO(brand models.BrandInfo) dto.BrandInfoDTO {
	return dto.BrandInfoDTO{
		Name:        brand.Name,
		WebsiteURL:  brand.WebsiteURL,
		Description: brand.Description,
		UpdatedAt:   brand.UpdatedAt.Format(time.RFC3339),
	}
}

// ToICPPersonaDTO converts a persona model to its API representation
func ToICPPersonaDTO(persona models.ICPPersona) dto.ICPPersonaDTO {
	return dto.ICPPersonaDTO{
		Name:       persona.Name,
		Role:       persona.Role,
		Goals:      persona.Goals,
		Challenges: persona.Challenges,
	}
}

// ToCitedDomainDTO converts a domain model to its API representation
func ToCitedDomainDTO(domain models.CitedDomain) dto.CitedDomainDTO {
	return dto.CitedDomainDTO{
		Domain:       domain.Domain,
		Type:         string(domain.Type),
		UsagePercent: domain.UsagePercent,
		AvgCitations: domain.AvgCitations,
	}
}

// ToChatSampleDTO converts a chat model to its API representation
func ToChatSampleDTO(chat models.ChatSample) dto.ChatSampleDTO {
	return dto.ChatSampleDTO{
		ID:            chat.ID,
		Model:         chat.Model,
		UserText:      chat.UserText,
		AssistantText: chat.AssistantText,
	}
}

// ToRecommendationExampleDTO converts an example model to its API representation
func ToRecommendationExampleDTO(example models.RecommendationExample) dto.RecommendationExampleDTO {
	return dto.RecommendationExampleDTO{
		ID:             example.ID,
		Title:          example.Title,
		Content:        example.Content,
		TargetingNotes: example.TargetingNotes,
	}
}

// ToRecommendationActionDTO converts an action model to its API representation
func ToRecommendationActionDTO(action models.RecommendationAction) dto.RecommendationActionDTO {
	targetICPs := []string(action.TargetICPs)
	if targetICPs == nil {
		targetICPs = []string{}
	}

	examples := make([]dto.RecommendationExampleDTO, 0, len(action.Examples))
	for _, example := range action.Examples {
		examples = append(examples, ToRecommendationExampleDTO(example))
	}

	return dto.RecommendationActionDTO{
		ID:         action.ID,
		ActionType: string(action.ActionType),
		ActionName: action.ActionName,
		Rationale:  action.Rationale,
		TargetICPs: targetICPs,
		Priority:   action.Priority,
		Examples:   examples,
	}
}

// ToRecommendationSessionDTO converts a session model with preloaded actions
// and examples to its API representation
func ToRecommendationSessionDTO(session models.RecommendationSession) dto.RecommendationSessionDTO {
	snapshot := dto.DataSnapshotDTO{}
	if session.DataSnapshot != "" {
		_ = json.Unmarshal([]byte(session.DataSnapshot), &snapshot)
	}

	actions := make([]dto.RecommendationActionDTO, 0, len(session.Actions))
	for _, action := range session.Actions {
		actions = append(actions, ToRecommendationActionDTO(action))
	}

	return dto.RecommendationSessionDTO{
		ID:           session.ID,
		UUID:         session.UUID.String(),
		CreatedAt:    session.CreatedAt.Format(time.RFC3339),
		BrandName:    session.BrandName,
		DataSnapshot: snapshot,
		Actions:      actions,
	}
}

// ToSessionSummaryDTO converts a session model to its list representation
// without example payloads
func ToSessionSummaryDTO(session models.RecommendationSession) dto.SessionSummaryDTO {
	snapshot := dto.DataSnapshotDTO{}
	if session.DataSnapshot != "" {
		_ = json.Unmarshal([]byte(session.DataSnapshot), &snapshot)
	}

	return dto.SessionSummaryDTO{
		ID:           session.ID,
		UUID:         session.UUID.String(),
		CreatedAt:    session.CreatedAt.Format(time.RFC3339),
		BrandName:    session.BrandName,
		DataSnapshot: snapshot,
		ActionCount:  len(session.Actions),
	}
}
