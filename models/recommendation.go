package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/brandscope-io/brandscope/utils"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ActionType identifies one entry of the fixed marketing action taxonomy.
type ActionType string

const (
	ActionTypeLinkedInPosts       ActionType = "linkedin_posts"
	ActionTypeBlogContent         ActionType = "blog_content"
	ActionTypeGuestPosting        ActionType = "guest_posting"
	ActionTypeEmailCampaigns      ActionType = "email_campaigns"
	ActionTypeContentPartnerships ActionType = "content_partnerships"
	ActionTypeSocialMediaThreads  ActionType = "social_media_threads"
)

// Valid checks if the action type is valid.
func (t ActionType) Valid() bool {
	switch t {
	case ActionTypeLinkedInPosts,
		ActionTypeBlogContent,
		ActionTypeGuestPosting,
		ActionTypeEmailCampaigns,
		ActionTypeContentPartnerships,
		ActionTypeSocialMediaThreads:
		return true
	default:
		return false
	}
}

// Scan implements the sql.Scanner interface for ActionType.
func (t *ActionType) Scan(value any) error {
	if value == nil {
		*t = ""
		return nil
	}

	switch v := value.(type) {
	case string:
		*t = ActionType(v)
	case []byte:
		*t = ActionType(string(v))
	default:
		return fmt.Errorf("cannot scan %T into ActionType", value)
	}

	return nil
}

// Value implements the driver.Valuer interface for ActionType.
func (t ActionType) Value() (driver.Value, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid ActionType: %s", t)
	}
	return string(t), nil
}

// RecommendationSession represents one run of the recommendation pipeline.
// DataSnapshot keeps the aggregated brand context the run saw, as JSON, so a
// stored session stays interpretable after the underlying data changes.
type RecommendationSession struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UUID         uuid.UUID `gorm:"type:uuid;uniqueIndex;not null;default:gen_random_uuid()" json:"uuid"`
	BrandName    string    `gorm:"type:varchar(255);not null" json:"brand_name"`
	DataSnapshot string    `gorm:"type:text" json:"data_snapshot"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;index" json:"created_at"`

	Actions []RecommendationAction `gorm:"foreignKey:SessionID;references:ID;constraint:OnDelete:CASCADE" json:"actions,omitempty"`
}

func (RecommendationSession) TableName() string { return "recommendation_sessions" }

// BeforeCreate ensures UUID and timestamps are set.
func (s *RecommendationSession) BeforeCreate(tx *gorm.DB) error {
	if s.UUID == uuid.Nil {
		s.UUID = uuid.New()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = utils.UTCNow()
	}
	return nil
}

// RecommendationAction represents one selected action of a session.
// TargetICPs holds the persona names the selector aimed the action at.
type RecommendationAction struct {
	ID         uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	SessionID  uint           `gorm:"not null;index" json:"session_id"`
	ActionType ActionType     `gorm:"type:varchar(40);not null;index" json:"action_type"`
	ActionName string         `gorm:"type:varchar(255);not null" json:"action_name"`
	Rationale  string         `gorm:"type:text" json:"rationale"`
	TargetICPs pq.StringArray `gorm:"type:text[];not null;default:'{}'" json:"target_icps"`
	Priority   int            `gorm:"not null;default:99" json:"priority"`
	CreatedAt  time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`

	Session  *RecommendationSession  `gorm:"foreignKey:SessionID;references:ID;constraint:OnDelete:CASCADE" json:"session,omitempty"`
	Examples []RecommendationExample `gorm:"foreignKey:ActionID;references:ID;constraint:OnDelete:CASCADE" json:"examples,omitempty"`
}

func (RecommendationAction) TableName() string { return "recommendation_actions" }

// BeforeCreate ensures timestamps are set.
func (a *RecommendationAction) BeforeCreate(tx *gorm.DB) error {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = utils.UTCNow()
	}
	return nil
}

// RecommendationExample represents one ready-to-use content example
// generated for an action.
type RecommendationExample struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ActionID       uint      `gorm:"not null;index" json:"action_id"`
	Title          string    `gorm:"type:varchar(500);not null" json:"title"`
	Content        string    `gorm:"type:text;not null" json:"content"`
	TargetingNotes string    `gorm:"type:text" json:"targeting_notes"`
	CreatedAt      time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`

	Action *RecommendationAction `gorm:"foreignKey:ActionID;references:ID;constraint:OnDelete:CASCADE" json:"action,omitempty"`
}

func (RecommendationExample) TableName() string { return "recommendation_examples" }

// BeforeCreate ensures timestamps are set.
func (e *RecommendationExample) BeforeCreate(tx *gorm.DB) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = utils.UTCNow()
	}
	return nil
}

// RecommendationSessionFilter represents filter criteria for session queries.
type RecommendationSessionFilter struct {
	ID            *uint      `json:"id,omitempty"`
	UUID          *uuid.UUID `json:"uuid,omitempty"`
	BrandName     *string    `json:"brand_name,omitempty"`
	CreatedAfter  *time.Time `json:"created_after,omitempty"`
	CreatedBefore *time.Time `json:"created_before,omitempty"`
}

// RecommendationActionFilter represents filter criteria for action queries.
type RecommendationActionFilter struct {
	ID         *uint       `json:"id,omitempty"`
	SessionID  *uint       `json:"session_id,omitempty"`
	ActionType *ActionType `json:"action_type,omitempty"`
}

// RecommendationExampleFilter represents filter criteria for example queries.
type RecommendationExampleFilter struct {
	ID       *uint `json:"id,omitempty"`
	ActionID *uint `json:"action_id,omitempty"`
}
