package models

import (
	"time"

	"github.com/brandscope-io/brandscope/utils"
	"gorm.io/gorm"
)

// ChatSample represents one imported assistant conversation about the
// brand's market: the user prompt and the assistant answer, keyed by the
// exporting tool's row id.
type ChatSample struct {
	ID            string    `gorm:"primaryKey;type:varchar(255)" json:"id"`
	Model         string    `gorm:"type:varchar(255);not null" json:"model"`
	UserText      string    `gorm:"type:text" json:"user_text"`
	AssistantText string    `gorm:"type:text" json:"assistant_text"`
	CreatedAt     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (ChatSample) TableName() string { return "chat_samples" }

// BeforeCreate ensures timestamps are set.
func (c *ChatSample) BeforeCreate(tx *gorm.DB) error {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = utils.UTCNow()
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = utils.UTCNow()
	}
	return nil
}

// ChatSampleFilter represents filter criteria for chat sample queries.
type ChatSampleFilter struct {
	ID    *string `json:"id,omitempty"`
	Model *string `json:"model,omitempty"`
}
