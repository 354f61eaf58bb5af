package models

import (
	"time"

	"github.com/brandscope-io/brandscope/utils"
	"gorm.io/gorm"
)

// ICPPersona represents one ideal customer profile. The persona name is the
// natural key: imports and edits address personas by name.
type ICPPersona struct {
	Name       string    `gorm:"primaryKey;type:varchar(255)" json:"name"`
	Role       string    `gorm:"type:varchar(255);not null" json:"role"`
	Goals      string    `gorm:"type:text;not null" json:"goals"`
	Challenges string    `gorm:"type:text;not null" json:"challenges"`
	CreatedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (ICPPersona) TableName() string { return "icp_personas" }

// BeforeCreate ensures timestamps are set.
func (p *ICPPersona) BeforeCreate(tx *gorm.DB) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = utils.UTCNow()
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = utils.UTCNow()
	}
	return nil
}

// ICPPersonaFilter represents filter criteria for persona queries.
type ICPPersonaFilter struct {
	Name *string `json:"name,omitempty"`
	Role *string `json:"role,omitempty"`
}
