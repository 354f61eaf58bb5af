package models

import (
	"time"

	"github.com/brandscope-io/brandscope/utils"
	"gorm.io/gorm"
)

// BrandInfoID is the fixed row id of the single brand profile. The product
// manages exactly one brand, so writes always upsert this row.
const BrandInfoID uint = 1

// BrandInfo represents the configured brand profile.
type BrandInfo struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	WebsiteURL  string    `gorm:"type:varchar(2048)" json:"website_url"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (BrandInfo) TableName() string { return "brand_info" }

// BeforeCreate ensures the fixed id and timestamps are set.
func (b *BrandInfo) BeforeCreate(tx *gorm.DB) error {
	if b.ID == 0 {
		b.ID = BrandInfoID
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = utils.UTCNow()
	}
	if b.UpdatedAt.IsZero() {
		b.UpdatedAt = utils.UTCNow()
	}
	return nil
}

// BrandInfoFilter represents filter criteria for brand profile queries.
type BrandInfoFilter struct {
	ID   *uint   `json:"id,omitempty"`
	Name *string `json:"name,omitempty"`
}
