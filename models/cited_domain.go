package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/brandscope-io/brandscope/utils"
	"gorm.io/gorm"
)

// DomainType classifies a cited domain by who controls its content.
type DomainType string

const (
	DomainTypeUGC        DomainType = "UGC"
	DomainTypeCompetitor DomainType = "Competitor"
	DomainTypeCorporate  DomainType = "Corporate"
	DomainTypeEditorial  DomainType = "Editorial"
	DomainTypeOther      DomainType = "Other"
)

// Valid checks if the domain type is valid.
func (t DomainType) Valid() bool {
	switch t {
	case DomainTypeUGC,
		DomainTypeCompetitor,
		DomainTypeCorporate,
		DomainTypeEditorial,
		DomainTypeOther:
		return true
	default:
		return false
	}
}

// DomainTypeNames returns the accepted type values in import-file order.
func DomainTypeNames() []string {
	return []string{
		string(DomainTypeUGC),
		string(DomainTypeCompetitor),
		string(DomainTypeCorporate),
		string(DomainTypeOther),
		string(DomainTypeEditorial),
	}
}

// Scan implements the sql.Scanner interface for DomainType.
func (t *DomainType) Scan(value any) error {
	if value == nil {
		*t = ""
		return nil
	}

	switch v := value.(type) {
	case string:
		*t = DomainType(v)
	case []byte:
		*t = DomainType(string(v))
	default:
		return fmt.Errorf("cannot scan %T into DomainType", value)
	}

	return nil
}

// Value implements the driver.Valuer interface for DomainType.
func (t DomainType) Value() (driver.Value, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid DomainType: %s", t)
	}
	return string(t), nil
}

// CitedDomain represents one domain cited by assistants when answering
// prompts in the brand's market, with how often it shows up.
type CitedDomain struct {
	Domain       string     `gorm:"primaryKey;type:varchar(255)" json:"domain"`
	Type         DomainType `gorm:"type:varchar(20);not null;index" json:"type"`
	UsagePercent float64    `gorm:"not null;default:0" json:"usage_percent"`
	AvgCitations float64    `gorm:"not null;default:0" json:"avg_citations"`
	CreatedAt    time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (CitedDomain) TableName() string { return "cited_domains" }

// BeforeCreate ensures timestamps are set.
func (d *CitedDomain) BeforeCreate(tx *gorm.DB) error {
	if d.CreatedAt.IsZero() {
		d.CreatedAt = utils.UTCNow()
	}
	if d.UpdatedAt.IsZero() {
		d.UpdatedAt = utils.UTCNow()
	}
	return nil
}

// CitedDomainFilter represents filter criteria for cited domain queries.
type CitedDomainFilter struct {
	Domain          *string     `json:"domain,omitempty"`
	Type            *DomainType `json:"type,omitempty"`
	MinUsagePercent *float64    `json:"min_usage_percent,omitempty"`
}
