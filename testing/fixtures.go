// Package testing provides test utilities and database setup for testing the application
package testing

import (
	"fmt"
	"math/rand"

	"github.com/brandscope-io/brandscope/models"
)

// TestFixtures provides helper methods for creating test data
type TestFixtures struct {
	DB *TestDB
}

// NewTestFixtures creates a new test fixtures instance
func NewTestFixtures(db *TestDB) *TestFixtures {
	return &TestFixtures{DB: db}
}

// CreateTestBrand creates the brand profile row
func (tf *TestFixtures) CreateTestBrand(name, websiteURL, description string) (*models.BrandInfo, error) {
	brand := &models.BrandInfo{
		Name:        name,
		WebsiteURL:  websiteURL,
		Description: description,
	}

	if err := tf.DB.DB.Create(brand).Error; err != nil {
		return nil, fmt.Errorf("failed to create test brand: %w", err)
	}

	return brand, nil
}

// CreateTestPersona creates one ICP persona
func (tf *TestFixtures) CreateTestPersona(name string) (*models.ICPPersona, error) {
	persona := &models.ICPPersona{
		Name:       name,
		Role:       "Head of Growth at a B2B SaaS startup",
		Goals:      "Increase qualified inbound leads without growing paid spend",
		Challenges: "Small team, limited time for content production",
	}

	if err := tf.DB.DB.Create(persona).Error; err != nil {
		return nil, fmt.Errorf("failed to create test persona: %w", err)
	}

	return persona, nil
}

// CreateTestDomain creates one cited domain row
func (tf *TestFixtures) CreateTestDomain(domain string, domainType models.DomainType, avgCitations float64) (*models.CitedDomain, error) {
	row := &models.CitedDomain{
		Domain:       domain,
		Type:         domainType,
		UsagePercent: float64(rand.Intn(90)+1) / 2,
		AvgCitations: avgCitations,
	}

	if err := tf.DB.DB.Create(row).Error; err != nil {
		return nil, fmt.Errorf("failed to create test domain: %w", err)
	}

	return row, nil
}

// CreateTestChat creates one chat sample row
func (tf *TestFixtures) CreateTestChat(id, model string) (*models.ChatSample, error) {
	chat := &models.ChatSample{
		ID:            id,
		Model:         model,
		UserText:      "What is the best analytics tool for startups?",
		AssistantText: "There are several options worth considering for a small team.",
	}

	if err := tf.DB.DB.Create(chat).Error; err != nil {
		return nil, fmt.Errorf("failed to create test chat: %w", err)
	}

	return chat, nil
}
