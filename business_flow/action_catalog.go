package businessflow

import "github.com/brandscope-io/brandscope/models"

// MarketingAction is one entry of the closed marketing action catalog. The
// strategic selector may only pick action IDs from this set.
type MarketingAction struct {
	ID          models.ActionType `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
}

var marketingActionCatalog = []MarketingAction{
	{
		ID:          models.ActionTypeLinkedInPosts,
		Name:        "LinkedIn Thought Leadership Posts",
		Description: "Professional posts to establish authority and engage with your target audience",
	},
	{
		ID:          models.ActionTypeBlogContent,
		Name:        "Blog Content Ideas",
		Description: "Long-form content addressing ICP pain points and showcasing expertise",
	},
	{
		ID:          models.ActionTypeGuestPosting,
		Name:        "Guest Posting Opportunities",
		Description: "Target blogs and domains for guest articles to expand reach",
	},
	{
		ID:          models.ActionTypeEmailCampaigns,
		Name:        "Email Campaign Ideas",
		Description: "Email sequences for nurturing leads and engaging prospects",
	},
	{
		ID:          models.ActionTypeContentPartnerships,
		Name:        "Content Partnership Targets",
		Description: "Collaborate with cited domains and publications for mutual benefit",
	},
	{
		ID:          models.ActionTypeSocialMediaThreads,
		Name:        "Social Media Thread Concepts",
		Description: "Twitter/LinkedIn threads on key topics to drive engagement",
	},
}

// ActionCatalog returns a copy of the full marketing action catalog.
func ActionCatalog() []MarketingAction {
	catalog := make([]MarketingAction, len(marketingActionCatalog))
	copy(catalog, marketingActionCatalog)
	return catalog
}

// ActionByID returns the catalog entry for the given action ID, or nil when
// the ID is not part of the catalog.
func ActionByID(id string) *MarketingAction {
	for i := range marketingActionCatalog {
		if string(marketingActionCatalog[i].ID) == id {
			action := marketingActionCatalog[i]
			return &action
		}
	}
	return nil
}

// IsValidActionID reports whether the given ID belongs to the catalog.
func IsValidActionID(id string) bool {
	return ActionByID(id) != nil
}

// ActionCatalogIDs returns the catalog action IDs in catalog order.
func ActionCatalogIDs() []string {
	ids := make([]string, 0, len(marketingActionCatalog))
	for _, action := range marketingActionCatalog {
		ids = append(ids, string(action.ID))
	}
	return ids
}
