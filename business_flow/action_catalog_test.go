package businessflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionCatalogEntries(t *testing.T) {
	catalog := ActionCatalog()
	require.Len(t, catalog, 6)

	wantIDs := []string{
		"linkedin_posts",
		"blog_content",
		"guest_posting",
		"email_campaigns",
		"content_partnerships",
		"social_media_threads",
	}
	assert.Equal(t, wantIDs, ActionCatalogIDs())

	for _, action := range catalog {
		assert.True(t, action.ID.Valid(), "catalog ID %q must be a valid action type", action.ID)
		assert.NotEmpty(t, action.Name)
		assert.NotEmpty(t, action.Description)
	}
}

func TestActionCatalogReturnsCopy(t *testing.T) {
	catalog := ActionCatalog()
	catalog[0].Name = "mutated"

	fresh := ActionCatalog()
	assert.Equal(t, "LinkedIn Thought Leadership Posts", fresh[0].Name)
}

func TestActionByID(t *testing.T) {
	action := ActionByID("blog_content")
	require.NotNil(t, action)
	assert.Equal(t, "Blog Content Ideas", action.Name)

	// Mutating the returned entry must not leak into the catalog
	action.Name = "mutated"
	again := ActionByID("blog_content")
	require.NotNil(t, again)
	assert.Equal(t, "Blog Content Ideas", again.Name)

	assert.Nil(t, ActionByID("podcast_tour"))
	assert.Nil(t, ActionByID(""))
}

func TestIsValidActionID(t *testing.T) {
	assert.True(t, IsValidActionID("linkedin_posts"))
	assert.True(t, IsValidActionID("social_media_threads"))
	assert.False(t, IsValidActionID("LINKEDIN_POSTS"))
	assert.False(t, IsValidActionID("tiktok_dances"))
	assert.False(t, IsValidActionID(""))
}
