package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTruncateString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		max      int
		expected string
	}{
		{"shorter than max", "hello", 10, "hello"},
		{"exactly max", "hello", 5, "hello"},
		{"longer than max", "hello world", 5, "hello..."},
		{"zero max", "hello", 0, ""},
		{"negative max", "hello", -1, ""},
		{"empty input", "", 5, ""},
		{"multibyte runes counted once", "héllo wörld", 5, "héllo..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TruncateString(tt.input, tt.max))
		})
	}
}

func TestCollapseWhitespace(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"single spaces kept", "a b c", "a b c"},
		{"runs collapsed", "a   b\t\tc", "a b c"},
		{"newlines collapsed", "a\nb\r\nc", "a b c"},
		{"leading trimmed", "   a b", "a b"},
		{"trailing trimmed", "a b   \n", "a b"},
		{"only whitespace", " \t\n ", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CollapseWhitespace(tt.input))
		})
	}
}

func TestPointerHelpers(t *testing.T) {
	v := ToPtr(42)
	assert.Equal(t, 42, *v)

	assert.True(t, IsTrue(ToPtr(true)))
	assert.False(t, IsTrue(ToPtr(false)))
	assert.False(t, IsTrue(nil))
}

func TestTimeHelpers(t *testing.T) {
	now := UTCNow()
	assert.Equal(t, time.UTC, now.Location())

	later := UTCNowAdd(time.Hour)
	assert.True(t, later.After(now))

	assert.True(t, IsExpired(now.Add(-time.Minute)))
	assert.False(t, IsExpired(now.Add(time.Hour)))

	parsed, err := time.Parse(time.RFC3339, UTCNowRFC3339())
	assert.NoError(t, err)
	assert.WithinDuration(t, UTCNow(), parsed, 2*time.Second)

	loc := time.FixedZone("TST", 3*60*60)
	local := time.Date(2024, 6, 1, 12, 0, 0, 0, loc)
	assert.Equal(t, time.UTC, TimeToUTC(local).Location())
	assert.True(t, local.Equal(TimeToUTC(local)))
}
