package utils

import (
	"time"
)

// Token and session time constants
const (
	// AccessTokenTTL is the time-to-live for access tokens (24 hours)
	AccessTokenTTL = 24 * time.Hour

	// AccessTokenTTLSeconds is the time-to-live for access tokens in seconds (86400 seconds = 24 hours)
	AccessTokenTTLSeconds = 86400

	// RefreshTokenTTL is the time-to-live for refresh tokens (7 days)
	RefreshTokenTTL = 7 * 24 * time.Hour

	// CaptchaChallengeTTL is the time-to-live for an issued rotate captcha challenge
	CaptchaChallengeTTL = 5 * time.Minute
)

// CORS and security constants
const (
	// CORSMaxAge is the maximum age for CORS preflight requests (24 hours)
	CORSMaxAge = 86400
)

// Recommendation pipeline constants
const (
	// MinSelectedActions and MaxSelectedActions bound the advisory range for
	// how many actions the strategic selector should return. Counts outside
	// the range are logged, not rejected.
	MinSelectedActions = 3
	MaxSelectedActions = 5

	// MaxChatSamplesInPrompt caps how many chat transcripts are embedded in
	// selector and generator prompts.
	MaxChatSamplesInPrompt = 10

	// MaxCitedDomainsInPrompt caps how many cited domains are embedded in
	// selector and generator prompts.
	MaxCitedDomainsInPrompt = 15

	// DefaultActionPriority is assigned when the selector omits a priority.
	DefaultActionPriority = 99

	// DefaultExampleTitle is assigned when the generator omits a title.
	DefaultExampleTitle = "Untitled"

	// MaxAggregatedChats and MaxAggregatedDomains bound how many rows the
	// data aggregator loads from storage per pipeline run.
	MaxAggregatedChats   = 20
	MaxAggregatedDomains = 20

	// DefaultSuggestedPersonaCount and MaxSuggestedPersonaCount bound the
	// persona suggester.
	DefaultSuggestedPersonaCount = 3
	MaxSuggestedPersonaCount     = 5

	// MaxDiagnosticLogEntries bounds the in-memory model call log.
	MaxDiagnosticLogEntries = 200

	// DiagnosticPromptTruncateLen is the prompt length kept in log entries.
	DiagnosticPromptTruncateLen = 500
)

// Website scraping constants
const (
	// ScrapeUserAgent is sent on brand website fetches so content-gated sites
	// serve the same markup they serve browsers.
	ScrapeUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

	// ScrapeMaxBodyBytes caps how much of a fetched page is read.
	ScrapeMaxBodyBytes = 1 << 20

	// ScrapeMaxTextChars caps the extracted text passed to the describer.
	ScrapeMaxTextChars = 3000
)

// Pagination constants
const (
	// DefaultListLimit is applied when list endpoints omit a limit.
	DefaultListLimit = 50

	// DefaultSessionPageSize is applied when session history omits a limit.
	DefaultSessionPageSize = 20

	// MaxListLimit caps explicit list limits.
	MaxListLimit = 500
)

// Cache keys (joined with the configured redis prefix)
const (
	MarketDataStatusCacheKey = "market_data:status"
	LatestSessionCacheKey    = "recommendations:latest"
)

// ContextKey is the type for request-scoped context values.
type ContextKey string

// Context keys for request-scoped observability values
const (
	RequestIDKey  ContextKey = "request_id"
	UserAgentKey  ContextKey = "user_agent"
	IPAddressKey  ContextKey = "ip_address"
	EndpointKey   ContextKey = "endpoint"
	TimeoutKey    ContextKey = "timeout"
	CancelFuncKey ContextKey = "cancel_func"
)
