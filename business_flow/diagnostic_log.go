package businessflow

import (
	"sync"
	"time"

	"github.com/brandscope-io/brandscope/utils"
)

// DiagnosticRequest captures the prompts sent on one completion call,
// truncated for display.
type DiagnosticRequest struct {
	Action       string `json:"action,omitempty"`
	SystemPrompt string `json:"system_prompt"`
	UserPrompt   string `json:"user_prompt"`
}

// DiagnosticEntry captures one completion API call for post-hoc debugging.
// The response body is kept in full; prompts are truncated.
type DiagnosticEntry struct {
	Timestamp string            `json:"timestamp"`
	Agent     string            `json:"agent"`
	Model     string            `json:"model"`
	Request   DiagnosticRequest `json:"request"`
	Response  string            `json:"response"`
}

// DiagnosticLog is a bounded in-memory log of completion API calls. It is
// process-local, shared by all flows, and resets on restart.
type DiagnosticLog struct {
	mu      sync.RWMutex
	entries []DiagnosticEntry
	limit   int
}

// NewDiagnosticLog creates a log bounded to the given number of entries.
// Non-positive limits fall back to the default.
func NewDiagnosticLog(limit int) *DiagnosticLog {
	if limit <= 0 {
		limit = utils.MaxDiagnosticLogEntries
	}
	return &DiagnosticLog{limit: limit}
}

// Record appends one completion call. Oldest entries are discarded once the
// bound is reached. The action label may be empty for non-action agents.
func (l *DiagnosticLog) Record(agent, model, action, systemPrompt, userPrompt, response string) {
	entry := DiagnosticEntry{
		Timestamp: utils.UTCNow().Format(time.RFC3339),
		Agent:     agent,
		Model:     model,
		Request: DiagnosticRequest{
			Action:       action,
			SystemPrompt: utils.TruncateString(systemPrompt, utils.DiagnosticPromptTruncateLen),
			UserPrompt:   utils.TruncateString(userPrompt, utils.DiagnosticPromptTruncateLen),
		},
		Response: response,
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, entry)
	if len(l.entries) > l.limit {
		l.entries = l.entries[len(l.entries)-l.limit:]
	}
}

// Entries returns a copy of the log, newest first.
func (l *DiagnosticLog) Entries() []DiagnosticEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]DiagnosticEntry, 0, len(l.entries))
	for i := len(l.entries) - 1; i >= 0; i-- {
		out = append(out, l.entries[i])
	}
	return out
}

// Clear drops all entries and returns how many were removed.
func (l *DiagnosticLog) Clear() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	removed := len(l.entries)
	l.entries = nil
	return removed
}

// Len returns the current number of entries.
func (l *DiagnosticLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}
