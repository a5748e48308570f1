package retriever

import "strings"

// NoKnowledgeBase is rendered instead of results when the knowledge base is
// missing or empty.
const NoKnowledgeBase = "No knowledge base available."

// DefaultK is the number of passages returned when the caller has no
// preference.
const DefaultK = 2

// Status classifies a retrieval outcome.
type Status int

const (
	// StatusFound means the search ran; Matches may still be empty (k <= 0).
	StatusFound Status = iota
	// StatusEmptyKnowledgeBase means there was nothing to search.
	StatusEmptyKnowledgeBase
	// StatusFailed means a query-time error was absorbed; see Result.Err.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusFound:
		return "found"
	case StatusEmptyKnowledgeBase:
		return "empty_knowledge_base"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Match is one retrieved document.
type Match struct {
	Position int
	Text     string
	Distance float64
}

// Result is the outcome of a Retrieve call, nearest match first.
type Result struct {
	Status  Status
	Matches []Match
	Err     error
}

// Texts returns the matched document texts.
func (r Result) Texts() []string {
	out := make([]string, len(r.Matches))
	for i, m := range r.Matches {
		out[i] = m.Text
	}
	return out
}

// String renders the result for an agent prompt: matched texts joined by
// newline, the sentinel for an empty knowledge base, and an empty string
// otherwise.
func (r Result) String() string {
	switch r.Status {
	case StatusEmptyKnowledgeBase:
		return NoKnowledgeBase
	case StatusFound:
		return strings.Join(r.Texts(), "\n")
	default:
		return ""
	}
}
