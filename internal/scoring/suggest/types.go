package suggest

import "strings"

// Type classifies what a suggestion asks the candidate to change.
type Type string

const (
	TypeKeyword          Type = "keyword"
	TypeFormat           Type = "format"
	TypeContent          Type = "content"
	TypeStructure        Type = "structure"
	TypeAchievement      Type = "achievement"
	TypeGrammar          Type = "grammar"
	TypeATSCompatibility Type = "ats_compatibility"
)

// Priority orders suggestions; critical sorts first.
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// Status is the lifecycle state of a suggestion. Generation always yields StatusPending.
type Status string

const (
	StatusPending   Status = "pending"
	StatusApplied   Status = "applied"
	StatusDismissed Status = "dismissed"
	StatusExpired   Status = "expired"
)

// Suggestion is one actionable improvement for a resume.
type Suggestion struct {
	Type          Type     `json:"type"`
	Priority      Priority `json:"priority"`
	ATSImpact     int      `json:"ats_impact"`
	Section       string   `json:"section,omitempty"`
	Message       string   `json:"message"`
	OriginalText  string   `json:"original_text,omitempty"`
	SuggestedText string   `json:"suggested_text,omitempty"`
	Status        Status   `json:"status"`
}

// Input is the scoring signal needed for suggestion generation.
type Input struct {
	// MissingSections lists canonical sections that were not detected, in canonical order.
	MissingSections []string
	// PresentSections lists detected named sections in document order.
	PresentSections []string
	HasEmail        bool
	HasPhone        bool
	TimelineYears   int
	ContentScore    int
	KeywordScore    int
	KeywordGaps     []string

	// Thresholds for score-driven suggestions. Zero selects the package default.
	MinTimelineYears int
	LowContentScore  int
	LowKeywordScore  int
}

func (t Type) Valid() bool {
	switch t {
	case TypeKeyword, TypeFormat, TypeContent, TypeStructure, TypeAchievement, TypeGrammar, TypeATSCompatibility:
		return true
	}
	return false
}

func (p Priority) Valid() bool {
	return p.rank() > 0
}

func (p Priority) rank() int {
	switch p {
	case PriorityCritical:
		return 4
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// ParseStatus converts a stored status string, rejecting unknown values.
func ParseStatus(value string) (Status, bool) {
	s := Status(strings.ToLower(strings.TrimSpace(value)))
	switch s {
	case StatusPending, StatusApplied, StatusDismissed, StatusExpired:
		return s, true
	}
	return "", false
}

// Terminal reports whether no further transitions are allowed from s.
func (s Status) Terminal() bool {
	return s == StatusApplied || s == StatusDismissed || s == StatusExpired
}

// CanTransition reports whether a suggestion may move from one status to another.
// Only pending suggestions can change state.
func CanTransition(from, to Status) bool {
	if from != StatusPending {
		return false
	}
	switch to {
	case StatusApplied, StatusDismissed, StatusExpired:
		return true
	}
	return false
}
