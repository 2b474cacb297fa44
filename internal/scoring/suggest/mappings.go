package suggest

import (
	"strings"
)

const maxListedGaps = 10

type sectionAdvice struct {
	typ      Type
	priority Priority
	impact   int
	message  string
}

var missingSectionAdvice = map[string]sectionAdvice{
	"experience": {TypeStructure, PriorityCritical, 20, "Add a Work Experience section listing your roles, employers and dates."},
	"skills":     {TypeStructure, PriorityCritical, 15, "Add a Skills section so applicant tracking systems can match your keywords."},
	"education":  {TypeStructure, PriorityHigh, 12, "Add an Education section with your degrees, institutions and graduation years."},
	"summary":    {TypeStructure, PriorityMedium, 8, "Add a short professional Summary at the top of your resume."},
}

var presentSectionAdvice = map[string]sectionAdvice{
	"experience": {TypeAchievement, PriorityHigh, 10, "Quantify achievements in your experience with numbers, percentages or revenue impact."},
	"skills":     {TypeKeyword, PriorityMedium, 6, "Categorize your skills into groups such as languages, frameworks and tools."},
	"summary":    {TypeContent, PriorityLow, 4, "Tailor your summary to the target role in two or three focused sentences."},
}

func fromMissingSections(sections []string) []Suggestion {
	out := make([]Suggestion, 0, len(sections))
	for _, name := range sections {
		advice, ok := missingSectionAdvice[name]
		if !ok {
			advice = sectionAdvice{TypeStructure, PriorityMedium, 5, "Add a " + titleCase(name) + " section."}
		}
		out = append(out, newSuggestion(name, advice))
	}
	return out
}

func fromPresentSections(sections []string) []Suggestion {
	out := make([]Suggestion, 0, len(sections))
	for _, name := range sections {
		advice, ok := presentSectionAdvice[name]
		if !ok {
			advice = sectionAdvice{TypeFormat, PriorityLow, 2, "Keep the " + titleCase(name) + " section concise and consistently formatted."}
		}
		out = append(out, newSuggestion(name, advice))
	}
	return out
}

func fromContactEntities(in Input) []Suggestion {
	var out []Suggestion
	if !in.HasEmail {
		out = append(out, newSuggestion("contact", sectionAdvice{TypeATSCompatibility, PriorityCritical, 12, "Add a professional email address to your contact details."}))
	}
	if !in.HasPhone {
		out = append(out, newSuggestion("contact", sectionAdvice{TypeATSCompatibility, PriorityHigh, 8, "Add a phone number to your contact details."}))
	}
	return out
}

// Defaults for the Input thresholds.
const (
	DefaultMinTimelineYears = 2
	DefaultLowContentScore  = 50
	DefaultLowKeywordScore  = 50
)

func orDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

func fromScores(in Input) []Suggestion {
	var out []Suggestion
	if in.TimelineYears < orDefault(in.MinTimelineYears, DefaultMinTimelineYears) {
		out = append(out, newSuggestion("experience", sectionAdvice{TypeATSCompatibility, PriorityHigh, 10, "Include start and end years for each role so your career timeline can be parsed."}))
	}
	if in.ContentScore < orDefault(in.LowContentScore, DefaultLowContentScore) {
		out = append(out, newSuggestion("", sectionAdvice{TypeContent, PriorityHigh, 8, "Expand your descriptions with action verbs such as led, developed and improved."}))
	}
	if in.KeywordScore < orDefault(in.LowKeywordScore, DefaultLowKeywordScore) {
		out = append(out, newSuggestion("skills", sectionAdvice{TypeKeyword, PriorityMedium, 8, "Add more role-relevant technical keywords and tools you have used."}))
	}
	return out
}

func fromKeywordGaps(gaps []string) []Suggestion {
	keywords := UniqueStrings(gaps)
	if len(keywords) == 0 {
		return nil
	}
	if len(keywords) > maxListedGaps {
		keywords = keywords[:maxListedGaps]
	}
	s := newSuggestion("skills", sectionAdvice{TypeKeyword, PriorityHigh, 12, "Mirror the job description by adding missing keywords: " + strings.Join(keywords, ", ") + "."})
	s.SuggestedText = strings.Join(keywords, ", ")
	return []Suggestion{s}
}

func newSuggestion(section string, advice sectionAdvice) Suggestion {
	return Suggestion{
		Type:      advice.typ,
		Priority:  advice.priority,
		ATSImpact: advice.impact,
		Section:   section,
		Message:   advice.message,
		Status:    StatusPending,
	}
}

func titleCase(name string) string {
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
