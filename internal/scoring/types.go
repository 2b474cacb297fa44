package scoring

import (
	"strings"

	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/scoring/suggest"
)

// Kind identifies one of the four sub-scores.
type Kind string

const (
	KindATS     Kind = "ats"
	KindContent Kind = "content"
	KindFormat  Kind = "format"
	KindKeyword Kind = "keyword"
)

// Quality is the per-section classification reported in SectionsAnalysis.
type Quality string

const (
	QualityExcellent        Quality = "excellent"
	QualityGood             Quality = "good"
	QualityNeedsImprovement Quality = "needs_improvement"
	QualityMissing          Quality = "missing"
)

// HeaderSection holds lines that appear before the first recognized header.
const HeaderSection = "header"

// Section is a named block of resume lines.
type Section struct {
	Name  string
	Lines []string
}

// Text joins the section lines with newlines.
func (s Section) Text() string {
	return strings.Join(s.Lines, "\n")
}

// Sections keeps detected sections in order of first appearance. Names are unique.
type Sections []Section

// Lookup returns the named section.
func (s Sections) Lookup(name string) (Section, bool) {
	for _, section := range s {
		if section.Name == name {
			return section, true
		}
	}
	return Section{}, false
}

// Has reports whether the named section exists with at least one line.
func (s Sections) Has(name string) bool {
	section, ok := s.Lookup(name)
	return ok && len(section.Lines) > 0
}

// Names returns section names in document order.
func (s Sections) Names() []string {
	out := make([]string, 0, len(s))
	for _, section := range s {
		out = append(out, section.Name)
	}
	return out
}

// Named counts non-empty sections other than the implicit header block.
func (s Sections) Named() int {
	n := 0
	for _, section := range s {
		if section.Name != HeaderSection && len(section.Lines) > 0 {
			n++
		}
	}
	return n
}

// Entities are the contact details and skills found in a resume.
type Entities struct {
	Emails []string `json:"emails"`
	Phones []string `json:"phones"`
	Skills []string `json:"skills"`
}

// ParsedResume is the immutable input to every sub-scorer.
type ParsedResume struct {
	RawText  string
	Sections Sections
	Entities Entities
}

// SubScore is one scorer's output.
type SubScore struct {
	Kind  Kind `json:"kind"`
	Value int  `json:"value"`
}

// SectionAnalysis describes one analysed section.
type SectionAnalysis struct {
	Present         bool     `json:"present"`
	Quality         Quality  `json:"quality"`
	Recommendations []string `json:"recommendations"`
}

// JobMatch compares a resume against a job description.
type JobMatch struct {
	MatchScore      int      `json:"match_score"`
	MissingSkills   []string `json:"missing_skills"`
	KeywordGaps     []string `json:"keyword_gaps"`
	MatchedKeywords []string `json:"matched_keywords"`
}

// AnalysisResult is the complete output of one analysis. Set-valued fields are sorted.
type AnalysisResult struct {
	Overall          int                        `json:"overall"`
	ATS              int                        `json:"ats"`
	Content          int                        `json:"content"`
	Format           int                        `json:"format"`
	Keyword          int                        `json:"keyword"`
	Grade            string                     `json:"grade"`
	Recommendations  []string                   `json:"recommendations"`
	ExtractedSkills  []string                   `json:"extracted_skills"`
	MissingSkills    []string                   `json:"missing_skills"`
	Keywords         []string                   `json:"keywords"`
	SectionsAnalysis map[string]SectionAnalysis `json:"sections_analysis"`
	Suggestions      []suggest.Suggestion       `json:"suggestions"`
	JobMatch         *JobMatch                  `json:"job_match,omitempty"`
	Degraded         bool                       `json:"degraded"`
}

// SubScores returns the four sub-scores in fixed order.
func (r AnalysisResult) SubScores() []SubScore {
	return []SubScore{
		{Kind: KindATS, Value: r.ATS},
		{Kind: KindContent, Value: r.Content},
		{Kind: KindFormat, Value: r.Format},
		{Kind: KindKeyword, Value: r.Keyword},
	}
}

// Override carries an externally drafted score and recommendations.
// Nil or empty fields fall back to the heuristic values.
type Override struct {
	OverallScore    *int
	Recommendations []string
}

// Options tune a single analysis run.
type Options struct {
	JobDescription string
	Override       *Override
}
