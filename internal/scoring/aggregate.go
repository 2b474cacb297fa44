package scoring

import (
	"math"
	"strings"

	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/scoring/suggest"
)

// suggestedSections get a structure suggestion when absent, in this order.
var suggestedSections = []string{"summary", "experience", "education", "skills"}

// Overall returns the rounded mean of the four sub-scores.
func Overall(ats, content, format, keyword int) int {
	mean := float64(ats+content+format+keyword) / 4
	return clamp(int(math.Round(mean)))
}

func (w Weights) aggregate(p ParsedResume, subs map[Kind]int, match *JobMatch, opts Options) AnalysisResult {
	result := AnalysisResult{
		ATS:             subs[KindATS],
		Content:         subs[KindContent],
		Format:          subs[KindFormat],
		Keyword:         subs[KindKeyword],
		ExtractedSkills: sortedUnique(p.Entities.Skills),
		MissingSkills:   []string{},
		Keywords:        detectKeywords(p.RawText),
		JobMatch:        match,
		Degraded:        p.Sections.Named() == 0,
	}
	result.Overall = Overall(result.ATS, result.Content, result.Format, result.Keyword)
	if opts.Override != nil && opts.Override.OverallScore != nil {
		result.Overall = clamp(*opts.Override.OverallScore)
	}
	result.Grade = Grade(result.Overall)

	input := suggest.Input{
		HasEmail:      len(p.Entities.Emails) > 0,
		HasPhone:      len(p.Entities.Phones) > 0,
		TimelineYears: timelineYears(p.RawText),
		ContentScore:  result.Content,
		KeywordScore:  result.Keyword,

		MinTimelineYears: w.ATS.TimelineMinY,
		LowContentScore:  w.Suggest.LowContent,
		LowKeywordScore:  w.Suggest.LowKeyword,
	}
	for _, name := range suggestedSections {
		if !p.Sections.Has(name) {
			input.MissingSections = append(input.MissingSections, name)
		}
	}
	for _, section := range p.Sections {
		if section.Name != HeaderSection && len(section.Lines) > 0 {
			input.PresentSections = append(input.PresentSections, section.Name)
		}
	}
	if match != nil {
		result.MissingSkills = match.MissingSkills
		input.KeywordGaps = match.MissingSkills
	}
	result.Suggestions = suggest.Generate(input)

	result.Recommendations = suggest.UniqueStrings(suggest.Messages(result.Suggestions))
	// Override recommendations replace the heuristic texts; Suggestions keep them.
	if opts.Override != nil {
		if recs := suggest.UniqueStrings(opts.Override.Recommendations); len(recs) > 0 {
			result.Recommendations = recs
		}
	}
	result.SectionsAnalysis = analyseSections(p, result.Suggestions)
	return result
}

func analyseSections(p ParsedResume, suggestions []suggest.Suggestion) map[string]SectionAnalysis {
	names := append([]string{}, AnalysedSections...)
	for _, section := range p.Sections {
		if section.Name == HeaderSection || containsString(names, section.Name) {
			continue
		}
		names = append(names, section.Name)
	}

	out := make(map[string]SectionAnalysis, len(names))
	for _, name := range names {
		quality := sectionQuality(name, p)
		recs := []string{}
		for _, s := range suggestions {
			if s.Section == name {
				recs = append(recs, s.Message)
			}
		}
		out[name] = SectionAnalysis{
			Present:         quality != QualityMissing,
			Quality:         quality,
			Recommendations: recs,
		}
	}
	return out
}

// sectionQuality applies the per-section rule table.
func sectionQuality(name string, p ParsedResume) Quality {
	if name == "contact" {
		email := len(p.Entities.Emails) > 0
		phone := len(p.Entities.Phones) > 0
		switch {
		case email && phone:
			return QualityExcellent
		case email || phone:
			return QualityGood
		case p.Sections.Has("contact"):
			return QualityNeedsImprovement
		default:
			return QualityMissing
		}
	}

	section, ok := p.Sections.Lookup(name)
	if !ok || len(section.Lines) == 0 {
		return QualityMissing
	}
	length := len(section.Text())
	switch name {
	case "experience":
		return byLength(length, 300, 150)
	case "skills":
		if len(splitSkillItems(section.Text())) > 10 {
			return QualityExcellent
		}
		return QualityGood
	case "summary":
		return byLength(length, 150, 50)
	case "education":
		return byLength(length, 100, 20)
	default:
		return byLength(length, 200, 50)
	}
}

func byLength(length, excellent, good int) Quality {
	switch {
	case length > excellent:
		return QualityExcellent
	case length > good:
		return QualityGood
	default:
		return QualityNeedsImprovement
	}
}

func detectKeywords(rawText string) []string {
	lower := strings.ToLower(rawText)
	found := make(map[string]bool)
	for _, term := range techKeywords {
		if strings.Contains(lower, term) {
			found[term] = true
		}
	}
	for _, tok := range Tokenize(rawText) {
		if skillVocabulary[tok] {
			found[tok] = true
		}
	}
	normalized := Normalize(rawText)
	for _, phrase := range knownSkillPhrases {
		if strings.Contains(normalized, phrase) {
			found[phrase] = true
		}
	}
	return sortedKeys(found)
}

func containsString(items []string, value string) bool {
	for _, item := range items {
		if item == value {
			return true
		}
	}
	return false
}
