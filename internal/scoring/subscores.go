package scoring

import (
	"regexp"
	"strings"
)

var reQuantified = regexp.MustCompile(`(?i)\d+(?:\.\d+)?\s?%|[$€£]\s?\d[\d,]*(?:\.\d+)?[kmb]?|\b\d+(?:\.\d+)?x\b|\b(?:million|billion)s?\b`)

// Scorer computes one sub-score from a parsed resume.
type Scorer func(ParsedResume) int

// ATSScore estimates how well an applicant tracking system will parse the resume.
func (w Weights) ATSScore(p ParsedResume) int {
	aw := w.ATS
	score := aw.Base
	for _, name := range CanonicalSections {
		if p.Sections.Has(name) {
			score += aw.PerSection
		}
	}
	if len(p.Entities.Emails) > 0 {
		score += aw.Email
	}
	if len(p.Entities.Phones) > 0 {
		score += aw.Phone
	}
	if timelineYears(p.RawText) >= aw.TimelineMinY {
		score += aw.Timeline
	}
	return clamp(score)
}

// ContentScore rewards length in the optimal band, quantified results and action verbs.
func (w Weights) ContentScore(p ParsedResume) int {
	cw := w.Content
	score := cw.Base
	words := WordCount(p.RawText)
	switch {
	case words >= cw.OptimalMin && words <= cw.OptimalMax:
		score += cw.OptimalBonus
	case words >= cw.MinimumWords:
		score += cw.MinimumBonus
	}
	quantified := len(reQuantified.FindAllString(p.RawText, -1)) * cw.PerQuantified
	if quantified > cw.QuantifiedCap {
		quantified = cw.QuantifiedCap
	}
	score += quantified

	tokens := TokenSet(p.RawText, 0)
	for _, verb := range actionVerbs {
		if tokens[verb] {
			score += cw.PerActionVerb
		}
	}
	return clamp(score)
}

// FormatScore rewards a well sectioned resume with complete contact details.
func (w Weights) FormatScore(p ParsedResume) int {
	fw := w.Format
	score := fw.Base
	switch named := p.Sections.Named(); {
	case named >= fw.ManySections:
		score += fw.ManyBonus
	case named >= fw.FewSections:
		score += fw.FewBonus
	}
	if len(p.Entities.Emails) > 0 && len(p.Entities.Phones) > 0 {
		score += fw.ContactPair
	}
	if p.Sections.Has("experience") && p.Sections.Has("education") {
		score += fw.ExperienceAndEd
	}
	return clamp(score)
}

// KeywordScore rewards distinct skills and technical vocabulary.
func (w Weights) KeywordScore(p ParsedResume) int {
	kw := w.Keyword
	score := kw.Base
	skills := len(sortedUnique(p.Entities.Skills)) * kw.PerSkill
	if skills > kw.SkillCap {
		skills = kw.SkillCap
	}
	score += skills
	lower := strings.ToLower(p.RawText)
	for _, term := range techKeywords {
		if strings.Contains(lower, term) {
			score += kw.PerTechHit
		}
	}
	return clamp(score)
}

func clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
