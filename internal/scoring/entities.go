package scoring

import (
	"regexp"
	"strings"
)

const maxSkillItemLength = 40

var (
	reEmail = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	rePhone = regexp.MustCompile(`(?:\+\d{1,3}[\s.\-]?)?(?:\(\d{3}\)|\b\d{3})[\s.\-]?\d{3}[\s.\-]?\d{4}\b`)
	reYear  = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
)

// ExtractEntities finds emails, phones and skills. Emails and phones are
// sorted sets; skills keep the order they were found in.
func ExtractEntities(rawText string, sections Sections) Entities {
	return Entities{
		Emails: sortedUnique(reEmail.FindAllString(rawText, -1)),
		Phones: uniquePhones(rePhone.FindAllString(rawText, -1)),
		Skills: extractSkills(rawText, sections),
	}
}

// Parse runs section detection and entity extraction.
func Parse(rawText string) ParsedResume {
	sections := DetectSections(rawText)
	return ParsedResume{
		RawText:  rawText,
		Sections: sections,
		Entities: ExtractEntities(rawText, sections),
	}
}

// timelineYears counts distinct four-digit years.
func timelineYears(rawText string) int {
	return len(sortedUnique(reYear.FindAllString(rawText, -1)))
}

func uniquePhones(matches []string) []string {
	digits := make([]string, 0, len(matches))
	for _, m := range matches {
		var b strings.Builder
		for _, r := range m {
			if r == '+' || (r >= '0' && r <= '9') {
				b.WriteRune(r)
			}
		}
		digits = append(digits, b.String())
	}
	return sortedUnique(digits)
}

func extractSkills(rawText string, sections Sections) []string {
	seen := make(map[string]bool)
	var skills []string
	add := func(skill string) {
		key := strings.ToLower(skill)
		if skill == "" || seen[key] {
			return
		}
		seen[key] = true
		skills = append(skills, skill)
	}

	if section, ok := sections.Lookup("skills"); ok {
		for _, item := range splitSkillItems(section.Text()) {
			add(item)
		}
	}

	tokens := Tokenize(rawText)
	for _, tok := range tokens {
		if skillVocabulary[tok] {
			add(tok)
		}
	}
	normalized := Normalize(rawText)
	for _, phrase := range knownSkillPhrases {
		if strings.Contains(normalized, phrase) {
			add(phrase)
		}
	}
	return skills
}

func splitSkillItems(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		switch r {
		case ',', ';', '|', '•', '\n':
			return true
		}
		return false
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		item := strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(f), "-*·"))
		if item == "" || len(item) > maxSkillItemLength {
			continue
		}
		out = append(out, item)
	}
	return out
}
