package scoring

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxHeaderLength bounds header lines; longer lines mentioning a section word are prose.
const MaxHeaderLength = 40

// CanonicalSections are the sections every resume is expected to have.
var CanonicalSections = []string{"experience", "education", "skills"}

// AnalysedSections are always reported in SectionsAnalysis, present or not.
var AnalysedSections = []string{"contact", "summary", "experience", "education", "skills"}

var headerAliases = map[string]string{
	"experience":              "experience",
	"work experience":         "experience",
	"professional experience": "experience",
	"employment history":      "experience",
	"work history":            "experience",
	"education":               "education",
	"academic background":     "education",
	"skills":                  "skills",
	"technical skills":        "skills",
	"core skills":             "skills",
	"key skills":              "skills",
	"summary":                 "summary",
	"professional summary":    "summary",
	"profile":                 "summary",
	"objective":               "objective",
	"career objective":        "objective",
	"contact":                 "contact",
	"contact information":     "contact",
	"contact details":         "contact",
	"certifications":          "certifications",
	"certificates":            "certifications",
	"projects":                "projects",
	"achievements":            "achievements",
	"awards":                  "achievements",
}

// DetectSections splits raw text into named sections. Lines before the first
// header belong to HeaderSection. Blank lines are skipped. A repeated header
// appends to the section first opened under that name.
func DetectSections(rawText string) Sections {
	var sections Sections
	index := make(map[string]int)
	current := -1

	open := func(name string) {
		if i, ok := index[name]; ok {
			current = i
			return
		}
		sections = append(sections, Section{Name: name})
		current = len(sections) - 1
		index[name] = current
	}

	for _, raw := range strings.Split(rawText, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if name, rest, ok := parseHeader(line); ok {
			open(name)
			if rest != "" {
				sections[current].Lines = append(sections[current].Lines, rest)
			}
			continue
		}
		if current < 0 {
			open(HeaderSection)
		}
		sections[current].Lines = append(sections[current].Lines, line)
	}
	return sections
}

// parseHeader recognizes "Skills", "SKILLS:", "## Skills" and inline
// "Skills: Go, SQL" forms. rest is the inline body, if any.
func parseHeader(line string) (name string, rest string, ok bool) {
	candidate := line
	if i := strings.Index(line, ":"); i >= 0 {
		candidate = line[:i]
		rest = strings.TrimSpace(line[i+1:])
	}
	candidate = strings.Trim(candidate, " \t#*-=_|•")
	if candidate == "" || len(candidate) >= MaxHeaderLength {
		return "", "", false
	}
	if rest == "" && len(line) >= MaxHeaderLength {
		return "", "", false
	}
	words := strings.Fields(candidate)
	key := strings.ToLower(strings.Join(words, " "))
	if name, ok = headerAliases[key]; ok {
		return name, rest, true
	}
	if name, ok = prefixAlias(key); ok && titleLike(words) {
		return name, rest, true
	}
	return "", "", false
}

// prefixAlias matches "skills & tools" or "education and training": the
// longest alias followed by a non-letter rune.
func prefixAlias(key string) (string, bool) {
	best, name := 0, ""
	for alias, canonical := range headerAliases {
		if len(alias) <= best || !strings.HasPrefix(key, alias) || len(key) == len(alias) {
			continue
		}
		next, _ := utf8.DecodeRuneInString(key[len(alias):])
		if unicode.IsLetter(next) {
			continue
		}
		best, name = len(alias), canonical
	}
	return name, best > 0
}

// titleLike rejects sentences such as "Experience with cloud platforms":
// every word of four or more letters must be capitalized.
func titleLike(words []string) bool {
	for _, w := range words {
		first, _ := utf8.DecodeRuneInString(w)
		if unicode.IsLetter(first) && utf8.RuneCountInString(w) >= 4 && !unicode.IsUpper(first) {
			return false
		}
	}
	return true
}
