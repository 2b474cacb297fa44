package scoring

import "math"

// minMatchTokenLength drops short, stopword-like tokens from matching.
const minMatchTokenLength = 3

// MatchJob compares resume tokens with job description tokens. The score is
// the share of job tokens found in the resume; an empty description scores 0.
func MatchJob(p ParsedResume, jobDescription string) JobMatch {
	jobTokens := TokenSet(jobDescription, minMatchTokenLength)
	if len(jobTokens) == 0 {
		return JobMatch{
			MissingSkills:   []string{},
			KeywordGaps:     []string{},
			MatchedKeywords: []string{},
		}
	}
	resumeTokens := TokenSet(p.RawText, minMatchTokenLength)

	matched := make(map[string]bool)
	gaps := make(map[string]bool)
	missing := make(map[string]bool)
	for tok := range jobTokens {
		if resumeTokens[tok] {
			matched[tok] = true
			continue
		}
		gaps[tok] = true
		if skillVocabulary[tok] {
			missing[tok] = true
		}
	}

	score := int(math.Round(100 * float64(len(matched)) / float64(len(jobTokens))))
	return JobMatch{
		MatchScore:      clamp(score),
		MissingSkills:   sortedKeys(missing),
		KeywordGaps:     sortedKeys(gaps),
		MatchedKeywords: sortedKeys(matched),
	}
}
