package scoring

import (
	"strings"
	"sync"
)

// Analyzer scores resumes with a fixed set of weights. It holds no mutable
// state and is safe for concurrent use.
type Analyzer struct {
	Weights Weights
}

// NewAnalyzer returns an analyzer bound to w.
func NewAnalyzer(w Weights) *Analyzer {
	return &Analyzer{Weights: w}
}

var defaultAnalyzer = NewAnalyzer(DefaultWeights())

// Analyze scores rawText with the default weights.
func Analyze(rawText string, opts Options) (AnalysisResult, error) {
	return defaultAnalyzer.Analyze(rawText, opts)
}

// Analyze runs the full pipeline. Whitespace-only text fails with
// ErrInvalidInput; text without recognized sections yields a Degraded result.
func (a *Analyzer) Analyze(rawText string, opts Options) (AnalysisResult, error) {
	if strings.TrimSpace(rawText) == "" {
		return AnalysisResult{}, ErrInvalidInput
	}
	parsed := Parse(rawText)

	scorers := []struct {
		kind Kind
		fn   Scorer
	}{
		{KindATS, a.Weights.ATSScore},
		{KindContent, a.Weights.ContentScore},
		{KindFormat, a.Weights.FormatScore},
		{KindKeyword, a.Weights.KeywordScore},
	}
	// Scorers are pure and cannot fail.
	values := make([]int, len(scorers))
	var wg sync.WaitGroup
	for i, s := range scorers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			values[i] = s.fn(parsed)
		}()
	}
	wg.Wait()

	subs := make(map[Kind]int, len(scorers))
	for i, s := range scorers {
		subs[s.kind] = values[i]
	}

	var match *JobMatch
	if strings.TrimSpace(opts.JobDescription) != "" {
		m := MatchJob(parsed, opts.JobDescription)
		match = &m
	}
	return a.Weights.aggregate(parsed, subs, match, opts), nil
}

// Match runs only the job matcher.
func Match(rawText, jobDescription string) (JobMatch, error) {
	if strings.TrimSpace(rawText) == "" {
		return JobMatch{}, ErrInvalidInput
	}
	return MatchJob(Parse(rawText), jobDescription), nil
}
