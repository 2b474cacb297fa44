package scoring

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchJob(t *testing.T) {
	p := Parse("Skills\npython, docker")
	m := MatchJob(p, "python docker kubernetes")

	assert.Equal(t, 67, m.MatchScore)
	assert.Equal(t, []string{"kubernetes"}, m.MissingSkills)
	assert.Equal(t, []string{"kubernetes"}, m.KeywordGaps)
	assert.Equal(t, []string{"docker", "python"}, m.MatchedKeywords)
}

func TestMatchJobSeparatesGapsFromSkills(t *testing.T) {
	p := Parse("Python developer")
	m := MatchJob(p, "Python developer wanted for remote terraform work")

	assert.Equal(t, []string{"terraform"}, m.MissingSkills)
	assert.Equal(t, []string{"remote", "terraform", "wanted", "work"}, m.KeywordGaps)
	assert.Equal(t, 33, m.MatchScore)
}

func TestMatchJobEmptyDescription(t *testing.T) {
	m := MatchJob(Parse("python"), "  a an the ")
	assert.Equal(t, 0, m.MatchScore)
	assert.Empty(t, m.MissingSkills)
	assert.Empty(t, m.KeywordGaps)
}

func TestMatchRejectsEmptyResume(t *testing.T) {
	_, err := Match(" ", "python")
	assert.True(t, errors.Is(err, ErrInvalidInput))

	m, err := Match("python docker", "python docker kubernetes")
	require.NoError(t, err)
	assert.Equal(t, 67, m.MatchScore)
}

func TestAnalyzeCarriesJobMatch(t *testing.T) {
	result, err := Analyze("Experience\nBuilt python services on docker", Options{JobDescription: "python docker kubernetes"})
	require.NoError(t, err)
	require.NotNil(t, result.JobMatch)
	assert.Equal(t, 67, result.JobMatch.MatchScore)
	assert.Equal(t, []string{"kubernetes"}, result.MissingSkills)

	found := false
	for _, s := range result.Suggestions {
		if s.SuggestedText == "kubernetes" {
			found = true
		}
	}
	assert.True(t, found)
}
