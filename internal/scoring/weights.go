package scoring

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/scoring/suggest"
)

// Weights are the heuristic constants of the four sub-scorers.
type Weights struct {
	ATS     ATSWeights     `yaml:"ats" json:"ats"`
	Content ContentWeights `yaml:"content" json:"content"`
	Format  FormatWeights  `yaml:"format" json:"format"`
	Keyword KeywordWeights `yaml:"keyword" json:"keyword"`
	Suggest SuggestWeights `yaml:"suggest" json:"suggest"`
}

type ATSWeights struct {
	Base         int `yaml:"base" json:"base"`
	PerSection   int `yaml:"per_section" json:"per_section"`
	Email        int `yaml:"email" json:"email"`
	Phone        int `yaml:"phone" json:"phone"`
	Timeline     int `yaml:"timeline" json:"timeline"`
	TimelineMinY int `yaml:"timeline_min_years" json:"timeline_min_years"`
}

type ContentWeights struct {
	Base          int `yaml:"base" json:"base"`
	OptimalMin    int `yaml:"optimal_min_words" json:"optimal_min_words"`
	OptimalMax    int `yaml:"optimal_max_words" json:"optimal_max_words"`
	OptimalBonus  int `yaml:"optimal_bonus" json:"optimal_bonus"`
	MinimumWords  int `yaml:"minimum_words" json:"minimum_words"`
	MinimumBonus  int `yaml:"minimum_bonus" json:"minimum_bonus"`
	PerQuantified int `yaml:"per_quantified" json:"per_quantified"`
	QuantifiedCap int `yaml:"quantified_cap" json:"quantified_cap"`
	PerActionVerb int `yaml:"per_action_verb" json:"per_action_verb"`
}

type FormatWeights struct {
	Base            int `yaml:"base" json:"base"`
	FewSections     int `yaml:"few_sections" json:"few_sections"`
	FewBonus        int `yaml:"few_bonus" json:"few_bonus"`
	ManySections    int `yaml:"many_sections" json:"many_sections"`
	ManyBonus       int `yaml:"many_bonus" json:"many_bonus"`
	ContactPair     int `yaml:"contact_pair" json:"contact_pair"`
	ExperienceAndEd int `yaml:"experience_and_education" json:"experience_and_education"`
}

type KeywordWeights struct {
	Base       int `yaml:"base" json:"base"`
	PerSkill   int `yaml:"per_skill" json:"per_skill"`
	SkillCap   int `yaml:"skill_cap" json:"skill_cap"`
	PerTechHit int `yaml:"per_tech_hit" json:"per_tech_hit"`
}

// SuggestWeights are the sub-score thresholds below which score-driven suggestions fire.
type SuggestWeights struct {
	LowContent int `yaml:"low_content" json:"low_content"`
	LowKeyword int `yaml:"low_keyword" json:"low_keyword"`
}

// DefaultWeights keeps a resume without recognized sections at or below 75 overall.
func DefaultWeights() Weights {
	return Weights{
		ATS: ATSWeights{
			Base:         30,
			PerSection:   15,
			Email:        5,
			Phone:        5,
			Timeline:     15,
			TimelineMinY: 2,
		},
		Content: ContentWeights{
			Base:          20,
			OptimalMin:    300,
			OptimalMax:    800,
			OptimalBonus:  25,
			MinimumWords:  200,
			MinimumBonus:  10,
			PerQuantified: 5,
			QuantifiedCap: 25,
			PerActionVerb: 3,
		},
		Format: FormatWeights{
			Base:            30,
			FewSections:     4,
			FewBonus:        20,
			ManySections:    6,
			ManyBonus:       30,
			ContactPair:     20,
			ExperienceAndEd: 20,
		},
		Keyword: KeywordWeights{
			Base:       20,
			PerSkill:   3,
			SkillCap:   45,
			PerTechHit: 5,
		},
		Suggest: SuggestWeights{
			LowContent: suggest.DefaultLowContentScore,
			LowKeyword: suggest.DefaultLowKeywordScore,
		},
	}
}

// ParseWeights reads YAML weights. Keys that are absent keep their defaults.
func ParseWeights(data []byte) (Weights, error) {
	w := DefaultWeights()
	if err := yaml.Unmarshal(data, &w); err != nil {
		return Weights{}, fmt.Errorf("parse scoring weights: %w", err)
	}
	if err := w.validate(); err != nil {
		return Weights{}, err
	}
	return w, nil
}

// Fingerprint identifies a weight set; cached results are only valid for the same fingerprint.
func (w Weights) Fingerprint() string {
	data, err := yaml.Marshal(w)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:8])
}

func (w Weights) validate() error {
	if w.Content.OptimalMin > w.Content.OptimalMax {
		return fmt.Errorf("scoring weights: optimal_min_words %d exceeds optimal_max_words %d", w.Content.OptimalMin, w.Content.OptimalMax)
	}
	if w.Format.FewSections > w.Format.ManySections {
		return fmt.Errorf("scoring weights: few_sections %d exceeds many_sections %d", w.Format.FewSections, w.Format.ManySections)
	}
	if w.Keyword.SkillCap < 0 || w.Content.QuantifiedCap < 0 {
		return fmt.Errorf("scoring weights: caps must not be negative")
	}
	return nil
}
