package suggest

import (
	"reflect"
	"testing"
)

func TestRankPriorityThenImpact(t *testing.T) {
	items := []Suggestion{
		{Priority: PriorityLow, ATSImpact: 5, Message: "low"},
		{Priority: PriorityCritical, ATSImpact: 10, Message: "critical-10"},
		{Priority: PriorityMedium, ATSImpact: 5, Message: "medium"},
		{Priority: PriorityCritical, ATSImpact: 20, Message: "critical-20"},
	}

	got := Messages(Rank(items))
	want := []string{"critical-20", "critical-10", "medium", "low"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if items[0].Message != "low" {
		t.Fatalf("expected input slice to be left untouched")
	}
}

func TestRankTiesKeepInputOrder(t *testing.T) {
	items := []Suggestion{
		{Priority: PriorityHigh, ATSImpact: 8, Message: "first"},
		{Priority: PriorityHigh, ATSImpact: 8, Message: "second"},
		{Priority: PriorityHigh, ATSImpact: 8, Message: "third"},
	}
	got := Messages(Rank(items))
	want := []string{"first", "second", "third"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestRankCollapsesDuplicateMessages(t *testing.T) {
	items := []Suggestion{
		{Type: TypeFormat, Priority: PriorityLow, ATSImpact: 1, Message: "Use bullet points."},
		{Type: TypeStructure, Priority: PriorityHigh, ATSImpact: 3, Message: "use  bullet points."},
		{Type: TypeContent, Priority: PriorityMedium, ATSImpact: 2, Message: "Add metrics."},
	}
	got := Rank(items)
	if len(got) != 2 {
		t.Fatalf("expected 2 suggestions, got %d", len(got))
	}
	if got[0].Type != TypeStructure {
		t.Fatalf("expected the higher priority duplicate to survive, got %s", got[0].Type)
	}
}

func TestGenerateMissingSectionsProduceStructureSuggestions(t *testing.T) {
	out := Generate(Input{
		MissingSections: []string{"summary", "experience", "education", "skills"},
		HasEmail:        true,
		HasPhone:        true,
		TimelineYears:   2,
		ContentScore:    80,
		KeywordScore:    80,
	})

	structure := map[string]bool{}
	for _, s := range out {
		if s.Type == TypeStructure {
			structure[s.Section] = true
		}
		if s.Status != StatusPending {
			t.Fatalf("expected pending status, got %s", s.Status)
		}
	}
	for _, name := range []string{"summary", "experience", "education", "skills"} {
		if !structure[name] {
			t.Fatalf("expected structure suggestion for %s", name)
		}
	}
	if out[0].Section != "experience" {
		t.Fatalf("expected experience suggestion first, got %q", out[0].Section)
	}
}

func TestGeneratePresentSections(t *testing.T) {
	out := Generate(Input{
		PresentSections: []string{"experience", "skills", "projects"},
		HasEmail:        true,
		HasPhone:        true,
		TimelineYears:   3,
		ContentScore:    70,
		KeywordScore:    70,
	})

	types := map[string]Type{}
	for _, s := range out {
		types[s.Section] = s.Type
	}
	expected := map[string]Type{
		"experience": TypeAchievement,
		"skills":     TypeKeyword,
		"projects":   TypeFormat,
	}
	if !reflect.DeepEqual(types, expected) {
		t.Fatalf("expected %v, got %v", expected, types)
	}
}

func TestGenerateKeywordGaps(t *testing.T) {
	out := Generate(Input{
		HasEmail:      true,
		HasPhone:      true,
		TimelineYears: 2,
		ContentScore:  90,
		KeywordScore:  90,
		KeywordGaps:   []string{"kubernetes", "Kubernetes", "terraform"},
	})
	if len(out) != 1 {
		t.Fatalf("expected one suggestion, got %d", len(out))
	}
	if out[0].SuggestedText != "kubernetes, terraform" {
		t.Fatalf("unexpected suggested text %q", out[0].SuggestedText)
	}
}

func TestGenerateScoreThresholds(t *testing.T) {
	base := Input{
		HasEmail:      true,
		HasPhone:      true,
		TimelineYears: 2,
		ContentScore:  60,
		KeywordScore:  60,
	}
	if out := Generate(base); len(out) != 0 {
		t.Fatalf("expected no suggestions at default thresholds, got %v", Messages(out))
	}

	strict := base
	strict.MinTimelineYears = 3
	strict.LowContentScore = 70
	strict.LowKeywordScore = 70
	out := Generate(strict)
	sections := map[string]bool{}
	for _, s := range out {
		sections[s.Section+"/"+string(s.Type)] = true
	}
	for _, key := range []string{"experience/ats_compatibility", "/content", "skills/keyword"} {
		if !sections[key] {
			t.Fatalf("expected %s suggestion, got %v", key, Messages(out))
		}
	}
}

func TestGenerateDeterminism(t *testing.T) {
	input := Input{
		MissingSections: []string{"summary"},
		PresentSections: []string{"experience", "education"},
		ContentScore:    30,
		KeywordScore:    30,
		KeywordGaps:     []string{"docker"},
	}
	if !reflect.DeepEqual(Generate(input), Generate(input)) {
		t.Fatalf("expected deterministic suggestions")
	}
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from Status
		to   Status
		ok   bool
	}{
		{StatusPending, StatusApplied, true},
		{StatusPending, StatusDismissed, true},
		{StatusPending, StatusExpired, true},
		{StatusPending, StatusPending, false},
		{StatusApplied, StatusDismissed, false},
		{StatusDismissed, StatusApplied, false},
		{StatusExpired, StatusApplied, false},
	}
	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.ok {
			t.Fatalf("%s -> %s: expected %v, got %v", tc.from, tc.to, tc.ok, got)
		}
	}
}
