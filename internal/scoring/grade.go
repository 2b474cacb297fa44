package scoring

var gradeThresholds = []struct {
	min   int
	grade string
}{
	{90, "A+"},
	{85, "A"},
	{80, "A-"},
	{75, "B+"},
	{70, "B"},
	{65, "B-"},
	{60, "C+"},
	{55, "C"},
	{50, "C-"},
	{45, "D+"},
	{40, "D"},
}

// Grade maps an overall score to its letter grade.
func Grade(overall int) string {
	for _, t := range gradeThresholds {
		if overall >= t.min {
			return t.grade
		}
	}
	return "F"
}
