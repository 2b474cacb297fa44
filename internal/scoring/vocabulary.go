package scoring

// knownSkills are recognized anywhere in the text and define which job keywords count as skills.
var knownSkills = []string{
	"python", "java", "javascript", "typescript", "golang", "rust", "ruby", "php", "scala", "kotlin", "swift",
	"c++", "c#", "sql", "nosql", "postgresql", "mysql", "mongodb", "redis", "elasticsearch", "kafka", "rabbitmq",
	"docker", "kubernetes", "terraform", "ansible", "jenkins", "linux", "git", "aws", "azure", "gcp",
	"react", "angular", "vue", "node.js", "django", "flask", "spring", "graphql", "rest", "grpc",
	"spark", "hadoop", "airflow", "pandas", "tensorflow", "pytorch", "tableau", "excel",
	"html", "css", "figma", "jira", "salesforce", "sap",
}

// knownSkillPhrases are multi-word skills matched against normalized text.
var knownSkillPhrases = []string{
	"machine learning", "data analysis", "project management", "continuous integration", "deep learning",
}

// techKeywords contribute to the keyword score by case-insensitive substring hit.
var techKeywords = []string{"api", "database", "framework", "agile", "scrum", "cloud", "devops"}

var actionVerbs = []string{"managed", "led", "developed", "created", "implemented", "improved", "increased", "achieved"}

var skillVocabulary = func() map[string]bool {
	set := make(map[string]bool, len(knownSkills)+len(knownSkillPhrases))
	for _, s := range knownSkills {
		set[s] = true
	}
	for _, s := range knownSkillPhrases {
		set[s] = true
	}
	return set
}()

// IsKnownSkill reports whether term is part of the skill vocabulary.
func IsKnownSkill(term string) bool {
	return skillVocabulary[Normalize(term)]
}
