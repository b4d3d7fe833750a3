package catalog

import "strings"

var categoryRules = []struct {
	label string
	terms []string
}{
	{"HIPAA Compliance", []string{"hipaa", "compliance"}},
	{"AI & Machine Learning", []string{"ai", "artificial intelligence", "machine learning"}},
	{"Healthcare Tech", []string{"healthcare", "medical", "clinical"}},
	{"App Development", []string{"app", "mobile", "wearable"}},
	{"Cloud & Infrastructure", []string{"cloud", "aws", "hosting"}},
	{"Security", []string{"security", "phi", "data protection"}},
	{"Software Development", []string{"development", "software", "coding"}},
}

// InferCategory labels a link by the first rule whose term appears in its title.
func InferCategory(title string) string {
	lower := strings.ToLower(title)
	for _, rule := range categoryRules {
		for _, term := range rule.terms {
			if strings.Contains(lower, term) {
				return rule.label
			}
		}
	}
	return "Technology"
}
