package topics

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"autoblog/internal/core"
	"autoblog/internal/fetch"
)

const maxTitleLength = 200

var relevantTerms = []string{
	"ai", "artificial intelligence", "hipaa", "healthcare", "medical",
	"privacy", "security", "compliance", "regulation", "machine learning",
	"data", "patient", "clinical", "digital health",
}

// Keyword rules in output order. Matching is by substring.
var keywordRules = []struct {
	keyword string
	terms   []string
}{
	{"AI", []string{"ai", "artificial intelligence"}},
	{"HIPAA compliance", []string{"hipaa", "compliance"}},
	{"healthcare", []string{"healthcare", "medical"}},
	{"data security", []string{"privacy", "security"}},
	{"machine learning", []string{"machine learning", "ml"}},
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]`)

func containsAny(s string, terms ...string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}

// IsRelevant reports whether a headline mentions any domain term.
func IsRelevant(headline string) bool {
	return containsAny(strings.ToLower(headline), relevantTerms...)
}

// CleanTitle collapses whitespace and caps the length.
func CleanTitle(headline string) string {
	return fetch.Truncate(fetch.CollapseSpace(headline), maxTitleLength)
}

// ExtractKeywords maps a title onto the fixed keyword vocabulary.
func ExtractKeywords(title string) []string {
	lower := strings.ToLower(title)
	var keywords []string
	for _, rule := range keywordRules {
		if containsAny(lower, rule.terms...) {
			keywords = append(keywords, rule.keyword)
		}
	}
	if len(keywords) == 0 {
		return append([]string(nil), core.DefaultKeywords...)
	}
	return keywords
}

// Categorize assigns the first matching category.
func Categorize(title string) core.Category {
	lower := strings.ToLower(title)
	switch {
	case containsAny(lower, "hipaa", "compliance"):
		return core.CategoryCompliance
	case containsAny(lower, "regulation", "ethics"):
		return core.CategoryRegulation
	case containsAny(lower, "ai", "machine learning"):
		return core.CategoryAIDomain
	default:
		return core.CategoryTech
	}
}

// Relevance scores a title in [0, 10]: base 5, term boosts, and half a
// point per keyword up to 3.
func Relevance(title string, keywords []string) float64 {
	lower := strings.ToLower(title)
	score := 5.0
	if strings.Contains(lower, "hipaa") {
		score += 3
	}
	if containsAny(lower, "ai", "artificial intelligence") {
		score += 2
	}
	if strings.Contains(lower, "healthcare") {
		score += 2
	}
	if containsAny(lower, "privacy", "security") {
		score += 2
	}
	if strings.Contains(lower, "compliance") {
		score += 2
	}
	score += math.Min(float64(len(keywords))*0.5, 3)
	return math.Max(0, math.Min(score, 10))
}

// Score turns raw headlines from source into topics, dropping irrelevant ones.
func Score(source string, headlines []string) []core.Topic {
	var out []core.Topic
	for _, h := range headlines {
		if !IsRelevant(h) {
			continue
		}
		title := CleanTitle(h)
		keywords := ExtractKeywords(title)
		out = append(out, core.Topic{
			Title:       title,
			Description: fmt.Sprintf("Latest insights on %s", strings.ToLower(title)),
			Keywords:    keywords,
			Source:      source,
			Relevance:   Relevance(title, keywords),
			Category:    Categorize(title),
		})
	}
	return out
}

// DedupKey is the lowercased title stripped to letters and digits.
func DedupKey(title string) string {
	return nonAlnum.ReplaceAllString(strings.ToLower(title), "")
}

// Dedup keeps the first topic for each DedupKey.
func Dedup(topics []core.Topic) []core.Topic {
	seen := map[string]struct{}{}
	out := make([]core.Topic, 0, len(topics))
	for _, t := range topics {
		key := DedupKey(t.Title)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, t)
	}
	return out
}
