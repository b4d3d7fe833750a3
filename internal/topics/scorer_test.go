package topics

import (
	"math/rand/v2"
	"strings"
	"testing"

	"autoblog/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsRelevant(t *testing.T) {
	assert.True(t, IsRelevant("New HIPAA rule for cloud vendors"))
	assert.True(t, IsRelevant("Patient portals get a redesign"))
	assert.True(t, IsRelevant("Digital Health funding slows"))
	assert.False(t, IsRelevant("Quarterly earnings beat estimates"))
	assert.False(t, IsRelevant(""))
}

func TestCleanTitle(t *testing.T) {
	assert.Equal(t, "HIPAA fines rise", CleanTitle("  HIPAA \n\t fines   rise "))
	long := strings.Repeat("x", 250)
	assert.Len(t, CleanTitle(long), 200)
}

func TestExtractKeywords(t *testing.T) {
	assert.Equal(t, []string{"AI", "HIPAA compliance", "healthcare", "data security"},
		ExtractKeywords("AI tools for HIPAA security in healthcare"))
	assert.Equal(t, []string{"machine learning"}, ExtractKeywords("ML pipelines"))
	assert.Equal(t, core.DefaultKeywords, ExtractKeywords("Quarterly update"))

	// The default slice must not alias the shared package variable
	kw := ExtractKeywords("nothing")
	kw[0] = "changed"
	assert.Equal(t, "healthcare technology", core.DefaultKeywords[0])
}

func TestCategorize(t *testing.T) {
	tests := map[string]core.Category{
		"HIPAA audit season":             core.CategoryCompliance,
		"Compliance automation":          core.CategoryCompliance,
		"New regulation for devices":     core.CategoryRegulation,
		"Ethics boards and algorithms":   core.CategoryRegulation,
		"Machine learning for radiology": core.CategoryAIDomain,
		"AI scribes":                     core.CategoryAIDomain,
		"Patient portal redesign":        core.CategoryTech,
	}
	for title, want := range tests {
		assert.Equal(t, want, Categorize(title), title)
	}
}

func TestRelevance(t *testing.T) {
	title := "HIPAA compliance for AI in healthcare security"
	kw := ExtractKeywords(title)
	// 5 + 3 + 2 + 2 + 2 + 2 + 2 caps at 10
	assert.Equal(t, 10.0, Relevance(title, kw))

	// base plus three default keywords
	assert.Equal(t, 6.5, Relevance("Patient portal redesign", ExtractKeywords("Patient portal redesign")))
	assert.Equal(t, 6.5, Relevance("", ExtractKeywords("")))
}

func TestRelevanceAlwaysInRange(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	vocab := []string{"ai", "hipaa", "healthcare", "privacy", "security", "compliance", "ml", "data", "x", " ", "\n"}
	for i := 0; i < 2000; i++ {
		var b strings.Builder
		for j := 0; j < rng.IntN(20); j++ {
			b.WriteString(vocab[rng.IntN(len(vocab))])
			b.WriteString(" ")
		}
		title := b.String()
		score := Relevance(title, ExtractKeywords(title))
		require.GreaterOrEqual(t, score, 0.0, title)
		require.LessOrEqual(t, score, 10.0, title)
	}
}

func TestScore(t *testing.T) {
	got := Score("https://hipaajournal.com", []string{
		"  HIPAA   Breach Report  ",
		"Stock market update",
		"AI in the clinic",
	})
	require.Len(t, got, 2)
	assert.Equal(t, "HIPAA Breach Report", got[0].Title)
	assert.Equal(t, "Latest insights on hipaa breach report", got[0].Description)
	assert.Equal(t, "https://hipaajournal.com", got[0].Source)
	assert.Equal(t, core.CategoryCompliance, got[0].Category)
	assert.Equal(t, core.CategoryAIDomain, got[1].Category)
}

func TestDedup(t *testing.T) {
	in := []core.Topic{
		{Title: "HIPAA: New Rules!", Relevance: 9},
		{Title: "hipaa new rules", Relevance: 5},
		{Title: "AI scribes", Relevance: 7},
	}
	once := Dedup(in)
	require.Len(t, once, 2)
	assert.Equal(t, 9.0, once[0].Relevance)
	assert.Equal(t, once, Dedup(once))
	assert.Equal(t, "hipaanewrules", DedupKey("HIPAA: New Rules!"))
}
