package topics

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"autoblog/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrendingAllSourcesFail(t *testing.T) {
	down := errors.New("connection refused")
	r := NewResearcher([]Source{
		StaticSource{Label: "a", Err: down},
		StaticSource{Label: "b", Err: down},
		StaticSource{Label: "c", Err: down},
	}, nil, nil)

	got := r.Trending(context.Background())
	require.Len(t, got, 2)
	assert.Equal(t, 10.0, got[0].Relevance)
	assert.Equal(t, 9.0, got[1].Relevance)
	assert.Equal(t, "fallback", got[0].Source)
}

func TestTrendingIsolatesFailures(t *testing.T) {
	r := NewResearcher([]Source{
		StaticSource{Label: "down", Err: errors.New("timeout")},
		StaticSource{Label: "one", Items: []string{"Patient portal redesign", "HIPAA compliance for AI"}},
		StaticSource{Label: "two", Items: []string{"hipaa compliance for ai", "Sports scores"}},
	}, nil, nil)

	got := r.Trending(context.Background())
	require.Len(t, got, 2)
	assert.Equal(t, "HIPAA compliance for AI", got[0].Title)
	assert.Equal(t, "one", got[0].Source)
	assert.GreaterOrEqual(t, got[0].Relevance, got[1].Relevance)
}

func TestTrendingWithCuratedPack(t *testing.T) {
	r := NewResearcher([]Source{StaticSource{Label: "down", Err: errors.New("dns")}}, nil, nil).
		WithCurated(CuratedTopics())

	got := r.Trending(context.Background())
	assert.Len(t, got, len(CuratedTopics()))
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Relevance, got[i].Relevance)
	}
}

func TestPickerDeterministic(t *testing.T) {
	topics := []core.Topic{{Title: "a", Relevance: 3}, {Title: "b", Relevance: 5}, {Title: "c", Relevance: 2}}

	first, second := NewSeededPicker(42), NewSeededPicker(42)
	for i := 0; i < 50; i++ {
		assert.Equal(t, first.Pick(topics).Title, second.Pick(topics).Title)
	}
}

func TestPickerFrequencies(t *testing.T) {
	topics := []core.Topic{{Title: "a", Relevance: 10}, {Title: "b", Relevance: 5}, {Title: "c", Relevance: 5}}
	p := NewSeededPicker(7)

	const n = 20000
	counts := map[string]int{}
	for i := 0; i < n; i++ {
		counts[p.Pick(topics).Title]++
	}

	want := map[string]float64{"a": 0.5, "b": 0.25, "c": 0.25}
	for title, share := range want {
		got := float64(counts[title]) / n
		assert.Less(t, math.Abs(got-share), 0.02, "share of %s = %.3f", title, got)
	}
}

func TestPickerEdgeCases(t *testing.T) {
	p := NewSeededPicker(1)
	assert.Equal(t, FallbackTopics()[0].Title, p.Pick(nil).Title)

	zero := []core.Topic{{Title: "first"}, {Title: "second"}}
	assert.Equal(t, "first", p.Pick(zero).Title)

	only := []core.Topic{{Title: "only", Relevance: 4}}
	assert.Equal(t, "only", p.Pick(only).Title)
}

func TestRandomUsesTrending(t *testing.T) {
	r := NewResearcher([]Source{StaticSource{Label: "s", Items: []string{"HIPAA audits"}}}, NewSeededPicker(3), nil)
	assert.Equal(t, "HIPAA audits", r.Random(context.Background()).Title)
}

func TestLoadCurated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "topics.yaml")
	body := `topics:
  - title: "Securing FHIR APIs"
    description: "Auth patterns for FHIR servers"
    keywords: [fhir, security]
    relevance: 14
  - title: "HIPAA logging"
    relevance: 6
    category: hipaa-compliance
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	got, err := LoadCurated(path)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 10.0, got[0].Relevance)
	assert.Equal(t, core.CategorySoftware, got[0].Category)
	assert.Equal(t, core.CategoryCompliance, got[1].Category)
	assert.Equal(t, "curated", got[1].Source)

	require.NoError(t, os.WriteFile(path, []byte("topics:\n  - description: untitled\n"), 0o644))
	_, err = LoadCurated(path)
	assert.Error(t, err)
}

type scriptedModel struct {
	replies []string
	errs    []error
	calls   int
}

func (m *scriptedModel) Complete(context.Context, string) (string, error) {
	i := m.calls
	m.calls++
	var reply string
	var err error
	if i < len(m.replies) {
		reply = m.replies[i]
	}
	if i < len(m.errs) {
		err = m.errs[i]
	}
	return reply, err
}

func TestParseSuggested(t *testing.T) {
	raw := "Here you go:\n```json\n[{\"title\":\"Edge AI for ICU monitors\",\"keywords\":[\"ai\"],\"relevance\":9,\"trendingLevel\":\"high\"},{\"title\":\"\"}]\n```"
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	got, err := ParseSuggested(raw, SourceAIGenerated, at)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Edge AI for ICU monitors", got[0].Title)
	assert.Equal(t, 9.0, got[0].Relevance)
	assert.Equal(t, core.CategorySoftwareDevelopment, got[0].Category)
	assert.Equal(t, "high", got[0].TrendingLevel)
	assert.Equal(t, at, *got[0].GeneratedAt)

	_, err = ParseSuggested("no array here", SourceAIGenerated, at)
	assert.Error(t, err)
}

func TestSuggestFallbackChain(t *testing.T) {
	good := `[{"title":"HIPAA-aware feature flags","relevance":8}]`

	m := &scriptedModel{replies: []string{good}}
	got := NewSuggester(m, nil).Suggest(context.Background())
	require.Len(t, got, 1)
	assert.Equal(t, SourceAIGenerated, got[0].Source)

	m = &scriptedModel{replies: []string{"not json", good}}
	got = NewSuggester(m, nil).Suggest(context.Background())
	require.Len(t, got, 1)
	assert.Equal(t, SourceAIFallback, got[0].Source)
	assert.Equal(t, 2, m.calls)

	m = &scriptedModel{errs: []error{errors.New("down"), errors.New("down")}}
	got = NewSuggester(m, nil).Suggest(context.Background())
	require.Len(t, got, 6)
	assert.Equal(t, SourceEmergency, got[0].Source)
	assert.Equal(t, 10.0, got[0].Relevance)
}
