package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"autoblog/internal/catalog"
	"autoblog/internal/config"
	"autoblog/internal/core"
	"autoblog/internal/email"
	"autoblog/internal/llm"
	"autoblog/internal/pipeline"
	"autoblog/internal/render"
	"autoblog/internal/scheduler"
	"autoblog/internal/topics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const reply = "{\"title\":\"Automating HIPAA Audits\",\"summary\":\"How teams automate audits.\",\"content\":\"<h1>Automating HIPAA Audits</h1><h2>Why</h2><p>Audit <strong>trails</strong> matter.</p>\"}"

type testEnv struct {
	srv    *Server
	model  *llm.MockClient
	mailer *email.RecordingMailer
}

func newTestEnv(t *testing.T, withScheduler bool) testEnv {
	t.Helper()

	cfg := &config.Config{}
	cfg.Storage.BlogsDir = t.TempDir()
	cfg.Email.From = "bot@example.com"
	cfg.Marketing.TeamEmails = []string{"team@example.com"}
	cfg.Marketing.WeeklyCount = 2
	cfg.Generation.BatchConcurrency = 2
	cfg.Blog.Topics = []string{"HIPAA Compliance Best Practices", "Healthcare AI Trends"}
	cfg.Server.CORS.Enabled = true
	cfg.Server.CORS.AllowedOrigins = []string{"*"}

	model := &llm.MockClient{Default: reply}
	mailer := &email.RecordingMailer{}
	svc, err := pipeline.NewBuilder(cfg).
		WithModel(model).
		WithMailer(mailer).
		WithLinks(catalog.Static{
			Catalog: core.Catalog{Resources: catalog.FallbackResources(), Blogs: catalog.FallbackBlogs()},
			Pages:   map[int][]core.Link{2: {{Title: "Page two", URL: "https://example.com/blog/two/", Kind: core.LinkKindBlog}}},
		}).
		WithTopicSources(topics.StaticSource{Label: "static", Items: []string{
			"HIPAA compliance automation with AI",
			"FDA guidance on AI medical devices",
		}}).
		WithPicker(topics.NewSeededPicker(3)).
		Build(context.Background())
	require.NoError(t, err)

	var sched Scheduler
	if withScheduler {
		s, err := scheduler.New(svc, "", "", nil)
		require.NoError(t, err)
		sched = s
	}
	return testEnv{srv: New(svc, sched, cfg.Server, nil), model: model, mailer: mailer}
}

func (e testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.srv.Router().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t, false)
	rec := env.do(t, http.MethodGet, "/blog-generator/health", "")

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[HealthResponse](t, rec)
	assert.Equal(t, "healthy", resp.Status)
	assert.False(t, resp.Timestamp.IsZero())
	assert.Equal(t, "no-cache, no-store, must-revalidate", rec.Header().Get("Cache-Control"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func TestGenerateAcceptsLooseTypes(t *testing.T) {
	env := newTestEnv(t, false)
	rec := env.do(t, http.MethodPost, "/blog-generator/generate",
		`{"topic":"HIPAA audits","targetWordCount":"800","includeRegulatoryInfo":"true","tone":"technical"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	result := decode[core.GenerationResult](t, rec)
	assert.True(t, result.Success)
	assert.Equal(t, "Automating HIPAA Audits", result.BlogPost.Title)

	prompt := env.model.Prompts()[0]
	assert.Contains(t, prompt, "800 words")
	assert.Contains(t, prompt, "Include a clear discussion of the relevant regulatory requirements")
}

func TestGenerateValidation(t *testing.T) {
	env := newTestEnv(t, false)

	for name, body := range map[string]string{
		"missing topic":  `{"targetWordCount":1200}`,
		"bad tone":       `{"topic":"x","tone":"sarcastic"}`,
		"too short":      `{"topic":"x","targetWordCount":50}`,
		"non-numeric":    `{"topic":"x","targetWordCount":"lots"}`,
		"fractional":     `{"topic":"x","targetWordCount":1500.7}`,
		"out of range":   `{"topic":"x","targetWordCount":1e20}`,
		"huge string":    `{"topic":"x","targetWordCount":"99999999999"}`,
		"malformed json": `{"topic":`,
	} {
		t.Run(name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, "/blog-generator/generate", body)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			resp := decode[ErrorResponse](t, rec)
			assert.False(t, resp.Success)
			assert.NotEmpty(t, resp.Error)
		})
	}
	assert.Zero(t, env.model.Calls())
}

func TestGenerateModelFailure(t *testing.T) {
	env := newTestEnv(t, false)
	env.model.Errors = []error{assert.AnError}

	rec := env.do(t, http.MethodPost, "/blog-generator/generate", `{"topic":"HIPAA audits"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	result := decode[core.GenerationResult](t, rec)
	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Error)
}

func TestGenerateAndSave(t *testing.T) {
	env := newTestEnv(t, false)
	rec := env.do(t, http.MethodPost, "/blog-generator/generate-and-save", `{"topic":"HIPAA audits"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	result := decode[core.GenerationResult](t, rec)
	assert.True(t, result.Success)
	assert.True(t, strings.HasSuffix(result.SavedTo, "automating_hipaa_audits.json"))
}

func TestGenerateAndEmail(t *testing.T) {
	env := newTestEnv(t, false)
	rec := env.do(t, http.MethodPost, "/blog-generator/generate-and-email", `{"topic":"HIPAA audits"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[core.GenerationResult](t, rec).Success)
	require.Len(t, env.mailer.Sent(), 1)
	assert.Len(t, env.mailer.Sent()[0].Attachments, 2)
}

func TestGenerateDOCX(t *testing.T) {
	env := newTestEnv(t, false)
	rec := env.do(t, http.MethodPost, "/blog-generator/generate-docx", `{"topic":"HIPAA audits"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, render.DOCXContentType, rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="automating_hipaa_audits.docx"`, rec.Header().Get("Content-Disposition"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")))
}

func TestGenerateDOCXFailure(t *testing.T) {
	env := newTestEnv(t, false)
	env.model.Errors = []error{assert.AnError}

	rec := env.do(t, http.MethodPost, "/blog-generator/generate-docx", `{"topic":"HIPAA audits"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, decode[ErrorResponse](t, rec).Success)
}

func TestDownloadHTML(t *testing.T) {
	env := newTestEnv(t, false)
	body := `{"title":"Edge FHIR","summary":"S","content":"<h1>Edge FHIR</h1><p>Body</p>","topic":"FHIR","keywords":["fhir"],"wordCount":"2","readingTime":1,"createdAt":"2024-03-05T10:00:00Z"}`
	rec := env.do(t, http.MethodPost, "/blog-generator/download-html", body)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, render.HTMLContentType, rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="edge_fhir.html"`, rec.Header().Get("Content-Disposition"))
	assert.Contains(t, rec.Body.String(), "Edge FHIR")
	assert.Contains(t, rec.Body.String(), "3/5/2024")
}

func TestDownloadDOCX(t *testing.T) {
	env := newTestEnv(t, false)

	rec := env.do(t, http.MethodPost, "/blog-generator/download-docx", `{"title":"Edge FHIR","content":"<p>Body</p>"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="edge_fhir.docx"`, rec.Header().Get("Content-Disposition"))

	rec = env.do(t, http.MethodPost, "/blog-generator/download-docx", `{"content":"<p>Body</p>"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[ErrorResponse](t, rec).Error, "Failed to generate DOCX document")
}

func TestGenerateTrending(t *testing.T) {
	env := newTestEnv(t, false)
	rec := env.do(t, http.MethodPost, "/blog-generator/generate-trending", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[core.GenerationResult](t, rec).Success)
	assert.Equal(t, 1, env.model.Calls())
}

func TestGenerateTrendingBatch(t *testing.T) {
	env := newTestEnv(t, false)

	rec := env.do(t, http.MethodPost, "/blog-generator/generate-trending-weekly?count=2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]core.GeneratedPost](t, rec), 2)

	rec = env.do(t, http.MethodPost, "/blog-generator/generate-trending-weekly", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]core.GeneratedPost](t, rec), pipeline.DefaultTrendingCount)

	for _, q := range []string{"0", "11", "many"} {
		rec = env.do(t, http.MethodPost, "/blog-generator/generate-trending-weekly?count="+q, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, q)
	}
}

func TestTopicListings(t *testing.T) {
	env := newTestEnv(t, false)

	rec := env.do(t, http.MethodGet, "/blog-generator/topics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"HIPAA Compliance Best Practices", "Healthcare AI Trends"}, decode[[]string](t, rec))

	rec = env.do(t, http.MethodGet, "/topic-research/trending", "")
	require.Equal(t, http.StatusOK, rec.Code)
	trending := decode[[]core.Topic](t, rec)
	require.Len(t, trending, 2)
	assert.GreaterOrEqual(t, trending[0].Relevance, trending[1].Relevance)

	rec = env.do(t, http.MethodGet, "/topic-research/random", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, decode[core.Topic](t, rec).Title)
}

func TestSuggestedTopics(t *testing.T) {
	env := newTestEnv(t, false)
	env.model.Replies = []string{`[{"title":"Zero trust for EHR integrations","description":"d","keywords":["security"],"relevanceScore":9,"category":"healthcare-tech","trendingLevel":"high"}]`}

	rec := env.do(t, http.MethodGet, "/blog-generator/suggested-topics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, decode[[]core.Topic](t, rec))
}

func TestLinks(t *testing.T) {
	env := newTestEnv(t, false)

	rec := env.do(t, http.MethodGet, "/blog-generator/separated-links", "")
	require.Equal(t, http.StatusOK, rec.Code)
	c := decode[core.Catalog](t, rec)
	assert.NotEmpty(t, c.Resources)
	assert.NotEmpty(t, c.Blogs)

	rec = env.do(t, http.MethodGet, "/blog-generator/load-more-blogs/2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	blogs := decode[BlogsResponse](t, rec).Blogs
	require.Len(t, blogs, 1)
	assert.Equal(t, "Page two", blogs[0].Title)

	rec = env.do(t, http.MethodGet, "/blog-generator/load-more-blogs/3", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"blogs":[]}`, rec.Body.String())

	// Links already served are not repeated.
	rec = env.do(t, http.MethodGet, "/blog-generator/load-more-blogs/2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"blogs":[]}`, rec.Body.String())

	for _, page := range []string{"0", "abc", "-1"} {
		rec = env.do(t, http.MethodGet, "/blog-generator/load-more-blogs/"+page, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, page)
	}
}

func TestSchedulerRoutes(t *testing.T) {
	env := newTestEnv(t, true)

	rec := env.do(t, http.MethodGet, "/scheduler/status", "")
	require.Equal(t, http.StatusOK, rec.Code)
	status := decode[scheduler.Status](t, rec)
	assert.Equal(t, scheduler.DefaultDaily, status.Daily.Schedule)
	assert.Equal(t, scheduler.DefaultWeekly, status.Weekly.Schedule)

	rec = env.do(t, http.MethodPost, "/scheduler/trigger-daily", "")
	require.Equal(t, http.StatusOK, rec.Code)
	daily := decode[scheduler.TriggerResult](t, rec)
	assert.True(t, daily.Success, daily.Message)
	assert.Len(t, env.mailer.Sent(), 1)

	rec = env.do(t, http.MethodPost, "/scheduler/trigger-weekly", "")
	require.Equal(t, http.StatusOK, rec.Code)
	weekly := decode[scheduler.TriggerResult](t, rec)
	assert.True(t, weekly.Success, weekly.Message)
	require.Len(t, env.mailer.Sent(), 2)
	assert.Len(t, env.mailer.Sent()[1].Attachments, 4)
}

func TestSchedulerRoutesWithoutScheduler(t *testing.T) {
	env := newTestEnv(t, false)
	rec := env.do(t, http.MethodGet, "/scheduler/status", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	env := newTestEnv(t, false)
	req := httptest.NewRequest(http.MethodOptions, "/blog-generator/generate", nil)
	req.Header.Set("Origin", "https://marketing.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	env.srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
