package core

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"autoblog/internal/apperr"
)

// LinkKind distinguishes downloadable resources from blog articles.
type LinkKind string

const (
	LinkKindResource LinkKind = "resource"
	LinkKindBlog     LinkKind = "blog"
)

// Link is an internal page a generated post may reference.
type Link struct {
	Title       string   `json:"title"`       // Display title, never empty
	URL         string   `json:"url"`         // Absolute URL
	Category    string   `json:"category"`    // Human-readable category label
	Kind        LinkKind `json:"type"`        // resource or blog
	Description string   `json:"description"` // Short blurb, may be empty
}

// Catalog is the link set produced by one scrape pass.
type Catalog struct {
	Resources []Link `json:"resources"`
	Blogs     []Link `json:"blogs"`
}

// All returns resources followed by blogs.
func (c Catalog) All() []Link {
	all := make([]Link, 0, len(c.Resources)+len(c.Blogs))
	all = append(all, c.Resources...)
	return append(all, c.Blogs...)
}

// Category classifies a topic.
type Category string

const (
	CategoryCompliance          Category = "hipaa-compliance"
	CategoryRegulation          Category = "ai-regulation"
	CategoryAIDomain            Category = "ai-healthcare"
	CategoryTech                Category = "healthcare-tech"
	CategorySoftware            Category = "software-development"
	CategorySoftwareDevelopment Category = "healthcare-software-development"
)

// Topic is a scored candidate subject for a post.
type Topic struct {
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Keywords      []string   `json:"keywords"`
	Source        string     `json:"source"`
	Relevance     float64    `json:"relevanceScore"` // 0..10
	Category      Category   `json:"category"`
	TrendingLevel string     `json:"trendingLevel,omitempty"` // Set on model-suggested topics
	GeneratedAt   *time.Time `json:"generatedAt,omitempty"`
}

// Tone is the voice requested for a post.
type Tone string

const (
	ToneProfessional Tone = "professional"
	ToneCasual       Tone = "casual"
	ToneTechnical    Tone = "technical"
	ToneExecutive    Tone = "executive"
)

// Valid reports whether t is one of the supported tones.
func (t Tone) Valid() bool {
	switch t {
	case ToneProfessional, ToneCasual, ToneTechnical, ToneExecutive:
		return true
	}
	return false
}

const (
	DefaultTargetWordCount = 1200
	MinTargetWordCount     = 100
	MaxTargetWordCount     = 5000
)

// DefaultKeywords is used in prompts when a request carries none.
var DefaultKeywords = []string{"healthcare technology", "AI", "compliance"}

// GenerationRequest describes the post to generate.
type GenerationRequest struct {
	Topic                 string   `json:"topic"`
	Keywords              []string `json:"keywords,omitempty"`
	TargetWordCount       int      `json:"targetWordCount,omitempty"` // 0 means DefaultTargetWordCount
	Tone                  Tone     `json:"tone,omitempty"`
	IncludeRegulatoryInfo bool     `json:"includeRegulatoryInfo,omitempty"`
	SelectedLinks         []string `json:"selectedLinks,omitempty"` // URLs chosen by the caller
}

// Validate rejects requests that must never reach the model.
func (r GenerationRequest) Validate() error {
	if r.Topic == "" {
		return apperr.NewValidationError("topic", "topic is required")
	}
	if r.TargetWordCount != 0 && (r.TargetWordCount < MinTargetWordCount || r.TargetWordCount > MaxTargetWordCount) {
		return apperr.NewValidationError("targetWordCount",
			fmt.Sprintf("must be between %d and %d, got %d", MinTargetWordCount, MaxTargetWordCount, r.TargetWordCount))
	}
	if r.Tone != "" && !r.Tone.Valid() {
		return apperr.NewValidationError("tone", fmt.Sprintf("unsupported tone %q", r.Tone))
	}
	return nil
}

// Normalize fills defaults for optional fields.
func (r GenerationRequest) Normalize() GenerationRequest {
	if r.TargetWordCount == 0 {
		r.TargetWordCount = DefaultTargetWordCount
	}
	if r.Tone == "" {
		r.Tone = ToneProfessional
	}
	return r
}

// PostStatus is the lifecycle state of a post.
type PostStatus string

const (
	StatusDraft     PostStatus = "draft"
	StatusPublished PostStatus = "published"
	StatusArchived  PostStatus = "archived"
)

// GeneratedPost is a finished blog post plus its rendered artifacts.
type GeneratedPost struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Summary     string     `json:"summary"`
	Content     string     `json:"content"` // HTML, resources section included
	Topic       string     `json:"topic"`
	Keywords    []string   `json:"keywords"`
	WordCount   int        `json:"wordCount"`
	ReadingTime int        `json:"readingTime"` // Minutes
	Status      PostStatus `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`

	DOCX []byte `json:"-"` // Filled on first render
	HTML []byte `json:"-"`
}

var slugRegex = regexp.MustCompile(`[^a-z0-9]+`)

// Slug turns a title into a file name stem: lowercase, with every run of
// other characters replaced by one underscore. Leading and trailing
// underscores are trimmed, so "Hello!" gives "hello" rather than "hello_".
func Slug(title string) string {
	s := strings.Trim(slugRegex.ReplaceAllString(strings.ToLower(title), "_"), "_")
	if s == "" {
		return "post"
	}
	return s
}

// GenerationResult is the outcome of a generation attempt.
type GenerationResult struct {
	Success        bool           `json:"success"`
	BlogPost       *GeneratedPost `json:"blogPost,omitempty"`
	Error          string         `json:"error,omitempty"`
	GenerationTime int64          `json:"generationTime"` // Milliseconds
	SavedTo        string         `json:"savedTo,omitempty"`
}

// Failed builds an unsuccessful result.
func Failed(msg string, elapsed time.Duration) *GenerationResult {
	return &GenerationResult{Error: msg, GenerationTime: elapsed.Milliseconds()}
}
