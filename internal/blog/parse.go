package blog

import (
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"regexp"
	"strings"
	"time"

	"autoblog/internal/apperr"
	"autoblog/internal/core"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

const defaultSummary = "Generated blog post summary"

var (
	fenceRegex     = regexp.MustCompile("(?m)^\\s*```[a-zA-Z]*\\s*$")
	htmlTagRegex   = regexp.MustCompile(`<[a-zA-Z][^>]*>`)
	resourcesRegex = regexp.MustCompile(`(?is)<h[1-6][^>]*>\s*Additional Resources.*$`)

	policy = newPolicy()
)

func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.RequireNoFollowOnLinks(false)
	return p
}

// rawPost is the model's JSON reply. Keywords may arrive as a list or a
// comma separated string.
type rawPost struct {
	Title    string          `json:"title"`
	Summary  string          `json:"summary"`
	Content  string          `json:"content"`
	Topic    string          `json:"topic"`
	Keywords json.RawMessage `json:"keywords"`
}

// ParseResponse turns a model reply into a post. It tolerates code fences,
// prose around the object, raw newlines inside strings and Markdown bodies.
// The resources section for links is appended to the content.
func ParseResponse(raw string, req core.GenerationRequest, links []core.Link) (*core.GeneratedPost, error) {
	obj, err := extractObject(raw)
	if err != nil {
		return nil, err
	}

	var rp rawPost
	if err := json.Unmarshal([]byte(obj), &rp); err != nil {
		if err2 := json.Unmarshal([]byte(escapeControlChars(obj)), &rp); err2 != nil {
			return nil, apperr.NewParse("invalid JSON in model response", err)
		}
	}

	rp.Title = strings.TrimSpace(rp.Title)
	if rp.Title == "" || strings.TrimSpace(rp.Content) == "" {
		return nil, apperr.NewParse("model response missing title or content", nil)
	}

	content, err := repairContent(rp.Content)
	if err != nil {
		return nil, err
	}
	content += ResourcesSection(links)

	post := &core.GeneratedPost{
		ID:        uuid.NewString(),
		Title:     rp.Title,
		Summary:   firstNonEmpty(strings.TrimSpace(rp.Summary), defaultSummary),
		Content:   content,
		Topic:     firstNonEmpty(strings.TrimSpace(rp.Topic), req.Topic),
		Keywords:  parseKeywords(rp.Keywords, req.Keywords),
		Status:    core.StatusDraft,
		CreatedAt: time.Now().UTC(),
	}
	post.WordCount = WordCount(post.Content)
	post.ReadingTime = ReadingMinutes(post.WordCount)
	return post, nil
}

// FallbackPost is the placeholder used when a reply cannot be parsed.
func FallbackPost(req core.GenerationRequest) *core.GeneratedPost {
	keywords := req.Keywords
	if keywords == nil {
		keywords = []string{}
	}
	topic := html.EscapeString(req.Topic)
	return &core.GeneratedPost{
		ID:          uuid.NewString(),
		Title:       "Blog Post: " + req.Topic,
		Summary:     "Generated blog post about healthcare technology and compliance.",
		Content:     fmt.Sprintf("<h1>%s</h1><p>This is a generated blog post about %s.</p>", topic, strings.ToLower(topic)),
		Topic:       req.Topic,
		Keywords:    keywords,
		WordCount:   100,
		ReadingTime: 1,
		Status:      core.StatusDraft,
		CreatedAt:   time.Now().UTC(),
	}
}

// ParseOrFallback returns the parsed post, or FallbackPost with the parse
// error when the reply is unusable.
func ParseOrFallback(raw string, req core.GenerationRequest, links []core.Link) (*core.GeneratedPost, error) {
	post, err := ParseResponse(raw, req, links)
	if err != nil {
		return FallbackPost(req), err
	}
	return post, nil
}

// extractObject strips code fences and returns the first balanced JSON
// object, honoring braces inside string literals.
func extractObject(raw string) (string, error) {
	s := fenceRegex.ReplaceAllString(raw, "")
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", apperr.NewParse("no JSON object in model response", nil)
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], nil
			}
		}
	}
	return "", apperr.NewParse("unterminated JSON object in model response", nil)
}

// escapeControlChars escapes raw newlines and tabs that appear inside string
// literals, which models frequently emit.
func escapeControlChars(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inString := false
	escaped := false
	for _, r := range s {
		if inString {
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == '"':
				inString = false
			case r == '\n':
				b.WriteString(`\n`)
				continue
			case r == '\r':
				continue
			case r == '\t':
				b.WriteString(`\t`)
				continue
			}
		} else if r == '"' {
			inString = true
		}
		b.WriteRune(r)
	}
	return b.String()
}

// repairContent converts Markdown bodies to HTML, drops any resources
// section the model wrote anyway and sanitizes the result.
func repairContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if !htmlTagRegex.MatchString(content) {
		var buf strings.Builder
		if err := goldmark.Convert([]byte(content), &buf); err != nil {
			return "", apperr.NewParse("failed to convert markdown content", err)
		}
		content = strings.TrimSpace(buf.String())
	}

	if loc := resourcesRegex.FindStringIndex(content); loc != nil {
		content = strings.TrimSpace(content[:loc[0]])
	}

	content = strings.TrimSpace(policy.Sanitize(content))
	if content == "" {
		return "", apperr.NewParse("content empty after sanitizing", nil)
	}
	return content, nil
}

func parseKeywords(raw json.RawMessage, fallback []string) []string {
	if len(raw) > 0 {
		var list []string
		if err := json.Unmarshal(raw, &list); err == nil && len(list) > 0 {
			return list
		}
		var joined string
		if err := json.Unmarshal(raw, &joined); err == nil && strings.TrimSpace(joined) != "" {
			var out []string
			for _, k := range strings.Split(joined, ",") {
				if k = strings.TrimSpace(k); k != "" {
					out = append(out, k)
				}
			}
			return out
		}
	}
	if fallback != nil {
		return fallback
	}
	return []string{}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// IsParseError reports whether err came from reply parsing.
func IsParseError(err error) bool {
	var pe *apperr.ParseError
	return errors.As(err, &pe)
}
