package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"
	"sync"
	"time"

	"autoblog/internal/core"
	"autoblog/internal/render"
)

const (
	ContentTypeDOCX = render.DOCXContentType
	ContentTypeHTML = render.HTMLContentType
)

// Attachment is a file sent with a message.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Message is one outbound email with an HTML body.
type Message struct {
	From        string
	To          []string
	Subject     string
	HTML        string
	Attachments []Attachment
}

// Mailer delivers messages.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// RecordingMailer keeps every message instead of sending it.
type RecordingMailer struct {
	Err error

	mu   sync.Mutex
	sent []Message
}

func (r *RecordingMailer) Send(_ context.Context, msg Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.sent = append(r.sent, msg)
	return nil
}

// Sent returns the delivered messages in order.
func (r *RecordingMailer) Sent() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Message(nil), r.sent...)
}

// Theme controls the colors of both email layouts.
type Theme struct {
	Name        string
	FontFamily  string
	TextColor   string
	HeaderBg    string
	StatsBg     string
	BorderColor string
	AccentColor string
	MutedColor  string
}

// DefaultTheme mirrors the look of the published blog.
func DefaultTheme() Theme {
	return Theme{
		Name:        "default",
		FontFamily:  "Arial, sans-serif",
		TextColor:   "#333",
		HeaderBg:    "#f8f9fa",
		StatsBg:     "#e9ecef",
		BorderColor: "#ddd",
		AccentColor: "#007bff",
		MutedColor:  "#666",
	}
}

func themeCSS(t Theme) template.CSS {
	return template.CSS(fmt.Sprintf(`
    body { font-family: %s; line-height: 1.6; color: %s; }
    .header { background: %s; padding: 20px; border-radius: 8px; margin-bottom: 20px; }
    .content { background: white; padding: 20px; border: 1px solid %s; border-radius: 8px; }
    .stats { background: %s; padding: 15px; border-radius: 5px; margin: 15px 0; }
    .post-card { border: 1px solid %s; padding: 15px; margin: 15px 0; border-radius: 5px; }
    .keywords { color: %s; font-weight: bold; }
    .footer { margin-top: 30px; padding-top: 20px; border-top: 1px solid %s; color: %s; }`,
		t.FontFamily, t.TextColor, t.HeaderBg, t.BorderColor, t.StatsBg,
		t.BorderColor, t.AccentColor, t.BorderColor, t.MutedColor))
}

const postTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <style>{{.CSS}}</style>
</head>
<body>
  <div class="header">
    <h1>🤖 AutoBlog AI - New Blog Post Generated</h1>
    <p>A new blog post has been automatically generated and is ready for review.</p>
  </div>

  <div class="content">
    <h2>{{.Post.Title}}</h2>
    <p><strong>Summary:</strong> {{.Post.Summary}}</p>

    <div class="stats">
      <p><strong>📊 Statistics:</strong></p>
      <ul>
        <li>Word Count: {{.Post.WordCount}}</li>
        <li>Reading Time: {{.Post.ReadingTime}} minutes</li>
        <li>Topic: {{.Post.Topic}}</li>
        <li>Keywords: <span class="keywords">{{join .Post.Keywords}}</span></li>
      </ul>
    </div>

    <h3>📄 Blog Content:</h3>
    <div>{{.Body}}</div>
  </div>

  <div class="footer">
    <p><strong>Generated by AutoBlog AI</strong></p>
    <p>Generated on: {{.Date}}</p>
    <p>Please review and publish this content as appropriate.</p>
    <p>Both DOCX and HTML versions are attached for easy editing and web publishing.</p>
  </div>
</body>
</html>
`

const digestTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <style>{{.CSS}}</style>
</head>
<body>
  <div class="header">
    <h1>🤖 AutoBlog AI - Weekly Blog Digest</h1>
    <p>This week's automatically generated blog posts are ready for review.</p>
  </div>

  <div class="content">
    <h2>📝 Generated Blog Posts ({{len .Posts}})</h2>
    {{range $i, $p := .Posts}}
    <div class="post-card">
      <h3>{{inc $i}}. {{$p.Title}}</h3>
      <p><strong>Summary:</strong> {{$p.Summary}}</p>
      <p><strong>Topic:</strong> {{$p.Topic}}</p>
      <p><strong>Keywords:</strong> <span class="keywords">{{join $p.Keywords}}</span></p>
      <p><strong>Stats:</strong> {{$p.WordCount}} words, {{$p.ReadingTime}} min read</p>
    </div>
    {{end}}
  </div>

  <div class="footer">
    <p><strong>Generated by AutoBlog AI</strong></p>
    <p>Generated on: {{.Date}}</p>
    <p>Please review and publish these posts as appropriate.</p>
    <p>Each blog post is attached as both DOCX and HTML files for easy editing and web publishing.</p>
  </div>
</body>
</html>
`

var funcs = template.FuncMap{
	"join": func(s []string) string { return strings.Join(s, ", ") },
	"inc":  func(i int) int { return i + 1 },
}

var (
	postTmpl   = template.Must(template.New("post").Funcs(funcs).Parse(postTemplate))
	digestTmpl = template.Must(template.New("digest").Funcs(funcs).Parse(digestTemplate))
)

const dateLayout = "1/2/2006"

// PostSubject is the subject line for a single post notification.
func PostSubject(post *core.GeneratedPost) string {
	return "📝 New Blog Post: " + post.Title
}

// DigestSubject is the subject line for the weekly digest.
func DigestSubject(n int) string {
	return fmt.Sprintf("📊 AutoBlog AI - Weekly Blog Digest (%d Posts)", n)
}

// RenderPost renders the single post notification. The post body is
// embedded as HTML.
func RenderPost(post *core.GeneratedPost, theme Theme) (string, error) {
	data := struct {
		CSS  template.CSS
		Post *core.GeneratedPost
		Body template.HTML
		Date string
	}{
		CSS:  themeCSS(theme),
		Post: post,
		Body: template.HTML(post.Content),
		Date: post.CreatedAt.Format(dateLayout),
	}

	var buf bytes.Buffer
	if err := postTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute post email template: %w", err)
	}
	return buf.String(), nil
}

// RenderDigest renders the weekly digest listing.
func RenderDigest(posts []*core.GeneratedPost, theme Theme, at time.Time) (string, error) {
	data := struct {
		CSS   template.CSS
		Posts []*core.GeneratedPost
		Date  string
	}{
		CSS:   themeCSS(theme),
		Posts: posts,
		Date:  at.Format(dateLayout),
	}

	var buf bytes.Buffer
	if err := digestTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute digest email template: %w", err)
	}
	return buf.String(), nil
}

// Attachments returns the DOCX and HTML files for post, skipping any
// artifact that was not rendered.
func Attachments(post *core.GeneratedPost) []Attachment {
	slug := core.Slug(post.Title)
	var out []Attachment
	if len(post.DOCX) > 0 {
		out = append(out, Attachment{Filename: slug + ".docx", ContentType: ContentTypeDOCX, Data: post.DOCX})
	}
	if len(post.HTML) > 0 {
		out = append(out, Attachment{Filename: slug + ".html", ContentType: ContentTypeHTML, Data: post.HTML})
	}
	return out
}
