package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"autoblog/internal/core"
)

// Content types of the rendered artifacts.
const (
	DOCXContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	HTMLContentType = "text/html"
)

const htmlShell = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    <style>
        body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; line-height: 1.6; color: #333; max-width: 800px; margin: 0 auto; padding: 20px; background-color: #f9f9f9; }
        .container { background-color: white; padding: 40px; border-radius: 8px; box-shadow: 0 2px 10px rgba(0,0,0,0.1); }
        h1 { color: #2c3e50; text-align: center; border-bottom: 3px solid #3498db; padding-bottom: 10px; margin-bottom: 30px; }
        h2 { color: #34495e; margin-top: 30px; margin-bottom: 15px; border-left: 4px solid #3498db; padding-left: 15px; }
        h3 { color: #2c3e50; margin-top: 25px; margin-bottom: 10px; }
        p { margin-bottom: 15px; text-align: justify; }
        ul { margin-bottom: 15px; padding-left: 20px; }
        li { margin-bottom: 8px; }
        strong { color: #2c3e50; }
        a { color: #3498db; text-decoration: none; }
        a:hover { text-decoration: underline; }
        .metadata { background-color: #ecf0f1; padding: 15px; border-radius: 5px; margin: 20px 0; font-size: 14px; }
        .keywords { color: #3498db; font-weight: bold; }
        code { background-color: #f8f9fa; padding: 2px 4px; border-radius: 3px; font-family: 'Courier New', monospace; }
        pre { background-color: #f8f9fa; padding: 15px; border-radius: 5px; overflow-x: auto; border-left: 4px solid #3498db; }
        .footer { margin-top: 40px; padding-top: 20px; border-top: 1px solid #ddd; text-align: center; color: #666; font-size: 14px; }
    </style>
</head>
<body>
    <div class="container">
        <h1>{{.Title}}</h1>

        <div class="metadata">
            <p><strong>Summary:</strong> {{.Summary}}</p>
            <p><strong>Topic:</strong> {{.Topic}}</p>
            <p><strong>Keywords:</strong> <span class="keywords">{{.Keywords}}</span></p>
            <p><strong>Word Count:</strong> {{.WordCount}} | <strong>Reading Time:</strong> {{.ReadingTime}} minutes</p>
        </div>

        {{.Content}}

        <div class="footer">
            <p>Generated by AutoBlog AI on {{.Date}}</p>
        </div>
    </div>
</body>
</html>
`

var htmlTemplate = template.Must(template.New("post").Parse(htmlShell))

type htmlData struct {
	Title       string
	Summary     string
	Topic       string
	Keywords    string
	WordCount   int
	ReadingTime int
	Content     template.HTML
	Date        string
}

// ToHTML wraps the post body in a standalone styled page. The body is
// inserted as is; it was sanitized when the post was parsed.
func ToHTML(post *core.GeneratedPost) ([]byte, error) {
	data := htmlData{
		Title:       orDefault(post.Title, "Blog Post"),
		Summary:     orDefault(post.Summary, "Blog summary"),
		Topic:       orDefault(post.Topic, "Blog topic"),
		Keywords:    strings.Join(post.Keywords, ", "),
		WordCount:   post.WordCount,
		ReadingTime: post.ReadingTime,
		Content:     template.HTML(orDefault(post.Content, "<p>No content available</p>")),
		Date:        post.CreatedAt.Format("1/2/2006"),
	}
	if data.ReadingTime == 0 && data.WordCount > 0 {
		data.ReadingTime = 1
	}

	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render HTML document: %w", err)
	}
	return buf.Bytes(), nil
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
