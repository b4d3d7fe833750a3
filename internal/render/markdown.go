package render

import (
	"fmt"
	"strings"

	"autoblog/internal/core"

	md "github.com/JohannesKaufmann/html-to-markdown"
)

var converter = md.NewConverter("", true, nil)

// ToMarkdown renders post as Markdown with a short metadata header.
func ToMarkdown(post *core.GeneratedPost) (string, error) {
	body, err := converter.ConvertString(stripTitle(post.Content))
	if err != nil {
		return "", fmt.Errorf("failed to convert post to markdown: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", post.Title)
	if post.Summary != "" {
		fmt.Fprintf(&b, "> %s\n\n", post.Summary)
	}
	fmt.Fprintf(&b, "**Topic:** %s  \n", post.Topic)
	if len(post.Keywords) > 0 {
		fmt.Fprintf(&b, "**Keywords:** %s  \n", strings.Join(post.Keywords, ", "))
	}
	fmt.Fprintf(&b, "**Reading time:** %d min\n\n---\n\n", post.ReadingTime)
	b.WriteString(strings.TrimSpace(body))
	b.WriteString("\n")
	return b.String(), nil
}

// Ensure renders the DOCX and HTML artifacts once and caches them on post.
func Ensure(post *core.GeneratedPost) error {
	if post.DOCX == nil {
		docx, err := ToDOCX(post)
		if err != nil {
			return err
		}
		post.DOCX = docx
	}
	if post.HTML == nil {
		page, err := ToHTML(post)
		if err != nil {
			return err
		}
		post.HTML = page
	}
	return nil
}
