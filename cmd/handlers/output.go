package handlers

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"autoblog/internal/core"
	"autoblog/internal/render"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(mutedStyle).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

func topicTable(topics []core.Topic) string {
	t := newTable("#", "Topic", "Score", "Category", "Source")
	for i, tp := range topics {
		t.Row(strconv.Itoa(i+1), truncate(tp.Title, 70), fmt.Sprintf("%.1f", tp.Relevance), string(tp.Category), tp.Source)
	}
	return t.String()
}

func linkTable(links []core.Link) string {
	t := newTable("Title", "Category", "URL")
	for _, l := range links {
		t.Row(truncate(l.Title, 50), l.Category, l.URL)
	}
	return t.String()
}

func postTable(posts []*core.GeneratedPost) string {
	t := newTable("Title", "Words", "Created", "ID")
	for _, p := range posts {
		t.Row(truncate(p.Title, 60), strconv.Itoa(p.WordCount), p.CreatedAt.Local().Format("2006-01-02 15:04"), p.ID)
	}
	return t.String()
}

// printPost writes a one-screen summary of a post.
func printPost(w io.Writer, post *core.GeneratedPost) {
	fmt.Fprintln(w, titleStyle.Render(post.Title))
	fmt.Fprintln(w, post.Summary)
	fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("%d words · %d min read · %s",
		post.WordCount, post.ReadingTime, strings.Join(post.Keywords, ", "))))
}

// previewPost renders the post as Markdown in the terminal.
func previewPost(w io.Writer, post *core.GeneratedPost) error {
	md, err := render.ToMarkdown(post)
	if err != nil {
		return err
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		return fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return fmt.Errorf("failed to render preview: %w", err)
	}
	_, err = fmt.Fprint(w, out)
	return err
}

// exportPost writes the post in the format implied by path's extension.
func exportPost(post *core.GeneratedPost, path string) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".docx":
		data, err = render.ToDOCX(post)
	case ".html", ".htm":
		data, err = render.ToHTML(post)
	case ".md", ".markdown":
		var md string
		md, err = render.ToMarkdown(post)
		data = []byte(md)
	case ".json":
		return fmt.Errorf("use --save to write JSON")
	default:
		return fmt.Errorf("unsupported export format %q (use .docx, .html or .md)", filepath.Ext(path))
	}
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", path, err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
