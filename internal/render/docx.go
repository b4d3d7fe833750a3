package render

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"autoblog/internal/core"

	"github.com/gomutex/godocx"
)

// ElementKind is a top level block recognised in post HTML.
type ElementKind string

const (
	ElementH2        ElementKind = "h2"
	ElementH3        ElementKind = "h3"
	ElementParagraph ElementKind = "p"
	ElementList      ElementKind = "ul"
)

// Element is one block of post HTML. HTML holds the inner markup for
// headings and paragraphs; Items holds the inner markup of each <li>.
type Element struct {
	Kind  ElementKind
	HTML  string
	Items []string
}

// Run is a span of text with uniform formatting.
type Run struct {
	Text string
	Bold bool
}

var (
	titleRegex   = regexp.MustCompile(`(?is)<h1[^>]*>.*?</h1>`)
	elementRegex = regexp.MustCompile(`(?is)<h2[^>]*>(.*?)</h2>|<h3[^>]*>(.*?)</h3>|<p(?:\s[^>]*)?>(.*?)</p>|<ul(?:\s[^>]*)?>(.*?)</ul>`)
	itemRegex    = regexp.MustCompile(`(?is)<li[^>]*>(.*?)</li>`)
	strongRegex  = regexp.MustCompile(`(?is)<strong[^>]*>(.*?)</strong>`)
	anyTagRegex  = regexp.MustCompile(`<[^>]*>`)
	spaceRegex   = regexp.MustCompile(`\s+`)

	entities = strings.NewReplacer(
		"&nbsp;", " ",
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&#34;", `"`,
		"&#39;", "'",
	)
)

func stripTitle(content string) string {
	loc := titleRegex.FindStringIndex(content)
	if loc == nil {
		return content
	}
	return content[:loc[0]] + content[loc[1]:]
}

// Segment splits body HTML into top level h2, h3, p and ul blocks, dropping
// the first <h1>. Nesting is not understood: the first closing tag of a kind
// ends the block.
func Segment(content string) []Element {
	body := stripTitle(content)
	var out []Element
	for _, m := range elementRegex.FindAllStringSubmatchIndex(body, -1) {
		group := func(i int) (string, bool) {
			if m[2*i] < 0 {
				return "", false
			}
			return body[m[2*i]:m[2*i+1]], true
		}
		if inner, ok := group(1); ok {
			out = append(out, Element{Kind: ElementH2, HTML: inner})
		} else if inner, ok := group(2); ok {
			out = append(out, Element{Kind: ElementH3, HTML: inner})
		} else if inner, ok := group(3); ok {
			out = append(out, Element{Kind: ElementParagraph, HTML: inner})
		} else if inner, ok := group(4); ok {
			var items []string
			for _, li := range itemRegex.FindAllStringSubmatch(inner, -1) {
				items = append(items, li[1])
			}
			out = append(out, Element{Kind: ElementList, Items: items})
		}
	}
	return out
}

// PlainText strips tags, decodes entities and collapses whitespace.
func PlainText(fragment string) string {
	return strings.TrimSpace(spaceRegex.ReplaceAllString(decode(fragment), " "))
}

func decode(fragment string) string {
	return entities.Replace(anyTagRegex.ReplaceAllString(fragment, ""))
}

// Runs splits fragment on <strong> spans. Other tags are stripped and
// whitespace collapsed, keeping the spaces that separate runs.
func Runs(fragment string) []Run {
	var runs []Run
	add := func(s string, bold bool) {
		s = spaceRegex.ReplaceAllString(decode(s), " ")
		if s == "" {
			return
		}
		runs = append(runs, Run{Text: s, Bold: bold})
	}

	last := 0
	for _, loc := range strongRegex.FindAllStringSubmatchIndex(fragment, -1) {
		add(fragment[last:loc[0]], false)
		add(fragment[loc[2]:loc[3]], true)
		last = loc[1]
	}
	add(fragment[last:], false)

	if len(runs) == 0 {
		return nil
	}
	runs[0].Text = strings.TrimLeft(runs[0].Text, " ")
	runs[len(runs)-1].Text = strings.TrimRight(runs[len(runs)-1].Text, " ")

	out := runs[:0]
	for _, r := range runs {
		if r.Text != "" {
			out = append(out, r)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Paragraph is one document paragraph. Level 1-3 makes it a heading;
// headings carry a single plain run.
type Paragraph struct {
	Level  int
	Bullet bool
	Runs   []Run
}

// Document is the paragraph model written to DOCX.
type Document struct {
	Paragraphs []Paragraph
}

// Text joins every paragraph's runs, one paragraph per line.
func (d *Document) Text() string {
	var b strings.Builder
	for _, p := range d.Paragraphs {
		if p.Bullet {
			b.WriteString("• ")
		}
		for _, r := range p.Runs {
			b.WriteString(r.Text)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// BuildDocument lays out the title, the metadata lines and the body.
func BuildDocument(post *core.GeneratedPost) *Document {
	text := func(s string) []Run { return []Run{{Text: s}} }

	doc := &Document{}
	doc.Paragraphs = append(doc.Paragraphs,
		Paragraph{Level: 1, Runs: text(post.Title)},
		Paragraph{Runs: text("Summary: " + post.Summary)},
		Paragraph{Runs: text("Topic: " + post.Topic)},
		Paragraph{Runs: text("Keywords: " + strings.Join(post.Keywords, ", "))},
	)

	for _, el := range Segment(post.Content) {
		switch el.Kind {
		case ElementH2:
			doc.Paragraphs = append(doc.Paragraphs, Paragraph{Level: 2, Runs: text(PlainText(el.HTML))})
		case ElementH3:
			doc.Paragraphs = append(doc.Paragraphs, Paragraph{Level: 3, Runs: text(PlainText(el.HTML))})
		case ElementParagraph:
			runs := Runs(el.HTML)
			if len(runs) == 0 {
				continue
			}
			doc.Paragraphs = append(doc.Paragraphs, Paragraph{Runs: runs})
		case ElementList:
			for _, item := range el.Items {
				doc.Paragraphs = append(doc.Paragraphs, Paragraph{Bullet: true, Runs: Runs(item)})
			}
		}
	}
	return doc
}

// ToDOCX renders post as an Office Open XML document.
func ToDOCX(post *core.GeneratedPost) ([]byte, error) {
	return BuildDocument(post).Bytes()
}

// Bytes writes the document through godocx and returns the package.
func (d *Document) Bytes() ([]byte, error) {
	out, err := godocx.NewDocument()
	if err != nil {
		return nil, fmt.Errorf("failed to create DOCX document: %w", err)
	}

	for _, p := range d.Paragraphs {
		if p.Level > 0 {
			if _, err := out.AddHeading(plain(p.Runs), uint(p.Level)); err != nil {
				return nil, fmt.Errorf("failed to add heading: %w", err)
			}
			continue
		}
		para := out.AddParagraph("")
		if p.Bullet {
			para.Style("List Bullet")
		}
		for _, r := range p.Runs {
			run := para.AddText(r.Text)
			if r.Bold {
				run.Bold(true)
			}
		}
	}

	// godocx saves to a path, so the package goes through a temp file.
	tmp, err := os.CreateTemp("", "autoblog-*.docx")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	path := tmp.Name()
	tmp.Close()
	defer os.Remove(path)

	if err := out.SaveTo(path); err != nil {
		return nil, fmt.Errorf("failed to write DOCX package: %w", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read DOCX package: %w", err)
	}
	return data, nil
}

func plain(runs []Run) string {
	var b strings.Builder
	for _, r := range runs {
		b.WriteString(r.Text)
	}
	return b.String()
}
