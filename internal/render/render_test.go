package render

import (
	"archive/zip"
	"bytes"
	"io"
	"regexp"
	"strings"
	"testing"
	"time"

	"autoblog/internal/core"
)

const sampleContent = `<h1>Securing FHIR APIs</h1>
<p class="intro">Healthcare teams ship <strong>FHIR</strong> endpoints every week.</p>
<h2>The Problem</h2>
<p>Tokens leak &amp; audits fail.</p>
<h3>Why it matters</h3>
<ul>
<li>Breach <strong>fines</strong> grow</li>
<li>Patients lose trust</li>
</ul>
<p><a href="https://example.com/x">Read more</a> about it.</p>`

func samplePost() *core.GeneratedPost {
	return &core.GeneratedPost{
		ID:          "p1",
		Title:       "Securing FHIR APIs",
		Summary:     "How to lock down FHIR.",
		Content:     sampleContent,
		Topic:       "FHIR security",
		Keywords:    []string{"fhir", "hipaa"},
		WordCount:   30,
		ReadingTime: 1,
		Status:      core.StatusDraft,
		CreatedAt:   time.Date(2025, 3, 5, 10, 0, 0, 0, time.UTC),
	}
}

func TestSegment(t *testing.T) {
	elements := Segment(sampleContent)

	want := []ElementKind{ElementParagraph, ElementH2, ElementParagraph, ElementH3, ElementList, ElementParagraph}
	if len(elements) != len(want) {
		t.Fatalf("Expected %d elements, got %d: %+v", len(want), len(elements), elements)
	}
	for i, kind := range want {
		if elements[i].Kind != kind {
			t.Errorf("Element %d: expected %s, got %s", i, kind, elements[i].Kind)
		}
	}
	if elements[1].HTML != "The Problem" {
		t.Errorf("Unexpected h2 inner HTML %q", elements[1].HTML)
	}
	if len(elements[4].Items) != 2 || elements[4].Items[1] != "Patients lose trust" {
		t.Errorf("Unexpected list items %v", elements[4].Items)
	}
}

func TestRuns(t *testing.T) {
	runs := Runs("  Ship <strong>secure</strong>   APIs &amp; <em>audit</em> them ")
	want := []Run{
		{Text: "Ship "},
		{Text: "secure", Bold: true},
		{Text: " APIs & audit them"},
	}
	if len(runs) != len(want) {
		t.Fatalf("Expected %d runs, got %+v", len(want), runs)
	}
	for i := range want {
		if runs[i] != want[i] {
			t.Errorf("Run %d: expected %+v, got %+v", i, want[i], runs[i])
		}
	}

	if got := Runs("   "); got != nil {
		t.Errorf("Expected no runs for blank input, got %+v", got)
	}
}

func TestPlainTextEntities(t *testing.T) {
	got := PlainText("a&nbsp;b &lt;tag&gt; &quot;q&quot; it&#39;s &#34;x&#34; <b>bold</b>")
	if got != `a b <tag> "q" it's "x" bold` {
		t.Errorf("Unexpected decoded text %q", got)
	}
}

func TestBuildDocument(t *testing.T) {
	doc := BuildDocument(samplePost())

	title := doc.Paragraphs[0]
	if title.Level != 1 || title.Runs[0].Text != "Securing FHIR APIs" {
		t.Errorf("Unexpected title paragraph %+v", title)
	}
	if doc.Paragraphs[3].Runs[0].Text != "Keywords: fhir, hipaa" {
		t.Errorf("Unexpected keywords line %+v", doc.Paragraphs[3])
	}

	var bullets int
	var boldFines bool
	for i, p := range doc.Paragraphs {
		if p.Bullet {
			bullets++
			for _, r := range p.Runs {
				if r.Text == "fines" && r.Bold {
					boldFines = true
				}
			}
		}
		if p.Level == 1 && i > 0 {
			t.Error("Content <h1> should not be rendered twice")
		}
	}
	if bullets != 2 {
		t.Errorf("Expected 2 bullet paragraphs, got %d", bullets)
	}
	if !boldFines {
		t.Error("Expected <strong> inside a list item to stay bold")
	}
	if !strings.Contains(doc.Text(), "• Patients lose trust\n") {
		t.Errorf("Expected bullet line in text, got %q", doc.Text())
	}
}

func TestDocumentWordCountRoundTrip(t *testing.T) {
	post := samplePost()
	doc := BuildDocument(post)

	var docWords int
	for _, p := range doc.Paragraphs[4:] {
		for _, w := range strings.Fields(textOf(p)) {
			if w != "•" {
				docWords++
			}
		}
	}

	var htmlWords int
	for _, el := range Segment(post.Content) {
		fragments := append([]string{el.HTML}, el.Items...)
		for _, f := range fragments {
			htmlWords += len(strings.Fields(PlainText(f)))
		}
	}

	if docWords != htmlWords {
		t.Errorf("Word count drifted: document %d, content %d", docWords, htmlWords)
	}
}

func textOf(p Paragraph) string {
	var b strings.Builder
	for _, r := range p.Runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

var boldRunRegex = regexp.MustCompile(`<w:b(\s|/)`)

func TestToDOCX(t *testing.T) {
	data, err := ToDOCX(samplePost())
	if err != nil {
		t.Fatalf("ToDOCX failed: %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("DOCX is not a zip: %v", err)
	}
	files := map[string]string{}
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("Failed to open %s: %v", f.Name, err)
		}
		body, _ := io.ReadAll(rc)
		rc.Close()
		files[f.Name] = string(body)
	}

	for _, name := range []string{"[Content_Types].xml", "word/document.xml"} {
		if _, ok := files[name]; !ok {
			t.Errorf("Missing part %s", name)
		}
	}
	document := files["word/document.xml"]
	for _, want := range []string{"Securing FHIR APIs", "Keywords: fhir, hipaa", "Tokens leak &amp; audits fail.", "Patients lose trust"} {
		if !strings.Contains(document, want) {
			t.Errorf("Expected %q in document.xml", want)
		}
	}
	if strings.Contains(document, "<h2>") || strings.Contains(document, "&lt;strong") {
		t.Error("HTML markup leaked into the document")
	}
	if !boldRunRegex.MatchString(document) {
		t.Error("Expected a bold run for <strong> text")
	}
}

func TestToHTML(t *testing.T) {
	post := samplePost()
	post.Title = "FHIR <Security>"

	page, err := ToHTML(post)
	if err != nil {
		t.Fatalf("ToHTML failed: %v", err)
	}
	out := string(page)

	if !strings.Contains(out, "<title>FHIR &lt;Security&gt;</title>") {
		t.Error("Title should be escaped")
	}
	if !strings.Contains(out, sampleContent) {
		t.Error("Content should be embedded verbatim")
	}
	if !strings.Contains(out, "<h2>The Problem</h2>") {
		t.Error("Body HTML should be embedded unescaped")
	}
	if !strings.Contains(out, "Generated by AutoBlog AI on 3/5/2025") {
		t.Error("Expected footer with creation date")
	}
	if !strings.Contains(out, `<span class="keywords">fhir, hipaa</span>`) {
		t.Error("Expected keywords in metadata block")
	}
}

func TestToHTMLEmptyContent(t *testing.T) {
	post := samplePost()
	post.Content = ""

	page, err := ToHTML(post)
	if err != nil {
		t.Fatalf("ToHTML failed: %v", err)
	}
	if !strings.Contains(string(page), "<p>No content available</p>") {
		t.Error("Expected placeholder for empty content")
	}
}

func TestToMarkdown(t *testing.T) {
	out, err := ToMarkdown(samplePost())
	if err != nil {
		t.Fatalf("ToMarkdown failed: %v", err)
	}
	for _, want := range []string{"# Securing FHIR APIs", "## The Problem", "**FHIR**", "[Read more](https://example.com/x)"} {
		if !strings.Contains(out, want) {
			t.Errorf("Markdown missing %q:\n%s", want, out)
		}
	}
	if strings.Count(out, "# Securing FHIR APIs") != 1 {
		t.Error("Title should appear once")
	}
}

func TestEnsureCachesArtifacts(t *testing.T) {
	post := samplePost()
	if err := Ensure(post); err != nil {
		t.Fatalf("Ensure failed: %v", err)
	}
	if len(post.DOCX) == 0 || len(post.HTML) == 0 {
		t.Fatal("Expected both artifacts to be filled")
	}

	docx := post.DOCX
	post.Content = "<p>changed</p>"
	if err := Ensure(post); err != nil {
		t.Fatalf("Ensure failed: %v", err)
	}
	if &post.DOCX[0] != &docx[0] {
		t.Error("Expected cached DOCX to be reused")
	}
}
