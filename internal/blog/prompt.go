package blog

import (
	"encoding/json"
	"fmt"
	"strings"

	"autoblog/internal/core"
)

var toneDirectives = map[core.Tone]string{
	core.ToneProfessional: "Use a professional, authoritative tone suited to engineering leaders and product owners.",
	core.ToneCasual:       "Use a friendly, conversational tone while staying accurate.",
	core.ToneTechnical:    "Use a technical tone with concrete implementation detail, patterns and trade-offs.",
	core.ToneExecutive:    "Use a concise executive tone that focuses on business outcomes, cost and risk.",
}

// Keywords echoed in the JSON template when the request has none.
var templateKeywords = []string{"healthcare", "compliance"}

// BuildPrompt renders the generation prompt. req should already be normalized.
func BuildPrompt(req core.GenerationRequest, links []core.Link) string {
	words := req.TargetWordCount
	if words == 0 {
		words = core.DefaultTargetWordCount
	}

	keywords := strings.Join(req.Keywords, ", ")
	if keywords == "" {
		keywords = strings.Join(core.DefaultKeywords, ", ")
	}

	linkRefs := make([]string, 0, len(links))
	for _, l := range links {
		linkRefs = append(linkRefs, fmt.Sprintf("%s (%s)", l.Title, l.URL))
	}

	tone := toneDirectives[req.Tone]
	if tone == "" {
		tone = toneDirectives[core.ToneProfessional]
	}

	regulatory := "Keep regulatory discussion brief and only where it supports the main solution."
	if req.IncludeRegulatoryInfo {
		regulatory = "Include a clear discussion of the relevant regulatory requirements (for example HIPAA, FDA or state privacy laws) and how the solution satisfies them."
	}

	templKeywords := req.Keywords
	if len(templKeywords) == 0 {
		templKeywords = templateKeywords
	}
	kwJSON, _ := json.Marshal(templKeywords)

	var b strings.Builder
	fmt.Fprintf(&b, "Generate a professional software development blog post about: %s\n\n", req.Topic)
	b.WriteString("Write a comprehensive blog post that focuses on a specific software development problem and its solution using AI, modern development techniques, or other technology solutions.\n\n")
	fmt.Fprintf(&b, "CRITICAL WORD COUNT REQUIREMENT: Write EXACTLY %d words. This is a strict requirement. The blog content must be approximately %d words long.\n\n", words, words)
	fmt.Fprintf(&b, "TONE: %s\n", tone)
	fmt.Fprintf(&b, "REGULATORY CONTEXT: %s\n\n", regulatory)

	b.WriteString("Structure the content as follows:\n")
	b.WriteString("1. Start with an <h1> main title\n")
	b.WriteString("2. An engaging introduction of 150-200 words\n")
	b.WriteString("3. 3-4 main <h2> sections:\n")
	b.WriteString("   - The problem (200-300 words)\n")
	b.WriteString("   - Current solutions and their limitations (200-300 words)\n")
	b.WriteString("   - Modern technology solutions (300-400 words)\n")
	b.WriteString("   - Implementation guidance (200-300 words)\n")
	b.WriteString("4. Use <h3> subsections where they help\n")
	b.WriteString("5. Use <ul> and <li> for bullet points\n")
	b.WriteString("6. Use <strong> for key terms\n")
	b.WriteString("7. Weave the internal links naturally into the content\n")
	b.WriteString("8. Finish with a conclusion and call to action of 100-150 words\n")
	b.WriteString("9. An Additional Resources section is appended automatically, do not write one\n\n")

	b.WriteString("IMPORTANT: The content must start with <h1>Main Title</h1> followed by the introduction paragraph.\n\n")

	if len(linkRefs) > 0 {
		fmt.Fprintf(&b, "Available internal links to include: %s\n\n", strings.Join(linkRefs, ", "))
	}
	fmt.Fprintf(&b, "Keywords to include: %s\n\n", keywords)
	fmt.Fprintf(&b, "WORD COUNT TARGET: %d words - ENSURE THE BLOG IS THIS LENGTH!\n\n", words)
	b.WriteString(`IMPORTANT: DO NOT include any "Additional Resources" section in your response. It is added separately.` + "\n\n")

	b.WriteString("Return ONLY a valid JSON object with this exact structure, no explanation before or after it:\n")
	b.WriteString("{\n")
	b.WriteString(`  "title": "Blog post title",` + "\n")
	b.WriteString(`  "summary": "A 2-3 sentence summary",` + "\n")
	b.WriteString(`  "content": "<h1>Main Title</h1><p>Full HTML content</p>",` + "\n")
	fmt.Fprintf(&b, "  %q: %q,\n", "topic", req.Topic)
	fmt.Fprintf(&b, "  \"keywords\": %s,\n", kwJSON)
	b.WriteString(`  "status": "draft",` + "\n")
	b.WriteString(`  "createdAt": "ISO 8601 timestamp"` + "\n")
	b.WriteString("}")
	return b.String()
}
