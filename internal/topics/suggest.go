package topics

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"autoblog/internal/apperr"
	"autoblog/internal/core"
	"autoblog/internal/logger"
)

const (
	SourceAIGenerated = "ai-generated"
	SourceAIFallback  = "ai-fallback"
	SourceEmergency   = "emergency-fallback"
)

const suggestPrompt = `Generate 8 trending and current software development blog topics focusing on HIPAA compliance, AI integration, and latest technology trends in healthcare software development. Each topic should address real problems faced by healthcare software developers and propose modern technology solutions.

Focus specifically on these areas:
- HIPAA compliance automation with AI/ML
- Healthcare data security using latest technologies
- AI-powered healthcare software solutions
- Cloud-native healthcare applications
- Modern API development for healthcare systems
- Healthcare software testing and validation
- DevOps and CI/CD for healthcare applications
- Latest frameworks and tools for healthcare development
- Blockchain and healthcare data integrity
- IoT and healthcare device integration
- Microservices architecture in healthcare
- Edge computing for healthcare applications

Each topic should be:
1. Relevant to current technology trends
2. Address specific healthcare/HIPAA challenges
3. Propose AI or modern technology solutions
4. Be actionable for software developers

Return ONLY a JSON array with this exact format:
[
  {
    "title": "[Specific Healthcare Development Problem] with [Latest Technology Solution]",
    "description": "Brief description focusing on the healthcare challenge and modern technology solution",
    "keywords": ["hipaa", "healthcare", "ai", "keyword1", "keyword2"],
    "category": "healthcare-software-development",
    "relevance": 9,
    "trendingLevel": "high"
  }
]

Make sure topics cover:
- At least 3 topics related to HIPAA compliance automation
- At least 2 topics about AI in healthcare software
- At least 2 topics about latest tech trends
- At least 1 topic about cloud-native healthcare solutions`

const simpleSuggestPrompt = `Generate 6 healthcare software development topics with HIPAA and AI focus. Return only JSON array:
[
  {
    "title": "Topic title with HIPAA/AI focus",
    "description": "Brief description",
    "keywords": ["hipaa", "ai", "healthcare", "keyword"],
    "category": "healthcare-software-development",
    "relevance": 8,
    "trendingLevel": "medium"
  }
]`

// Completer sends a prompt to a language model.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Suggester asks the model for fresh topics, with a simpler second prompt
// and a built-in list behind it.
type Suggester struct {
	model Completer
	log   *slog.Logger
	now   func() time.Time
}

func NewSuggester(model Completer, log *slog.Logger) *Suggester {
	return &Suggester{model: model, log: logger.OrDefault(log), now: time.Now}
}

// Suggest never fails; the last resort is EmergencyTopics.
func (s *Suggester) Suggest(ctx context.Context) []core.Topic {
	topics, err := s.ask(ctx, suggestPrompt, SourceAIGenerated)
	if err == nil {
		return topics
	}
	s.log.Warn("Topic suggestion failed, retrying with simpler prompt", "error", err)

	topics, err = s.ask(ctx, simpleSuggestPrompt, SourceAIFallback)
	if err == nil {
		return topics
	}
	s.log.Error("Fallback topic suggestion failed, using built-in topics", "error", err)

	return EmergencyTopics(s.now())
}

func (s *Suggester) ask(ctx context.Context, prompt, source string) ([]core.Topic, error) {
	raw, err := s.model.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return ParseSuggested(raw, source, s.now())
}

type suggestedTopic struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Keywords       []string `json:"keywords"`
	Category       string   `json:"category"`
	Relevance      *float64 `json:"relevance"`
	RelevanceScore *float64 `json:"relevanceScore"`
	TrendingLevel  string   `json:"trendingLevel"`
}

// ParseSuggested decodes the outermost JSON array in raw. Entries without a
// title are dropped; an array with no usable entries is a ParseError.
func ParseSuggested(raw, source string, at time.Time) ([]core.Topic, error) {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start < 0 || end <= start {
		return nil, apperr.NewParse("no JSON array in topic response", nil)
	}

	var items []suggestedTopic
	if err := json.Unmarshal([]byte(raw[start:end+1]), &items); err != nil {
		return nil, apperr.NewParse("invalid topic array", err)
	}

	generated := at.UTC()
	out := make([]core.Topic, 0, len(items))
	for _, it := range items {
		if strings.TrimSpace(it.Title) == "" {
			continue
		}
		relevance := 8.0
		switch {
		case it.Relevance != nil:
			relevance = *it.Relevance
		case it.RelevanceScore != nil:
			relevance = *it.RelevanceScore
		}
		category := core.Category(it.Category)
		if category == "" {
			category = core.CategorySoftwareDevelopment
		}
		out = append(out, core.Topic{
			Title:         CleanTitle(it.Title),
			Description:   it.Description,
			Keywords:      it.Keywords,
			Source:        source,
			Relevance:     clamp(relevance, 0, 10),
			Category:      category,
			TrendingLevel: it.TrendingLevel,
			GeneratedAt:   &generated,
		})
	}
	if len(out) == 0 {
		return nil, apperr.NewParse("topic array is empty", errors.New("no titled entries"))
	}
	return out, nil
}

// EmergencyTopics is served when the model cannot suggest anything.
func EmergencyTopics(at time.Time) []core.Topic {
	generated := at.UTC()
	topic := func(title, desc string, relevance float64, level string, keywords ...string) core.Topic {
		return core.Topic{
			Title:         title,
			Description:   desc,
			Keywords:      keywords,
			Source:        SourceEmergency,
			Relevance:     relevance,
			Category:      core.CategorySoftwareDevelopment,
			TrendingLevel: level,
			GeneratedAt:   &generated,
		}
	}
	return []core.Topic{
		topic("Automating HIPAA Compliance Audits with AI-Powered Monitoring Tools",
			"How AI can streamline HIPAA compliance monitoring and reduce manual audit workload",
			10, "high", "hipaa", "ai", "compliance", "automation", "monitoring"),
		topic("Building AI-Powered Healthcare APIs with FHIR and Cloud Integration",
			"Modern approaches to developing HIPAA-compliant healthcare APIs using AI and cloud technologies",
			9, "high", "hipaa", "ai", "fhir", "apis", "cloud", "healthcare"),
		topic("Implementing Zero-Trust Security in Healthcare Software with AI Detection",
			"Using AI-powered threat detection to implement zero-trust security models in healthcare applications",
			9, "high", "hipaa", "ai", "zero-trust", "security", "healthcare", "threat-detection"),
		topic("Accelerating HIPAA-Compliant CI/CD Pipelines with AI-Driven Testing",
			"How AI can enhance continuous integration and deployment while maintaining HIPAA compliance",
			8, "medium", "hipaa", "ai", "cicd", "testing", "devops", "automation"),
		topic("Real-Time Healthcare Data Processing with Edge AI and HIPAA Compliance",
			"Implementing edge computing and AI for real-time healthcare data processing while maintaining compliance",
			8, "high", "hipaa", "ai", "edge-computing", "real-time", "healthcare", "data-processing"),
		topic("Building Microservices Architecture for HIPAA-Compliant Healthcare Platforms",
			"Modern microservices patterns for scalable, compliant healthcare software development",
			8, "medium", "hipaa", "microservices", "healthcare", "architecture", "scalability", "compliance"),
	}
}
