package topics

import (
	"fmt"
	"os"

	"autoblog/internal/core"

	"gopkg.in/yaml.v3"
)

// FallbackTopics is returned when no topic source could be read.
func FallbackTopics() []core.Topic {
	return []core.Topic{
		{
			Title:       "Solving Software Development Bottlenecks with AI-Powered Solutions",
			Description: "How AI is addressing common software development challenges and improving efficiency",
			Keywords:    []string{"software development", "AI solutions", "automation", "productivity", "bottlenecks"},
			Source:      "fallback",
			Relevance:   10,
			Category:    core.CategorySoftware,
		},
		{
			Title:       "Overcoming Healthcare Software Integration Challenges with Modern APIs",
			Description: "Solving integration problems in healthcare software with modern development techniques",
			Keywords:    []string{"healthcare software", "API integration", "modernization", "development"},
			Source:      "fallback",
			Relevance:   9,
			Category:    core.CategorySoftware,
		},
	}
}

// CuratedTopics is the built-in editorial topic pack.
func CuratedTopics() []core.Topic {
	curated := func(title, desc string, relevance float64, keywords ...string) core.Topic {
		return core.Topic{
			Title:       title,
			Description: desc,
			Keywords:    keywords,
			Source:      "curated",
			Relevance:   relevance,
			Category:    core.CategorySoftware,
		}
	}
	return []core.Topic{
		curated("Solving Code Review Bottlenecks with AI-Powered Development Tools",
			"How AI is revolutionizing code review processes and accelerating software development", 10,
			"code review", "AI tools", "software development", "automation", "productivity"),
		curated("Overcoming Legacy System Integration Challenges with Modern APIs",
			"Strategies for integrating legacy healthcare systems with modern software solutions", 9,
			"legacy systems", "API integration", "healthcare software", "modernization"),
		curated("Reducing Software Development Costs with AI-Driven Automation",
			"How AI automation is cutting development costs and improving efficiency", 9,
			"cost reduction", "AI automation", "software development", "efficiency"),
		curated("Solving Mobile App Performance Issues with Advanced Optimization Techniques",
			"Addressing common mobile app performance problems with modern development solutions", 8,
			"mobile app performance", "optimization", "software development", "user experience"),
		curated("Overcoming Healthcare Data Security Challenges with Blockchain Solutions",
			"How blockchain technology is solving healthcare data security and compliance issues", 10,
			"blockchain", "healthcare security", "data protection", "compliance"),
		curated("Solving Software Testing Bottlenecks with AI-Powered Test Automation",
			"How AI is revolutionizing software testing and quality assurance processes", 9,
			"software testing", "AI automation", "quality assurance", "development"),
		curated("Overcoming Cloud Migration Challenges in Healthcare Software",
			"Solving common cloud migration problems for healthcare applications", 8,
			"cloud migration", "healthcare software", "AWS", "Azure", "security"),
		curated("Solving User Experience Problems in Healthcare Mobile Apps",
			"Addressing UX challenges in healthcare applications with modern design solutions", 8,
			"user experience", "mobile apps", "healthcare", "design", "usability"),
	}
}

type curatedFile struct {
	Topics []struct {
		Title       string   `yaml:"title"`
		Description string   `yaml:"description"`
		Keywords    []string `yaml:"keywords"`
		Relevance   float64  `yaml:"relevance"`
		Category    string   `yaml:"category"`
	} `yaml:"topics"`
}

// LoadCurated reads a YAML topic pack. Relevance is clamped to [0, 10] and
// a missing category defaults to software-development.
func LoadCurated(path string) ([]core.Topic, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read curated topics %s: %w", path, err)
	}

	var f curatedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse curated topics %s: %w", path, err)
	}

	out := make([]core.Topic, 0, len(f.Topics))
	for i, t := range f.Topics {
		if t.Title == "" {
			return nil, fmt.Errorf("curated topic %d in %s has no title", i, path)
		}
		category := core.Category(t.Category)
		if category == "" {
			category = core.CategorySoftware
		}
		out = append(out, core.Topic{
			Title:       CleanTitle(t.Title),
			Description: t.Description,
			Keywords:    t.Keywords,
			Source:      "curated",
			Relevance:   clamp(t.Relevance, 0, 10),
			Category:    category,
		})
	}
	return out, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
