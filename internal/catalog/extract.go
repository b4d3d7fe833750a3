package catalog

import (
	"strings"

	"autoblog/internal/core"
	"autoblog/internal/fetch"

	"github.com/PuerkitoBio/goquery"
)

const descriptionLimit = 150

// Tried in this order; earlier selectors win on duplicates.
var blogAnchorSelectors = []string{
	"h3 a",
	".entry-title a",
	".post-title a",
	".blog-title a",
	".article-title a",
	"h2 a",
	"h4 a",
}

const (
	blogWrapperSelector  = "article, .post, .blog-post, .entry"
	blogWrapperHeading   = "h1, h2, h3, h4, .title, .post-title"
	resourceContainers   = ".download-section, .resource-item, .ebook-item"
	resourceTitle        = "h3, h4, .title"
	resourceDescription  = "p, .description"
	downloadAnchors      = `a[href*="download"], .download-btn, a[href$=".pdf"]`
	downloadButtons      = `a[href*="download"], .download-btn, a[href$=".pdf"], a:contains("Download")`
	downloadContainerSel = ".resource-container, .ebook-container, .download-item"
)

// ExtractResources pulls downloadable resources out of a resources page.
// siteURL resolves relative links.
func ExtractResources(doc *goquery.Document, siteURL string) []core.Link {
	var resources []core.Link
	seen := newSeenSet()

	add := func(title, href, description string) {
		title = fetch.CollapseSpace(title)
		if title == "" || href == "" {
			return
		}
		link := core.Link{
			Title: title,
			URL:   fetch.ResolveURL(siteURL, href),
			Kind:  core.LinkKindResource,
		}
		if !seen.add(link) {
			return
		}
		description = fetch.Truncate(fetch.CollapseSpace(description), descriptionLimit)
		if description == "" {
			description = "Download guide about " + strings.ToLower(title)
		}
		link.Category = InferCategory(title)
		link.Description = description
		resources = append(resources, link)
	}

	doc.Find(resourceContainers).Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Find(downloadAnchors).First().Attr("href")
		add(s.Find(resourceTitle).First().Text(), href, s.Find(resourceDescription).First().Text())
	})

	// Download buttons outside the known containers
	doc.Find(downloadButtons).Each(func(_ int, btn *goquery.Selection) {
		href, ok := btn.Attr("href")
		if !ok || href == "" {
			return
		}
		container := btn.Closest(downloadContainerSel)
		title := strings.TrimSpace(container.Find(resourceTitle).First().Text())
		if title == "" {
			title = strings.TrimSpace(btn.Parent().Find(resourceTitle).First().Text())
		}
		if title == "" {
			title = strings.TrimSpace(btn.SiblingsFiltered(resourceTitle).First().Text())
		}
		add(title, href, container.Find(resourceDescription).First().Text())
	})

	return resources
}

// ExtractBlogLinks pulls blog article links out of one listing page.
// Candidates need a title and an href containing /blog/.
func ExtractBlogLinks(doc *goquery.Document, siteURL string) []core.Link {
	var blogs []core.Link
	seen := newSeenSet()

	add := func(title, href string, ctx *goquery.Selection) {
		title = fetch.CollapseSpace(title)
		if title == "" || href == "" || !strings.Contains(href, "/blog/") {
			return
		}
		link := core.Link{
			Title: title,
			URL:   fetch.ResolveURL(siteURL, href),
			Kind:  core.LinkKindBlog,
		}
		if !seen.add(link) {
			return
		}
		link.Category = InferCategory(title)
		link.Description = blogDescription(ctx, title)
		blogs = append(blogs, link)
	}

	for _, selector := range blogAnchorSelectors {
		doc.Find(selector).Each(func(_ int, a *goquery.Selection) {
			href, _ := a.Attr("href")
			add(a.Text(), href, a)
		})
	}

	doc.Find(blogWrapperSelector).Each(func(_ int, article *goquery.Selection) {
		a := article.Find(`a[href*="/blog/"]`).First()
		if a.Length() == 0 {
			return
		}
		href, _ := a.Attr("href")
		title := strings.TrimSpace(a.Text())
		if len([]rune(title)) < 10 {
			title = article.Find(blogWrapperHeading).First().Text()
		}
		add(title, href, article)
	})

	return blogs
}

// blogDescription looks for a nearby paragraph: inside the parent, then
// the next sibling, then a paragraph beside the parent.
func blogDescription(s *goquery.Selection, title string) string {
	parent := s.Parent()
	description := strings.TrimSpace(parent.Find("p").First().Text())
	if description == "" {
		description = strings.TrimSpace(s.Next().Text())
	}
	if description == "" {
		description = strings.TrimSpace(parent.SiblingsFiltered("p").First().Text())
	}
	if description == "" {
		return "Learn about " + strings.ToLower(title) + " and its applications in modern software development."
	}

	description = fetch.CollapseSpace(description)
	if len([]rune(description)) >= descriptionLimit {
		description = fetch.Truncate(description, descriptionLimit) + "..."
	}
	return description
}
