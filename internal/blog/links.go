package blog

import (
	"fmt"
	"strings"

	"autoblog/internal/core"
)

// MaxLinks caps how many internal links a post references.
const MaxLinks = 3

const (
	contactURL         = "https://technologyrivers.com/contact-us/"
	defaultLinkBlurb   = "Essential resource for healthcare technology teams"
	resourcesHeading   = "Additional Resources for Healthcare Tech Teams"
	resourcesIntro     = "Ready to take your healthcare software development to the next level? Explore these comprehensive resources:"
	resourcesSignOffFm = `<p>Need expert guidance for your healthcare software project? <a href="%s">Contact our team</a> for a complimentary consultation.</p>`
)

// Used when no catalog link matched the request.
var defaultResourceLinks = []core.Link{
	{
		Title:       "The Ultimate Checklist for Software Development",
		URL:         "https://technologyrivers.com/the-ultimate-checklist-for-software-development/",
		Description: "Essential guidelines for successful software projects",
	},
	{
		Title:       "7 Steps to Developing a HIPAA-Compliant Healthcare App",
		URL:         "https://technologyrivers.com/blog/7-steps-to-developing-a-hipaa-compliant-healthcare-app/",
		Description: "Step-by-step guide for compliance",
	},
	{
		Title:       "Top HIPAA Compliant Cloud Hosting for Startup and Enterprise",
		URL:         "https://technologyrivers.com/blog/top-hipaa-compliant-cloud-hosting-for-startup-and-enterprise/",
		Description: "Secure hosting solutions",
	},
}

// SelectLinks picks up to MaxLinks catalog links for a request, in catalog
// order. Explicit SelectedLinks match by exact URL and unknown URLs are
// ignored; otherwise a link matches when any keyword appears in its title
// or description.
func SelectLinks(req core.GenerationRequest, links []core.Link) []core.Link {
	var out []core.Link

	if len(req.SelectedLinks) > 0 {
		wanted := make(map[string]struct{}, len(req.SelectedLinks))
		for _, u := range req.SelectedLinks {
			wanted[u] = struct{}{}
		}
		for _, l := range links {
			if _, ok := wanted[l.URL]; ok {
				out = append(out, l)
				delete(wanted, l.URL)
				if len(out) == MaxLinks {
					break
				}
			}
		}
		return out
	}

	var keywords []string
	for _, k := range req.Keywords {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			keywords = append(keywords, k)
		}
	}
	if len(keywords) == 0 {
		return nil
	}

	for _, l := range links {
		title := strings.ToLower(l.Title)
		desc := strings.ToLower(l.Description)
		for _, k := range keywords {
			if strings.Contains(title, k) || strings.Contains(desc, k) {
				out = append(out, l)
				break
			}
		}
		if len(out) == MaxLinks {
			break
		}
	}
	return out
}

// ResourcesSection renders the closing resources block. With no links the
// default three are used.
func ResourcesSection(links []core.Link) string {
	if len(links) == 0 {
		links = defaultResourceLinks
	}

	var b strings.Builder
	b.WriteString("\n<h2>" + resourcesHeading + "</h2>\n")
	b.WriteString("<p>" + resourcesIntro + "</p>\n<ul>\n")
	for i, l := range links {
		desc := l.Description
		if desc == "" {
			desc = defaultLinkBlurb
		}
		fmt.Fprintf(&b, `<li><a href="%s">%s</a> - %s</li>`, l.URL, l.Title, desc)
		if i < len(links)-1 {
			b.WriteString("\n")
		}
	}
	b.WriteString("\n</ul>\n")
	fmt.Fprintf(&b, resourcesSignOffFm, contactURL)
	return b.String()
}
