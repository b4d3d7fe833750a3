package catalog

import "autoblog/internal/core"

// FallbackResources is served when the resources page yields nothing.
func FallbackResources() []core.Link {
	return withKind(core.LinkKindResource, []core.Link{
		{
			Title:       "HIPAA Compliant Web App Development Checklist",
			URL:         "https://technologyrivers.com/resources/#hipaa-web-checklist",
			Category:    "HIPAA Compliance",
			Description: "Complete guide for developing secure HIPAA-compliant web applications",
		},
		{
			Title:       "HIPAA Compliant Mobile App Development Checklist",
			URL:         "https://technologyrivers.com/resources/#hipaa-mobile-checklist",
			Category:    "HIPAA Compliance",
			Description: "Essential checklist for HIPAA-compliant mobile app development",
		},
		{
			Title:       "The Ultimate Software Development Checklist",
			URL:         "https://technologyrivers.com/the-ultimate-checklist-for-software-development/",
			Category:    "Software Development",
			Description: "Comprehensive checklist for successful software development projects",
		},
		{
			Title:       "How Long Does it Take to Develop an App?",
			URL:         "https://technologyrivers.com/resources/#app-development-timeline",
			Category:    "App Development",
			Description: "Timeline guide for mobile and web application development",
		},
		{
			Title:       "Top Ways App Development Goes Wrong & How to Get Back on Track",
			URL:         "https://technologyrivers.com/resources/#app-development-fixes",
			Category:    "App Development",
			Description: "8 proven strategies to avoid common development pitfalls",
		},
		{
			Title:       "Top 8 AI Tools You Need to Know About",
			URL:         "https://technologyrivers.com/top-8-ai-tools-you-need-to-know/",
			Category:    "AI & Machine Learning",
			Description: "Essential AI tools for modern software development",
		},
		{
			Title:       "13 Proven Strategies to Boost Your App",
			URL:         "https://technologyrivers.com/resources/#app-promotion-strategies",
			Category:    "App Development",
			Description: "App promotion playbook with proven marketing strategies",
		},
	})
}

// FallbackBlogs is served when the first blog page yields nothing.
func FallbackBlogs() []core.Link {
	return withKind(core.LinkKindBlog, []core.Link{
		{
			Title:       "AI for Workflow Automation & Compliance Monitoring",
			URL:         "https://technologyrivers.com/blog/ai-workflow-automation-compliance-monitoring/",
			Category:    "AI & Compliance",
			Description: "How AI transforms business workflows and compliance monitoring",
		},
		{
			Title:       "Building a HIPAA-Compliant AI App with Vibe Coding",
			URL:         "https://technologyrivers.com/blog/building-hipaa-compliant-ai-app-vibe-coding/",
			Category:    "HIPAA & AI",
			Description: "Complete guide to developing HIPAA-compliant AI applications",
		},
		{
			Title:       "How to Build HIPAA‑Compliant AI‑Powered Healthcare Apps",
			URL:         "https://technologyrivers.com/blog/hipaa-compliant-ai-powered-healthcare-apps/",
			Category:    "Healthcare AI",
			Description: "Best practices for AI integration in healthcare applications",
		},
		{
			Title:       "Top Trends in Healthcare Wearable App Development",
			URL:         "https://technologyrivers.com/blog/healthcare-wearable-app-development-trends/",
			Category:    "Healthcare Tech",
			Description: "Latest trends in wearable technology for healthcare",
		},
		{
			Title:       "The Hidden Costs of Ignoring HIPAA in Your Cloud-Based App",
			URL:         "https://technologyrivers.com/blog/hidden-costs-ignoring-hipaa-cloud-app/",
			Category:    "HIPAA Compliance",
			Description: "Financial and legal risks of HIPAA non-compliance",
		},
		{
			Title:       "Understanding Enterprise Application Integration Strategies",
			URL:         "https://technologyrivers.com/blog/enterprise-application-integration-strategies/",
			Category:    "Enterprise Development",
			Description: "Strategies for integrating enterprise healthcare systems",
		},
		{
			Title:       "Benefits of Cross-Platform App Development",
			URL:         "https://technologyrivers.com/blog/benefits-cross-platform-app-development/",
			Category:    "App Development",
			Description: "Advantages of cross-platform development for healthcare apps",
		},
		{
			Title:       "How to Secure PHI in AWS: A DevOps-Led Blueprint for HIPAA Compliance",
			URL:         "https://technologyrivers.com/blog/secure-phi-aws-devops-hipaa-compliance/",
			Category:    "Cloud Security",
			Description: "DevOps blueprint for HIPAA-compliant AWS infrastructure",
		},
		{
			Title:       "Streamlining Clinical Documentation with AWS HealthScribe: A HIPAA-Eligible AI Solution",
			URL:         "https://technologyrivers.com/blog/streamlining-clinical-documentation-with-aws-healthscribe-a-hipaa-eligible-ai-solution/",
			Category:    "Healthcare AI",
			Description: "AI-powered clinical documentation using AWS HealthScribe",
		},
		{
			Title:       "Top 5 Reasons Software Projects Fail And How to Fix Them",
			URL:         "https://technologyrivers.com/blog/software-projects-fail-how-to-fix/",
			Category:    "Software Development",
			Description: "Common causes of software project failures and solutions",
		},
		{
			Title:       "Applied Neuroscientist Dr. Bethany Raines on Digitizing Pain Therapy",
			URL:         "https://technologyrivers.com/blog/dr-bethany-raines-digitizing-pain-therapy/",
			Category:    "Healthcare Tech",
			Description: "Innovative approaches to digital pain therapy solutions",
		},
		{
			Title:       "Building the Tee Time App: Partnership Success Story",
			URL:         "https://technologyrivers.com/blog/tee-time-app-partnership-success/",
			Category:    "Case Studies",
			Description: "Success story of developing a golf scheduling application",
		},
	})
}

func withKind(kind core.LinkKind, links []core.Link) []core.Link {
	for i := range links {
		links[i].Kind = kind
	}
	return links
}
