package handlers

import (
	"context"
	"errors"
	"fmt"
	"os"

	"autoblog/internal/core"

	"github.com/spf13/cobra"
)

type generateOptions struct {
	keywords   []string
	words      int
	tone       string
	regulatory bool
	links      []string
	save       bool
	email      bool
	preview    bool
	exports    []string
}

// NewGenerateCmd creates the generate command
func NewGenerateCmd() *cobra.Command {
	var opts generateOptions

	cmd := &cobra.Command{
		Use:   "generate [topic]",
		Short: "Generate a blog post on a topic",
		Long: `Generate one blog post. Internal links are picked from the scraped catalog
by keyword, or pinned with --link.

Examples:
  autoblog generate "AI in medical imaging" --keywords radiology,FDA --words 1500
  autoblog generate "Telehealth security" --tone technical --regulatory --preview
  autoblog generate "HIPAA audits" --out audits.docx --out audits.md --save --email`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.keywords, "keywords", "k", nil, "SEO keywords, comma separated")
	cmd.Flags().IntVarP(&opts.words, "words", "w", core.DefaultTargetWordCount, "target word count (100-5000)")
	cmd.Flags().StringVarP(&opts.tone, "tone", "t", string(core.ToneProfessional), "tone: professional, casual, technical, executive")
	cmd.Flags().BoolVar(&opts.regulatory, "regulatory", false, "include regulatory context")
	cmd.Flags().StringSliceVar(&opts.links, "link", nil, "catalog URL to link (repeatable)")
	cmd.Flags().BoolVar(&opts.save, "save", false, "save the post as JSON in the blogs directory")
	cmd.Flags().BoolVar(&opts.email, "email", false, "email the post to the marketing team")
	cmd.Flags().BoolVarP(&opts.preview, "preview", "p", false, "render the post in the terminal")
	cmd.Flags().StringArrayVarP(&opts.exports, "out", "o", nil, "export to file (.docx, .html, .md)")

	return cmd
}

func runGenerate(ctx context.Context, topic string, opts generateOptions) error {
	svc, err := newService(ctx)
	if err != nil {
		return err
	}

	req := core.GenerationRequest{
		Topic:                 topic,
		Keywords:              opts.keywords,
		TargetWordCount:       opts.words,
		Tone:                  core.Tone(opts.tone),
		IncludeRegulatoryInfo: opts.regulatory,
		SelectedLinks:         opts.links,
	}

	fmt.Println(mutedStyle.Render(fmt.Sprintf("Generating %d-word %s post on %q...", opts.words, opts.tone, topic)))

	var result *core.GenerationResult
	switch {
	case opts.email:
		result, err = svc.GenerateAndEmail(ctx, req)
	case opts.save:
		result, err = svc.GenerateAndSave(ctx, req)
	default:
		result, err = svc.Generate(ctx, req)
	}
	if err != nil {
		return err
	}
	if result.BlogPost == nil {
		return errors.New(result.Error)
	}

	post := result.BlogPost
	printPost(os.Stdout, post)
	if !result.Success {
		fmt.Println(errStyle.Render("✗ " + result.Error))
	}

	if opts.email && opts.save && result.Success {
		if path, err := svc.Save(post); err != nil {
			fmt.Println(errStyle.Render("✗ " + err.Error()))
		} else {
			result.SavedTo = path
		}
	}
	if result.SavedTo != "" {
		fmt.Println(okStyle.Render("✓ Saved to " + result.SavedTo))
	}
	if opts.email && result.Success {
		fmt.Println(okStyle.Render("✓ Emailed to marketing team"))
	}

	for _, path := range opts.exports {
		if err := exportPost(post, path); err != nil {
			return err
		}
		fmt.Println(okStyle.Render("✓ Wrote " + path))
	}

	if opts.preview {
		if err := previewPost(os.Stdout, post); err != nil {
			return err
		}
	}

	fmt.Println(mutedStyle.Render(fmt.Sprintf("Generated in %dms", result.GenerationTime)))
	if !result.Success {
		return errors.New(result.Error)
	}
	return nil
}
