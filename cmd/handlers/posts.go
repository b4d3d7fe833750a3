package handlers

import (
	"fmt"
	"os"

	"autoblog/internal/config"
	"autoblog/internal/store"

	"github.com/spf13/cobra"
)

func openStore() (*store.FileStore, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return store.NewFileStore(cfg.Storage.BlogsDir), nil
}

// NewPostsCmd creates the posts command
func NewPostsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "posts",
		Short: "List saved posts, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore()
			if err != nil {
				return err
			}
			posts, err := s.List()
			if err != nil {
				return err
			}
			if len(posts) == 0 {
				fmt.Println(mutedStyle.Render("No saved posts in " + s.Dir))
				return nil
			}
			fmt.Println(titleStyle.Render(fmt.Sprintf("Saved posts (%d)", len(posts))))
			fmt.Println(postTable(posts))
			return nil
		},
	}
}

// NewRenderCmd creates the render command
func NewRenderCmd() *cobra.Command {
	var (
		outputs []string
		preview bool
	)

	cmd := &cobra.Command{
		Use:   "render [slug|id]",
		Short: "Export or preview a saved post",
		Long: `Render a post saved with --save into DOCX, HTML or Markdown.

Examples:
  autoblog render automating_hipaa_audits --out audits.docx
  autoblog render 3f6c2a1e-... --preview`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore()
			if err != nil {
				return err
			}
			post, err := s.Find(args[0])
			if err != nil {
				return err
			}

			printPost(os.Stdout, post)
			for _, path := range outputs {
				if err := exportPost(post, path); err != nil {
					return err
				}
				fmt.Println(okStyle.Render("✓ Wrote " + path))
			}
			if preview || len(outputs) == 0 {
				return previewPost(os.Stdout, post)
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&outputs, "out", "o", nil, "export to file (.docx, .html, .md)")
	cmd.Flags().BoolVarP(&preview, "preview", "p", false, "render the post in the terminal")

	return cmd
}
