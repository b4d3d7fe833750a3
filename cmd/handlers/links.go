package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// NewLinksCmd creates the links command
func NewLinksCmd() *cobra.Command {
	var page int
	var pages string

	cmd := &cobra.Command{
		Use:   "links",
		Short: "Show the internal link catalog",
		Long: `Scrape the resources page and blog listing that generated posts link to.

Examples:
  autoblog links              # Resources and the first blog page
  autoblog links --page 3     # Blog links from listing page 3
  autoblog links --pages 1-3  # Distinct blog links across pages 1 to 3`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if pages != "" {
				start, end, err := parsePageRange(pages)
				if err != nil {
					return err
				}
				return runWalkLinks(cmd.Context(), start, end)
			}
			return runLinks(cmd.Context(), page)
		},
	}
	cmd.Flags().IntVar(&page, "page", 0, "show only this blog listing page")
	cmd.Flags().StringVar(&pages, "pages", "", "walk a range of blog listing pages, e.g. 1-3")
	cmd.MarkFlagsMutuallyExclusive("page", "pages")

	return cmd
}

func runLinks(ctx context.Context, page int) error {
	svc, err := newService(ctx)
	if err != nil {
		return err
	}

	if page > 0 {
		blogs, err := svc.LoadMoreBlogs(ctx, page)
		if err != nil {
			return err
		}
		fmt.Println(titleStyle.Render(fmt.Sprintf("Blog page %d (%d)", page, len(blogs))))
		fmt.Println(linkTable(blogs))
		return nil
	}

	c := svc.Links(ctx)
	fmt.Println(titleStyle.Render(fmt.Sprintf("Resources (%d)", len(c.Resources))))
	fmt.Println(linkTable(c.Resources))
	fmt.Println(titleStyle.Render(fmt.Sprintf("Blogs (%d)", len(c.Blogs))))
	fmt.Println(linkTable(c.Blogs))
	return nil
}

func runWalkLinks(ctx context.Context, start, end int) error {
	svc, err := newService(ctx)
	if err != nil {
		return err
	}

	blogs, err := svc.WalkBlogs(ctx, start, end)
	if err != nil {
		return err
	}
	fmt.Println(titleStyle.Render(fmt.Sprintf("Blog pages %d-%d (%d)", start, end, len(blogs))))
	fmt.Println(linkTable(blogs))
	return nil
}

// parsePageRange reads "N" or "N-M".
func parsePageRange(s string) (int, int, error) {
	from, to, found := strings.Cut(strings.TrimSpace(s), "-")
	start, err := strconv.Atoi(strings.TrimSpace(from))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid page range %q", s)
	}
	end := start
	if found {
		if end, err = strconv.Atoi(strings.TrimSpace(to)); err != nil {
			return 0, 0, fmt.Errorf("invalid page range %q", s)
		}
	}
	if start < 1 || end < start {
		return 0, 0, fmt.Errorf("invalid page range %q", s)
	}
	return start, end, nil
}
