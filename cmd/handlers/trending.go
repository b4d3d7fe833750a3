package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewTrendingCmd creates the trending command
func NewTrendingCmd() *cobra.Command {
	var (
		random   bool
		generate int
		save     bool
	)

	cmd := &cobra.Command{
		Use:   "trending",
		Short: "Show trending healthcare tech topics or write posts on them",
		Long: `Scrape the configured headline sources, score each headline for relevance
and list the results.

Examples:
  autoblog trending                  # Ranked topic table
  autoblog trending --random         # One topic, weighted by relevance
  autoblog trending --generate 3     # Three posts on trending topics
  autoblog trending --generate 3 --save`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrending(cmd.Context(), random, generate, save)
		},
	}

	cmd.Flags().BoolVar(&random, "random", false, "pick one topic weighted by relevance")
	cmd.Flags().IntVarP(&generate, "generate", "g", 0, "generate this many posts on trending topics (1-10)")
	cmd.Flags().BoolVar(&save, "save", false, "save generated posts as JSON")

	return cmd
}

func runTrending(ctx context.Context, random bool, generate int, save bool) error {
	svc, err := newService(ctx)
	if err != nil {
		return err
	}

	switch {
	case generate > 0:
		posts, err := svc.GenerateTrending(ctx, generate)
		if err != nil {
			return err
		}
		for _, p := range posts {
			printPost(os.Stdout, p)
			if save {
				path, err := svc.Save(p)
				if err != nil {
					return err
				}
				fmt.Println(okStyle.Render("✓ Saved to " + path))
			}
			fmt.Println()
		}
		fmt.Printf("Generated %d of %d posts\n", len(posts), generate)

	case random:
		t := svc.RandomTopic(ctx)
		fmt.Println(titleStyle.Render(t.Title))
		fmt.Println(t.Description)
		fmt.Println(mutedStyle.Render(fmt.Sprintf("score %.1f · %s · %s", t.Relevance, t.Category, t.Source)))

	default:
		topics := svc.TrendingTopics(ctx)
		fmt.Println(titleStyle.Render(fmt.Sprintf("Trending topics (%d)", len(topics))))
		fmt.Println(topicTable(topics))
	}
	return nil
}
