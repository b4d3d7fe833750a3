package handlers

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// NewTopicsCmd creates the topics command
func NewTopicsCmd() *cobra.Command {
	var suggest bool

	cmd := &cobra.Command{
		Use:   "topics",
		Short: "List the editorial topic list or ask the model for ideas",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTopics(cmd.Context(), suggest)
		},
	}
	cmd.Flags().BoolVar(&suggest, "suggest", false, "ask the model for topic suggestions")

	return cmd
}

func runTopics(ctx context.Context, suggest bool) error {
	svc, err := newService(ctx)
	if err != nil {
		return err
	}

	if suggest {
		fmt.Println(titleStyle.Render("Suggested topics"))
		fmt.Println(topicTable(svc.SuggestedTopics(ctx)))
		return nil
	}

	fmt.Println(titleStyle.Render("Available topics"))
	for _, t := range svc.AvailableTopics() {
		fmt.Println("  • " + t)
	}
	return nil
}
