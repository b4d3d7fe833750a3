/*
Copyright © 2025 Your Name

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package handlers

import (
	"context"
	"fmt"
	"os"

	"autoblog/internal/config"
	"autoblog/internal/logger"
	"autoblog/internal/pipeline"

	"github.com/spf13/cobra"
)

var cfgFile string

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "autoblog",
		Short: "Generate marketing blog posts for healthcare technology teams",
		Long: `AutoBlog writes SEO blog posts with an LLM, links them to the site's own
resources and articles, and exports them as DOCX, HTML and Markdown.

Core workflows:
  • One-off post: topic → post → preview, save, export or email
  • Trending: scrape healthcare tech headlines → score → generate
  • Service: HTTP API plus daily and weekly scheduled email runs

Examples:
  # Generate and preview a post
  autoblog generate "HIPAA compliance for AI chatbots" --preview

  # Export to Word and save the JSON
  autoblog generate "FHIR APIs" --docx fhir.docx --save

  # Show trending topics
  autoblog trending

  # Run the API and scheduler
  autoblog serve`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .autoblog.yaml)")

	rootCmd.AddCommand(NewGenerateCmd())
	rootCmd.AddCommand(NewTrendingCmd())
	rootCmd.AddCommand(NewTopicsCmd())
	rootCmd.AddCommand(NewLinksCmd())
	rootCmd.AddCommand(NewPostsCmd())
	rootCmd.AddCommand(NewRenderCmd())
	rootCmd.AddCommand(NewServeCmd())
	rootCmd.AddCommand(NewScheduleCmd())

	cobra.OnInitialize(initConfig)

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	logger.Configure(cfg.Logging.Level, cfg.Logging.Format)
}

// newService builds the pipeline from the loaded configuration.
func newService(ctx context.Context) (*pipeline.Service, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return pipeline.NewBuilder(cfg).WithLogger(logger.Get()).Build(ctx)
}
