package main

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/orgball2608/social-detail-bot/internal/api/httpapi"
	"github.com/orgball2608/social-detail-bot/internal/detail"
	"github.com/orgball2608/social-detail-bot/internal/posturl"
	"github.com/orgball2608/social-detail-bot/pkg/config"
	"github.com/orgball2608/social-detail-bot/pkg/logger"
	"github.com/spf13/cobra"
)

type resolveOutput struct {
	detail.Result
	Kind      string `json:"kind"`
	Title     string `json:"title"`
	Canonical string `json:"canonical,omitempty"`
}

func resolveCmd() *cobra.Command {
	var (
		baseURL string
		token   string
		timeout time.Duration
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "resolve [link-or-segment]",
		Short: "Resolve a detail link through the backend REST API",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if baseURL == "" {
				cfg := &config.Config{}
				if err := cleanenv.ReadEnv(cfg); err != nil {
					return fmt.Errorf("resolve: loading config: %w", err)
				}
				baseURL = cfg.API.BaseURL
				if token == "" {
					token = cfg.API.Token
				}
			}
			if baseURL == "" {
				return fmt.Errorf("resolve: --base-url or API_BASE_URL is required")
			}

			log := logger.NewNop()
			if verbose {
				log = logger.New(logger.Opts{Output: os.Stderr})
			}

			client, err := httpapi.NewClient(baseURL, token, timeout, log)
			if err != nil {
				return fmt.Errorf("resolve: %w", err)
			}

			resolver := detail.New(detail.Opts{API: client, Logger: log})
			parsed := detail.Parse(posturl.SegmentFromLink(args[0]))
			result := resolver.Fetch(cmd.Context(), parsed)

			out := resolveOutput{
				Result: result,
				Kind:   parsed.Kind.String(),
				Title:  detail.Title(parsed.Kind),
			}
			if result.Found() {
				out.Canonical = posturl.Canonical(parsed.Kind, *result.Post)
			}
			if err := printJSON(cmd.OutOrStdout(), out); err != nil {
				return err
			}
			if !result.Found() {
				return fmt.Errorf("resolve: %q not found", result.OriginalID)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&baseURL, "base-url", "", "backend API base URL (default $API_BASE_URL)")
	cmd.Flags().StringVar(&token, "token", "", "bearer token (default $API_TOKEN)")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "request timeout")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log attempts to stderr")
	return cmd
}
