package main

import (
	"fmt"

	"github.com/orgball2608/social-detail-bot/internal/detail"
	"github.com/orgball2608/social-detail-bot/internal/posturl"
	"github.com/spf13/cobra"
)

func parseCmd() *cobra.Command {
	var outputJSON bool

	cmd := &cobra.Command{
		Use:   "parse [link-or-segment]",
		Short: "Show how a detail link is interpreted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed := detail.Parse(posturl.SegmentFromLink(args[0]))

			if outputJSON {
				return printJSON(cmd.OutOrStdout(), parsed)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Original:  %s\n", parsed.Original)
			fmt.Fprintf(w, "Kind:      %s\n", parsed.Kind)
			fmt.Fprintf(w, "ID:        %s\n", parsed.ID)
			fmt.Fprintf(w, "Unique ID: %s\n", parsed.UniqueID)
			fmt.Fprintf(w, "Title:     %s\n", detail.Title(parsed.Kind))
			return nil
		},
	}

	cmd.Flags().BoolVar(&outputJSON, "json", false, "output as JSON")
	return cmd
}
