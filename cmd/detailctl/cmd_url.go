package main

import (
	"fmt"
	"strings"

	"github.com/orgball2608/social-detail-bot/internal/posturl"
	"github.com/spf13/cobra"
)

func urlCmd() *cobra.Command {
	var (
		id       string
		uniqueID string
		name     string
		fullPath bool
	)

	cmd := &cobra.Command{
		Use:   "url [post|photo|cover|video|story]",
		Short: "Build the detail segment for an entity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			segment := posturl.Build(posturl.Params{
				Type:       posturl.Type(strings.ToLower(args[0])),
				ID:         id,
				UniqueID:   uniqueID,
				Identifier: posturl.NormalizeIdentifier(name),
			})
			if segment == "" {
				return fmt.Errorf("url: --id is required for type %q", args[0])
			}
			if fullPath {
				segment = posturl.Path(segment)
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), segment)
			return err
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "entity id")
	cmd.Flags().StringVar(&uniqueID, "unique-id", "", "10-digit unique id")
	cmd.Flags().StringVar(&name, "name", "", "user name for photo and cover links")
	cmd.Flags().BoolVar(&fullPath, "path", false, "print the /detail/ route path")
	return cmd
}
