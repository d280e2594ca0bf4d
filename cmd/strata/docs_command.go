package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"strata/internal/schema"
)

func newDocsCommand(ctx *commandContext) *cobra.Command {
	var output string
	var title string

	cmd := &cobra.Command{
		Use:   "docs",
		Short: "Render Markdown reference docs for a settings model",
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := ctx.schemaDocument()
			if err != nil {
				return err
			}

			heading := strings.TrimSpace(title)
			if heading == "" {
				if name := strings.TrimSpace(ctx.modelName); name != "" {
					heading = name + " configuration"
				} else {
					heading = "configuration"
				}
			}

			rendered := schema.Markdown(doc, heading)
			if output == "" {
				fmt.Fprintln(cmd.OutOrStdout(), rendered)
				return nil
			}
			if err := os.WriteFile(output, []byte(rendered+"\n"), 0o644); err != nil {
				return fmt.Errorf("write docs: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote docs to %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Destination file (default: stdout)")
	cmd.Flags().StringVar(&title, "title", "", "Document heading (default: \"<model> configuration\")")
	return cmd
}
