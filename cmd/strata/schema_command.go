package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"strata/internal/schema"
)

func newSchemaCommand(ctx *commandContext) *cobra.Command {
	var output string
	var format string

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Generate the JSON Schema for a settings model",
		RunE: func(cmd *cobra.Command, args []string) error {
			desc, err := ctx.descriptor()
			if err != nil {
				return err
			}
			doc, err := schema.Generate(desc)
			if err != nil {
				return err
			}

			var raw []byte
			switch format {
			case "json":
				raw, err = json.MarshalIndent(doc, "", "  ")
				if err == nil {
					raw = append(raw, '\n')
				}
			case "yaml":
				raw, err = yaml.Marshal(doc)
			default:
				return fmt.Errorf("unsupported format %q (json or yaml)", format)
			}
			if err != nil {
				return fmt.Errorf("encode schema: %w", err)
			}

			if output == "" {
				_, err = cmd.OutOrStdout().Write(raw)
				return err
			}
			if err := os.WriteFile(output, raw, 0o644); err != nil {
				return fmt.Errorf("write schema: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote schema for %s to %s\n", desc.Name, output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Destination file (default: stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format (json or yaml)")
	return cmd
}
