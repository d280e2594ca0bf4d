package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"strata/internal/merge"
	"strata/internal/schema"
)

func newScaffoldCommand(ctx *commandContext) *cobra.Command {
	var output string
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "scaffold",
		Short: "Write a starter config file from model or schema defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			var template merge.Map
			if strings.TrimSpace(ctx.modelName) != "" {
				desc, err := ctx.descriptor()
				if err != nil {
					return err
				}
				template, err = schema.Scaffold(desc)
				if err != nil {
					return err
				}
			} else {
				doc, err := ctx.schemaDocument()
				if err != nil {
					return err
				}
				template = schema.ScaffoldFromSchema(doc)
			}

			raw, err := encodeScaffold(template, output)
			if err != nil {
				return err
			}

			if output == "" {
				_, err = cmd.OutOrStdout().Write(raw)
				return err
			}
			if !overwrite {
				if _, err := os.Stat(output); err == nil {
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", output)
				} else if !os.IsNotExist(err) {
					return fmt.Errorf("check scaffold path: %w", err)
				}
			}
			if err := os.WriteFile(output, raw, 0o644); err != nil {
				return fmt.Errorf("write scaffold: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote starter configuration to %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Destination file; format follows the extension (default: YAML on stdout)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing file if present")
	return cmd
}

// encodeScaffold picks the encoding from the destination extension. Stdout
// and unknown extensions get YAML.
func encodeScaffold(template merge.Map, output string) ([]byte, error) {
	switch {
	case strings.HasSuffix(output, ".json"):
		raw, err := json.MarshalIndent(template, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode scaffold: %w", err)
		}
		return append(raw, '\n'), nil
	case strings.HasSuffix(output, ".toml"):
		raw, err := toml.Marshal(template)
		if err != nil {
			return nil, fmt.Errorf("encode scaffold: %w", err)
		}
		return raw, nil
	default:
		raw, err := yaml.Marshal(template)
		if err != nil {
			return nil, fmt.Errorf("encode scaffold: %w", err)
		}
		return raw, nil
	}
}
