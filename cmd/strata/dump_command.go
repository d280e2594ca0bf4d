package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newDumpCommand(ctx *commandContext) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print the merged configuration with secrets redacted",
		RunE: func(cmd *cobra.Command, args []string) error {
			l, closeStore, err := ctx.newLoader(nil)
			if err != nil {
				return err
			}
			defer closeStore()

			merged, err := l.Merged(cmd.Context(), nil)
			if err != nil {
				return err
			}
			redacted := l.Redact(merged)

			switch format {
			case "json":
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(redacted)
			case "yaml":
				out, err := yaml.Marshal(redacted)
				if err != nil {
					return fmt.Errorf("encode configuration: %w", err)
				}
				_, err = cmd.OutOrStdout().Write(out)
				return err
			default:
				return fmt.Errorf("unsupported format %q (json or yaml)", format)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "Output format (yaml or json)")
	return cmd
}
