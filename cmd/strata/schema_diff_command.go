package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"strata/internal/schema"
)

func newSchemaDiffCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "schema-diff <old> <new>",
		Short: "Compare two JSON Schema files for breaking changes",
		Long: "Compare two JSON Schema files. Breaking changes (removed properties, " +
			"new or tightened required fields, type changes) make the command exit " +
			"non-zero so CI pipelines can gate on them.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			oldDoc, err := readJSONFile(args[0])
			if err != nil {
				return fmt.Errorf("read old schema: %w", err)
			}
			newDoc, err := readJSONFile(args[1])
			if err != nil {
				return fmt.Errorf("read new schema: %w", err)
			}

			result := schema.Diff(oldDoc, newDoc)
			out := cmd.OutOrStdout()
			if !result.HasChanges() {
				fmt.Fprintln(out, "Schemas are identical")
				return nil
			}

			rows := make([][]string, 0, len(result.Breaking)+len(result.NonBreaking))
			for _, change := range result.Breaking {
				rows = append(rows, []string{"breaking", change})
			}
			for _, change := range result.NonBreaking {
				rows = append(rows, []string{"compatible", change})
			}
			fmt.Fprintln(out, renderTable([]string{"Impact", "Change"}, rows))

			if len(result.Breaking) > 0 {
				return fmt.Errorf("%d breaking change(s)", len(result.Breaking))
			}
			return nil
		},
	}
}
