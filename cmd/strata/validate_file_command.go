package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"strata/internal/model"
	"strata/internal/schema"
	"strata/internal/source"
)

func newValidateFileCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate-file <file>",
		Short: "Validate a single config file against a model or schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			schemaDoc, err := ctx.schemaDocument()
			if err != nil {
				return err
			}

			doc, err := source.ParseFile(args[0], ctx.lenientYAML, ctx.logger())
			if err != nil {
				return err
			}

			name := ctx.modelName
			if name == "" {
				name = ctx.schemaPath
			}
			if err := validateDocument(cmd, schemaDoc, doc, name); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s valid\n", args[0])
			return nil
		},
	}
}

func validateDocument(cmd *cobra.Command, schemaDoc map[string]any, doc any, name string) error {
	err := schema.ValidateDocument(schemaDoc, doc, name)
	if err == nil {
		return nil
	}
	var validationErr *model.ValidationError
	if errors.As(err, &validationErr) {
		reportValidationIssues(cmd, validationErr)
		return fmt.Errorf("document invalid: %d issue(s)", len(validationErr.Issues))
	}
	return err
}
