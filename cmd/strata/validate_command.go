package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"strata/internal/model"
)

func newValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Load all tiers and validate against a settings model",
		RunE: func(cmd *cobra.Command, args []string) error {
			desc, err := ctx.descriptor()
			if err != nil {
				return err
			}
			l, closeStore, err := ctx.newLoader(desc)
			if err != nil {
				return err
			}
			defer closeStore()

			_, err = l.Load(cmd.Context(), nil)
			if err != nil {
				var validationErr *model.ValidationError
				if errors.As(err, &validationErr) {
					reportValidationIssues(cmd, validationErr)
					return fmt.Errorf("configuration invalid: %d issue(s)", len(validationErr.Issues))
				}
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Configuration valid for model %s (environment %s)\n", desc.Name, l.Environment())
			return nil
		},
	}
}

// reportValidationIssues prints one line per issue. Reasons never include
// configuration values, so this is safe for CI logs.
func reportValidationIssues(cmd *cobra.Command, err *model.ValidationError) {
	out := cmd.OutOrStdout()
	for _, issue := range err.Issues {
		path := issue.Path
		if path == "" {
			path = "(document)"
		}
		fmt.Fprintf(out, "  %s: %s\n", path, issue.Reason)
	}
}
