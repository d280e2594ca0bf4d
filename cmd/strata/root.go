package main

import (
	"github.com/spf13/cobra"

	"strata/internal/model"
)

// newRootCommand builds the strata command tree. The registry supplies the
// settings models available to --model; embedding programs call this with
// their own registry to get the full command set over their types.
func newRootCommand(registry *model.Registry) *cobra.Command {
	ctx := newCommandContext(registry)

	rootCmd := &cobra.Command{
		Use:           "strata",
		Short:         "Layered configuration loader",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&ctx.configDir, "config-dir", "d", "config", "Directory holding config files and .env")
	flags.StringVarP(&ctx.environment, "env", "e", "", "Environment name (default: $STRATA_ENV or development)")
	flags.StringVarP(&ctx.modelName, "model", "m", "", "Registered settings model name")
	flags.StringVar(&ctx.schemaPath, "schema", "", "JSON Schema file (alternative to --model)")
	flags.BoolVar(&ctx.lenientYAML, "lenient-yaml", false, "Attempt single-space indentation recovery on YAML parse failures")
	flags.StringVar(&ctx.secretsDB, "secrets-db", "", "Path to the local development secrets store")
	flags.StringVar(&ctx.logLevel, "log-level", "warn", "Log verbosity (debug, info, warn, error)")
	flags.StringVar(&ctx.logFormat, "log-format", "console", "Log output format (console or json)")

	rootCmd.AddCommand(newDumpCommand(ctx))
	rootCmd.AddCommand(newValidateCommand(ctx))
	rootCmd.AddCommand(newValidateFileCommand(ctx))
	rootCmd.AddCommand(newSchemaCommand(ctx))
	rootCmd.AddCommand(newSchemaDiffCommand(ctx))
	rootCmd.AddCommand(newScaffoldCommand(ctx))
	rootCmd.AddCommand(newDocsCommand(ctx))
	rootCmd.AddCommand(newWatchCommand(ctx))
	rootCmd.AddCommand(newSecretsCommand(ctx))

	return rootCmd
}
