package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSecretsCommand(ctx *commandContext) *cobra.Command {
	secretsCmd := &cobra.Command{
		Use:   "secrets",
		Short: "Manage the local development secrets store",
	}

	secretsCmd.AddCommand(newSecretsSetCommand(ctx))
	secretsCmd.AddCommand(newSecretsListCommand(ctx))
	secretsCmd.AddCommand(newSecretsDeleteCommand(ctx))

	return secretsCmd
}

func newSecretsSetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "set <name> <value>",
		Short: "Store a secret for the active environment",
		Long: "Store a secret under the active environment. Names carrying the key " +
			"separator (db__password) land at the nested path during loads.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openLocalStore()
			if err != nil {
				return err
			}
			defer store.Close()

			env := activeEnvironment(ctx)
			if err := store.Set(cmd.Context(), env, args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Stored %s for environment %s\n", args[0], env)
			return nil
		},
	}
}

func newSecretsListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List secret names for the active environment",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openLocalStore()
			if err != nil {
				return err
			}
			defer store.Close()

			env := activeEnvironment(ctx)
			names, err := store.List(cmd.Context(), env)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(names) == 0 {
				fmt.Fprintf(out, "No secrets stored for environment %s\n", env)
				return nil
			}
			// Names only. Values never leave the store through this command.
			for _, name := range names {
				fmt.Fprintln(out, name)
			}
			return nil
		},
	}
}

func newSecretsDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a secret from the active environment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openLocalStore()
			if err != nil {
				return err
			}
			defer store.Close()

			env := activeEnvironment(ctx)
			if err := store.Delete(cmd.Context(), env, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s from environment %s\n", args[0], env)
			return nil
		},
	}
}
