package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gofrs/flock"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"strata/internal/watch"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Reload and revalidate configuration on file changes",
		Long: "Watch the config directory and reload on every change, printing the " +
			"redacted merged configuration or the validation failure. A lock file " +
			"in the config directory keeps a second watcher from racing this one.",
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

			lock := flock.New(filepath.Join(ctx.configDir, ".strata.lock"))
			locked, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire watch lock: %w", err)
			}
			if !locked {
				return fmt.Errorf("another watcher already holds %s", lock.Path())
			}
			defer lock.Unlock()

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			interactive := false
			if f, ok := out.(*os.File); ok {
				interactive = isatty.IsTerminal(f.Fd())
			}

			handler := func(r watch.Reload) {
				if r.Err != nil {
					fmt.Fprintf(out, "reload %s failed: %v\n", r.ID, r.Err)
					return
				}
				if !interactive {
					fmt.Fprintf(out, "reload %s ok (environment %s)\n", r.ID, l.Environment())
					return
				}
				raw, err := yaml.Marshal(l.Redact(r.Result.Merged))
				if err != nil {
					fmt.Fprintf(out, "reload %s ok, but configuration could not be rendered: %v\n", r.ID, err)
					return
				}
				fmt.Fprintf(out, "--- reload %s (environment %s)\n%s", r.ID, l.Environment(), raw)
			}

			w := watch.New(l, ctx.configDir, handler, ctx.logger())
			if err := w.Start(runCtx); err != nil {
				return fmt.Errorf("start watcher: %w", err)
			}
			defer w.Stop()

			fmt.Fprintf(out, "Watching %s for model %s; press Ctrl-C to stop\n", ctx.configDir, desc.Name)
			<-runCtx.Done()
			return nil
		},
	}
}
