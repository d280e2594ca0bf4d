package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"strata/internal/model"
)

func main() {
	cmd := newRootCommand(model.NewRegistry())
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
