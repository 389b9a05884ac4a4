package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"subtrans/internal/services"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}

func reportError(w io.Writer, err error) {
	if err == nil || errors.Is(err, context.Canceled) {
		return
	}
	fmt.Fprintln(w, "Error:", err)
	if hint := services.Hint(err); hint != "" {
		fmt.Fprintln(w, "Hint:", hint)
	}
}
