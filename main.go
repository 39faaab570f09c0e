package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"phototag/internal/memory"
)

func main() {
	memory.ConfigureFromEnv()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()

	if err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

// run executes one command and always releases what the command opened,
// including when it fails.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	a := &app{}
	cmd := newRootCommand(a)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if closeErr := a.close(); closeErr != nil && err == nil {
		err = closeErr
	}
	return err
}
