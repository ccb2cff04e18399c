package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/llxisdsh/synxkit/cmd/synxkit/command"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := command.NewRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
