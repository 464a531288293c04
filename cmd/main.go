package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Badsnus/qrgen-studio/cmd/qrgen"

	_ "time/tzdata"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := qrgen.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
