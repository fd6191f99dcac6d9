// Command leap is the command line interface of the leap SQL toolkit.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/leapdb/leap/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cli.Execute(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
