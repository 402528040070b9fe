package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/soocke/blitzcrop/app"
	"github.com/soocke/blitzcrop/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Execute(ctx, NewLogger, app.Run)
	stop()
	os.Exit(code)
}
