// Command comicstrip renders up to ten images into a comic strip PNG.
//
// Usage:
//
//	comicstrip render [flags] image...
//	comicstrip geometry --rows 3
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
