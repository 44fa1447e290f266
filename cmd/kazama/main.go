package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/papercomputeco/kazama/cmd/kazama/env"
	rootcmder "github.com/papercomputeco/kazama/cmd/kazama/root"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	e := &env.Env{}
	err := rootcmder.NewRootCmd(e).ExecuteContext(ctx)
	if e.Logger != nil {
		_ = e.Logger.Sync()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
