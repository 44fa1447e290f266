// Command example sends one hardcoded chat request to the local model server
// and prints the request before and after the call.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/papercomputeco/kazama/client"
	"github.com/papercomputeco/kazama/pkg/llm"
	"github.com/papercomputeco/kazama/pkg/logger"
	"github.com/papercomputeco/kazama/pkg/output"
)

func main() {
	debug := flag.Bool("debug", false, "Enable debug logging")
	timeout := flag.Duration("timeout", 5*time.Minute, "Deadline for the request")
	flag.Parse()

	logger := logger.NewLogger(*debug, os.Stderr)
	err := run(logger, *timeout)
	_ = logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}

func run(logger *zap.Logger, timeout time.Duration) error {
	req := &llm.ChatRequest{
		Model: "gemma:2b",
		Messages: []llm.Message{
			{Role: "user", Content: "why is the moon white"},
		},
		Stream: false,
	}

	fmt.Printf("%+v\n", *req)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	c := client.New(client.DefaultConfig(), logger)
	resp, err := c.Chat(ctx, req)
	if err != nil {
		logger.Error("chat request failed", zap.Error(err))
		return err
	}

	if err := output.JSON(os.Stdout, resp); err != nil {
		logger.Error("failed to print response", zap.Error(err))
		return err
	}

	fmt.Printf("%+v\n", *req)
	return nil
}
