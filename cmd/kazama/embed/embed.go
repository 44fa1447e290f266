package embedcmder

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/papercomputeco/kazama/cmd/kazama/env"
	"github.com/papercomputeco/kazama/pkg/llm"
)

const embedLongDesc string = `Generate embeddings for one or more prompts.

Each prompt is sent as its own /api/embeddings request. Several prompts
are embedded concurrently and printed in the order given as a JSON
array of {"prompt", "response"} objects; a single prompt prints the
server's reply directly.

Examples:
  kazama embed -m nomic-embed-text "Generate embeddings from this prompt"
  kazama embed -m nomic-embed-text --concurrency 2 first second third`

const embedShortDesc string = "Generate embeddings"

type embedCommander struct {
	env         *env.Env
	model       string
	concurrency int
}

type embedding struct {
	Prompt   string       `json:"prompt"`
	Response llm.Response `json:"response"`
}

func NewEmbedCmd(e *env.Env) *cobra.Command {
	cmder := &embedCommander{env: e}

	cmd := &cobra.Command{
		Use:   "embed <prompt...>",
		Short: embedShortDesc,
		Long:  embedLongDesc,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(cmd.Context(), cmd, args)
		},
	}

	cmd.Flags().StringVarP(&cmder.model, "model", "m", "", "Embedding model")
	cmd.Flags().IntVar(&cmder.concurrency, "concurrency", 4, "Requests in flight at once")

	return cmd
}

func (c *embedCommander) run(ctx context.Context, cmd *cobra.Command, prompts []string) error {
	if err := c.env.Setup(); err != nil {
		return err
	}

	if c.concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", c.concurrency)
	}

	model, err := c.env.Model(c.model)
	if err != nil {
		return err
	}

	ctx, cancel, err := c.env.Context(ctx)
	if err != nil {
		return err
	}
	defer cancel()

	results := make([]embedding, len(prompts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for i, prompt := range prompts {
		g.Go(func() error {
			resp, err := c.env.Client.GenerateEmbeddings(gctx, model, prompt)
			if err != nil {
				return fmt.Errorf("embed prompt %d failed: %w", i+1, err)
			}
			results[i] = embedding{Prompt: prompt, Response: resp}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	c.env.Logger.Debug("embedded prompts",
		zap.String("model", model),
		zap.Int("count", len(prompts)),
	)

	if len(results) == 1 {
		return c.env.Print(cmd, results[0].Response)
	}
	return c.env.Print(cmd, results)
}
