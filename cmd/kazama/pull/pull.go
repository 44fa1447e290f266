package pullcmder

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/kazama/cmd/kazama/env"
)

const pullLongDesc string = `Ask the model server to download a model.

The call returns once the server answers. --stream is forwarded to the
server but progress updates are not consumed, so a streamed reply is
reported as an error.

Examples:
  kazama pull gemma:2b
  kazama pull --timeout 30m llama3:70b`

const pullShortDesc string = "Pull a model"

type pullCommander struct {
	env    *env.Env
	stream bool
}

func NewPullCmd(e *env.Env) *cobra.Command {
	cmder := &pullCommander{env: e}

	cmd := &cobra.Command{
		Use:   "pull <name>",
		Short: pullShortDesc,
		Long:  pullLongDesc,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(cmd.Context(), cmd, args[0])
		},
	}

	cmd.Flags().BoolVar(&cmder.stream, "stream", false, "Request streamed progress")

	return cmd
}

func (c *pullCommander) run(ctx context.Context, cmd *cobra.Command, name string) error {
	if err := c.env.Setup(); err != nil {
		return err
	}

	ctx, cancel, err := c.env.Context(ctx)
	if err != nil {
		return err
	}
	defer cancel()

	resp, err := c.env.Client.PullModel(ctx, name, c.stream)
	if err != nil {
		return fmt.Errorf("pull %s failed: %w", name, err)
	}

	return c.env.Print(cmd, resp)
}
