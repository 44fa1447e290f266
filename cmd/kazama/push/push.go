package pushcmder

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/kazama/cmd/kazama/env"
)

const pushLongDesc string = `Ask the model server to upload a model to its registry.

The model name must include the namespace the server is allowed to
push to.

Examples:
  kazama push myuser/mymodel
  kazama push --stream myuser/mymodel:latest`

const pushShortDesc string = "Push a model to a registry"

type pushCommander struct {
	env    *env.Env
	stream bool
}

func NewPushCmd(e *env.Env) *cobra.Command {
	cmder := &pushCommander{env: e}

	cmd := &cobra.Command{
		Use:   "push <name>",
		Short: pushShortDesc,
		Long:  pushLongDesc,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(cmd.Context(), cmd, args[0])
		},
	}

	cmd.Flags().BoolVar(&cmder.stream, "stream", false, "Request streamed progress")

	return cmd
}

func (c *pushCommander) run(ctx context.Context, cmd *cobra.Command, name string) error {
	if err := c.env.Setup(); err != nil {
		return err
	}

	ctx, cancel, err := c.env.Context(ctx)
	if err != nil {
		return err
	}
	defer cancel()

	resp, err := c.env.Client.PushModel(ctx, name, c.stream)
	if err != nil {
		return fmt.Errorf("push %s failed: %w", name, err)
	}

	return c.env.Print(cmd, resp)
}
