package chatcmder

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/kazama/cmd/kazama/env"
	"github.com/papercomputeco/kazama/pkg/output"
)

const chatLongDesc string = `Send a single chat message to a model and print the reply.

The message is sent with stream=false and the server's JSON reply is
printed as is. With --render the assistant's answer is rendered as
markdown instead when stdout is a terminal.

Examples:
  kazama chat --model gemma:2b why is the moon white
  kazama chat -m llama3:8b --role system "You are terse."
  kazama chat -m gemma:2b --render "explain goroutines"`

const chatShortDesc string = "Chat with a model"

type chatCommander struct {
	env    *env.Env
	model  string
	role   string
	render bool
}

func NewChatCmd(e *env.Env) *cobra.Command {
	cmder := &chatCommander{env: e}

	cmd := &cobra.Command{
		Use:   "chat <message...>",
		Short: chatShortDesc,
		Long:  chatLongDesc,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(cmd.Context(), cmd, strings.Join(args, " "))
		},
	}

	cmd.Flags().StringVarP(&cmder.model, "model", "m", "", "Model to chat with")
	cmd.Flags().StringVarP(&cmder.role, "role", "r", "", "Role of the message (default from config, else \"user\")")
	cmd.Flags().BoolVar(&cmder.render, "render", false, "Render the reply as markdown on terminals")

	return cmd
}

func (c *chatCommander) run(ctx context.Context, cmd *cobra.Command, content string) error {
	if err := c.env.Setup(); err != nil {
		return err
	}

	model, err := c.env.Model(c.model)
	if err != nil {
		return err
	}

	role := c.role
	if role == "" {
		role = c.env.Config.Role
	}

	ctx, cancel, err := c.env.Context(ctx)
	if err != nil {
		return err
	}
	defer cancel()

	resp, err := c.env.Client.ChatCompletion(ctx, model, content, role)
	if err != nil {
		return fmt.Errorf("chat with %s failed: %w", model, err)
	}

	if (c.render || c.env.Config.Render) && !c.env.JSON {
		if f, ok := c.env.Terminal(cmd); ok {
			if reply, ok := output.ChatContent(resp); ok {
				return output.Markdown(f, reply, output.Width(f))
			}
		}
	}

	return c.env.Print(cmd, resp)
}
