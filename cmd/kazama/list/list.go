package listcmder

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/kazama/cmd/kazama/env"
)

const listLongDesc string = `List the models available on the model server.

Reads /api/tags. On a terminal the models are shown as a table;
otherwise, or with --json, the server's reply is printed as JSON.

Examples:
  kazama list
  kazama list --json | jq '.models[].name'`

const listShortDesc string = "List local models"

type listCommander struct {
	env   *env.Env
	table bool
}

func NewListCmd(e *env.Env) *cobra.Command {
	cmder := &listCommander{env: e}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   listShortDesc,
		Long:    listLongDesc,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(cmd.Context(), cmd)
		},
	}

	cmd.Flags().BoolVar(&cmder.table, "table", false, "Print a table even when stdout is not a terminal")

	return cmd
}

func (c *listCommander) run(ctx context.Context, cmd *cobra.Command) error {
	if err := c.env.Setup(); err != nil {
		return err
	}

	ctx, cancel, err := c.env.Context(ctx)
	if err != nil {
		return err
	}
	defer cancel()

	resp, err := c.env.Client.ListModels(ctx)
	if err != nil {
		return fmt.Errorf("list models failed: %w", err)
	}

	return c.env.PrintModels(cmd, resp, c.table)
}
