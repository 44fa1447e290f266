package pscmder

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/kazama/cmd/kazama/env"
)

const psLongDesc string = `List the models currently loaded in memory.

Reads /api/ps and prints it like "kazama list".

Examples:
  kazama ps
  kazama ps --json`

const psShortDesc string = "List running models"

type psCommander struct {
	env   *env.Env
	table bool
}

func NewPsCmd(e *env.Env) *cobra.Command {
	cmder := &psCommander{env: e}

	cmd := &cobra.Command{
		Use:   "ps",
		Short: psShortDesc,
		Long:  psLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(cmd.Context(), cmd)
		},
	}

	cmd.Flags().BoolVar(&cmder.table, "table", false, "Print a table even when stdout is not a terminal")

	return cmd
}

func (c *psCommander) run(ctx context.Context, cmd *cobra.Command) error {
	if err := c.env.Setup(); err != nil {
		return err
	}

	ctx, cancel, err := c.env.Context(ctx)
	if err != nil {
		return err
	}
	defer cancel()

	resp, err := c.env.Client.ListRunning(ctx)
	if err != nil {
		return fmt.Errorf("list running models failed: %w", err)
	}

	return c.env.PrintModels(cmd, resp, c.table)
}
