// Package rootcmder assembles the kazama command tree.
package rootcmder

import (
	"github.com/spf13/cobra"

	chatcmder "github.com/papercomputeco/kazama/cmd/kazama/chat"
	embedcmder "github.com/papercomputeco/kazama/cmd/kazama/embed"
	"github.com/papercomputeco/kazama/cmd/kazama/env"
	listcmder "github.com/papercomputeco/kazama/cmd/kazama/list"
	pscmder "github.com/papercomputeco/kazama/cmd/kazama/ps"
	pullcmder "github.com/papercomputeco/kazama/cmd/kazama/pull"
	pushcmder "github.com/papercomputeco/kazama/cmd/kazama/push"
)

const rootLongDesc string = `kazama talks to the model server running on this machine
(http://localhost:11434): chat with a model, pull and push models,
generate embeddings and list what is installed or running.

Defaults for --model, the chat role, the request timeout and markdown
rendering can be kept in ~/.kazama/config.toml:

  model   = "gemma:2b"
  role    = "user"
  timeout = "2m"
  render  = true
  debug   = false`

const rootShortDesc string = "Client for a local model server"

// NewRootCmd builds the root command around e. Passing a prepared Env lets
// callers point the commands at a different server.
func NewRootCmd(e *env.Env) *cobra.Command {
	if e == nil {
		e = &env.Env{}
	}

	cmd := &cobra.Command{
		Use:           "kazama",
		Short:         rootShortDesc,
		Long:          rootLongDesc,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.Setup()
		},
	}

	e.AddFlags(cmd)

	cmd.AddCommand(chatcmder.NewChatCmd(e))
	cmd.AddCommand(pullcmder.NewPullCmd(e))
	cmd.AddCommand(embedcmder.NewEmbedCmd(e))
	cmd.AddCommand(listcmder.NewListCmd(e))
	cmd.AddCommand(pscmder.NewPsCmd(e))
	cmd.AddCommand(pushcmder.NewPushCmd(e))

	return cmd
}
