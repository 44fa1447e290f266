// Package env holds the state shared by every kazama subcommand: the loaded
// configuration, the logger and the model server client.
package env

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/papercomputeco/kazama/client"
	"github.com/papercomputeco/kazama/pkg/config"
	"github.com/papercomputeco/kazama/pkg/llm"
	"github.com/papercomputeco/kazama/pkg/logger"
	"github.com/papercomputeco/kazama/pkg/output"
)

// ErrNoModel is returned when neither --model nor the config names a model.
var ErrNoModel = errors.New("no model given: pass --model or set model in the config file")

// ErrNegativeTimeout is returned when --timeout is below zero.
var ErrNegativeTimeout = errors.New("--timeout must not be negative")

// Env is populated from persistent flags and lazily set up on first use.
type Env struct {
	// Persistent flags
	ConfigPath string
	Debug      bool
	Timeout    time.Duration
	JSON       bool

	// ClientConfig is used as is when set; the zero value means client.DefaultConfig.
	ClientConfig client.Config

	// LogOutput receives log lines; nil means os.Stderr.
	LogOutput io.Writer

	Config *config.Config
	Logger *zap.Logger
	Client *client.Client
}

// AddFlags registers the persistent flags on the root command.
func (e *Env) AddFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVarP(&e.ConfigPath, "config", "c", "", "Path to config file (default ~/.kazama/config.toml)")
	flags.BoolVar(&e.Debug, "debug", false, "Enable debug logging")
	flags.DurationVar(&e.Timeout, "timeout", 0, "Deadline for the request (e.g. 30s); 0 uses the config value")
	flags.BoolVar(&e.JSON, "json", false, "Always print raw JSON")
}

// Setup loads the config and builds the logger and client. It is a no-op once
// a client exists.
func (e *Env) Setup() error {
	if e.Client != nil {
		return nil
	}

	cfg, err := config.Load(e.ConfigPath)
	if err != nil {
		return fmt.Errorf("could not load config: %w", err)
	}
	e.Config = cfg

	if e.Logger == nil {
		w := e.LogOutput
		if w == nil {
			w = os.Stderr
		}
		e.Logger = logger.NewLogger(e.Debug || cfg.Debug, w)
	}

	clientConfig := e.ClientConfig
	if clientConfig == (client.Config{}) {
		clientConfig = client.DefaultConfig()
	}
	e.Client = client.New(clientConfig, e.Logger)

	e.Logger.Debug("kazama configured",
		zap.String("server", e.Client.BaseURL()),
		zap.String("config", e.ConfigPath),
		zap.String("default_model", cfg.Model),
	)
	return nil
}

// Context derives the context for one request, applying --timeout or the
// configured timeout when either is set.
func (e *Env) Context(parent context.Context) (context.Context, context.CancelFunc, error) {
	timeout := e.Timeout
	if timeout < 0 {
		return nil, nil, fmt.Errorf("%w: got %s", ErrNegativeTimeout, timeout)
	}
	if timeout == 0 && e.Config != nil {
		d, err := e.Config.TimeoutDuration()
		if err != nil {
			return nil, nil, err
		}
		timeout = d
	}

	if timeout > 0 {
		ctx, cancel := context.WithTimeout(parent, timeout)
		return ctx, cancel, nil
	}
	ctx, cancel := context.WithCancel(parent)
	return ctx, cancel, nil
}

// Model resolves the model name from a flag value and the config.
func (e *Env) Model(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if e.Config != nil && e.Config.Model != "" {
		return e.Config.Model, nil
	}
	return "", ErrNoModel
}

// Terminal returns the command's stdout when it is a terminal.
func (e *Env) Terminal(cmd *cobra.Command) (*os.File, bool) {
	f, ok := cmd.OutOrStdout().(*os.File)
	if !ok || !output.IsTerminal(f) {
		return nil, false
	}
	return f, true
}

// Print writes a response as JSON and logs server-side error bodies.
func (e *Env) Print(cmd *cobra.Command, resp llm.Response) error {
	if msg, ok := output.ServerError(resp); ok {
		e.Logger.Warn("server reported an error", zap.String("error", msg))
	}
	return output.JSON(cmd.OutOrStdout(), resp)
}

// PrintModels writes a model listing as a table when asked to, or when stdout
// is a terminal and --json is not set, and as JSON otherwise.
func (e *Env) PrintModels(cmd *cobra.Command, resp llm.Response, table bool) error {
	if !e.JSON {
		if _, ok := e.Terminal(cmd); ok || table {
			return output.ModelTable(cmd.OutOrStdout(), resp)
		}
	}
	return e.Print(cmd, resp)
}
