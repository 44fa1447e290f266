package client

import "time"

// DefaultBaseURL is the address of a model server running on this machine.
const DefaultBaseURL = "http://localhost:11434"

// Config is the client configuration.
type Config struct {
	// BaseURL of the model server. Empty means DefaultBaseURL.
	BaseURL string

	// Timeout bounds a whole call, body included. Zero means no limit;
	// callers are expected to bound calls with a context deadline instead.
	Timeout time.Duration
}

// DefaultConfig returns the configuration used by the CLI.
func DefaultConfig() Config {
	return Config{BaseURL: DefaultBaseURL}
}
