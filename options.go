package docforge

import (
	"go.uber.org/zap"

	"github.com/docforge/docforge/session"
)

// config holds session construction settings.
type config struct {
	logger    *zap.Logger
	statePath string
}

// defaultConfig returns the default settings: no logging and the shared
// state file in the system temp directory.
func defaultConfig() config {
	return config{
		logger:    nil,
		statePath: session.DefaultStatePath(),
	}
}

// Option configures a session at construction time.
type Option func(*config)

// WithLogger sets the logger used by the session and every layer under
// it. The default is no logging.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithStateFile sets the file the session records the open document's
// path in. An empty path disables state persistence.
func WithStateFile(path string) Option {
	return func(c *config) {
		c.statePath = path
	}
}
