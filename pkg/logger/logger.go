// Package logger constructs the zap logger shared by GraphBuilder and the
// service orchestrator. It never touches the hot A* relaxation loop.
package logger

import "go.uber.org/zap"

// New builds a development-mode zap logger: human-readable console
// encoding, caller info on every entry, stack traces on warnings and
// above.
func New() (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	return cfg.Build()
}

// NewNop returns a logger that discards everything, used as the default
// when a caller constructs a component without one.
func NewNop() *zap.Logger {
	return zap.NewNop()
}
