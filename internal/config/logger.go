package config

import (
	"go.uber.org/zap"
)

// NewLogger builds the process-wide zap logger. Release mode gets the
// production config; anything else gets the development console encoder.
func NewLogger(env Env) (*zap.Logger, error) {
	if env.GinMode == "release" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
