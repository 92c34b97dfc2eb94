package app

import (
	"os"

	"service-fleet-dispatch/internal/config"
	"service-fleet-dispatch/internal/logx"
)

// NewLogger returns the process JSON logger at the configured level.
func NewLogger(cfg *config.Config) logx.Logger {
	return logx.NewJSON(os.Stdout, cfg.LogLevel).With(logx.String("service", "fleet-dispatch"))
}
