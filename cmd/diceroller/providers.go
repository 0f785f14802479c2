package main

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/diceroller/internal/config"
	"github.com/cory-johannsen/diceroller/internal/dice"
	"github.com/cory-johannsen/diceroller/internal/observability"
	"github.com/cory-johannsen/diceroller/internal/toolserver"
)

// app bundles the components shared by every subcommand.
type app struct {
	logger     *zap.Logger
	roller     *dice.Roller
	toolServer *toolserver.Server
}

func provideLogger(cfg config.Config) (*zap.Logger, error) {
	return observability.NewLogger(cfg.Logging, serviceName)
}

func provideServerConfig(cfg config.Config) config.ServerConfig {
	return cfg.Server
}

func provideAuditor(cfg config.Config) dice.Auditor {
	return dice.DefaultAuditor(cfg.Dice.RNGSource)
}

func provideToolServer(cfg config.ServerConfig, roller *dice.Roller, logger *zap.Logger) *toolserver.Server {
	return toolserver.New(cfg, roller, logger)
}
