//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/cory-johannsen/diceroller/internal/config"
	"github.com/cory-johannsen/diceroller/internal/dice"
)

func initializeApp(cfg config.Config) (*app, error) {
	wire.Build(
		provideLogger,
		provideServerConfig,
		dice.NewCryptoSource,
		provideAuditor,
		dice.NewLoggedRoller,
		provideToolServer,
		wire.Struct(new(app), "*"),
	)
	return nil, nil
}
