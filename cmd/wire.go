//go:build wireinject
// +build wireinject

package main

import (
	"github.com/Lumerin-protocol/presale-minter/internal/config"
	"github.com/Lumerin-protocol/presale-minter/internal/provider"
	"github.com/Lumerin-protocol/presale-minter/internal/repositories/wallet"
	"github.com/google/wire"
)

func initializeApp(cfg *config.Config, logs *Loggers) (*App, error) {
	wire.Build(
		provideKey,
		provideWallet,
		wire.Bind(new(provider.Wallet), new(*wallet.LocalWallet)),
		provideContractFactory,
		provideGateway,
		provideSession,
		provideReader,
		provideScheduler,
		provideSubmitter,
		provideService,
		provideMetadata,
		provideHTTPServer,
		newApp,
	)
	return nil, nil
}
