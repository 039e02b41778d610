package main

import (
	"context"
	"crypto/ecdsa"
	"path/filepath"
	"time"

	"github.com/Lumerin-protocol/presale-minter/internal/campaign"
	"github.com/Lumerin-protocol/presale-minter/internal/config"
	"github.com/Lumerin-protocol/presale-minter/internal/handlers/httphandlers"
	"github.com/Lumerin-protocol/presale-minter/internal/interfaces"
	"github.com/Lumerin-protocol/presale-minter/internal/lib"
	"github.com/Lumerin-protocol/presale-minter/internal/metadata"
	"github.com/Lumerin-protocol/presale-minter/internal/provider"
	"github.com/Lumerin-protocol/presale-minter/internal/repositories/contracts"
	"github.com/Lumerin-protocol/presale-minter/internal/repositories/transport"
	"github.com/Lumerin-protocol/presale-minter/internal/repositories/wallet"
	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/sync/errgroup"
)

// Loggers are the per concern root loggers, each with its own level
type Loggers struct {
	App       *lib.Logger
	Scheduler *lib.Logger
	RPC       *lib.Logger
}

func newLoggers(cfg *config.Config) (*Loggers, error) {
	newLogger := func(level string, fileName string) (*lib.Logger, error) {
		opts := lib.LogOptions{
			Color:  cfg.Log.Color,
			IsProd: cfg.Log.IsProd,
			JSON:   cfg.Log.JSON,
		}
		if cfg.Log.FolderPath != "" {
			opts.FilePath = filepath.Join(cfg.Log.FolderPath, fileName)
		}
		return lib.NewLogger(level, opts)
	}

	appLog, err := newLogger(cfg.Log.LevelApp, "app.log")
	if err != nil {
		return nil, err
	}
	schedulerLog, err := newLogger(cfg.Log.LevelScheduler, "scheduler.log")
	if err != nil {
		return nil, err
	}
	rpcLog, err := newLogger(cfg.Log.LevelRPC, "rpc.log")
	if err != nil {
		return nil, err
	}

	return &Loggers{App: appLog, Scheduler: schedulerLog, RPC: rpcLog}, nil
}

func (l *Loggers) Sync() {
	_ = l.App.Sync()
	_ = l.Scheduler.Sync()
	_ = l.RPC.Sync()
}

// App runs the http server, the network watcher and the campaign service until one of them fails
type App struct {
	server  *transport.HTTPServer
	gateway *provider.Gateway
	service *campaign.Service
	wallet  *wallet.LocalWallet
	log     interfaces.ILogger
}

func newApp(server *transport.HTTPServer, gateway *provider.Gateway, service *campaign.Service, w *wallet.LocalWallet, logs *Loggers) *App {
	return &App{
		server:  server,
		gateway: gateway,
		service: service,
		wallet:  w,
		log:     logs.App,
	}
}

func (a *App) Run(ctx context.Context) error {
	defer a.wallet.Close()

	errGroup, ctx := errgroup.WithContext(ctx)
	errGroup.Go(func() error {
		return a.server.Run(ctx)
	})
	errGroup.Go(func() error {
		return a.gateway.Run(ctx)
	})
	errGroup.Go(func() error {
		return a.service.Run(ctx)
	})

	return errGroup.Wait()
}

func provideKey(cfg *config.Config) (*ecdsa.PrivateKey, error) {
	return wallet.KeyFromConfig(cfg.Wallet.PrivateKey, cfg.Wallet.Mnemonic, cfg.Wallet.AccountIndex)
}

func provideWallet(cfg *config.Config, key *ecdsa.PrivateKey, logs *Loggers) *wallet.LocalWallet {
	if key == nil {
		logs.App.Warnf("no wallet key configured, campaign is available read-only")
	}
	return wallet.NewLocalWallet(cfg.Blockchain.EthNodeAddress, key, cfg.Blockchain.EthLegacyTx, contracts.DialContext, logs.RPC.Named("WALLET"))
}

func provideContractFactory(cfg *config.Config, logs *Loggers) provider.ContractFactory {
	address := common.HexToAddress(cfg.Campaign.ContractAddress)
	log := logs.RPC.Named("CONTRACT")
	return func(client contracts.EthereumClient) contracts.Campaign {
		return contracts.NewCampaignEthereum(address, client, log)
	}
}

func provideGateway(cfg *config.Config, w provider.Wallet, factory provider.ContractFactory, logs *Loggers) *provider.Gateway {
	return provider.NewGateway(cfg.Blockchain.NetworkID, cfg.Blockchain.NetworkPollInterval, w, factory, logs.App.Named("GATEWAY"))
}

func provideSession(logs *Loggers) *campaign.Session {
	return campaign.NewSession(campaign.DefaultNotificationsLimit, time.Now, logs.App.Named("SESSION"))
}

func provideReader(logs *Loggers) *campaign.Reader {
	return campaign.NewReader(time.Now, logs.RPC.Named("READER"))
}

func provideScheduler(cfg *config.Config, gateway *provider.Gateway, reader *campaign.Reader, session *campaign.Session, logs *Loggers) *campaign.Scheduler {
	return campaign.NewScheduler(cfg.Campaign.PollInterval, gateway, reader, session, logs.Scheduler.Named("SCHEDULER"))
}

func provideSubmitter(cfg *config.Config, session *campaign.Session, scheduler *campaign.Scheduler, logs *Loggers) *campaign.Submitter {
	return campaign.NewSubmitter(cfg.MintPrice(), cfg.Campaign.TxTimeout, session, scheduler, time.Now, logs.App.Named("SUBMITTER"))
}

func provideService(cfg *config.Config, gateway *provider.Gateway, session *campaign.Session, scheduler *campaign.Scheduler, submitter *campaign.Submitter, logs *Loggers) *campaign.Service {
	svc := campaign.NewService(cfg.Campaign.MountOnStart, cfg.Campaign.AutoConnect, gateway, session, scheduler, submitter, time.Now, logs.App.Named("CAMPAIGN"))
	gateway.OnNetworkChange(svc.HandleNetworkChange)
	return svc
}

func provideMetadata(cfg *config.Config) *metadata.Responder {
	return metadata.NewResponder(cfg.Metadata.NamePrefix, cfg.Metadata.Description, cfg.Metadata.ImageBaseURL)
}

func provideHTTPServer(cfg *config.Config, svc *campaign.Service, md *metadata.Responder, logs *Loggers) *transport.HTTPServer {
	log := logs.App.Named("HTTP")
	handler := httphandlers.NewHTTPHandler(svc, md, cfg, log)
	return transport.NewHTTPServer(cfg.Web.Address, handler, log)
}
