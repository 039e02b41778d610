package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Lumerin-protocol/presale-minter/internal/config"
	"github.com/Lumerin-protocol/presale-minter/internal/lib"
)

func main() {
	err := start()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func start() error {
	var cfg config.Config
	err := config.LoadConfig(&cfg, &os.Args)
	if err != nil {
		return err
	}

	logs, err := newLoggers(&cfg)
	if err != nil {
		return err
	}
	defer logs.Sync()

	log := logs.App
	log.Infof("presale-minter %s, campaign %s on network %d", config.BuildVersion, lib.AddrShort(cfg.Campaign.ContractAddress), cfg.Blockchain.NetworkID)
	log.Debugf("config: %+v", cfg.GetSanitized())

	app, err := initializeApp(&cfg, logs)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		s := <-shutdownChan
		log.Warnf("Received signal: %s", s)
		cancel()

		s = <-shutdownChan
		log.Warnf("Received signal: %s. Forcing exit...", s)
		os.Exit(1)
	}()

	err = app.Run(ctx)
	if errors.Is(err, context.Canceled) {
		log.Infof("App exited")
		return nil
	}
	log.Errorf("App exited due to %s", err)
	return err
}
