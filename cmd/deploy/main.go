package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Lumerin-protocol/presale-minter/internal/config"
	"github.com/Lumerin-protocol/presale-minter/internal/lib"
	"github.com/Lumerin-protocol/presale-minter/internal/repositories/contracts"
	"github.com/Lumerin-protocol/presale-minter/internal/repositories/wallet"
	"github.com/ethereum/go-ethereum/common"
)

// Deploys the campaign contract and prints its address
func main() {
	err := deploy()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func deploy() error {
	var cfg config.DeployConfig
	err := config.LoadConfig(&cfg, &os.Args)
	if err != nil {
		return err
	}

	log, err := lib.NewLogger(cfg.LogLevel, lib.LogOptions{Color: true})
	if err != nil {
		return err
	}
	defer func() {
		_ = log.Sync()
	}()

	artifact, err := contracts.LoadArtifact(cfg.ArtifactPath)
	if err != nil {
		return err
	}

	key, err := lib.ParsePrivKey(cfg.PrivateKey)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	client, err := contracts.DialContext(ctx, cfg.EthNodeAddress)
	if err != nil {
		return err
	}
	defer client.Close()

	chainID, err := client.ChainID(ctx)
	if err != nil {
		return err
	}

	signer, err := wallet.NewKeyedSigner(key, chainID, client, cfg.EthLegacyTx)
	if err != nil {
		return err
	}
	opts, err := signer.TransactOpts(ctx, nil)
	if err != nil {
		return err
	}

	log.Infof("deploying %s from %s to network %s via %s", artifact.ContractName, signer.Address().Hex(), chainID, lib.RedactURL(cfg.EthNodeAddress))

	address, tx, err := contracts.Deploy(ctx, opts, client, artifact, cfg.MetadataURL, common.HexToAddress(cfg.WhitelistAddress))
	if err != nil {
		if tx != nil {
			log.Errorf("deployment tx %s was sent but not confirmed", tx.Hash().Hex())
		}
		return err
	}

	log.Infof("%s deployed at %s, tx %s", artifact.ContractName, address.Hex(), tx.Hash().Hex())
	fmt.Println(address.Hex())
	return nil
}
