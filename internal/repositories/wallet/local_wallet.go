package wallet

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"sync"

	"github.com/Lumerin-protocol/presale-minter/internal/interfaces"
	"github.com/Lumerin-protocol/presale-minter/internal/lib"
	"github.com/Lumerin-protocol/presale-minter/internal/provider"
	"github.com/Lumerin-protocol/presale-minter/internal/repositories/contracts"
)

var ErrNoAccount = errors.New("no account configured, set WALLET_PRIVATE_KEY or WALLET_MNEMONIC")

type DialFunc func(ctx context.Context, url string) (contracts.EthereumClient, error)

// LocalWallet connects to a node over RPC and signs with a locally held key
type LocalWallet struct {
	// config
	nodeURL  string
	legacyTx bool

	// state
	mutex  sync.Mutex
	client contracts.EthereumClient
	key    *ecdsa.PrivateKey

	// deps
	dial DialFunc
	log  interfaces.ILogger
}

var _ provider.Wallet = (*LocalWallet)(nil)

// NewLocalWallet creates a wallet, key may be nil in which case only read-only connections are possible
func NewLocalWallet(nodeURL string, key *ecdsa.PrivateKey, legacyTx bool, dial DialFunc, log interfaces.ILogger) *LocalWallet {
	if dial == nil {
		dial = contracts.DialContext
	}
	return &LocalWallet{
		nodeURL:  nodeURL,
		legacyTx: legacyTx,
		key:      key,
		dial:     dial,
		log:      log,
	}
}

// Connect dials the node once and reuses the connection afterwards
func (w *LocalWallet) Connect(ctx context.Context) (contracts.EthereumClient, error) {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if w.client != nil {
		return w.client, nil
	}

	client, err := w.dial(ctx, w.nodeURL)
	if err != nil {
		return nil, err
	}
	w.log.Infof("connected to node %s", lib.RedactURL(w.nodeURL))

	w.client = client
	return client, nil
}

func (w *LocalWallet) NetworkID(ctx context.Context) (uint64, error) {
	client, err := w.Connect(ctx)
	if err != nil {
		return 0, err
	}
	chainID, err := client.ChainID(ctx)
	if err != nil {
		return 0, err
	}
	return chainID.Uint64(), nil
}

func (w *LocalWallet) Signer(ctx context.Context) (provider.Signer, error) {
	if w.key == nil {
		return nil, ErrNoAccount
	}

	client, err := w.Connect(ctx)
	if err != nil {
		return nil, err
	}
	chainID, err := client.ChainID(ctx)
	if err != nil {
		return nil, err
	}

	return NewKeyedSigner(w.key, chainID, client, w.legacyTx)
}

func (w *LocalWallet) Close() {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if w.client != nil {
		w.client.Close()
		w.client = nil
	}
}
