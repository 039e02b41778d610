package wallet

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"

	"github.com/Lumerin-protocol/presale-minter/internal/lib"
	"github.com/Lumerin-protocol/presale-minter/internal/provider"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	hdwallet "github.com/miguelmota/go-ethereum-hdwallet"
)

type GasPriceSuggester interface {
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
}

// KeyedSigner signs transactions with a private key held in memory
type KeyedSigner struct {
	// config
	chainID  *big.Int
	legacyTx bool // use legacy transaction fee, for local node testing

	// state
	key     *ecdsa.PrivateKey
	address common.Address

	// deps
	gas GasPriceSuggester
}

var _ provider.Signer = (*KeyedSigner)(nil)

func NewKeyedSigner(key *ecdsa.PrivateKey, chainID *big.Int, gas GasPriceSuggester, legacyTx bool) (*KeyedSigner, error) {
	address, err := lib.PrivKeyToAddr(key)
	if err != nil {
		return nil, err
	}
	return &KeyedSigner{
		chainID:  new(big.Int).Set(chainID),
		legacyTx: legacyTx,
		key:      key,
		address:  address,
		gas:      gas,
	}, nil
}

func (s *KeyedSigner) Address() common.Address {
	return s.address
}

// TransactOpts returns options for a single transaction, nonce and gas are estimated by the node
func (s *KeyedSigner) TransactOpts(ctx context.Context, value *big.Int) (*bind.TransactOpts, error) {
	opts, err := bind.NewKeyedTransactorWithChainID(s.key, s.chainID)
	if err != nil {
		return nil, lib.WrapError(provider.ErrSignerDeclined, err)
	}

	if s.legacyTx {
		gasPrice, err := s.gas.SuggestGasPrice(ctx)
		if err != nil {
			return nil, err
		}
		opts.GasPrice = gasPrice
	}

	opts.Value = value
	opts.Context = ctx
	return opts, nil
}

// KeyFromMnemonic derives the account at m/44'/60'/0'/0/{accountIndex}
func KeyFromMnemonic(mnemonic string, accountIndex int) (*ecdsa.PrivateKey, error) {
	wallet, err := hdwallet.NewFromMnemonic(mnemonic)
	if err != nil {
		return nil, err
	}

	path, err := hdwallet.ParseDerivationPath(fmt.Sprintf("m/44'/60'/0'/0/%d", accountIndex))
	if err != nil {
		return nil, err
	}

	account, err := wallet.Derive(path, false)
	if err != nil {
		return nil, err
	}

	return wallet.PrivateKey(account)
}

// KeyFromConfig picks the private key if set, otherwise derives one from the mnemonic.
// Returns nil key without error if neither is configured.
func KeyFromConfig(privateKey string, mnemonic string, accountIndex int) (*ecdsa.PrivateKey, error) {
	if privateKey != "" {
		return lib.ParsePrivKey(privateKey)
	}
	if mnemonic != "" {
		return KeyFromMnemonic(mnemonic, accountIndex)
	}
	return nil, nil
}
