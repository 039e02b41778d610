package contracts

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/ethclient"
)

// EthereumClient is the part of the node API used for campaign calls, transactions and deployment
type EthereumClient interface {
	bind.ContractBackend
	bind.DeployBackend
	ChainID(ctx context.Context) (*big.Int, error)
	Close()
}

// DialContext connects to the node, http(s) and ws(s) urls are supported
func DialContext(ctx context.Context, urlString string) (EthereumClient, error) {
	client, err := ethclient.DialContext(ctx, urlString)
	if err != nil {
		return nil, err
	}
	return client, nil
}
