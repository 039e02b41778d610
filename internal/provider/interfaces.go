package provider

import (
	"context"
	"math/big"

	"github.com/Lumerin-protocol/presale-minter/internal/repositories/contracts"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
)

// Wallet is the boundary to the account holder: it provides the node connection,
// reports the network the connection points to and hands out the signing capability
type Wallet interface {
	Connect(ctx context.Context) (contracts.EthereumClient, error)
	NetworkID(ctx context.Context) (uint64, error)
	Signer(ctx context.Context) (Signer, error)
}

// Signer authorizes transactions on behalf of the connected account
type Signer interface {
	Address() common.Address
	TransactOpts(ctx context.Context, value *big.Int) (*bind.TransactOpts, error)
}

// ContractFactory binds the campaign contract to a node connection
type ContractFactory func(client contracts.EthereumClient) contracts.Campaign
