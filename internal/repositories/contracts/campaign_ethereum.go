package contracts

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/Lumerin-protocol/presale-minter/internal/interfaces"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// CampaignCaller is the read side of the campaign contract
type CampaignCaller interface {
	Owner(ctx context.Context) (common.Address, error)
	PresaleStarted(ctx context.Context) (bool, error)
	PresaleEnded(ctx context.Context) (*big.Int, error)
	TokenIDs(ctx context.Context) (*big.Int, error)
}

// CampaignTransactor is the write side of the campaign contract
type CampaignTransactor interface {
	StartPresale(opts *bind.TransactOpts) (*types.Transaction, error)
	PresaleMint(opts *bind.TransactOpts) (*types.Transaction, error)
	Mint(opts *bind.TransactOpts) (*types.Transaction, error)
	WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error)
}

type Campaign interface {
	CampaignCaller
	CampaignTransactor
	Address() common.Address
}

type CampaignEthereum struct {
	// config
	address common.Address

	// deps
	contract *bind.BoundContract
	client   EthereumClient
	log      interfaces.ILogger
}

func NewCampaignEthereum(address common.Address, client EthereumClient, log interfaces.ILogger) *CampaignEthereum {
	parsed, err := abi.JSON(strings.NewReader(CampaignABI))
	if err != nil {
		panic("invalid campaign ABI: " + err.Error())
	}

	return &CampaignEthereum{
		address:  address,
		contract: bind.NewBoundContract(address, parsed, client, client, client),
		client:   client,
		log:      log,
	}
}

func (c *CampaignEthereum) Address() common.Address {
	return c.address
}

func (c *CampaignEthereum) Owner(ctx context.Context) (common.Address, error) {
	out, err := c.call(ctx, "owner")
	if err != nil {
		return common.Address{}, err
	}
	owner, ok := out.(common.Address)
	if !ok {
		return common.Address{}, fmt.Errorf("owner: unexpected output type %T", out)
	}
	return owner, nil
}

func (c *CampaignEthereum) PresaleStarted(ctx context.Context) (bool, error) {
	out, err := c.call(ctx, "presaleStarted")
	if err != nil {
		return false, err
	}
	started, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("presaleStarted: unexpected output type %T", out)
	}
	return started, nil
}

// PresaleEnded returns the presale end timestamp in unix seconds, zero before the presale is started
func (c *CampaignEthereum) PresaleEnded(ctx context.Context) (*big.Int, error) {
	return c.callUint(ctx, "presaleEnded")
}

// TokenIDs returns the number of minted tokens
func (c *CampaignEthereum) TokenIDs(ctx context.Context) (*big.Int, error) {
	return c.callUint(ctx, "tokenIds")
}

func (c *CampaignEthereum) StartPresale(opts *bind.TransactOpts) (*types.Transaction, error) {
	return c.transact(opts, "startPresale")
}

func (c *CampaignEthereum) PresaleMint(opts *bind.TransactOpts) (*types.Transaction, error) {
	return c.transact(opts, "presaleMint")
}

func (c *CampaignEthereum) Mint(opts *bind.TransactOpts) (*types.Transaction, error) {
	return c.transact(opts, "mint")
}

// WaitMined blocks until the transaction is included in a block, one confirmation is considered final
func (c *CampaignEthereum) WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	return bind.WaitMined(ctx, c.client, tx)
}

func (c *CampaignEthereum) call(ctx context.Context, method string) (interface{}, error) {
	var out []interface{}
	err := c.contract.Call(&bind.CallOpts{Context: ctx}, &out, method)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s: empty output", method)
	}
	return out[0], nil
}

func (c *CampaignEthereum) callUint(ctx context.Context, method string) (*big.Int, error) {
	out, err := c.call(ctx, method)
	if err != nil {
		return nil, err
	}
	value, ok := out.(*big.Int)
	if !ok {
		return nil, fmt.Errorf("%s: unexpected output type %T", method, out)
	}
	return value, nil
}

func (c *CampaignEthereum) transact(opts *bind.TransactOpts, method string) (*types.Transaction, error) {
	tx, err := c.contract.Transact(opts, method)
	if err != nil {
		return nil, err
	}
	c.log.Debugf("%s sent, tx %s, value %s wei", method, tx.Hash().Hex(), valueString(opts.Value))
	return tx, nil
}

func valueString(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}
