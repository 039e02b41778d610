package contracts

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/atomic"
)

// CampaignMock is a Campaign with overridable behaviour, unset functions return zero values
type CampaignMock struct {
	OwnerFunc          func(ctx context.Context) (common.Address, error)
	PresaleStartedFunc func(ctx context.Context) (bool, error)
	PresaleEndedFunc   func(ctx context.Context) (*big.Int, error)
	TokenIDsFunc       func(ctx context.Context) (*big.Int, error)
	TransactFunc       func(method string, opts *bind.TransactOpts) (*types.Transaction, error)
	WaitMinedFunc      func(ctx context.Context, tx *types.Transaction) (*types.Receipt, error)

	OwnerCalledTimes    atomic.Int32
	TokenIDsCalledTimes atomic.Int32
	TransactCalledTimes atomic.Int32
}

var _ Campaign = (*CampaignMock)(nil)

func (m *CampaignMock) Address() common.Address {
	return common.HexToAddress("0x000000000000000000000000000000000000c0de")
}

func (m *CampaignMock) Owner(ctx context.Context) (common.Address, error) {
	m.OwnerCalledTimes.Inc()
	if m.OwnerFunc == nil {
		return common.Address{}, nil
	}
	return m.OwnerFunc(ctx)
}

func (m *CampaignMock) PresaleStarted(ctx context.Context) (bool, error) {
	if m.PresaleStartedFunc == nil {
		return false, nil
	}
	return m.PresaleStartedFunc(ctx)
}

func (m *CampaignMock) PresaleEnded(ctx context.Context) (*big.Int, error) {
	if m.PresaleEndedFunc == nil {
		return big.NewInt(0), nil
	}
	return m.PresaleEndedFunc(ctx)
}

func (m *CampaignMock) TokenIDs(ctx context.Context) (*big.Int, error) {
	m.TokenIDsCalledTimes.Inc()
	if m.TokenIDsFunc == nil {
		return big.NewInt(0), nil
	}
	return m.TokenIDsFunc(ctx)
}

func (m *CampaignMock) StartPresale(opts *bind.TransactOpts) (*types.Transaction, error) {
	return m.transact("startPresale", opts)
}

func (m *CampaignMock) PresaleMint(opts *bind.TransactOpts) (*types.Transaction, error) {
	return m.transact("presaleMint", opts)
}

func (m *CampaignMock) Mint(opts *bind.TransactOpts) (*types.Transaction, error) {
	return m.transact("mint", opts)
}

func (m *CampaignMock) WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	if m.WaitMinedFunc == nil {
		return &types.Receipt{Status: types.ReceiptStatusSuccessful, TxHash: tx.Hash()}, nil
	}
	return m.WaitMinedFunc(ctx, tx)
}

func (m *CampaignMock) transact(method string, opts *bind.TransactOpts) (*types.Transaction, error) {
	m.TransactCalledTimes.Inc()
	if m.TransactFunc == nil {
		return types.NewTx(&types.LegacyTx{Value: opts.Value}), nil
	}
	return m.TransactFunc(method, opts)
}
