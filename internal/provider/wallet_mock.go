package provider

import (
	"context"
	"math/big"
	"sync"

	"github.com/Lumerin-protocol/presale-minter/internal/repositories/contracts"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/atomic"
)

// WalletMock is a Wallet with a switchable network, used in tests
type WalletMock struct {
	ConnectErr error
	SignerErr  error
	Account    common.Address
	// SignerWait, when set, holds Signer until closed, simulating an open wallet prompt
	SignerWait chan struct{}

	mutex     sync.Mutex
	networkID uint64

	ConnectCalledTimes atomic.Int32
	SignerCalledTimes  atomic.Int32
}

func NewWalletMock(networkID uint64, account common.Address) *WalletMock {
	return &WalletMock{networkID: networkID, Account: account}
}

func (m *WalletMock) SetNetworkID(networkID uint64) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.networkID = networkID
}

func (m *WalletMock) Connect(ctx context.Context) (contracts.EthereumClient, error) {
	m.ConnectCalledTimes.Inc()
	if m.ConnectErr != nil {
		return nil, m.ConnectErr
	}
	return nil, nil
}

func (m *WalletMock) NetworkID(ctx context.Context) (uint64, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.networkID, nil
}

func (m *WalletMock) Signer(ctx context.Context) (Signer, error) {
	m.SignerCalledTimes.Inc()
	if m.SignerWait != nil {
		select {
		case <-m.SignerWait:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if m.SignerErr != nil {
		return nil, m.SignerErr
	}
	return &SignerMock{Addr: m.Account}, nil
}

// SignerMock returns transact options without a signing key, DeclineErr simulates the user declining
type SignerMock struct {
	Addr       common.Address
	DeclineErr error
}

func (s *SignerMock) Address() common.Address {
	return s.Addr
}

func (s *SignerMock) TransactOpts(ctx context.Context, value *big.Int) (*bind.TransactOpts, error) {
	if s.DeclineErr != nil {
		return nil, s.DeclineErr
	}
	return &bind.TransactOpts{From: s.Addr, Value: value, Context: ctx}, nil
}
