package provider

import (
	"context"
	"math/big"

	"github.com/Lumerin-protocol/presale-minter/internal/repositories/contracts"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
)

type Mode int

const (
	ModeReadOnly Mode = iota
	ModeSigning
)

func (m Mode) String() string {
	switch m {
	case ModeReadOnly:
		return "read-only"
	case ModeSigning:
		return "signing"
	}
	return "unknown"
}

// Handle is a capability to call the campaign contract on the campaign network.
// A handle becomes invalid when the gateway observes a network change.
type Handle struct {
	networkID uint64
	mode      Mode
	contract  contracts.Campaign
	signer    Signer // nil for read-only handles

	epoch     uint64
	isCurrent func(epoch uint64) bool
}

// NewStaticHandle creates a handle that is not tracked by a gateway and never becomes invalid
func NewStaticHandle(networkID uint64, contract contracts.Campaign, signer Signer) *Handle {
	mode := ModeReadOnly
	if signer != nil {
		mode = ModeSigning
	}
	return &Handle{
		networkID: networkID,
		mode:      mode,
		contract:  contract,
		signer:    signer,
		isCurrent: func(uint64) bool { return true },
	}
}

func (h *Handle) NetworkID() uint64 {
	return h.networkID
}

func (h *Handle) Mode() Mode {
	return h.mode
}

// Account returns the address of the connected account, zero address for read-only handles
func (h *Handle) Account() common.Address {
	if h.signer == nil {
		return common.Address{}
	}
	return h.signer.Address()
}

func (h *Handle) Contract() contracts.Campaign {
	return h.contract
}

// Valid reports whether the handle may still be used for calls
func (h *Handle) Valid() bool {
	return h.isCurrent(h.epoch)
}

// TransactOpts prepares signed transaction options with value attached, nil value sends no funds
func (h *Handle) TransactOpts(ctx context.Context, value *big.Int) (*bind.TransactOpts, error) {
	if h.signer == nil {
		return nil, ErrReadOnlyHandle
	}
	return h.signer.TransactOpts(ctx, value)
}
