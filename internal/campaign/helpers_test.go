package campaign

import (
	"context"
	"time"

	"github.com/Lumerin-protocol/presale-minter/internal/lib"
	"github.com/Lumerin-protocol/presale-minter/internal/provider"
	"github.com/Lumerin-protocol/presale-minter/internal/repositories/contracts"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/atomic"
)

const testNetworkID = 4

var (
	testNow   = time.Unix(1_700_000_000, 0)
	testOwner = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	testUser  = common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
)

func fixedClock() time.Time {
	return testNow
}

func newTestSession() *Session {
	return NewSession(0, fixedClock, lib.NewTestLogger())
}

func newSigningHandle(contract contracts.Campaign, account common.Address) *provider.Handle {
	return provider.NewStaticHandle(testNetworkID, contract, &provider.SignerMock{Addr: account})
}

func newReadOnlyHandle(contract contracts.Campaign) *provider.Handle {
	return provider.NewStaticHandle(testNetworkID, contract, nil)
}

// staticHandles always returns the same handle
type staticHandles struct {
	handle *provider.Handle
	err    error

	invalidatedTimes atomic.Int32
}

func (s *staticHandles) Acquire(ctx context.Context, requireSigner bool) (*provider.Handle, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.handle, nil
}

func (s *staticHandles) Invalidate() {
	s.invalidatedTimes.Inc()
}

type pollerMock struct {
	calledTimes atomic.Int32
}

func (p *pollerMock) PollNow(ctx context.Context) error {
	p.calledTimes.Inc()
	return nil
}
