package provider

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Lumerin-protocol/presale-minter/internal/interfaces"
	"github.com/Lumerin-protocol/presale-minter/internal/lib"
	"go.uber.org/atomic"
)

// Gateway hands out handles to the campaign contract. The first successful connection
// is memoized for the lifetime of the process and dropped when the network changes.
type Gateway struct {
	// config
	networkID    uint64
	pollInterval time.Duration

	// state
	mutex         sync.Mutex
	handle        *Handle
	connecting    chan struct{} // held while wallet calls are in progress
	epoch         atomic.Uint64
	lastNetworkID atomic.Uint64
	listenersMu   sync.RWMutex
	listeners     []func(networkID uint64)

	// deps
	wallet      Wallet
	newContract ContractFactory
	log         interfaces.ILogger
}

func NewGateway(networkID uint64, pollInterval time.Duration, wallet Wallet, newContract ContractFactory, log interfaces.ILogger) *Gateway {
	return &Gateway{
		networkID:    networkID,
		pollInterval: pollInterval,
		connecting:   make(chan struct{}, 1),
		wallet:       wallet,
		newContract:  newContract,
		log:          log,
	}
}

func (g *Gateway) NetworkID() uint64 {
	return g.networkID
}

// Acquire returns a handle to the campaign contract. A signing handle is returned if requireSigner
// is set, otherwise any valid handle. Already acquired handles are reused without reconnecting.
// Wallet calls run outside of the handle lock, so a pending wallet prompt does not block
// callers that are served by the memoized handle.
func (g *Gateway) Acquire(ctx context.Context, requireSigner bool) (*Handle, error) {
	if h := g.current(requireSigner); h != nil {
		return h, nil
	}

	select {
	case g.connecting <- struct{}{}:
	case <-ctx.Done():
		return nil, lib.WrapError(ErrConnectionRejected, ctx.Err())
	}
	defer func() { <-g.connecting }()

	// connected by a concurrent caller while waiting
	if h := g.current(requireSigner); h != nil {
		return h, nil
	}

	epoch := g.epoch.Load()

	client, err := g.wallet.Connect(ctx)
	if err != nil {
		return nil, lib.WrapError(ErrConnectionRejected, err)
	}

	networkID, err := g.wallet.NetworkID(ctx)
	if err != nil {
		return nil, lib.WrapError(ErrConnectionRejected, err)
	}
	g.lastNetworkID.Store(networkID)

	if networkID != g.networkID {
		g.log.Warnf("connected to network %d, campaign requires %d", networkID, g.networkID)
		return nil, lib.WrapError(ErrWrongNetwork, fmt.Errorf("connected to %d, switch to %d", networkID, g.networkID))
	}

	var signer Signer
	if requireSigner {
		signer, err = g.wallet.Signer(ctx)
		if err != nil {
			return nil, lib.WrapError(ErrConnectionRejected, err)
		}
	}

	mode := ModeReadOnly
	if signer != nil {
		mode = ModeSigning
	}

	h := &Handle{
		networkID: networkID,
		mode:      mode,
		contract:  g.newContract(client),
		signer:    signer,
		epoch:     epoch,
		isCurrent: g.isCurrent,
	}

	g.mutex.Lock()
	defer g.mutex.Unlock()

	if !g.isCurrent(epoch) {
		g.log.Warnf("network changed while connecting, dropping handle")
		return nil, lib.WrapError(ErrConnectionRejected, ErrNetworkChanged)
	}
	g.handle = h

	if signer != nil {
		g.log.Infof("wallet connected, account %s, network %d", lib.AddrShort(signer.Address().Hex()), networkID)
	} else {
		g.log.Debugf("read-only provider connected, network %d", networkID)
	}

	return h, nil
}

// current returns the memoized handle if it is valid and satisfies the request
func (g *Gateway) current(requireSigner bool) *Handle {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	if h := g.handle; h != nil && h.Valid() && (!requireSigner || h.Mode() == ModeSigning) {
		return h
	}
	return nil
}

// Invalidate drops the memoized handle, all previously acquired handles become invalid
func (g *Gateway) Invalidate() {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	g.epoch.Inc()
	g.handle = nil
}

// OnNetworkChange registers a callback invoked after the gateway observed a network change
func (g *Gateway) OnNetworkChange(f func(networkID uint64)) {
	g.listenersMu.Lock()
	defer g.listenersMu.Unlock()
	g.listeners = append(g.listeners, f)
}

// Run watches the wallet network and invalidates handles when it changes
func (g *Gateway) Run(ctx context.Context) error {
	ticker := time.NewTicker(g.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			g.checkNetwork(ctx)
		}
	}
}

func (g *Gateway) checkNetwork(ctx context.Context) {
	networkID, err := g.wallet.NetworkID(ctx)
	if err != nil {
		g.log.Debugf("network check failed: %s", err)
		return
	}

	prev := g.lastNetworkID.Swap(networkID)
	if prev == 0 || prev == networkID {
		return
	}

	g.log.Warnf("network changed from %d to %d", prev, networkID)
	g.Invalidate()

	g.listenersMu.RLock()
	defer g.listenersMu.RUnlock()
	for _, f := range g.listeners {
		f(networkID)
	}
}

func (g *Gateway) isCurrent(epoch uint64) bool {
	return g.epoch.Load() == epoch
}
