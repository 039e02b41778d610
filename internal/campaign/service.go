package campaign

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/Lumerin-protocol/presale-minter/internal/interfaces"
	"github.com/Lumerin-protocol/presale-minter/internal/lib"
	"github.com/Lumerin-protocol/presale-minter/internal/provider"
	"github.com/ethereum/go-ethereum/core/types"
)

// Gateway is the part of provider.Gateway the service depends on
type Gateway interface {
	HandleSource
	Invalidate()
}

// Service is the entry point for the presentation layer. It connects the wallet,
// mounts the view polling and submits the user initiated transactions.
type Service struct {
	// config
	mountOnStart bool
	autoConnect  bool

	// state
	mutex   sync.Mutex
	baseCtx context.Context
	mount   *lib.Task

	// deps
	gateway   Gateway
	session   *Session
	scheduler *Scheduler
	submitter *Submitter
	clock     func() time.Time
	log       interfaces.ILogger
}

func NewService(mountOnStart, autoConnect bool, gateway Gateway, session *Session, scheduler *Scheduler, submitter *Submitter, clock func() time.Time, log interfaces.ILogger) *Service {
	if clock == nil {
		clock = time.Now
	}
	return &Service{
		mountOnStart: mountOnStart,
		autoConnect:  autoConnect,
		mount:        lib.NewTask("campaign-view", scheduler),
		gateway:      gateway,
		session:      session,
		scheduler:    scheduler,
		submitter:    submitter,
		clock:        clock,
		log:          log,
	}
}

// Run keeps the service context for mounting and unmounts the view on exit
func (s *Service) Run(ctx context.Context) error {
	s.mutex.Lock()
	s.baseCtx = ctx
	s.mutex.Unlock()

	if s.autoConnect {
		if err := s.Connect(ctx); err != nil {
			s.log.Warnf("auto connect failed: %s", err)
		}
	}
	if s.mountOnStart {
		if err := s.Mount(); err != nil {
			return err
		}
	}

	<-ctx.Done()
	<-s.Unmount()
	return ctx.Err()
}

// Connect acquires a signing handle and marks the wallet connected
func (s *Service) Connect(ctx context.Context) error {
	s.session.SetConnecting()

	h, err := s.gateway.Acquire(ctx, true)
	if err != nil {
		s.session.SetConnectionError(err)
		s.log.Warnf("wallet connection failed: %s", err)
		return err
	}

	s.session.SetConnected(h.Account())
	s.log.Infof("wallet connected, account %s", lib.AddrShort(h.Account().Hex()))

	if s.scheduler.IsMounted() {
		_ = s.scheduler.PollNow(ctx)
	}
	return nil
}

// Disconnect forgets the connected account and drops the memoized handle
func (s *Service) Disconnect() {
	s.gateway.Invalidate()
	s.session.Disconnect()
	s.log.Infof("wallet disconnected")
}

// HandleNetworkChange is registered as provider.Gateway network change callback
func (s *Service) HandleNetworkChange(networkID uint64) {
	if !s.session.IsConnected() {
		return
	}
	s.session.SetConnectionError(lib.WrapError(ErrNetworkChanged, fmt.Errorf("network %d", networkID)))
	s.log.Warnf("wallet switched to network %d, reconnect required", networkID)
}

func (s *Service) StartPresale(ctx context.Context) (*types.Receipt, error) {
	return s.submit(ctx, TxStartPresale, nil)
}

// PresaleMint mints during the presale, nil value attaches the configured mint price
func (s *Service) PresaleMint(ctx context.Context, value *big.Int) (*types.Receipt, error) {
	return s.submit(ctx, TxPresaleMint, value)
}

// PublicMint mints after the presale ended, nil value attaches the configured mint price
func (s *Service) PublicMint(ctx context.Context, value *big.Int) (*types.Receipt, error) {
	return s.submit(ctx, TxPublicMint, value)
}

func (s *Service) submit(ctx context.Context, kind TxKind, value *big.Int) (*types.Receipt, error) {
	if !s.session.IsConnected() {
		return nil, ErrNotConnected
	}
	h, err := s.gateway.Acquire(ctx, true)
	if err != nil {
		return nil, err
	}
	// the pending transaction must be resolved even if the caller goes away
	return s.submitter.Submit(context.WithoutCancel(ctx), kind, h, value)
}

// Mount starts polling the campaign state
func (s *Service) Mount() error {
	s.mutex.Lock()
	ctx := s.baseCtx
	s.mutex.Unlock()

	if ctx == nil {
		return ErrNotRunning
	}
	return s.mount.Start(ctx)
}

// Unmount stops polling, the returned channel is closed once the scheduler exited
func (s *Service) Unmount() <-chan struct{} {
	return s.mount.Stop()
}

func (s *Service) IsMounted() bool {
	return s.mount.IsRunning()
}

func (s *Service) View() ViewState {
	return s.session.View(s.clock())
}

func (s *Service) Snapshot() Snapshot {
	return s.session.Snapshot(s.clock())
}

func (s *Service) Notifications() []Notification {
	return s.session.DrainNotifications()
}

var _ interfaces.Runnable = (*Service)(nil)
var _ Gateway = (*provider.Gateway)(nil)
