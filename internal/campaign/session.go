package campaign

import (
	"errors"
	"sync"
	"time"

	"github.com/Lumerin-protocol/presale-minter/internal/interfaces"
	"github.com/Lumerin-protocol/presale-minter/internal/lib"
	"github.com/Lumerin-protocol/presale-minter/internal/metrics"
	"github.com/Lumerin-protocol/presale-minter/internal/provider"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gammazero/deque"
	"github.com/google/uuid"
)

const (
	ReasonWrongNetwork       = "wrong_network"
	ReasonConnectionRejected = "connection_rejected"
	ReasonNetworkChanged     = "network_changed"
	ReasonUnknown            = "unknown"

	DefaultNotificationsLimit = 32
)

// PollTicket orders reads by issue time. Seq is strictly increasing per session,
// StartedAt is informational.
type PollTicket struct {
	Seq       uint64
	StartedAt time.Time
}

// Snapshot is a consistent copy of the session state
type Snapshot struct {
	View            ViewState
	WalletConnected bool
	Account         common.Address
	IsOwner         bool
	Facts           *Facts
	Pending         *PendingTransaction
	ReadError       error
}

// Session holds the inputs of the view state. Every input change goes through it,
// the view itself is never stored and always derived on demand.
type Session struct {
	// config
	notificationsLimit int

	// state
	mutex           sync.Mutex
	walletConnected bool
	account         common.Address
	connecting      bool
	connErr         error
	facts           *Facts
	issuedSeq       uint64
	appliedSeq      uint64
	pending         *PendingTransaction
	readErr         error
	notifications   *deque.Deque[Notification]

	// deps
	clock func() time.Time
	log   interfaces.ILogger
}

func NewSession(notificationsLimit int, clock func() time.Time, log interfaces.ILogger) *Session {
	if notificationsLimit <= 0 {
		notificationsLimit = DefaultNotificationsLimit
	}
	if clock == nil {
		clock = time.Now
	}
	return &Session{
		notificationsLimit: notificationsLimit,
		notifications:      deque.New[Notification](notificationsLimit, notificationsLimit),
		clock:              clock,
		log:                log,
	}
}

// IssuePoll registers a new read and returns its ticket
func (s *Session) IssuePoll() PollTicket {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.issuedSeq++
	return PollTicket{Seq: s.issuedSeq, StartedAt: s.clock()}
}

// ApplyFacts replaces the facts with the read result unless a later issued read was
// already applied. Returns false if the result was dropped as stale.
func (s *Session) ApplyFacts(ticket PollTicket, facts Facts) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if !s.isFresh(ticket) {
		return false
	}

	// the presale can not be stopped, a lagging node may still report it as not started
	if prev := s.facts; prev != nil && prev.PresaleStarted && !facts.PresaleStarted {
		s.log.Debugf("poll %d reported presale not started after it was observed started, keeping phase", ticket.Seq)
		facts.PresaleStarted = true
		facts.PresaleEndTimestamp = prev.PresaleEndTimestamp
		facts.OwnerAddress = prev.OwnerAddress
	}

	s.appliedSeq = ticket.Seq
	s.facts = &facts
	s.readErr = nil

	metrics.MintedCount.Set(float64(facts.MintedCount))
	if facts.PresaleStarted {
		metrics.PresaleStarted.Set(1)
	}
	return true
}

// ApplyMinted updates only the minted count of the current facts. Dropped if stale or
// if no facts were read yet.
func (s *Session) ApplyMinted(ticket PollTicket, minted uint64, readAt time.Time) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.facts == nil || !s.isFresh(ticket) {
		return false
	}

	facts := s.facts.WithMintedCount(minted, readAt)
	s.appliedSeq = ticket.Seq
	s.facts = &facts
	s.readErr = nil

	metrics.MintedCount.Set(float64(minted))
	return true
}

// ApplyReadError flags a failed read. The last known facts are kept.
func (s *Session) ApplyReadError(ticket PollTicket, err error) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if !s.isFresh(ticket) {
		return false
	}
	s.readErr = err
	return true
}

func (s *Session) isFresh(ticket PollTicket) bool {
	if ticket.Seq <= s.appliedSeq {
		metrics.Polls.WithLabelValues(metrics.PollStale).Inc()
		s.log.Debugf("dropping stale poll %d, last applied %d", ticket.Seq, s.appliedSeq)
		return false
	}
	return true
}

func (s *Session) IsConnected() bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.walletConnected
}

func (s *Session) SetConnecting() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.connecting = true
	s.connErr = nil
}

func (s *Session) SetConnected(account common.Address) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.walletConnected = true
	s.account = account
	s.connecting = false
	s.connErr = nil
}

// SetConnectionError marks the wallet as disconnected and keeps the error as the view reason
func (s *Session) SetConnectionError(err error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.walletConnected = false
	s.account = common.Address{}
	s.connecting = false
	s.connErr = err
}

func (s *Session) Disconnect() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.walletConnected = false
	s.account = common.Address{}
	s.connecting = false
	s.connErr = nil
}

// BeginTx creates the pending transaction. Only one transaction may be pending at a time.
func (s *Session) BeginTx(kind TxKind) (*PendingTransaction, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.pending != nil {
		return nil, lib.WrapError(ErrTxInFlight, errors.New(s.pending.Kind.String()))
	}

	s.pending = &PendingTransaction{
		ID:          uuid.New(),
		Kind:        kind,
		SubmittedAt: s.clock(),
	}
	return s.pending, nil
}

// EndTx destroys the pending transaction and queues a notification with the outcome.
// Returns false if p is not the current pending transaction.
func (s *Session) EndTx(p *PendingTransaction, err error) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if p == nil || s.pending == nil || s.pending.ID != p.ID {
		return false
	}
	s.pending = nil

	n := Notification{
		ID:        uuid.New(),
		TxID:      p.ID,
		TxKind:    p.Kind,
		Level:     NotificationSuccess,
		Message:   p.Kind.String() + " confirmed",
		CreatedAt: s.clock(),
	}
	if err != nil {
		n.Level = NotificationError
		n.Message = err.Error()
	}

	for s.notifications.Len() >= s.notificationsLimit {
		s.notifications.PopFront()
	}
	s.notifications.PushBack(n)

	return true
}

// DrainNotifications returns the queued notifications oldest first and clears the queue
func (s *Session) DrainNotifications() []Notification {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	res := make([]Notification, 0, s.notifications.Len())
	for s.notifications.Len() > 0 {
		res = append(res, s.notifications.PopFront())
	}
	return res
}

func (s *Session) View(now time.Time) ViewState {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return s.view(now)
}

func (s *Session) Snapshot(now time.Time) Snapshot {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	snap := Snapshot{
		View:            s.view(now),
		WalletConnected: s.walletConnected,
		Account:         s.account,
		IsOwner:         s.isOwner(),
		ReadError:       s.readErr,
	}
	if s.facts != nil {
		facts := *s.facts
		snap.Facts = &facts
	}
	if s.pending != nil {
		pending := *s.pending
		snap.Pending = &pending
	}
	return snap
}

func (s *Session) view(now time.Time) ViewState {
	if s.pending == nil && !s.walletConnected {
		if s.connecting {
			return ViewState{Kind: ViewConnecting}
		}
		if s.connErr != nil {
			return ViewState{Kind: ViewError, Reason: reasonFor(s.connErr)}
		}
	}
	return Derive(s.walletConnected, s.isOwner(), s.facts, s.pending, now)
}

func (s *Session) isOwner() bool {
	if !s.walletConnected || s.facts == nil {
		return false
	}
	return lib.SameAddr(s.account.Hex(), s.facts.OwnerAddress)
}

func reasonFor(err error) string {
	switch {
	case errors.Is(err, provider.ErrWrongNetwork):
		return ReasonWrongNetwork
	case errors.Is(err, ErrNetworkChanged):
		return ReasonNetworkChanged
	case errors.Is(err, provider.ErrConnectionRejected):
		return ReasonConnectionRejected
	}
	return ReasonUnknown
}
