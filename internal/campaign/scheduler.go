package campaign

import (
	"context"
	"sync"
	"time"

	"github.com/Lumerin-protocol/presale-minter/internal/interfaces"
	"github.com/Lumerin-protocol/presale-minter/internal/metrics"
	"github.com/Lumerin-protocol/presale-minter/internal/provider"
	"go.uber.org/atomic"
)

// HandleSource hands out chain handles, implemented by provider.Gateway
type HandleSource interface {
	Acquire(ctx context.Context, requireSigner bool) (*provider.Handle, error)
}

// Scheduler polls the campaign state while mounted. Every tick issues an independent read,
// results are applied by the session in issue order. After the presale is observed ended
// only the minted count is polled.
type Scheduler struct {
	// config
	interval time.Duration

	// state
	lastGen    atomic.Uint64
	mountedGen atomic.Uint64 // zero when unmounted
	endedSeen  atomic.Bool
	inflight   sync.WaitGroup

	// deps
	handles HandleSource
	reader  *Reader
	session *Session
	log     interfaces.ILogger
}

func NewScheduler(interval time.Duration, handles HandleSource, reader *Reader, session *Session, log interfaces.ILogger) *Scheduler {
	return &Scheduler{
		interval: interval,
		handles:  handles,
		reader:   reader,
		session:  session,
		log:      log,
	}
}

// Run polls immediately and then on every interval until ctx is done. Reads still in flight
// on exit complete in the background and their results are discarded.
func (s *Scheduler) Run(ctx context.Context) error {
	gen := s.lastGen.Inc()
	s.mountedGen.Store(gen)
	defer s.mountedGen.CAS(gen, 0)

	s.log.Infof("mounted, polling every %s", s.interval)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.poll(ctx, gen)

	for {
		select {
		case <-ctx.Done():
			s.log.Infof("unmounted")
			return ctx.Err()
		case <-ticker.C:
			s.poll(ctx, gen)
		}
	}
}

// PollNow issues a read outside of the regular schedule
func (s *Scheduler) PollNow(ctx context.Context) error {
	gen := s.mountedGen.Load()
	if gen == 0 {
		return ErrNotMounted
	}
	s.poll(ctx, gen)
	return nil
}

func (s *Scheduler) IsMounted() bool {
	return s.mountedGen.Load() != 0
}

// EndedSeen reports whether the presale end was observed and the scheduler polls the minted count only
func (s *Scheduler) EndedSeen() bool {
	return s.endedSeen.Load()
}

// Wait blocks until reads started so far have completed
func (s *Scheduler) Wait() {
	s.inflight.Wait()
}

func (s *Scheduler) poll(ctx context.Context, gen uint64) {
	ticket := s.session.IssuePoll()

	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		s.pollOnce(ctx, gen, ticket)
	}()
}

func (s *Scheduler) pollOnce(mountCtx context.Context, gen uint64, ticket PollTicket) {
	startedAt := time.Now()
	defer func() {
		metrics.PollDuration.Observe(time.Since(startedAt).Seconds())
	}()

	// connecting is bounded by the mount, an issued read outlives it and its result is checked against the generation
	h, err := s.handles.Acquire(mountCtx, false)
	if err != nil {
		s.readFailed(gen, ticket, err)
		return
	}
	ctx := context.WithoutCancel(mountCtx)

	if s.endedSeen.Load() {
		minted, err := s.reader.ReadMinted(ctx, h)
		if err != nil {
			s.readFailed(gen, ticket, err)
			return
		}
		if !s.isCurrent(gen, ticket) {
			return
		}
		if s.session.ApplyMinted(ticket, minted, s.reader.Now()) {
			metrics.Polls.WithLabelValues(metrics.PollOK).Inc()
		}
		return
	}

	facts, err := s.reader.Read(ctx, h)
	if err != nil {
		s.readFailed(gen, ticket, err)
		return
	}
	if !s.isCurrent(gen, ticket) {
		return
	}
	if !s.session.ApplyFacts(ticket, facts) {
		return
	}
	metrics.Polls.WithLabelValues(metrics.PollOK).Inc()

	if facts.Ended(s.reader.Now()) && s.endedSeen.CAS(false, true) {
		s.log.Infof("presale ended at %d, polling minted count only", facts.PresaleEndTimestamp)
	}
}

func (s *Scheduler) readFailed(gen uint64, ticket PollTicket, err error) {
	metrics.Polls.WithLabelValues(metrics.PollError).Inc()
	s.log.Warnf("poll %d failed: %s", ticket.Seq, err)

	if s.isCurrent(gen, ticket) {
		s.session.ApplyReadError(ticket, err)
	}
}

func (s *Scheduler) isCurrent(gen uint64, ticket PollTicket) bool {
	if s.mountedGen.Load() != gen {
		s.log.Debugf("discarding poll %d issued before unmount", ticket.Seq)
		return false
	}
	return true
}
