package campaign

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/Lumerin-protocol/presale-minter/internal/lib"
	"github.com/Lumerin-protocol/presale-minter/internal/provider"
	"github.com/Lumerin-protocol/presale-minter/internal/repositories/contracts"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
)

func newTestScheduler(interval time.Duration, handles HandleSource, session *Session) *Scheduler {
	return NewScheduler(interval, handles, NewReader(fixedClock, lib.NewTestLogger()), session, lib.NewTestLogger())
}

func runScheduler(t *testing.T, s *Scheduler) (cancel func()) {
	ctx, cancelCtx := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = s.Run(ctx)
		close(done)
	}()
	require.Eventually(t, s.IsMounted, time.Second, time.Millisecond)

	return func() {
		cancelCtx()
		<-done
	}
}

func mintedCount(s *Session) uint64 {
	snap := s.Snapshot(testNow)
	if snap.Facts == nil {
		return 0
	}
	return snap.Facts.MintedCount
}

func TestSchedulerOverlappingPollsApplyLatestIssued(t *testing.T) {
	blocked := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int32

	contract := &contracts.CampaignMock{
		TokenIDsFunc: func(ctx context.Context) (*big.Int, error) {
			if calls.Inc() == 1 {
				close(blocked)
				<-release
				return big.NewInt(3), nil
			}
			return big.NewInt(5), nil
		},
	}
	session := newTestSession()
	scheduler := newTestScheduler(time.Hour, &staticHandles{handle: newReadOnlyHandle(contract)}, session)
	stop := runScheduler(t, scheduler)
	defer stop()

	// the mount poll is still in flight when the second poll is issued
	<-blocked
	require.NoError(t, scheduler.PollNow(context.Background()))
	require.Eventually(t, func() bool { return mintedCount(session) == 5 }, time.Second, time.Millisecond)

	close(release)
	scheduler.Wait()
	require.EqualValues(t, 5, mintedCount(session))
}

func TestSchedulerPollsOnInterval(t *testing.T) {
	contract := &contracts.CampaignMock{}
	session := newTestSession()
	scheduler := newTestScheduler(5*time.Millisecond, &staticHandles{handle: newReadOnlyHandle(contract)}, session)
	stop := runScheduler(t, scheduler)

	require.Eventually(t, func() bool { return contract.TokenIDsCalledTimes.Load() >= 3 }, time.Second, time.Millisecond)
	stop()
	scheduler.Wait()

	// the timer is released on unmount
	calls := contract.TokenIDsCalledTimes.Load()
	time.Sleep(30 * time.Millisecond)
	require.Equal(t, calls, contract.TokenIDsCalledTimes.Load())
	require.ErrorIs(t, scheduler.PollNow(context.Background()), ErrNotMounted)
}

func TestSchedulerDiscardsResultsAfterUnmount(t *testing.T) {
	blocked := make(chan struct{})
	release := make(chan struct{})
	contract := &contracts.CampaignMock{
		TokenIDsFunc: func(ctx context.Context) (*big.Int, error) {
			close(blocked)
			<-release
			return big.NewInt(9), nil
		},
	}
	session := newTestSession()
	scheduler := newTestScheduler(time.Hour, &staticHandles{handle: newReadOnlyHandle(contract)}, session)
	stop := runScheduler(t, scheduler)

	<-blocked
	stop()

	// the in-flight read completes, its result is not applied
	close(release)
	scheduler.Wait()
	require.Nil(t, session.Snapshot(testNow).Facts)
}

func TestSchedulerPollsMintedOnlyAfterPresaleEnd(t *testing.T) {
	var startedCalls atomic.Int32
	contract := &contracts.CampaignMock{
		PresaleStartedFunc: func(ctx context.Context) (bool, error) {
			startedCalls.Inc()
			return true, nil
		},
		PresaleEndedFunc: func(ctx context.Context) (*big.Int, error) {
			return big.NewInt(testNow.Unix() - 10), nil
		},
	}
	var minted atomic.Int64
	contract.TokenIDsFunc = func(ctx context.Context) (*big.Int, error) {
		return big.NewInt(minted.Inc()), nil
	}

	session := newTestSession()
	session.SetConnected(testUser)
	scheduler := newTestScheduler(time.Hour, &staticHandles{handle: newReadOnlyHandle(contract)}, session)
	stop := runScheduler(t, scheduler)
	defer stop()

	require.Eventually(t, scheduler.EndedSeen, time.Second, time.Millisecond)
	scheduler.Wait()
	require.Equal(t, ViewPublicMintOpen, session.View(testNow).Kind)

	for i := 0; i < 3; i++ {
		require.NoError(t, scheduler.PollNow(context.Background()))
		scheduler.Wait()
	}

	require.EqualValues(t, 1, startedCalls.Load())
	require.EqualValues(t, 4, mintedCount(session))
	require.Equal(t, ViewPublicMintOpen, session.View(testNow).Kind)
}

func TestSchedulerReadErrorIsTransient(t *testing.T) {
	var fail atomic.Bool
	contract := &contracts.CampaignMock{
		TokenIDsFunc: func(ctx context.Context) (*big.Int, error) {
			if fail.Load() {
				return nil, errors.New("timeout")
			}
			return big.NewInt(2), nil
		},
	}
	session := newTestSession()
	scheduler := newTestScheduler(time.Hour, &staticHandles{handle: newReadOnlyHandle(contract)}, session)
	stop := runScheduler(t, scheduler)
	defer stop()

	require.Eventually(t, func() bool { return mintedCount(session) == 2 }, time.Second, time.Millisecond)

	fail.Store(true)
	require.NoError(t, scheduler.PollNow(context.Background()))
	scheduler.Wait()

	snap := session.Snapshot(testNow)
	require.ErrorIs(t, snap.ReadError, ErrRead)
	require.EqualValues(t, 2, snap.Facts.MintedCount)
}

func TestSchedulerWrongNetworkIsReadError(t *testing.T) {
	session := newTestSession()
	scheduler := newTestScheduler(time.Hour, &staticHandles{err: provider.ErrWrongNetwork}, session)
	stop := runScheduler(t, scheduler)
	defer stop()

	require.Eventually(t, func() bool { return session.Snapshot(testNow).ReadError != nil }, time.Second, time.Millisecond)
	require.ErrorIs(t, session.Snapshot(testNow).ReadError, provider.ErrWrongNetwork)
	require.Nil(t, session.Snapshot(testNow).Facts)
}
