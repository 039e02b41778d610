package campaign

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/Lumerin-protocol/presale-minter/internal/interfaces"
	"github.com/Lumerin-protocol/presale-minter/internal/lib"
	"github.com/Lumerin-protocol/presale-minter/internal/metrics"
	"github.com/Lumerin-protocol/presale-minter/internal/provider"
	"github.com/Lumerin-protocol/presale-minter/internal/repositories/contracts"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/core/types"
)

const (
	txOutcomeConfirmed = "confirmed"
	txOutcomeRejected  = "rejected"
	txOutcomeReverted  = "reverted"
	txOutcomeTimeout   = "timeout"
)

// Poller triggers an out of band campaign read
type Poller interface {
	PollNow(ctx context.Context) error
}

type sendFunc func(opts *bind.TransactOpts) (*types.Transaction, error)

// Submitter sends campaign write transactions and tracks them as the pending transaction.
// Failed transactions are never retried.
type Submitter struct {
	// config
	mintPrice *big.Int
	txTimeout time.Duration

	// deps
	session *Session
	poller  Poller
	clock   func() time.Time
	log     interfaces.ILogger
}

func NewSubmitter(mintPrice *big.Int, txTimeout time.Duration, session *Session, poller Poller, clock func() time.Time, log interfaces.ILogger) *Submitter {
	if clock == nil {
		clock = time.Now
	}
	return &Submitter{
		mintPrice: mintPrice,
		txTimeout: txTimeout,
		session:   session,
		poller:    poller,
		clock:     clock,
		log:       log,
	}
}

// Submit sends the transaction of the given kind and waits for one confirmation. For mint kinds
// a nil value attaches the configured mint price, StartPresale never carries value.
func (s *Submitter) Submit(ctx context.Context, kind TxKind, h *provider.Handle, value *big.Int) (*types.Receipt, error) {
	if h == nil || !h.Valid() {
		return nil, ErrHandleInvalid
	}
	if h.Mode() != provider.ModeSigning {
		return nil, ErrSignerRequired
	}

	send, err := sendFor(kind, h.Contract())
	if err != nil {
		return nil, err
	}

	pending, err := s.session.BeginTx(kind)
	if err != nil {
		s.log.Warnf("%s refused: %s", kind, err)
		return nil, err
	}
	s.log.Infof("%s submitting, id %s", kind, pending.ID)

	receipt, err := s.send(ctx, kind, h, value, send)
	s.session.EndTx(pending, err)

	metrics.TransactionDuration.WithLabelValues(kind.String()).Observe(s.clock().Sub(pending.SubmittedAt).Seconds())
	metrics.Transactions.WithLabelValues(kind.String(), outcomeOf(err)).Inc()

	if err != nil {
		s.log.Warnf("%s failed, id %s: %s", kind, pending.ID, err)
		return nil, err
	}
	s.log.Infof("%s confirmed, id %s, tx %s, block %s", kind, pending.ID, receipt.TxHash.Hex(), receipt.BlockNumber)

	if s.poller != nil {
		if err := s.poller.PollNow(ctx); err != nil {
			s.log.Debugf("re-poll after %s skipped: %s", kind, err)
		}
	}

	return receipt, nil
}

func (s *Submitter) send(ctx context.Context, kind TxKind, h *provider.Handle, value *big.Int, send sendFunc) (*types.Receipt, error) {
	ctx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	switch {
	case !kind.IsMint():
		value = nil
	case value == nil:
		value = new(big.Int).Set(s.mintPrice)
	}

	opts, err := h.TransactOpts(ctx, value)
	if err != nil {
		return nil, classifyTxError(err)
	}

	tx, err := send(opts)
	if err != nil {
		return nil, classifyTxError(err)
	}
	s.log.Debugf("%s sent, tx %s, waiting for confirmation", kind, tx.Hash().Hex())

	receipt, err := h.Contract().WaitMined(ctx, tx)
	if err != nil {
		return nil, classifyTxError(err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, lib.WrapError(ErrTxReverted, fmt.Errorf("tx %s failed in block %s", receipt.TxHash.Hex(), receipt.BlockNumber))
	}

	return receipt, nil
}

func sendFor(kind TxKind, contract contracts.Campaign) (sendFunc, error) {
	switch kind {
	case TxStartPresale:
		return contract.StartPresale, nil
	case TxPresaleMint:
		return contract.PresaleMint, nil
	case TxPublicMint:
		return contract.Mint, nil
	}
	return nil, lib.WrapError(ErrUnknownTxKind, fmt.Errorf("%d", kind))
}

// classifyTxError maps send and confirmation failures to the transaction error taxonomy.
// Anything not recognized as declined or timed out is treated as rejected by the chain.
func classifyTxError(err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return lib.WrapError(ErrTxTimeout, err)
	case errors.Is(err, provider.ErrSignerDeclined), errors.Is(err, bind.ErrNotAuthorized):
		return lib.WrapError(ErrTxRejected, err)
	}
	if contracts.IsRevert(err) {
		if reason := contracts.RevertReason(err); reason != "" {
			return lib.WrapError(ErrTxReverted, fmt.Errorf("%s: %w", reason, err))
		}
	}
	return lib.WrapError(ErrTxReverted, err)
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return txOutcomeConfirmed
	case errors.Is(err, ErrTxRejected):
		return txOutcomeRejected
	case errors.Is(err, ErrTxTimeout):
		return txOutcomeTimeout
	}
	return txOutcomeReverted
}
