package campaign

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/Lumerin-protocol/presale-minter/internal/interfaces"
	"github.com/Lumerin-protocol/presale-minter/internal/lib"
	"github.com/Lumerin-protocol/presale-minter/internal/provider"
)

// Reader pulls campaign facts from the contract. Reads are side-effect free and may overlap.
type Reader struct {
	clock func() time.Time
	log   interfaces.ILogger
}

func NewReader(clock func() time.Time, log interfaces.ILogger) *Reader {
	if clock == nil {
		clock = time.Now
	}
	return &Reader{clock: clock, log: log}
}

// Read issues the campaign view calls. The owner is read on every call until the
// presale starts so an ownership transfer is picked up.
func (r *Reader) Read(ctx context.Context, h *provider.Handle) (Facts, error) {
	if h == nil || !h.Valid() {
		return Facts{}, ErrHandleInvalid
	}
	contract := h.Contract()

	started, err := contract.PresaleStarted(ctx)
	if err != nil {
		return Facts{}, lib.WrapError(ErrRead, fmt.Errorf("presaleStarted: %w", err))
	}

	var owner string
	if !started {
		ownerAddr, err := contract.Owner(ctx)
		if err != nil {
			return Facts{}, lib.WrapError(ErrRead, fmt.Errorf("owner: %w", err))
		}
		owner = ownerAddr.Hex()
	}

	endBig, err := contract.PresaleEnded(ctx)
	if err != nil {
		return Facts{}, lib.WrapError(ErrRead, fmt.Errorf("presaleEnded: %w", err))
	}
	end, err := toInt64(endBig)
	if err != nil {
		return Facts{}, lib.WrapError(ErrRead, fmt.Errorf("presaleEnded: %w", err))
	}

	minted, err := r.readMinted(ctx, h)
	if err != nil {
		return Facts{}, err
	}

	facts := Facts{
		PresaleStarted:      started,
		PresaleEndTimestamp: end,
		OwnerAddress:        owner,
		MintedCount:         minted,
		ReadAt:              r.clock(),
	}
	r.log.Debugf("read campaign: started %t, end %d, owner %s, minted %d", started, end, lib.AddrShort(owner), minted)

	return facts, nil
}

// ReadMinted reads only the minted token count
func (r *Reader) ReadMinted(ctx context.Context, h *provider.Handle) (uint64, error) {
	if h == nil || !h.Valid() {
		return 0, ErrHandleInvalid
	}
	minted, err := r.readMinted(ctx, h)
	if err != nil {
		return 0, err
	}
	r.log.Debugf("read minted count %d", minted)
	return minted, nil
}

func (r *Reader) Now() time.Time {
	return r.clock()
}

func (r *Reader) readMinted(ctx context.Context, h *provider.Handle) (uint64, error) {
	mintedBig, err := h.Contract().TokenIDs(ctx)
	if err != nil {
		return 0, lib.WrapError(ErrRead, fmt.Errorf("tokenIds: %w", err))
	}
	if mintedBig == nil || mintedBig.Sign() < 0 || !mintedBig.IsUint64() {
		return 0, lib.WrapError(ErrRead, fmt.Errorf("tokenIds: value out of range %s", mintedBig))
	}
	return mintedBig.Uint64(), nil
}

func toInt64(v *big.Int) (int64, error) {
	if v == nil {
		return 0, fmt.Errorf("empty value")
	}
	if !v.IsInt64() {
		return 0, fmt.Errorf("value out of range %s", v)
	}
	return v.Int64(), nil
}
