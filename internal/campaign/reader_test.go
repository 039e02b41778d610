package campaign

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/Lumerin-protocol/presale-minter/internal/lib"
	"github.com/Lumerin-protocol/presale-minter/internal/repositories/contracts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

func TestReaderReadsOwnerOnEveryPollBeforeStart(t *testing.T) {
	owners := []common.Address{testOwner, testUser}
	contract := &contracts.CampaignMock{
		OwnerFunc: func(ctx context.Context) (common.Address, error) {
			return owners[0], nil
		},
		TokenIDsFunc: func(ctx context.Context) (*big.Int, error) {
			return big.NewInt(0), nil
		},
	}
	reader := NewReader(fixedClock, lib.NewTestLogger())
	h := newReadOnlyHandle(contract)

	facts, err := reader.Read(context.Background(), h)
	require.NoError(t, err)
	require.False(t, facts.PresaleStarted)
	require.Equal(t, testOwner.Hex(), facts.OwnerAddress)
	require.Equal(t, testNow, facts.ReadAt)

	// ownership transferred between polls
	owners = owners[1:]
	facts, err = reader.Read(context.Background(), h)
	require.NoError(t, err)
	require.Equal(t, testUser.Hex(), facts.OwnerAddress)
	require.EqualValues(t, 2, contract.OwnerCalledTimes.Load())
}

func TestReaderSkipsOwnerAfterStart(t *testing.T) {
	contract := &contracts.CampaignMock{
		PresaleStartedFunc: func(ctx context.Context) (bool, error) {
			return true, nil
		},
		PresaleEndedFunc: func(ctx context.Context) (*big.Int, error) {
			return big.NewInt(testNow.Unix() + 300), nil
		},
		TokenIDsFunc: func(ctx context.Context) (*big.Int, error) {
			return big.NewInt(12), nil
		},
	}
	reader := NewReader(fixedClock, lib.NewTestLogger())

	facts, err := reader.Read(context.Background(), newReadOnlyHandle(contract))
	require.NoError(t, err)
	require.Equal(t, Facts{
		PresaleStarted:      true,
		PresaleEndTimestamp: testNow.Unix() + 300,
		MintedCount:         12,
		ReadAt:              testNow,
	}, facts)
	require.False(t, facts.Ended(testNow))
	require.EqualValues(t, 0, contract.OwnerCalledTimes.Load())
}

func TestReaderWrapsFailures(t *testing.T) {
	errNode := errors.New("connection refused")
	contract := &contracts.CampaignMock{
		TokenIDsFunc: func(ctx context.Context) (*big.Int, error) {
			return nil, errNode
		},
	}
	reader := NewReader(fixedClock, lib.NewTestLogger())

	_, err := reader.Read(context.Background(), newReadOnlyHandle(contract))
	require.ErrorIs(t, err, ErrRead)
	require.ErrorIs(t, err, errNode)

	_, err = reader.ReadMinted(context.Background(), newReadOnlyHandle(contract))
	require.ErrorIs(t, err, ErrRead)
}

func TestReaderRefusesInvalidHandle(t *testing.T) {
	reader := NewReader(fixedClock, lib.NewTestLogger())

	_, err := reader.Read(context.Background(), nil)
	require.ErrorIs(t, err, ErrHandleInvalid)

	_, err = reader.ReadMinted(context.Background(), nil)
	require.ErrorIs(t, err, ErrHandleInvalid)
}
