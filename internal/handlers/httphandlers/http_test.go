package httphandlers

import (
	"context"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Lumerin-protocol/presale-minter/internal/campaign"
	"github.com/Lumerin-protocol/presale-minter/internal/config"
	"github.com/Lumerin-protocol/presale-minter/internal/lib"
	"github.com/Lumerin-protocol/presale-minter/internal/metadata"
	"github.com/Lumerin-protocol/presale-minter/internal/provider"
	"github.com/Lumerin-protocol/presale-minter/internal/repositories/contracts"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const testNetworkID = 4

var testAccount = common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")

func newTestHandler(contract *contracts.CampaignMock, wallet *provider.WalletMock) *gin.Engine {
	log := lib.NewTestLogger()
	factory := func(client contracts.EthereumClient) contracts.Campaign {
		return contract
	}
	gw := provider.NewGateway(testNetworkID, time.Hour, wallet, factory, log)
	session := campaign.NewSession(0, nil, log)
	scheduler := campaign.NewScheduler(time.Hour, gw, campaign.NewReader(nil, log), session, log)
	submitter := campaign.NewSubmitter(big.NewInt(10), time.Minute, session, scheduler, nil, log)
	svc := campaign.NewService(false, false, gw, session, scheduler, submitter, nil, log)

	cfg := &config.Config{}
	cfg.SetDefaults()

	return NewHTTPHandler(svc, metadata.NewResponder("TOKEN #", "test token", "https://example.com/"), cfg, log)
}

func doRequest(r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	var res T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	return res
}

func TestHealthCheck(t *testing.T) {
	r := newTestHandler(&contracts.CampaignMock{}, provider.NewWalletMock(testNetworkID, testAccount))

	w := doRequest(r, http.MethodGet, "/healthcheck")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "healthy", decode[map[string]string](t, w)["status"])
}

func TestTokenMetadata(t *testing.T) {
	r := newTestHandler(&contracts.CampaignMock{}, provider.NewWalletMock(testNetworkID, testAccount))

	w := doRequest(r, http.MethodGet, "/api/5")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, metadata.Document{
		Name:        "TOKEN #5",
		Description: "test token",
		Image:       "https://example.com/5.svg",
	}, decode[metadata.Document](t, w))

	w = doRequest(r, http.MethodGet, "/api/five")
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestConnectWallet(t *testing.T) {
	r := newTestHandler(&contracts.CampaignMock{}, provider.NewWalletMock(testNetworkID, testAccount))

	w := doRequest(r, http.MethodGet, "/campaign")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "disconnected", decode[CampaignResponse](t, w).View)

	w = doRequest(r, http.MethodPost, "/wallet/connect")
	require.Equal(t, http.StatusOK, w.Code)
	res := decode[CampaignResponse](t, w)
	require.Equal(t, "loading", res.View)
	require.True(t, res.WalletConnected)
	require.Equal(t, testAccount.Hex(), res.Account)

	w = doRequest(r, http.MethodPost, "/wallet/disconnect")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "disconnected", decode[CampaignResponse](t, w).View)
}

func TestConnectWrongNetwork(t *testing.T) {
	r := newTestHandler(&contracts.CampaignMock{}, provider.NewWalletMock(1, testAccount))

	w := doRequest(r, http.MethodPost, "/wallet/connect")
	require.Equal(t, http.StatusPreconditionFailed, w.Code)

	res := decode[CampaignResponse](t, doRequest(r, http.MethodGet, "/campaign"))
	require.Equal(t, "error", res.View)
	require.Equal(t, campaign.ReasonWrongNetwork, res.Reason)

	w = doRequest(r, http.MethodPost, "/mint")
	require.Equal(t, http.StatusPreconditionFailed, w.Code)
}

func TestPublicMint(t *testing.T) {
	var value *big.Int
	contract := &contracts.CampaignMock{
		TransactFunc: func(method string, opts *bind.TransactOpts) (*types.Transaction, error) {
			require.Equal(t, "mint", method)
			value = opts.Value
			return types.NewTx(&types.LegacyTx{Nonce: 1, Value: opts.Value}), nil
		},
	}
	r := newTestHandler(contract, provider.NewWalletMock(testNetworkID, testAccount))
	require.Equal(t, http.StatusOK, doRequest(r, http.MethodPost, "/wallet/connect").Code)

	// query parameters cannot override the mint price
	w := doRequest(r, http.MethodPost, "/mint?valueWei=25")
	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, decode[TxResponse](t, w).TxHash)
	require.EqualValues(t, 10, value.Int64())

	notifications := decode[[]Notification](t, doRequest(r, http.MethodGet, "/notifications"))
	require.Len(t, notifications, 1)
	require.Equal(t, "public_mint", notifications[0].TxKind)
	require.Equal(t, string(campaign.NotificationSuccess), notifications[0].Level)

	require.Empty(t, decode[[]Notification](t, doRequest(r, http.MethodGet, "/notifications")))
}

func TestPresaleMintReverted(t *testing.T) {
	contract := &contracts.CampaignMock{
		WaitMinedFunc: func(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
			return &types.Receipt{Status: types.ReceiptStatusFailed, TxHash: tx.Hash()}, nil
		},
	}
	r := newTestHandler(contract, provider.NewWalletMock(testNetworkID, testAccount))
	require.Equal(t, http.StatusOK, doRequest(r, http.MethodPost, "/wallet/connect").Code)

	w := doRequest(r, http.MethodPost, "/presale/mint")
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	res := decode[CampaignResponse](t, doRequest(r, http.MethodGet, "/campaign"))
	require.Nil(t, res.Pending)
}

func TestMintAfterDisconnect(t *testing.T) {
	contract := &contracts.CampaignMock{}
	r := newTestHandler(contract, provider.NewWalletMock(testNetworkID, testAccount))

	require.Equal(t, http.StatusOK, doRequest(r, http.MethodPost, "/wallet/connect").Code)
	require.Equal(t, http.StatusOK, doRequest(r, http.MethodPost, "/wallet/disconnect").Code)

	w := doRequest(r, http.MethodPost, "/mint")
	require.Equal(t, http.StatusPreconditionFailed, w.Code)
	require.EqualValues(t, 0, contract.TransactCalledTimes.Load())

	res := decode[CampaignResponse](t, doRequest(r, http.MethodGet, "/campaign"))
	require.Equal(t, "disconnected", res.View)
	require.False(t, res.WalletConnected)
}

func TestNotificationsNewestFirst(t *testing.T) {
	r := newTestHandler(&contracts.CampaignMock{}, provider.NewWalletMock(testNetworkID, testAccount))
	require.Equal(t, http.StatusOK, doRequest(r, http.MethodPost, "/wallet/connect").Code)

	require.Equal(t, http.StatusOK, doRequest(r, http.MethodPost, "/presale/start").Code)
	require.Equal(t, http.StatusOK, doRequest(r, http.MethodPost, "/presale/mint").Code)
	require.Equal(t, http.StatusOK, doRequest(r, http.MethodPost, "/mint").Code)

	notifications := decode[[]Notification](t, doRequest(r, http.MethodGet, "/notifications"))
	require.Len(t, notifications, 3)
	require.Equal(t, "public_mint", notifications[0].TxKind)
	require.Equal(t, "presale_mint", notifications[1].TxKind)
	require.Equal(t, "start_presale", notifications[2].TxKind)
}

func TestMountRequiresRunningService(t *testing.T) {
	r := newTestHandler(&contracts.CampaignMock{}, provider.NewWalletMock(testNetworkID, testAccount))

	w := doRequest(r, http.MethodPost, "/campaign/mount")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
}
