package httphandlers

import (
	"context"
	"errors"
	"math/big"
	"net/http"
	"net/http/pprof"

	"github.com/Lumerin-protocol/presale-minter/internal/campaign"
	"github.com/Lumerin-protocol/presale-minter/internal/config"
	"github.com/Lumerin-protocol/presale-minter/internal/interfaces"
	"github.com/Lumerin-protocol/presale-minter/internal/lib"
	"github.com/Lumerin-protocol/presale-minter/internal/metadata"
	"github.com/Lumerin-protocol/presale-minter/internal/provider"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type CampaignService interface {
	Connect(ctx context.Context) error
	Disconnect()
	StartPresale(ctx context.Context) (*types.Receipt, error)
	PresaleMint(ctx context.Context, value *big.Int) (*types.Receipt, error)
	PublicMint(ctx context.Context, value *big.Int) (*types.Receipt, error)
	Mount() error
	Unmount() <-chan struct{}
	IsMounted() bool
	Snapshot() campaign.Snapshot
	Notifications() []campaign.Notification
}

type Sanitizable interface {
	GetSanitized() interface{}
}

type HTTPHandler struct {
	campaign CampaignService
	metadata *metadata.Responder
	config   Sanitizable
	log      interfaces.ILogger
}

func NewHTTPHandler(campaign CampaignService, metadata *metadata.Responder, cfg Sanitizable, log interfaces.ILogger) *gin.Engine {
	handl := &HTTPHandler{
		campaign: campaign,
		metadata: metadata,
		config:   cfg,
		log:      log,
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.GET("/healthcheck", handl.HealthCheck)
	r.GET("/config", handl.GetConfig)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/campaign", handl.GetCampaign)
	r.POST("/campaign/mount", handl.Mount)
	r.POST("/campaign/unmount", handl.Unmount)
	r.GET("/notifications", handl.GetNotifications)

	r.POST("/wallet/connect", handl.Connect)
	r.POST("/wallet/disconnect", handl.Disconnect)

	r.POST("/presale/start", handl.StartPresale)
	r.POST("/presale/mint", handl.PresaleMint)
	r.POST("/mint", handl.PublicMint)

	r.GET("/api/:tokenId", handl.GetTokenMetadata)

	r.Any("/debug/pprof/*action", gin.WrapF(pprof.Index))

	err := r.SetTrustedProxies(nil)
	if err != nil {
		panic(err)
	}

	return r
}

func (h *HTTPHandler) HealthCheck(ctx *gin.Context) {
	ctx.JSON(200, gin.H{
		"status":  "healthy",
		"version": config.BuildVersion,
	})
}

func (h *HTTPHandler) GetConfig(ctx *gin.Context) {
	ctx.JSON(200, ConfigResponse{
		Version: config.BuildVersion,
		Config:  h.config.GetSanitized(),
	})
}

// errorStatus maps service errors to http status codes
func errorStatus(err error) int {
	switch {
	case errors.Is(err, campaign.ErrTxInFlight), errors.Is(err, lib.ErrTaskRunning):
		return http.StatusConflict
	case errors.Is(err, provider.ErrWrongNetwork), errors.Is(err, campaign.ErrNotConnected):
		return http.StatusPreconditionFailed
	case errors.Is(err, provider.ErrConnectionRejected), errors.Is(err, campaign.ErrTxRejected):
		return http.StatusForbidden
	case errors.Is(err, campaign.ErrTxReverted):
		return http.StatusUnprocessableEntity
	case errors.Is(err, campaign.ErrTxTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, campaign.ErrNotRunning):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func (h *HTTPHandler) respondError(ctx *gin.Context, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		h.log.Errorf("%s %s: %s", ctx.Request.Method, ctx.Request.URL.Path, err)
	}
	ctx.JSON(status, gin.H{"error": err.Error()})
}
