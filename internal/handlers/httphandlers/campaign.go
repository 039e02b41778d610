package httphandlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/Lumerin-protocol/presale-minter/internal/campaign"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

func (h *HTTPHandler) GetCampaign(ctx *gin.Context) {
	ctx.JSON(200, mapCampaign(h.campaign.Snapshot(), h.campaign.IsMounted(), time.Now()))
}

func (h *HTTPHandler) Mount(ctx *gin.Context) {
	if err := h.campaign.Mount(); err != nil {
		h.respondError(ctx, err)
		return
	}
	ctx.JSON(200, gin.H{"status": "ok"})
}

func (h *HTTPHandler) Unmount(ctx *gin.Context) {
	<-h.campaign.Unmount()
	ctx.JSON(200, gin.H{"status": "ok"})
}

// GetNotifications returns and clears the transaction notifications, newest first
func (h *HTTPHandler) GetNotifications(ctx *gin.Context) {
	notifications := h.campaign.Notifications()

	// drained oldest first, reversed so that equal timestamps keep newest first
	for i, j := 0, len(notifications)-1; i < j; i, j = i+1, j-1 {
		notifications[i], notifications[j] = notifications[j], notifications[i]
	}
	slices.SortStableFunc(notifications, func(a campaign.Notification, b campaign.Notification) bool {
		return a.CreatedAt.After(b.CreatedAt)
	})

	res := make([]Notification, 0, len(notifications))
	for _, n := range notifications {
		res = append(res, mapNotification(n))
	}

	ctx.JSON(200, res)
}

func (h *HTTPHandler) Connect(ctx *gin.Context) {
	if err := h.campaign.Connect(ctx); err != nil {
		h.respondError(ctx, err)
		return
	}
	ctx.JSON(200, mapCampaign(h.campaign.Snapshot(), h.campaign.IsMounted(), time.Now()))
}

func (h *HTTPHandler) Disconnect(ctx *gin.Context) {
	h.campaign.Disconnect()
	ctx.JSON(200, mapCampaign(h.campaign.Snapshot(), h.campaign.IsMounted(), time.Now()))
}

func (h *HTTPHandler) StartPresale(ctx *gin.Context) {
	h.submit(ctx, h.campaign.StartPresale)
}

// PresaleMint attaches the configured mint price
func (h *HTTPHandler) PresaleMint(ctx *gin.Context) {
	h.submit(ctx, func(c context.Context) (*types.Receipt, error) {
		return h.campaign.PresaleMint(c, nil)
	})
}

// PublicMint attaches the configured mint price
func (h *HTTPHandler) PublicMint(ctx *gin.Context) {
	h.submit(ctx, func(c context.Context) (*types.Receipt, error) {
		return h.campaign.PublicMint(c, nil)
	})
}

func (h *HTTPHandler) submit(ctx *gin.Context, f func(ctx context.Context) (*types.Receipt, error)) {
	receipt, err := f(ctx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	ctx.JSON(200, mapReceipt(receipt))
}

func (h *HTTPHandler) GetTokenMetadata(ctx *gin.Context) {
	tokenID, err := strconv.ParseUint(ctx.Param("tokenId"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid token id"})
		return
	}
	ctx.JSON(200, h.metadata.For(tokenID))
}
