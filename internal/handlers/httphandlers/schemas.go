package httphandlers

import (
	"time"

	"github.com/Lumerin-protocol/presale-minter/internal/campaign"
	"github.com/ethereum/go-ethereum/core/types"
)

type ConfigResponse struct {
	Version string
	Config  interface{}
}

type CampaignResponse struct {
	View            string
	Reason          string `json:",omitempty"`
	TxKind          string `json:",omitempty"`
	WalletConnected bool
	Account         string `json:",omitempty"`
	IsOwner         bool
	Mounted         bool
	Facts           *Facts     `json:",omitempty"`
	ReadError       string     `json:",omitempty"`
	Pending         *PendingTx `json:",omitempty"`
}

type Facts struct {
	PresaleStarted      bool
	PresaleEndTimestamp int64
	PresaleEnded        bool
	OwnerAddress        string `json:",omitempty"`
	MintedCount         uint64
	ReadAt              string
}

type PendingTx struct {
	ID          string
	Kind        string
	SubmittedAt string
}

type TxResponse struct {
	TxHash      string
	BlockNumber string
	GasUsed     uint64
}

type Notification struct {
	ID        string
	TxID      string
	TxKind    string
	Level     string
	Message   string
	CreatedAt string
}

func mapCampaign(snap campaign.Snapshot, mounted bool, now time.Time) *CampaignResponse {
	res := &CampaignResponse{
		View:            snap.View.Kind.String(),
		Reason:          snap.View.Reason,
		WalletConnected: snap.WalletConnected,
		IsOwner:         snap.IsOwner,
		Mounted:         mounted,
	}
	if snap.View.Kind == campaign.ViewTxPending {
		res.TxKind = snap.View.TxKind.String()
	}
	if snap.WalletConnected {
		res.Account = snap.Account.Hex()
	}
	if snap.ReadError != nil {
		res.ReadError = snap.ReadError.Error()
	}
	if f := snap.Facts; f != nil {
		res.Facts = &Facts{
			PresaleStarted:      f.PresaleStarted,
			PresaleEndTimestamp: f.PresaleEndTimestamp,
			PresaleEnded:        f.Ended(now),
			OwnerAddress:        f.OwnerAddress,
			MintedCount:         f.MintedCount,
			ReadAt:              formatTime(f.ReadAt),
		}
	}
	if p := snap.Pending; p != nil {
		res.Pending = &PendingTx{
			ID:          p.ID.String(),
			Kind:        p.Kind.String(),
			SubmittedAt: formatTime(p.SubmittedAt),
		}
	}
	return res
}

func mapReceipt(r *types.Receipt) *TxResponse {
	res := &TxResponse{
		TxHash:  r.TxHash.Hex(),
		GasUsed: r.GasUsed,
	}
	if r.BlockNumber != nil {
		res.BlockNumber = r.BlockNumber.String()
	}
	return res
}

func mapNotification(n campaign.Notification) Notification {
	return Notification{
		ID:        n.ID.String(),
		TxID:      n.TxID.String(),
		TxKind:    n.TxKind.String(),
		Level:     string(n.Level),
		Message:   n.Message,
		CreatedAt: formatTime(n.CreatedAt),
	}
}

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}
