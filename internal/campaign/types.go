package campaign

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Facts is a snapshot of the campaign contract state, produced by Reader only.
// A new poll produces a new value, snapshots are never modified after construction.
type Facts struct {
	PresaleStarted      bool
	PresaleEndTimestamp int64 // unix seconds, zero before the presale is started
	OwnerAddress        string
	MintedCount         uint64
	ReadAt              time.Time
}

// Ended reports whether the presale has ended according to the local clock. Skew between
// the local clock and the chain timestamp is not corrected.
func (f Facts) Ended(now time.Time) bool {
	return f.PresaleStarted && f.PresaleEndTimestamp <= now.Unix()
}

// WithMintedCount returns a copy of the snapshot with updated minted count
func (f Facts) WithMintedCount(count uint64, readAt time.Time) Facts {
	f.MintedCount = count
	f.ReadAt = readAt
	return f
}

type TxKind int

const (
	TxStartPresale TxKind = iota + 1
	TxPresaleMint
	TxPublicMint
)

func (k TxKind) String() string {
	switch k {
	case TxStartPresale:
		return "start_presale"
	case TxPresaleMint:
		return "presale_mint"
	case TxPublicMint:
		return "public_mint"
	}
	return "unknown"
}

func (k TxKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// IsMint reports whether the transaction requires the mint price attached
func (k TxKind) IsMint() bool {
	return k == TxPresaleMint || k == TxPublicMint
}

// PendingTransaction lives from submission until confirmation or failure
type PendingTransaction struct {
	ID          uuid.UUID
	Kind        TxKind
	SubmittedAt time.Time
}

type ViewKind int

const (
	ViewDisconnected ViewKind = iota
	ViewConnecting
	ViewLoading
	ViewError
	ViewOwnerCanStart
	ViewAwaitingPresale
	ViewPresaleOpen
	ViewPresaleClosedAwaitingPublic
	ViewPublicMintOpen
	ViewTxPending
)

var viewKindNames = map[ViewKind]string{
	ViewDisconnected:                "disconnected",
	ViewConnecting:                  "connecting",
	ViewLoading:                     "loading",
	ViewError:                       "error",
	ViewOwnerCanStart:               "owner_can_start",
	ViewAwaitingPresale:             "awaiting_presale",
	ViewPresaleOpen:                 "presale_open",
	ViewPresaleClosedAwaitingPublic: "presale_closed_awaiting_public",
	ViewPublicMintOpen:              "public_mint_open",
	ViewTxPending:                   "tx_pending",
}

func (k ViewKind) String() string {
	if name, ok := viewKindNames[k]; ok {
		return name
	}
	return "unknown"
}

func (k ViewKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// ViewState is what the presentation layer renders. Reason is set only for ViewError,
// TxKind only for ViewTxPending.
type ViewState struct {
	Kind   ViewKind
	Reason string
	TxKind TxKind
}

func (v ViewState) String() string {
	switch v.Kind {
	case ViewError:
		return v.Kind.String() + "(" + v.Reason + ")"
	case ViewTxPending:
		return v.Kind.String() + "(" + v.TxKind.String() + ")"
	}
	return v.Kind.String()
}

type NotificationLevel string

const (
	NotificationSuccess NotificationLevel = "success"
	NotificationError   NotificationLevel = "error"
)

// Notification is a one-shot message about a finished transaction
type Notification struct {
	ID        uuid.UUID
	TxID      uuid.UUID
	TxKind    TxKind
	Level     NotificationLevel
	Message   string
	CreatedAt time.Time
}
