package campaign

import "time"

// Derive computes the view from its inputs, the first matching rule wins:
//
//	pending transaction        → TxPending
//	wallet not connected       → Disconnected
//	nothing read yet           → Loading
//	owner, presale not started → OwnerCanStart
//	presale not started        → AwaitingPresale
//	presale end in the future  → PresaleOpen
//	otherwise                  → PublicMintOpen
func Derive(walletConnected, isOwner bool, facts *Facts, pending *PendingTransaction, now time.Time) ViewState {
	switch {
	case pending != nil:
		return ViewState{Kind: ViewTxPending, TxKind: pending.Kind}
	case !walletConnected:
		return ViewState{Kind: ViewDisconnected}
	case facts == nil:
		return ViewState{Kind: ViewLoading}
	case isOwner && !facts.PresaleStarted:
		return ViewState{Kind: ViewOwnerCanStart}
	case !facts.PresaleStarted:
		return ViewState{Kind: ViewAwaitingPresale}
	case facts.PresaleEndTimestamp > now.Unix():
		return ViewState{Kind: ViewPresaleOpen}
	default:
		return ViewState{Kind: ViewPublicMintOpen}
	}
}
