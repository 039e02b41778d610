package campaign

import "errors"

var (
	ErrRead           = errors.New("campaign read failed")
	ErrHandleInvalid  = errors.New("chain handle is no longer valid")
	ErrSignerRequired = errors.New("signing handle required")
	ErrTxInFlight     = errors.New("another transaction is pending")
	ErrTxRejected     = errors.New("transaction rejected by signer")
	ErrTxReverted     = errors.New("transaction reverted")
	ErrTxTimeout      = errors.New("transaction confirmation timed out")
	ErrUnknownTxKind  = errors.New("unknown transaction kind")
	ErrNotMounted     = errors.New("campaign view is not mounted")
	ErrNetworkChanged = errors.New("wallet network changed")
	ErrNotRunning     = errors.New("campaign service is not running")
	ErrNotConnected   = errors.New("wallet is not connected")
)
