package provider

import "errors"

var (
	ErrWrongNetwork       = errors.New("wallet is connected to the wrong network")
	ErrConnectionRejected = errors.New("wallet connection rejected")
	ErrSignerDeclined     = errors.New("signer declined the request")
	ErrReadOnlyHandle     = errors.New("handle has no signing capability")
	ErrNetworkChanged     = errors.New("network changed while connecting")
)
