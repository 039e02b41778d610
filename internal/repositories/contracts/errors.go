package contracts

import (
	"errors"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rpc"
)

var (
	ErrReverted         = errors.New("execution reverted")
	ErrArtifactMismatch = errors.New("artifact does not implement the campaign interface")
)

// IsRevert reports whether the node rejected the call because the contract reverted
func IsRevert(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrReverted) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "execution reverted")
}

// RevertReason extracts the Error(string) reason from the node error data, empty if not available
func RevertReason(err error) string {
	var dataErr rpc.DataError
	if !errors.As(err, &dataErr) {
		return ""
	}
	hexData, ok := dataErr.ErrorData().(string)
	if !ok {
		return ""
	}
	reason, unpackErr := abi.UnpackRevert(common.FromHex(hexData))
	if unpackErr != nil {
		return ""
	}
	return reason
}
