package contracts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/Lumerin-protocol/presale-minter/internal/lib"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Artifact is the compiled contract as emitted by hardhat into artifacts/<Name>.sol/<Name>.json
type Artifact struct {
	ContractName string          `json:"contractName"`
	ABI          json.RawMessage `json:"abi"`
	Bytecode     string          `json:"bytecode"`
}

func LoadArtifact(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseArtifact(data)
}

func ParseArtifact(data []byte) (*Artifact, error) {
	var artifact Artifact
	err := json.Unmarshal(data, &artifact)
	if err != nil {
		return nil, err
	}
	if len(artifact.ABI) == 0 || len(common.FromHex(artifact.Bytecode)) == 0 {
		return nil, fmt.Errorf("artifact %s: missing abi or bytecode", artifact.ContractName)
	}
	return &artifact, nil
}

// ParsedABI parses the artifact ABI and checks that the contract exposes every campaign method
// the client relies on, with matching mutability
func (a *Artifact) ParsedABI() (abi.ABI, error) {
	parsed, err := abi.JSON(bytes.NewReader(a.ABI))
	if err != nil {
		return abi.ABI{}, err
	}
	required, err := abi.JSON(strings.NewReader(CampaignABI))
	if err != nil {
		return abi.ABI{}, err
	}

	for name, method := range required.Methods {
		got, ok := parsed.Methods[name]
		if !ok {
			return abi.ABI{}, lib.WrapError(ErrArtifactMismatch, fmt.Errorf("missing method %s", name))
		}
		if got.StateMutability != method.StateMutability {
			return abi.ABI{}, lib.WrapError(ErrArtifactMismatch, fmt.Errorf("method %s is %s, expected %s", name, got.StateMutability, method.StateMutability))
		}
	}
	if len(parsed.Constructor.Inputs) != len(required.Constructor.Inputs) {
		return abi.ABI{}, lib.WrapError(ErrArtifactMismatch, fmt.Errorf("constructor takes %d arguments, expected (baseURI, whitelistContract)", len(parsed.Constructor.Inputs)))
	}

	return parsed, nil
}

type DeployBackend interface {
	bind.ContractBackend
	bind.DeployBackend
}

// Deploy creates the campaign contract with constructor arguments (baseURI, whitelistContract)
// and waits until its code is available on chain
func Deploy(ctx context.Context, opts *bind.TransactOpts, backend DeployBackend, artifact *Artifact, baseURI string, whitelist common.Address) (common.Address, *types.Transaction, error) {
	parsed, err := artifact.ParsedABI()
	if err != nil {
		return common.Address{}, nil, err
	}

	addr, tx, _, err := bind.DeployContract(opts, parsed, common.FromHex(artifact.Bytecode), backend, baseURI, whitelist)
	if err != nil {
		return common.Address{}, nil, err
	}

	_, err = bind.WaitDeployed(ctx, backend, tx)
	if err != nil {
		return common.Address{}, tx, err
	}

	return addr, tx, nil
}
