package config

import "strings"

// DeployConfig configures the one-shot campaign contract deployment
type DeployConfig struct {
	ArtifactPath     string `env:"CONTRACT_ARTIFACT_PATH"     flag:"artifact"         validate:"required,file"    desc:"hardhat artifact json with abi and bytecode of the campaign contract"`
	EthNodeAddress   string `env:"ETH_NODE_ADDRESS"           flag:"eth-node-address" validate:"required,url"`
	EthLegacyTx      bool   `env:"ETH_NODE_LEGACY_TX"         flag:"eth-node-legacy-tx"`
	MetadataURL      string `env:"METADATA_URL"               flag:"metadata-url"     validate:"required,url"     desc:"base token URI of the collection"`
	WhitelistAddress string `env:"WHITELIST_CONTRACT_ADDRESS" flag:"whitelist"        validate:"required,eth_addr"`
	PrivateKey       string `env:"WALLET_PRIVATE_KEY"         flag:"wallet-private-key" validate:"required,hexadecimal"`
	LogLevel         string `env:"LOG_LEVEL_APP"              flag:"log-level-app"    validate:"omitempty,oneof=debug info warn error dpanic panic fatal"`
}

func (cfg *DeployConfig) SetDefaults() {
	cfg.PrivateKey = strings.TrimPrefix(cfg.PrivateKey, "0x")
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
}
