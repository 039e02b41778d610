package config

import (
	"math/big"
	"strings"
	"time"
)

var BuildVersion = "0.0.0-dev"

// DefaultMintPriceWei is 0.01 ETH
const DefaultMintPriceWei = "10000000000000000"

// Validation tags described here: https://pkg.go.dev/github.com/go-playground/validator/v10
type Config struct {
	Blockchain struct {
		EthNodeAddress      string        `env:"ETH_NODE_ADDRESS"          flag:"eth-node-address"          validate:"required,url"`
		NetworkID           uint64        `env:"ETH_NETWORK_ID"            flag:"eth-network-id"            validate:"required"  desc:"chain id the campaign contract is deployed to, connections to other networks are refused"`
		NetworkPollInterval time.Duration `env:"ETH_NETWORK_POLL_INTERVAL" flag:"eth-network-poll-interval"                      desc:"interval between checks of the connected network id"`
		EthLegacyTx         bool          `env:"ETH_NODE_LEGACY_TX"        flag:"eth-node-legacy-tx"                             desc:"use it to disable EIP-1559 transactions"`
	}
	Campaign struct {
		ContractAddress string        `env:"NFT_CONTRACT_ADDRESS"    flag:"nft-contract-address"    validate:"required,eth_addr"`
		PollInterval    time.Duration `env:"CAMPAIGN_POLL_INTERVAL"  flag:"campaign-poll-interval"                             desc:"interval between campaign state reads"`
		MintPriceWei    string        `env:"CAMPAIGN_MINT_PRICE_WEI" flag:"campaign-mint-price-wei" validate:"omitempty,number" desc:"value attached to presale and public mint transactions"`
		TxTimeout       time.Duration `env:"TX_TIMEOUT"              flag:"tx-timeout"                                         desc:"time to wait for a transaction to be mined before reporting timeout, the transaction may still be mined later"`
		MountOnStart    bool          `env:"CAMPAIGN_MOUNT_ON_START" flag:"campaign-mount-on-start"                            desc:"start polling campaign state right after startup"`
		AutoConnect     bool          `env:"WALLET_AUTO_CONNECT"     flag:"wallet-auto-connect"                                desc:"connect the wallet right after startup"`
	}
	Environment string `env:"ENVIRONMENT" flag:"environment"`
	Log         struct {
		Color          bool   `env:"LOG_COLOR"           flag:"log-color"`
		FolderPath     string `env:"LOG_FOLDER_PATH"     flag:"log-folder-path"     desc:"enables file logging and sets the folder path"`
		IsProd         bool   `env:"LOG_IS_PROD"         flag:"log-is-prod"                                      desc:"affects the format of the log output"`
		JSON           bool   `env:"LOG_JSON"            flag:"log-json"`
		LevelApp       string `env:"LOG_LEVEL_APP"       flag:"log-level-app"       validate:"omitempty,oneof=debug info warn error dpanic panic fatal"`
		LevelScheduler string `env:"LOG_LEVEL_SCHEDULER" flag:"log-level-scheduler" validate:"omitempty,oneof=debug info warn error dpanic panic fatal"`
		LevelRPC       string `env:"LOG_LEVEL_RPC"       flag:"log-level-rpc"       validate:"omitempty,oneof=debug info warn error dpanic panic fatal"`
	}
	Metadata struct {
		NamePrefix   string `env:"METADATA_NAME_PREFIX"    flag:"metadata-name-prefix"`
		Description  string `env:"METADATA_DESCRIPTION"    flag:"metadata-description"`
		ImageBaseURL string `env:"METADATA_IMAGE_BASE_URL" flag:"metadata-image-base-url" validate:"omitempty,url"`
	}
	Wallet struct {
		Mnemonic     string `env:"WALLET_MNEMONIC"      flag:"wallet-mnemonic"`
		AccountIndex int    `env:"WALLET_ACCOUNT_INDEX" flag:"wallet-account-index" validate:"gte=0"`
		PrivateKey   string `env:"WALLET_PRIVATE_KEY"   flag:"wallet-private-key"   validate:"omitempty,hexadecimal"`
	}
	Web struct {
		Address   string `env:"WEB_ADDRESS"    flag:"web-address"    validate:"required,hostname_port" desc:"http server address host:port"`
		PublicUrl string `env:"WEB_PUBLIC_URL" flag:"web-public-url" validate:"omitempty,url"          desc:"public url of the api, falls back to web-address if empty"`
	}
}

func (cfg *Config) SetDefaults() {
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	// Blockchain

	if cfg.Blockchain.NetworkPollInterval == 0 {
		cfg.Blockchain.NetworkPollInterval = 10 * time.Second
	}

	// Campaign

	if cfg.Campaign.PollInterval == 0 {
		cfg.Campaign.PollInterval = 5 * time.Second
	}
	if cfg.Campaign.MintPriceWei == "" {
		cfg.Campaign.MintPriceWei = DefaultMintPriceWei
	}
	if cfg.Campaign.TxTimeout == 0 {
		cfg.Campaign.TxTimeout = 2 * time.Minute
	}

	// Log

	if cfg.Log.LevelApp == "" {
		cfg.Log.LevelApp = "debug"
	}
	if cfg.Log.LevelScheduler == "" {
		cfg.Log.LevelScheduler = "info"
	}
	if cfg.Log.LevelRPC == "" {
		cfg.Log.LevelRPC = "info"
	}

	// Metadata

	if cfg.Metadata.NamePrefix == "" {
		cfg.Metadata.NamePrefix = "SUPPORT ETHEREUM #"
	}
	if cfg.Metadata.Description == "" {
		cfg.Metadata.Description = "Ethereum is a decentralized, open-source blockchain with smart contract functionality. Ether (ETH or Ξ) is the native cryptocurrency of the platform. Among cryptocurrencies, Ether is second only to Bitcoin in market capitalization"
	}
	if cfg.Metadata.ImageBaseURL == "" {
		cfg.Metadata.ImageBaseURL = "https://raw.githubusercontent.com/LearnWeb3DAO/NFT-Collection/main/my-app/public/cryptodevs/"
	}

	// Wallet

	// normalizes private key
	cfg.Wallet.PrivateKey = strings.TrimPrefix(cfg.Wallet.PrivateKey, "0x")

	// Web

	if cfg.Web.Address == "" {
		cfg.Web.Address = "0.0.0.0:8080"
	}
	if cfg.Web.PublicUrl == "" {
		cfg.Web.PublicUrl = "http://" + cfg.Web.Address
	}
}

// MintPrice returns the configured mint price in wei, DefaultMintPriceWei if unparsable
func (cfg *Config) MintPrice() *big.Int {
	price, ok := new(big.Int).SetString(cfg.Campaign.MintPriceWei, 10)
	if !ok {
		price, _ = new(big.Int).SetString(DefaultMintPriceWei, 10)
	}
	return price
}

// GetSanitized returns a copy of the config with sensitive data removed
// explicitly adding each field here to avoid accidentally leaking sensitive data
func (cfg *Config) GetSanitized() interface{} {
	publicCfg := Config{}

	publicCfg.Blockchain.NetworkID = cfg.Blockchain.NetworkID
	publicCfg.Blockchain.NetworkPollInterval = cfg.Blockchain.NetworkPollInterval
	publicCfg.Blockchain.EthLegacyTx = cfg.Blockchain.EthLegacyTx

	publicCfg.Campaign = cfg.Campaign
	publicCfg.Environment = cfg.Environment
	publicCfg.Log = cfg.Log
	publicCfg.Metadata = cfg.Metadata

	publicCfg.Wallet.AccountIndex = cfg.Wallet.AccountIndex

	publicCfg.Web = cfg.Web

	return publicCfg
}
