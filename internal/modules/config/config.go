package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

const configFilePathENV = "CONFIG_FILE"

type ExchangeConfig struct {
	RestURL string `yaml:"rest_url"`
	WsURL   string `yaml:"ws_url"`

	// HMAC-схема
	APIKey    string `yaml:"api_key"`
	APISecret string `yaml:"api_secret"`

	// wallet / L1 схемы
	WalletAddress string `yaml:"wallet_address"`
	SignerAddress string `yaml:"signer_address"`
	PrivateKey    string `yaml:"private_key"`
	VaultAddress  string `yaml:"vault_address"`
	Testnet       bool   `yaml:"testnet"`
}

type Config struct {
	Binance     ExchangeConfig `yaml:"binance"`
	Aster       ExchangeConfig `yaml:"aster"`
	Hyperliquid ExchangeConfig `yaml:"hyperliquid"`

	Telegram struct {
		Token  string `yaml:"token"`
		ChatID int64  `yaml:"chat_id"`
	} `yaml:"telegram"`

	Jaeger struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	} `yaml:"jaeger"`

	Stream struct {
		Exchange string   `yaml:"exchange"`
		Symbols  []string `yaml:"symbols"`
	} `yaml:"stream"`
}

func NewConfig() (*Config, error) {
	config := Config{}

	// дефолтные эндпоинты; ключи только из файла/окружения
	config.Binance.RestURL = "https://fapi.binance.com"
	config.Binance.WsURL = "wss://fstream.binance.com/ws"
	config.Aster.RestURL = "https://fapi.asterdex.com"
	config.Aster.WsURL = "wss://fstream.asterdex.com/ws"
	config.Hyperliquid.RestURL = "https://api.hyperliquid.xyz"
	config.Hyperliquid.WsURL = "wss://api.hyperliquid.xyz/ws"

	configFileName := os.Getenv(configFilePathENV)
	if configFileName == "" {
		configFileName = "values_local.yaml"
	}
	if file, err := os.Open("configs/" + configFileName); err == nil {
		decoder := yaml.NewDecoder(file)
		if err := decoder.Decode(&config); err != nil {
			_ = file.Close()
			return nil, err
		}
		_ = file.Close()
	}

	// окружение поверх файла
	applyEnv(&config.Binance, "BINANCE")
	applyEnv(&config.Aster, "ASTER")
	applyEnv(&config.Hyperliquid, "HYPERLIQUID")

	if v := os.Getenv("TELEGRAM_TOKEN"); v != "" {
		config.Telegram.Token = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			config.Telegram.ChatID = id
		}
	}

	return &config, nil
}

func applyEnv(ec *ExchangeConfig, prefix string) {
	set := func(dst *string, key string) {
		if v := os.Getenv(prefix + "_" + key); v != "" {
			*dst = v
		}
	}
	set(&ec.RestURL, "REST_URL")
	set(&ec.WsURL, "WS_URL")
	set(&ec.APIKey, "API_KEY")
	set(&ec.APISecret, "API_SECRET")
	set(&ec.WalletAddress, "WALLET_ADDRESS")
	set(&ec.SignerAddress, "SIGNER_ADDRESS")
	set(&ec.PrivateKey, "PRIVATE_KEY")
	set(&ec.VaultAddress, "VAULT_ADDRESS")
	if v := os.Getenv(prefix + "_TESTNET"); v == "1" || v == "true" {
		ec.Testnet = true
	}
}
