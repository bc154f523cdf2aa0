package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk shape of the JSON configuration file.
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey string `json:"token_sign_key"`
		TokenIssuer  string `json:"token_issuer"`
		LogLevel     string `json:"log_level"`
		Version      string `json:"version"`
	} `json:"app,omitempty"`

	Cipher struct {
		ArgonTime           uint32 `json:"argon_time"`
		ArgonMemory         uint32 `json:"argon_memory"`
		ArgonThreads        uint8  `json:"argon_threads"`
		EncryptCardsAndPins bool   `json:"encrypt_cards_and_pins"`
	} `json:"cipher,omitempty"`

	Storage struct {
		DB struct {
			Driver       string `json:"driver"`
			DSN          string `json:"dsn"`
			MaxOpenConns int    `json:"max_open_conns"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
		RateLimitRPS   float64  `json:"rate_limit_rps"`
		RateLimitBurst int      `json:"rate_limit_burst"`
	} `json:"server,omitempty"`

	Adapter struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"adapter,omitempty"`

	Workers struct {
		LegacyUpgradeInterval Duration `json:"legacy_upgrade_interval"`
		LegacyUpgradeBatch    int      `json:"legacy_upgrade_batch"`
	} `json:"workers,omitempty"`
}

// parseJSON reads the config file at jsonFilePath. Missing sections and
// keys decode to zero values.
func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			TokenSignKey: jsonCfg.App.TokenSignKey,
			TokenIssuer:  jsonCfg.App.TokenIssuer,
			LogLevel:     jsonCfg.App.LogLevel,
			Version:      jsonCfg.App.Version,
		},
		Cipher: Cipher{
			ArgonTime:           jsonCfg.Cipher.ArgonTime,
			ArgonMemory:         jsonCfg.Cipher.ArgonMemory,
			ArgonThreads:        jsonCfg.Cipher.ArgonThreads,
			EncryptCardsAndPins: jsonCfg.Cipher.EncryptCardsAndPins,
		},
		Storage: Storage{
			DB: DB{
				Driver:       jsonCfg.Storage.DB.Driver,
				DSN:          jsonCfg.Storage.DB.DSN,
				MaxOpenConns: jsonCfg.Storage.DB.MaxOpenConns,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
			RateLimitRPS:   jsonCfg.Server.RateLimitRPS,
			RateLimitBurst: jsonCfg.Server.RateLimitBurst,
		},
		Adapter: Adapter{
			HTTPAddress:    jsonCfg.Adapter.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
		},
		Workers: Workers{
			LegacyUpgradeInterval: time.Duration(jsonCfg.Workers.LegacyUpgradeInterval),
			LegacyUpgradeBatch:    jsonCfg.Workers.LegacyUpgradeBatch,
		},
	}

	return cfg, nil
}

// Duration reads either a time.ParseDuration string ("30s", "1h") or a
// number of nanoseconds from JSON.
type Duration time.Duration

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return err
		}
		*d = Duration(parsed)
		return nil
	}

	var ns int64
	if err := json.Unmarshal(b, &ns); err != nil {
		return fmt.Errorf("duration must be a string or a number: %w", err)
	}
	*d = Duration(ns)
	return nil
}

// MarshalJSON writes the duration as a string.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
