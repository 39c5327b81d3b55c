package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type StructuredJSONConfig struct {
	App struct {
		TokenSignKey    string   `json:"token_sign_key"`
		TokenIssuer     string   `json:"token_issuer"`
		TokenDuration   Duration `json:"token_duration"`
		BootstrapSecret string   `json:"bootstrap_secret"`
		Version         string   `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			Driver string `json:"driver"`
			DSN    string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Client struct {
		BaseURL        string   `json:"base_url"`
		Token          string   `json:"token"`
		RequestTimeout Duration `json:"request_timeout"`
		RetryAttempts  uint64   `json:"retry_attempts"`
		RetryDelay     Duration `json:"retry_delay"`
		Scope          string   `json:"scope"`
		Space          string   `json:"space"`
		MnemonicFile   string   `json:"mnemonic_file"`
		Passphrase     string   `json:"passphrase"`
	} `json:"client,omitempty"`

	Workers struct {
		RepublishInterval Duration `json:"republish_interval"`
	} `json:"workers,omitempty"`
}

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
			TokenSignKey:    jsonCfg.App.TokenSignKey,
			TokenIssuer:     jsonCfg.App.TokenIssuer,
			TokenDuration:   time.Duration(jsonCfg.App.TokenDuration),
			BootstrapSecret: jsonCfg.App.BootstrapSecret,
			Version:         jsonCfg.App.Version,
		},
		Storage: Storage{
			DB: DBConfig{
				Driver: jsonCfg.Storage.DB.Driver,
				DSN:    jsonCfg.Storage.DB.DSN,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Client: Client{
			BaseURL:        jsonCfg.Client.BaseURL,
			Token:          jsonCfg.Client.Token,
			RequestTimeout: time.Duration(jsonCfg.Client.RequestTimeout),
			RetryAttempts:  jsonCfg.Client.RetryAttempts,
			RetryDelay:     time.Duration(jsonCfg.Client.RetryDelay),
			Scope:          jsonCfg.Client.Scope,
			Space:          jsonCfg.Client.Space,
			MnemonicFile:   jsonCfg.Client.MnemonicFile,
			Passphrase:     jsonCfg.Client.Passphrase,
		},
		Workers: Workers{
			RepublishInterval: time.Duration(jsonCfg.Workers.RepublishInterval),
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
