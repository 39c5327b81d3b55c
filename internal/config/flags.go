package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN
//	-driver database driver (postgres, sqlite, memory)
//	-c/-config json file path with configs
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-token-duration token duration (e.g., "1h", "30m")
//	-bootstrap-secret secret authorizing session issuance
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-base-url storage backend endpoint for the client
//	-token storage session token for the client
//	-scope vault scope identifier
//	-space storage space override
//	-mnemonic-file path to the BIP-39 mnemonic file
//	-republish-interval how often to re-publish the public key
func ParseFlags() *StructuredConfig {
	var serverAddress NetAddress
	var databaseDSN string
	var databaseDriver string
	var jsonConfigPath string
	var tokenSignKey string
	var tokenIssuer string
	var tokenDuration time.Duration
	var bootstrapSecret string
	var requestTimeout time.Duration
	var baseURL string
	var clientToken string
	var scope string
	var space string
	var mnemonicFile string
	var republishInterval time.Duration

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&databaseDriver, "driver", "", "Database driver (postgres, sqlite, memory)")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	flag.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	flag.DurationVar(&tokenDuration, "token-duration", 0, "Token duration (e.g., 1h, 30m)")
	flag.StringVar(&bootstrapSecret, "bootstrap-secret", "", "Secret authorizing session issuance")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.StringVar(&baseURL, "base-url", "", "Storage backend endpoint")
	flag.StringVar(&clientToken, "token", "", "Storage session token")
	flag.StringVar(&scope, "scope", "", "Vault scope identifier")
	flag.StringVar(&space, "space", "", "Storage space override")
	flag.StringVar(&mnemonicFile, "mnemonic-file", "", "Path to the BIP-39 mnemonic file")
	flag.DurationVar(&republishInterval, "republish-interval", 0, "Public key republish interval")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			TokenSignKey:    tokenSignKey,
			TokenIssuer:     tokenIssuer,
			TokenDuration:   tokenDuration,
			BootstrapSecret: bootstrapSecret,
		},
		Storage: Storage{
			DB: DBConfig{
				Driver: databaseDriver,
				DSN:    databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Client: Client{
			BaseURL:        baseURL,
			Token:          clientToken,
			RequestTimeout: requestTimeout,
			Scope:          scope,
			Space:          space,
			MnemonicFile:   mnemonicFile,
		},
		Workers: Workers{
			RepublishInterval: republishInterval,
		},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns a canonical host:port string for a NetAddress.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
