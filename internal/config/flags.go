package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"strconv"
)

// NetAddress is a host:port pair usable as a flag.Value. An empty host
// listens on every interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses server flags from args. Flags left unset stay at their
// zero value so mergo keeps the lower layers.
//
//	-a                       listen address, [host]:port
//	-d                       database DSN
//	-driver                  pgx, sqlite3 or mysql
//	-c, -config              JSON config file
//	-token-sign-key          identity token verification key
//	-token-issuer            expected identity token issuer
//	-log-level               zerolog level name
//	-request-timeout         per-request deadline, e.g. 30s
//	-rate-limit-rps          per-client request rate, negative disables
//	-rate-limit-burst        per-client burst
//	-encrypt-cards-and-pins  seal card and pin fields
func ParseFlags(args []string) (*StructuredConfig, error) {
	var (
		cfg     StructuredConfig
		address NetAddress
	)

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.Var(&address, "a", "listen address host:port")
	fs.StringVar(&cfg.Storage.DB.DSN, "d", "", "database DSN")
	fs.StringVar(&cfg.Storage.DB.Driver, "driver", "", "database driver: pgx, sqlite3 or mysql")
	fs.StringVar(&cfg.JSONFilePath, "c", "", "JSON config file path")
	fs.StringVar(&cfg.JSONFilePath, "config", "", "JSON config file path")
	fs.StringVar(&cfg.App.TokenSignKey, "token-sign-key", "", "identity token verification key")
	fs.StringVar(&cfg.App.TokenIssuer, "token-issuer", "", "expected identity token issuer")
	fs.StringVar(&cfg.App.LogLevel, "log-level", "", "log level")
	fs.DurationVar(&cfg.Server.RequestTimeout, "request-timeout", 0, "per-request deadline")
	fs.Float64Var(&cfg.Server.RateLimitRPS, "rate-limit-rps", 0, "per-client requests per second, negative disables")
	fs.IntVar(&cfg.Server.RateLimitBurst, "rate-limit-burst", 0, "per-client burst size")
	fs.BoolVar(&cfg.Cipher.EncryptCardsAndPins, "encrypt-cards-and-pins", false, "seal card and pin fields")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}
	cfg.Server.HTTPAddress = address.String()

	return &cfg, nil
}

// String returns host:port, or "" for the zero value.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// Set parses host:port. The host must be empty, "localhost" or an IP
// literal; the port must be in 1..65535.
func (a *NetAddress) Set(s string) error {
	host, rawPort, err := net.SplitHostPort(s)
	if err != nil {
		return fmt.Errorf("need address in a form `host:port`: %w", err)
	}

	port, err := strconv.Atoi(rawPort)
	if err != nil {
		return fmt.Errorf("invalid port %q: %w", rawPort, err)
	}
	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1..65535")
	}

	if host != "" && host != "localhost" && net.ParseIP(host) == nil {
		return fmt.Errorf("incorrect IP-address provided: %q", host)
	}

	a.Host, a.Port = host, port
	return nil
}
