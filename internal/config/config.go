// Package config provides configuration loading for the socksconnect
// example client: which proxy to dial, which variant of the protocol to
// speak to it, and the target to request a CONNECT to.
package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/nilsocks/socksio/internal/logger"
)

// Variant selects which of the three handshakes to drive.
type Variant string

const (
	VariantSocks4  Variant = "socks4"
	VariantSocks4A Variant = "socks4a"
	VariantSocks5  Variant = "socks5"
)

var errInvalidConfigFile = errors.New("invalid config file")

// Account holds optional SOCKS5 username/password credentials.
type Account struct {
	Username string `toml:"username"`
	Password string `toml:"password"`
}

// timeoutConfig holds the dial and handshake timeouts enforced by the
// example client around the sans-I/O core (the core itself has no notion
// of time, per spec).
type timeoutConfig struct {
	DialTimeout      int `toml:"dialTimeout"`      // seconds
	HandshakeTimeout int `toml:"handshakeTimeout"` // seconds
}

// Config is the complete socksconnect configuration.
type Config struct {
	Proxy   proxyAddr     `toml:"proxy"`
	Target  targetAddr    `toml:"target"`
	Variant Variant       `toml:"variant"`
	Account Account       `toml:"account"`
	Timeout timeoutConfig `toml:"timeout"`
}

type proxyAddr struct {
	Address string `toml:"address"` // host:port of the SOCKS proxy
}

type targetAddr struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

var (
	cfg         *Config
	loadingOnce sync.Once
)

// Get loads and returns the configuration, caching it across calls with
// sync.Once so repeated calls never re-read or re-validate the file.
func Get(path string) *Config {
	loadingOnce.Do(func() {
		var err error
		if cfg, err = load(path); err != nil {
			logger.Fatal(errors.Join(errInvalidConfigFile, err))
		}
	})
	return cfg
}

func load(path string) (*Config, error) {
	var c Config
	if _, err := toml.DecodeFile(path, &c); err != nil {
		return nil, err
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	c.applyDefaultValues()
	return &c, nil
}

// IsSocks5AuthEnabled reports whether username/password credentials were
// configured for a SOCKS5 proxy.
func (c *Config) IsSocks5AuthEnabled() bool {
	return c.Account.Username != "" || c.Account.Password != ""
}

func (c *Config) validate() error {
	var missing []string
	if len(c.Proxy.Address) < 1 {
		missing = append(missing, "proxy.address")
	}
	if len(c.Target.Host) < 1 {
		missing = append(missing, "target.host")
	}
	if c.Target.Port < 1 || c.Target.Port > 65535 {
		missing = append(missing, "target.port")
	}
	switch c.Variant {
	case VariantSocks4, VariantSocks4A, VariantSocks5:
	default:
		missing = append(missing, fmt.Sprintf("variant (got %q, want socks4|socks4a|socks5)", c.Variant))
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing or invalid fields: %s", strings.Join(missing, ", "))
	}
	if c.IsSocks5AuthEnabled() && c.Variant != VariantSocks5 {
		return fmt.Errorf("account credentials are only meaningful for variant = %q", VariantSocks5)
	}
	return nil
}

func (c *Config) applyDefaultValues() {
	if c.Timeout.DialTimeout == 0 {
		c.Timeout.DialTimeout = 10
	}
	if c.Timeout.HandshakeTimeout == 0 {
		c.Timeout.HandshakeTimeout = 10
	}
}
