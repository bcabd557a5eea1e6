package config

import "testing"

func TestValidateRejectsMissingFields(t *testing.T) {
	var c Config
	if err := c.validate(); err == nil {
		t.Fatal("expected validation error for empty config")
	}
}

func TestValidateRejectsUnknownVariant(t *testing.T) {
	c := Config{
		Proxy:   proxyAddr{Address: "127.0.0.1:1080"},
		Target:  targetAddr{Host: "example.com", Port: 80},
		Variant: "socks3",
	}
	if err := c.validate(); err == nil {
		t.Fatal("expected validation error for unknown variant")
	}
}

func TestValidateRejectsCredentialsOnNonSocks5(t *testing.T) {
	c := Config{
		Proxy:   proxyAddr{Address: "127.0.0.1:1080"},
		Target:  targetAddr{Host: "example.com", Port: 80},
		Variant: VariantSocks4,
		Account: Account{Username: "u", Password: "p"},
	}
	if err := c.validate(); err == nil {
		t.Fatal("expected validation error for credentials on a non-SOCKS5 variant")
	}
}

func TestApplyDefaultValues(t *testing.T) {
	var c Config
	c.applyDefaultValues()
	if c.Timeout.DialTimeout != 10 || c.Timeout.HandshakeTimeout != 10 {
		t.Fatalf("defaults not applied: %+v", c.Timeout)
	}
}

func TestValidConfig(t *testing.T) {
	c := Config{
		Proxy:   proxyAddr{Address: "127.0.0.1:1080"},
		Target:  targetAddr{Host: "example.com", Port: 443},
		Variant: VariantSocks5,
		Account: Account{Username: "u", Password: "p"},
	}
	if err := c.validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !c.IsSocks5AuthEnabled() {
		t.Fatal("expected auth enabled with username/password set")
	}
}
