// Command socksconnect is an example client demonstrating the sans-I/O
// socks4/socks5 cores driven over a real net.Conn. It is explicitly out of
// scope for the core's own correctness (the core performs no socket
// calls); this program is the external collaborator that owns the
// transport: dialing the proxy, reading and writing the connection, and
// enforcing timeouts around the handshake steps.
package main

import (
	"errors"
	"time"

	"github.com/nilsocks/socksio/internal/config"
	"github.com/nilsocks/socksio/internal/flags"
	"github.com/nilsocks/socksio/internal/logger"
	"github.com/nilsocks/socksio/socks4"
	"github.com/nilsocks/socksio/socks5"
)

func main() {
	cfg := config.Get(flags.CfgPathFlag)
	if flags.VerboseFlag {
		logger.SetLevel(logger.DEBUG)
	} else {
		logger.SetLevel(logger.INFO)
	}

	conn, err := dial(cfg.Proxy.Address, time.Duration(cfg.Timeout.DialTimeout)*time.Second)
	if err != nil {
		logger.Fatal(err)
	}
	defer conn.Close()
	logger.Info("connected to proxy: ", cfg.Proxy.Address)

	switch cfg.Variant {
	case config.VariantSocks4, config.VariantSocks4A:
		reply, err := runSocks4(conn, cfg)
		if err != nil {
			logger.Fatal(err)
		}
		if reply.Code != socks4.CodeRequestGranted {
			logger.Fatal(errors.New("socks4 CONNECT rejected: " + reply.Code.String()))
		}
		logger.Info("socks4 CONNECT granted, bound address: ", reply.IP().String(), ":", reply.Port)
	case config.VariantSocks5:
		reply, err := runSocks5(conn, cfg)
		if err != nil {
			logger.Fatal(err)
		}
		if reply.Code != socks5.Succeeded {
			logger.Fatal(errors.New("socks5 CONNECT rejected: " + reply.Code.String()))
		}
		logger.Info("socks5 CONNECT granted, bound address: ", reply.BindAddr.String(), ":", reply.BindPort)
	}
}
