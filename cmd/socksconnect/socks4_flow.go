package main

import (
	"fmt"
	"net"
	"time"

	"github.com/nilsocks/socksio/internal/config"
	"github.com/nilsocks/socksio/socks4"
	"github.com/nilsocks/socksio/internal/socksaddr"
)

// runSocks4 drives a socks4.Conn to completion over conn, for both the
// SOCKS4 and SOCKS4A variants (New vs NewA is the only difference).
func runSocks4(conn net.Conn, cfg *config.Config) (socks4.Reply, error) {
	var c *socks4.Conn
	if cfg.Variant == config.VariantSocks4A {
		c = socks4.NewA(nil)
	} else {
		c = socks4.New(nil)
	}

	if err := c.Request(socksaddr.Connect, cfg.Target.Host, uint16(cfg.Target.Port)); err != nil {
		return socks4.Reply{}, fmt.Errorf("socks4 request: %w", err)
	}
	logTransition("socks4", "Init", "AwaitingReply")
	if err := send(conn, c.DataToSend()); err != nil {
		return socks4.Reply{}, err
	}

	deadline := time.Now().Add(time.Duration(cfg.Timeout.HandshakeTimeout) * time.Second)
	for {
		chunk, err := recv(conn, deadline)
		if err != nil {
			return socks4.Reply{}, err
		}
		reply, ok, err := c.ReceiveData(chunk)
		if err != nil {
			return socks4.Reply{}, fmt.Errorf("socks4 reply: %w", err)
		}
		if ok {
			if c.Succeeded() {
				logTransition("socks4", "AwaitingReply", "Succeeded")
			} else {
				logTransition("socks4", "AwaitingReply", "Failed")
			}
			return reply, nil
		}
	}
}
