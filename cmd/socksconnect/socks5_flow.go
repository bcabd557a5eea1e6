package main

import (
	"fmt"
	"net"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/nilsocks/socksio/internal/config"
	"github.com/nilsocks/socksio/internal/logger"
	"github.com/nilsocks/socksio/internal/socksaddr"
	"github.com/nilsocks/socksio/socks5"
)

// runSocks5 drives a socks5.Conn through method negotiation, optional
// username/password sub-negotiation, and the CONNECT request.
func runSocks5(conn net.Conn, cfg *config.Config) (socks5.Reply, error) {
	c := socks5.New()
	deadline := func() time.Time {
		return time.Now().Add(time.Duration(cfg.Timeout.HandshakeTimeout) * time.Second)
	}

	methods := []socks5.AuthMethod{socks5.NoAuthRequired}
	if cfg.IsSocks5AuthEnabled() {
		methods = []socks5.AuthMethod{socks5.UsernamePassword, socks5.NoAuthRequired}
	}
	if err := c.NegotiateAuthMethods(methods); err != nil {
		return socks5.Reply{}, fmt.Errorf("socks5 negotiate methods: %w", err)
	}
	logTransition("socks5", "Init", "MethodsSent")
	if err := send(conn, c.DataToSend()); err != nil {
		return socks5.Reply{}, err
	}

	selected, err := awaitAuthMethod(conn, c, deadline())
	if err != nil {
		return socks5.Reply{}, err
	}

	if selected == socks5.UsernamePassword {
		// Debug logging of configured secrets is a real footgun during
		// handshake troubleshooting; log a bcrypt fingerprint instead of
		// the plaintext password so a pasted debug log never leaks it.
		if fp, err := bcrypt.GenerateFromPassword([]byte(cfg.Account.Password), bcrypt.DefaultCost); err == nil {
			logger.Debug(fmt.Sprintf("socks5: authenticating as %q (password fingerprint %s)", cfg.Account.Username, fp))
		}
		if err := c.AuthenticateUsernamePassword([]byte(cfg.Account.Username), []byte(cfg.Account.Password)); err != nil {
			return socks5.Reply{}, fmt.Errorf("socks5 authenticate: %w", err)
		}
		logTransition("socks5", "MethodAccepted", "AuthSent")
		if err := send(conn, c.DataToSend()); err != nil {
			return socks5.Reply{}, err
		}
		if err := awaitAuthResult(conn, c, deadline()); err != nil {
			return socks5.Reply{}, err
		}
	}

	if err := c.Request(socksaddr.Connect, cfg.Target.Host, uint16(cfg.Target.Port)); err != nil {
		return socks5.Reply{}, fmt.Errorf("socks5 request: %w", err)
	}
	from := "MethodAccepted"
	if selected == socks5.UsernamePassword {
		from = "AuthAccepted"
	}
	logTransition("socks5", from, "RequestSent")
	if err := send(conn, c.DataToSend()); err != nil {
		return socks5.Reply{}, err
	}

	return awaitConnectReply(conn, c, deadline())
}

func awaitAuthMethod(conn net.Conn, c *socks5.Conn, deadline time.Time) (socks5.AuthMethod, error) {
	for {
		chunk, err := recv(conn, deadline)
		if err != nil {
			return 0, err
		}
		events, err := c.ReceiveData(chunk)
		if err != nil {
			return 0, fmt.Errorf("socks5 method reply: %w", err)
		}
		for _, ev := range events {
			if ev.Kind == socks5.EventAuthMethodsReply {
				if ev.AuthMethods.Method == socks5.NoAcceptable {
					logTransition("socks5", "MethodsSent", "Failed")
					return 0, fmt.Errorf("socks5: proxy accepted none of the offered methods")
				}
				logTransition("socks5", "MethodsSent", "MethodAccepted")
				return ev.AuthMethods.Method, nil
			}
		}
	}
}

func awaitAuthResult(conn net.Conn, c *socks5.Conn, deadline time.Time) error {
	for {
		chunk, err := recv(conn, deadline)
		if err != nil {
			return err
		}
		events, err := c.ReceiveData(chunk)
		if err != nil {
			return fmt.Errorf("socks5 auth reply: %w", err)
		}
		for _, ev := range events {
			if ev.Kind == socks5.EventUsernamePasswordReply {
				if !ev.UsernamePass.Success {
					logTransition("socks5", "AuthSent", "Failed")
					return fmt.Errorf("socks5: username/password authentication failed")
				}
				logTransition("socks5", "AuthSent", "AuthAccepted")
				return nil
			}
		}
	}
}

func awaitConnectReply(conn net.Conn, c *socks5.Conn, deadline time.Time) (socks5.Reply, error) {
	for {
		chunk, err := recv(conn, deadline)
		if err != nil {
			return socks5.Reply{}, err
		}
		events, err := c.ReceiveData(chunk)
		if err != nil {
			return socks5.Reply{}, fmt.Errorf("socks5 connect reply: %w", err)
		}
		for _, ev := range events {
			if ev.Kind == socks5.EventReply {
				if c.Succeeded() {
					logTransition("socks5", "RequestSent", "Succeeded")
				} else {
					logTransition("socks5", "RequestSent", "Failed")
				}
				return ev.ConnectReply, nil
			}
		}
	}
}
