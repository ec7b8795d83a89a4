package client

import (
	"context"
	"net"
	"sync"

	"github.com/josexy/logx"
	"github.com/tinyss/tinyss/address"
	"github.com/tinyss/tinyss/options"
	"github.com/tinyss/tinyss/transport"
	"github.com/tinyss/tinyss/util/logger"
)

// ServerConfig is the already-resolved description of one encrypted relay
// server: where it is, which carrier transport reaches it, and the opaque
// stream layer that performs the relay's own negotiation.
type ServerConfig struct {
	Name      string
	Addr      string
	Transport transport.Type
	Options   options.Options
	ConnBound transport.TcpConnBound

	dialerOnce sync.Once
	d          transport.Dialer
}

// dialer is built once per config so multiplexing transports can share
// their carrier connection across sessions.
func (cfg *ServerConfig) dialer() transport.Dialer {
	cfg.dialerOnce.Do(func() {
		opts := cfg.Options
		if opts == nil {
			switch cfg.Transport {
			case transport.Websocket:
				opts = options.DefaultWsOptions
			case transport.Mux:
				opts = options.DefaultMuxOptions
			}
		}
		cfg.d = transport.NewDialer(cfg.Transport, opts)
	})
	return cfg.d
}

// DialProxyStream is the relay connect entry point: it reaches the server
// over the configured carrier, applies the opaque stream layer, and hands
// the target address to the relay. Everything past that point is raw
// application bytes.
func DialProxyStream(ctx context.Context, target address.Address, cfg *ServerConfig) (net.Conn, error) {
	conn, err := cfg.dialer().Dial(ctx, cfg.Addr)
	if err != nil {
		return nil, err
	}
	stop := watchCancel(ctx, conn)
	defer stop()

	if cfg.ConnBound != nil {
		conn = cfg.ConnBound.TcpConn(conn)
	}
	if _, err := conn.Write(target); err != nil {
		conn.Close()
		return nil, err
	}
	if err := transport.Flush(conn); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}

// SSClient presents an encrypted relay tunnel as a Stream. It runs no
// handshake of its own; its entire contract is transparency.
type SSClient struct {
	proxyStream
}

// DialSS connects to target through the relay server described by cfg.
func DialSS(ctx context.Context, target address.Address, cfg *ServerConfig) (*SSClient, error) {
	logger.Logger.Debug("relay connect",
		logx.String("name", cfg.Name),
		logx.String("addr", cfg.Addr),
		logx.String("transport", cfg.Transport.String()),
		logx.String("target", target.String()),
	)
	conn, err := DialProxyStream(ctx, target, cfg)
	if err != nil {
		return nil, err
	}
	return &SSClient{proxyStream{conn: conn}}, nil
}
