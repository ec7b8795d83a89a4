package client

import (
	"context"

	"github.com/tinyss/tinyss/address"
	"github.com/tinyss/tinyss/socks"
	"github.com/tinyss/tinyss/transport"
	"github.com/tinyss/tinyss/util/logger"
)

// Socks5Client owns a raw connection to a SOCKS5 proxy after a successful
// handshake. Application bytes flow through it untouched.
type Socks5Client struct {
	proxyStream
}

// DialSocks5 connects to the proxy at proxyAddr and negotiates a CONNECT
// session for target. On any negotiation failure the half-open connection
// is closed and no client is returned.
func DialSocks5(ctx context.Context, target address.Address, proxyAddr string) (*Socks5Client, error) {
	conn, err := transport.DialTCP(ctx, proxyAddr)
	if err != nil {
		return nil, err
	}
	stop := watchCancel(ctx, conn)
	defer stop()

	logger.Logger.Tracef("socks5 connect via %s to %s", proxyAddr, target)
	if err := socks.NegotiateConnect(conn, target); err != nil {
		conn.Close()
		return nil, err
	}
	return &Socks5Client{proxyStream{conn: conn}}, nil
}

// DialSocks5UDP negotiates a UDP-ASSOCIATE session for target and returns
// the client together with the UDP relay endpoint bound by the proxy. The
// returned client must stay open for as long as the association is used.
func DialSocks5UDP(ctx context.Context, target address.Address, proxyAddr string) (*Socks5Client, address.Address, error) {
	conn, err := transport.DialTCP(ctx, proxyAddr)
	if err != nil {
		return nil, nil, err
	}
	stop := watchCancel(ctx, conn)
	defer stop()

	logger.Logger.Tracef("socks5 udp associate via %s for %s", proxyAddr, target)
	bound, err := socks.NegotiateUDPAssociate(conn, target)
	if err != nil {
		conn.Close()
		return nil, nil, err
	}
	return &Socks5Client{proxyStream{conn: conn}}, bound, nil
}
