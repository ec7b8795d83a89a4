package transport

import (
	"context"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
	"github.com/tinyss/tinyss/connection"
	"github.com/tinyss/tinyss/options"
)

type wsDialer struct {
	tcpDialer
	opts *options.WsOptions
}

func (d *wsDialer) Dial(ctx context.Context, addr string) (net.Conn, error) {
	scheme := "ws"
	if d.opts.TlsConfig != nil {
		scheme = "wss"
	}
	urls := url.URL{
		Scheme: scheme,
		Host:   addr,
		Path:   d.opts.Path,
	}
	dialer := &websocket.Dialer{
		NetDialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			return d.tcpDialer.Dial(ctx, addr)
		},
		ReadBufferSize:    d.opts.RevBuffer,
		WriteBufferSize:   d.opts.SndBuffer,
		EnableCompression: d.opts.Compress,
		TLSClientConfig:   d.opts.TlsConfig,
		HandshakeTimeout:  30 * time.Second,
	}
	header := http.Header{}
	if d.opts.Host != "" {
		header.Set("Host", d.opts.Host)
	}
	if d.opts.UserAgent != "" {
		header.Add("User-Agent", d.opts.UserAgent)
	}
	conn, resp, err := dialer.DialContext(ctx, urls.String(), header)
	if err != nil {
		return nil, err
	}
	resp.Body.Close()
	return connection.NewWebsocketConn(conn), nil
}
