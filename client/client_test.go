package client

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/tinyss/tinyss/address"
	"github.com/tinyss/tinyss/connection"
	"github.com/tinyss/tinyss/options"
	"github.com/tinyss/tinyss/socks/constant"
	"github.com/tinyss/tinyss/transport"
	smux "github.com/xtaci/smux"
)

func serveSocks5(conn net.Conn, reply constant.ReplyCode, bound string) {
	defer conn.Close()
	var b [2]byte
	if _, err := io.ReadFull(conn, b[:]); err != nil {
		return
	}
	methods := make([]byte, b[1])
	if _, err := io.ReadFull(conn, methods); err != nil {
		return
	}
	conn.Write([]byte{0x05, constant.MethodNoAuthRequired})

	var h [3]byte
	if _, err := io.ReadFull(conn, h[:]); err != nil {
		return
	}
	buf := make([]byte, address.MaxBufferSize)
	if _, err := address.ReadFrom(conn, buf); err != nil {
		return
	}
	baddr, _ := address.Parse(bound)
	conn.Write(append([]byte{0x05, byte(reply), 0x00}, baddr...))
	if reply == constant.Succeeded {
		io.Copy(conn, conn)
	}
}

func startMockSocks5(t *testing.T, reply constant.ReplyCode, bound string) string {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	assert.Nil(t, err)
	t.Cleanup(func() { ln.Close() })
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go serveSocks5(conn, reply, bound)
		}
	}()
	return ln.Addr().String()
}

// relayEcho plays the far side of an opaque relay stream: consume the
// target address header, then echo application bytes.
func relayEcho(conn net.Conn) {
	defer conn.Close()
	buf := make([]byte, address.MaxBufferSize)
	if _, err := address.ReadFrom(conn, buf); err != nil {
		return
	}
	io.Copy(conn, conn)
}

func startMockRelayTCP(t *testing.T) string {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	assert.Nil(t, err)
	t.Cleanup(func() { ln.Close() })
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go relayEcho(conn)
		}
	}()
	return ln.Addr().String()
}

// exerciseStream drives the shared duplex contract against an echo peer:
// identical counts, echo payload, and shutdown idempotence for every
// client type.
func exerciseStream(t *testing.T, s Stream) {
	payload := []byte("ping through the proxy")
	n, err := s.Write(payload)
	assert.Nil(t, err)
	assert.Equal(t, len(payload), n)
	assert.Nil(t, s.Flush())

	got := make([]byte, len(payload))
	_, err = io.ReadFull(s, got)
	assert.Nil(t, err)
	assert.Equal(t, payload, got)

	assert.Nil(t, s.CloseWrite())
	assert.Nil(t, s.CloseWrite())

	// peer saw end of stream, nothing more to read
	_, err = s.Read(got)
	assert.NotNil(t, err)

	assert.Nil(t, s.Close())
	assert.Nil(t, s.Close())
}

func TestDialSocks5(t *testing.T) {
	proxyAddr := startMockSocks5(t, constant.Succeeded, "0.0.0.0:0")
	target, err := address.Parse("example.com:443")
	assert.Nil(t, err)

	c, err := DialSocks5(context.Background(), target, proxyAddr)
	assert.Nil(t, err)
	exerciseStream(t, c)
}

func TestDialSocks5Rejected(t *testing.T) {
	proxyAddr := startMockSocks5(t, constant.HostUnreachable, "0.0.0.0:0")
	target, _ := address.Parse("example.com:443")

	c, err := DialSocks5(context.Background(), target, proxyAddr)
	assert.Nil(t, c)
	var replyErr *constant.ReplyError
	assert.ErrorAs(t, err, &replyErr)
	assert.Equal(t, constant.HostUnreachable, replyErr.Code)
}

func TestDialSocks5UDP(t *testing.T) {
	proxyAddr := startMockSocks5(t, constant.Succeeded, "127.0.0.1:3333")
	target, _ := address.Parse("8.8.8.8:53")

	c, bound, err := DialSocks5UDP(context.Background(), target, proxyAddr)
	assert.Nil(t, err)
	assert.Equal(t, "127.0.0.1:3333", bound.String())
	assert.Nil(t, c.Close())
}

func TestDialSocks5Canceled(t *testing.T) {
	// a proxy that accepts and never answers
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	assert.Nil(t, err)
	t.Cleanup(func() { ln.Close() })
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			defer conn.Close()
			io.Copy(io.Discard, conn)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	target, _ := address.Parse("example.com:443")
	c, err := DialSocks5(ctx, target, ln.Addr().String())
	assert.Nil(t, c)
	assert.NotNil(t, err)
}

func TestDialSS(t *testing.T) {
	relayAddr := startMockRelayTCP(t)
	target, _ := address.Parse("example.com:443")

	c, err := DialSS(context.Background(), target, &ServerConfig{
		Name:      "test",
		Addr:      relayAddr,
		Transport: transport.Tcp,
	})
	assert.Nil(t, err)
	exerciseStream(t, c)
}

func TestDialSSWebsocket(t *testing.T) {
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		wc, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		relayEcho(connection.NewWebsocketConn(wc))
	}))
	t.Cleanup(srv.Close)

	target, _ := address.Parse("example.com:443")
	c, err := DialSS(context.Background(), target, &ServerConfig{
		Name:      "ws-test",
		Addr:      srv.Listener.Addr().String(),
		Transport: transport.Websocket,
		Options:   &options.WsOptions{Path: "/"},
	})
	assert.Nil(t, err)
	exerciseStream(t, c)
}

func TestDialSSMux(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	assert.Nil(t, err)
	t.Cleanup(func() { ln.Close() })
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		sess, err := smux.Server(conn, nil)
		if err != nil {
			return
		}
		for {
			stream, err := sess.AcceptStream()
			if err != nil {
				return
			}
			go relayEcho(stream)
		}
	}()

	cfg := &ServerConfig{
		Name:      "mux-test",
		Addr:      ln.Addr().String(),
		Transport: transport.Mux,
	}
	target, _ := address.Parse("example.com:443")

	// two logical sessions over one carrier connection
	c1, err := DialSS(context.Background(), target, cfg)
	assert.Nil(t, err)
	c2, err := DialSS(context.Background(), target, cfg)
	assert.Nil(t, err)
	exerciseStream(t, c1)
	exerciseStream(t, c2)
}

// the facade must behave identically for both client types
func TestStreamFacadeTransportAgnostic(t *testing.T) {
	target, _ := address.Parse("example.com:443")

	direct, err := DialSocks5(context.Background(), target, startMockSocks5(t, constant.Succeeded, "0.0.0.0:0"))
	assert.Nil(t, err)
	relay, err := DialSS(context.Background(), target, &ServerConfig{
		Addr:      startMockRelayTCP(t),
		Transport: transport.Tcp,
	})
	assert.Nil(t, err)

	for _, s := range []Stream{direct, relay} {
		exerciseStream(t, s)
	}
}
