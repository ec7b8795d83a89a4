package transport

import (
	"context"
	"net"
	"time"

	"github.com/tinyss/tinyss/options"
)

const (
	Tcp Type = iota // default
	Websocket
	Mux
)

const DefaultDialTimeout = 10 * time.Second

type Type uint8

func (t Type) String() string {
	switch t {
	case Tcp:
		return "tcp"
	case Websocket:
		return "websocket"
	case Mux:
		return "mux"
	default:
		return "unknown"
	}
}

type Dialer interface {
	Dial(context.Context, string) (net.Conn, error)
}

func NewDialer(tr Type, opt options.Options) Dialer {
	var dialer Dialer
	switch tr {
	case Tcp:
		dialer = &tcpDialer{}
	case Websocket:
		dialer = &wsDialer{opts: opt.(*options.WsOptions)}
	case Mux:
		dialer = newMuxDialer(&tcpDialer{}, opt.(*options.MuxOptions))
	default:
		panic("unsupported transport dialer type")
	}
	return dialer
}

func DialTCP(ctx context.Context, addr string) (net.Conn, error) {
	d := tcpDialer{}
	return d.Dial(ctx, addr)
}
