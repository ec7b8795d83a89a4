package transport

import (
	"context"
	"net"
	"sync"

	"github.com/tinyss/tinyss/options"
	smux "github.com/xtaci/smux"
)

// muxDialer multiplexes many logical streams onto one underlying
// connection per proxy address. Dial opens a fresh smux stream, redialing
// the carrier connection when the session is gone.
type muxDialer struct {
	base Dialer
	opts *options.MuxOptions

	mu       sync.Mutex
	sessions map[string]*smux.Session
}

func newMuxDialer(base Dialer, opts *options.MuxOptions) *muxDialer {
	return &muxDialer{
		base:     base,
		opts:     opts,
		sessions: make(map[string]*smux.Session),
	}
}

func (d *muxDialer) Dial(ctx context.Context, addr string) (net.Conn, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	sess := d.sessions[addr]
	if sess == nil || sess.IsClosed() {
		conn, err := d.base.Dial(ctx, addr)
		if err != nil {
			return nil, err
		}
		cfg := smux.DefaultConfig()
		cfg.KeepAliveInterval = d.opts.KeepAliveInterval
		cfg.KeepAliveTimeout = d.opts.KeepAliveTimeout
		sess, err = smux.Client(conn, cfg)
		if err != nil {
			conn.Close()
			return nil, err
		}
		d.sessions[addr] = sess
	}

	stream, err := sess.OpenStream()
	if err != nil {
		// session may have died between IsClosed and OpenStream
		sess.Close()
		delete(d.sessions, addr)
		return nil, err
	}
	return stream, nil
}
