package client

import (
	"context"
	"io"
	"net"
	"sync"

	"github.com/tinyss/tinyss/transport"
)

// Stream is the duplex byte-pipe contract both proxy clients satisfy.
// Callers are written once against this set and never against a concrete
// client type.
type Stream interface {
	io.Reader
	io.Writer
	// Flush pushes buffered writes down to the transport.
	Flush() error
	// CloseWrite half-closes the stream. Idempotent.
	CloseWrite() error
	// Close releases the session. Idempotent.
	Close() error
}

// proxyStream delegates the Stream contract to an owned connection with no
// added buffering or transformation; transport errors surface unchanged.
type proxyStream struct {
	conn net.Conn

	wmu     sync.Mutex
	cmu     sync.Mutex
	wclosed bool
	closed  bool
}

func (s *proxyStream) Read(b []byte) (int, error) {
	return s.conn.Read(b)
}

func (s *proxyStream) Write(b []byte) (int, error) {
	return s.conn.Write(b)
}

func (s *proxyStream) Flush() error {
	return transport.Flush(s.conn)
}

func (s *proxyStream) CloseWrite() error {
	s.wmu.Lock()
	defer s.wmu.Unlock()
	if s.wclosed {
		return nil
	}
	s.wclosed = true
	if cw, ok := s.conn.(transport.CloseWriter); ok {
		return cw.CloseWrite()
	}
	// no half-close support on this transport: the full close stands in
	// for it and later Close calls stay no-ops
	return s.Close()
}

func (s *proxyStream) Close() error {
	s.cmu.Lock()
	defer s.cmu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.conn.Close()
}

// watchCancel closes conn if ctx is canceled before stop is called, so an
// abandoned connect never leaves a half-negotiated socket behind.
func watchCancel(ctx context.Context, conn net.Conn) (stop func()) {
	if ctx.Done() == nil {
		return func() {}
	}
	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()
	var once sync.Once
	return func() { once.Do(func() { close(done) }) }
}
