package transport

import (
	"net"
)

// TcpConnBound wraps an established connection with an opaque stream layer,
// typically a cipher. A nil hook leaves the connection untouched.
type TcpConnBound interface {
	TcpConn(net.Conn) net.Conn
}

type TcpConnBoundHandler func(net.Conn) net.Conn

func (f TcpConnBoundHandler) TcpConn(c net.Conn) net.Conn { return f(c) }

// Flusher is implemented by connections that buffer writes.
type Flusher interface {
	Flush() error
}

// CloseWriter is implemented by connections supporting half close,
// e.g. *net.TCPConn and smux streams.
type CloseWriter interface {
	CloseWrite() error
}

// Flush pushes buffered writes down to the transport; a no-op for
// unbuffered connections.
func Flush(c net.Conn) error {
	if f, ok := c.(Flusher); ok {
		return f.Flush()
	}
	return nil
}
