package transport

import (
	"context"
	"net"
)

type tcpDialer struct{}

func (d *tcpDialer) Dial(ctx context.Context, addr string) (net.Conn, error) {
	dialer := &net.Dialer{Timeout: DefaultDialTimeout}
	return dialer.DialContext(ctx, "tcp", addr)
}
