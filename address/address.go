package address

import (
	"errors"
	"io"
	"net"
	"strconv"
)

// SOCKS5 address types
const (
	IPv4 = 0x01
	Fqdn = 0x03
	IPv6 = 0x04
)

// MaxBufferSize is the largest wire size of an address:
// ATYP + LEN + 255-byte domain + 2-byte port
const MaxBufferSize = 1 + 1 + 255 + 2

var (
	ErrAddressTypeNotSupported = errors.New("address type not supported")
	ErrDomainTooLong           = errors.New("domain name too long")
	ErrInvalidHostOrPort       = errors.New("invalid host or port")
)

// Address is a SOCKS5 wire address: ATYP + ADDR + PORT (network byte order).
// The same layout names a connect target in a request and a bound endpoint
// in a response, so it is kept in wire form and decoded lazily.
type Address []byte

// ReadFrom parses one address from r into b, which must hold at least
// MaxBufferSize bytes. The returned Address aliases b.
func ReadFrom(r io.Reader, b []byte) (Address, error) {
	if len(b) < MaxBufferSize {
		return nil, io.ErrShortBuffer
	}
	if _, err := io.ReadFull(r, b[:1]); err != nil {
		return nil, err
	}
	var n int
	switch b[0] {
	case IPv4:
		n = 1 + net.IPv4len + 2
		if _, err := io.ReadFull(r, b[1:n]); err != nil {
			return nil, err
		}
	case IPv6:
		n = 1 + net.IPv6len + 2
		if _, err := io.ReadFull(r, b[1:n]); err != nil {
			return nil, err
		}
	case Fqdn:
		if _, err := io.ReadFull(r, b[1:2]); err != nil {
			return nil, err
		}
		n = 1 + 1 + int(b[1]) + 2
		if _, err := io.ReadFull(r, b[2:n]); err != nil {
			return nil, err
		}
	default:
		return nil, ErrAddressTypeNotSupported
	}
	return b[:n], nil
}

// FromHostPort encodes host (IP literal or domain name) and port into b.
func FromHostPort(host string, port int, b []byte) (Address, error) {
	if len(host) == 0 || port < 0 || port > 65535 {
		return nil, ErrInvalidHostOrPort
	}
	var portIdx int
	if ip := net.ParseIP(host); ip != nil {
		if ip4 := ip.To4(); ip4 != nil {
			if len(b) < 1+net.IPv4len+2 {
				return nil, io.ErrShortBuffer
			}
			b[0] = IPv4
			copy(b[1:], ip4)
			portIdx = 1 + net.IPv4len
		} else {
			if len(b) < 1+net.IPv6len+2 {
				return nil, io.ErrShortBuffer
			}
			b[0] = IPv6
			copy(b[1:], ip.To16())
			portIdx = 1 + net.IPv6len
		}
	} else {
		if len(host) > 255 {
			return nil, ErrDomainTooLong
		}
		if len(b) < 1+1+len(host)+2 {
			return nil, io.ErrShortBuffer
		}
		b[0], b[1] = Fqdn, byte(len(host))
		copy(b[2:], host)
		portIdx = 1 + 1 + len(host)
	}
	b[portIdx], b[portIdx+1] = byte(port>>8), byte(port)
	return b[:portIdx+2], nil
}

// Parse encodes a "host:port" string into a freshly allocated Address.
func Parse(addr string) (Address, error) {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, err
	}
	portnum, err := strconv.Atoi(port)
	if err != nil {
		return nil, ErrInvalidHostOrPort
	}
	b := make([]byte, MaxBufferSize)
	return FromHostPort(host, portnum, b)
}

func (a Address) Type() byte {
	if len(a) == 0 {
		return 0
	}
	return a[0]
}

func (a Address) Host() string {
	n := len(a)
	if n < 1 {
		return ""
	}
	switch a[0] {
	case IPv4:
		if n >= 1+net.IPv4len {
			return net.IP(a[1 : 1+net.IPv4len]).String()
		}
	case IPv6:
		if n >= 1+net.IPv6len {
			return net.IP(a[1 : 1+net.IPv6len]).String()
		}
	case Fqdn:
		if n >= 2 && n >= 2+int(a[1]) {
			return string(a[2 : 2+int(a[1])])
		}
	}
	return ""
}

func (a Address) Port() int {
	n := len(a)
	if n < 3 {
		return 0
	}
	return (int(a[n-2]) << 8) | int(a[n-1])
}

func (a Address) String() string {
	return net.JoinHostPort(a.Host(), strconv.Itoa(a.Port()))
}

// Clone detaches the address from any shared read buffer.
func (a Address) Clone() Address {
	b := make(Address, len(a))
	copy(b, a)
	return b
}
