package constant

import (
	"errors"
	"fmt"
)

var (
	ErrUnexpectedEof         = errors.New("socks stream closed before a complete message")
	ErrMalformedMessage      = errors.New("socks malformed protocol message")
	ErrUnsupportedAuthMethod = errors.New("socks server chose an unsupported auth method")
)

// ReplyError carries the non-success reply code returned by the proxy.
type ReplyError struct {
	Code ReplyCode
}

func (e *ReplyError) Error() string {
	return fmt.Sprintf("socks request rejected: %s (0x%02x)", e.Code, byte(e.Code))
}
