package socks

import (
	"errors"
	"io"

	"github.com/tinyss/tinyss/address"
	"github.com/tinyss/tinyss/bufferpool"
	"github.com/tinyss/tinyss/socks/constant"
	"github.com/valyala/bytebufferpool"
)

var readPool = bufferpool.NewBufferPool(constant.MaxBufferSize)

// readFull maps a short read to the protocol error taxonomy: a stream that
// ends inside a message is an unexpected EOF, never a transport error.
func readFull(r io.Reader, b []byte) error {
	if _, err := io.ReadFull(r, b); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return constant.ErrUnexpectedEof
		}
		return err
	}
	return nil
}

func mapAddressErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return constant.ErrUnexpectedEof
	case errors.Is(err, address.ErrAddressTypeNotSupported):
		return constant.ErrMalformedMessage
	default:
		return err
	}
}

// HandshakeRequest is the client's method-selection offer.
//
// +----+----------+----------+
// |VER | NMETHODS | METHODS  |
// +----+----------+----------+
// | 1  |    1     | 1 to 255 |
// +----+----------+----------+
type HandshakeRequest struct {
	Methods []byte
}

func NewHandshakeRequest(methods ...byte) *HandshakeRequest {
	return &HandshakeRequest{Methods: methods}
}

func (h *HandshakeRequest) WriteTo(w io.Writer) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	buf.B = append(buf.B, constant.Socks5Version05, byte(len(h.Methods)))
	buf.B = append(buf.B, h.Methods...)
	_, err := w.Write(buf.B)
	return err
}

// HandshakeResponse carries the server's chosen method.
//
// +----+--------+
// |VER | METHOD |
// +----+--------+
// | 1  |   1    |
// +----+--------+
type HandshakeResponse struct {
	ChosenMethod byte
}

func ReadHandshakeResponse(r io.Reader) (*HandshakeResponse, error) {
	var b [2]byte
	if err := readFull(r, b[:]); err != nil {
		return nil, err
	}
	if b[0] != constant.Socks5Version05 {
		return nil, constant.ErrMalformedMessage
	}
	return &HandshakeResponse{ChosenMethod: b[1]}, nil
}

// RequestHeader asks the proxy to run a command against the target address.
//
// +----+-----+-------+------+----------+----------+
// |VER | CMD |  RSV  | ATYP | DST.ADDR | DST.PORT |
// +----+-----+-------+------+----------+----------+
// | 1  |  1  | X'00' |  1   | Variable |    2     |
// +----+-----+-------+------+----------+----------+
type RequestHeader struct {
	Cmd  constant.Socks5Cmd
	Addr address.Address
}

func NewRequestHeader(cmd constant.Socks5Cmd, addr address.Address) *RequestHeader {
	return &RequestHeader{Cmd: cmd, Addr: addr}
}

func (h *RequestHeader) WriteTo(w io.Writer) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	buf.B = append(buf.B, constant.Socks5Version05, h.Cmd, 0x00)
	buf.B = append(buf.B, h.Addr...)
	_, err := w.Write(buf.B)
	return err
}

// ResponseHeader mirrors the request layout; Addr is the proxy's bound
// endpoint, meaningful only for UDP associate.
//
// +----+-----+-------+------+----------+----------+
// |VER | REP |  RSV  | ATYP | BND.ADDR | BND.PORT |
// +----+-----+-------+------+----------+----------+
// | 1  |  1  | X'00' |  1   | Variable |    2     |
// +----+-----+-------+------+----------+----------+
type ResponseHeader struct {
	Reply constant.ReplyCode
	Addr  address.Address
}

func ReadResponseHeader(r io.Reader) (*ResponseHeader, error) {
	var b [3]byte
	if err := readFull(r, b[:]); err != nil {
		return nil, err
	}
	if b[0] != constant.Socks5Version05 {
		return nil, constant.ErrMalformedMessage
	}
	abuf := readPool.Get()
	defer readPool.Put(abuf)
	addr, err := address.ReadFrom(r, *abuf)
	if err != nil {
		return nil, mapAddressErr(err)
	}
	return &ResponseHeader{
		Reply: constant.ReplyCode(b[1]),
		Addr:  addr.Clone(),
	}, nil
}
