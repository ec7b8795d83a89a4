package socks

import (
	"io"

	"github.com/tinyss/tinyss/address"
	"github.com/tinyss/tinyss/socks/constant"
	"github.com/tinyss/tinyss/util/logger"
)

// Flusher is implemented by streams that buffer writes. Negotiation flushes
// after every write step so a read is never issued against unflushed data.
type Flusher interface {
	Flush() error
}

func flush(w io.Writer) error {
	if f, ok := w.(Flusher); ok {
		return f.Flush()
	}
	return nil
}

// negotiateMethod runs exactly one method-selection round, offering only
// no-authentication. A server that picks anything else is a handling case,
// not a crash: the caller gets ErrUnsupportedAuthMethod and must abort.
func negotiateMethod(rw io.ReadWriter) error {
	hs := NewHandshakeRequest(constant.MethodNoAuthRequired)
	if err := hs.WriteTo(rw); err != nil {
		return err
	}
	if err := flush(rw); err != nil {
		return err
	}
	hsp, err := ReadHandshakeResponse(rw)
	if err != nil {
		return err
	}
	logger.Logger.Tracef("socks handshake response, chosen method: 0x%02x", hsp.ChosenMethod)
	if hsp.ChosenMethod != constant.MethodNoAuthRequired {
		return constant.ErrUnsupportedAuthMethod
	}
	return nil
}

// request runs exactly one command round and returns the response header on
// a Succeeded reply; any other reply code aborts with a ReplyError.
func request(rw io.ReadWriter, cmd constant.Socks5Cmd, target address.Address) (*ResponseHeader, error) {
	h := NewRequestHeader(cmd, target)
	if err := h.WriteTo(rw); err != nil {
		return nil, err
	}
	if err := flush(rw); err != nil {
		return nil, err
	}
	hp, err := ReadResponseHeader(rw)
	if err != nil {
		return nil, err
	}
	logger.Logger.Tracef("socks response, reply: %s, bound: %s", hp.Reply, hp.Addr)
	if hp.Reply != constant.Succeeded {
		return nil, &constant.ReplyError{Code: hp.Reply}
	}
	return hp, nil
}

// NegotiateConnect drives a CONNECT session over rw. On success the stream
// is positioned for raw application traffic.
func NegotiateConnect(rw io.ReadWriter, target address.Address) error {
	if err := negotiateMethod(rw); err != nil {
		return err
	}
	_, err := request(rw, constant.Connect, target)
	return err
}

// NegotiateUDPAssociate drives a UDP-ASSOCIATE session over rw and returns
// the UDP relay endpoint the proxy bound for this session.
func NegotiateUDPAssociate(rw io.ReadWriter, target address.Address) (address.Address, error) {
	if err := negotiateMethod(rw); err != nil {
		return nil, err
	}
	hp, err := request(rw, constant.UDPAssociate, target)
	if err != nil {
		return nil, err
	}
	return hp.Addr, nil
}
