package options

import (
	"crypto/tls"
	"time"
)

type Options interface{ Update() }

var DefaultWsOptions = &WsOptions{
	Host:      "www.baidu.com",
	Path:      "/ws",
	SndBuffer: 4096,
	RevBuffer: 4096,
}

var DefaultMuxOptions = &MuxOptions{
	KeepAliveInterval: 10 * time.Second,
	KeepAliveTimeout:  30 * time.Second,
}

type WsOptions struct {
	Host      string
	Path      string
	SndBuffer int
	RevBuffer int
	Compress  bool
	UserAgent string
	TlsConfig *tls.Config
}

func (opts *WsOptions) Update() {}

type MuxOptions struct {
	KeepAliveInterval time.Duration
	KeepAliveTimeout  time.Duration
}

func (opts *MuxOptions) Update() {}
