package cmd

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/tinyss/tinyss/address"
	"github.com/tinyss/tinyss/client"
	"github.com/tinyss/tinyss/options"
	"github.com/tinyss/tinyss/transport"
	"github.com/tinyss/tinyss/util/logger"
)

var (
	socksAddr  string
	relayAddr  string
	relayTrans string
	wsPath     string
	wsHost     string
)

var connectCmd = &cobra.Command{
	Use:     "connect <target:port>",
	Short:   "open a proxied stream to target and pipe stdin/stdout through it",
	Example: "  tinyss connect -s 127.0.0.1:1080 example.com:443",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := address.Parse(args[0])
		if err != nil {
			return err
		}
		stream, err := dialStream(cmd.Context(), target)
		if err != nil {
			return err
		}
		defer stream.Close()
		return pipeStream(stream)
	},
}

func init() {
	rootCmd.AddCommand(connectCmd)

	connectCmd.Flags().StringVarP(&socksAddr, "socks", "s", "127.0.0.1:1080", "SOCKS5 proxy address")
	connectCmd.Flags().StringVarP(&relayAddr, "relay", "r", "", "encrypted relay server address (overrides --socks)")
	connectCmd.Flags().StringVarP(&relayTrans, "transport", "T", "tcp", "relay carrier transport (tcp|ws|mux)")
	connectCmd.Flags().StringVar(&wsPath, "ws-path", "/ws", "websocket path for the ws transport")
	connectCmd.Flags().StringVar(&wsHost, "ws-host", "", "websocket host header for the ws transport")
}

func dialStream(ctx context.Context, target address.Address) (client.Stream, error) {
	if relayAddr == "" {
		return client.DialSocks5(ctx, target, socksAddr)
	}
	cfg := &client.ServerConfig{
		Name: "cli",
		Addr: relayAddr,
	}
	switch relayTrans {
	case "tcp":
		cfg.Transport = transport.Tcp
	case "ws":
		cfg.Transport = transport.Websocket
		cfg.Options = &options.WsOptions{Path: wsPath, Host: wsHost}
	case "mux":
		cfg.Transport = transport.Mux
	default:
		return nil, errors.New("unknown relay transport: " + relayTrans)
	}
	return client.DialSS(ctx, target, cfg)
}

func pipeStream(stream client.Stream) error {
	done := make(chan struct{})
	go func() {
		defer close(done)
		io.Copy(stream, os.Stdin)
		stream.CloseWrite()
	}()
	if _, err := io.Copy(os.Stdout, stream); err != nil {
		logger.Logger.ErrorBy(err)
		return err
	}
	<-done
	return nil
}
