// turnwire-ping runs the ping/echo example over a turn session.
//
// One side serves, the other connects; the connecting side moves first.
//
//	turnwire-ping serve --transport tcp --addr :7400
//	turnwire-ping connect --transport tcp --addr 192.168.1.10:7400
package main

import (
	"github.com/spf13/cobra"

	"github.com/saffron-engine/turnwire/examples/common"
	"github.com/saffron-engine/turnwire/examples/pingecho"
)

var (
	cfgFile string
	opts    = common.DefaultOptions()
)

var rootCmd = &cobra.Command{
	Use:           "turnwire-ping",
	Short:         "Two-player ping/echo over a turn session",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cfgFile != "" {
			var err error
			if opts, err = common.LoadOptions(cfgFile, opts); err != nil {
				return err
			}
		}
		// The exchange format fixes the frame size.
		opts.PayloadSize = pingecho.PayloadSize
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Wait for a peer and echo its frames",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := common.SignalContext()
		defer stop()

		session, err := common.Serve(ctx, opts)
		if err != nil {
			return err
		}
		defer session.Close()

		return pingecho.RunServer(ctx, session)
	},
}

var connectCmd = &cobra.Command{
	Use:   "connect",
	Short: "Connect to a peer and start pinging",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := common.SignalContext()
		defer stop()

		session, err := common.Connect(ctx, opts)
		if err != nil {
			return err
		}
		defer session.Close()

		return pingecho.RunClient(ctx, session)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "YAML config file")
	pf.StringVar(&opts.Transport, "transport", opts.Transport, "transport: tcp, ws or quic")
	pf.StringVar(&opts.Addr, "addr", opts.Addr, "address to listen on or connect to")
	pf.BoolVar(&opts.ConfirmPayloadSize, "confirm-size", opts.ConfirmPayloadSize, "exchange payload sizes at setup")
	pf.BoolVarP(&opts.Verbose, "verbose", "v", opts.Verbose, "enable leveled logging")

	rootCmd.AddCommand(serveCmd, connectCmd)
}

func main() {
	common.Exit(rootCmd.Execute())
}
