// turnwire-pieceboard runs the board game example over a turn session.
//
// One side serves, the other connects; the connecting side moves first.
//
//	turnwire-pieceboard serve --transport quic --addr :7402
//	turnwire-pieceboard connect --transport quic --addr 192.168.1.10:7402
package main

import (
	"github.com/spf13/cobra"

	"github.com/saffron-engine/turnwire/examples/common"
	"github.com/saffron-engine/turnwire/examples/pieceboard"
)

var (
	cfgFile string
	opts    = common.DefaultOptions()
)

var rootCmd = &cobra.Command{
	Use:           "turnwire-pieceboard",
	Short:         "Two-player board game over a turn session",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cfgFile != "" {
			var err error
			if opts, err = common.LoadOptions(cfgFile, opts); err != nil {
				return err
			}
		}
		// The move encoding fixes the frame size.
		opts.PayloadSize = pieceboard.MoveSize
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Host a game and wait for an opponent",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := common.SignalContext()
		defer stop()

		session, err := common.Serve(ctx, opts)
		if err != nil {
			return err
		}
		defer session.Close()

		return pieceboard.Run(session)
	},
}

var connectCmd = &cobra.Command{
	Use:   "connect",
	Short: "Join a hosted game; the joining player moves first",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := common.SignalContext()
		defer stop()

		session, err := common.Connect(ctx, opts)
		if err != nil {
			return err
		}
		defer session.Close()

		return pieceboard.Run(session)
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
