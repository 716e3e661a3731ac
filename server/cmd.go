package server

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nostromo/mother/internal/cli"
	"github.com/nostromo/mother/internal/wiki"
)

// NewServeCmd creates a new serve command.
func NewServeCmd(store *wiki.Store, newConsole ConsoleFactory, defaultAddr string, logger *zap.Logger) *cobra.Command {
	var opts struct {
		Addr string
	}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the reference database and console sessions over HTTP",
		Long:  "Serves GET /api/wiki, /api/wiki/{kind}, /api/search and a websocket console at /ws/console.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			server := New(store, newConsole, logger)
			cli.Notice("MU/TH/UR 6000 LISTENING ON http://%s", opts.Addr)
			return server.Serve(cmd.Context(), opts.Addr)
		},
	}
	cmd.Flags().StringVarP(&opts.Addr, "addr", "a", defaultAddr, "Address to serve on")
	return cmd
}
