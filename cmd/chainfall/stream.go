package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/chainfall/internal/platform/stream"
)

var (
	flagHTTPAddr      string
	flagStreamVariant string
)

var streamCmd = &cobra.Command{
	Use:   "stream",
	Short: "Start the websocket snapshot feed",
	Long: `Start an HTTP server that streams simulations over websocket.

Every connection to /ws runs its own simulation and receives one JSON
update per tick. Query parameters pick the variant and seed:

  ws://localhost:8080/ws?variant=chainfall_single&seed=42

Clients may send control messages:

  {"type": "pause"}
  {"type": "resume"}
  {"type": "reseed", "seed": 7}

GET /variants lists the streamable variants.`,
	Args: cobra.NoArgs,
	RunE: runStream,
}

func init() {
	streamCmd.Flags().StringVar(&flagHTTPAddr, "http", ":8080", "HTTP server address (host:port)")
	streamCmd.Flags().StringVar(&flagStreamVariant, "variant", defaultVariant, "Variant used when a client does not pick one")
}

func runStream(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := stream.NewServer(stream.Config{
		Address:  flagHTTPAddr,
		TickRate: flagFPS,
		Variant:  flagStreamVariant,
		Logger:   newLogger("chainfall-stream"),
	})

	fmt.Fprintf(cmd.OutOrStdout(), "Streaming on ws://%s/ws\n", displayAddr(flagHTTPAddr))
	return srv.ListenAndServe(ctx)
}

// displayAddr fills in localhost for addresses without a host.
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
