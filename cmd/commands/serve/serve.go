package serve

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"time"

	"nathanbeddoewebdev/tint/internal/devserver"
	"nathanbeddoewebdev/tint/internal/logging"
	"nathanbeddoewebdev/tint/internal/token/source"

	"github.com/spf13/cobra"
)

// shutdownTimeout bounds the graceful stop after the command is interrupted.
const shutdownTimeout = 5 * time.Second

// NewCommand returns the "serve" command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a local design-token endpoint",
		Long: `Serve design tokens over HTTP in the same shape as the hosted bins, for
development and testing without network access.

Tokens default to the built-in classic and hawaiian variants. Use --file to
serve a JSON object mapping variant names to token records instead.

Append ?status=503 to a token URL to force an error response, or ?delay=2s
to stall it.

Examples:
  tint serve
  tint serve --addr 127.0.0.1:9000 --access-key secret
  TINT_TOKEN_URL=http://127.0.0.1:8787/v3/qs/classic tint theme fetch`,
		Args:         cobra.NoArgs,
		RunE:         runServe,
		SilenceUsage: true,
	}

	cmd.Flags().String("addr", devserver.DefaultAddr, "Listen address")
	cmd.Flags().String("file", "", "JSON file of variant token records to serve")
	cmd.Flags().String("access-key", "", "Require this access key on token requests")
	cmd.Flags().String("access-key-header", source.DefaultAccessKeyHeader, "Header carrying the access key")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	addr, _ := cmd.Flags().GetString("addr")
	file, _ := cmd.Flags().GetString("file")
	key, _ := cmd.Flags().GetString("access-key")
	header, _ := cmd.Flags().GetString("access-key-header")

	tokens := devserver.DefaultTokens()
	if file != "" {
		loaded, err := devserver.LoadTokens(file)
		if err != nil {
			return err
		}
		tokens = loaded
	}

	opts := []devserver.Option{devserver.WithLogger(logging.FromCommand(cmd))}
	if key != "" {
		opts = append(opts, devserver.WithAccessKey(header, key))
	}

	srv := devserver.NewServer(addr, tokens, opts...)
	if err := srv.Start(); err != nil {
		return fmt.Errorf("failed to start token server: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Serving design tokens on http://%s\n", srv.Addr())
	for _, name := range slices.Sorted(maps.Keys(tokens)) {
		fmt.Fprintf(out, "  %-12s %s\n", name, srv.URL(name))
	}
	if key != "" {
		fmt.Fprintf(out, "Requests must send %s.\n", header)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	<-ctx.Done()

	fmt.Fprintln(cmd.ErrOrStderr(), "Shutting down...")
	stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Stop(stopCtx)
}
