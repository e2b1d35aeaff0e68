package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ziadkadry99/diana/internal/app"
	"github.com/ziadkadry99/diana/internal/audit"
	"github.com/ziadkadry99/diana/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the live browser shell",
	Long: `Starts an HTTP server that hosts the full client in the browser. Each
browser tab gets its own session over a websocket; the analysis requests are
made from here to the configured service.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(true)
		if err != nil {
			return err
		}
		defer rt.Close()

		port := rt.cfg.Port
		if cmd.Flags().Changed("port") {
			port = servePort
		}

		srv := server.New(server.Config{
			Port:     port,
			AllowAll: rt.cfg.AllowAllOrigins,
		}, func(ctx context.Context) *app.Session {
			return rt.newSession(ctx, app.Options{})
		}, rt.log.Named("server"))
		audit.RegisterRoutes(srv.Router(), rt.audit)

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				rt.log.Warn("shutdown", zap.Error(err))
			}
		}()

		fmt.Fprintf(os.Stderr, "diana %s serving on http://localhost:%d\n", Version, port)
		fmt.Fprintf(os.Stderr, "  Service: %s\n", rt.cfg.APIBaseURL)
		if ephemeral {
			fmt.Fprintln(os.Stderr, "  Preferences: in memory")
		} else {
			fmt.Fprintf(os.Stderr, "  Preferences: %s\n", rt.cfg.PrefsPath())
		}
		return srv.Start()
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8090, "Port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}
