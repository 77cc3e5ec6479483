package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	artifactfs "github.com/devdev758/indiainflation/internal/adapters/driven/artifact/fs"
	"github.com/devdev758/indiainflation/internal/adapters/driving/httpapi"
	"github.com/devdev758/indiainflation/internal/logger"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dataset export API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	application, err := buildApp()
	if err != nil {
		return err
	}
	defer application.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if application.cfg.Artifacts.Watch {
		watcher, err := artifactfs.NewWatcher(application.cfg.Artifacts.Dir)
		if err != nil {
			logger.Warn("serve: artifact watcher disabled: %v", err)
		} else {
			defer watcher.Close()
			go watcher.Run(ctx, application.loader.Invalidate)
		}
	}

	addr := application.cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	api := httpapi.NewServer(application.loader, application.catalog, application.search)
	server := &http.Server{Addr: addr, Handler: api.Handler()}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()
	cmd.Printf("listening on %s\n", addr)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info("serve: shutting down")
		return server.Shutdown(context.Background())
	}
}
