package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"notesite/internal/server"
	"notesite/internal/site"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Build the site, serve it locally and rebuild on changes",
	Long: `Performs an initial build, serves the output directory over HTTP and
watches the docs directory and the navigation manifest, rebuilding on change.
A failing rebuild keeps the last good output being served.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		builder := site.NewBuilder(appCfg, log)
		if _, err := builder.Build(cmd.Context()); err != nil {
			return fmt.Errorf("initial build: %w", err)
		}

		ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		watcher, err := server.NewWatcher(
			[]string{appCfg.DocsDir, appCfg.NavFile},
			func(ctx context.Context) error {
				_, err := builder.Build(ctx)
				return err
			},
			log,
		)
		if err != nil {
			return err
		}
		defer watcher.Close()
		go watcher.Run(ctx)

		port := servePort
		if port == 0 {
			port = appCfg.Port
		}
		httpServer := &http.Server{
			Addr:         fmt.Sprintf(":%d", port),
			Handler:      server.New(appCfg.OutputDir, log),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		}

		go func() {
			<-ctx.Done()
			log.Info("shutting down...")
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			httpServer.Shutdown(shutdownCtx)
		}()

		log.Info("serving site", "dir", appCfg.OutputDir, "addr", fmt.Sprintf("http://localhost:%d", port))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "port to serve on (default from config)")
	rootCmd.AddCommand(serveCmd)
}
