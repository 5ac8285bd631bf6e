package main

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/CageChen/filehub/internal/config"
	"github.com/CageChen/filehub/internal/handler"
	"github.com/CageChen/filehub/internal/log"
	"github.com/CageChen/filehub/internal/watcher"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

//go:embed web/*
var webFS embed.FS

type serveOptions struct {
	path    string
	port    int
	noWatch bool
}

func newServeCommand(root *rootOptions) *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the configured folders over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(config.Overrides{
				ConfigFile: root.configFile,
				Path:       opts.path,
				Port:       opts.port,
				LogLevel:   root.logLevel,
				NoWatch:    opts.noWatch,
			})
			if err != nil {
				return err
			}
			if err := log.Setup(cfg.LogLevel); err != nil {
				return fmt.Errorf("failed to set up logging: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}

	cmd.Flags().StringVarP(&opts.path, "path", "p", "", "Serve this directory alone, ignoring configured folders")
	cmd.Flags().IntVar(&opts.port, "port", 0, "Port to listen on (default from config, 8080)")
	cmd.Flags().BoolVar(&opts.noWatch, "no-watch", false, "Disable change notifications")

	return cmd
}

func serve(ctx context.Context, cfg *config.Config) error {
	log.Info("filehub starting", "config", cfg.GetConfigFilePath(), "folders", len(cfg.Folders))
	for i, f := range cfg.Folders {
		log.Info("serving folder", "index", i, "alias", f.Alias, "path", f.Path, "ref", f.GitRef, "writable", f.Writable())
	}

	wsHandler := handler.NewWSHandler()

	if cfg.Watch {
		w, err := watcher.New(cfg)
		if err != nil {
			log.Error(err, "failed to create file watcher")
		} else {
			w.OnChange(wsHandler.OnFileChange)
			if err := w.Start(); err != nil {
				log.Error(err, "failed to start file watcher")
			}
			defer func() { _ = w.Stop() }()
			log.Info("file watcher enabled")
		}
	}

	webContent, err := fs.Sub(webFS, "web")
	if err != nil {
		return fmt.Errorf("failed to load web assets: %w", err)
	}

	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler.NewRouter(handler.NewRegistry(cfg), wsHandler, webContent),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "url", fmt.Sprintf("http://localhost:%d", cfg.Port))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
