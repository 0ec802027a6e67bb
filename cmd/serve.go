package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/urfave/cli/v3"

	"github.com/commdeck/commdeck/pkg/api"
	"github.com/commdeck/commdeck/pkg/config"
	"github.com/commdeck/commdeck/pkg/engine"
	"github.com/commdeck/commdeck/pkg/log"
	"github.com/commdeck/commdeck/pkg/realtime"
	"github.com/commdeck/commdeck/pkg/source"
)

var webLogger = log.ForService("web")

// ServeCommand creates the serve command with both API and HTML interface
func ServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start web server with both API endpoints and HTML interface",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Host to bind to (overrides config)",
			},
			&cli.StringFlag{
				Name:  "port",
				Usage: "Port to listen on (overrides config)",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return startServer(ctx, c.String("config"), c.String("host"), c.String("port"))
		},
	}
}

func startServer(ctx context.Context, configPath, host, port string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if host == "" {
		host = cfg.Web.Host
	}
	if port == "" {
		port = cfg.Web.Port
	}

	// A missing or broken items document must not keep the server down;
	// the UI shows a "no results" state instead.
	comms, err := source.Load(ctx, cfg.Items)
	if err != nil {
		webLogger.Errorf("loading items: %v; serving an empty catalog", err)
		comms = nil
	}
	catalog := engine.NewCatalog(comms, cfg.IndexSummaries)

	hub := realtime.NewHub(0)
	apiServer := api.NewServer(catalog, cfg.PageSize, hub)
	ui, err := newWebUI(apiServer)
	if err != nil {
		return fmt.Errorf("initializing web UI: %w", err)
	}

	mux := http.NewServeMux()
	apiServer.RegisterRoutes(mux)
	ui.RegisterRoutes(mux)

	server := &http.Server{
		Addr:              net.JoinHostPort(host, port),
		Handler:           api.CorsMiddleware(api.GzipMiddleware(mux)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	watchCtx, cancelWatch := context.WithCancel(ctx)
	defer cancelWatch()
	go watchItems(watchCtx, cfg, apiServer, hub)

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	webLogger.Infof("listening on http://%s:%s", host, port)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	case sig := <-sigCh:
		webLogger.Infof("received %v, shutting down", sig)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// watchItems rebuilds the catalog whenever the items document changes on
// disk and announces the reload to connected browsers. URL-backed
// collections are fetched once and not watched.
func watchItems(ctx context.Context, cfg *config.Config, apiServer *api.Server, hub *realtime.Hub) {
	if strings.HasPrefix(cfg.Items, "http://") || strings.HasPrefix(cfg.Items, "https://") {
		webLogger.Debugf("items document is a URL, not watching for changes")
		return
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		webLogger.Warnf("creating items watcher: %v", err)
		return
	}
	defer func() {
		if err := watcher.Close(); err != nil {
			webLogger.Warnf("closing items watcher: %v", err)
		}
	}()

	if err := watcher.Add(cfg.Items); err != nil {
		webLogger.Warnf("watching items document %s: %v", cfg.Items, err)
		return
	}
	webLogger.Infof("watching items document for changes: %s", cfg.Items)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			// React to write, create, rename, and remove events (editors often use atomic writes)
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
				continue
			}
			if event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove) {
				// Small delay to ensure the replacement file is fully written
				time.Sleep(100 * time.Millisecond)
				if err := watcher.Add(cfg.Items); err != nil {
					webLogger.Warnf("re-watching items document: %v", err)
					return
				}
			}
			reloadCatalog(ctx, cfg, apiServer, hub)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			webLogger.Warnf("items watcher error: %v", err)
		}
	}
}

func reloadCatalog(ctx context.Context, cfg *config.Config, apiServer *api.Server, hub *realtime.Hub) {
	comms, err := source.Load(ctx, cfg.Items)
	if err != nil {
		webLogger.Errorf("reloading items: %v; keeping previous catalog", err)
		return
	}
	catalog := engine.NewCatalog(comms, cfg.IndexSummaries)
	apiServer.SetCatalog(catalog)
	hub.Broadcast(realtime.NewReloadEvent(catalog.Size()))
	webLogger.Infof("catalog reloaded: %d communications", catalog.Size())
}
