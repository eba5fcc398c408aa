package faresolver

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/transit-tools/fare-resolver/internal"
)

var server *http.Server

// StartServer wires the service routes and starts listening in the
// background.
func StartServer(s *Service, port int) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/summary", s.handleSummary)
	mux.HandleFunc("/api/resolve", s.handleResolve)
	mux.HandleFunc("/api/reload", s.handleReload)

	addr := fmt.Sprintf(":%d", port)
	server = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			internal.L().Fatalw("server error", "err", err)
		}
	}()
	internal.L().Infow("server listening", "addr", addr)
}

// HandleGracefulShutdown blocks until SIGINT/SIGTERM and drains the server.
func HandleGracefulShutdown() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	internal.L().Infow("shutdown signal received")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if server != nil {
		if err := server.Shutdown(ctx); err != nil {
			internal.L().Warnw("server shutdown error", "err", err)
		} else {
			internal.L().Infow("server shut down successfully")
		}
	}
}
