package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/Jaymica07/Rebias-Voice-of-CCTC/cliparse"
	"github.com/Jaymica07/Rebias-Voice-of-CCTC/middleware"
	"github.com/Jaymica07/Rebias-Voice-of-CCTC/router"
	"github.com/Jaymica07/Rebias-Voice-of-CCTC/session"
	"github.com/Jaymica07/Rebias-Voice-of-CCTC/store"
)

func main() {
	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Open the configured persistence backend
	var st store.Store
	switch cfg.Backend {
	case cliparse.BackendLocal:
		st, err = store.OpenLocal(cfg.DatabasePath)
	case cliparse.BackendFirestore:
		st, err = store.OpenFirestore(context.Background(), cfg.FirestoreProject, cfg.CredentialsFile)
	}
	if err != nil {
		slog.Error("store connection failed", "backend", cfg.Backend, "error", err)
		os.Exit(1)
	}
	defer st.Close()
	slog.Info("Store ready", "backend", cfg.Backend)

	manager := session.NewManager(st)
	tokens := session.NewTokens()

	// Create router
	mux := router.NewRouter(st, manager, tokens)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
