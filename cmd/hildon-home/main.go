package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/GriffinCanCode/hildon-home/internal/infrastructure/config"
	"github.com/GriffinCanCode/hildon-home/internal/infrastructure/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv, err := server.NewServer(ctx, cfg, server.Options{})
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	// the desktop sends SIGTERM to every tracked application on logout
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	if err := srv.Start(ctx); err != nil {
		srv.Close()
		log.Fatalf("Failed to start server: %v", err)
	}

	select {
	case sig := <-sigChan:
		log.Printf("Received %s, shutting down", sig)
	case err := <-srv.Errors():
		log.Printf("Server error: %v", err)
	}

	cancel()
	if err := srv.Close(); err != nil {
		log.Printf("Error during shutdown: %v", err)
		os.Exit(1)
	}
}
