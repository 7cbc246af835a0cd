package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/aydinemre/tubesum/internal/core/config"
	"github.com/aydinemre/tubesum/internal/core/version"
	"github.com/aydinemre/tubesum/internal/server"
)

func main() {
	port := flag.Int("port", 0, "HTTP listen port (default: 8080)")
	dataDir := flag.String("data-dir", "", "directory for the index and audio files")
	showVersion := flag.Bool("version", false, "show version")
	flag.Parse()

	if *showVersion {
		fmt.Printf("tubesum-server %s\n", version.Version)
		return
	}

	cfg := config.LoadOrDefault()

	// Resolve port (flag > config > default)
	serverPort := *port
	if serverPort == 0 {
		if cfg.Server.Port > 0 {
			serverPort = cfg.Server.Port
		} else {
			serverPort = 8080
		}
	}

	// Resolve data directory (flag > config > default)
	dir := *dataDir
	if dir == "" {
		if cfg.DataDir != "" {
			dir = cfg.DataDir
		} else {
			dir = config.DefaultDataDir()
		}
	}
	if len(dir) >= 2 && dir[:2] == "~/" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, dir[2:])
	}

	srv := server.NewServer(serverPort, dir, cfg)

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Stop(ctx)
	}()

	log.Printf("Starting tubesum server on port %d", serverPort)
	log.Printf("Data directory: %s", dir)

	if err := srv.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
