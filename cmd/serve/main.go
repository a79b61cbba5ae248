package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/harvest-tools/lifeforce-prices/internal/server"
)

func main() {
	log.SetOutput(os.Stdout)
	flag.Parse()

	port := server.ParsePort(flag.Arg(0), os.Stdout)

	// Serve the files shipped next to the binary, wherever it is started from.
	exe, err := os.Executable()
	if err != nil {
		log.Fatalf("locate executable: %v", err)
	}
	dir := filepath.Dir(exe)
	if err := os.Chdir(dir); err != nil {
		log.Fatalf("chdir %s: %v", dir, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.New(".", port, os.Stdout).ListenAndServe(ctx); err != nil {
		log.Fatalf("[serve] %v", err)
	}
}
