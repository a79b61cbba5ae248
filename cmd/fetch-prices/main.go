package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/harvest-tools/lifeforce-prices/internal/app"
	"github.com/harvest-tools/lifeforce-prices/internal/config"
)

func main() {
	log.SetOutput(os.Stdout)

	cfgPath := flag.String("config", config.DefaultConfigPath(), "path to prices.yaml")
	runs := flag.Int("runs", 0, "print the last N journaled runs and exit")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if league := strings.TrimSpace(flag.Arg(0)); league != "" {
		cfg.League = league
		fmt.Printf("Using league: %s\n", cfg.League)
	}

	a, err := app.New(cfg)
	if err != nil {
		log.Fatalf("init error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	if *runs > 0 {
		err := printRuns(ctx, a, *runs)
		stop()
		a.Close()
		if err != nil {
			log.Fatalf("runs: %v", err)
		}
		return
	}

	ok := a.Run(ctx, cfg.League)
	stop()
	a.Close()

	if !ok {
		fmt.Println("Price update failed!")
		os.Exit(1)
	}
	fmt.Println("Price update completed successfully!")
}

func printRuns(ctx context.Context, a *app.App, n int) error {
	list, err := a.RecentRuns(ctx, n)
	if err != nil {
		return err
	}
	for _, r := range list {
		status := "ok"
		if !r.FetchOK {
			status = "FAILED"
		}
		fmt.Printf("%s  %-12s %-6s quotes=%d saved=%t patched=%t %s\n",
			r.StartedAt.Format("2006-01-02 15:04:05"), r.League, status, r.QuoteCount, r.SavedOK, r.PatchedOK, r.ID)
		for _, e := range r.Errors {
			fmt.Printf("    %s\n", e)
		}
	}
	return nil
}
