package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/harvest-tools/lifeforce-prices/internal/config"
	"github.com/harvest-tools/lifeforce-prices/internal/db"
	"github.com/harvest-tools/lifeforce-prices/internal/document"
	"github.com/harvest-tools/lifeforce-prices/internal/notify"
	"github.com/harvest-tools/lifeforce-prices/internal/pricefile"
	"github.com/harvest-tools/lifeforce-prices/internal/render"
	"github.com/harvest-tools/lifeforce-prices/internal/sources"
	"github.com/harvest-tools/lifeforce-prices/internal/utils"
)

type Fetcher interface {
	Fetch(ctx context.Context, league string) (sources.Snapshot, error)
}

type Notifier interface {
	Notify(ctx context.Context, text string) error
}

// App runs one price update: fetch, summary, price file, document patch,
// then journal and notification when configured.
type App struct {
	cfg config.Config

	fetcher  Fetcher
	journal  *db.DB
	notifier Notifier

	PriceFile    string
	DocumentFile string
	Out          io.Writer

	loc *time.Location
	now func() time.Time
}

func New(cfg config.Config) (*App, error) {
	loc, err := utils.LoadLocation(cfg.Display.Timezone)
	if err != nil {
		return nil, err
	}

	a := &App{
		cfg: cfg,
		fetcher: sources.NewClient(sources.Options{
			Endpoint:  cfg.Endpoint,
			Timeout:   cfg.Timeout(),
			UserAgent: cfg.UserAgent,
		}),
		PriceFile:    pricefile.DefaultPath,
		DocumentFile: document.DefaultPath,
		Out:          os.Stdout,
		loc:          loc,
		now:          time.Now,
	}

	// The journal and Telegram are optional: a broken one is logged and the
	// update still runs.
	if cfg.Journal.Path != "" {
		j, err := db.Open(cfg.Journal.Path)
		if err != nil {
			log.Printf("[journal] disabled: %v", err)
		} else {
			a.journal = j
		}
	}

	if cfg.Telegram.Enabled() {
		tg, err := notify.NewTelegram(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			log.Printf("[notify] disabled: %v", err)
		} else {
			a.notifier = tg
		}
	}
	return a, nil
}

func (a *App) Close() {
	if a.journal != nil {
		if err := a.journal.Close(); err != nil {
			log.Printf("[journal] close: %v", err)
		}
	}
}

// Run performs one update for league and reports whether the fetch
// succeeded. Failures after the fetch are logged and do not change the result.
func (a *App) Run(ctx context.Context, league string) bool {
	run := db.Run{ID: db.NewRunID(), League: league, StartedAt: a.now()}
	defer a.finish(ctx, &run)

	fmt.Fprintln(a.Out, "Fetching lifeforce prices from poe.ninja...")
	a.reportPrevious()

	snap, err := a.fetcher.Fetch(ctx, league)
	if err != nil {
		log.Printf("[fetch] %s", describeFetchError(err))
		fmt.Fprintln(a.Out, "Failed to fetch prices")
		run.Errors = append(run.Errors, err.Error())
		a.notify(ctx, render.Failure(league, err))
		return false
	}
	run.FetchOK = true
	run.QuoteCount = len(snap.Quotes)

	summary := render.BuildSummary(snap, render.Options{Location: a.loc, Calendar: a.cfg.Display.Calendar})
	fmt.Fprint(a.Out, summary.Text)

	if err := pricefile.Save(a.PriceFile, snap); err != nil {
		log.Printf("[fetch] Error saving prices: %v", err)
		run.Errors = append(run.Errors, err.Error())
	} else {
		run.SavedOK = true
		fmt.Fprintln(a.Out, "Prices saved to file")
	}

	if err := document.Patch(a.DocumentFile, snap); err != nil {
		log.Printf("[fetch] Error updating HTML: %v", err)
		run.Errors = append(run.Errors, err.Error())
	} else {
		run.PatchedOK = true
		fmt.Fprintln(a.Out, "HTML updated with new prices")
	}

	a.notify(ctx, summary.Text)
	return true
}

// reportPrevious prints the age of the file about to be replaced.
func (a *App) reportPrevious() {
	prev, err := pricefile.Load(a.PriceFile)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Printf("[fetch] previous prices unreadable: %v", err)
		}
		return
	}
	if at, ok := prev.UpdatedAt(); ok {
		fmt.Fprintf(a.Out, "Replacing prices fetched %s ago (%s)\n", utils.Ago(a.now().Sub(at)), prev.League)
	}
}

func (a *App) notify(ctx context.Context, text string) {
	if a.notifier == nil {
		return
	}
	if err := a.notifier.Notify(ctx, text); err != nil {
		log.Printf("[notify] %v", err)
	}
}

func (a *App) finish(ctx context.Context, run *db.Run) {
	if a.journal == nil {
		return
	}
	run.FinishedAt = a.now()
	if err := a.journal.RecordRun(context.WithoutCancel(ctx), *run); err != nil {
		log.Printf("[journal] record run %s: %v", run.ID, err)
	}
}

// RecentRuns lists journaled runs, newest first.
func (a *App) RecentRuns(ctx context.Context, limit int) ([]db.Run, error) {
	if a.journal == nil {
		return nil, errors.New("run journal is not configured (set journal.path or LFP_JOURNAL)")
	}
	return a.journal.RecentRuns(ctx, limit)
}

func describeFetchError(err error) string {
	switch {
	case errors.Is(err, sources.ErrStatus):
		return fmt.Sprintf("Error fetching prices (bad response): %v", err)
	case errors.Is(err, sources.ErrNetwork):
		return fmt.Sprintf("Error fetching prices: %v", err)
	case errors.Is(err, sources.ErrParse):
		return fmt.Sprintf("Error parsing JSON: %v", err)
	default:
		return fmt.Sprintf("Error fetching prices: %v", err)
	}
}
