package pricefile

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/harvest-tools/lifeforce-prices/internal/sources"
	"github.com/harvest-tools/lifeforce-prices/internal/utils"
)

// DefaultPath is read by the calculator page next to index.html.
const DefaultPath = "lifeforce_prices.json"

type Price struct {
	Price             float64 `json:"price"`
	LifeforcePerChaos float64 `json:"lifeforce_per_chaos"`
	ChaosEquivalent   float64 `json:"chaos_equivalent"`
	PayValue          float64 `json:"pay_value"`
	ReceiveValue      float64 `json:"receive_value"`
	CurrencyName      string  `json:"currency_name"`
}

type File struct {
	LastUpdated      string           `json:"last_updated"`
	League           string           `json:"league"`
	Prices           map[string]Price `json:"prices"`
	DivineChaosRatio float64          `json:"divine_chaos_ratio"`
}

func FromSnapshot(snap sources.Snapshot) File {
	prices := make(map[string]Price, len(snap.Quotes))
	for cat, q := range snap.Quotes {
		prices[string(cat)] = Price{
			Price:             q.Price,
			LifeforcePerChaos: q.PerChaos,
			ChaosEquivalent:   q.ChaosEquivalent,
			PayValue:          q.PayValue,
			ReceiveValue:      q.ReceiveValue,
			CurrencyName:      q.CurrencyName,
		}
	}
	return File{
		LastUpdated:      utils.ISOTimestamp(snap.FetchedAt),
		League:           snap.League,
		Prices:           prices,
		DivineChaosRatio: snap.DivineRatio,
	}
}

// Save overwrites path with the snapshot.
func Save(path string, snap sources.Snapshot) error {
	b, err := json.MarshalIndent(FromSnapshot(snap), "", "  ")
	if err != nil {
		return fmt.Errorf("encode prices: %w", err)
	}
	b = append(b, '\n')
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write prices: %w", err)
	}
	return nil
}

// Load reads a previously saved file. A missing file returns an error
// matching os.ErrNotExist.
func Load(path string) (File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read prices: %w", err)
	}
	var f File
	if err := json.Unmarshal(b, &f); err != nil {
		return File{}, fmt.Errorf("invalid prices json: %w", err)
	}
	return f, nil
}

func (f File) UpdatedAt() (time.Time, bool) {
	t, err := time.Parse(time.RFC3339, f.LastUpdated)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

