package pricefile

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harvest-tools/lifeforce-prices/internal/items"
	"github.com/harvest-tools/lifeforce-prices/internal/sources"
)

func testSnapshot() sources.Snapshot {
	return sources.Snapshot{
		FetchedAt:   time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC),
		League:      "Necropolis",
		DivineRatio: 180.5,
		Quotes: map[items.Category]sources.Quote{
			items.CategoryVivid: {
				Category:        items.CategoryVivid,
				Price:           10,
				PerChaos:        0.1,
				ChaosEquivalent: 0.09,
				PayValue:        9.5,
				ReceiveValue:    10,
				CurrencyName:    "Vivid Crystallised Lifeforce",
			},
		},
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultPath)

	require.NoError(t, Save(path, testSnapshot()))

	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Necropolis", f.League)
	assert.Equal(t, 180.5, f.DivineChaosRatio)
	assert.Equal(t, "2024-06-01T12:30:00Z", f.LastUpdated)
	assert.Equal(t, Price{
		Price:             10,
		LifeforcePerChaos: 0.1,
		ChaosEquivalent:   0.09,
		PayValue:          9.5,
		ReceiveValue:      10,
		CurrencyName:      "Vivid Crystallised Lifeforce",
	}, f.Prices["vivid"])

	at, ok := f.UpdatedAt()
	require.True(t, ok)
	assert.True(t, at.Equal(time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC)))
}

func TestSaveWireFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultPath)
	require.NoError(t, Save(path, testSnapshot()))

	b, err := os.ReadFile(path)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(b, &raw))
	assert.ElementsMatch(t, []string{"last_updated", "league", "prices", "divine_chaos_ratio"}, keys(raw))

	vivid := raw["prices"].(map[string]any)["vivid"].(map[string]any)
	assert.ElementsMatch(t, []string{"price", "lifeforce_per_chaos", "chaos_equivalent", "pay_value", "receive_value", "currency_name"}, keys(vivid))
}

func TestSaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultPath)
	require.NoError(t, os.WriteFile(path, []byte(`{"league":"Old","extra":"x","prices":{"wild":{}}}`), 0o644))

	require.NoError(t, Save(path, testSnapshot()))

	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Necropolis", f.League)
	_, hasWild := f.Prices["wild"]
	assert.False(t, hasWild)
}

func TestSaveFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", DefaultPath)
	err := Save(path, testSnapshot())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write prices")
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
