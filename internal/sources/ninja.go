package sources

import (
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"github.com/harvest-tools/lifeforce-prices/internal/items"
	"github.com/harvest-tools/lifeforce-prices/internal/utils"
)

func decodeOverview(body []byte) (overview, error) {
	var ov overview
	if err := json.Unmarshal(body, &ov); err != nil {
		return overview{}, fmt.Errorf("%w: poe.ninja decode: %w (%s)", ErrParse, err, snippet(body, 200))
	}
	return ov, nil
}

// snippet returns at most n bytes of body without splitting a rune.
func snippet(body []byte, n int) string {
	if len(body) <= n {
		return string(body)
	}
	for n > 0 && !utf8.RuneStart(body[n]) {
		n--
	}
	return string(body[:n])
}

// buildQuotes walks the overview lines in order; a later line for the same
// currency replaces an earlier one.
func buildQuotes(lines []line) (map[items.Category]Quote, float64) {
	quotes := map[items.Category]Quote{}
	var divineRatio float64

	for _, ln := range lines {
		if ln.CurrencyTypeName == items.BenchmarkName {
			divineRatio = chaosValue(ln)
			continue
		}
		it, ok := items.BySourceName(ln.CurrencyTypeName)
		if !ok {
			continue
		}
		quotes[it.Category] = quoteFor(it, ln)
	}
	return quotes, divineRatio
}

// chaosValue prefers receive.value and falls back to chaosEquivalent, the same
// order poe.ninja's own site uses.
func chaosValue(ln line) float64 {
	if v := ln.Receive.value(); v > 0 {
		return v
	}
	if ln.ChaosEquivalent > 0 {
		return ln.ChaosEquivalent
	}
	return 0
}

func quoteFor(it items.Item, ln line) Quote {
	price := chaosValue(ln)
	return Quote{
		Category:        it.Category,
		Price:           utils.Round(price, 4),
		PerChaos:        utils.Inverse(price, 1),
		ChaosEquivalent: ln.ChaosEquivalent,
		PayValue:        ln.Pay.value(),
		ReceiveValue:    ln.Receive.value(),
		CurrencyName:    ln.CurrencyTypeName,
	}
}
