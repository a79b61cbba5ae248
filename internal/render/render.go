package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/harvest-tools/lifeforce-prices/internal/items"
	"github.com/harvest-tools/lifeforce-prices/internal/sources"
	"github.com/harvest-tools/lifeforce-prices/internal/utils"
)

type Line struct {
	Category items.Category
	Text     string
	Detail   string
}

type Output struct {
	Text  string
	Lines []Line
}

type Options struct {
	Location *time.Location
	Calendar string
}

// BuildSummary renders the console summary of a fetched snapshot. Lines
// follow registry order, not the order poe.ninja returned them in.
func BuildSummary(snap sources.Snapshot, opts Options) Output {
	lines := []Line{}
	for _, it := range items.All {
		q, ok := snap.Quotes[it.Category]
		if !ok {
			continue
		}
		lines = append(lines, Line{
			Category: it.Category,
			Text: fmt.Sprintf("%s: %s per 1 chaos (%s chaos each)",
				q.CurrencyName, utils.FormatNumber(q.PerChaos), utils.FormatNumber(q.Price)),
			Detail: fmt.Sprintf("(Pay %s chaos → Get %s lifeforce)",
				utils.FormatNumber(q.PayValue), utils.FormatNumber(q.ReceiveValue)),
		})
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Successfully fetched prices for %d lifeforce types:\n", len(lines))
	fmt.Fprintf(&b, "League: %s (%s)\n", snap.League, utils.FormatStamp(snap.FetchedAt, opts.Location, opts.Calendar))
	fmt.Fprintf(&b, "%s: %s chaos per divine\n", items.BenchmarkName, utils.FormatFixed(snap.DivineRatio, 1))
	b.WriteString("\n")
	for _, ln := range lines {
		fmt.Fprintf(&b, "  %s\n", ln.Text)
		fmt.Fprintf(&b, "    %s\n", ln.Detail)
	}

	return Output{
		Text:  b.String(),
		Lines: lines,
	}
}

// Failure renders a one-line report for a failed fetch.
func Failure(league string, err error) string {
	return fmt.Sprintf("Price update failed for league %s: %v", league, err)
}
