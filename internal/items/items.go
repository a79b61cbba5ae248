package items

import "github.com/samber/lo"

type Category string

const (
	CategoryWild   Category = "wild"
	CategoryVivid  Category = "vivid"
	CategoryPrimal Category = "primal"
)

// BenchmarkName is the poe.ninja display name of the currency whose chaos
// value is reported as the divine/chaos ratio.
const BenchmarkName = "Divine Orb"

type Item struct {
	Category Category

	// SourceName is the currencyTypeName used by poe.ninja.
	SourceName string

	// MarkerID is the id attribute of the rate input in index.html.
	MarkerID string
}

var All = []Item{
	{Category: CategoryWild, SourceName: "Wild Crystallised Lifeforce", MarkerID: "wildRate"},
	{Category: CategoryVivid, SourceName: "Vivid Crystallised Lifeforce", MarkerID: "vividRate"},
	{Category: CategoryPrimal, SourceName: "Primal Crystallised Lifeforce", MarkerID: "primalRate"},
}

var bySourceName = lo.KeyBy(All, func(it Item) string { return it.SourceName })

// BySourceName maps a poe.ninja currency name to a tracked item.
func BySourceName(name string) (Item, bool) {
	it, ok := bySourceName[name]
	return it, ok
}
