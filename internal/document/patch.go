package document

import (
	"fmt"
	"os"
	"regexp"

	"github.com/harvest-tools/lifeforce-prices/internal/items"
	"github.com/harvest-tools/lifeforce-prices/internal/sources"
	"github.com/harvest-tools/lifeforce-prices/internal/utils"
)

// DefaultPath is the calculator page whose default rates are rewritten.
const DefaultPath = "index.html"

var markers = func() map[items.Category]*regexp.Regexp {
	out := map[items.Category]*regexp.Regexp{}
	for _, it := range items.All {
		out[it.Category] = regexp.MustCompile(`(id="` + regexp.QuoteMeta(it.MarkerID) + `" class="price-input" value=")[^"]*(")`)
	}
	return out
}()

// PatchBytes replaces the value of every rate input marker with the
// snapshot's lifeforce-per-chaos rate. Markers that are absent, or whose
// category is not in the snapshot, are left as they are.
func PatchBytes(content []byte, snap sources.Snapshot) []byte {
	for _, it := range items.All {
		q, ok := snap.Quotes[it.Category]
		if !ok {
			continue
		}
		repl := []byte("${1}" + utils.FormatNumber(q.PerChaos) + "${2}")
		content = markers[it.Category].ReplaceAll(content, repl)
	}
	return content
}

// Patch rewrites path in place.
func Patch(path string, snap sources.Snapshot) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("read document: %w", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read document: %w", err)
	}
	if err := os.WriteFile(path, PatchBytes(b, snap), info.Mode().Perm()); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	return nil
}
