package sources

import (
	"errors"
	"time"

	"github.com/harvest-tools/lifeforce-prices/internal/items"
)

var (
	// ErrNetwork covers transport failures, timeouts and non-2xx responses.
	ErrNetwork = errors.New("network failure")
	// ErrStatus is a non-2xx response. It also matches ErrNetwork.
	ErrStatus = statusError{}
	// ErrParse is a response body that is not the expected JSON.
	ErrParse = errors.New("parse failure")
)

type statusError struct{}

func (statusError) Error() string { return "unexpected http status" }

func (statusError) Is(target error) bool { return target == ErrNetwork }

type Quote struct {
	Category        items.Category
	Price           float64 // chaos per unit, 4 decimals
	PerChaos        float64 // units per chaos, 1 decimal
	ChaosEquivalent float64
	PayValue        float64
	ReceiveValue    float64
	CurrencyName    string
}

type Snapshot struct {
	FetchedAt   time.Time
	League      string
	Quotes      map[items.Category]Quote
	DivineRatio float64
}

// overview is the body of /api/data/currencyoverview.
type overview struct {
	Lines []line `json:"lines"`
}

type line struct {
	CurrencyTypeName string     `json:"currencyTypeName"`
	ChaosEquivalent  float64    `json:"chaosEquivalent"`
	Pay              *rateValue `json:"pay"`
	Receive          *rateValue `json:"receive"`
}

type rateValue struct {
	Value float64 `json:"value"`
}

func (r *rateValue) value() float64 {
	if r == nil {
		return 0
	}
	return r.Value
}
