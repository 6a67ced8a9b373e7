package service

import (
	"math"

	"tgju-tracker/internal/domain"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// DetectChanges compares a fresh snapshot with the persisted records.
// Output is in catalog order, then locale order, one entry per changed
// (instrument, locale) pair. A stored price that is 0 or not finite counts as
// no prior record; a non-finite current price is not reported.
func DetectChanges(snapshot *domain.PriceSnapshot, previous domain.PersistedMap) []domain.PriceChange {
	var changes []domain.PriceChange
	for _, id := range snapshot.InstrumentIDs() {
		inst := domain.CatalogByID[id]
		current := snapshot.Prices[id]
		if !finite(current) {
			continue
		}

		for _, locale := range domain.Locales {
			change := domain.PriceChange{
				InstrumentID: id,
				Locale:       locale,
				Name:         inst.Name(locale),
				Current:      current,
			}

			prev, ok := previous[domain.RecordKey(id, locale)]
			switch {
			case !ok || prev.Price == 0 || !finite(prev.Price):
				change.Kind = domain.ChangeNewRecord
			case prev.Price == current:
				continue
			case current > prev.Price:
				change.Kind = domain.ChangeIncrease
				change.Previous = prev.Price
				change.Percent = percentChange(current, prev.Price)
			default:
				change.Kind = domain.ChangeDecrease
				change.Previous = prev.Price
				change.Percent = percentChange(current, prev.Price)
			}
			change.Severity = domain.SeverityFor(change.Kind)
			changes = append(changes, change)
		}
	}
	return changes
}

// percentChange is (current-previous)/previous*100 rounded to 2 places.
func percentChange(current, previous float64) float64 {
	cur := decimal.NewFromFloat(current)
	prev := decimal.NewFromFloat(previous)
	pct, _ := cur.Sub(prev).Div(prev).Mul(hundred).Round(2).Float64()
	return pct
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
