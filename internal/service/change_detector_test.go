package service

import (
	"math"
	"testing"

	"tgju-tracker/internal/domain"
)

func snapshotOf(prices map[string]float64) *domain.PriceSnapshot {
	return &domain.PriceSnapshot{Prices: prices}
}

func TestDetectChangesUnchangedIsEmpty(t *testing.T) {
	s := snapshotOf(map[string]float64{
		"price_dollar_rl": 50000,
		"price_eur":       54000.5,
		"price_ounce":     2650.37,
	})
	if changes := DetectChanges(s, domain.Flatten(s)); len(changes) != 0 {
		t.Fatalf("expected no changes, got %+v", changes)
	}
}

func TestDetectChangesNewRecord(t *testing.T) {
	changes := DetectChanges(snapshotOf(map[string]float64{"price_eur": 123}), domain.PersistedMap{})
	if len(changes) != 4 {
		t.Fatalf("expected 4 changes, got %d", len(changes))
	}
	for i, c := range changes {
		if c.Kind != domain.ChangeNewRecord || c.Previous != 0 || c.Percent != 0 {
			t.Fatalf("unexpected change: %+v", c)
		}
		if c.Locale != domain.Locales[i] {
			t.Fatalf("expected locale %s at %d, got %s", domain.Locales[i], i, c.Locale)
		}
		if c.Severity != domain.SeverityInfo {
			t.Fatalf("unexpected severity: %+v", c)
		}
	}
	if changes[0].Name != "یورو" || changes[1].Name != "Euro" {
		t.Fatalf("unexpected names: %+v", changes)
	}
}

func TestDetectChangesDirection(t *testing.T) {
	prev := domain.Flatten(snapshotOf(map[string]float64{"price_dollar_rl": 1000, "price_eur": 1000}))
	changes := DetectChanges(snapshotOf(map[string]float64{"price_dollar_rl": 1100, "price_eur": 900}), prev)
	if len(changes) != 8 {
		t.Fatalf("expected 8 changes, got %d", len(changes))
	}
	for _, c := range changes[:4] {
		if c.InstrumentID != "price_dollar_rl" || c.Kind != domain.ChangeIncrease || c.Percent != 10 || c.Previous != 1000 {
			t.Fatalf("unexpected increase: %+v", c)
		}
		if c.Severity != domain.SeverityUp {
			t.Fatalf("unexpected severity: %+v", c)
		}
	}
	for _, c := range changes[4:] {
		if c.InstrumentID != "price_eur" || c.Kind != domain.ChangeDecrease || c.Percent != -10 {
			t.Fatalf("unexpected decrease: %+v", c)
		}
	}
}

func TestDetectChangesRounding(t *testing.T) {
	prev := domain.Flatten(snapshotOf(map[string]float64{"price_usdt": 3000}))
	changes := DetectChanges(snapshotOf(map[string]float64{"price_usdt": 3001}), prev)
	if len(changes) != 4 || changes[0].Percent != 0.03 {
		t.Fatalf("expected 0.03%%, got %+v", changes)
	}
}

func TestDetectChangesStoredZeroIsNewRecord(t *testing.T) {
	prev := domain.PersistedMap{"price_rob_fa": {Name: "ربع سکه", Price: 0}}
	changes := DetectChanges(snapshotOf(map[string]float64{"price_rob": 500}), prev)
	if len(changes) != 4 {
		t.Fatalf("expected 4 changes, got %d", len(changes))
	}
	if changes[0].Kind != domain.ChangeNewRecord || changes[0].Previous != 0 {
		t.Fatalf("stored zero should be treated as absent: %+v", changes[0])
	}
}

func TestDetectChangesNonFinitePrices(t *testing.T) {
	stored := domain.Flatten(snapshotOf(map[string]float64{
		"price_eur": math.NaN(),
		"price_gbp": math.Inf(1),
	}))

	changes := DetectChanges(snapshotOf(map[string]float64{
		"price_eur": 100,
		"price_gbp": 200,
		"price_aed": math.NaN(),
	}), stored)
	if len(changes) != 8 {
		t.Fatalf("expected 8 changes, got %+v", changes)
	}
	for _, c := range changes {
		if c.Kind != domain.ChangeNewRecord || c.Percent != 0 {
			t.Fatalf("non-finite prior should count as absent, got %+v", c)
		}
		if c.InstrumentID == "price_aed" {
			t.Fatalf("non-finite current price must not be reported: %+v", c)
		}
	}
}

func TestDetectChangesCatalogOrder(t *testing.T) {
	changes := DetectChanges(snapshotOf(map[string]float64{
		"price_mesghal":   1,
		"price_dollar_rl": 2,
		"price_gbp":       3,
	}), nil)
	want := []string{"price_dollar_rl", "price_gbp", "price_mesghal"}
	if len(changes) != 12 {
		t.Fatalf("expected 12 changes, got %d", len(changes))
	}
	for i, id := range want {
		for j := 0; j < 4; j++ {
			c := changes[i*4+j]
			if c.InstrumentID != id || c.Locale != domain.Locales[j] {
				t.Fatalf("unexpected order at %d: %+v", i*4+j, c)
			}
		}
	}
}

func TestPercentChange(t *testing.T) {
	tests := []struct {
		cur, prev, want float64
	}{
		{52000, 50000, 4},
		{1100, 1000, 10},
		{900, 1000, -10},
		{3001, 3000, 0.03},
		{1000, 3000, -66.67},
	}
	for _, tc := range tests {
		if got := percentChange(tc.cur, tc.prev); got != tc.want {
			t.Fatalf("percentChange(%v, %v) = %v, want %v", tc.cur, tc.prev, got, tc.want)
		}
	}
}
