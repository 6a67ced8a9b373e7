package domain

import (
	"testing"
	"time"
)

func TestCatalogIndex(t *testing.T) {
	if len(Catalog) != 17 {
		t.Fatalf("expected 17 instruments, got %d", len(Catalog))
	}
	if len(CatalogByID) != len(Catalog) {
		t.Fatalf("duplicate catalog ids: %d indexed of %d", len(CatalogByID), len(Catalog))
	}
	for _, inst := range Catalog {
		for _, locale := range Locales {
			if inst.Names[locale] == "" {
				t.Errorf("%s missing %s name", inst.ID, locale)
			}
		}
	}
	if _, ok := LookupInstrument("price_btc"); ok {
		t.Fatal("unknown instrument should not resolve")
	}
}

func TestInstrumentNameFallback(t *testing.T) {
	inst := Instrument{ID: "price_x", Names: map[Locale]string{LocaleEN: "X"}}
	if inst.Name(LocaleEN) != "X" || inst.Name(LocaleFA) != "price_x" {
		t.Fatalf("unexpected names: %q %q", inst.Name(LocaleEN), inst.Name(LocaleFA))
	}
}

func TestInstrumentIDsCatalogOrder(t *testing.T) {
	s := &PriceSnapshot{Prices: map[string]float64{
		"price_ounce":     2400,
		"price_dollar_rl": 50000,
		"price_eur":       54000,
	}}
	ids := s.InstrumentIDs()
	want := []string{"price_dollar_rl", "price_eur", "price_ounce"}
	if len(ids) != len(want) {
		t.Fatalf("expected %v, got %v", want, ids)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, ids)
		}
	}
}

func TestFlatten(t *testing.T) {
	s := &PriceSnapshot{
		Prices:     map[string]float64{"price_dollar_rl": 50000},
		CapturedAt: time.Now(),
	}
	m := Flatten(s)
	if len(m) != 4 {
		t.Fatalf("expected 4 records, got %d", len(m))
	}
	rec, ok := m["price_dollar_rl_fa"]
	if !ok || rec.Name != "دلار آمریکا" || rec.Price != 50000 {
		t.Fatalf("unexpected fa record: %+v", rec)
	}
	if m["price_dollar_rl_ru"].Name != "Доллар США" {
		t.Fatalf("unexpected ru record: %+v", m["price_dollar_rl_ru"])
	}
	if len(Flatten(nil)) != 0 {
		t.Fatal("nil snapshot should flatten to empty map")
	}
}

func TestPriceChangeHelpers(t *testing.T) {
	c := PriceChange{Current: 900, Previous: 1000, Kind: ChangeDecrease}
	if !c.HasPrevious() || c.Difference() != 100 {
		t.Fatalf("unexpected helpers: %+v", c)
	}
	if SeverityFor(ChangeDecrease) != SeverityDown || SeverityFor(ChangeIncrease) != SeverityUp || SeverityFor(ChangeNewRecord) != SeverityInfo {
		t.Fatal("unexpected severity mapping")
	}
}
