package domain

import "time"

// PriceSnapshot is the set of instrument prices captured in one fetch cycle.
// Prices is keyed by catalog instrument ID; every locale shares the same value.
type PriceSnapshot struct {
	Prices     map[string]float64 `json:"prices"`
	CapturedAt time.Time          `json:"captured_at"`
}

// InstrumentIDs returns the snapshot's instruments in catalog order.
func (s *PriceSnapshot) InstrumentIDs() []string {
	if s == nil {
		return nil
	}
	ids := make([]string, 0, len(s.Prices))
	for _, inst := range Catalog {
		if _, ok := s.Prices[inst.ID]; ok {
			ids = append(ids, inst.ID)
		}
	}
	return ids
}

// PriceRecord is the persisted unit for one instrument in one locale.
type PriceRecord struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// PersistedMap is the durable store layout, keyed by RecordKey.
type PersistedMap map[string]PriceRecord

// RecordKey builds the composite (instrument, locale) key.
func RecordKey(instrumentID string, locale Locale) string {
	return instrumentID + "_" + string(locale)
}

// Flatten expands a snapshot into one record per instrument per locale.
func Flatten(s *PriceSnapshot) PersistedMap {
	out := make(PersistedMap)
	if s == nil {
		return out
	}
	for _, id := range s.InstrumentIDs() {
		inst := CatalogByID[id]
		for _, locale := range Locales {
			out[RecordKey(id, locale)] = PriceRecord{
				Name:  inst.Name(locale),
				Price: s.Prices[id],
			}
		}
	}
	return out
}

// ChangeKind classifies a price movement against the prior record.
type ChangeKind string

const (
	ChangeNewRecord ChangeKind = "new_record"
	ChangeIncrease  ChangeKind = "increase"
	ChangeDecrease  ChangeKind = "decrease"
)

// Severity is the presentation marker attached to a change.
type Severity string

const (
	SeverityInfo Severity = "🔵"
	SeverityUp   Severity = "🟢"
	SeverityDown Severity = "🔴"
)

// SeverityFor maps a change kind to its marker.
func SeverityFor(kind ChangeKind) Severity {
	switch kind {
	case ChangeIncrease:
		return SeverityUp
	case ChangeDecrease:
		return SeverityDown
	default:
		return SeverityInfo
	}
}

// PriceChange is one detected difference for an instrument in one locale.
// Previous is 0 and Percent is 0 when there was no prior record.
type PriceChange struct {
	InstrumentID string     `json:"instrument_id"`
	Locale       Locale     `json:"locale"`
	Name         string     `json:"name"`
	Current      float64    `json:"current"`
	Previous     float64    `json:"previous"`
	Kind         ChangeKind `json:"kind"`
	Percent      float64    `json:"percent"`
	Severity     Severity   `json:"severity"`
}

// HasPrevious reports whether a valid prior price existed.
func (c PriceChange) HasPrevious() bool {
	return c.Previous > 0
}

// Difference is the absolute price movement.
func (c PriceChange) Difference() float64 {
	d := c.Current - c.Previous
	if d < 0 {
		return -d
	}
	return d
}
