package provider

import (
	"bytes"
	"context"
	"errors"
	"log"
	"math"
	"strconv"
	"strings"
	"time"

	"tgju-tracker/internal/domain"

	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	DefaultStateMarker = "window.__INITIAL_STATE__"
	marketSectionPath  = "market.main"
	priceField         = "p"
)

// SnapshotExtractor pulls the embedded page state out of the markup and
// projects it onto the instrument catalog.
type SnapshotExtractor struct {
	tracer  trace.Tracer
	marker  string
	catalog []domain.Instrument
	now     func() time.Time
}

func NewSnapshotExtractor(tracer trace.Tracer, marker string, catalog []domain.Instrument) *SnapshotExtractor {
	if marker == "" {
		marker = DefaultStateMarker
	}
	if catalog == nil {
		catalog = domain.Catalog
	}
	return &SnapshotExtractor{
		tracer:  tracer,
		marker:  marker,
		catalog: catalog,
		now:     time.Now,
	}
}

// Extract builds a snapshot from a fetched page. A page whose market section
// carries none of the catalog instruments yields an empty snapshot, not an error.
func (e *SnapshotExtractor) Extract(ctx context.Context, page []byte) (*domain.PriceSnapshot, error) {
	_, span := e.tracer.Start(ctx, "tgju.extract")
	defer span.End()

	snapshot, err := e.extract(page)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("instruments", len(snapshot.Prices)))
	return snapshot, nil
}

func (e *SnapshotExtractor) extract(page []byte) (*domain.PriceSnapshot, error) {
	blob, err := e.findStateBlob(page)
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(blob) {
		return nil, &ExtractError{Kind: ExtractMalformedJSON, Err: errors.New("embedded state is not valid JSON")}
	}

	section := gjson.GetBytes(blob, marketSectionPath)
	if !section.Exists() || !section.IsObject() {
		return nil, &ExtractError{Kind: ExtractMissingMarketSection}
	}

	reported := make(map[string]gjson.Result)
	section.ForEach(func(key, value gjson.Result) bool {
		reported[key.String()] = value
		return true
	})

	snapshot := &domain.PriceSnapshot{
		Prices:     make(map[string]float64),
		CapturedAt: e.now(),
	}
	for _, inst := range e.catalog {
		row, ok := reported[inst.ID]
		if !ok {
			continue
		}
		price, ok := coercePrice(row.Get(priceField))
		if !ok {
			continue
		}
		snapshot.Prices[inst.ID] = price
	}
	return snapshot, nil
}

// findStateBlob returns the first object literal assigned to the marker in any
// script block. Mentions of the marker that are not assignments are skipped.
func (e *SnapshotExtractor) findStateBlob(page []byte) ([]byte, error) {
	doc, err := html.Parse(bytes.NewReader(page))
	if err != nil {
		return nil, &ExtractError{Kind: ExtractMarkerNotFound, Err: err}
	}

	var firstErr error
	for _, text := range scriptTexts(doc) {
		for {
			idx := strings.Index(text, e.marker)
			if idx < 0 {
				break
			}
			text = text[idx+len(e.marker):]
			literal, err := isolateAssignment(text)
			if err == nil {
				return []byte(literal), nil
			}
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	if firstErr != nil {
		return nil, &ExtractError{Kind: ExtractMalformedJSON, Err: firstErr}
	}
	return nil, &ExtractError{Kind: ExtractMarkerNotFound}
}

func scriptTexts(n *html.Node) []string {
	var out []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Script {
			var b strings.Builder
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.TextNode {
					b.WriteString(c.Data)
				}
			}
			if b.Len() > 0 {
				out = append(out, b.String())
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

// isolateAssignment expects "<ws>=<ws>{...}" and returns the balanced literal.
func isolateAssignment(rest string) (string, error) {
	rest = strings.TrimLeft(rest, " \t\r\n")
	if !strings.HasPrefix(rest, "=") || strings.HasPrefix(rest, "==") {
		return "", errors.New("marker is not followed by an assignment")
	}
	rest = strings.TrimLeft(rest[1:], " \t\r\n")
	if rest == "" || (rest[0] != '{' && rest[0] != '[') {
		return "", errors.New("assigned value is not an object literal")
	}
	return balancedLiteral(rest)
}

// balancedLiteral scans from an opening bracket to its matching close,
// skipping brackets inside quoted strings.
func balancedLiteral(s string) (string, error) {
	depth := 0
	inString := false
	escaped := false
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == quote:
				inString = false
			}
			continue
		}
		switch c {
		case '"', '\'':
			inString = true
			quote = c
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 {
				return s[:i+1], nil
			}
		}
	}
	return "", errors.New("unterminated object literal")
}

// coercePrice accepts numbers and numeric strings with thousands separators.
// Zero, empty, non-finite and unparseable values count as no data.
func coercePrice(v gjson.Result) (float64, bool) {
	var f float64
	switch v.Type {
	case gjson.Number:
		n, err := strconv.ParseFloat(v.Raw, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			log.Printf("skipping unparseable price %s: %v", v.Raw, err)
			return 0, false
		}
		f = n
	case gjson.String:
		s := strings.ReplaceAll(strings.TrimSpace(v.Str), ",", "")
		if s == "" {
			return 0, false
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			log.Printf("skipping unparseable price %q: %v", v.Str, err)
			return 0, false
		}
		f = n
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		log.Printf("skipping non-finite price %s", v.Raw)
		return 0, false
	}
	return f, f != 0
}
