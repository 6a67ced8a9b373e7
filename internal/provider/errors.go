package provider

import "fmt"

// FetchErrorKind classifies why a page fetch failed.
type FetchErrorKind string

const (
	FetchNetwork    FetchErrorKind = "network"
	FetchTimeout    FetchErrorKind = "timeout"
	FetchHTTPStatus FetchErrorKind = "http_status"
)

// FetchError is returned by FetchPage when the page could not be retrieved.
type FetchError struct {
	Kind       FetchErrorKind
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Kind == FetchHTTPStatus {
		return fmt.Sprintf("fetch page: http status %d", e.StatusCode)
	}
	return fmt.Sprintf("fetch page (%s): %v", e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ExtractErrorKind names the stage at which the embedded state could not be read.
type ExtractErrorKind string

const (
	ExtractMarkerNotFound       ExtractErrorKind = "marker_not_found"
	ExtractMalformedJSON        ExtractErrorKind = "malformed_json"
	ExtractMissingMarketSection ExtractErrorKind = "missing_market_section"
)

// ExtractError is returned by Extract when no snapshot can be built from a page.
type ExtractError struct {
	Kind ExtractErrorKind
	Err  error
}

func (e *ExtractError) Error() string {
	if e.Err == nil {
		return "extract snapshot: " + string(e.Kind)
	}
	return fmt.Sprintf("extract snapshot (%s): %v", e.Kind, e.Err)
}

func (e *ExtractError) Unwrap() error { return e.Err }
