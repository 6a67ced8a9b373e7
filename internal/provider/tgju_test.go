package provider

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

var testTracer = trace.NewNoopTracerProvider().Tracer("test")

func TestNewTGJUProviderDefaults(t *testing.T) {
	p := NewTGJUProvider(testTracer, "", "", 0)
	if p.pageURL != DefaultPageURL || p.userAgent != DefaultUserAgent {
		t.Fatalf("unexpected defaults: %+v", p)
	}
	if p.client.Timeout != 15*time.Second {
		t.Fatalf("expected 15s timeout, got %v", p.client.Timeout)
	}
}

func TestFetchPageSendsUserAgent(t *testing.T) {
	p := NewTGJUProvider(testTracer, "https://example.com/", "agent/1.0", time.Second)
	p.client = &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		if req.Method != http.MethodGet {
			t.Fatalf("unexpected method: %s", req.Method)
		}
		if got := req.Header.Get("User-Agent"); got != "agent/1.0" {
			t.Fatalf("unexpected user agent: %q", got)
		}
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(bytes.NewBufferString("<html></html>")),
			Header:     make(http.Header),
		}, nil
	})}

	body, err := p.FetchPage(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(body) != "<html></html>" {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestFetchPageHTTPStatus(t *testing.T) {
	p := NewTGJUProvider(testTracer, "https://example.com/", "", time.Second)
	p.client = &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusForbidden,
			Body:       io.NopCloser(bytes.NewBufferString("denied")),
			Header:     make(http.Header),
		}, nil
	})}

	_, err := p.FetchPage(context.Background())
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FetchError, got %v", err)
	}
	if fe.Kind != FetchHTTPStatus || fe.StatusCode != http.StatusForbidden {
		t.Fatalf("unexpected fetch error: %+v", fe)
	}
}

func TestFetchPageNetworkAndTimeout(t *testing.T) {
	tests := map[string]struct {
		err  error
		kind FetchErrorKind
	}{
		"network":  {err: errors.New("connection refused"), kind: FetchNetwork},
		"timeout":  {err: timeoutError{}, kind: FetchTimeout},
		"deadline": {err: context.DeadlineExceeded, kind: FetchTimeout},
	}
	for name, tc := range tests {
		p := NewTGJUProvider(testTracer, "https://example.com/", "", time.Second)
		p.client = &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			return nil, tc.err
		})}

		_, err := p.FetchPage(context.Background())
		var fe *FetchError
		if !errors.As(err, &fe) {
			t.Fatalf("%s: expected FetchError, got %v", name, err)
		}
		if fe.Kind != tc.kind {
			t.Fatalf("%s: expected kind %s, got %s", name, tc.kind, fe.Kind)
		}
	}
}
