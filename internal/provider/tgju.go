package provider

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	DefaultPageURL   = "https://www.tgju.org/"
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

// TGJUProvider fetches the raw tgju.org landing page.
type TGJUProvider struct {
	client    *http.Client
	pageURL   string
	userAgent string
	tracer    trace.Tracer
}

// NewTGJUProvider creates a page fetcher. It never retries; retry policy belongs to the caller.
func NewTGJUProvider(tracer trace.Tracer, pageURL, userAgent string, timeout time.Duration) *TGJUProvider {
	if pageURL == "" {
		pageURL = DefaultPageURL
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &TGJUProvider{
		client:    &http.Client{Timeout: timeout},
		pageURL:   pageURL,
		userAgent: userAgent,
		tracer:    tracer,
	}
}

// FetchPage issues a single GET and returns the page body.
// Failures are always a *FetchError.
func (p *TGJUProvider) FetchPage(ctx context.Context) ([]byte, error) {
	ctx, span := p.tracer.Start(ctx, "tgju.fetch-page")
	defer span.End()
	span.SetAttributes(attribute.String("url", p.pageURL))

	body, err := p.doRequest(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("bytes", len(body)))
	return body, nil
}

func (p *TGJUProvider) doRequest(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.pageURL, nil)
	if err != nil {
		return nil, &FetchError{Kind: FetchNetwork, Err: err}
	}
	req.Header.Set("User-Agent", p.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &FetchError{Kind: FetchHTTPStatus, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	return body, nil
}

func classifyTransportError(err error) *FetchError {
	if errors.Is(err, context.DeadlineExceeded) {
		return &FetchError{Kind: FetchTimeout, Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &FetchError{Kind: FetchTimeout, Err: err}
	}
	return &FetchError{Kind: FetchNetwork, Err: err}
}
