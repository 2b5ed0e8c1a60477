package metadata

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// browserUserAgent is sent on every static fetch. Several platforms serve
// stripped-down pages to clients that do not look like a real browser.
const browserUserAgent = `Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36`

// maxBodyBytes caps response bodies so a hostile page cannot exhaust memory.
const maxBodyBytes = 5 << 20

// Fetcher performs safety-checked HTTP GETs for the extraction pipeline.
// Every redirect hop is re-validated before it is followed, so a safe first
// host cannot bounce the request to an internal address.
type Fetcher struct {
	client    *http.Client
	validator URLValidator
}

// NewFetcher builds a Fetcher around the given validator. The timeout covers
// the whole request including redirects; maxRedirects caps the chain length.
func NewFetcher(validator URLValidator, timeout time.Duration, maxRedirects int) *Fetcher {
	return &Fetcher{
		validator: validator,
		client: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("%w: stopped after %d redirects", ErrFetch, maxRedirects)
				}
				if _, err := validator.EnsureSafe(req.Context(), req.URL.String()); err != nil {
					return err
				}
				return nil
			},
		},
	}
}

// Get fetches target and returns the response body along with the effective
// post-redirect URL.
func (f *Fetcher) Get(ctx context.Context, target *SafeURL) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrFetch, err)
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		if errors.Is(err, ErrUnsafeURL) {
			// A redirect hop failed validation; keep that visible to the
			// caller instead of burying it in a generic fetch error.
			return nil, "", err
		}
		return nil, "", fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", fmt.Errorf("%w: unexpected status %d for %s", ErrFetch, resp.StatusCode, target.String())
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, "", fmt.Errorf("%w: reading body: %v", ErrFetch, err)
	}
	return body, resp.Request.URL.String(), nil
}

// GetURL validates rawURL and fetches it. Used for service endpoints the
// pipeline constructs itself, such as oEmbed lookups.
func (f *Fetcher) GetURL(ctx context.Context, rawURL string) ([]byte, string, error) {
	safe, err := f.validator.EnsureSafe(ctx, rawURL)
	if err != nil {
		return nil, "", err
	}
	return f.Get(ctx, safe)
}
