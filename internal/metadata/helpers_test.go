package metadata

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// allowAllValidator skips the address-range checks so tests can target
// httptest servers on loopback.
type allowAllValidator struct{}

func (allowAllValidator) EnsureSafe(_ context.Context, rawURL string) (*SafeURL, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsafeURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: scheme %q is not allowed", ErrUnsafeURL, u.Scheme)
	}
	return &SafeURL{parsed: u}, nil
}

// denySubstringValidator rejects any URL containing the given fragment.
// Used to exercise redirect re-validation.
type denySubstringValidator struct {
	fragment string
}

func (v denySubstringValidator) EnsureSafe(ctx context.Context, rawURL string) (*SafeURL, error) {
	if strings.Contains(rawURL, v.fragment) {
		return nil, fmt.Errorf("%w: blocked target", ErrUnsafeURL)
	}
	return allowAllValidator{}.EnsureSafe(ctx, rawURL)
}

// denyAllValidator fails every URL, simulating an unresolvable or blocked
// host without touching the network.
type denyAllValidator struct{}

func (denyAllValidator) EnsureSafe(context.Context, string) (*SafeURL, error) {
	return nil, fmt.Errorf("%w: blocked", ErrUnsafeURL)
}

// stubRenderer is a canned PageRenderer.
type stubRenderer struct {
	html   string
	err    error
	called bool
}

func (s *stubRenderer) RenderHTML(context.Context, string) (string, error) {
	s.called = true
	return s.html, s.err
}

func (s *stubRenderer) Shutdown(context.Context) error { return nil }

func newTestFetcher() *Fetcher {
	return NewFetcher(allowAllValidator{}, 5*time.Second, 5)
}

func mustSafeURL(t *testing.T, raw string) *SafeURL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return &SafeURL{parsed: u}
}
