package metadata

import (
	"context"
	"fmt"
	"net"
	"net/netip"
	"net/url"
	"strings"
	"time"
)

// SafeURL is an absolute http(s) URL whose resolved network addresses have
// been confirmed to sit outside blocked ranges. It is never constructed
// without a successful address check and is immutable once created.
type SafeURL struct {
	parsed *url.URL
}

func (s *SafeURL) String() string { return s.parsed.String() }

// Hostname returns the URL host without any port.
func (s *SafeURL) Hostname() string { return s.parsed.Hostname() }

// URLValidator produces SafeURLs from untrusted input. Every network fetch
// the pipeline performs goes through a validator first, including redirect
// targets.
type URLValidator interface {
	EnsureSafe(ctx context.Context, rawURL string) (*SafeURL, error)
}

// LookupFunc resolves a hostname to its IP addresses.
type LookupFunc func(ctx context.Context, host string) ([]netip.Addr, error)

// Validator is the default URLValidator. It rejects URLs that would let the
// fetcher reach loopback, link-local, private, multicast, unspecified, or
// otherwise reserved addresses (SSRF defense).
type Validator struct {
	lookup  LookupFunc
	timeout time.Duration
}

// NewValidator creates a Validator using the system resolver. The timeout
// bounds each DNS lookup.
func NewValidator(timeout time.Duration) *Validator {
	return &Validator{
		lookup: func(ctx context.Context, host string) ([]netip.Addr, error) {
			return net.DefaultResolver.LookupNetIP(ctx, "ip", host)
		},
		timeout: timeout,
	}
}

// EnsureSafe parses rawURL and verifies that every address it can reach is
// outside the blocked ranges. A hostname that fails to resolve is rejected,
// not passed through.
func (v *Validator) EnsureSafe(ctx context.Context, rawURL string) (*SafeURL, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsafeURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: scheme %q is not allowed", ErrUnsafeURL, u.Scheme)
	}
	host := u.Hostname()
	if host == "" {
		return nil, fmt.Errorf("%w: missing host", ErrUnsafeURL)
	}

	// Literal IP hosts skip DNS but go through the same range classifier
	// as resolved addresses.
	if addr, err := netip.ParseAddr(host); err == nil {
		if rangeName := blockedRange(addr); rangeName != "" {
			return nil, fmt.Errorf("%w: address %s is in a %s range", ErrUnsafeURL, host, rangeName)
		}
		return &SafeURL{parsed: u}, nil
	}

	lookupCtx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	addrs, err := v.lookup(lookupCtx, host)
	if err != nil || len(addrs) == 0 {
		return nil, fmt.Errorf("%w: cannot resolve host %q", ErrUnsafeURL, host)
	}
	for _, addr := range addrs {
		if rangeName := blockedRange(addr); rangeName != "" {
			return nil, fmt.Errorf("%w: host %q resolves to a %s address (%s)", ErrUnsafeURL, host, rangeName, addr)
		}
	}

	return &SafeURL{parsed: u}, nil
}

// reservedBlocks covers IANA-reserved ranges not already classified by the
// netip predicate methods.
var reservedBlocks = []netip.Prefix{
	netip.MustParsePrefix("0.0.0.0/8"),
	netip.MustParsePrefix("100.64.0.0/10"), // carrier-grade NAT
	netip.MustParsePrefix("192.0.0.0/24"),
	netip.MustParsePrefix("192.0.2.0/24"), // TEST-NET-1
	netip.MustParsePrefix("198.18.0.0/15"),
	netip.MustParsePrefix("198.51.100.0/24"), // TEST-NET-2
	netip.MustParsePrefix("203.0.113.0/24"),  // TEST-NET-3
	netip.MustParsePrefix("240.0.0.0/4"),
	netip.MustParsePrefix("2001:db8::/32"),
}

// blockedRange classifies an address and returns the name of the blocked
// range it falls into, or "" when the address is routable. IPv4-mapped IPv6
// addresses are unmapped first so ::ffff:127.0.0.1 cannot slip past the
// IPv4 checks.
func blockedRange(addr netip.Addr) string {
	addr = addr.Unmap()
	switch {
	case addr.IsLoopback():
		return "loopback"
	case addr.IsLinkLocalUnicast(), addr.IsLinkLocalMulticast():
		return "link-local"
	case addr.IsPrivate():
		return "private"
	case addr.IsMulticast():
		return "multicast"
	case addr.IsUnspecified():
		return "unspecified"
	}
	for _, block := range reservedBlocks {
		if block.Contains(addr) {
			return "reserved"
		}
	}
	return ""
}
