package metadata

import (
	"context"
	"errors"
	"net/netip"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDNSValidator(addrs []string, lookupErr error) *Validator {
	v := NewValidator(time.Second)
	v.lookup = func(context.Context, string) ([]netip.Addr, error) {
		if lookupErr != nil {
			return nil, lookupErr
		}
		parsed := make([]netip.Addr, 0, len(addrs))
		for _, a := range addrs {
			parsed = append(parsed, netip.MustParseAddr(a))
		}
		return parsed, nil
	}
	return v
}

func TestEnsureSafe_RejectsBadSchemes(t *testing.T) {
	v := NewValidator(time.Second)

	for _, rawURL := range []string{
		"ftp://example.com/file",
		"file:///etc/passwd",
		"example.com/no-scheme",
		"javascript:alert(1)",
		"",
	} {
		_, err := v.EnsureSafe(context.Background(), rawURL)
		require.Error(t, err, "expected rejection for %q", rawURL)
		assert.ErrorIs(t, err, ErrUnsafeURL, "input %q", rawURL)
	}
}

func TestEnsureSafe_RejectsBlockedLiteralIPs(t *testing.T) {
	v := NewValidator(time.Second)

	for _, rawURL := range []string{
		"http://127.0.0.1/",
		"http://127.8.8.8:8080/admin",
		"http://10.0.0.8/",
		"http://192.168.1.1/router",
		"http://172.16.0.1/",
		"http://169.254.169.254/latest/meta-data",
		"http://[::1]/",
		"http://[::ffff:127.0.0.1]/",
		"http://[::ffff:10.0.0.1]/",
		"http://[fe80::1]/",
		"http://[fd00::1]/",
		"http://0.0.0.0/",
		"http://224.0.0.1/",
		"http://100.64.1.1/",
		"http://240.0.0.1/",
		"http://192.0.2.10/",
	} {
		_, err := v.EnsureSafe(context.Background(), rawURL)
		require.Error(t, err, "expected rejection for %q", rawURL)
		assert.ErrorIs(t, err, ErrUnsafeURL, "input %q", rawURL)
	}
}

func TestEnsureSafe_AllowsPublicLiteralIPs(t *testing.T) {
	v := NewValidator(time.Second)

	for _, rawURL := range []string{
		"http://93.184.216.34/",
		"https://[2606:2800:220:1:248:1893:25c8:1946]/page",
	} {
		safe, err := v.EnsureSafe(context.Background(), rawURL)
		require.NoError(t, err, "input %q", rawURL)
		assert.Equal(t, rawURL, safe.String())
	}
}

func TestEnsureSafe_RejectsHostsResolvingToBlockedRanges(t *testing.T) {
	cases := map[string][]string{
		"loopback only":        {"127.0.0.1"},
		"private only":         {"10.1.2.3"},
		"link-local only":      {"169.254.169.254"},
		"ipv6 loopback":        {"::1"},
		"ipv4-mapped loopback": {"::ffff:127.0.0.1"},
		"mixed public/private": {"93.184.216.34", "10.0.0.5"},
	}

	for name, addrs := range cases {
		t.Run(name, func(t *testing.T) {
			v := newDNSValidator(addrs, nil)
			_, err := v.EnsureSafe(context.Background(), "http://internal.example.com/")
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrUnsafeURL)
		})
	}
}

func TestEnsureSafe_AllowsHostsResolvingToPublicRanges(t *testing.T) {
	v := newDNSValidator([]string{"93.184.216.34", "2606:2800:220:1:248:1893:25c8:1946"}, nil)

	safe, err := v.EnsureSafe(context.Background(), "https://example.com/page?q=1")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/page?q=1", safe.String())
	assert.Equal(t, "example.com", safe.Hostname())
}

func TestEnsureSafe_UnresolvableHostIsRejected(t *testing.T) {
	t.Run("lookup error", func(t *testing.T) {
		v := newDNSValidator(nil, errors.New("no such host"))
		_, err := v.EnsureSafe(context.Background(), "http://nxdomain.example.com/")
		assert.ErrorIs(t, err, ErrUnsafeURL)
	})

	t.Run("empty answer", func(t *testing.T) {
		v := newDNSValidator([]string{}, nil)
		_, err := v.EnsureSafe(context.Background(), "http://empty.example.com/")
		assert.ErrorIs(t, err, ErrUnsafeURL)
	})
}

func TestBlockedRange_UnmapsIPv4MappedAddresses(t *testing.T) {
	assert.Equal(t, "loopback", blockedRange(netip.MustParseAddr("::ffff:127.0.0.1")))
	assert.Equal(t, "private", blockedRange(netip.MustParseAddr("::ffff:192.168.0.1")))
	assert.Equal(t, "", blockedRange(netip.MustParseAddr("::ffff:93.184.216.34")))
}
