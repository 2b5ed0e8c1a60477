package metadata

import (
	"net/url"
	"strings"

	"github.com/imcharliesparks/listmaker/internal/entity"
)

// Classify maps a URL string to a source category by matching its host
// against a fixed table of known platform domains. It is pure and total:
// anything unmatched is a generic website, and malformed input still
// classifies against the raw string.
func Classify(rawURL string) entity.SourceType {
	host := hostOf(rawURL)
	switch {
	case strings.Contains(host, "youtube.com"), strings.Contains(host, "youtu.be"):
		return entity.SourceVideo
	case strings.Contains(host, "amazon."):
		return entity.SourceMarketplace
	// x.com needs an exact domain match: substring matching would also
	// catch hosts like netflix.com.
	case strings.Contains(host, "twitter.com"), strings.Contains(host, "instagram.com"), matchesDomain(host, "x.com"):
		return entity.SourceSocial
	case strings.Contains(host, "pinterest."):
		return entity.SourcePinboard
	}
	return entity.SourceWebsite
}

func hostOf(rawURL string) string {
	if u, err := url.Parse(strings.TrimSpace(rawURL)); err == nil && u.Host != "" {
		return strings.ToLower(u.Hostname())
	}
	return strings.ToLower(rawURL)
}

func matchesDomain(host, domain string) bool {
	return host == domain || strings.HasSuffix(host, "."+domain)
}
