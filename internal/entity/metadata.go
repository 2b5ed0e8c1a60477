package entity

// SourceType classifies the platform a saved link points at. It is derived
// purely from the URL string, so it is always available even when extraction
// fails.
type SourceType string

const (
	SourceVideo       SourceType = "video"
	SourceMarketplace SourceType = "marketplace"
	SourceSocial      SourceType = "social"
	SourcePinboard    SourceType = "pinboard"
	SourceWebsite     SourceType = "website"
)

// Metadata is the normalized preview extracted for a submitted URL.
// Every field except URL is optional; an absent field is an expected
// outcome, not an error.
type Metadata struct {
	URL         string         `json:"url"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Thumbnail   string         `json:"thumbnail,omitempty"`
	VideoURL    string         `json:"videoUrl,omitempty"`
	SourceType  SourceType     `json:"sourceType"`
	Extra       map[string]any `json:"metadata,omitempty"`
}

// HasMedia reports whether the preview carries at least one media reference.
// Background ingestion refuses to persist items without one.
func (m *Metadata) HasMedia() bool {
	return m.Thumbnail != "" || m.VideoURL != ""
}
