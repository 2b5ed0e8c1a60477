package repository

import (
	"context"
	"errors"
)

// ErrRenderFailed indicates the headless browser could not produce a DOM for
// the page (navigation timeout, crash, bad target).
var ErrRenderFailed = errors.New("page render failed")

// PageRenderer defines the contract for loading a page in a headless browser
// and returning the rendered DOM serialized as HTML. Implementations share
// one browser process across calls but must isolate navigation state between
// concurrent renders.
type PageRenderer interface {
	// RenderHTML navigates to pageURL, waits for client-side rendering to
	// settle, and returns the document HTML.
	RenderHTML(ctx context.Context, pageURL string) (string, error)
	// Shutdown tears down the shared browser process. Safe to call even if
	// no render ever happened.
	Shutdown(ctx context.Context) error
}
