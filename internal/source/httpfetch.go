package source

import (
	"context"
	"fmt"
	"io"

	"kwestendorf/scopeworker/helpers"
)

// HTTPProvider fetches pages with a plain HTTP client and browser-like
// headers. It cannot execute scripts, so sources that render their listings
// client-side need the Rod provider; the adapter's marker check catches the
// difference either way.
type HTTPProvider struct{}

// NewHTTPProvider creates an HTTP-backed snapshot provider.
func NewHTTPProvider() *HTTPProvider {
	return &HTTPProvider{}
}

// Fetch retrieves the page body as UTF-8 HTML. The wait selector is ignored:
// a static fetch has nothing to wait for.
func (p *HTTPProvider) Fetch(ctx context.Context, url, _ string) (string, error) {
	body, err := helpers.FetchWithRandomHeaders(ctx, url)
	if err != nil {
		return "", err
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("read body %s: %w", url, err)
	}
	return string(data), nil
}

// Close is a no-op; the underlying client keeps no per-provider state.
func (p *HTTPProvider) Close() error {
	return nil
}
