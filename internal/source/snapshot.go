package source

import "context"

// SnapshotProvider is the page-fetching collaborator boundary. A provider
// returns a rendered DOM snapshot of one result page as HTML. waitSelector
// names the content marker the provider should wait for before serializing;
// providers that cannot wait (plain HTTP) may ignore it, the adapter
// re-checks the marker on the parsed document either way.
type SnapshotProvider interface {
	Fetch(ctx context.Context, url, waitSelector string) (string, error)

	// Close releases any underlying browser or connection resources
	Close() error
}
