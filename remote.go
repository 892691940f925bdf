package jsonschema

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/go-faster/errors"
)

// RemoteResolver fetches schema documents referenced by absolute URIs.
type RemoteResolver interface {
	Resolve(ctx context.Context, loc string) ([]byte, error)
}

// Remote is a RemoteResolver fetching http(s) locations.
type Remote struct {
	// Client to use. Defaults to a client with a 30s timeout.
	Client *http.Client
}

var defaultClient = &http.Client{Timeout: 30 * time.Second}

// Resolve implements RemoteResolver.
func (r Remote) Resolve(ctx context.Context, loc string) ([]byte, error) {
	u, err := url.Parse(loc)
	if err != nil {
		return nil, errors.Wrap(err, "parse location")
	}
	switch u.Scheme {
	case "http", "https":
	default:
		return nil, errors.Errorf("unsupported scheme %q", u.Scheme)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, loc, nil)
	if err != nil {
		return nil, errors.Wrap(err, "create request")
	}

	client := r.Client
	if client == nil {
		client = defaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "get")
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("%s returned status code %d", loc, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
