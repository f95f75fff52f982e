package loader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// maxImportSize caps a single imported source file at 8 MiB.
const maxImportSize = 8 << 20

// HTTP serves imports relative to a base URL. A nil client uses
// http.DefaultClient.
func HTTP(base *url.URL, client *http.Client) Loader {
	if client == nil {
		client = http.DefaultClient
	}
	return &httpLoader{base: base, client: client}
}

type httpLoader struct {
	base   *url.URL
	client *http.Client
}

func (l *httpLoader) ResolvePath(name string) (string, bool) {
	ref, err := url.Parse(name)
	if err != nil {
		return "", false
	}
	return l.base.ResolveReference(ref).String(), true
}

func (l *httpLoader) LoadContent(ctx context.Context, path string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, path, nil)
	if err != nil {
		return "", fmt.Errorf("load import %s: %w", path, err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("load import %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("load import %s: unexpected status %s", path, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImportSize+1))
	if err != nil {
		return "", fmt.Errorf("load import %s: %w", path, err)
	}
	if len(data) > maxImportSize {
		return "", fmt.Errorf("load import %s: larger than %d bytes", path, maxImportSize)
	}
	return string(data), nil
}
