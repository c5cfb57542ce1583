package loader

import (
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/binbingao/json-schema-validator/ref"
)

// FSFetcher reads schema documents from a filesystem. The reference's path,
// with any leading slash stripped, is taken relative to the filesystem root.
type FSFetcher struct {
	FS fs.FS
}

// Fetch implements Fetcher.
func (f FSFetcher) Fetch(root ref.Ref) ([]byte, error) {
	p := strings.TrimPrefix(root.Path(), "/")
	if p == "" {
		return nil, fmt.Errorf("empty path in %s", root)
	}
	return fs.ReadFile(f.FS, path.Clean(p))
}

// HTTPFetcher retrieves schema documents over HTTP(S). A nil Client uses
// http.DefaultClient.
type HTTPFetcher struct {
	Client *http.Client
}

// Fetch implements Fetcher.
func (h HTTPFetcher) Fetch(root ref.Ref) ([]byte, error) {
	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Get(root.String())
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: %s", root, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// MapFetcher serves schema documents from memory, keyed by canonical root
// reference. Intended for tests and embedded schemas.
type MapFetcher map[string][]byte

// Fetch implements Fetcher.
func (m MapFetcher) Fetch(root ref.Ref) ([]byte, error) {
	data, ok := m[root.String()]
	if !ok {
		return nil, fmt.Errorf("no document for %s", root)
	}
	return data, nil
}
