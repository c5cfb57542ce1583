// Package loader is the schema factory: it fetches raw schema documents,
// parses them (JSON or YAML) and memoizes the resulting containers by root
// reference.
package loader

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	schema "github.com/binbingao/json-schema-validator"
	"github.com/binbingao/json-schema-validator/ref"
)

// ErrLoad reports that a schema document could not be produced.
var ErrLoad = errors.New("loader: cannot load schema")

// Fetcher retrieves the raw bytes of a schema document. Fetchers are
// registered per URI scheme; the empty scheme serves relative references.
type Fetcher interface {
	Fetch(root ref.Ref) ([]byte, error)
}

// Factory loads and memoizes schema containers. Loaded containers are cached
// forever by canonical root reference; failures are never cached, so a
// transient fetch error does not poison later lookups. A Factory is safe for
// concurrent use.
type Factory struct {
	mu       sync.RWMutex
	fetchers map[string]Fetcher
	cache    map[string]*schema.Container
}

// NewFactory returns an empty factory. Register at least one fetcher before
// loading, or pre-seed containers with Register.
func NewFactory() *Factory {
	return &Factory{
		fetchers: make(map[string]Fetcher),
		cache:    make(map[string]*schema.Container),
	}
}

// RegisterFetcher routes the given URI scheme to f. Use "" for relative
// references. A later registration for the same scheme wins.
func (fa *Factory) RegisterFetcher(scheme string, f Fetcher) {
	fa.mu.Lock()
	fa.fetchers[strings.ToLower(scheme)] = f
	fa.mu.Unlock()
}

// Register pre-seeds an already parsed container, keyed by its locator's
// root. This is how a caller introduces its top-level schema document.
func (fa *Factory) Register(c *schema.Container) {
	fa.mu.Lock()
	fa.cache[c.Locator().Root().String()] = c
	fa.mu.Unlock()
}

// Load implements schema.Loader.
func (fa *Factory) Load(root ref.Ref) (*schema.Container, error) {
	key := root.Root().String()

	fa.mu.RLock()
	c, ok := fa.cache[key]
	fa.mu.RUnlock()
	if ok {
		return c, nil
	}

	fa.mu.RLock()
	f, ok := fa.fetchers[root.Scheme()]
	fa.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w %s: no fetcher for scheme %q", ErrLoad, key, root.Scheme())
	}

	data, err := f.Fetch(root.Root())
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrLoad, key, err)
	}
	doc, err := decodeDocument(data, root.Path())
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrLoad, key, err)
	}

	c = schema.NewContainer(root.Root(), doc)
	fa.mu.Lock()
	// A concurrent loader may have won the race; keep the first container so
	// every caller shares one instance.
	if prior, ok := fa.cache[key]; ok {
		c = prior
	} else {
		fa.cache[key] = c
	}
	fa.mu.Unlock()
	return c, nil
}
