package schema

import "github.com/binbingao/json-schema-validator/ref"

// Loader produces containers for document root references. Implementations
// are expected to memoize by root reference; caching policy is theirs.
type Loader interface {
	Load(root ref.Ref) (*Container, error)
}

// Context tracks the current container across the stages of one validation
// run and carries the loader every stage resolves further references with.
//
// A Context is mutated in place as references cross document boundaries. It
// is not safe for concurrent use; create one per top-level validation run.
type Context struct {
	loader    Loader
	container *Container
}

// NewContext builds a context starting at the given container.
func NewContext(l Loader, c *Container) *Context {
	return &Context{loader: l, container: c}
}

// Loader returns the schema loader shared by all stages of this run.
func (c *Context) Loader() Loader { return c.loader }

// Container returns the current container.
func (c *Context) Container() *Container { return c.container }

// SetContainer overwrites the current container. There is no rollback; call
// it only after the new container was obtained successfully.
func (c *Context) SetContainer(next *Container) { c.container = next }
