package loader_test

import (
	"errors"
	"reflect"
	"testing"

	json "github.com/goccy/go-json"

	schema "github.com/binbingao/json-schema-validator"
	"github.com/binbingao/json-schema-validator/loader"
	"github.com/binbingao/json-schema-validator/ref"
)

type countingFetcher struct {
	inner loader.Fetcher
	calls int
}

func (c *countingFetcher) Fetch(root ref.Ref) ([]byte, error) {
	c.calls++
	return c.inner.Fetch(root)
}

type failingFetcher struct{}

func (failingFetcher) Fetch(root ref.Ref) ([]byte, error) {
	return nil, errors.New("boom")
}

func TestFactory_MemoizesByRoot(t *testing.T) {
	cf := &countingFetcher{inner: loader.MapFetcher{
		"a.json": []byte(`{"type":"string"}`),
	}}
	f := loader.NewFactory()
	f.RegisterFetcher("", cf)

	first, err := f.Load(ref.MustParse("a.json"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	second, err := f.Load(ref.MustParse("a.json#/ignored"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if first != second {
		t.Fatalf("expected the cached container instance")
	}
	if cf.calls != 1 {
		t.Fatalf("expected one fetch, got %d", cf.calls)
	}
	if got := first.Locator().String(); got != "a.json" {
		t.Fatalf("locator must be the fragment-free root, got %s", got)
	}
}

func TestFactory_FailureIsNotCached(t *testing.T) {
	f := loader.NewFactory()
	f.RegisterFetcher("", failingFetcher{})
	if _, err := f.Load(ref.MustParse("a.json")); !errors.Is(err, loader.ErrLoad) {
		t.Fatalf("expected ErrLoad, got %v", err)
	}

	// A working fetcher installed afterwards must be consulted.
	f.RegisterFetcher("", loader.MapFetcher{"a.json": []byte(`{}`)})
	if _, err := f.Load(ref.MustParse("a.json")); err != nil {
		t.Fatalf("failure must not poison the cache: %v", err)
	}
}

func TestFactory_UnknownScheme(t *testing.T) {
	f := loader.NewFactory()
	if _, err := f.Load(ref.MustParse("ftp://example.com/a.json")); !errors.Is(err, loader.ErrLoad) {
		t.Fatalf("expected ErrLoad for missing fetcher, got %v", err)
	}
}

func TestFactory_RegisterPreSeeds(t *testing.T) {
	f := loader.NewFactory()
	c := schema.NewContainer(ref.MustParse("seed.json"), map[string]any{"type": "object"})
	f.Register(c)

	got, err := f.Load(ref.MustParse("seed.json"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != c {
		t.Fatalf("expected the pre-seeded container")
	}
}

func TestFactory_ParsesJSONNumbersLosslessly(t *testing.T) {
	f := loader.NewFactory()
	f.RegisterFetcher("", loader.MapFetcher{
		"n.json": []byte(`{"maximum":9007199254740993}`),
	})
	c, err := f.Load(ref.MustParse("n.json"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	doc := c.Document().(map[string]any)
	if got, ok := doc["maximum"].(json.Number); !ok || got.String() != "9007199254740993" {
		t.Fatalf("expected textual number, got %T %v", doc["maximum"], doc["maximum"])
	}
}

func TestFactory_ParsesYAML(t *testing.T) {
	f := loader.NewFactory()
	f.RegisterFetcher("", loader.MapFetcher{
		"s.yaml": []byte("definitions:\n  a:\n    type: string\n"),
	})
	c, err := f.Load(ref.MustParse("s.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := map[string]any{
		"definitions": map[string]any{"a": map[string]any{"type": "string"}},
	}
	if !reflect.DeepEqual(c.Document(), want) {
		t.Fatalf("got %v", c.Document())
	}
}

func TestFactory_BadDocument(t *testing.T) {
	f := loader.NewFactory()
	f.RegisterFetcher("", loader.MapFetcher{"a.json": []byte(`{`)})
	if _, err := f.Load(ref.MustParse("a.json")); !errors.Is(err, loader.ErrLoad) {
		t.Fatalf("expected ErrLoad for unparsable document, got %v", err)
	}
}

// Resolution through the factory end to end: two documents on a MapFetcher.
func TestFactory_DrivesCrossDocumentResolution(t *testing.T) {
	f := loader.NewFactory()
	f.RegisterFetcher("", loader.MapFetcher{
		"a.json": []byte(`{"$ref":"b.json#/x"}`),
		"b.json": []byte(`{"x":{"type":"number"}}`),
	})
	a, err := f.Load(ref.MustParse("a.json"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	ctx := schema.NewContext(f, a)
	report := &schema.Report{}
	out, ok := schema.ResolveRef(ctx, report, schema.NewNode(a, a.Document()))
	if !ok {
		t.Fatalf("resolution failed: %v", report.Issues())
	}
	if got := out.Container().Locator().String(); got != "b.json" {
		t.Fatalf("expected the node to land in b.json, got %s", got)
	}
	if !reflect.DeepEqual(out.Value(), map[string]any{"type": "number"}) {
		t.Fatalf("got %v", out.Value())
	}
}
