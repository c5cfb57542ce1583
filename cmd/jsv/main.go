package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"

	schema "github.com/binbingao/json-schema-validator"
	"github.com/binbingao/json-schema-validator/loader"
	"github.com/binbingao/json-schema-validator/ref"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "resolve":
		resolveCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "jsv CLI\n\nUsage:\n  jsv resolve -schema <path-or-url> [-fragment /json/pointer] [-max-hops N]\n\nResolves every $ref reachable from the given schema location and prints the\nfully dereferenced node, or the issues that stopped resolution.")
}

func resolveCmd(args []string) {
	fs := flag.NewFlagSet("resolve", flag.ExitOnError)
	var location string
	var fragment string
	var maxHops int
	fs.StringVar(&location, "schema", "", "schema document path or URL")
	fs.StringVar(&fragment, "fragment", "", "JSON Pointer into the document (default: root)")
	fs.IntVar(&maxHops, "max-hops", 0, "cap on dereference hops, 0 = unlimited")
	_ = fs.Parse(args)
	if location == "" {
		fs.Usage()
		os.Exit(2)
	}

	root, err := ref.Parse(location)
	if err != nil {
		fatal(err)
	}
	frag, err := ref.ParsePointer(fragment)
	if err != nil {
		fatal(err)
	}

	f := loader.NewFactory()
	f.RegisterFetcher("http", loader.HTTPFetcher{})
	f.RegisterFetcher("https", loader.HTTPFetcher{})
	// Relative references resolve against the starting document's directory.
	dir := filepath.Dir(location)
	if root.Scheme() == "" {
		f.RegisterFetcher("", loader.FSFetcher{FS: os.DirFS(dir)})
		root = ref.MustParse(filepath.Base(location))
	}

	container, err := f.Load(root)
	if err != nil {
		fatal(err)
	}
	start, found := frag.Eval(container.Document())
	if !found {
		fatal(fmt.Errorf("no node at %q in %s", fragment, location))
	}

	ctx := schema.NewContext(f, container)
	report := &schema.Report{}
	pipe := schema.NewPipeline(
		schema.RefResolutionStage{Options: schema.ResolveOptions{MaxHops: maxHops}},
		schema.SyntaxStage{},
	)
	node, ok := pipe.Run(ctx, report, schema.NewNode(container, start))
	if !ok {
		for _, is := range report.Issues() {
			fmt.Fprintf(os.Stderr, "%s: %s\n", is.Code, is.Message)
		}
		os.Exit(1)
	}

	out, err := json.MarshalIndent(node.Value(), "", "  ")
	if err != nil {
		fatal(err)
	}
	fmt.Println(string(out))
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "jsv:", err)
	os.Exit(1)
}
