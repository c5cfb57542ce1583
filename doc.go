// Package schema implements the reference-resolution stage of a JSON Schema
// validation pipeline:
//
//   - Container/Node value types pairing schema documents with locations
//     inside them
//   - ResolveRef, which follows $ref chains across document boundaries with
//     loop and dangling-pointer detection
//   - a stable report model via Issues (JSON Pointer, code, message)
//   - a statically ordered Pipeline handing resolved nodes to the next stage
//
// Design policy:
//   - Keep only public APIs in the root package; reference algebra lives under
//     ref/, document loading under loader/, and the CLI under cmd/jsv.
//   - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	f := loader.NewFactory()
//	f.RegisterFetcher("", loader.FSFetcher{FS: os.DirFS(".")})
//	c, err := f.Load(ref.MustParse("schema.json"))
//	ctx := schema.NewContext(f, c)
//	report := &schema.Report{}
//	node, ok := schema.NewPipeline().Run(ctx, report, schema.NewNode(c, c.Document()))
package schema
