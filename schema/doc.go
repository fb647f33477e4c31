// Package schema provides the definition registry resolving recursive
// references in schema graphs.
//
// # Definitions
//
// A definition binds a name to a schema. Definitions come from three
// places:
//
//   - an external list handed to Build (for example the "definitions" of
//     a schema document),
//   - the entries of a definitions node inside a schema graph,
//   - recursive containers, which bind their name to their schema inline.
//
// A RecursiveRef names a definition. It is resolved when a traversal
// reaches it, not when the graph is built, so forward and mutual
// references are legal:
//
//	root := ir.Definitions(ir.Ref("tree"),
//		ir.Definition{Name: "tree", Schema: ir.Model("tree",
//			ir.Field{Name: "children", Schema: ir.List(ir.Ref("tree"))},
//		)},
//	)
//	reg, err := schema.Build(root, nil)
//	tree, err := reg.Resolve("tree")
//
// # Lifecycle
//
// A Registry is populated once, then sealed and read. Build seals the
// registry it returns. Readers never lock; writers must not overlap with
// readers.
//
// # Errors
//
// Binding a name to two structurally different schemas fails with a
// *DuplicateDefinitionError. Resolving an unbound name fails with an
// *UnknownReferenceError. Both carry the path of the offending binding or
// reference.
package schema
