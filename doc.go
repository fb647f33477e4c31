// Package schemair gathers the nodes of schema graphs for cleaning.
//
// A cleaning pass post-processes a schema graph before it is handed to a
// validation engine, typically removing transient metadata. Gather and
// GatherSchemasForCleaning collect every distinct node reachable from a
// root, following recursive references through a definition registry
// (package schema), and StripAll performs the metadata removal on a copy.
//
// # Traversal
//
// The walk is depth first and pre-order. Sub-schemas are visited in the
// order they are declared: dict keys before values, union choices and
// model fields in list order, a definitions node's entry schema before its
// definitions. Each node is entered once, keyed by identity, so shared
// sub-schemas appear once and cycles through references terminate. After
// the root every definition of the registry is walked, reachable or not,
// unless WithDefinitions(false) is given.
//
// # Concurrency
//
// A walk has private state only. Any number of walks may share one sealed
// registry and one schema graph; GatherAll runs them with an errgroup.
//
// # Example
//
//	root := ir.List(ir.WithMeta(&ir.IntSchema{}, "hint", true))
//	nodes, err := schemair.GatherSchemasForCleaning(root, nil, "hint")
//	// nodes holds the int node only
package schemair
