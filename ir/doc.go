// Package ir provides the intermediate representation (IR) for schemas.
//
// # Overview
//
// A schema is a graph of nodes, each describing one validation rule or
// shape. Every node has a kind (see Kind) and kind-specific fields. The
// set of kinds is closed; consumers switch over the concrete node types.
//
// The IR is a declarative description only. It is handed, once well-formed
// and with its references resolvable, to an external validation engine.
//
// # Kinds
//
//   - Leaf kinds: any, bool, none, literal, int, float, str
//   - Composite kinds: list, set, dict, optional, union, model,
//     model-class, function
//   - Control kinds: recursive-ref, recursive-container, definitions
//
// # Recursion
//
// A node never contains itself. Recursive shapes are written with a
// RecursiveRef naming a definition, which a registry (package schema)
// resolves at traversal time. The syntactic graph is therefore finite and
// any printer or validator walking Schema-typed fields terminates, while
// the resolved graph may be cyclic.
//
// # Shorthand
//
// Where a schema is expected, a schema record may give a bare type name
// such as "int". Package gomap expands these when decoding records, and
// Leaf does so for programmatic callers. Nothing downstream sees
// shorthand.
//
// # Well-formedness
//
// Check verifies one node; Validate verifies a whole syntactic graph.
// Both report a *WellFormednessError carrying the Path to the offending
// field.
package ir
