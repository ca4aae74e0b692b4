// Package schema introspects and resolves documents written in an extended
// JSON Schema dialect.
//
// # Schema Nodes
//
// A Schema is an immutable node of one of six kinds:
//   - RefKind: {$ref: "Person"}
//   - AllOfKind / OneOfKind: {allOf: [...]}, {oneOf: [...]}
//   - ObjectKind: {type: object, properties: {...}, required: [...]}
//   - ArrayKind: {type: array, items: {...}}
//   - LeafKind: any other type
//
// Besides structure, a node may carry the keywords
//   - entityType, storage (copy | ref | inverse-ref), foreignKey: the node
//     denotes a relationship to another document
//   - transient: the property is not persisted
//
// Unrecognized keywords are kept as-is and returned by Extra.
//
// # Resolution
//
// Algorithms never resolve references themselves; they are handed a
// Resolver (or, for Expand, a Loader). A Registry binds its own resolver
// to each algorithm:
//
//	reg := schema.NewRegistry(schema.WithTranslator(schema.TrimFragment))
//	person, _ := schema.Parse(personYAML)
//	reg.Register("Person", person)
//
//	rels, err := reg.FindRelationships(person, schema.MaxDepth(2))
//	name := reg.FindProperty(person, kpath.MustParse("manager.name"))
//	ok := reg.IsRequired(person, kpath.MustParse("name"))
//
// # Cycles
//
// A schema graph may be cyclic through $ref. Relationship and transient
// traversal stop at MaxDepth or LimitTo when given, and otherwise never
// enter a node already entered on the current branch. Expand keeps cycles in
// its output; use Encode to render such a graph.
package schema
