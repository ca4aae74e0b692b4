// Package kpath provides property path parsing and manipulation.
//
// A path is an ordered list of segments addressing a location within a
// schema or a document:
//   - field - Object property access (first segment bare, later ones ".field")
//   - [index] - Array element
//   - [*] - Any array element
//
// Field names containing separators are quoted: a.'b.c'[0].
//
// # Usage
//
//	// Parse a path
//	p, err := kpath.Parse("orders[*].lines[0].sku")
//
//	// Inspect
//	p.Depth()           // 5
//	p.Last().IsIndex()  // false
//
//	// Trim
//	head, _ := p.DropTail(2) // orders[*].lines
//	tail, _ := p.TakeTail(2) // [0].sku
//
//	// Rewrite "path" fields inside nested report values
//	out, err := kpath.Rewrite(report, kpath.Prefixer(kpath.MustParse("customer")))
package kpath
