// Package render evaluates compiled style elements against one cite,
// producing the intermediate tree that disambiguation refines and the
// output formats flatten.
//
// Rendering is pure: for a fixed style, locale, reference and cite
// context the resulting tree is deterministic. Expandable blocks (names,
// year-suffix slots, disambiguate conditionals) carry closures over this
// package's walkers so the disambiguation engine can re-render subtrees
// without knowing how elements work.
package render
