// Package citeir defines the intermediate representation produced by
// rendering a style element tree against one cite.
//
// The IR keeps disambiguation affordances alive: names blocks, year-suffix
// slots and disambiguate-conditional subtrees stay expandable until the
// disambiguation fixed point, after which everything collapses to Rendered
// nodes. Node is a sealed interface so serializing passes can type switch
// exhaustively.
package citeir
