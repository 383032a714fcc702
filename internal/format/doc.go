// Package format provides the output-format abstraction.
//
// All rendering builds a shared rich-text tree (Build). The tree models
// the "micro" fragments that may appear inside reference fields (italics,
// small-caps, no-case spans) as well as the structure the renderer adds on
// top (groups with delimiters, quotes, affixes, display blocks, links).
//
// A Format turns a Build into its final string: plain text, a sort key,
// HTML, RTF, or Pandoc inline JSON. Build values are immutable once
// constructed; Formats are stateless and safe for concurrent use.
package format
