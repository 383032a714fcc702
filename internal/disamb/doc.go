// Package disamb makes cites unambiguous by refining their IR trees in
// stages: revealing et-al-hidden names, restoring full given names,
// assigning year suffixes and re-evaluating disambiguate conditionals.
//
// Ambiguity is decided against a token index built from the reference
// set. A cite is unambiguous when the references compatible with every
// token it rendered collapse to the cite's own reference. Refinement
// mutates IR nodes in place through the closures the render layer left
// behind; this package knows nothing about style elements.
package disamb
