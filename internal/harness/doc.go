// Package harness runs end-to-end citation scenarios described in YAML.
//
// A scenario bundles a style, a reference set, clusters and a document
// order, plus the expected formatted outputs. The runner drives a real
// engine.Processor with deterministic batch tokens, so scenario results
// are stable enough for golden-file comparison.
package harness
