// Package engine is the incremental citation processor.
//
// A Processor is a single-threaded database of inputs (style text,
// references, clusters, cluster order) plus memoized derived values.
// Every input setter bumps a revision clock; derived values record the
// revision they were built at and are reused until an input of their
// durability class moves past it. Changing the style (high durability)
// invalidates everything; replacing a reference (medium) keeps the
// compiled style and merged locales; reordering clusters (low) keeps
// per-reference sort keys too.
//
// BatchedUpdates drains the set of clusters whose formatted output
// changed since the previous drain, so hosts can patch their documents
// without re-reading every cluster.
package engine
