// Package style compiles CSL XML into a validated style tree.
//
// Compilation collects every problem it can find instead of failing fast:
// the result of a bad parse is the full list of InvalidCsl diagnostics,
// each carrying a byte range into the source so the CLI can render
// line/column underlines. Macro recursion is rejected here, at compile
// time, so rendering never needs a runtime stack guard.
package style
