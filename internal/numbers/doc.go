// Package numbers provides the numeric leaf utilities used by the renderer.
//
// It contains:
//   - Roman numeral conversion (lowercase canonical form, so text-casing
//     can uppercase later)
//   - Bijective base-26 encoding for year suffixes (1 -> "a", 27 -> "aa")
//   - Page-range truncation per the CSL page-range-format table
//   - A lexer for numeric variable content ("2-5, 9" and friends)
//
// All functions are pure. The package imports nothing internal.
package numbers
