// Package citation models cites, clusters and their document ordering.
//
// Clusters live either in the body text or in footnotes; a footnote can
// hold several clusters, so note positions carry a subindex. The total
// ordering over cluster numbers drives cite positions (first, ibid,
// subsequent, near-note) and the first-reference-note-number variable.
package citation
