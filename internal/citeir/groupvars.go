package citeir

// GroupVars summarizes variable presence under a group subtree. The
// ordering matters: Combine is a max, with NoneSeen as identity.
type GroupVars uint8

const (
	// NoneSeen means no variable was touched under the subtree.
	NoneSeen GroupVars = iota
	// OnlyEmpty means variables were consulted and all were absent.
	OnlyEmpty
	// DidRender means at least one variable produced output.
	DidRender
)

func (gv GroupVars) String() string {
	switch gv {
	case NoneSeen:
		return "NoneSeen"
	case OnlyEmpty:
		return "OnlyEmpty"
	case DidRender:
		return "DidRender"
	}
	return "GroupVars(?)"
}

// Combine merges two summaries: NoneSeen is identity, DidRender wins.
func (gv GroupVars) Combine(other GroupVars) GroupVars {
	if other > gv {
		return other
	}
	return gv
}

// Suppresses reports whether a group with this summary must render
// nothing. Decorative text inside the group does not save it.
func (gv GroupVars) Suppresses() bool {
	return gv == OnlyEmpty
}
