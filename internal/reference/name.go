package reference

import "github.com/quillabs/citare/internal/script"

// Name is one entry of a name-list variable: either a structured person
// or a literal (institution) name. A name is literal when Literal is
// non-empty and the person fields are unused.
type Name struct {
	Family              string `json:"family,omitempty"`
	Given               string `json:"given,omitempty"`
	NonDroppingParticle string `json:"non-dropping-particle,omitempty"`
	DroppingParticle    string `json:"dropping-particle,omitempty"`
	Suffix              string `json:"suffix,omitempty"`
	Literal             string `json:"literal,omitempty"`
}

// IsLiteral reports whether the name is an institution/literal name.
func (n Name) IsLiteral() bool {
	return n.Literal != ""
}

// IsLatinCyrillic reports whether every part of the name is in the
// latin-cyrillic script family. Non-latin names skip initialization and
// sort-order inversion.
func (n Name) IsLatinCyrillic() bool {
	if n.IsLiteral() {
		return script.IsLatinCyrillic(n.Literal)
	}
	return script.IsLatinCyrillic(n.Family) &&
		script.IsLatinCyrillic(n.Given) &&
		script.IsLatinCyrillic(n.NonDroppingParticle) &&
		script.IsLatinCyrillic(n.DroppingParticle) &&
		script.IsLatinCyrillic(n.Suffix)
}
