package format

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// Format serializes a Build. Implementations are stateless.
type Format interface {
	// Name returns the wire name: "plain", "html", "rtf" or "pandoc".
	Name() string
	// Output serializes b. punctInQuote moves trailing periods and
	// commas inside a closing quote (the locale's punctuation-in-quote
	// option).
	Output(b Build, punctInQuote bool) string
}

// ErrUnknownFormat is returned for unrecognized format names.
var ErrUnknownFormat = errors.New("unknown output format")

// ByName resolves a format by wire name.
func ByName(name string) (Format, error) {
	switch name {
	case "plain", "":
		return PlainText{}, nil
	case "html":
		return HTML{}, nil
	case "rtf":
		return RTF{}, nil
	case "pandoc":
		return Pandoc{}, nil
	}
	return nil, errors.Wrapf(ErrUnknownFormat, "%q", name)
}

// movePunctInsideQuotes swaps `”.` into `.”` for the given close-quote
// strings. Operates on serialized output, once per quote occurrence.
func movePunctInsideQuotes(s string, closes ...string) string {
	for _, close := range closes {
		if close == "" {
			continue
		}
		for _, p := range []string{".", ","} {
			s = strings.ReplaceAll(s, close+p, p+close)
		}
	}
	return s
}

// LinkTarget computes the hyperlink target for a linkable variable.
// DOI, PMID and PMCID values get their well-known URL prefixes; URLs
// pass through.
func LinkTarget(variable, value string) string {
	switch variable {
	case "DOI":
		if strings.HasPrefix(value, "http") {
			return value
		}
		return "https://doi.org/" + value
	case "PMID":
		return "https://www.ncbi.nlm.nih.gov/pubmed/" + value
	case "PMCID":
		return "https://www.ncbi.nlm.nih.gov/pmc/articles/" + value
	case "URL":
		return value
	}
	return ""
}
