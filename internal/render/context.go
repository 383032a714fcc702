package render

import (
	"log/slog"
	"strings"

	"github.com/quillabs/citare/internal/citation"
	"github.com/quillabs/citare/internal/format"
	"github.com/quillabs/citare/internal/locale"
	"github.com/quillabs/citare/internal/numbers"
	"github.com/quillabs/citare/internal/reference"
	"github.com/quillabs/citare/internal/style"
)

// DisambParams is the per-cite disambiguation state threaded through
// names rendering. The zero value is the initial generation.
type DisambParams struct {
	// AddNames reveals this many names beyond the et-al truncation.
	AddNames int
	// FullGiven renders initialized given names in full.
	FullGiven bool
	// Condition is the state of disambiguate="true" branches.
	Condition bool
}

// Context is everything one cite renders against.
type Context struct {
	Style  *style.Style
	Locale *locale.Merged
	Ref    *reference.Reference
	Cite   *citation.Cite

	Position citation.PositionInfo
	// InBib switches to bibliography layout semantics (display modes,
	// bibliography name defaults).
	InBib bool
	// CitationNumber is the 1-based bibliography entry number, zero
	// when no bibliography order exists yet.
	CitationNumber uint32
	// YearSuffix is the assigned suffix, zero when unassigned.
	YearSuffix uint32

	Disamb DisambParams

	// FormatOpts carries the output options; LinkAnchors gates
	// hyperlinking of DOI/PMID/PMCID/URL values.
	FormatOpts format.FormatOptions

	// AuthorOnly restricts rendering to the first names block;
	// SuppressAuthor removes it. Set by cluster-mode handling.
	AuthorOnly     bool
	SuppressAuthor bool

	Log *slog.Logger

	// namesSeen counts names blocks in render order; suppress-author
	// empties the first one.
	namesSeen int
	// sorting forces names into sort order; sortKey carries the active
	// key's et-al overrides.
	sorting bool
	sortKey *style.SortKey
	// substitutedVars are variables a substitute consumed; they render
	// empty for the rest of this cite.
	substitutedVars map[string]bool
}

func (ctx *Context) markSubstituted(name string) {
	if ctx.substitutedVars == nil {
		ctx.substitutedVars = make(map[string]bool)
	}
	ctx.substitutedVars[name] = true
}

func (ctx *Context) isSubstituted(name string) bool {
	return ctx.substitutedVars[name]
}

func (ctx *Context) logger() *slog.Logger {
	if ctx.Log != nil {
		return ctx.Log
	}
	return slog.Default()
}

// nameOptions is the effective inheritable name defaults for this
// rendering context.
func (ctx *Context) nameOptions() style.NameOptions {
	if ctx.InBib {
		return ctx.Style.NameBibliography()
	}
	return ctx.Style.NameCitation()
}

func (ctx *Context) namesDelimiter() *string {
	if ctx.InBib {
		return ctx.Style.NamesDelimiterBibliography()
	}
	return ctx.Style.NamesDelimiterCitation()
}

// ordinary resolves an ordinary variable, honoring the short form
// convention of <var>-short companion fields.
func (ctx *Context) ordinary(name string, form locale.TermForm) (string, bool) {
	if v, ok := reference.ParseOrdinaryVar(name); ok {
		if form == locale.FormShort {
			if short, ok := reference.ParseOrdinaryVar(name + "-short"); ok {
				if s, present := ctx.Ref.Ordinary[short]; present && s != "" {
					return s, true
				}
			}
		}
		s, present := ctx.Ref.Ordinary[v]
		return s, present && s != ""
	}
	return "", false
}

// numberValue resolves a number variable to its parsed numeric form.
// Locator and the computed variables live outside the reference.
func (ctx *Context) numberValue(name string) (numbers.NumericValue, bool) {
	switch name {
	case "locator":
		if len(ctx.Cite.Locators) > 0 {
			return ctx.Cite.Locators[0].Value, true
		}
		return numbers.NumericValue{}, false
	case "citation-number":
		if ctx.CitationNumber == 0 {
			return numbers.NumericValue{}, false
		}
		return numbers.Num(ctx.CitationNumber), true
	case "first-reference-note-number":
		if ctx.Position.FirstNoteNumber == nil {
			return numbers.NumericValue{}, false
		}
		return numbers.Num(*ctx.Position.FirstNoteNumber), true
	}
	v, ok := reference.ParseNumberVar(name)
	if !ok {
		return numbers.NumericValue{}, false
	}
	nl, present := ctx.Ref.Number[v]
	if !present {
		return numbers.NumericValue{}, false
	}
	and, _ := ctx.Locale.SimpleTerm("and", locale.FormLong, false)
	return numbers.ParseNumeric(nl.Verbatim(), and), true
}

// hasVariable is the presence test behind variable conditions and group
// suppression accounting.
func (ctx *Context) hasVariable(name string) bool {
	switch name {
	case "locator":
		return len(ctx.Cite.Locators) > 0
	case "locator-extra":
		return ctx.Cite.LocatorExtra != ""
	case "citation-number":
		return ctx.CitationNumber != 0
	case "first-reference-note-number":
		return ctx.Position.FirstNoteNumber != nil
	case "year-suffix":
		return ctx.YearSuffix != 0
	}
	return ctx.Ref.HasVariable(name)
}

// evalConditions folds a branch's condition set under its match mode.
func (ctx *Context) evalConditions(c style.Conditions) bool {
	switch c.Match {
	case style.MatchAny:
		for _, cond := range c.Conds {
			if ctx.evalCond(cond) {
				return true
			}
		}
		return false
	case style.MatchNone:
		for _, cond := range c.Conds {
			if ctx.evalCond(cond) {
				return false
			}
		}
		return true
	default: // all
		for _, cond := range c.Conds {
			if !ctx.evalCond(cond) {
				return false
			}
		}
		return true
	}
}

func (ctx *Context) evalCond(cond style.Cond) bool {
	switch cond.Kind {
	case style.CondType:
		return strings.EqualFold(ctx.Ref.CSLType, cond.Value)
	case style.CondVariable:
		return ctx.hasVariable(cond.Value)
	case style.CondIsNumeric:
		v, ok := ctx.numberValue(cond.Value)
		return ok && v.Numeric
	case style.CondIsUncertainDate:
		if dv, ok := reference.ParseDateVar(cond.Value); ok {
			if d, present := ctx.Ref.Date[dv]; present {
				return d.Circa
			}
		}
		return false
	case style.CondPosition:
		want, ok := citation.ParsePosition(cond.Value)
		return ok && ctx.Position.Position.Matches(want)
	case style.CondLocator:
		for _, l := range ctx.Cite.Locators {
			if l.Type == cond.Value {
				return true
			}
		}
		return false
	case style.CondDisambiguate:
		return ctx.Disamb.Condition == cond.Bool
	case style.CondIsPlural:
		if nv, ok := reference.ParseNameVar(cond.Value); ok {
			return len(ctx.Ref.Name[nv]) > 1
		}
		v, ok := ctx.numberValue(cond.Value)
		return ok && v.IsMultiple(isQuantityVar(cond.Value))
	case style.CondHasYearOnly:
		return ctx.datePartCheck(cond.Value, func(d reference.Date) bool {
			return d.Month == 0 && d.Day == 0
		})
	case style.CondHasMonthOrSeason:
		return ctx.datePartCheck(cond.Value, func(d reference.Date) bool {
			return d.Month != 0
		})
	case style.CondHasDay:
		return ctx.datePartCheck(cond.Value, func(d reference.Date) bool {
			return d.Day != 0
		})
	case style.CondJurisdiction:
		return strings.EqualFold(ctx.Ref.Ordinary[reference.OrdinaryVar("jurisdiction")], cond.Value)
	}
	return false
}

func (ctx *Context) datePartCheck(name string, f func(reference.Date) bool) bool {
	dv, ok := reference.ParseDateVar(name)
	if !ok {
		return false
	}
	dor, present := ctx.Ref.Date[dv]
	if !present {
		return false
	}
	d, ok := dor.First()
	return ok && f(d)
}

func isQuantityVar(name string) bool {
	v, ok := reference.ParseNumberVar(name)
	return ok && v.IsQuantity()
}
