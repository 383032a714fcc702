package render

import (
	"fmt"
	"strings"

	"github.com/quillabs/citare/internal/citeir"
	"github.com/quillabs/citare/internal/format"
	"github.com/quillabs/citare/internal/locale"
	"github.com/quillabs/citare/internal/numbers"
	"github.com/quillabs/citare/internal/reference"
	"github.com/quillabs/citare/internal/style"
)

// SortKeyValue evaluates one cs:key against the context's reference,
// normalized for byte-wise comparison. Missing values sort last via the
// empty string, which callers must treat as greater than any value.
func SortKeyValue(ctx *Context, key style.SortKey) string {
	if key.IsMacro() {
		return macroSortKey(ctx, key)
	}

	name := key.Variable
	if nv, ok := reference.ParseNameVar(name); ok {
		return nameSortKey(ctx, ctx.Ref.Name[nv])
	}
	if dv, ok := reference.ParseDateVar(name); ok {
		if dor, present := ctx.Ref.Date[dv]; present {
			return dateSortKey(dor)
		}
		return ""
	}
	if v, ok := ctx.numberValue(name); ok {
		return numericSortKey(v)
	}
	if s, ok := ctx.ordinary(name, locale.FormLong); ok {
		return format.SortString{}.Output(format.Plain(s), false)
	}
	return ""
}

// macroSortKey renders the key's macro with names forced to sort order
// and the key's own et-al overrides active.
func macroSortKey(ctx *Context, key style.SortKey) string {
	savedSorting, savedKey, savedSeen := ctx.sorting, ctx.sortKey, ctx.namesSeen
	ctx.sorting, ctx.sortKey = true, &key
	ctx.namesSeen = 0
	sum := Elements(ctx, ctx.Style.Macros[key.Macro], " ")
	ctx.sorting, ctx.sortKey, ctx.namesSeen = savedSorting, savedKey, savedSeen

	b := citeir.Flatten(sum.Node, ctx.InBib)
	return format.SortString{}.Output(b, false)
}

// nameSortKey joins every name in strict sort order. The delimiter
// between invertible parts never collides with name content because
// SortString drops commas from values.
func nameSortKey(ctx *Context, names []reference.Name) string {
	if len(names) == 0 {
		return ""
	}
	demote := ctx.Style.DemoteNonDroppingParticle != style.DemoteNever
	parts := make([]string, 0, len(names))
	for _, n := range names {
		parts = append(parts, oneNameSortKey(n, demote))
	}
	return format.SortString{}.Output(format.Plain(strings.Join(parts, "   ")), false)
}

func oneNameSortKey(n reference.Name, demote bool) string {
	if n.IsLiteral() {
		return n.Literal
	}
	var segs []string
	push := func(ss ...string) {
		joined := strings.TrimSpace(strings.Join(ss, " "))
		if joined != "" {
			segs = append(segs, joined)
		}
	}
	if demote {
		push(n.Family)
		push(n.Given, n.DroppingParticle, n.NonDroppingParticle)
	} else {
		push(n.NonDroppingParticle, n.Family)
		push(n.Given, n.DroppingParticle)
	}
	push(n.Suffix)
	return strings.Join(segs, ", ")
}

// dateSortKey encodes a date as a fixed-width string that orders
// chronologically, BC years included. Ranges order by start then end.
func dateSortKey(dor reference.DateOrRange) string {
	switch dor.Kind {
	case reference.DateLiteral:
		return strings.ToLower(dor.Literal)
	case reference.DateRange:
		return onDateSortKey(dor.From) + "/" + onDateSortKey(dor.To)
	default:
		return onDateSortKey(dor.From)
	}
}

func onDateSortKey(d reference.Date) string {
	// offset keeps BC years positive and ordered before AD
	return fmt.Sprintf("%05d%02d%02d", int(d.Year)+10000, d.Month, d.Day)
}

// numericSortKey pads every number to a fixed width so "9" orders
// before "10"; non-numeric values fall back to the folded verbatim.
func numericSortKey(v numbers.NumericValue) string {
	if !v.Numeric {
		return format.SortString{}.Output(format.Plain(v.Verbatim), false)
	}
	var sb strings.Builder
	for _, t := range v.Tokens {
		if n, ok := t.Value(); ok {
			fmt.Fprintf(&sb, "%08d", n)
			continue
		}
		sb.WriteByte('-')
	}
	return sb.String()
}
