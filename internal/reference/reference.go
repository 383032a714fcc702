package reference

import (
	"strconv"

	"github.com/quillabs/citare/internal/intern"
)

// NumberLike holds a numeric variable's raw content: either an integer or
// a string yet to be lexed ("12-14", "iv").
type NumberLike struct {
	IsNum bool
	Num   uint32
	Str   string
}

// NumStr builds a string NumberLike.
func NumStr(s string) NumberLike { return NumberLike{Str: s} }

// NumInt builds an integer NumberLike.
func NumInt(n uint32) NumberLike { return NumberLike{IsNum: true, Num: n} }

// Verbatim returns the content as written.
func (n NumberLike) Verbatim() string {
	if n.IsNum {
		return strconv.FormatUint(uint64(n.Num), 10)
	}
	return n.Str
}

// Reference is one bibliographic item. Each variable lives in exactly one
// of the four maps. References are immutable once built.
type Reference struct {
	ID       intern.Atom
	IDStr    string
	CSLType  string
	Language string

	Ordinary map[OrdinaryVar]string
	Number   map[NumberVar]NumberLike
	Name     map[NameVar][]Name
	Date     map[DateVar]DateOrRange
}

// New creates an empty reference with allocated maps.
func New(id intern.Atom, idStr, cslType string) *Reference {
	return &Reference{
		ID:       id,
		IDStr:    idStr,
		CSLType:  cslType,
		Ordinary: make(map[OrdinaryVar]string),
		Number:   make(map[NumberVar]NumberLike),
		Name:     make(map[NameVar][]Name),
		Date:     make(map[DateVar]DateOrRange),
	}
}

// HasVariable reports whether the named variable is present in any map.
// Used by condition checking and group suppression.
func (r *Reference) HasVariable(name string) bool {
	if v, ok := ParseOrdinaryVar(name); ok {
		if _, present := r.Ordinary[v]; present {
			return true
		}
	}
	if v, ok := ParseNumberVar(name); ok {
		if _, present := r.Number[v]; present {
			return true
		}
	}
	if v, ok := ParseNameVar(name); ok {
		if ns, present := r.Name[v]; present && len(ns) > 0 {
			return true
		}
	}
	if v, ok := ParseDateVar(name); ok {
		if _, present := r.Date[v]; present {
			return true
		}
	}
	return false
}
