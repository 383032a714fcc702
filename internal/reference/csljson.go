package reference

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/quillabs/citare/internal/intern"
)

// FieldError records a per-field validation problem found during ingest.
// A bad field degrades to empty; it never aborts the reference.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ParseJSON decodes one CSL-JSON reference object. Field-level problems
// are returned as FieldErrors alongside a usable reference; only a missing
// or empty id, or malformed JSON, is fatal.
func ParseJSON(data []byte, tbl *intern.Table) (*Reference, []FieldError, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw map[string]json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return nil, nil, errors.Wrap(err, "parse csl-json reference")
	}

	idStr, err := decodeID(raw["id"])
	if err != nil {
		return nil, nil, err
	}
	ref := New(tbl.Intern(idStr), idStr, decodeStringLax(raw["type"]))
	if lang, ok := raw["language"]; ok {
		ref.Language = decodeStringLax(lang)
	}

	var fieldErrs []FieldError
	fail := func(field, format string, args ...any) {
		fieldErrs = append(fieldErrs, FieldError{
			Field:   field,
			Message: fmt.Sprintf(format, args...),
		})
	}

	for key, val := range raw {
		switch key {
		case "id", "type", "language":
			continue
		}
		if v, ok := ParseNameVar(key); ok {
			names, err := decodeNames(val)
			if err != nil {
				fail(key, "invalid name list: %v", err)
				continue
			}
			if len(names) > 0 {
				ref.Name[v] = names
			}
			continue
		}
		if v, ok := ParseDateVar(key); ok {
			dor, err := decodeDate(val)
			if err != nil {
				fail(key, "invalid date: %v", err)
				continue
			}
			ref.Date[v] = dor
			continue
		}
		if v, ok := ParseNumberVar(key); ok {
			nl, err := decodeNumberLike(val)
			if err != nil {
				fail(key, "invalid number: %v", err)
				continue
			}
			ref.Number[v] = nl
			continue
		}
		if v, ok := ParseOrdinaryVar(key); ok {
			s := decodeStringLax(val)
			if s != "" {
				ref.Ordinary[v] = s
			}
			continue
		}
		// unknown variables are ignored, matching citeproc-js behaviour
	}
	return ref, fieldErrs, nil
}

func decodeID(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", errors.New("reference is missing an id")
	}
	s := decodeStringLax(raw)
	if s == "" {
		return "", errors.New("reference id must be a non-empty string or number")
	}
	return s, nil
}

// decodeStringLax accepts strings, numbers and booleans, stringifying
// the latter two. Anything else yields "".
func decodeStringLax(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	switch raw[0] {
	case '"':
		var s string
		if json.Unmarshal(raw, &s) == nil {
			return s
		}
	case 't', 'f':
		return string(raw)
	default:
		var n json.Number
		if json.Unmarshal(raw, &n) == nil {
			return n.String()
		}
	}
	return ""
}

func decodeNames(raw json.RawMessage) ([]Name, error) {
	var items []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, errors.New("expected an array of name objects")
	}
	names := make([]Name, 0, len(items))
	for _, item := range items {
		n := Name{
			Family:              decodeStringLax(item["family"]),
			Given:               decodeStringLax(item["given"]),
			NonDroppingParticle: decodeStringLax(item["non-dropping-particle"]),
			DroppingParticle:    decodeStringLax(item["dropping-particle"]),
			Suffix:              decodeStringLax(item["suffix"]),
			Literal:             decodeStringLax(item["literal"]),
		}
		if n == (Name{}) {
			continue
		}
		names = append(names, n)
	}
	return names, nil
}

func decodeDate(raw json.RawMessage) (DateOrRange, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		// some producers emit a bare string
		if s := decodeStringLax(raw); s != "" {
			return FromRaw(s), nil
		}
		return DateOrRange{}, errors.New("expected a date object")
	}
	circa := false
	if c, ok := obj["circa"]; ok {
		circa = bytes.Equal(bytes.TrimSpace(c), []byte("true"))
	}
	if partsRaw, ok := obj["date-parts"]; ok {
		parts, err := decodeDateParts(partsRaw)
		if err != nil {
			return DateOrRange{}, err
		}
		if dor, ok := FromParts(parts); ok {
			dor.Circa = circa
			return dor, nil
		}
		return DateOrRange{}, errors.New("invalid date-parts")
	}
	if rawStr, ok := obj["raw"]; ok {
		return FromRaw(decodeStringLax(rawStr)), nil
	}
	if lit, ok := obj["literal"]; ok {
		return LiteralDate(decodeStringLax(lit)), nil
	}
	return DateOrRange{}, errors.New("date object has no date-parts, raw or literal")
}

func decodeDateParts(raw json.RawMessage) ([][]int, error) {
	var outer [][]json.Number
	if err := json.Unmarshal(raw, &outer); err != nil {
		return nil, errors.New("date-parts must be an array of arrays")
	}
	parts := make([][]int, 0, len(outer))
	for _, arr := range outer {
		row := make([]int, 0, len(arr))
		for _, num := range arr {
			// tolerate stringified numbers from sloppy producers
			i, err := num.Int64()
			if err != nil {
				return nil, errors.Newf("non-integer date part %q", num.String())
			}
			row = append(row, int(i))
		}
		parts = append(parts, row)
	}
	return parts, nil
}

func decodeNumberLike(raw json.RawMessage) (NumberLike, error) {
	if len(raw) == 0 {
		return NumberLike{}, errors.New("empty value")
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return NumberLike{}, err
		}
		return NumStr(strings.TrimSpace(s)), nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return NumberLike{}, errors.New("expected a string or number")
	}
	i, err := n.Int64()
	if err != nil || i < 0 || i > math.MaxUint32 {
		// negative, fractional and oversized values are kept as strings
		return NumStr(n.String()), nil
	}
	return NumInt(uint32(i)), nil
}
