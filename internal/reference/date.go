package reference

import (
	"fmt"
	"strconv"
	"strings"
)

// Date is a single date on the ISO calendar (proleptic Gregorian with a
// zero year, so year 0 is 1 BC and -1 is 2 BC).
//
// Month 0 and day 0 mean "unspecified". Months 21-24 are the season codes
// (spring, summer, autumn, winter); legacy CSL-JSON months 13-16 are
// normalized to these on ingest.
type Date struct {
	Year  int32  `json:"year"`
	Month uint32 `json:"month,omitempty"`
	Day   uint32 `json:"day,omitempty"`
}

// Season returns the 1-based season index for season-coded months.
func (d Date) Season() (uint32, bool) {
	if d.Month >= 21 && d.Month <= 24 {
		return d.Month - 20, true
	}
	return 0, false
}

// Compare orders dates by year, then month, then day. Unspecified parts
// sort before specified ones.
func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		if d.Year < o.Year {
			return -1
		}
		return 1
	case d.Month != o.Month:
		if d.Month < o.Month {
			return -1
		}
		return 1
	case d.Day != o.Day:
		if d.Day < o.Day {
			return -1
		}
		return 1
	}
	return 0
}

// DateKind discriminates DateOrRange.
type DateKind int

const (
	// DateSingle is one date.
	DateSingle DateKind = iota
	// DateRange is a closed interval.
	DateRange
	// DateLiteral is an unparseable date kept as its original text.
	DateLiteral
)

// DateOrRange is a single date, a closed interval, or a literal string.
type DateOrRange struct {
	Kind    DateKind
	From    Date   // DateSingle, DateRange
	To      Date   // DateRange
	Literal string // DateLiteral
	// Circa marks an uncertain date ("circa": true in CSL-JSON).
	Circa bool
}

// Single wraps one date.
func Single(d Date) DateOrRange {
	return DateOrRange{Kind: DateSingle, From: d}
}

// Range wraps a closed interval.
func Range(from, to Date) DateOrRange {
	return DateOrRange{Kind: DateRange, From: from, To: to}
}

// LiteralDate wraps an unparseable date string.
func LiteralDate(s string) DateOrRange {
	return DateOrRange{Kind: DateLiteral, Literal: s}
}

// First returns the single date or the start of the range.
func (d DateOrRange) First() (Date, bool) {
	if d.Kind == DateLiteral {
		return Date{}, false
	}
	return d.From, true
}

// FromParts converts historical CSL-JSON date-parts arrays: either
// [[y,m,d]] or [[y,m,d],[y,m,d]] with month and day optional. Returns
// false for empty input, a zero year, or a date that does not exist on the
// historical timeline.
func FromParts(parts [][]int) (DateOrRange, bool) {
	switch len(parts) {
	case 0:
		return DateOrRange{}, false
	case 1:
		d, ok := dateFromParts(parts[0])
		if !ok {
			return DateOrRange{}, false
		}
		return Single(d), true
	default:
		from, ok := dateFromParts(parts[0])
		if !ok {
			return DateOrRange{}, false
		}
		to, ok := dateFromParts(parts[1])
		if !ok {
			return DateOrRange{}, false
		}
		return Range(from, to), true
	}
}

func dateFromParts(parts []int) (Date, bool) {
	if len(parts) == 0 {
		return Date{}, false
	}
	year := parts[0]
	var m, d int
	if len(parts) > 1 {
		m = parts[1]
	}
	if len(parts) > 2 {
		d = parts[2]
	}
	month := 0
	switch {
	case m >= 1 && m <= 12:
		month = m
	case m >= 13 && m <= 16:
		// legacy season encoding
		month = m + 8
	case m >= 21 && m <= 24:
		month = m
	}
	day := 0
	if d >= 1 && d <= 31 {
		day = d
	}
	return dateFromHistorical(year, uint32(month), uint32(day))
}

// FromRaw parses a raw date string: "[-+]?YYYY[-MM[-DD]]", optionally as a
// "from/to" range. Raw strings are already on the ISO calendar, so unlike
// date-parts arrays they skip the historical conversion. Unparseable input
// yields a literal.
func FromRaw(raw string) DateOrRange {
	if from, to, ok := strings.Cut(raw, "/"); ok {
		f, okF := rawSingle(from)
		t, okT := rawSingle(to)
		if okF && okT {
			return Range(f, t)
		}
		return LiteralDate(raw)
	}
	if d, ok := rawSingle(raw); ok {
		return Single(d)
	}
	return LiteralDate(raw)
}

func rawSingle(s string) (Date, bool) {
	s = strings.TrimSpace(s)
	neg := false
	if rest, ok := strings.CutPrefix(s, "-"); ok {
		neg, s = true, rest
	} else if rest, ok := strings.CutPrefix(s, "+"); ok {
		s = rest
	}
	fields := strings.SplitN(s, "-", 3)
	year, err := strconv.Atoi(fields[0])
	if err != nil || fields[0] == "" {
		return Date{}, false
	}
	if neg {
		year = -year
	}
	if year < -4000 || year > 9999 {
		return Date{}, false
	}
	var month, day int
	if len(fields) > 1 {
		month, err = strconv.Atoi(fields[1])
		if err != nil || month < 1 || month > 12 {
			month = 0
		}
	}
	if len(fields) > 2 && month != 0 {
		day, err = strconv.Atoi(fields[2])
		if err != nil || day < 1 || day > 31 {
			day = 0
		}
	}
	return Date{Year: int32(year), Month: uint32(month), Day: uint32(day)}, true
}

// String renders an ISO-ish form for debugging and disamb tokens.
func (d Date) String() string {
	switch {
	case d.Month == 0:
		return fmt.Sprintf("%04d", d.Year)
	case d.Day == 0:
		return fmt.Sprintf("%04d-%02d", d.Year, d.Month)
	default:
		return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
	}
}
