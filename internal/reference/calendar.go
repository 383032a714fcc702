package reference

// Historical to ISO calendar conversion for legacy CSL-JSON dates.
//
// Legacy date-parts sit on an unspecified historical timeline. We use the
// "Canon" timeline: dates on or after 1582-10-15 are Gregorian, everything
// earlier is Julian. Negative years are BC era years (-1 is 1 BC), which
// map to ISO years with a zero year (1 BC is ISO 0000).
//
// When no day is specified there is nothing to convert; only the year is
// fixed up to ISO numbering.

// dateFromHistorical interprets a historical (year, month, day) and
// returns the ISO date. year is an era year and must not be zero.
func dateFromHistorical(year int, month, day uint32) (Date, bool) {
	if year == 0 {
		return Date{}, false
	}
	isoYear := year
	if year < 0 {
		isoYear = year + 1
	}
	if isoYear < -4000 || isoYear > 9999 {
		return Date{}, false
	}
	if month < 1 || month > 12 || day == 0 {
		// no day: skip the calendar step entirely
		return Date{Year: int32(isoYear), Month: month, Day: day}, true
	}
	if gregorianByCanon(isoYear, month, day) {
		return Date{Year: int32(isoYear), Month: month, Day: day}, true
	}
	y, m, d, ok := julianToISO(isoYear, month, day)
	if !ok {
		return Date{}, false
	}
	return Date{Year: int32(y), Month: m, Day: d}, true
}

// gregorianByCanon reports whether a written date falls on or after the
// Gregorian adoption date, 1582-10-15.
func gregorianByCanon(year int, month, day uint32) bool {
	switch {
	case year > 1582:
		return true
	case year < 1582:
		return false
	case month > 10:
		return true
	case month < 10:
		return false
	default:
		return day >= 15
	}
}

// julianToISO converts a Julian calendar date to the proleptic Gregorian
// (ISO) calendar via the Julian day number.
func julianToISO(year int, month, day uint32) (int, uint32, uint32, bool) {
	if day > 31 {
		return 0, 0, 0, false
	}
	a := int64(14-int(month)) / 12
	y := int64(year) + 4800 - a
	m := int64(month) + 12*a - 3
	jdn := int64(day) + (153*m+2)/5 + 365*y + y/4 - 32083

	// JDN to proleptic Gregorian
	j := jdn + 32044
	g := j / 146097
	dg := j % 146097
	c := (dg/36524 + 1) * 3 / 4
	dc := dg - c*36524
	b := dc / 1461
	db := dc % 1461
	ra := (db/365 + 1) * 3 / 4
	da := db - ra*365
	ry := g*400 + c*100 + b*4 + ra
	rm := (da*5 + 308) / 153
	rd := da - (rm+2)*153/5 + 122

	outYear := int(ry - 4800 + (rm+2)/12)
	outMonth := uint32((rm+2)%12 + 1)
	outDay := uint32(rd + 1)
	return outYear, outMonth, outDay, true
}
