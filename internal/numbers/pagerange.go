package numbers

// PageRangeFormat selects a page-range truncation rule.
type PageRangeFormat int

const (
	// PageRangeExpanded leaves the second number fully expanded.
	PageRangeExpanded PageRangeFormat = iota
	// PageRangeMinimal keeps only the digits that differ.
	PageRangeMinimal
	// PageRangeMinimalTwo keeps at least two digits.
	PageRangeMinimalTwo
	// PageRangeChicago applies the Chicago Manual of Style rule table.
	PageRangeChicago
)

// TruncateRange returns the second number of a page range with the format
// applied. The second number is first expanded against the first, so
// (103, 4) is treated as (103, 104).
//
// The Chicago rules operate on digit positions, not string slices, which is
// why this works on a digit iterator rather than formatted strings.
func TruncateRange(prf PageRangeFormat, first, second uint32) uint32 {
	second = expandRange(first, second)
	switch prf {
	case PageRangeChicago:
		mod100 := first % 100
		delta := second - first
		switch {
		case first < 100 || mod100 == 0:
			return second
		case mod100 < 10 && delta < 90:
			return truncateDiff(first, second, 1)
		case closestSmallerPowerOf10(first) == 1000:
			chopped := truncateDiff(first, second, 2)
			if closestSmallerPowerOf10(chopped) == 100 {
				// force 4 digits if 3 are different
				return truncateDiff(first, second, 4)
			}
			return chopped
		default:
			return truncateDiff(first, second, 2)
		}
	case PageRangeMinimal:
		return truncateDiff(first, second, 1)
	case PageRangeMinimalTwo:
		return truncateDiff(first, second, 2)
	default:
		return second
	}
}

// expandRange completes an abbreviated second number using the first:
// expandRange(103, 4) == 104, expandRange(133, 54) == 154.
func expandRange(a, b uint32) uint32 {
	mask := closestSmallerPowerOf10(b) * 10
	return (a - (a % mask)) + (b % mask)
}

// truncateDiff drops the leading digits of b that match a, keeping at
// least min digits. Returns b unchanged when b < a.
func truncateDiff(a, b uint32, min uint32) uint32 {
	if b < a {
		return b
	}
	diffStarted := false
	var acc uint32
	ia := newDigits(a)
	ib := newDigits(b)
	// align the iterators to the same digit length
	for ia.mask > ib.mask {
		ia.next()
	}
	for ib.mask > ia.mask {
		d, _ := ib.next()
		diffStarted = true
		acc = acc*10 + uint32(d)
	}
	minMask := pow10(min)
	if ia.mask*10 == minMask {
		diffStarted = true
	}
	for {
		da, oka := ia.next()
		db, okb := ib.next()
		if !oka || !okb {
			break
		}
		if diffStarted || da != db {
			diffStarted = true
			acc = acc*10 + uint32(db)
		}
		if ia.mask*10 == minMask {
			diffStarted = true
		}
	}
	return acc
}

// digits iterates over the base-10 digits of a number, most significant
// first.
type digits struct {
	mask uint32
	num  uint32
}

func newDigits(num uint32) digits {
	mask := uint32(1)
	if num != 0 {
		mask = closestSmallerPowerOf10(num)
	}
	return digits{mask: mask, num: num}
}

func (d *digits) next() (uint8, bool) {
	if d.mask == 0 {
		return 0, false
	}
	digit := d.num / d.mask % 10
	d.mask /= 10
	return uint8(digit), true
}

func closestSmallerPowerOf10(num uint32) uint32 {
	p := uint32(1)
	for p <= num/10 {
		p *= 10
	}
	return p
}

func pow10(n uint32) uint32 {
	p := uint32(1)
	for ; n > 0; n-- {
		p *= 10
	}
	return p
}
