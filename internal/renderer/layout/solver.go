package layout

import "math"

// solve distributes total cells along one axis.
//
// It returns one length per constraint and len(cs)+1 gap lengths
// (leading, inner..., trailing). Segment and gap lengths always sum to total.
func solve(total int, cs []Constraint, spacing int, flex Flex) (sizes, gaps []int) {
	n := len(cs)
	sizes = make([]int, n)
	gaps = make([]int, n+1)
	if n == 0 {
		return sizes, gaps
	}

	// Fixed spacing, never more than the axis. SpaceAround also puts it
	// before the first and after the last segment.
	spaced := gaps[1:n]
	if flex == FlexSpaceAround {
		spaced = gaps
	}
	spaceTotal := min(spacing*len(spaced), total)
	addEven(spaced, spaceTotal)
	avail := total - spaceTotal

	used := 0
	for i, c := range cs {
		sizes[i] = baseSize(c, avail)
		used += sizes[i]
	}

	if used > avail {
		excess := used - avail
		for _, class := range shrinkOrder {
			excess = shrink(sizes, cs, class, excess)
			if excess == 0 {
				break
			}
		}
		return sizes, gaps
	}

	remaining := avail - used
	if fills := fillIndices(cs); len(fills) > 0 {
		distributeFill(sizes, cs, fills, remaining)
		return sizes, gaps
	}

	placeGap(gaps, remaining, flex)
	return sizes, gaps
}

// baseSize is the size a constraint asks for before any conflict resolution.
func baseSize(c Constraint, avail int) int {
	switch c.Kind {
	case KindLength, KindMin, KindMax:
		return int(c.Value)
	case KindPercentage:
		p := min(int(c.Value), 100)
		return int(math.Round(float64(avail) * float64(p) / 100))
	case KindRatio:
		if c.Den == 0 {
			return 0
		}
		num := min(c.Num, c.Den)
		return int(math.Round(float64(avail) * float64(num) / float64(c.Den)))
	default:
		return 0
	}
}

// shrinkOrder lists which constraints give up space first when the
// requested sizes exceed the axis.
var shrinkOrder = [][]ConstraintKind{
	{KindMax},
	{KindMin},
	{KindLength, KindPercentage, KindRatio},
}

// shrink reduces the sizes of constraints in class by up to excess cells,
// proportionally to their current size. It returns the excess still left.
func shrink(sizes []int, cs []Constraint, class []ConstraintKind, excess int) int {
	idx := make([]int, 0, len(cs))
	classTotal := 0
	for i, c := range cs {
		if kindIn(c.Kind, class) && sizes[i] > 0 {
			idx = append(idx, i)
			classTotal += sizes[i]
		}
	}
	if classTotal == 0 {
		return excess
	}

	cut := min(excess, classTotal)
	target := classTotal - cut

	// Largest remainder apportionment of target over the class.
	rems := make([]int, len(idx))
	assigned := 0
	for j, i := range idx {
		scaled := sizes[i] * target
		rems[j] = scaled % classTotal
		sizes[i] = scaled / classTotal
		assigned += sizes[i]
	}
	for left := target - assigned; left > 0; left-- {
		best := -1
		for j := range idx {
			// Ties go to the later segment.
			if rems[j] >= 0 && (best < 0 || rems[j] >= rems[best]) {
				best = j
			}
		}
		sizes[idx[best]]++
		rems[best] = -1
	}
	return excess - cut
}

func kindIn(k ConstraintKind, class []ConstraintKind) bool {
	for _, c := range class {
		if c == k {
			return true
		}
	}
	return false
}

func fillIndices(cs []Constraint) []int {
	var idx []int
	for i, c := range cs {
		if c.Kind == KindFill {
			idx = append(idx, i)
		}
	}
	return idx
}

// distributeFill hands remaining cells to the Fill constraints by weight.
// The last Fill absorbs the rounding remainder. When every weight is zero
// the fills share equally.
func distributeFill(sizes []int, cs []Constraint, fills []int, remaining int) {
	weights := make([]int, len(fills))
	total := 0
	for j, i := range fills {
		weights[j] = int(cs[i].Value)
		total += weights[j]
	}
	if total == 0 {
		for j := range weights {
			weights[j] = 1
		}
		total = len(weights)
	}

	given := 0
	last := len(fills) - 1
	for j, i := range fills {
		if j == last {
			sizes[i] = remaining - given
			break
		}
		sizes[i] = remaining * weights[j] / total
		given += sizes[i]
	}
}

// placeGap adds the unclaimed cells g to gaps according to flex.
func placeGap(gaps []int, g int, flex Flex) {
	if g <= 0 {
		return
	}
	n := len(gaps) - 1
	switch flex {
	case FlexEnd:
		gaps[0] += g
	case FlexCenter:
		gaps[0] += g / 2
		gaps[n] += g - g/2
	case FlexSpaceBetween:
		if n < 2 {
			gaps[n] += g
			return
		}
		addEven(gaps[1:n], g)
	case FlexSpaceAround:
		addEven(gaps, g)
	default:
		gaps[n] += g
	}
}

// addEven spreads total over dst as evenly as possible.
// Leftover cells go to the entries nearest the end.
func addEven(dst []int, total int) {
	k := len(dst)
	if k == 0 {
		return
	}
	base, rem := total/k, total%k
	for i := range dst {
		dst[i] += base
		if i >= k-rem {
			dst[i]++
		}
	}
}
