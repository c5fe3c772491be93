package layout

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidConstraint is returned when a constraint string cannot be parsed.
var ErrInvalidConstraint = errors.New("invalid constraint")

// ConstraintKind identifies how a Constraint sizes its segment.
type ConstraintKind uint8

// Constraint kinds.
const (
	KindLength     ConstraintKind = iota // exactly Value cells
	KindPercentage                       // Value percent of the available length
	KindRatio                            // Num/Den of the available length
	KindMin                              // at least Value cells
	KindMax                              // at most Value cells
	KindFill                             // share of the leftover space, weighted by Value
)

var kindNames = [...]string{
	KindLength:     "Length",
	KindPercentage: "Percentage",
	KindRatio:      "Ratio",
	KindMin:        "Min",
	KindMax:        "Max",
	KindFill:       "Fill",
}

// String returns the kind name.
func (k ConstraintKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// Constraint is a sizing rule for one segment of a Layout.
type Constraint struct {
	Kind  ConstraintKind
	Value uint16
	Num   uint32
	Den   uint32
}

// Length requests exactly n cells.
func Length(n uint16) Constraint { return Constraint{Kind: KindLength, Value: n} }

// Percentage requests p percent of the available length. Values above 100 act as 100.
func Percentage(p uint16) Constraint { return Constraint{Kind: KindPercentage, Value: p} }

// Ratio requests num/den of the available length. A zero denominator yields zero cells.
func Ratio(num, den uint32) Constraint { return Constraint{Kind: KindRatio, Num: num, Den: den} }

// Min requests at least n cells.
func Min(n uint16) Constraint { return Constraint{Kind: KindMin, Value: n} }

// Max requests at most n cells.
func Max(n uint16) Constraint { return Constraint{Kind: KindMax, Value: n} }

// Fill takes a share of the space the other constraints leave, proportional to weight.
func Fill(weight uint16) Constraint { return Constraint{Kind: KindFill, Value: weight} }

// Lengths returns one Length constraint per value.
func Lengths(ns ...uint16) []Constraint { return each(Length, ns) }

// Percentages returns one Percentage constraint per value.
func Percentages(ps ...uint16) []Constraint { return each(Percentage, ps) }

// Mins returns one Min constraint per value.
func Mins(ns ...uint16) []Constraint { return each(Min, ns) }

// Maxes returns one Max constraint per value.
func Maxes(ns ...uint16) []Constraint { return each(Max, ns) }

// Fills returns one Fill constraint per weight.
func Fills(ws ...uint16) []Constraint { return each(Fill, ws) }

func each(f func(uint16) Constraint, vs []uint16) []Constraint {
	out := make([]Constraint, len(vs))
	for i, v := range vs {
		out[i] = f(v)
	}
	return out
}

// String returns the constraint in the form accepted by ParseConstraint.
func (c Constraint) String() string {
	if c.Kind == KindRatio {
		return fmt.Sprintf("Ratio(%d/%d)", c.Num, c.Den)
	}
	return fmt.Sprintf("%s(%d)", c.Kind, c.Value)
}

// ParseConstraint parses a constraint such as "Length(4)", "50%", "Ratio(1/3)",
// "min(2)" or "fill(1)". Kind names are case-insensitive.
func ParseConstraint(s string) (Constraint, error) {
	s = strings.TrimSpace(s)
	if v, ok := strings.CutSuffix(s, "%"); ok {
		n, err := parseU16(v)
		if err != nil {
			return Constraint{}, fmt.Errorf("%w %q: %v", ErrInvalidConstraint, s, err)
		}
		return Percentage(n), nil
	}

	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return Constraint{}, fmt.Errorf("%w %q: expected Kind(value)", ErrInvalidConstraint, s)
	}
	name := strings.ToLower(strings.TrimSpace(s[:open]))
	arg := strings.TrimSpace(s[open+1 : len(s)-1])

	if name == "ratio" {
		a, b, ok := strings.Cut(arg, "/")
		if !ok {
			a, b, ok = strings.Cut(arg, ",")
		}
		if !ok {
			return Constraint{}, fmt.Errorf("%w %q: ratio needs num/den", ErrInvalidConstraint, s)
		}
		num, err := strconv.ParseUint(strings.TrimSpace(a), 10, 32)
		if err != nil {
			return Constraint{}, fmt.Errorf("%w %q: %v", ErrInvalidConstraint, s, err)
		}
		den, err := strconv.ParseUint(strings.TrimSpace(b), 10, 32)
		if err != nil {
			return Constraint{}, fmt.Errorf("%w %q: %v", ErrInvalidConstraint, s, err)
		}
		return Ratio(uint32(num), uint32(den)), nil
	}

	n, err := parseU16(arg)
	if err != nil {
		return Constraint{}, fmt.Errorf("%w %q: %v", ErrInvalidConstraint, s, err)
	}
	switch name {
	case "length", "len":
		return Length(n), nil
	case "percentage", "percent":
		return Percentage(n), nil
	case "min":
		return Min(n), nil
	case "max":
		return Max(n), nil
	case "fill":
		return Fill(n), nil
	}
	return Constraint{}, fmt.Errorf("%w %q: unknown kind %q", ErrInvalidConstraint, s, name)
}

// ParseConstraints parses every entry of list.
func ParseConstraints(list []string) ([]Constraint, error) {
	out := make([]Constraint, 0, len(list))
	for _, s := range list {
		c, err := ParseConstraint(s)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func parseU16(s string) (uint16, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 16)
	if err != nil {
		return 0, err
	}
	return uint16(n), nil
}
