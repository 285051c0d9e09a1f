package domain

import (
	"strconv"
	"strings"

	"golang.org/x/text/width"
)

// Branch is one of the twelve earthly branches, numbered 子=1 .. 亥=12.
type Branch int

var branchNames = []string{"", "子", "丑", "寅", "卯", "辰", "巳", "午", "未", "申", "酉", "戌", "亥"}

// Valid reports whether b is within 1..12.
func (b Branch) Valid() bool {
	return b >= 1 && b <= 12
}

func (b Branch) String() string {
	if !b.Valid() {
		return "?"
	}
	return branchNames[b]
}

// ParseBranch accepts a branch character (子丑寅卯辰巳午未申酉戌亥) or its number 1..12.
// Full-width digits are accepted.
func ParseBranch(s string) (Branch, error) {
	s = strings.TrimSpace(width.Narrow.String(s))
	if s == "" {
		return 0, invalid("branch", nil, "empty")
	}
	if n, err := strconv.Atoi(s); err == nil {
		b := Branch(n)
		if !b.Valid() {
			return 0, invalid("branch", n, "number must be within 1..12")
		}
		return b, nil
	}
	for i := 1; i < len(branchNames); i++ {
		if branchNames[i] == s {
			return Branch(i), nil
		}
	}
	return 0, invalid("branch", s, "expected one of 子丑寅卯辰巳午未申酉戌亥 or 1..12")
}

// ParseNumber parses a decimal integer, accepting full-width digits and signs.
func ParseNumber(field, s string) (int, error) {
	s = strings.TrimSpace(width.Narrow.String(s))
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, invalid(field, s, "not an integer")
	}
	return n, nil
}
