package domain

// MovingLine is the changing line of a casting, 1 (bottom) to 6 (top).
type MovingLine int

// Valid reports whether l is within 1..6.
func (l MovingLine) Valid() bool {
	return l >= 1 && l <= 6
}

func (l MovingLine) mask() Hexagram {
	return 1 << uint(l-1)
}

// InOuter reports whether the line sits in the outer (upper) trigram.
func (l MovingLine) InOuter() bool {
	return l >= 4
}

// Method names the casting procedure that produced a Casting.
type Method int

const (
	MethodThreeNumbers Method = iota + 1
	MethodCalendar
)

var methodKeys = []string{"", "three_numbers", "calendar"}

func (m Method) String() string {
	switch m {
	case MethodThreeNumbers:
		return "三数起卦"
	case MethodCalendar:
		return "年月日时起卦"
	default:
		return "?"
	}
}

// Key returns the stable ASCII identifier used in JSON, YAML and metric labels.
func (m Method) Key() string {
	if m < MethodThreeNumbers || m > MethodCalendar {
		return ""
	}
	return methodKeys[m]
}

func (m Method) MarshalText() ([]byte, error) {
	return marshalKey(methodKeys, "method", m)
}

func (m *Method) UnmarshalText(text []byte) error {
	return unmarshalKey(methodKeys, "method", text, m)
}

// Casting is the immutable result of a casting procedure.
type Casting struct {
	Method Method     `json:"method" yaml:"method"`
	Upper  TrigramID  `json:"upper" yaml:"upper"`
	Lower  TrigramID  `json:"lower" yaml:"lower"`
	Moving MovingLine `json:"moving" yaml:"moving"`
}

// Validate checks that every field is in range.
func (c Casting) Validate() error {
	if err := checkPair(c.Upper, c.Lower); err != nil {
		return err
	}
	if !c.Moving.Valid() {
		return invalid("moving line", int(c.Moving), "must be within 1..6")
	}
	return nil
}

// Hexagram returns the primary hexagram of the casting.
func (c Casting) Hexagram() (Hexagram, error) {
	if err := c.Validate(); err != nil {
		return 0, err
	}
	return encode(c.Upper, c.Lower), nil
}

// ModAs reduces n modulo m onto 1..m: a zero remainder becomes m itself.
// Negative n is folded onto the non-negative remainder first.
func ModAs(n, m int) int {
	r := n % m
	if r < 0 {
		r += m
	}
	if r == 0 {
		return m
	}
	return r
}

// CastThree casts from three numbers: the first picks the upper trigram, the
// second the lower trigram, the third the moving line.
func CastThree(n1, n2, n3 int) Casting {
	return Casting{
		Method: MethodThreeNumbers,
		Upper:  TrigramID(ModAs(n1, 8)),
		Lower:  TrigramID(ModAs(n2, 8)),
		Moving: MovingLine(ModAs(n3, 6)),
	}
}

// CastCalendar casts from the lunar year branch, month, day and hour branch.
// Both branches must already be numbered 1..12; month and day are taken as given.
func CastCalendar(yearBranch Branch, month, day int, hourBranch Branch) (Casting, error) {
	if !yearBranch.Valid() {
		return Casting{}, invalid("year branch", int(yearBranch), "must be within 1..12")
	}
	if !hourBranch.Valid() {
		return Casting{}, invalid("hour branch", int(hourBranch), "must be within 1..12")
	}
	s1 := int(yearBranch) + month + day
	s2 := s1 + int(hourBranch)
	return Casting{
		Method: MethodCalendar,
		Upper:  TrigramID(ModAs(s1, 8)),
		Lower:  TrigramID(ModAs(s2, 8)),
		Moving: MovingLine(ModAs(s2, 6)),
	}, nil
}
