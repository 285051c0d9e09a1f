package domain

// HeightBand is the vertical zone suggested by the moving line.
type HeightBand int

const (
	HeightLow HeightBand = iota + 1
	HeightMid
	HeightHigh
)

var heightKeys = []string{"", "low", "mid", "high"}
var heightTexts = []string{
	"",
	"低处/地面/袋底/抽屉底层/床沿下/沙发下",
	"中层/桌面高度/柜中层/沙发座面/床面附近",
	"高处/上层/挂起衣物口袋/书架上层/柜顶",
}

// HeightOf maps lines 1-2 to low, 3-4 to mid and 5-6 to high.
func HeightOf(line MovingLine) HeightBand {
	switch {
	case line <= 2:
		return HeightLow
	case line <= 4:
		return HeightMid
	default:
		return HeightHigh
	}
}

func (h HeightBand) String() string {
	if h < HeightLow || h > HeightHigh {
		return "?"
	}
	return heightTexts[h]
}

func (h HeightBand) Key() string {
	if h < HeightLow || h > HeightHigh {
		return ""
	}
	return heightKeys[h]
}

func (h HeightBand) MarshalText() ([]byte, error) {
	return marshalKey(heightKeys, "height", h)
}

func (h *HeightBand) UnmarshalText(text []byte) error {
	return unmarshalKey(heightKeys, "height", text, h)
}

// Locus attributes the displacement either to the surroundings or to the seeker.
type Locus int

const (
	// LocusEnvironment: the moving line is in the outer trigram. Something or
	// someone else moved the object; search along traffic paths.
	LocusEnvironment Locus = iota + 1
	// LocusPersonal: the moving line is in the inner trigram. The seeker's own
	// storing, layering or stacking hid it; search personal storage.
	LocusPersonal
)

var locusKeys = []string{"", "environment", "personal"}
var locusTexts = []string{
	"",
	"动爻在外卦：更像环境/容器/他人挪动导致，需要按“场景动线”搜。",
	"动爻在内卦：更像你自己收纳/夹层/叠放导致，按“个人物品系统”搜。",
}

// LocusOf applies the inner/outer split: lines 4..6 are environmental.
func LocusOf(line MovingLine) Locus {
	if line.InOuter() {
		return LocusEnvironment
	}
	return LocusPersonal
}

func (l Locus) String() string {
	if l < LocusEnvironment || l > LocusPersonal {
		return "?"
	}
	return locusTexts[l]
}

func (l Locus) Key() string {
	if l < LocusEnvironment || l > LocusPersonal {
		return ""
	}
	return locusKeys[l]
}

func (l Locus) MarshalText() ([]byte, error) {
	return marshalKey(locusKeys, "locus", l)
}

func (l *Locus) UnmarshalText(text []byte) error {
	return unmarshalKey(locusKeys, "locus", text, l)
}

// Hint is the structured search advice derived from a casting.
type Hint struct {
	// Body is the inner (lower) trigram: the seeker.
	Body Trigram `json:"body" yaml:"body"`
	// Use is the outer (upper) trigram: the object and its surroundings.
	Use      Trigram    `json:"use" yaml:"use"`
	Relation Relation   `json:"relation" yaml:"relation"`
	Primary  Direction  `json:"primary_direction" yaml:"primary_direction"`
	// Secondary is the changed hexagram's use direction, set only when it
	// differs from Primary.
	Secondary       *Direction `json:"secondary_direction,omitempty" yaml:"secondary_direction,omitempty"`
	SecondaryPlaces string     `json:"secondary_places,omitempty" yaml:"secondary_places,omitempty"`
	Moving          MovingLine `json:"moving" yaml:"moving"`
	Height          HeightBand `json:"height" yaml:"height"`
	Locus           Locus      `json:"locus" yaml:"locus"`
}

// BuildHint composes the hint for a casting and its changed hexagram.
func BuildHint(upper, lower TrigramID, moving MovingLine, changedUpper, changedLower TrigramID) (Hint, error) {
	if err := checkPair(upper, lower); err != nil {
		return Hint{}, err
	}
	if err := checkPair(changedUpper, changedLower); err != nil {
		return Hint{}, err
	}
	if !moving.Valid() {
		return Hint{}, invalid("moving line", int(moving), "must be within 1..6")
	}

	body := trigram(lower)
	use := trigram(upper)
	changedUse := trigram(changedUpper)

	h := Hint{
		Body:     body,
		Use:      use,
		Relation: ElementRelation(body.Element, use.Element),
		Primary:  use.Direction,
		Moving:   moving,
		Height:   HeightOf(moving),
		Locus:    LocusOf(moving),
	}
	if changedUse.Direction != use.Direction {
		d := changedUse.Direction
		h.Secondary = &d
		h.SecondaryPlaces = changedUse.Places
	}
	return h, nil
}
