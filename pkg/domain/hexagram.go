package domain

// names is the 64-hexagram grid: row = upper trigram, column = lower trigram,
// both in canonical order 乾兑离震巽坎艮坤.
var names = [8][8]string{
	//  乾        兑          离          震          巽          坎          艮          坤
	{"乾为天", "天泽履", "天火同人", "天雷无妄", "天风姤", "天水讼", "天山遁", "天地否"},        // 乾
	{"泽天夬", "兑为泽", "泽火革", "泽雷随", "泽风大过", "泽水困", "泽山咸", "泽地萃"},        // 兑
	{"火天大有", "火泽睽", "离为火", "火雷噬嗑", "火风鼎", "火水未济", "火山旅", "火地晋"},    // 离
	{"雷天大壮", "雷泽归妹", "雷火丰", "震为雷", "雷风恒", "雷水解", "雷山小过", "雷地豫"},    // 震
	{"风天小畜", "风泽中孚", "风火家人", "风雷益", "巽为风", "风水涣", "风山渐", "风地观"},    // 巽
	{"水天需", "水泽节", "水火既济", "水雷屯", "水风井", "坎为水", "水山蹇", "水地比"},        // 坎
	{"山天大畜", "山泽损", "山火贲", "山雷颐", "山风蛊", "山水蒙", "艮为山", "山地剥"},        // 艮
	{"地天泰", "地泽临", "地火明夷", "地雷复", "地风升", "地水师", "地山谦", "坤为地"},        // 坤
}

// HexagramName looks up the traditional name for the (upper, lower) pair.
func HexagramName(upper, lower TrigramID) (string, error) {
	if err := checkPair(upper, lower); err != nil {
		return "", err
	}
	return names[upper-1][lower-1], nil
}

func checkPair(upper, lower TrigramID) error {
	if !upper.Valid() {
		return invalid("upper trigram", int(upper), "must be within 1..8")
	}
	if !lower.Valid() {
		return invalid("lower trigram", int(lower), "must be within 1..8")
	}
	return nil
}

// Hexagram is the 6-bit line vector of a hexagram. Bits 0-2 carry the lower
// trigram (bit 0 is the bottom line), bits 3-5 the upper trigram.
type Hexagram uint8

const hexagramMask Hexagram = 0b111111

// Encode packs two trigrams into a Hexagram.
func Encode(upper, lower TrigramID) (Hexagram, error) {
	if err := checkPair(upper, lower); err != nil {
		return 0, err
	}
	return encode(upper, lower), nil
}

func encode(upper, lower TrigramID) Hexagram {
	return Hexagram(trigram(upper).Bits)<<3 | Hexagram(trigram(lower).Bits)
}

// Valid reports whether h fits in six bits.
func (h Hexagram) Valid() bool {
	return h&^hexagramMask == 0
}

// window reads three consecutive lines starting at bit from, bottom line first.
func (h Hexagram) window(from uint) uint8 {
	return uint8(h>>from) & 0b111
}

// Upper returns the outer trigram (lines 4-6).
func (h Hexagram) Upper() TrigramID {
	return mustFromBits(h.window(3))
}

// Lower returns the inner trigram (lines 1-3).
func (h Hexagram) Lower() TrigramID {
	return mustFromBits(h.window(0))
}

// Decode splits h back into its (upper, lower) trigram pair.
func (h Hexagram) Decode() (TrigramID, TrigramID, error) {
	if !h.Valid() {
		return 0, 0, invalid("hexagram", uint8(h), "must fit in six bits")
	}
	return h.Upper(), h.Lower(), nil
}

// Name returns the traditional name of h.
func (h Hexagram) Name() string {
	return names[h.Upper()-1][h.Lower()-1]
}

// Yang reports whether the given line (1 = bottom) is solid.
func (h Hexagram) Yang(line MovingLine) bool {
	return line.Valid() && h&line.mask() != 0
}

// Flip toggles one line, producing the changed hexagram.
func (h Hexagram) Flip(line MovingLine) (Hexagram, error) {
	if !line.Valid() {
		return h, invalid("moving line", int(line), "must be within 1..6")
	}
	return h ^ line.mask(), nil
}

// Mutual extracts the mutual hexagram: lines 2-3-4 form its lower trigram and
// lines 3-4-5 its upper trigram, each read bottom to top.
func (h Hexagram) Mutual() Hexagram {
	return Hexagram(h.window(2))<<3 | Hexagram(h.window(1))
}

// ChangedHexagram flips the moving line of (upper, lower) and returns the
// resulting trigram pair.
func ChangedHexagram(upper, lower TrigramID, line MovingLine) (TrigramID, TrigramID, error) {
	h, err := Encode(upper, lower)
	if err != nil {
		return 0, 0, err
	}
	changed, err := h.Flip(line)
	if err != nil {
		return 0, 0, err
	}
	return changed.Upper(), changed.Lower(), nil
}

// MutualHexagram returns the mutual trigram pair of (upper, lower) and its name.
func MutualHexagram(upper, lower TrigramID) (TrigramID, TrigramID, string, error) {
	h, err := Encode(upper, lower)
	if err != nil {
		return 0, 0, "", err
	}
	m := h.Mutual()
	return m.Upper(), m.Lower(), m.Name(), nil
}

// HexagramView is the resolved form of a hexagram carried in a Reading.
type HexagramView struct {
	Upper TrigramID `json:"upper" yaml:"upper"`
	Lower TrigramID `json:"lower" yaml:"lower"`
	Bits  Hexagram  `json:"bits" yaml:"bits"`
	Name  string    `json:"name" yaml:"name"`
}

// View resolves h into its trigram pair and name.
func (h Hexagram) View() HexagramView {
	return HexagramView{Upper: h.Upper(), Lower: h.Lower(), Bits: h & hexagramMask, Name: h.Name()}
}
