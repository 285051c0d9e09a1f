package domain

// TrigramID identifies one of the eight trigrams in the canonical order
// 乾兑离震巽坎艮坤 (1..8).
type TrigramID int

const (
	Qian TrigramID = iota + 1 // 乾 ☰
	Dui                       // 兑 ☱
	Li                        // 离 ☲
	Zhen                      // 震 ☳
	Xun                       // 巽 ☴
	Kan                       // 坎 ☵
	Gen                       // 艮 ☶
	Kun                       // 坤 ☷
)

// Valid reports whether id is within 1..8.
func (id TrigramID) Valid() bool {
	return id >= Qian && id <= Kun
}

// String returns the trigram's single-character name, or "?" when out of range.
func (id TrigramID) String() string {
	if !id.Valid() {
		return "?"
	}
	return catalog[id-1].Name
}

// Direction is one of the eight compass points of the Later Heaven arrangement.
type Direction int

const (
	North Direction = iota + 1
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

var directionKeys = []string{"", "north", "northeast", "east", "southeast", "south", "southwest", "west", "northwest"}
var directionNames = []string{"", "正北", "东北", "正东", "东南", "正南", "西南", "正西", "西北"}

func (d Direction) String() string {
	if d < North || d > NorthWest {
		return "?"
	}
	return directionNames[d]
}

// Key returns the stable ASCII identifier used in JSON and YAML.
func (d Direction) Key() string {
	if d < North || d > NorthWest {
		return ""
	}
	return directionKeys[d]
}

func (d Direction) MarshalText() ([]byte, error) {
	return marshalKey(directionKeys, "direction", d)
}

func (d *Direction) UnmarshalText(text []byte) error {
	return unmarshalKey(directionKeys, "direction", text, d)
}

// Trigram is a catalog entry. Bits holds the three lines with bit 0 as the bottom
// line; a set bit is a solid (yang) line.
type Trigram struct {
	ID        TrigramID `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	Symbol    string    `json:"symbol" yaml:"symbol"`
	Bits      uint8     `json:"bits" yaml:"bits"`
	Element   Element   `json:"element" yaml:"element"`
	Direction Direction `json:"direction" yaml:"direction"`
	Keywords  string    `json:"keywords" yaml:"keywords"`
	Places    string    `json:"places" yaml:"places"`
}

var catalog = [8]Trigram{
	{Qian, "乾", "☰", 0b111, Metal, NorthWest, "高、硬、圆、金属、权证", "高处/柜顶/书架上层/金属盒/证件夹/电脑包"},
	{Dui, "兑", "☱", 0b110, Metal, West, "口、开口、缺口、夹具、票据", "开口处/抽屉口/夹层/文件夹口/收纳盒开口"},
	{Li, "离", "☲", 0b101, Fire, South, "明、光、热、电、纸文", "灯下/窗边/桌面明处/充电区/打印区/书本纸张处"},
	{Zhen, "震", "☳", 0b100, Wood, East, "动、门、出入、震动", "门口动线/玄关/出入处/你走动时放过的位置"},
	{Xun, "巽", "☴", 0b011, Wood, SouthEast, "入、缝、渗透、绳、细长", "缝隙/夹缝/袋中袋/抽屉边/沙发缝/床缝"},
	{Kan, "坎", "☵", 0b010, Water, North, "陷、隐、液体、深处", "低处/角落深处/桶盆旁/洗手间/厨房水槽附近"},
	{Gen, "艮", "☶", 0b001, Earth, NorthEast, "止、角、门槛、柜、墙", "墙角/柜子/门背后/台阶边/收纳最里面"},
	{Kun, "坤", "☷", 0b000, Earth, SouthWest, "地、低、柔、布、收纳", "地面附近/床上被褥/衣物堆/袋底/抽屉最底层"},
}

// byBits is the inverse of the catalog's bit patterns, built once at init.
var byBits [8]TrigramID

func init() {
	for _, t := range catalog {
		if byBits[t.Bits] != 0 {
			panic("domain: duplicate trigram bit pattern " + t.Name)
		}
		byBits[t.Bits] = t.ID
	}
}

// Trigrams returns a copy of the full catalog in canonical order.
func Trigrams() []Trigram {
	out := make([]Trigram, len(catalog))
	copy(out, catalog[:])
	return out
}

// LookupTrigram returns the catalog entry for id.
func LookupTrigram(id TrigramID) (Trigram, error) {
	if !id.Valid() {
		return Trigram{}, invalid("trigram", int(id), "must be within 1..8")
	}
	return catalog[id-1], nil
}

// trigram is the unchecked lookup used once ids have been validated.
func trigram(id TrigramID) Trigram {
	return catalog[id-1]
}

// TrigramFromBits maps a 3-bit line pattern back to its trigram.
func TrigramFromBits(bits uint8) (TrigramID, error) {
	if bits > 0b111 {
		return 0, invalid("trigram bits", bits, "must fit in three bits")
	}
	id := byBits[bits]
	if id == 0 {
		return 0, invalid("trigram bits", bits, "no trigram assigned")
	}
	return id, nil
}

// mustFromBits is TrigramFromBits for 3-bit windows of a Hexagram. Every 3-bit
// value is assigned, so the panic only fires if the catalog itself is broken.
func mustFromBits(bits uint8) TrigramID {
	id, err := TrigramFromBits(bits & 0b111)
	if err != nil {
		panic("domain: " + err.Error())
	}
	return id
}
