package domain

import (
	"fmt"
	"strings"
)

// Element is one of the five phases (五行).
type Element int

const (
	Metal Element = iota + 1
	Wood
	Water
	Fire
	Earth
)

// Elements lists the five phases in declaration order.
var Elements = []Element{Metal, Wood, Water, Fire, Earth}

var elementKeys = []string{"", "metal", "wood", "water", "fire", "earth"}
var elementNames = []string{"", "金", "木", "水", "火", "土"}

// String returns the single-character label (金木水火土).
func (e Element) String() string {
	if e < Metal || e > Earth {
		return "?"
	}
	return elementNames[e]
}

// Key returns the stable ASCII identifier used in JSON and YAML.
func (e Element) Key() string {
	if e < Metal || e > Earth {
		return ""
	}
	return elementKeys[e]
}

func (e Element) MarshalText() ([]byte, error) {
	return marshalKey(elementKeys, "element", e)
}

func (e *Element) UnmarshalText(text []byte) error {
	return unmarshalKey(elementKeys, "element", text, e)
}

// ParseElement accepts either the ASCII key ("wood") or the character ("木").
func ParseElement(s string) (Element, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, e := range Elements {
		if s == elementKeys[e] || s == elementNames[e] {
			return e, nil
		}
	}
	return 0, invalid("element", s, "expected one of metal, wood, water, fire, earth or 金木水火土")
}

// generates maps each element to the one it feeds: Wood→Fire→Earth→Metal→Water→Wood.
var generates = map[Element]Element{
	Wood:  Fire,
	Fire:  Earth,
	Earth: Metal,
	Metal: Water,
	Water: Wood,
}

// overcomes maps each element to the one it dominates.
var overcomes = map[Element]Element{
	Wood:  Earth,
	Earth: Water,
	Water: Fire,
	Fire:  Metal,
	Metal: Wood,
}

// Generates reports whether e feeds other in the generation cycle.
func (e Element) Generates(other Element) bool {
	next, ok := generates[e]
	return ok && next == other
}

// Overcomes reports whether e dominates other in the domination cycle.
func (e Element) Overcomes(other Element) bool {
	next, ok := overcomes[e]
	return ok && next == other
}

// Relation classifies how the body element stands toward the use element.
type Relation int

const (
	RelationUndetermined Relation = iota
	RelationEqual
	RelationBodyGeneratesUse
	RelationUseGeneratesBody
	RelationBodyOvercomesUse
	RelationUseOvercomesBody
)

var relationKeys = []string{
	"undetermined",
	"equal",
	"body_generates_use",
	"use_generates_body",
	"body_overcomes_use",
	"use_overcomes_body",
}

var relationTexts = []string{
	"关系未判定",
	"体用同五行（平）",
	"体生用（我耗气，偏费力）",
	"用生体（外助我，偏有利）",
	"体克用（我能掌控，偏可得）",
	"用克体（外压我，偏难得）",
}

// String returns the traditional reading of the relation.
func (r Relation) String() string {
	if r < RelationUndetermined || r > RelationUseOvercomesBody {
		return relationTexts[RelationUndetermined]
	}
	return relationTexts[r]
}

// Key returns the stable ASCII identifier used in JSON, YAML and metric labels.
func (r Relation) Key() string {
	if r < RelationUndetermined || r > RelationUseOvercomesBody {
		return relationKeys[RelationUndetermined]
	}
	return relationKeys[r]
}

// Favorable reports whether the relation points toward an easy retrieval.
func (r Relation) Favorable() bool {
	return r == RelationUseGeneratesBody || r == RelationBodyOvercomesUse
}

func (r Relation) MarshalText() ([]byte, error) {
	return []byte(r.Key()), nil
}

func (r *Relation) UnmarshalText(text []byte) error {
	for i, k := range relationKeys {
		if k == string(text) {
			*r = Relation(i)
			return nil
		}
	}
	return invalid("relation", string(text), "unknown relation")
}

// ElementRelation resolves body against use. The first matching rule wins:
// equal, body generates use, use generates body, body overcomes use, use overcomes body.
func ElementRelation(body, use Element) Relation {
	switch {
	case body == use:
		return RelationEqual
	case body.Generates(use):
		return RelationBodyGeneratesUse
	case use.Generates(body):
		return RelationUseGeneratesBody
	case body.Overcomes(use):
		return RelationBodyOvercomesUse
	case use.Overcomes(body):
		return RelationUseOvercomesBody
	}
	// Unreachable while both cycle tables are intact.
	return RelationUndetermined
}

// CheckRelationTables sweeps all 25 ordered element pairs and returns
// ErrUnresolvedRelation if any pair falls through to RelationUndetermined.
func CheckRelationTables() error {
	for _, body := range Elements {
		for _, use := range Elements {
			if ElementRelation(body, use) == RelationUndetermined {
				return fmt.Errorf("%w: body=%s use=%s", ErrUnresolvedRelation, body.Key(), use.Key())
			}
		}
	}
	return nil
}
