package domain

import "time"

// Reading is the complete derivation of one casting: the primary, changed and
// mutual hexagrams together with the search hint.
type Reading struct {
	ID      string       `json:"id" yaml:"id"`
	CastAt  time.Time    `json:"cast_at" yaml:"cast_at"`
	Inputs  []int        `json:"inputs" yaml:"inputs"`
	Casting Casting      `json:"casting" yaml:"casting"`
	Main    HexagramView `json:"main" yaml:"main"`
	Changed HexagramView `json:"changed" yaml:"changed"`
	Mutual  HexagramView `json:"mutual" yaml:"mutual"`
	Hint    Hint         `json:"hint" yaml:"hint"`
}

// Derive computes every hexagram and the hint for c. It is a pure function of c.
func Derive(c Casting) (Reading, error) {
	main, err := c.Hexagram()
	if err != nil {
		return Reading{}, err
	}
	changed, err := main.Flip(c.Moving)
	if err != nil {
		return Reading{}, err
	}
	hint, err := BuildHint(c.Upper, c.Lower, c.Moving, changed.Upper(), changed.Lower())
	if err != nil {
		return Reading{}, err
	}
	return Reading{
		Casting: c,
		Main:    main.View(),
		Changed: changed.View(),
		Mutual:  main.Mutual().View(),
		Hint:    hint,
	}, nil
}
