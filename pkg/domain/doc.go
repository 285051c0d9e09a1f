/*
Package domain contains the symbolic core of the Plum Blossom (梅花易数) lost-object finder.

Everything here is a pure function over immutable tables: no I/O, no shared mutable state.
Values may be used from any number of goroutines.

# Key Entities

  - Trigram: one of eight three-line figures with element, direction and place hints.
  - Hexagram: a 6-bit line vector (lower trigram in bits 0-2, upper in bits 3-5) supporting
    line flips and mutual-hexagram extraction as bit operations.
  - Casting: the (upper, lower, moving line) triple from CastThree or CastCalendar.
  - Hint: body/use relation, directions, height band and locus derived from a casting.
  - Reading: a casting with all three hexagrams and its hint resolved.
*/
package domain
