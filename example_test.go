package meihua_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/meihua"
)

// ExampleEngine_CastThree casts from three numbers and prints the derived
// hexagrams and the main search direction.
func ExampleEngine_CastThree() {
	eng := meihua.New()

	r, err := eng.CastThree(context.Background(), 3, 7, 5)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("main:", r.Main.Name)
	fmt.Println("changed:", r.Changed.Name)
	fmt.Println("mutual:", r.Mutual.Name)
	fmt.Println("relation:", r.Hint.Relation.Key())
	fmt.Println("look:", r.Hint.Primary, "then", *r.Hint.Secondary)
	fmt.Println("height:", r.Hint.Height.Key())

	// Output:
	// main: 火山旅
	// changed: 天山遁
	// mutual: 水雷屯
	// relation: use_generates_body
	// look: 正南 then 西北
	// height: high
}
