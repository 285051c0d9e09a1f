/*
Package meihua casts plum-blossom (梅花易数) hexagrams for finding lost objects.

A casting turns either three numbers or a lunar date and hour into an upper
trigram, a lower trigram and a moving line. From that the engine derives the
primary, changed and mutual hexagrams and a structured search hint: which
direction to look in, at what height, and whether the object was more likely
moved by its surroundings or put away by the seeker.

# Usage

	eng := meihua.New()
	r, err := eng.CastThree(ctx, 3, 7, 5)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(r.Main.Name, r.Hint.Primary)

Readings can be kept with WithJournal, using one of the adapters under
pkg/adapters (memory, file, redis), and fetched back with Reading and History.
The same engine backs the meihua CLI, its HTTP API and its MCP server.
*/
package meihua
