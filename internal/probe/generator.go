package probe

import (
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"
)

// generateCases builds n rankings. Every other case is a shuffled prefix of
// the catalog ids so the result endpoint can be exercised; the rest are
// synthetic ids of random length up to maxLen.
func generateCases(rng *rand.Rand, n, maxLen int, catalogIDs []string) []Case {
	cases := make([]Case, n)
	for i := range cases {
		c := Case{ID: i, ClientID: uuid.NewString()}
		if i%2 == 0 && len(catalogIDs) > 0 {
			ids := append([]string(nil), catalogIDs...)
			rng.Shuffle(len(ids), func(a, b int) { ids[a], ids[b] = ids[b], ids[a] })
			c.Ranking = ids[:1+rng.IntN(len(ids))]
			c.Catalog = true
		} else {
			size := rng.IntN(maxLen + 1)
			c.Ranking = make([]string, size)
			for j := range c.Ranking {
				c.Ranking[j] = fmt.Sprintf("cand-%d-%d", i, j)
			}
		}
		cases[i] = c
	}
	return cases
}
