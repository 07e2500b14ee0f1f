// Package generator produces synthetic user records for bulk seeding.
package generator

import (
	"math/rand"
	"strconv"

	"user-seeding-service/internal/entities"
)

// Generator derives synthetic users from their index plus a seedable random
// source. Names and gender are deterministic on the index; age and the
// problems flag come from the injected source, so a fixed seed reproduces
// the exact same rows.
type Generator struct {
	rnd *rand.Rand
}

// New constructs a Generator over the given random source.
func New(rnd *rand.Rand) *Generator {
	return &Generator{rnd: rnd}
}

// UserAt builds the synthetic user for index i.
// Not safe for concurrent use; callers generate in index order.
func (g *Generator) UserAt(i int) entities.User {
	idx := strconv.Itoa(i)
	gender := entities.GenderMale
	if i%2 != 0 {
		gender = entities.GenderFemale
	}

	return entities.User{
		FirstName:   "FirstName" + idx,
		LastName:    "LastName" + idx,
		Age:         g.rnd.Intn(100),
		Gender:      gender,
		HasProblems: g.rnd.Intn(2) == 1,
	}
}
