// Package entities contains core business entities.
package entities

// User is a domain representation of a stored user record.
// ID is assigned by the store on insert and is zero for generated records.
type User struct {
	ID          int64
	FirstName   string
	LastName    string
	Age         int
	Gender      string
	HasProblems bool
}

// Gender labels produced by the synthetic generator.
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
)

// SeedResult reports the outcome of one seeding run. Inserted counts rows
// committed to the store, including runs that aborted partway.
type SeedResult struct {
	RunID    string
	Inserted int64
}
