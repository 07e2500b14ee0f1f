// Package api defines the HTTP request/response contract and route wiring.
package api

import "github.com/gofiber/fiber/v2"

// ErrorCode identifies the failure class in error responses.
type ErrorCode string

// Error codes returned by the service.
const (
	INVALIDARGUMENT ErrorCode = "INVALID_ARGUMENT"
	TXCONFLICT      ErrorCode = "TX_CONFLICT"
	BATCHWRITE      ErrorCode = "BATCH_WRITE"
	CONNECTION      ErrorCode = "CONNECTION"
	INTERNAL        ErrorCode = "INTERNAL"
)

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Error struct {
		Code    ErrorCode `json:"code"`
		Message string    `json:"message"`
	} `json:"error"`
}

// SeedUsersRequest is the optional body of POST /user/seed.
type SeedUsersRequest struct {
	Total *int `json:"total"`
}

// SeedUsersResponse is the body of a successful POST /user/seed.
type SeedUsersResponse struct {
	Message       string `json:"message"`
	RunID         string `json:"runId"`
	InsertedUsers int64  `json:"insertedUsers"`
}

// ResetProblemsResponse is the body of a successful POST /user/reset-problems.
type ResetProblemsResponse struct {
	Message           string `json:"message"`
	UsersWithProblems int64  `json:"usersWithProblems"`
}

// ServerInterface lists the handlers the router binds.
type ServerInterface interface {
	PostUserSeed(c *fiber.Ctx) error
	PostUserResetProblems(c *fiber.Ctx) error
}

// RegisterHandlers attaches the service routes to the app.
func RegisterHandlers(app *fiber.App, si ServerInterface) {
	app.Post("/user/seed", si.PostUserSeed)
	app.Post("/user/reset-problems", si.PostUserResetProblems)
}
