package handlers_fiber

import (
	"errors"
	"net/http"

	"user-seeding-service/internal/api"
	"user-seeding-service/internal/entities"

	"github.com/gofiber/fiber/v2"
)

// PostUserSeed bulk-inserts synthetic users. Body is optional; an omitted
// total falls back to the configured default.
func (h *Handler) PostUserSeed(c *fiber.Ctx) error {
	var body api.SeedUsersRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&body); err != nil {
			h.log.Errorw("failed to parse seed body", "error", err.Error())
			return c.Status(http.StatusBadRequest).JSON(errorResponse(api.INVALIDARGUMENT, "invalid body"))
		}
	}

	res, err := h.uc.SeedUsers(c.Context(), body.Total)
	if err != nil {
		h.log.Errorw("failed to seed users", "error", err.Error(), "run_id", res.RunID, "inserted", res.Inserted)
		if errors.Is(err, entities.ErrBatchWrite) {
			// Rows committed before the failing batch stay committed; the
			// caller gets the exact count alongside the error.
			return c.Status(http.StatusInternalServerError).JSON(struct {
				api.ErrorResponse
				RunID         string `json:"runId"`
				InsertedUsers int64  `json:"insertedUsers"`
			}{
				ErrorResponse: errorResponse(api.BATCHWRITE, "seeding aborted, committed rows kept"),
				RunID:         res.RunID,
				InsertedUsers: res.Inserted,
			})
		}
		return writeError(c, err)
	}

	return c.Status(http.StatusOK).JSON(api.SeedUsersResponse{
		Message:       "users seeded",
		RunID:         res.RunID,
		InsertedUsers: res.Inserted,
	})
}

// PostUserResetProblems clears the problems flag on all flagged users and
// reports how many rows were affected.
func (h *Handler) PostUserResetProblems(c *fiber.Ctx) error {
	cnt, err := h.uc.ResetProblems(c.Context())
	if err != nil {
		h.log.Errorw("failed to reset problems flag", "error", err.Error())
		return writeError(c, err)
	}

	return c.Status(http.StatusOK).JSON(api.ResetProblemsResponse{
		Message:           "problems flag reset",
		UsersWithProblems: cnt,
	})
}
