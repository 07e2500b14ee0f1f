package handlers_fiber

import (
	"errors"
	"net/http"

	"user-seeding-service/internal/api"
	"user-seeding-service/internal/entities"

	"github.com/gofiber/fiber/v2"
)

func writeError(c *fiber.Ctx, err error) error {
	status := http.StatusInternalServerError
	code := api.INTERNAL
	msg := "internal error"

	switch {
	case errors.Is(err, entities.ErrInvalidArgument):
		status = http.StatusBadRequest
		code = api.INVALIDARGUMENT
		msg = err.Error()
	case errors.Is(err, entities.ErrTxConflict):
		status = http.StatusServiceUnavailable
		code = api.TXCONFLICT
		msg = "storage conflict, retries exhausted"
	case errors.Is(err, entities.ErrBatchWrite):
		code = api.BATCHWRITE
		msg = "batch write failed"
	case errors.Is(err, entities.ErrConnection):
		code = api.CONNECTION
		msg = "storage unreachable"
	default:
		msg = err.Error()
	}

	return c.Status(status).JSON(errorResponse(code, msg))
}

func errorResponse(code api.ErrorCode, msg string) api.ErrorResponse {
	return api.ErrorResponse{Error: struct {
		Code    api.ErrorCode `json:"code"`
		Message string        `json:"message"`
	}{Code: code, Message: msg}}
}
