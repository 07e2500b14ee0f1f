package handlers_fiber

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"user-seeding-service/internal/api"
	"user-seeding-service/internal/entities"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func TestWriteErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   api.ErrorCode
	}{
		{
			name:       "validation",
			err:        fmt.Errorf("%w: total must be non-negative", entities.ErrInvalidArgument),
			wantStatus: http.StatusBadRequest,
			wantCode:   api.INVALIDARGUMENT,
		},
		{
			name:       "conflict_exhausted",
			err:        fmt.Errorf("reset problems after 3 retries: %w", entities.ErrTxConflict),
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   api.TXCONFLICT,
		},
		{
			name:       "batch_write",
			err:        fmt.Errorf("%w: connection reset", entities.ErrBatchWrite),
			wantStatus: http.StatusInternalServerError,
			wantCode:   api.BATCHWRITE,
		},
		{
			name:       "connection",
			err:        fmt.Errorf("reset problems: %w", entities.ErrConnection),
			wantStatus: http.StatusInternalServerError,
			wantCode:   api.CONNECTION,
		},
		{
			name:       "unknown",
			err:        fmt.Errorf("pool exhausted"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   api.INTERNAL,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				return writeError(c, tt.err)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			require.Equal(t, tt.wantStatus, resp.StatusCode)

			var body api.ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			require.Equal(t, tt.wantCode, body.Error.Code)
			require.NotEmpty(t, body.Error.Message)
		})
	}
}
