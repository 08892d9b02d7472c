package handlers_fiber

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"mergington-activities/internal/entities"
	"mergington-activities/internal/mapper"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantDetail string
	}{
		{name: "not_found", err: entities.ErrActivityNotFound, wantStatus: http.StatusNotFound, wantDetail: "Activity not found"},
		{name: "duplicate", err: entities.ErrAlreadySignedUp, wantStatus: http.StatusBadRequest, wantDetail: "Student already signed up for this activity"},
		{name: "full", err: entities.ErrActivityFull, wantStatus: http.StatusBadRequest, wantDetail: "Activity is full"},
		{name: "not_signed_up", err: entities.ErrNotSignedUp, wantStatus: http.StatusBadRequest, wantDetail: "Student is not signed up for this activity"},
		{name: "wrapped", err: fmt.Errorf("lock activity: %w", entities.ErrActivityNotFound), wantStatus: http.StatusNotFound, wantDetail: "Activity not found"},
		{name: "invalid_catalog", err: fmt.Errorf("seed: %w", entities.ErrInvalidArgument), wantStatus: http.StatusInternalServerError, wantDetail: "internal error"},
		{name: "unexpected", err: errors.New("conn refused"), wantStatus: http.StatusInternalServerError, wantDetail: "internal error"},
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

			var body mapper.ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			require.Equal(t, tt.wantDetail, body.Detail)
		})
	}
}
