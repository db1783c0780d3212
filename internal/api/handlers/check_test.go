package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/cart-price-tracker/internal/api/handlers"
	"github.com/donaldgifford/cart-price-tracker/internal/tracker"
)

type fakeChecker struct {
	result *tracker.CheckResult
	err    error
}

func (f *fakeChecker) RunCheck(_ context.Context) (*tracker.CheckResult, error) {
	return f.result, f.err
}

func TestCheckHandler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		checker    *fakeChecker
		wantStatus int
		wantBody   string
	}{
		{
			name: "success",
			checker: &fakeChecker{result: &tracker.CheckResult{
				Observed: 3, Appended: 2, Skipped: 1, Notified: 1,
			}},
			wantStatus: http.StatusOK,
			wantBody:   `"appended":2`,
		},
		{
			name:       "in flight",
			checker:    &fakeChecker{err: tracker.ErrCheckInFlight},
			wantStatus: http.StatusConflict,
			wantBody:   "already running",
		},
		{
			name:       "check error",
			checker:    &fakeChecker{err: errors.New("source down")},
			wantStatus: http.StatusInternalServerError,
			wantBody:   "source down",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, api := humatest.New(t)
			handlers.RegisterCheckRoutes(api, handlers.NewCheckHandler(tt.checker))

			resp := api.Post("/api/v1/check")
			require.Equal(t, tt.wantStatus, resp.Code)
			assert.Contains(t, resp.Body.String(), tt.wantBody)
		})
	}
}
