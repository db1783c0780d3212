package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/cart-price-tracker/internal/tracker"
)

// Checker defines the interface for triggering a price check.
type Checker interface {
	RunCheck(ctx context.Context) (*tracker.CheckResult, error)
}

// CheckHandler handles manual price check trigger requests.
type CheckHandler struct {
	checker Checker
}

// NewCheckHandler creates a new CheckHandler.
func NewCheckHandler(c Checker) *CheckHandler {
	return &CheckHandler{checker: c}
}

// CheckOutput is the response body for the check endpoint.
type CheckOutput struct {
	Body struct {
		Observed int `json:"observed" doc:"Observations fetched from the source"`
		Appended int `json:"appended" doc:"Price points appended"`
		Skipped  int `json:"skipped"  doc:"Malformed observations skipped"`
		Notified int `json:"notified" doc:"Drop notifications fired"`
	}
}

// Check triggers one full check cycle. A check already in progress is
// rejected with 409 rather than queued.
func (h *CheckHandler) Check(ctx context.Context, _ *struct{}) (*CheckOutput, error) {
	result, err := h.checker.RunCheck(ctx)
	if errors.Is(err, tracker.ErrCheckInFlight) {
		return nil, huma.Error409Conflict("a price check is already running")
	}
	if err != nil {
		return nil, huma.Error500InternalServerError("price check failed: " + err.Error())
	}

	resp := &CheckOutput{}
	resp.Body.Observed = result.Observed
	resp.Body.Appended = result.Appended
	resp.Body.Skipped = result.Skipped
	resp.Body.Notified = result.Notified
	return resp, nil
}

// RegisterCheckRoutes registers the check endpoint with the Huma API.
func RegisterCheckRoutes(api huma.API, h *CheckHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "trigger-check",
		Method:      http.MethodPost,
		Path:        "/api/v1/check",
		Summary:     "Trigger a price check",
		Description: "Fetches current cart prices, updates the stored history, " +
			"and fires drop notifications.",
		Tags:   []string{"check"},
		Errors: []int{http.StatusConflict, http.StatusInternalServerError},
	}, h.Check)
}
