package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// HistoryClearer defines the interface for wiping tracked history.
type HistoryClearer interface {
	Clear(ctx context.Context) error
}

// HistoryHandler handles the history clear endpoint.
type HistoryHandler struct {
	store HistoryClearer
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(s HistoryClearer) *HistoryHandler {
	return &HistoryHandler{store: s}
}

// ClearOutput is the response body for the clear endpoint.
type ClearOutput struct {
	Body StatusResponse
}

// Clear removes all tracked products and their histories. Settings survive.
func (h *HistoryHandler) Clear(ctx context.Context, _ *struct{}) (*ClearOutput, error) {
	if err := h.store.Clear(ctx); err != nil {
		return nil, huma.Error500InternalServerError("clearing history: " + err.Error())
	}
	return &ClearOutput{Body: StatusResponse{Status: "cleared"}}, nil
}

// RegisterHistoryRoutes registers the history clear endpoint with the Huma API.
func RegisterHistoryRoutes(api huma.API, h *HistoryHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "clear-history",
		Method:      http.MethodDelete,
		Path:        "/api/v1/history",
		Summary:     "Clear all tracked history",
		Description: "Removes every product record. Settings are kept.",
		Tags:        []string{"history"},
		Errors:      []int{http.StatusInternalServerError},
	}, h.Clear)
}
