package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	domain "github.com/donaldgifford/cart-price-tracker/pkg/types"
)

// StatsProvider defines the interface for computing aggregate statistics.
type StatsProvider interface {
	Stats(ctx context.Context) (*domain.Stats, error)
}

// StatsHandler handles statistics requests.
type StatsHandler struct {
	provider StatsProvider
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(p StatsProvider) *StatsHandler {
	return &StatsHandler{provider: p}
}

// StatsOutput is the response body for the stats endpoint.
type StatsOutput struct {
	Body domain.Stats
}

// Get returns aggregate statistics over the tracked history.
func (h *StatsHandler) Get(ctx context.Context, _ *struct{}) (*StatsOutput, error) {
	stats, err := h.provider.Stats(ctx)
	if err != nil {
		return nil, huma.Error500InternalServerError("computing stats: " + err.Error())
	}
	return &StatsOutput{Body: *stats}, nil
}

// RegisterStatsRoutes registers the stats endpoint with the Huma API.
func RegisterStatsRoutes(api huma.API, h *StatsHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "get-stats",
		Method:      http.MethodGet,
		Path:        "/api/v1/stats",
		Summary:     "Get tracking statistics",
		Description: "Returns product counts, the average drop across dropped " +
			"products, and the biggest first-to-last drop.",
		Tags:   []string{"stats"},
		Errors: []int{http.StatusInternalServerError},
	}, h.Get)
}
