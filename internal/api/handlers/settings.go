package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	domain "github.com/donaldgifford/cart-price-tracker/pkg/types"
)

// SettingsStore defines the store operations the settings endpoints need.
type SettingsStore interface {
	LoadSnapshot(ctx context.Context) (*domain.Snapshot, error)
	SaveSettings(ctx context.Context, settings domain.Settings) error
}

// SettingsHandler handles settings endpoints.
type SettingsHandler struct {
	store SettingsStore
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(s SettingsStore) *SettingsHandler {
	return &SettingsHandler{store: s}
}

// SettingsOutput is the response body for the settings endpoints.
type SettingsOutput struct {
	Body domain.Settings
}

// Get returns the current settings.
func (h *SettingsHandler) Get(ctx context.Context, _ *struct{}) (*SettingsOutput, error) {
	snap, err := h.store.LoadSnapshot(ctx)
	if err != nil {
		return nil, huma.Error500InternalServerError("loading settings: " + err.Error())
	}
	return &SettingsOutput{Body: snap.Settings}, nil
}

// UpdateSettingsInput carries the replacement settings.
type UpdateSettingsInput struct {
	Body domain.Settings
}

// Update validates and persists replacement settings.
func (h *SettingsHandler) Update(ctx context.Context, input *UpdateSettingsInput) (*SettingsOutput, error) {
	if err := input.Body.Validate(); err != nil {
		return nil, huma.Error400BadRequest("invalid settings: " + err.Error())
	}

	if err := h.store.SaveSettings(ctx, input.Body); err != nil {
		return nil, huma.Error500InternalServerError("saving settings: " + err.Error())
	}
	return &SettingsOutput{Body: input.Body}, nil
}

// RegisterSettingsRoutes registers settings endpoints with the Huma API.
func RegisterSettingsRoutes(api huma.API, h *SettingsHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "get-settings",
		Method:      http.MethodGet,
		Path:        "/api/v1/settings",
		Summary:     "Get tracking settings",
		Tags:        []string{"settings"},
		Errors:      []int{http.StatusInternalServerError},
	}, h.Get)

	huma.Register(api, huma.Operation{
		OperationID: "update-settings",
		Method:      http.MethodPut,
		Path:        "/api/v1/settings",
		Summary:     "Update tracking settings",
		Tags:        []string{"settings"},
		Errors:      []int{http.StatusBadRequest, http.StatusInternalServerError},
	}, h.Update)
}
