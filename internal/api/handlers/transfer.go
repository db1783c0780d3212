package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/cart-price-tracker/internal/store"
	domain "github.com/donaldgifford/cart-price-tracker/pkg/types"
)

// Transferer defines the interface for whole-store export and import.
type Transferer interface {
	Export(ctx context.Context) (*domain.ExportBundle, error)
	Import(ctx context.Context, data []byte) error
}

// TransferHandler handles export and import endpoints.
type TransferHandler struct {
	transferer Transferer
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(t Transferer) *TransferHandler {
	return &TransferHandler{transferer: t}
}

// ExportOutput is the response body for the export endpoint.
type ExportOutput struct {
	Body domain.ExportBundle
}

// Export returns a versioned bundle of the whole store.
func (h *TransferHandler) Export(ctx context.Context, _ *struct{}) (*ExportOutput, error) {
	bundle, err := h.transferer.Export(ctx)
	if err != nil {
		return nil, huma.Error500InternalServerError("building export: " + err.Error())
	}
	return &ExportOutput{Body: *bundle}, nil
}

// ImportInput carries a raw bundle. The body is validated as a whole before
// anything is applied.
type ImportInput struct {
	RawBody []byte `contentType:"application/json"`
}

// ImportOutput is the response body for the import endpoint.
type ImportOutput struct {
	Body StatusResponse
}

// Import validates a bundle and replaces the entire store with it. An
// invalid bundle is rejected without touching existing data.
func (h *TransferHandler) Import(ctx context.Context, input *ImportInput) (*ImportOutput, error) {
	err := h.transferer.Import(ctx, input.RawBody)
	if errors.Is(err, store.ErrInvalidImport) {
		return nil, huma.Error400BadRequest("invalid bundle: " + err.Error())
	}
	if err != nil {
		return nil, huma.Error500InternalServerError("applying import: " + err.Error())
	}

	return &ImportOutput{Body: StatusResponse{Status: "imported"}}, nil
}

// RegisterTransferRoutes registers export/import endpoints with the Huma API.
func RegisterTransferRoutes(api huma.API, h *TransferHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "export-history",
		Method:      http.MethodGet,
		Path:        "/api/v1/export",
		Summary:     "Export history and settings",
		Description: "Returns a versioned bundle of the whole store, suitable " +
			"for backup or migration to another instance.",
		Tags:   []string{"transfer"},
		Errors: []int{http.StatusInternalServerError},
	}, h.Export)

	huma.Register(api, huma.Operation{
		OperationID: "import-history",
		Method:      http.MethodPost,
		Path:        "/api/v1/import",
		Summary:     "Import history and settings",
		Description: "Validates and applies a previously exported bundle, " +
			"replacing all current data. Invalid bundles change nothing.",
		Tags:   []string{"transfer"},
		Errors: []int{http.StatusBadRequest, http.StatusInternalServerError},
	}, h.Import)
}
