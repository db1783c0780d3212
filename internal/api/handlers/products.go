package handlers

import (
	"context"
	"errors"
	"net/http"
	"sort"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/cart-price-tracker/internal/store"
	domain "github.com/donaldgifford/cart-price-tracker/pkg/types"
)

// ProductStore defines the store operations the product endpoints need.
type ProductStore interface {
	LoadSnapshot(ctx context.Context) (*domain.Snapshot, error)
	DeleteProduct(ctx context.Context, productID string) error
}

// ProductHandler handles product history endpoints.
type ProductHandler struct {
	store ProductStore
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(s ProductStore) *ProductHandler {
	return &ProductHandler{store: s}
}

// ProductSummary is one row of the product listing.
type ProductSummary struct {
	ProductID  string  `json:"product_id"`
	Title      string  `json:"title"`
	LastPrice  float64 `json:"last_price"`
	Currency   string  `json:"currency"`
	PointCount int     `json:"point_count"`
}

// ListProductsOutput is the response body for the product list endpoint.
type ListProductsOutput struct {
	Body struct {
		Products []ProductSummary `json:"products"`
	}
}

// List returns a summary of every tracked product, ordered by product ID.
func (h *ProductHandler) List(ctx context.Context, _ *struct{}) (*ListProductsOutput, error) {
	snap, err := h.store.LoadSnapshot(ctx)
	if err != nil {
		return nil, huma.Error500InternalServerError("loading history: " + err.Error())
	}

	summaries := make([]ProductSummary, 0, len(snap.History))
	for _, rec := range snap.History {
		s := ProductSummary{
			ProductID:  rec.ProductID,
			Title:      rec.Title,
			PointCount: len(rec.PriceHistory),
		}
		if last := rec.LastPoint(); last != nil {
			s.LastPrice = last.Price
			s.Currency = last.Currency
		}
		summaries = append(summaries, s)
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].ProductID < summaries[j].ProductID
	})

	resp := &ListProductsOutput{}
	resp.Body.Products = summaries
	return resp, nil
}

// GetProductInput identifies one product.
type GetProductInput struct {
	ID string `path:"id" doc:"Product ID"`
}

// GetProductOutput is the response body for the single product endpoint.
type GetProductOutput struct {
	Body domain.ProductRecord
}

// Get returns the full record for one product.
func (h *ProductHandler) Get(ctx context.Context, input *GetProductInput) (*GetProductOutput, error) {
	snap, err := h.store.LoadSnapshot(ctx)
	if err != nil {
		return nil, huma.Error500InternalServerError("loading history: " + err.Error())
	}

	rec, ok := snap.History[input.ID]
	if !ok {
		return nil, huma.Error404NotFound("product not tracked: " + input.ID)
	}
	return &GetProductOutput{Body: *rec}, nil
}

// DeleteProductOutput is the response body for the product delete endpoint.
type DeleteProductOutput struct {
	Body StatusResponse
}

// Delete removes one product and its history.
func (h *ProductHandler) Delete(ctx context.Context, input *GetProductInput) (*DeleteProductOutput, error) {
	err := h.store.DeleteProduct(ctx, input.ID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, huma.Error404NotFound("product not tracked: " + input.ID)
	}
	if err != nil {
		return nil, huma.Error500InternalServerError("deleting product: " + err.Error())
	}

	return &DeleteProductOutput{Body: StatusResponse{Status: "deleted"}}, nil
}

// RegisterProductRoutes registers product endpoints with the Huma API.
func RegisterProductRoutes(api huma.API, h *ProductHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-products",
		Method:      http.MethodGet,
		Path:        "/api/v1/products",
		Summary:     "List tracked products",
		Tags:        []string{"products"},
		Errors:      []int{http.StatusInternalServerError},
	}, h.List)

	huma.Register(api, huma.Operation{
		OperationID: "get-product",
		Method:      http.MethodGet,
		Path:        "/api/v1/products/{id}",
		Summary:     "Get one product's price history",
		Tags:        []string{"products"},
		Errors:      []int{http.StatusNotFound, http.StatusInternalServerError},
	}, h.Get)

	huma.Register(api, huma.Operation{
		OperationID: "delete-product",
		Method:      http.MethodDelete,
		Path:        "/api/v1/products/{id}",
		Summary:     "Stop tracking a product",
		Tags:        []string{"products"},
		Errors:      []int{http.StatusNotFound, http.StatusInternalServerError},
	}, h.Delete)
}
