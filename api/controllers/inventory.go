package controllers

import (
	"net/http"

	"github.com/jalvarez-dev/supplysim-backend/api/responses"
	"github.com/jalvarez-dev/supplysim-backend/api/validators"
	"github.com/jalvarez-dev/supplysim-backend/internal/catalog"
	"github.com/jalvarez-dev/supplysim-backend/internal/ledger"
	"github.com/jalvarez-dev/supplysim-backend/pkg/logger"
)

type creditInventoryRequest struct {
	SKU      string `json:"sku" validate:"required,max=64"`
	Location string `json:"location" validate:"required,max=255"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

type setInventoryRequest struct {
	SKU      string `json:"sku" validate:"required,max=64"`
	Location string `json:"location" validate:"required,max=255"`
	Quantity int    `json:"quantity" validate:"gte=0"`
}

func ListInventory(repo ledger.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := repo.ListWithProducts(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

func LowStock(repo ledger.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := repo.BelowThreshold(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

// CreditInventory is the operator-trusted correction path: it adds stock
// without a transfer, bypassing route and sufficiency checks.
func CreditInventory(repo ledger.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload creditInventoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sku := catalog.NormalizeSKU(payload.SKU)
		if err := repo.Credit(r.Context(), sku, payload.Location, payload.Quantity); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		qty, err := repo.QuantityAt(r.Context(), sku, payload.Location)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"sku":      sku,
			"location": payload.Location,
			"quantity": qty,
		})
	}
}

// SetInventory overwrites a quantity outright. Operator-trusted.
func SetInventory(repo ledger.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload setInventoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sku := catalog.NormalizeSKU(payload.SKU)
		if err := repo.Upsert(r.Context(), sku, payload.Location, payload.Quantity); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"sku":      sku,
			"location": payload.Location,
			"quantity": payload.Quantity,
		})
	}
}
