package controllers

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jalvarez-dev/supplysim-backend/api/middleware"
	"github.com/jalvarez-dev/supplysim-backend/api/responses"
	"github.com/jalvarez-dev/supplysim-backend/api/validators"
	transfersvc "github.com/jalvarez-dev/supplysim-backend/internal/transfer"
	pkgerrors "github.com/jalvarez-dev/supplysim-backend/pkg/errors"
	"github.com/jalvarez-dev/supplysim-backend/pkg/logger"
)

type createTransferRequest struct {
	SKU         string `json:"sku" validate:"required,max=64"`
	Origin      string `json:"origin" validate:"required,max=255"`
	Destination string `json:"destination" validate:"required,max=255"`
	Quantity    int    `json:"quantity" validate:"required,gt=0"`
	Cost        string `json:"cost" validate:"required"`
}

// CreateTransfer moves stock between locations through the transfer engine.
func CreateTransfer(svc transfersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createTransferRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cost, err := decimal.NewFromString(payload.Cost)
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cost"))
			return
		}

		actorID, err := actorFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.Transfer(r.Context(), transfersvc.TransferInput{
			SKU:         payload.SKU,
			Origin:      payload.Origin,
			Destination: payload.Destination,
			Quantity:    payload.Quantity,
			Cost:        cost,
			ActorID:     actorID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, record)
	}
}

// ListLogistics returns the journal, newest first. Optional ?limit=.
func ListLogistics(svc transfersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed <= 0 {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.New(pkgerrors.CodeValidation, "limit must be a positive integer"))
				return
			}
			limit = parsed
		}

		records, err := svc.ListLogistics(r.Context(), limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, records)
	}
}

func actorFromContext(r *http.Request) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	parsed, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid user id")
	}
	return parsed, nil
}
