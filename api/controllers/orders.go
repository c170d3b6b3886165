package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/jalvarez-dev/supplysim-backend/api/middleware"
	"github.com/jalvarez-dev/supplysim-backend/api/responses"
	"github.com/jalvarez-dev/supplysim-backend/api/validators"
	ordersvc "github.com/jalvarez-dev/supplysim-backend/internal/orders"
	"github.com/jalvarez-dev/supplysim-backend/pkg/enums"
	pkgerrors "github.com/jalvarez-dev/supplysim-backend/pkg/errors"
	"github.com/jalvarez-dev/supplysim-backend/pkg/logger"
)

type placeOrderRequest struct {
	SKU              string `json:"sku" validate:"required,max=64"`
	Quantity         int    `json:"quantity" validate:"required,gt=0"`
	CustomerLocation string `json:"customer_location" validate:"required,max=255"`
}

type fulfillOrderRequest struct {
	Origin string `json:"origin" validate:"required,max=255"`
}

// PlaceOrder creates a Pending order for the authenticated customer.
func PlaceOrder(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload placeOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		customer := middleware.UsernameFromContext(r.Context())
		if customer == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		order, err := svc.Place(r.Context(), ordersvc.PlaceOrderInput{
			SKU:              payload.SKU,
			Quantity:         payload.Quantity,
			CustomerName:     customer,
			CustomerLocation: payload.CustomerLocation,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

// ListOrders returns every order for admins and only the caller's own
// orders for regular users.
func ListOrders(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if middleware.RoleFromContext(r.Context()) == string(enums.RoleAdmin) {
			orders, err := svc.ListAll(r.Context())
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			responses.WriteSuccess(w, orders)
			return
		}

		customer := middleware.UsernameFromContext(r.Context())
		if customer == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}
		orders, err := svc.ListByCustomer(r.Context(), customer)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, orders)
	}
}

// FulfillOrder ships a pending order from the chosen origin and then marks
// it Processed. The two steps are retryable separately: if marking fails
// after a successful shipment, replaying the request is guarded by the
// idempotency layer.
func FulfillOrder(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order id"))
			return
		}

		var payload fulfillOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		actorID, err := actorFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Fulfill(r.Context(), orderID, payload.Origin, actorID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.MarkProcessed(r.Context(), orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result.Order = order

		responses.WriteSuccess(w, result)
	}
}

// DeleteOrder removes a Pending order.
func DeleteOrder(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order id"))
			return
		}

		if err := svc.Delete(r.Context(), orderID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"deleted": true})
	}
}
