package controllers

import (
	"net/http"

	"github.com/jalvarez-dev/supplysim-backend/api/responses"
	advisorsvc "github.com/jalvarez-dev/supplysim-backend/internal/advisor"
	"github.com/jalvarez-dev/supplysim-backend/pkg/logger"
)

// SuggestOrigin returns the cheapest feasible origin for ?sku= and
// ?destination=.
func SuggestOrigin(svc advisorsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		suggestion, err := svc.SuggestCheapestOrigin(r.Context(),
			r.URL.Query().Get("sku"),
			r.URL.Query().Get("destination"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, suggestion)
	}
}

// ValidOrigins lists origins with both a route to ?destination= and stock
// of ?sku=.
func ValidOrigins(svc advisorsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		origins, err := svc.ValidOrigins(r.Context(),
			r.URL.Query().Get("destination"),
			r.URL.Query().Get("sku"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"origins": origins})
	}
}

// ListLocations returns the location registry split into origins and
// destinations.
func ListLocations(svc advisorsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		locations, err := svc.Locations(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, locations)
	}
}
