package controllers

import (
	"net/http"
	"time"

	"github.com/jalvarez-dev/supplysim-backend/api/responses"
	"github.com/jalvarez-dev/supplysim-backend/api/validators"
	forecastsvc "github.com/jalvarez-dev/supplysim-backend/internal/forecast"
	pkgerrors "github.com/jalvarez-dev/supplysim-backend/pkg/errors"
	"github.com/jalvarez-dev/supplysim-backend/pkg/logger"
)

type createForecastRequest struct {
	SKU          string `json:"sku" validate:"required,max=64"`
	Value        int    `json:"value" validate:"gte=0"`
	ForecastDate string `json:"forecast_date" validate:"required"`
}

func ListForecasts(svc forecastsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

func CreateForecast(svc forecastsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createForecastRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		date, err := time.Parse("2006-01-02", payload.ForecastDate)
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, "forecast_date must be YYYY-MM-DD"))
			return
		}

		row, err := svc.Record(r.Context(), forecastsvc.RecordForecastInput{
			SKU:          payload.SKU,
			Value:        payload.Value,
			ForecastDate: date,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, row)
	}
}

// ForecastAvailability reports network-wide stock for ?sku=.
func ForecastAvailability(svc forecastsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		availability, err := svc.Availability(r.Context(), r.URL.Query().Get("sku"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, availability)
	}
}
