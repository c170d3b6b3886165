package controllers

import (
	"net/http"
	"strconv"

	"github.com/jalvarez-dev/supplysim-backend/api/responses"
	auditsvc "github.com/jalvarez-dev/supplysim-backend/internal/audit"
	reportsvc "github.com/jalvarez-dev/supplysim-backend/internal/reports"
	pkgerrors "github.com/jalvarez-dev/supplysim-backend/pkg/errors"
	"github.com/jalvarez-dev/supplysim-backend/pkg/logger"
)

// ReportSummary returns the dashboard rollup.
func ReportSummary(svc reportsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := svc.Summary(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}

// ListLogs returns the audit trail, newest first. Optional ?limit=.
func ListLogs(repo auditsvc.Repository, logg *logger.Logger) http.HandlerFunc {
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

		entries, err := repo.List(r.Context(), limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, entries)
	}
}
