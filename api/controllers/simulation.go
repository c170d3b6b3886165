package controllers

import (
	"net/http"

	"github.com/jalvarez-dev/supplysim-backend/api/responses"
	simulationsvc "github.com/jalvarez-dev/supplysim-backend/internal/simulation"
	"github.com/jalvarez-dev/supplysim-backend/pkg/logger"
)

// ResetSimulation wipes everything and reseeds the baseline data set.
func ResetSimulation(svc simulationsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID, err := actorFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Reset(r.Context(), actorID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"reset": true})
	}
}
