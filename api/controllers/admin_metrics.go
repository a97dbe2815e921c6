package controllers

import (
	"net/http"

	"github.com/printcraftlabs/printcraft-backend/api/responses"
	analyticssvc "github.com/printcraftlabs/printcraft-backend/internal/analytics"
	pkgerrors "github.com/printcraftlabs/printcraft-backend/pkg/errors"
	"github.com/printcraftlabs/printcraft-backend/pkg/logger"
)

// AdminDashboard serves the aggregated back-office metrics snapshot.
func AdminDashboard(svc analyticssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "analytics service unavailable"))
			return
		}

		dashboard, err := svc.Dashboard(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dashboard)
	}
}
