package controllers

import (
	"net/http"
	"strings"

	"github.com/printcraftlabs/printcraft-backend/api/responses"
	"github.com/printcraftlabs/printcraft-backend/api/validators"
	userssvc "github.com/printcraftlabs/printcraft-backend/internal/users"
	pkgerrors "github.com/printcraftlabs/printcraft-backend/pkg/errors"
	"github.com/printcraftlabs/printcraft-backend/pkg/logger"
	"github.com/printcraftlabs/printcraft-backend/pkg/pagination"
)

// AdminListUsers pages through registered accounts, newest first.
func AdminListUsers(svc userssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "users service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 0, 1, 100)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListUsers(r.Context(), pagination.Params{
			Limit:  limit,
			Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
