package controllers

import (
	"net/http"

	"github.com/itprodirect/surplus-backend/api/responses"
	"github.com/itprodirect/surplus-backend/api/validators"
	"github.com/itprodirect/surplus-backend/internal/contact"
	pkgerrors "github.com/itprodirect/surplus-backend/pkg/errors"
	"github.com/itprodirect/surplus-backend/pkg/logger"
)

// SubmitContact handles the public contact form.
func SubmitContact(svc contact.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "contact service unavailable"))
			return
		}

		var sub contact.Submission
		if err := validators.DecodeJSONBody(r, &sub); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		message, err := svc.Submit(r.Context(), sub)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, responses.Envelope{"message": message})
	}
}
