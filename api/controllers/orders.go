package controllers

import (
	"net/http"

	"github.com/itprodirect/surplus-backend/api/responses"
	"github.com/itprodirect/surplus-backend/api/validators"
	"github.com/itprodirect/surplus-backend/internal/orders"
	pkgerrors "github.com/itprodirect/surplus-backend/pkg/errors"
	"github.com/itprodirect/surplus-backend/pkg/logger"
)

// SubmitOrder handles the public order-request form.
func SubmitOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		var req orders.Request
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		receipt, err := svc.Submit(r.Context(), req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, responses.Envelope{
			"orderId": receipt.OrderID,
			"message": receipt.Message,
		})
	}
}
