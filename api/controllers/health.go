package controllers

import (
	"context"
	"net/http"

	"github.com/itprodirect/surplus-backend/api/responses"
	"github.com/itprodirect/surplus-backend/pkg/config"
	pkgerrors "github.com/itprodirect/surplus-backend/pkg/errors"
	"github.com/itprodirect/surplus-backend/pkg/logger"
)

type pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-App-Env", cfg.App.Env)
		responses.WriteSuccess(w, responses.Envelope{"status": "live"})
	}
}

// HealthReady pings the catalog database and, when configured, redis.
// Pingers may be nil; a nil dependency is simply skipped.
func HealthReady(cfg *config.Config, logg *logger.Logger, deps ...pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-App-Env", cfg.App.Env)
		for _, dep := range deps {
			if dep == nil {
				continue
			}
			if err := dep.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "dependency not ready"))
				return
			}
		}
		responses.WriteSuccess(w, responses.Envelope{"status": "ready"})
	}
}
