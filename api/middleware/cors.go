package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS allows any origin. The forms are public endpoints embedded in a
// static marketing site served from whatever host the owner points at
// them; there is nothing to protect behind an origin allowlist.
func CORS() func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}).Handler
}
