// cors.go — CORS для браузерного клиента (SPA на другом origin).
package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS возвращает middleware с разрешёнными источниками из конфигурации.
// Значение "*" разрешает любой origin без credentials.
func CORS(origins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodHead, http.MethodPost,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{"Authorization", "Content-Type", "Range", HeaderRequestID},
		ExposedHeaders: []string{"Content-Length", "Content-Range", HeaderRequestID},
		MaxAge:         300,
	})
}
