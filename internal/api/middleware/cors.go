package middleware

import (
	"net/http"
	"strings"

	"github.com/go-chi/cors"
)

// CORS returns a CORS middleware with the given allowed origins
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"Accept", "Content-Type", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
		MaxAge:         300,
	})
}

// DefaultCORS allows the configured frontend, plus the usual dev servers when
// the frontend itself runs locally.
func DefaultCORS(frontendURL string) func(http.Handler) http.Handler {
	origins := []string{frontendURL}

	if strings.Contains(frontendURL, "localhost") || strings.Contains(frontendURL, "127.0.0.1") {
		for _, host := range []string{"localhost", "127.0.0.1"} {
			for _, port := range []string{"3000", "5173"} {
				origin := "http://" + host + ":" + port
				if origin != frontendURL {
					origins = append(origins, origin)
				}
			}
		}
	}

	return CORS(origins)
}
