package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

var standardMethods = []string{
	http.MethodGet,
	http.MethodHead,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodOptions,
}

// CORS allows every method and header from the configured origins, with
// credentials. rs/cors only matches methods from a fixed list, so requests
// for any other method get a policy built for that method alone.
type CORS struct {
	options  cors.Options
	standard *cors.Cors
}

func NewCORS(allowedOrigins []string) *CORS {
	options := cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   standardMethods,
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           600,
	}
	return &CORS{options: options, standard: cors.New(options)}
}

func (c *CORS) Handler(next http.Handler) http.Handler {
	standard := c.standard.Handler(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method := requestedMethod(r)
		if method == "" || isStandardMethod(method) {
			standard.ServeHTTP(w, r)
			return
		}

		options := c.options
		options.AllowedMethods = []string{method}
		cors.New(options).Handler(next).ServeHTTP(w, r)
	})
}

// requestedMethod is the method a preflight asks about, or the method of
// the request itself.
func requestedMethod(r *http.Request) string {
	if r.Method == http.MethodOptions {
		if method := r.Header.Get("Access-Control-Request-Method"); method != "" {
			return method
		}
	}
	return r.Method
}

func isStandardMethod(method string) bool {
	for _, m := range standardMethods {
		if m == method {
			return true
		}
	}
	return false
}
