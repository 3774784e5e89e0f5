package middleware

import (
	"net/http"

	"landmark-catalog/internal/api/handlers"
	apperrors "landmark-catalog/internal/pkg/errors"
	"landmark-catalog/internal/services"
)

// AdminMiddleware requires an Authorization header the verifier accepts.
// A missing header is a validation error (422), a rejected one is 403.
func AdminMiddleware(verifier services.CredentialVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			values, present := r.Header["Authorization"]
			if !present || len(values) == 0 {
				verr := apperrors.NewValidationError(apperrors.FieldError{
					Loc:  []string{"header", "authorization"},
					Msg:  "field required",
					Type: "missing",
				})
				handlers.RespondWithServiceError(w, r, verr, "")
				return
			}

			if err := verifier.VerifyAdmin(r.Context(), values[0]); err != nil {
				handlers.RespondWithServiceError(w, r, err, "")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
