package transport

import (
	"crypto/subtle"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/muhammadheryan/marketplace/constant"
	"github.com/muhammadheryan/marketplace/utils/errors"
)

// InternalMiddleware checks for the static API key in the Authorization header.
// With no key configured every internal request is refused.
func (s *RestHandler) InternalMiddleware() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			want := "Bearer " + s.internalAPIKey
			got := r.Header.Get("Authorization")
			if s.internalAPIKey == "" || subtle.ConstantTimeCompare([]byte(got), []byte(want)) != 1 {
				s.writeError(w, errors.SetCustomError(constant.ErrForbidden).WithMessage("Forbidden"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
