package transport

import (
	goerrors "errors"
	"net/http"
	"strings"

	"github.com/muhammadheryan/marketplace/constant"
	utilsContext "github.com/muhammadheryan/marketplace/utils/context"
	"github.com/muhammadheryan/marketplace/utils/errors"
)

// AuthMiddleware validates the bearer token through UserApp and stores the
// caller identity on the request context. Token problems always surface as 401;
// only infrastructure failures reported by UserApp keep their own status.
func (s *RestHandler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
			s.writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
		if token == "" {
			s.writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
			return
		}

		identity, err := s.UserApp.ValidateToken(r.Context(), token)
		if err != nil {
			var ce errors.CustomError
			if goerrors.As(err, &ce) && ce.Type() == constant.ErrServiceUnavailable {
				s.writeError(w, ce)
				return
			}
			s.writeError(w, errors.SetCustomError(constant.ErrUnauthorize).WithMessage("Invalid or expired token").WithCause(err))
			return
		}

		next.ServeHTTP(w, r.WithContext(utilsContext.WithIdentity(r.Context(), identity)))
	})
}

func (s *RestHandler) protect(h http.HandlerFunc) http.Handler {
	return s.AuthMiddleware(h)
}
