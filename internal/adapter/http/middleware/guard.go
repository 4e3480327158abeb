package middleware

import (
	"context"
	"net/http"

	"github.com/api-sage/bank-ledger/internal/domain"
	"github.com/api-sage/bank-ledger/internal/logger"
)

type AccessChecker interface {
	CanAccess(ctx context.Context, principal domain.Principal, kind domain.ResourceKind, resourceID string) (bool, error)
}

// RequireAdmin denies any principal without the ADMIN role.
func RequireAdmin() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := PrincipalFrom(r.Context())
			if !ok {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			if !principal.IsAdmin() {
				http.Error(w, "access denied", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireOwnership asks the resolver whether the principal may act on
// the {id} path parameter as the given resource kind.
func RequireOwnership(checker AccessChecker, kind domain.ResourceKind) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := PrincipalFrom(r.Context())
			if !ok {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			allowed, err := checker.CanAccess(r.Context(), principal, kind, r.PathValue("id"))
			if err != nil {
				logger.Error("ownership guard resolution failed", err, logger.Fields{
					"method": r.Method,
					"path":   r.URL.Path,
					"kind":   string(kind),
				})
				http.Error(w, "unable to authorize request", http.StatusInternalServerError)
				return
			}
			if !allowed {
				logger.Info("ownership guard denied request", logger.Fields{
					"method":      r.Method,
					"path":        r.URL.Path,
					"kind":        string(kind),
					"principalId": principal.ID,
				})
				http.Error(w, "access denied", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
