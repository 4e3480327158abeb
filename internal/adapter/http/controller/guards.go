package controller

import (
	"net/http"

	"github.com/api-sage/bank-ledger/internal/domain"
)

type Middleware func(http.Handler) http.Handler

// Guards bundles the route-level access middleware: Auth resolves the
// principal, Admin requires the ADMIN role, Owner consults the access
// resolver for the {id} path parameter.
type Guards struct {
	Auth  Middleware
	Admin Middleware
	Owner func(domain.ResourceKind) Middleware
}

func chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		if mws[i] != nil {
			h = mws[i](h)
		}
	}
	return h
}
