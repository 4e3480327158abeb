package router

import (
	"net/http"

	"github.com/api-sage/bank-ledger/internal/adapter/http/controller"
)

type RouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux, guards controller.Guards)
}

func New(guards controller.Guards, registrars ...RouteRegistrar) *http.ServeMux {
	mux := http.NewServeMux()

	for _, registrar := range registrars {
		if registrar != nil {
			registrar.RegisterRoutes(mux, guards)
		}
	}

	return mux
}
