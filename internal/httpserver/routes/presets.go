package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/tabnap/tabnap/internal/httpserver/deps"
	"github.com/tabnap/tabnap/internal/httpserver/handlers"
	"github.com/tabnap/tabnap/internal/httpserver/mw"
)

func init() { Register(registerPresets) }

func registerPresets(r chi.Router, d deps.Deps) {
	r.With(mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger), mw.EnforceHost(d.AllowedHosts, d.Logger)).Get("/api/presets", handlers.Presets(d))
}
