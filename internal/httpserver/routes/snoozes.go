package routes

import (
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tabnap/tabnap/internal/httpserver/deps"
	"github.com/tabnap/tabnap/internal/httpserver/handlers"
	"github.com/tabnap/tabnap/internal/httpserver/mw"
)

func init() { Register(registerSnoozes) }

func registerSnoozes(r chi.Router, d deps.Deps) {
	guarded := r.With(
		mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger),
		mw.EnforceHost(d.AllowedHosts, d.Logger),
	)

	guarded.Get("/api/snoozes", handlers.ListSnoozes(d))

	// Mutating routes additionally get the per-IP rate limit.
	limited := guarded.With(mw.RateLimit(mw.RateLimitConfig{
		Burst:             10,
		RefillPerIPPerMin: 60,
		MaxEntries:        4096,
		SweepInterval:     time.Minute,
		IdleTTL:           15 * time.Minute,
		TrustProxy:        d.TrustProxy,
	}))
	limited.Post("/api/snoozes", handlers.CreateSnooze(d))
	limited.Post("/api/snoozes/recurring", handlers.CreateRecurring(d))
	limited.Delete("/api/snoozes/{key}", handlers.DeleteSnooze(d))
}
