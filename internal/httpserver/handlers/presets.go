package handlers

import (
	"net/http"

	"github.com/tabnap/tabnap/internal/httpserver/deps"
	"github.com/tabnap/tabnap/internal/sources/presets"
)

type presetsResponse struct {
	Options []presets.Option `json:"options"`
}

// Presets handles GET /api/presets: the snooze options worth offering right
// now, with their delays resolved against the current clock.
func Presets(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		options := presets.Compute(d.Now(), d.Presets)
		writeJSON(w, http.StatusOK, presetsResponse{Options: options})
	}
}
