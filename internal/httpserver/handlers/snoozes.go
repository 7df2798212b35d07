package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tabnap/tabnap/internal/browser"
	"github.com/tabnap/tabnap/internal/domain"
	"github.com/tabnap/tabnap/internal/httpserver/deps"
	"github.com/tabnap/tabnap/internal/logger"
)

type createSnoozeRequest struct {
	Hours float64 `json:"hours"`
	URL   string  `json:"url"`
	Title string  `json:"title"`
	TabID int64   `json:"tab_id"`
}

type createRecurringRequest struct {
	Time  string `json:"time"`
	Days  []int  `json:"days"`
	URL   string `json:"url"`
	Title string `json:"title"`
	TabID int64  `json:"tab_id"`
}

type createRecurringResponse struct {
	Record *domain.SnoozeRecord    `json:"record"`
	Config *domain.RecurringConfig `json:"config"`
}

// CreateSnooze handles POST /api/snoozes: snooze the given tab (or the
// bridge's active tab when no URL is supplied) for a fractional-hour delay.
func CreateSnooze(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createSnoozeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, d.Logger, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err))
			return
		}

		tab, err := resolveTab(r, d, req.URL, req.Title, req.TabID)
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}

		rec, err := d.Engine.CreateOneShot(r.Context(), tab, req.Hours)
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}

		writeJSON(w, http.StatusCreated, rec)
	}
}

// CreateRecurring handles POST /api/snoozes/recurring: register a weekly
// schedule and arm its first occurrence.
func CreateRecurring(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createRecurringRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, d.Logger, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err))
			return
		}

		tab, err := resolveTab(r, d, req.URL, req.Title, req.TabID)
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}

		rec, cfg, err := d.Engine.CreateRecurring(r.Context(), tab, req.Time, req.Days)
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}

		writeJSON(w, http.StatusCreated, createRecurringResponse{Record: rec, Config: cfg})
	}
}

// ListSnoozes handles GET /api/snoozes.
func ListSnoozes(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, err := d.Engine.List(r.Context())
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, snap)
	}
}

// DeleteSnooze handles DELETE /api/snoozes/{key}?mode=...; mode defaults to
// removeOnly.
func DeleteSnooze(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "key")

		modeParam := r.URL.Query().Get("mode")
		if modeParam == "" {
			modeParam = string(domain.RemoveOnly)
		}
		mode, err := domain.ParseCancelMode(modeParam)
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}

		if err := d.Engine.Cancel(r.Context(), key, mode); err != nil {
			writeError(w, d.Logger, err)
			return
		}

		d.Logger.Info("snooze removed",
			logger.String("key", key),
			logger.String("mode", string(mode)))
		w.WriteHeader(http.StatusNoContent)
	}
}

// resolveTab builds the tab to snooze from the request body, falling back to
// the bridge's active tab when no URL was supplied.
func resolveTab(r *http.Request, d deps.Deps, url, title string, tabID int64) (browser.Tab, error) {
	if url != "" {
		return browser.Tab{ID: tabID, URL: url, Title: title}, nil
	}
	tab, err := d.Tabs.ActiveTab(r.Context())
	if err != nil {
		return browser.Tab{}, fmt.Errorf("failed to resolve active tab: %w", err)
	}
	return tab, nil
}
