package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	mw "symptalyze/internal/middleware"
	"symptalyze/internal/models"
	"symptalyze/internal/storage"
)

type EntriesHandler struct {
	store *storage.Adapter
}

func NewEntriesHandler(store *storage.Adapter) *EntriesHandler {
	return &EntriesHandler{store: store}
}

type entryRequest struct {
	Date            string            `json:"date"` // optional; RFC3339 or YYYY-MM-DD
	Symptoms        models.StringList `json:"symptoms"`
	SleepHours      float64           `json:"sleepHours"`
	DietQuality     int               `json:"dietQuality"`
	ExerciseMinutes float64           `json:"exerciseMinutes"`
	Medications     models.StringList `json:"medications"`
}

// Add appends one entry to the user's journal. The journal is append-only:
// there is no edit or delete route.
func (h *EntriesHandler) Add(w http.ResponseWriter, r *http.Request) {
	email := r.Context().Value(mw.UserEmailKey).(string)

	var req entryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	entry := models.SymptomEntry{
		ID:              uuid.NewString(),
		Date:            req.Date,
		Symptoms:        cleanList(req.Symptoms),
		SleepHours:      req.SleepHours,
		DietQuality:     req.DietQuality,
		ExerciseMinutes: req.ExerciseMinutes,
		Medications:     cleanList(req.Medications),
	}
	if msg := normalizeEntry(&entry, time.Now().UTC()); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	var entries []models.SymptomEntry
	h.store.Load(r.Context(), storage.KeySymptomEntries, email, &entries)
	entries = append(entries, entry)
	h.store.Save(r.Context(), storage.KeySymptomEntries, email, entries)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(entry)
}

// List returns the user's full journal, oldest first as stored.
func (h *EntriesHandler) List(w http.ResponseWriter, r *http.Request) {
	email := r.Context().Value(mw.UserEmailKey).(string)

	entries := []models.SymptomEntry{}
	h.store.Load(r.Context(), storage.KeySymptomEntries, email, &entries)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entries)
}

// normalizeEntry validates ranges and fills defaults in place. It returns
// a user-facing message, or "" when the entry is acceptable.
func normalizeEntry(e *models.SymptomEntry, now time.Time) string {
	if e.SleepHours < 0 || e.SleepHours > 24 {
		return "sleepHours must be between 0 and 24"
	}
	if e.DietQuality < 1 || e.DietQuality > 5 {
		return "dietQuality must be between 1 and 5"
	}
	if e.ExerciseMinutes < 0 {
		return "exerciseMinutes must not be negative"
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	switch {
	case e.Date == "":
		e.Date = now.Format(time.RFC3339)
	default:
		if t, err := time.Parse(time.RFC3339, e.Date); err == nil {
			e.Date = t.Format(time.RFC3339)
		} else if t, err := time.Parse("2006-01-02", e.Date); err == nil {
			e.Date = t.Format(time.RFC3339)
		} else {
			return "invalid date; expected RFC3339 or YYYY-MM-DD"
		}
	}
	if e.Symptoms == nil {
		e.Symptoms = models.StringList{}
	}
	if e.Medications == nil {
		e.Medications = models.StringList{}
	}
	return ""
}

// cleanList trims items and drops empties, mirroring how the entry form
// split its comma-separated inputs.
func cleanList(in models.StringList) models.StringList {
	out := models.StringList{}
	for _, s := range in {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
