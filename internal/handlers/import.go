package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	mw "symptalyze/internal/middleware"
	"symptalyze/internal/models"
	"symptalyze/internal/storage"
)

// ImportHandler receives the data an existing installation kept in browser
// localStorage and moves it server-side under the same per-user keys.
type ImportHandler struct {
	store *storage.Adapter
}

func NewImportHandler(store *storage.Adapter) *ImportHandler {
	return &ImportHandler{store: store}
}

type ImportRequest struct {
	Entries     []models.SymptomEntry `json:"entries"`
	Medications []models.Medication   `json:"medications"`
}

// ImportData godoc
// @Summary Import client-side data
// @Description Receives symptom entries and/or medications previously held in browser storage and appends them for the authenticated user
// @Tags import
// @Accept json
// @Produce json
// @Param data body ImportRequest true "Import data"
// @Success 201 {object} map[string]interface{} "Data imported successfully"
// @Failure 400 {string} string "Bad request"
// @Router /import [post]
func (h *ImportHandler) ImportData(w http.ResponseWriter, r *http.Request) {
	email := r.Context().Value(mw.UserEmailKey).(string)

	var req ImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.Entries) == 0 && len(req.Medications) == 0 {
		http.Error(w, "no entries or medications provided", http.StatusBadRequest)
		return
	}

	// Validate everything before writing anything; one save per key is the
	// store's atomic unit, so a bad record must not leave a partial batch.
	now := time.Now().UTC()
	for i := range req.Entries {
		req.Entries[i].Symptoms = cleanList(req.Entries[i].Symptoms)
		req.Entries[i].Medications = cleanList(req.Entries[i].Medications)
		if msg := normalizeEntry(&req.Entries[i], now); msg != "" {
			http.Error(w, fmt.Sprintf("invalid entry %d: %s", i, msg), http.StatusBadRequest)
			return
		}
	}
	for i := range req.Medications {
		req.Medications[i].Name = strings.TrimSpace(req.Medications[i].Name)
		if req.Medications[i].Name == "" {
			http.Error(w, fmt.Sprintf("invalid medication %d: name required", i), http.StatusBadRequest)
			return
		}
		if !medicationTimeRegex.MatchString(req.Medications[i].Time) {
			http.Error(w, fmt.Sprintf("invalid medication %d: time must be HH:MM", i), http.StatusBadRequest)
			return
		}
		if req.Medications[i].ID == "" {
			req.Medications[i].ID = uuid.NewString()
		}
	}

	entriesImported := 0
	if len(req.Entries) > 0 {
		var entries []models.SymptomEntry
		h.store.Load(r.Context(), storage.KeySymptomEntries, email, &entries)
		entries = append(entries, req.Entries...)
		h.store.Save(r.Context(), storage.KeySymptomEntries, email, entries)
		entriesImported = len(req.Entries)
	}

	medicationsImported := 0
	if len(req.Medications) > 0 {
		var meds []models.Medication
		h.store.Load(r.Context(), storage.KeyMedications, email, &meds)
		existing := make(map[string]bool, len(meds))
		for _, m := range meds {
			existing[m.ID] = true
		}
		for _, m := range req.Medications {
			if existing[m.ID] {
				continue
			}
			existing[m.ID] = true
			meds = append(meds, m)
			medicationsImported++
		}
		h.store.Save(r.Context(), storage.KeyMedications, email, meds)
	}

	response := map[string]interface{}{
		"message":              "Data imported successfully",
		"entries_imported":     entriesImported,
		"medications_imported": medicationsImported,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(response)
}
