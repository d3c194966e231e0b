package handlers

import (
	"encoding/json"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	mw "symptalyze/internal/middleware"
	"symptalyze/internal/models"
	"symptalyze/internal/storage"
)

// Medications are stored per user, like entries, so they survive
// logout/login cycles and never leak between accounts.
type MedicationsHandler struct {
	store *storage.Adapter
}

func NewMedicationsHandler(store *storage.Adapter) *MedicationsHandler {
	return &MedicationsHandler{store: store}
}

var medicationTimeRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

type medicationRequest struct {
	Name string `json:"name"`
	Time string `json:"time"` // HH:MM
}

func (h *MedicationsHandler) List(w http.ResponseWriter, r *http.Request) {
	email := r.Context().Value(mw.UserEmailKey).(string)

	meds := []models.Medication{}
	h.store.Load(r.Context(), storage.KeyMedications, email, &meds)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(meds)
}

func (h *MedicationsHandler) Add(w http.ResponseWriter, r *http.Request) {
	email := r.Context().Value(mw.UserEmailKey).(string)

	var req medicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		http.Error(w, "name required", http.StatusBadRequest)
		return
	}
	if !medicationTimeRegex.MatchString(req.Time) {
		http.Error(w, "time must be HH:MM", http.StatusBadRequest)
		return
	}

	med := models.Medication{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Time:         req.Time,
		TakenToday:   false,
		WeeklyStatus: map[string]*bool{},
	}

	var meds []models.Medication
	h.store.Load(r.Context(), storage.KeyMedications, email, &meds)
	meds = append(meds, med)
	h.store.Save(r.Context(), storage.KeyMedications, email, meds)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(med)
}

// ToggleTaken flips today's taken state and records it in the weekly
// status under today's date.
func (h *MedicationsHandler) ToggleTaken(w http.ResponseWriter, r *http.Request) {
	email := r.Context().Value(mw.UserEmailKey).(string)
	medID := chi.URLParam(r, "id")

	var meds []models.Medication
	h.store.Load(r.Context(), storage.KeyMedications, email, &meds)

	idx := -1
	for i := range meds {
		if meds[i].ID == medID {
			idx = i
			break
		}
	}
	if idx < 0 {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	meds[idx].TakenToday = !meds[idx].TakenToday
	if meds[idx].WeeklyStatus == nil {
		meds[idx].WeeklyStatus = map[string]*bool{}
	}
	taken := meds[idx].TakenToday
	today := time.Now().UTC().Format("2006-01-02")
	meds[idx].WeeklyStatus[today] = &taken

	h.store.Save(r.Context(), storage.KeyMedications, email, meds)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(meds[idx])
}

func (h *MedicationsHandler) Remove(w http.ResponseWriter, r *http.Request) {
	email := r.Context().Value(mw.UserEmailKey).(string)
	medID := chi.URLParam(r, "id")

	var meds []models.Medication
	h.store.Load(r.Context(), storage.KeyMedications, email, &meds)

	kept := meds[:0]
	for _, m := range meds {
		if m.ID != medID {
			kept = append(kept, m)
		}
	}
	if len(kept) == len(meds) {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	h.store.Save(r.Context(), storage.KeyMedications, email, kept)

	w.WriteHeader(http.StatusNoContent)
}
