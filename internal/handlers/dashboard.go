package handlers

import (
	"encoding/json"
	"net/http"
	"sort"
	"strings"
	"time"

	mw "symptalyze/internal/middleware"
	"symptalyze/internal/models"
	"symptalyze/internal/storage"
)

type DashboardHandler struct {
	store *storage.Adapter
}

func NewDashboardHandler(store *storage.Adapter) *DashboardHandler {
	return &DashboardHandler{store: store}
}

// trendPoint is one charted entry. Fatigue is 1 when any logged symptom
// mentions fatigue, which the symptom chart plots as its own series.
type trendPoint struct {
	Date            string  `json:"date"`
	SleepHours      float64 `json:"sleepHours"`
	ExerciseMinutes float64 `json:"exerciseMinutes"`
	DietQuality     int     `json:"dietQuality"`
	Fatigue         int     `json:"fatigue"`
}

type dashboardResponse struct {
	TotalEntries       int          `json:"total_entries"`
	HasTodayEntry      bool         `json:"has_today_entry"`
	AvgSleepHours      float64      `json:"avg_sleep_hours"`
	AvgDietQuality     float64      `json:"avg_diet_quality"`
	AvgExerciseMinutes float64      `json:"avg_exercise_minutes"`
	FatigueDays        int          `json:"fatigue_days"`
	Trend              []trendPoint `json:"trend"`
}

// Get aggregates the user's journal into the numbers and per-entry points
// the trend charts render. Accepts optional query param:
// local_date=YYYY-MM-DD to use as the user's "today".
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	email := r.Context().Value(mw.UserEmailKey).(string)

	today := time.Now().UTC().Format("2006-01-02")
	if refDateStr := r.URL.Query().Get("local_date"); refDateStr != "" {
		refDate, err := time.Parse("2006-01-02", refDateStr)
		if err != nil {
			http.Error(w, "invalid local_date format; expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		today = refDate.Format("2006-01-02")
	}

	var entries []models.SymptomEntry
	h.store.Load(r.Context(), storage.KeySymptomEntries, email, &entries)

	resp := dashboardResponse{
		TotalEntries: len(entries),
		Trend:        make([]trendPoint, 0, len(entries)),
	}

	var sleepSum, dietSum, exerciseSum float64
	for _, e := range entries {
		fatigue := 0
		if hasFatigue(e.Symptoms) {
			fatigue = 1
			resp.FatigueDays++
		}
		if strings.HasPrefix(e.Date, today) {
			resp.HasTodayEntry = true
		}
		sleepSum += e.SleepHours
		dietSum += float64(e.DietQuality)
		exerciseSum += e.ExerciseMinutes
		resp.Trend = append(resp.Trend, trendPoint{
			Date:            e.Date,
			SleepHours:      e.SleepHours,
			ExerciseMinutes: e.ExerciseMinutes,
			DietQuality:     e.DietQuality,
			Fatigue:         fatigue,
		})
	}
	if len(entries) > 0 {
		n := float64(len(entries))
		resp.AvgSleepHours = sleepSum / n
		resp.AvgDietQuality = dietSum / n
		resp.AvgExerciseMinutes = exerciseSum / n
	}

	// Charts expect points oldest-first regardless of journal order.
	sort.Slice(resp.Trend, func(i, j int) bool {
		return resp.Trend[i].Date < resp.Trend[j].Date
	})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func hasFatigue(symptoms models.StringList) bool {
	for _, s := range symptoms {
		if strings.Contains(strings.ToLower(s), "fatigue") {
			return true
		}
	}
	return false
}
