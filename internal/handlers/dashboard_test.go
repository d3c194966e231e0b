package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardAggregates(t *testing.T) {
	app := newTestApp(t)
	token := app.signup(t, "a@x.com")

	// Posted newest-first to check the trend gets re-sorted oldest-first.
	entries := []map[string]any{
		{"date": "2026-08-22", "symptoms": []string{"Fatigue", "headache"}, "sleepHours": 6, "dietQuality": 2, "exerciseMinutes": 0},
		{"date": "2026-08-20", "symptoms": []string{"nausea"}, "sleepHours": 8, "dietQuality": 4, "exerciseMinutes": 30},
		{"date": "2026-08-21", "symptoms": []string{}, "sleepHours": 7, "dietQuality": 3, "exerciseMinutes": 15},
	}
	for _, e := range entries {
		rec := app.do(t, http.MethodPost, "/api/entries", token, e)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec := app.do(t, http.MethodGet, "/api/dashboard?local_date=2026-08-22", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp dashboardResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, 3, resp.TotalEntries)
	assert.True(t, resp.HasTodayEntry)
	assert.Equal(t, 1, resp.FatigueDays)
	assert.InDelta(t, 7.0, resp.AvgSleepHours, 1e-9)
	assert.InDelta(t, 3.0, resp.AvgDietQuality, 1e-9)
	assert.InDelta(t, 15.0, resp.AvgExerciseMinutes, 1e-9)

	require.Len(t, resp.Trend, 3)
	assert.Equal(t, "2026-08-20T00:00:00Z", resp.Trend[0].Date)
	assert.Equal(t, "2026-08-22T00:00:00Z", resp.Trend[2].Date)
	assert.Equal(t, 1, resp.Trend[2].Fatigue)
	assert.Equal(t, 0, resp.Trend[0].Fatigue)
}

func TestDashboardEmptyJournal(t *testing.T) {
	app := newTestApp(t)
	token := app.signup(t, "a@x.com")

	rec := app.do(t, http.MethodGet, "/api/dashboard", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp dashboardResponse
	decodeBody(t, rec, &resp)
	assert.Zero(t, resp.TotalEntries)
	assert.False(t, resp.HasTodayEntry)
	assert.Zero(t, resp.AvgSleepHours)
	assert.Empty(t, resp.Trend)
}

func TestDashboardRejectsBadReferenceDate(t *testing.T) {
	app := newTestApp(t)
	token := app.signup(t, "a@x.com")

	rec := app.do(t, http.MethodGet, "/api/dashboard?local_date=yesterday", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
