package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringListUnmarshal(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want StringList
	}{
		{"array", `["headache","fatigue"]`, StringList{"headache", "fatigue"}},
		{"empty array", `[]`, StringList{}},
		{"legacy single string", `"headache"`, StringList{"headache"}},
		{"legacy empty string", `""`, StringList{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got StringList
			require.NoError(t, json.Unmarshal([]byte(tc.raw), &got))
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestStringListUnmarshalRejectsOtherTypes(t *testing.T) {
	var got StringList
	require.Error(t, json.Unmarshal([]byte(`42`), &got))
}

func TestSymptomEntryLegacyRecord(t *testing.T) {
	raw := `{"id":"1","date":"2026-08-01T09:00:00Z","symptoms":"fatigue","sleepHours":8,"dietQuality":3,"exerciseMinutes":0,"medications":[]}`
	var e SymptomEntry
	require.NoError(t, json.Unmarshal([]byte(raw), &e))
	assert.Equal(t, StringList{"fatigue"}, e.Symptoms)
	assert.Equal(t, StringList{}, e.Medications)
}

func TestMedicationWeeklyStatusRoundTrip(t *testing.T) {
	taken := true
	skipped := false
	m := Medication{
		ID:         "1",
		Name:       "Metformin",
		Time:       "08:00",
		TakenToday: true,
		WeeklyStatus: map[string]*bool{
			"2026-08-27": &taken,
			"2026-08-28": &skipped,
			"2026-08-29": nil,
		},
	}
	raw, err := json.Marshal(m)
	require.NoError(t, err)

	var out Medication
	require.NoError(t, json.Unmarshal(raw, &out))
	require.NotNil(t, out.WeeklyStatus["2026-08-27"])
	assert.True(t, *out.WeeklyStatus["2026-08-27"])
	require.NotNil(t, out.WeeklyStatus["2026-08-28"])
	assert.False(t, *out.WeeklyStatus["2026-08-28"])
	assert.Nil(t, out.WeeklyStatus["2026-08-29"])
}
