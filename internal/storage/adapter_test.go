package storage

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"symptalyze/internal/models"
)

func newTestAdapter(t *testing.T) (*Adapter, *MemoryStore) {
	t.Helper()
	store := NewMemoryStore()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewAdapter(store, log), store
}

func TestUserKey(t *testing.T) {
	assert.Equal(t, "symptom-entries-a@x.com", UserKey(KeySymptomEntries, "a@x.com"))
	assert.Equal(t, "medications-a@x.com", UserKey(KeyMedications, "a@x.com"))
	assert.NotEqual(t, UserKey(KeySymptomEntries, "a@x.com"), UserKey(KeySymptomEntries, "b@x.com"))
}

func TestRoundTrip(t *testing.T) {
	a, _ := newTestAdapter(t)
	ctx := context.Background()

	in := []models.SymptomEntry{
		{
			ID:              "1",
			Date:            "2026-08-01T09:00:00Z",
			Symptoms:        models.StringList{"headache", "fatigue"},
			SleepHours:      7.5,
			DietQuality:     4,
			ExerciseMinutes: 30,
			Medications:     models.StringList{"ibuprofen"},
		},
	}
	a.Save(ctx, KeySymptomEntries, "a@x.com", in)

	var out []models.SymptomEntry
	require.True(t, a.Load(ctx, KeySymptomEntries, "a@x.com", &out))
	assert.Equal(t, in, out)
}

func TestLoadAbsent(t *testing.T) {
	a, _ := newTestAdapter(t)

	var out []models.Medication
	assert.False(t, a.Load(context.Background(), KeyMedications, "a@x.com", &out))
	assert.Nil(t, out)
}

func TestLoadCorruptValueYieldsAbsent(t *testing.T) {
	a, store := newTestAdapter(t)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, UserKey(KeySymptomEntries, "a@x.com"), "definitely-not-json"))

	var out []models.SymptomEntry
	assert.False(t, a.Load(ctx, KeySymptomEntries, "a@x.com", &out))

	_, err := a.LoadKey(ctx, UserKey(KeySymptomEntries, "a@x.com"), &out)
	require.Error(t, err)
}

func TestRemoveIdempotent(t *testing.T) {
	a, _ := newTestAdapter(t)
	ctx := context.Background()

	a.Save(ctx, KeyMedications, "a@x.com", []models.Medication{{ID: "1", Name: "aspirin", Time: "08:00"}})
	a.Remove(ctx, KeyMedications, "a@x.com")
	a.Remove(ctx, KeyMedications, "a@x.com") // absent key, still fine

	var out []models.Medication
	assert.False(t, a.Load(ctx, KeyMedications, "a@x.com", &out))
}

func TestDataScopedPerUser(t *testing.T) {
	a, _ := newTestAdapter(t)
	ctx := context.Background()

	a.Save(ctx, KeySymptomEntries, "a@x.com", []models.SymptomEntry{{ID: "1"}})

	var out []models.SymptomEntry
	assert.False(t, a.Load(ctx, KeySymptomEntries, "b@x.com", &out))
}

// failingStore rejects writes, simulating a full backing store.
type failingStore struct {
	*MemoryStore
	setErr error
}

func (s *failingStore) Set(ctx context.Context, key, value string) error {
	if s.setErr != nil {
		return s.setErr
	}
	return s.MemoryStore.Set(ctx, key, value)
}

func TestSaveFailureKeepsPriorValue(t *testing.T) {
	fs := &failingStore{MemoryStore: NewMemoryStore()}
	a := NewAdapter(fs, slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx := context.Background()

	a.Save(ctx, KeyMedications, "a@x.com", []models.Medication{{ID: "1", Name: "aspirin", Time: "08:00"}})

	fs.setErr = errors.New("quota exceeded")
	a.Save(ctx, KeyMedications, "a@x.com", []models.Medication{{ID: "2", Name: "other", Time: "09:00"}})

	var out []models.Medication
	require.True(t, a.Load(ctx, KeyMedications, "a@x.com", &out))
	require.Len(t, out, 1)
	assert.Equal(t, "1", out[0].ID)
}
