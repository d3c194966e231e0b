package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
)

// Base keys for the per-user data domains. The full key for a user is
// UserKey(base, email).
const (
	KeySymptomEntries = "symptom-entries"
	KeyMedications    = "medications"
)

// Global keys owned by the session manager.
const (
	KeyUsers            = "users"
	KeyCurrentUser      = "currentUser"
	KeyNavigationSource = "navigationSource"
)

// Adapter provides namespaced JSON persistence on top of a flat Store.
// The user-scoped methods mask serialization and storage failures: callers
// see "absent", corruption is logged and discarded. The session manager
// uses the Key variants, which surface errors, because it must tell a
// corrupt value apart from a missing one at startup.
type Adapter struct {
	store Store
	log   *slog.Logger
}

func NewAdapter(store Store, log *slog.Logger) *Adapter {
	if log == nil {
		log = slog.Default()
	}
	return &Adapter{store: store, log: log}
}

// UserKey derives the storage key for one user's slice of a data domain.
// Emails do not contain "-{known base key}" prefixes, so the plain
// concatenation cannot collide across domains in practice.
func UserKey(baseKey, userEmail string) string {
	return fmt.Sprintf("%s-%s", baseKey, userEmail)
}

// Load reads the value stored for (baseKey, userEmail) into dest and
// reports whether anything usable was there. Absent and corrupt are
// indistinguishable to the caller; both mean "no data yet".
func (a *Adapter) Load(ctx context.Context, baseKey, userEmail string, dest any) bool {
	found, err := a.LoadKey(ctx, UserKey(baseKey, userEmail), dest)
	if err != nil {
		a.log.Error("discarding unreadable user data",
			slog.String("baseKey", baseKey), slog.Any("err", err))
		return false
	}
	return found
}

// Save writes the value for (baseKey, userEmail). Failures are logged and
// swallowed; the previously stored value stays intact.
func (a *Adapter) Save(ctx context.Context, baseKey, userEmail string, value any) {
	if err := a.SaveKey(ctx, UserKey(baseKey, userEmail), value); err != nil {
		a.log.Error("could not save user data",
			slog.String("baseKey", baseKey), slog.Any("err", err))
	}
}

// Remove deletes the value for (baseKey, userEmail). Removing an absent
// key is a no-op.
func (a *Adapter) Remove(ctx context.Context, baseKey, userEmail string) {
	if err := a.store.Delete(ctx, UserKey(baseKey, userEmail)); err != nil {
		a.log.Error("could not remove user data",
			slog.String("baseKey", baseKey), slog.Any("err", err))
	}
}

// LoadKey reads and unmarshals a raw key. found is false when the key is
// absent; a stored value that fails to parse returns an error.
func (a *Adapter) LoadKey(ctx context.Context, key string, dest any) (bool, error) {
	raw, found, err := a.store.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if !found {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return false, fmt.Errorf("parse stored %q: %w", key, err)
	}
	return true, nil
}

// SaveKey marshals and writes a raw key.
func (a *Adapter) SaveKey(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("serialize %q: %w", key, err)
	}
	return a.store.Set(ctx, key, string(raw))
}

// RemoveKey deletes a raw key.
func (a *Adapter) RemoveKey(ctx context.Context, key string) error {
	return a.store.Delete(ctx, key)
}
