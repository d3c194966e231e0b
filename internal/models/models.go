package models

import "encoding/json"

// User is a registered account. The password is stored as-is to keep the
// persisted layout identical to the frontend's original localStorage
// format; API responses must go through handlers.UserDTO instead.
type User struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Name      string `json:"name"`
	Gender    string `json:"gender"`   // male | female | other
	Birthday  string `json:"birthday"` // YYYY-MM-DD
	Age       int    `json:"age"`      // derived from birthday at signup, never recomputed
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// SymptomEntry is one record in a user's append-only health journal.
type SymptomEntry struct {
	ID              string     `json:"id"`
	Date            string     `json:"date"` // RFC3339
	Symptoms        StringList `json:"symptoms"`
	SleepHours      float64    `json:"sleepHours"`
	DietQuality     int        `json:"dietQuality"` // 1-5
	ExerciseMinutes float64    `json:"exerciseMinutes"`
	Medications     StringList `json:"medications"`
}

// Medication is a recurring reminder. WeeklyStatus maps YYYY-MM-DD to
// taken (true), skipped (false) or not logged (null).
type Medication struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Time         string           `json:"time"` // HH:MM
	TakenToday   bool             `json:"takenToday"`
	WeeklyStatus map[string]*bool `json:"weeklyStatus,omitempty"`
}

// StringList is a []string that also accepts a bare JSON string, coercing
// it to a one-element list. Early frontend versions saved symptoms as a
// single string; normalizing at the codec boundary keeps every consumer on
// the list form.
type StringList []string

func (s *StringList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*s = list
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	if single == "" {
		*s = StringList{}
		return nil
	}
	*s = StringList{single}
	return nil
}
