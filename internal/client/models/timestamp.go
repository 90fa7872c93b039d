package models

import (
	"encoding/json"
	"time"
)

// naiveLayout is the ISO-8601 form without zone the server emits for
// datetime columns. Such values are UTC.
const naiveLayout = "2006-01-02T15:04:05.999999999"

// Timestamp is a time.Time that also accepts zone-less ISO-8601 values.
type Timestamp struct {
	time.Time
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.UTC().Format(time.RFC3339Nano))
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var s *string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == nil || *s == "" {
		t.Time = time.Time{}
		return nil
	}

	if parsed, err := time.Parse(time.RFC3339Nano, *s); err == nil {
		t.Time = parsed
		return nil
	}

	parsed, err := time.ParseInLocation(naiveLayout, *s, time.UTC)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}
