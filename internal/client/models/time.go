package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// apiTimeLayout is the timestamp format the wallet service emits natively.
const apiTimeLayout = "2006-01-02 15:04:05"

// APITime wraps time.Time and accepts both the service's native
// "2006-01-02 15:04:05" format and RFC 3339 on the wire. Null and empty
// strings decode to the zero time.
type APITime struct {
	time.Time
}

func (t APITime) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(apiTimeLayout))
}

func (t *APITime) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		t.Time = time.Time{}
		return nil
	}

	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw == "" {
		t.Time = time.Time{}
		return nil
	}

	if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
		t.Time = parsed
		return nil
	}
	parsed, err := time.Parse(apiTimeLayout, raw)
	if err != nil {
		return fmt.Errorf("invalid timestamp %q: %w", raw, err)
	}
	t.Time = parsed
	return nil
}
