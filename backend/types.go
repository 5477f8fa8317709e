package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"strconv"
)

// UserRecord is a user as the backend stores it: named fields plus whatever
// extra attributes callers attach. Email is the lookup key.
type UserRecord map[string]any

func (r UserRecord) Email() string {
	s, _ := r["email"].(string)
	return s
}

func (r UserRecord) ID() string {
	switch v := r["id"].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return ""
}

func (r UserRecord) Clone() UserRecord {
	if r == nil {
		return UserRecord{}
	}
	return maps.Clone(r)
}

// Merge returns a new record holding every field of r overridden by every
// field of newer. Neither input is modified.
func (r UserRecord) Merge(newer UserRecord) UserRecord {
	out := r.Clone()
	maps.Copy(out, newer)
	return out
}

// Flag decodes the boolean-ish values the backend emits for flags: JSON
// booleans, 0/1 numbers, or their string forms.
type Flag bool

func (f *Flag) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = false
		return nil
	}

	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch t := v.(type) {
	case bool:
		*f = Flag(t)
	case float64:
		*f = t != 0
	case string:
		parsed, err := strconv.ParseBool(t)
		if err != nil {
			return fmt.Errorf("invalid flag %q", t)
		}
		*f = Flag(parsed)
	default:
		return fmt.Errorf("invalid flag %s", string(b))
	}
	return nil
}

type Session struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	Status       string `json:"status"`
	RegisteredAt string `json:"registered_at,omitempty"`
	Attended     Flag   `json:"attended"`
}

type RegistrationResult struct {
	Registered   bool   `json:"registered,omitempty"`
	Unregistered bool   `json:"unregistered,omitempty"`
	SessionID    string `json:"session_id,omitempty"`
	Message      string `json:"message,omitempty"`
}

type registration struct {
	Email     string `json:"email"`
	SessionID string `json:"session_id"`
}
