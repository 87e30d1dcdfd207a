package itinerary

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// legacyPayload is the shape older clients serialized into an entry's notes.
type legacyPayload struct {
	Title    string      `json:"title"`
	Type     string      `json:"type"`
	Time     string      `json:"time"`
	Location string      `json:"location"`
	Duration looseString `json:"duration"`
	Notes    string      `json:"notes"`
	Cost     looseNumber `json:"cost"`
}

// looseString accepts a JSON string or number ("1 hour" or 90).
type looseString string

func (s *looseString) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*s = ""
		return nil
	}
	var str string
	if err := json.Unmarshal(b, &str); err == nil {
		*s = looseString(str)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("want string or number, got %s", b)
	}
	*s = looseString(n.String() + " minutes")
	return nil
}

// looseNumber accepts a JSON number or a numeric string (20 or "20").
type looseNumber float64

func (n *looseNumber) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*n = 0
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		*n = looseNumber(f)
		return nil
	}
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return fmt.Errorf("want number or numeric string, got %s", b)
	}
	str = strings.TrimSpace(str)
	if str == "" {
		*n = 0
		return nil
	}
	f, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return fmt.Errorf("cost %q is not a number", str)
	}
	*n = looseNumber(f)
	return nil
}

// parseLegacy decodes a legacy notes payload into an ActivityEntry.
// The payload must be a JSON object; anything else is malformed.
func parseLegacy(raw string) (domain.ActivityEntry, error) {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "{") {
		return domain.ActivityEntry{}, errors.New("notes are not a JSON object")
	}

	var p legacyPayload
	if err := json.Unmarshal([]byte(trimmed), &p); err != nil {
		return domain.ActivityEntry{}, err
	}

	a := domain.ActivityEntry{
		Title:    p.Title,
		Type:     domain.NormalizeActivityType(p.Type),
		Time:     p.Time,
		Location: p.Location,
		Duration: string(p.Duration),
		Notes:    p.Notes,
		Cost:     float64(p.Cost),
	}
	if a.Time == "" {
		a.Time = domain.DefaultActivityTime
	}
	return a, nil
}
