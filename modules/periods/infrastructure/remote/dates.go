package remote

import (
	"strings"
	"time"

	"github.com/jinzhu/now"
)

// parseDate accepts RFC 3339 timestamps and looser forms such as "2024-01-31".
// Values without a zone are read in loc; the result is expressed in loc.
func parseDate(raw string, loc *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t.In(loc), nil
	}
	return now.ParseInLocation(loc, raw)
}

func formatDate(t time.Time) string {
	return t.Format(time.RFC3339)
}
