package utils

import (
	"time"
)

// FormatGeneratedTimestamp returns the provided time in RFC 3339 form for
// context document headers. A zero time yields an empty string.
func FormatGeneratedTimestamp(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.Format(time.RFC3339)
}
