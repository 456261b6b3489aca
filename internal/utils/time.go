package utils

import (
	"time"
)

// DayID formats a time as the YYYY-MM-DD key used by daily history
// documents.
func DayID(t time.Time) string {
	return t.Format("2006-01-02")
}
