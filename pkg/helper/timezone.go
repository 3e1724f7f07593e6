package helper

import (
	"sync"
	"time"
)

var (
	tzMu sync.RWMutex
	// appTimezone holds the application's timezone
	appTimezone *time.Location
)

// InitTimezone initializes the application timezone. Call it once at startup,
// before building anything that captures AppTimezone.
func InitTimezone(timezone string) error {
	if timezone == "" {
		timezone = "UTC"
	}

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		// Fallback to UTC if the requested timezone is not available
		loc = time.UTC
	}

	tzMu.Lock()
	appTimezone = loc
	tzMu.Unlock()

	return err
}

// AppTimezone returns the application timezone, UTC until InitTimezone runs.
func AppTimezone() *time.Location {
	tzMu.RLock()
	defer tzMu.RUnlock()

	if appTimezone == nil {
		return time.UTC
	}

	return appTimezone
}

// NowInAppTimezone returns the current time in the application's timezone
func NowInAppTimezone() time.Time {
	return time.Now().In(AppTimezone())
}

// ToAppTimezone converts a time to the application's timezone
func ToAppTimezone(t time.Time) time.Time {
	return t.In(AppTimezone())
}

// ParseDateInAppTimezone parses a zoneless date string as a time in the application timezone
func ParseDateInAppTimezone(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, AppTimezone())
}

func resetTimezone() {
	tzMu.Lock()
	appTimezone = nil
	tzMu.Unlock()
}
