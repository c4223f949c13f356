package utils

import "time"

// Now returns the current UTC time at the millisecond precision MongoDB stores.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
