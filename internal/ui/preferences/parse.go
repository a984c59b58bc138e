package preferences

import "strconv"

// parseBoundedInt converts form input to a duration in seconds. Non-numeric
// or out-of-range input is rejected so the caller keeps the previous valid
// value instead of failing.
func parseBoundedInt(value string, min, max int) (int, bool) {
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < min || parsed > max {
		return 0, false
	}
	return parsed, true
}
