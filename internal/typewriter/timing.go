package typewriter

import "time"

// CharsToShow returns how many characters are revealed after elapsed time
// at one character per interval, clamped to [0, total]. A non-positive
// interval reveals everything at once.
func CharsToShow(elapsed, interval time.Duration, total int) int {
	if interval <= 0 {
		return total
	}
	if elapsed <= 0 {
		return 0
	}
	n := elapsed / interval
	if n >= time.Duration(total) {
		return total
	}
	return int(n)
}

// BlinkOn reports whether a blinking element is in its visible phase.
// Visibility toggles every period, starting hidden.
func BlinkOn(elapsed, period time.Duration) bool {
	if period <= 0 {
		return true
	}
	if elapsed < 0 {
		return false
	}
	return (elapsed/period)%2 == 1
}
