// Package symbol normalizes user-supplied trading pair names into the
// exchange's native form.
package symbol

import "strings"

// Normalize converts inputs like "btc/usdt", " ethusdt " or "BTC-USDT"
// into the exchange form ("BTCUSDT"). Empty input stays empty.
func Normalize(raw string) string {
	s := strings.ToUpper(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, "/", "")
	s = strings.ReplaceAll(s, "-", "")
	return s
}

// Valid reports whether s looks like a plausible exchange symbol after
// normalization.
func Valid(s string) bool {
	if len(s) < 5 {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
