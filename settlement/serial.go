package settlement

import "fmt"

// FormatSerial renders an allocated counter value as a human-readable
// code, e.g. ("O", 42) -> "O-00042". The numeric part is padded to five
// digits and grows unbounded past that.
func FormatSerial(prefix string, value int64) string {
	return fmt.Sprintf("%s-%05d", prefix, value)
}
