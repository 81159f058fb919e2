package feature

import "unicode/utf16"

// Bucket maps a tenant id to a stable bucket in [0, 100).
// The hash runs over UTF-16 code units so assignments match the values
// persisted by earlier deployments.
func Bucket(tenantID string) int {
	h := 0
	for _, cu := range utf16.Encode([]rune(tenantID)) {
		h = (h*31 + int(cu)) % 100
	}
	return h
}
