package util

import (
	"cmp"
	"slices"
	"strings"
)

// SortedKeys returns the keys of a map in ascending order.
func SortedKeys[K cmp.Ordered, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// MaskSecret hides sensitive parts of a string for safe display in logs.
// If the string is not longer than visiblePrefix, it is fully masked.
func MaskSecret(s string, visiblePrefix int) string {
	if len(s) <= visiblePrefix {
		return "***"
	}
	return s[:visiblePrefix] + "***"
}

// EnvKey converts a dotted or dashed structured-config path to the
// upper-case underscore form used by environment variables:
//
//	database.host   -> DATABASE_HOST
//	http.cors-origins -> HTTP_CORS_ORIGINS
func EnvKey(path string) string {
	r := strings.NewReplacer(".", "_", "-", "_")
	return strings.ToUpper(r.Replace(path))
}
