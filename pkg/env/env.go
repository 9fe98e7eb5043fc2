// Package env holds small helpers for reading process environment values
// outside the envconfig-managed configuration path.
package env

import "os"

// Get returns the named variable's value, or fallback when unset or empty.
func Get(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
