package env

import (
	"os"
	"strings"
)

// First returns the first non-blank value among keys, or fallback.
func First(fallback string, keys ...string) string {
	for _, key := range keys {
		if val := strings.TrimSpace(os.Getenv(key)); val != "" {
			return val
		}
	}
	return fallback
}

// LogFormat selects the logger encoding: "json" (default) or "console".
func LogFormat() string {
	return strings.ToLower(First("json", "STORESVC_LOG_FORMAT", "LOG_FORMAT"))
}
