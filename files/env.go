package files

import (
	"os"
	"strings"
)

// LookupEnv returns the trimmed value of an environment variable, or
// fallback when it is unset or blank.
func LookupEnv(name, fallback string) string {
	value, ok := os.LookupEnv(name)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback
	}
	return strings.TrimSpace(value)
}
