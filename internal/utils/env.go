package utils

import "os"

// SafeEnv reads key from the environment, treating an unset or empty
// variable as absent and returning fallback instead.
func SafeEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}
