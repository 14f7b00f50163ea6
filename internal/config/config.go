package config

import "os"

// Get returns the environment variable's value, or fallback when unset or
// empty. Env files are loaded by the composition roots via godotenv before
// any Get call.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
