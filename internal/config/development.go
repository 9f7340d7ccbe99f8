package config

import (
	"os"
	"strconv"
)

// Development reports whether DEVELOPMENT is set to a true value.
// Anything unparsable other than "0" counts as set.
func Development() bool {
	development, ok := os.LookupEnv("DEVELOPMENT")
	if !ok || development == "" {
		return false
	}
	on, err := strconv.ParseBool(development)
	if err != nil {
		return development != "0"
	}
	return on
}
