// pkg/svcconfig/envvars.go

package svcconfig

import (
	"strings"

	cerr "github.com/cockroachdb/errors"
)

// ParseEnvVars splits one line of KEY=VALUE tokens on spaces, treating
// double-quoted runs as single tokens. Quote characters toggle the run and
// are dropped from the token, so `A=1 "B=two words"` yields
// ["A=1", "B=two words"]. An empty line yields an empty list.
func ParseEnvVars(line string) []string {
	parts := []string{}
	var current strings.Builder
	inQuotes := false

	for _, ch := range line {
		switch {
		case ch == '"':
			inQuotes = !inQuotes
		case ch == ' ' && !inQuotes:
			if current.Len() > 0 {
				parts = append(parts, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(ch)
		}
	}

	if current.Len() > 0 {
		parts = append(parts, current.String())
	}
	return parts
}

// ValidateEnvVar checks that token is KEY=VALUE with a non-empty key.
func ValidateEnvVar(token string) error {
	key, _, found := strings.Cut(token, "=")
	if !found {
		return cerr.Newf("environment variable %q must be KEY=VALUE", token)
	}
	if key == "" {
		return cerr.Newf("environment variable %q has an empty key", token)
	}
	return nil
}
