package config

import (
	"errors"
	"fmt"
	"os"
)

// ErrMissingCredentials indicates that username or auth token could not be
// resolved from any source. Callers must not issue network requests after
// seeing it.
var ErrMissingCredentials = errors.New("missing credentials")

// Credentials is the effective (username, token) pair for one invocation.
// Both fields are guaranteed non-empty once Resolve succeeds.
type Credentials struct {
	Username  string
	AuthToken string
}

// Environment variables consumed by Resolve. The short forms are accepted
// because earlier revisions of the tool used them; the long forms win when
// both are set.
const (
	EnvUsername       = "BEEMINDER_USERNAME"
	EnvUsernameShort  = "BEEMINDER_USER"
	EnvAuthToken      = "BEEMINDER_AUTH_TOKEN"
	EnvAuthTokenShort = "BEEMINDER_TOKEN"
)

// Resolve merges credentials from three sources, highest precedence first:
// explicit flag values, environment variables, and the config file at path.
// It performs no network activity. If either field is still empty after the
// merge, Resolve reports which one is missing.
func Resolve(flagUsername, flagToken, path string) (Credentials, error) {
	cfg, err := Load(path)
	if err != nil {
		return Credentials{}, err
	}

	creds := Credentials{
		Username:  firstNonEmpty(flagUsername, envAny(EnvUsername, EnvUsernameShort), cfg.Username),
		AuthToken: firstNonEmpty(flagToken, envAny(EnvAuthToken, EnvAuthTokenShort), cfg.AuthToken),
	}

	var missing []string
	if creds.Username == "" {
		missing = append(missing, "username")
	}
	if creds.AuthToken == "" {
		missing = append(missing, "auth token")
	}
	if len(missing) > 0 {
		return Credentials{}, fmt.Errorf("%w: no %s provided (use flags, BEEMINDER_* environment variables, or %s)",
			ErrMissingCredentials, joinAnd(missing), path)
	}
	return creds, nil
}

func envAny(names ...string) string {
	for _, name := range names {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func joinAnd(items []string) string {
	if len(items) == 1 {
		return items[0]
	}
	return items[0] + " and " + items[1]
}
