package app

import (
	"fmt"
	"os"
	"strings"
)

// TokenEnvKey names the environment variable carrying the partner API
// bearer credential. A "_FILE" suffixed variant may point at a file
// holding the value instead, for secret mounts.
const TokenEnvKey = "KRL_PARTNER_TOKEN"

type MissingEnvironmentKey string

func (k MissingEnvironmentKey) Error() string {
	return fmt.Sprintf("%s environment variable not set", string(k))
}

// BearerToken loads the partner credential from the environment.
func BearerToken() (string, error) {
	return secretFromEnvironment(TokenEnvKey)
}

func secretFromEnvironment(key string) (string, error) {
	value := os.Getenv(key)
	path := os.Getenv(key + "_FILE")
	if value == "" && path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		value = string(content)
	}

	if value == "" {
		return "", MissingEnvironmentKey(key)
	}
	return strings.TrimSpace(value), nil
}
