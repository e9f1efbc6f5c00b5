// Package lib holds the shared helpers of the SDK integration tests, which
// run the full evaluation flow against a real evaluation API.
package lib

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	sdk "github.com/proctorai/proctor-go/pkg/proctor"
)

// Config holds integration test configuration loaded from environment variables.
type Config struct {
	APIKey string
	APIURL string
}

func (c *Config) defaults() error {
	if c.APIKey == "" {
		return fmt.Errorf("API key is required (PROCTOR_INTEGRATION_API_KEY)")
	}

	return nil
}

// NewConfig loads integration test configuration from environment variables.
// If the activation env var is not set, the test is skipped.
func NewConfig(t *testing.T) Config {
	t.Helper()

	const (
		envActivation = "PROCTOR_INTEGRATION"
		envAPIKey     = "PROCTOR_INTEGRATION_API_KEY"
		envAPIURL     = "PROCTOR_INTEGRATION_API_URL"
	)

	if os.Getenv(envActivation) != "true" {
		t.Skipf("Skipping integration test: %s is not set to 'true'", envActivation)
	}

	c := Config{
		APIKey: os.Getenv(envAPIKey),
		APIURL: os.Getenv(envAPIURL),
	}

	if err := c.defaults(); err != nil {
		t.Skipf("Skipping due to invalid config: %s", err)
	}

	return c
}

// UniqueName generates a unique test name for test isolation.
func UniqueName(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

// NewTestClient creates an SDK client against the real evaluation API.
func NewTestClient(t *testing.T, config Config) *sdk.Client {
	t.Helper()

	client, err := sdk.New(sdk.Config{
		APIKey:  config.APIKey,
		BaseURL: config.APIURL,
	})
	require.NoError(t, err)

	return client
}
