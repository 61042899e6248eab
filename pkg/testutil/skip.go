package testutil

import (
	"os"
	"testing"
)

// RequireIntegration gates tests that need live infrastructure. They run
// locally by default, honor -short, and in CI only run when
// INTEGRATION_TESTS=1 is set.
func RequireIntegration(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	if os.Getenv("INTEGRATION_TESTS") == "" && os.Getenv("CI") != "" {
		t.Skip("skipping integration test (set INTEGRATION_TESTS=1 to run)")
	}
}
