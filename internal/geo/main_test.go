package geo

import (
	"testing"

	"go.uber.org/goleak"
)

// TestMain ensures no goroutines leak across the package's tests.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
