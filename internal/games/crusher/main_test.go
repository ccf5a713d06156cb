package crusher

import (
	"testing"

	"go.uber.org/goleak"
)

// Rounds run on the caller's goroutine; nothing may outlive a test.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
