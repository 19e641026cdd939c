package testlog

import (
	"testing"

	"github.com/rs/zerolog"
)

// New returns a logger that writes through t.Log, so node output lands
// next to the test that produced it.
func New(t *testing.T) zerolog.Logger {
	t.Helper()
	return zerolog.New(zerolog.NewTestWriter(t)).With().Timestamp().Logger()
}
