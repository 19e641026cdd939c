package observability

import (
	"testing"
	"time"
)

func TestRegisterMetricsAndRecordersAreSafe(t *testing.T) {
	RegisterMetrics()
	RegisterMetrics()

	RecordMessage("main-0", "data message")
	RecordDiscard("main-0", "unknown")
	RecordJoin("main-0")
	RecordTxDuration("main-0", "7", 120*time.Millisecond)
}
