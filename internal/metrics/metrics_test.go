package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordHTTPRequest(t *testing.T) {
	HTTPRequestsTotal.Reset()
	HTTPRequestDuration.Reset()

	RecordHTTPRequest("POST", "/gyms/:gymID/checkin", "201", 0.02)

	count := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/gyms/:gymID/checkin", "201"))
	assert.Equal(t, float64(1), count)
}

func TestRecordCheckIn(t *testing.T) {
	CheckInsTotal.Reset()

	RecordCheckIn("created", "direct")
	RecordCheckIn("created", "direct")
	RecordCheckIn("denied", "none")

	assert.Equal(t, float64(2), testutil.ToFloat64(CheckInsTotal.WithLabelValues("created", "direct")))
	assert.Equal(t, float64(1), testutil.ToFloat64(CheckInsTotal.WithLabelValues("denied", "none")))
}

func TestRecordDecision(t *testing.T) {
	CheckInDecisionsTotal.Reset()

	RecordDecision("verified")
	RecordDecision("rejected")
	RecordDecision("verified")

	assert.Equal(t, float64(2), testutil.ToFloat64(CheckInDecisionsTotal.WithLabelValues("verified")))
	assert.Equal(t, float64(1), testutil.ToFloat64(CheckInDecisionsTotal.WithLabelValues("rejected")))
}

func TestRecordRealtimePublish(t *testing.T) {
	RealtimePublishesTotal.Reset()

	RecordRealtimePublish("newPendingCheckIn", "ok")
	RecordRealtimePublish("checkInStatusUpdated", "error")

	assert.Equal(t, float64(1), testutil.ToFloat64(RealtimePublishesTotal.WithLabelValues("newPendingCheckIn", "ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(RealtimePublishesTotal.WithLabelValues("checkInStatusUpdated", "error")))
}
