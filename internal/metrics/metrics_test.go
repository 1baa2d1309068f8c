package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordResolution(t *testing.T) {
	hits := testutil.ToFloat64(ShortLinkResolutions.WithLabelValues("hit"))
	misses := testutil.ToFloat64(ShortLinkResolutions.WithLabelValues("miss"))

	RecordResolution(true)
	RecordResolution(false)
	RecordResolution(false)

	assert.Equal(t, hits+1, testutil.ToFloat64(ShortLinkResolutions.WithLabelValues("hit")))
	assert.Equal(t, misses+2, testutil.ToFloat64(ShortLinkResolutions.WithLabelValues("miss")))
}

func TestRecordHTTPRequest(t *testing.T) {
	before := testutil.CollectAndCount(HTTPRequestDuration)
	RecordHTTPRequest("GET", "/s/:code", 302, 15*time.Millisecond)
	assert.GreaterOrEqual(t, testutil.CollectAndCount(HTTPRequestDuration), before)
	assert.GreaterOrEqual(t, testutil.CollectAndCount(HTTPRequestDuration), 1)
}
