package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	Register()
	Register()

	before := testutil.ToFloat64(bookingCreated)
	IncBookingCreated()
	assert.Equal(t, before+1, testutil.ToFloat64(bookingCreated))

	before = testutil.ToFloat64(bookingStatusChanged.WithLabelValues("cancelled"))
	IncBookingStatusChanged("cancelled")
	assert.Equal(t, before+1, testutil.ToFloat64(bookingStatusChanged.WithLabelValues("cancelled")))

	before = testutil.ToFloat64(cacheLookups.WithLabelValues("miss"))
	IncCacheMiss()
	assert.Equal(t, before+1, testutil.ToFloat64(cacheLookups.WithLabelValues("miss")))
}
