package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	bookingCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "hotelsite",
			Name:      "booking_created_total",
			Help:      "Count of bookings created.",
		},
	)

	bookingConflicts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "hotelsite",
			Name:      "booking_conflict_total",
			Help:      "Count of booking requests rejected because the room was taken.",
		},
	)

	bookingStatusChanged = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hotelsite",
			Name:      "booking_status_changed_total",
			Help:      "Count of booking status transitions by target status.",
		},
		[]string{"status"},
	)

	overrideWarnings = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "hotelsite",
			Name:      "room_override_warning_total",
			Help:      "Count of manual room status changes that contradict live bookings.",
		},
	)

	cacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hotelsite",
			Name:      "cache_lookup_total",
			Help:      "Count of read cache lookups by result.",
		},
		[]string{"result"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(bookingCreated, bookingConflicts, bookingStatusChanged, overrideWarnings, cacheLookups)
	})
}

func IncBookingCreated() {
	bookingCreated.Inc()
}

func IncBookingConflict() {
	bookingConflicts.Inc()
}

func IncBookingStatusChanged(status string) {
	bookingStatusChanged.WithLabelValues(status).Inc()
}

func IncOverrideWarning() {
	overrideWarnings.Inc()
}

func IncCacheHit() {
	cacheLookups.WithLabelValues("hit").Inc()
}

func IncCacheMiss() {
	cacheLookups.WithLabelValues("miss").Inc()
}
