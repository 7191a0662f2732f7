package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func datePtr(s string) *time.Time {
	d := MustDate(s)
	return &d
}

func TestTakenWindowOverlaps(t *testing.T) {
	tests := []struct {
		name   string
		window TakenWindow
		start  string
		end    string
		want   bool
	}{
		{"bounded inside", TakenWindow{datePtr("2024-07-01"), datePtr("2024-07-10")}, "2024-07-03", "2024-07-05", true},
		{"bounded ends on from", TakenWindow{datePtr("2024-07-01"), datePtr("2024-07-10")}, "2024-06-28", "2024-07-01", false},
		{"bounded starts on until", TakenWindow{datePtr("2024-07-01"), datePtr("2024-07-10")}, "2024-07-10", "2024-07-12", false},
		{"open ended after from", TakenWindow{From: datePtr("2024-07-01")}, "2024-06-30", "2024-07-02", true},
		{"open ended before from", TakenWindow{From: datePtr("2024-07-01")}, "2024-06-01", "2024-06-30", false},
		{"open start before until", TakenWindow{Until: datePtr("2024-07-01")}, "2024-06-30", "2024-07-02", true},
		{"open start from until", TakenWindow{Until: datePtr("2024-07-01")}, "2024-07-01", "2024-07-02", false},
		{"permanent", TakenWindow{}, "2030-01-01", "2030-01-02", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.window.Overlaps(MustDate(tt.start), MustDate(tt.end))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRoomTakenWindow(t *testing.T) {
	room := &Room{ManualStatus: ManualStatusAvailable, TakenFrom: datePtr("2024-07-01")}
	_, ok := room.TakenWindow()
	assert.False(t, ok, "available rooms never carry an effective window")

	room.ManualStatus = ManualStatusTaken
	assert.True(t, room.BlocksRange(MustDate("2024-07-01"), MustDate("2024-07-02")))
	assert.False(t, room.BlocksRange(MustDate("2024-06-29"), MustDate("2024-07-01")))

	room.ClearTakenWindow()
	assert.Equal(t, ManualStatusAvailable, room.ManualStatus)
	assert.Nil(t, room.TakenFrom)
	assert.Nil(t, room.TakenUntil)
}

func TestBookingStatusOccupying(t *testing.T) {
	occupying := map[BookingStatus]bool{
		BookingStatusPending:    true,
		BookingStatusConfirmed:  true,
		BookingStatusCheckedIn:  true,
		BookingStatusCheckedOut: false,
		BookingStatusCancelled:  false,
	}
	for _, s := range AllBookingStatuses {
		assert.Equal(t, occupying[s], s.Occupying(), s)
		assert.True(t, s.Valid())
	}
	assert.False(t, BookingStatus("archived").Valid())
	assert.False(t, BookingStatus("archived").Occupying())
}

func TestParseEnums(t *testing.T) {
	_, err := ParseBookingStatus("done")
	assert.Error(t, err)
	st, err := ParseBookingStatus("checked_in")
	require.NoError(t, err)
	assert.Equal(t, BookingStatusCheckedIn, st)

	_, err = ParseRoomType("villa")
	assert.Error(t, err)
	_, err = ParseManualStatus("maintenance")
	assert.Error(t, err)
}

func TestBookingDates(t *testing.T) {
	b := &Booking{CheckInDate: MustDate("2024-06-10"), CheckOutDate: MustDate("2024-06-12")}
	assert.Equal(t, 2, b.Nights())
	assert.True(t, b.CoversDay(MustDate("2024-06-11")))
	assert.False(t, b.CoversDay(MustDate("2024-06-12")))
	assert.True(t, b.Overlaps(MustDate("2024-06-11"), MustDate("2024-06-13")))
	assert.False(t, b.Overlaps(MustDate("2024-06-12"), MustDate("2024-06-14")))
}

func TestParseDate(t *testing.T) {
	_, err := ParseDate("10/06/2024")
	assert.Error(t, err)

	d, err := ParseDate("2024-06-10")
	require.NoError(t, err)
	assert.Equal(t, time.UTC, d.Location())
	assert.Equal(t, d, DateOf(time.Date(2024, 6, 10, 23, 59, 0, 0, time.UTC)))
}
