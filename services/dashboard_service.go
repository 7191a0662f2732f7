package services

import (
	"context"
	"math"
	"time"

	"hotelsite/dto"
	apperrors "hotelsite/errors"
	"hotelsite/models"
	"hotelsite/repository"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const trailingMonths = 6

type DashboardService struct {
	store repository.Store
	cache Cache
	log   zerolog.Logger
}

func NewDashboardService(store repository.Store, cache Cache, log zerolog.Logger) *DashboardService {
	if cache == nil {
		cache = NoopCache{}
	}
	return &DashboardService{store: store, cache: cache, log: log}
}

// ComputeStats summarizes the registry and the ledger as of the given day. Empty data
// yields zero values, never an error.
func (s *DashboardService) ComputeStats(ctx context.Context, asOf time.Time) (*dto.DashboardStats, error) {
	asOf = models.DateOf(asOf)
	key := dashboardKeyPrefix + asOf.Format(models.DateLayout)

	var cached dto.DashboardStats
	if ok, err := s.cache.Get(ctx, key, &cached); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("dashboard cache read failed")
	} else if ok {
		return &cached, nil
	}

	var (
		rooms    []models.Room
		bookings []models.Booking
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rooms, err = s.store.Rooms().List(gctx, repository.RoomFilter{})
		return err
	})
	g.Go(func() error {
		var err error
		bookings, err = s.store.Bookings().List(gctx, repository.BookingFilter{})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, apperrors.Internal("failed to load dashboard data", err)
	}

	stats := computeStats(rooms, bookings, asOf)
	if err := s.cache.Set(ctx, key, stats, dashboardTTL); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("dashboard cache write failed")
	}
	return stats, nil
}

func computeStats(rooms []models.Room, bookings []models.Booking, asOf time.Time) *dto.DashboardStats {
	stats := &dto.DashboardStats{
		AsOf:           asOf.Format(models.DateLayout),
		MonthlyRevenue: monthBuckets(asOf),
	}

	roomIDs := make(map[uint]struct{}, len(rooms))
	for _, r := range rooms {
		roomIDs[r.ID] = struct{}{}
		switch r.RoomType {
		case models.RoomTypeRoom:
			stats.TotalRooms++
		case models.RoomTypeSuite:
			stats.TotalSuites++
		}
		if r.ManualStatus == models.ManualStatusAvailable {
			stats.AvailableCount++
		}
	}

	occupied := make(map[uint]struct{})
	bucketIndex := make(map[string]int, trailingMonths)
	for i, m := range stats.MonthlyRevenue {
		bucketIndex[m.Month] = i
	}
	for i := range bookings {
		b := &bookings[i]
		switch b.Status {
		case models.BookingStatusPending:
			stats.PendingCount++
		case models.BookingStatusConfirmed, models.BookingStatusCheckedIn:
			stats.ConfirmedCount++
		}
		// cancelled bookings are part of the total
		stats.TotalRevenue += b.TotalPrice

		if b.CheckInDate.Equal(asOf) {
			stats.CheckInsToday++
		}
		if b.CheckOutDate.Equal(asOf) {
			stats.CheckOutsToday++
		}
		if _, ok := roomIDs[b.RoomID]; ok && b.Occupying() && b.CoversDay(asOf) {
			occupied[b.RoomID] = struct{}{}
		}
		if idx, ok := bucketIndex[b.CheckInDate.Format("2006-01")]; ok {
			stats.MonthlyRevenue[idx].OrderCount++
			stats.MonthlyRevenue[idx].Revenue += b.TotalPrice
		}
	}

	if len(rooms) > 0 {
		rate := float64(len(occupied)) / float64(len(rooms)) * 100
		stats.OccupancyRate = math.Round(rate*100) / 100
	}
	return stats
}

// monthBuckets returns the trailing calendar months up to asOf's month, oldest first.
func monthBuckets(asOf time.Time) []dto.MonthRevenue {
	first := time.Date(asOf.Year(), asOf.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(trailingMonths - 1), 0)
	buckets := make([]dto.MonthRevenue, 0, trailingMonths)
	for i := 0; i < trailingMonths; i++ {
		m := first.AddDate(0, i, 0)
		buckets = append(buckets, dto.MonthRevenue{
			Month: m.Format("2006-01"),
			Label: m.Format("Jan 2006"),
		})
	}
	return buckets
}
