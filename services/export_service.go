package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"hotelsite/dto"
	apperrors "hotelsite/errors"
	"hotelsite/models"
	"hotelsite/repository"

	"github.com/xuri/excelize/v2"
)

const (
	bookingsSheet = "Bookings"
	summarySheet  = "Summary"
)

var bookingColumns = []string{"ID", "Room", "Room number", "Guest", "Email", "Phone", "Check-in", "Check-out", "Nights", "Status", "Total"}

// ExportService renders the ledger and the dashboard summary as an xlsx workbook.
type ExportService struct {
	store     repository.Store
	bookings  *BookingService
	dashboard *DashboardService
}

func NewExportService(store repository.Store, bookings *BookingService, dashboard *DashboardService) *ExportService {
	return &ExportService{store: store, bookings: bookings, dashboard: dashboard}
}

func (s *ExportService) ExportBookings(ctx context.Context, w io.Writer, filter BookingListFilter, asOf time.Time) error {
	bookings, err := s.bookings.ListBookings(ctx, filter)
	if err != nil {
		return err
	}
	stats, err := s.dashboard.ComputeStats(ctx, asOf)
	if err != nil {
		return err
	}
	rooms, err := s.store.Rooms().List(ctx, repository.RoomFilter{})
	if err != nil {
		return apperrors.Internal("failed to load rooms", err)
	}
	byID := make(map[uint]models.Room, len(rooms))
	for _, r := range rooms {
		byID[r.ID] = r
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", bookingsSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := writeRow(f, bookingsSheet, 1, toCells(bookingColumns)); err != nil {
		return err
	}
	for i, b := range bookings {
		roomName, roomNumber := "(deleted)", ""
		if r, ok := byID[b.RoomID]; ok {
			roomName, roomNumber = r.Name, r.RoomNumber
		}
		row := []interface{}{
			b.ID, roomName, roomNumber, b.GuestName, b.GuestEmail, b.GuestPhone,
			b.CheckInDate.Format(models.DateLayout), b.CheckOutDate.Format(models.DateLayout),
			b.Nights(), string(b.Status), b.TotalPrice,
		}
		if err := writeRow(f, bookingsSheet, i+2, row); err != nil {
			return err
		}
	}
	if err := boldRow(f, bookingsSheet, len(bookingColumns)); err != nil {
		return err
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", summarySheet, err)
	}
	if err := writeSummary(f, stats); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSummary(f *excelize.File, stats *dto.DashboardStats) error {
	rows := [][]interface{}{
		{"Metric", "Value"},
		{"As of", stats.AsOf},
		{"Rooms", stats.TotalRooms},
		{"Suites", stats.TotalSuites},
		{"Available (flag)", stats.AvailableCount},
		{"Pending bookings", stats.PendingCount},
		{"Confirmed bookings", stats.ConfirmedCount},
		{"Total revenue", stats.TotalRevenue},
		{"Check-ins today", stats.CheckInsToday},
		{"Check-outs today", stats.CheckOutsToday},
		{"Occupancy %", stats.OccupancyRate},
		{},
		{"Month", "Bookings", "Revenue"},
	}
	for _, m := range stats.MonthlyRevenue {
		rows = append(rows, []interface{}{m.Label, m.OrderCount, m.Revenue})
	}
	for i, row := range rows {
		if err := writeRow(f, summarySheet, i+1, row); err != nil {
			return err
		}
	}
	return boldRow(f, summarySheet, 2)
}

func writeRow(f *excelize.File, sheet string, rowNum int, values []interface{}) error {
	for i, val := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, rowNum)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, val); err != nil {
			return err
		}
	}
	return nil
}

// boldRow styles the header row.
func boldRow(f *excelize.File, sheet string, columns int) error {
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	startCell, _ := excelize.CoordinatesToCellName(1, 1)
	endCell, _ := excelize.CoordinatesToCellName(columns, 1)
	return f.SetCellStyle(sheet, startCell, endCell, style)
}

func toCells(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
