package models

import (
	"time"

	"gorm.io/datatypes"
)

type Room struct {
	ID            uint                        `json:"id" gorm:"primaryKey"`
	Name          string                      `json:"name" gorm:"size:128;not null"`
	RoomNumber    string                      `json:"roomNumber" gorm:"size:32;uniqueIndex;not null"`
	RoomType      RoomType                    `json:"roomType" gorm:"size:16;index;not null"`
	Capacity      int                         `json:"capacity"`
	PricePerNight float64                     `json:"pricePerNight"`
	ManualStatus  ManualStatus                `json:"manualStatus" gorm:"size:16;index;default:available"`
	TakenFrom     *time.Time                  `json:"takenFrom,omitempty" gorm:"type:date"`
	TakenUntil    *time.Time                  `json:"takenUntil,omitempty" gorm:"type:date"`
	Features      datatypes.JSONSlice[string] `json:"features"`
	Description   string                      `json:"description" gorm:"type:text"`
	CreatedAt     time.Time                   `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt     time.Time                   `json:"updatedAt" gorm:"autoUpdateTime"`
}

// TakenWindow returns the effective manual taken window and whether one applies.
// A nil bound is unbounded on that side.
func (r *Room) TakenWindow() (TakenWindow, bool) {
	if r.ManualStatus != ManualStatusTaken {
		return TakenWindow{}, false
	}
	return TakenWindow{From: r.TakenFrom, Until: r.TakenUntil}, true
}

// BlocksRange reports whether the manual override blocks [start, end).
func (r *Room) BlocksRange(start, end time.Time) bool {
	w, ok := r.TakenWindow()
	return ok && w.Overlaps(start, end)
}

// ClearTakenWindow resets the override to available.
func (r *Room) ClearTakenWindow() {
	r.ManualStatus = ManualStatusAvailable
	r.TakenFrom = nil
	r.TakenUntil = nil
}
