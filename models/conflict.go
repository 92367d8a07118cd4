package models

import (
	"context"
	"time"

	"bitbucket.org/mmdatafocus/bridal_backend/config"
	"bitbucket.org/mmdatafocus/bridal_backend/utils"
)

// DefaultConflictWindowDays is the minimum day-gap between two bookings of
// the same physical dress; the buffer covers cleaning and handoff turnaround.
// Kept as a named parameter on CheckBookingConflicts so it can move to
// per-dress configuration without touching the algorithm.
const DefaultConflictWindowDays = 2

type ConflictCandidate struct {
	DressId          int    `json:"dress_id"`
	EventDate        string `json:"event_date"`
	ExcludeBookingId int    `json:"exclude_booking_id"`
}

type Conflict struct {
	BookingId    int           `json:"booking_id"`
	CustomerName string        `json:"customer_name"`
	EventDate    string        `json:"event_date"`
	Status       BookingStatus `json:"status"`
	DaysApart    int           `json:"days_apart"`
}

// CheckBookingConflicts reports every other non-terminal booking of the same
// dress whose event date falls within windowDays of the candidate's. Pure
// function of its inputs: no side effects, never errors. A booking with an
// unparseable event date is logged and skipped, not treated as a conflict.
func CheckBookingConflicts(candidate ConflictCandidate, bookings []Booking, windowDays int) []Conflict {
	logger := config.GetLogger()

	candidateDate, err := utils.ParseBusinessDate(candidate.EventDate)
	if err != nil {
		// Without a usable candidate date no proximity can be computed.
		config.LogWarn(logger, "conflict.go", "CheckBookingConflicts", "parse candidate event date",
			candidate.EventDate, "unparseable event date, skipping conflict check")
		return nil
	}

	conflicts := make([]Conflict, 0)
	for _, b := range bookings {
		if b.DressId != candidate.DressId {
			continue
		}
		if b.Status.IsTerminal() {
			continue
		}
		if candidate.ExcludeBookingId != 0 && b.ID == candidate.ExcludeBookingId {
			continue
		}
		bookingDate, err := utils.ParseBusinessDate(b.EventDate)
		if err != nil {
			config.LogWarn(logger, "conflict.go", "CheckBookingConflicts", "parse booking event date",
				b.ID, "unparseable event date, excluding booking from conflict check")
			continue
		}
		days := daysApart(candidateDate, bookingDate)
		if days <= windowDays {
			conflicts = append(conflicts, Conflict{
				BookingId:    b.ID,
				CustomerName: b.CustomerName,
				EventDate:    b.EventDate,
				Status:       b.Status,
				DaysApart:    days,
			})
		}
	}
	return conflicts
}

// daysApart is the absolute calendar-day distance between two business dates.
func daysApart(a, b time.Time) int {
	d := a.Sub(b)
	if d < 0 {
		d = -d
	}
	return int(d.Hours() / 24)
}

// CheckConflict runs the detector against the current booking snapshot.
// Two operators racing each other may both see no conflict; the store has no
// locking primitive and last write wins (accepted limitation).
func CheckConflict(ctx context.Context, candidate ConflictCandidate) ([]Conflict, error) {
	db := config.GetDB()
	var bookings []Booking
	err := db.WithContext(ctx).
		Where("dress_id = ? AND status IN ?", candidate.DressId,
			[]BookingStatus{BookingStatusPending, BookingStatusActive}).
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return CheckBookingConflicts(candidate, bookings, DefaultConflictWindowDays), nil
}
