package models

import (
	"testing"
	"time"
)

func bookingFixture(id, dressId int, eventDate string, status BookingStatus) Booking {
	return Booking{
		ID:           id,
		CustomerName: "Customer",
		DressId:      dressId,
		EventDate:    eventDate,
		Status:       status,
	}
}

func TestCheckBookingConflictsWindowBoundary(t *testing.T) {
	tests := []struct {
		name      string
		otherDate string
		conflicts int
	}{
		{"same day", "2026-06-10", 1},
		{"one day apart", "2026-06-11", 1},
		{"exactly window days apart", "2026-06-12", 1},
		{"one past the window", "2026-06-13", 0},
		{"far away", "2026-07-10", 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			bookings := []Booking{bookingFixture(1, 5, tc.otherDate, BookingStatusPending)}
			candidate := ConflictCandidate{DressId: 5, EventDate: "2026-06-10"}
			got := CheckBookingConflicts(candidate, bookings, DefaultConflictWindowDays)
			if len(got) != tc.conflicts {
				t.Fatalf("expected %d conflicts, got %d", tc.conflicts, len(got))
			}
		})
	}
}

func TestCheckBookingConflictsSymmetry(t *testing.T) {
	a := bookingFixture(1, 5, "2026-06-10", BookingStatusPending)
	b := bookingFixture(2, 5, "2026-06-12", BookingStatusActive)

	fromA := CheckBookingConflicts(ConflictCandidate{DressId: 5, EventDate: a.EventDate, ExcludeBookingId: a.ID},
		[]Booking{a, b}, DefaultConflictWindowDays)
	fromB := CheckBookingConflicts(ConflictCandidate{DressId: 5, EventDate: b.EventDate, ExcludeBookingId: b.ID},
		[]Booking{a, b}, DefaultConflictWindowDays)

	if len(fromA) != 1 || fromA[0].BookingId != b.ID {
		t.Fatalf("expected booking %d to conflict with candidate A, got %+v", b.ID, fromA)
	}
	if len(fromB) != 1 || fromB[0].BookingId != a.ID {
		t.Fatalf("expected booking %d to conflict with candidate B, got %+v", a.ID, fromB)
	}
	if fromA[0].DaysApart != fromB[0].DaysApart {
		t.Fatalf("days apart should match both ways, got %d and %d", fromA[0].DaysApart, fromB[0].DaysApart)
	}
}

func TestCheckBookingConflictsSkipsTerminalStatuses(t *testing.T) {
	bookings := []Booking{
		bookingFixture(1, 5, "2026-06-10", BookingStatusCompleted),
		bookingFixture(2, 5, "2026-06-10", BookingStatusCancelled),
		bookingFixture(3, 5, "2026-06-10", BookingStatusActive),
	}
	got := CheckBookingConflicts(ConflictCandidate{DressId: 5, EventDate: "2026-06-10"}, bookings, DefaultConflictWindowDays)
	if len(got) != 1 {
		t.Fatalf("expected only the active booking to conflict, got %d conflicts", len(got))
	}
	if got[0].BookingId != 3 {
		t.Fatalf("expected booking 3, got %d", got[0].BookingId)
	}
}

func TestCheckBookingConflictsIgnoresOtherDresses(t *testing.T) {
	bookings := []Booking{bookingFixture(1, 7, "2026-06-10", BookingStatusPending)}
	got := CheckBookingConflicts(ConflictCandidate{DressId: 5, EventDate: "2026-06-10"}, bookings, DefaultConflictWindowDays)
	if len(got) != 0 {
		t.Fatalf("booking of a different dress must not conflict, got %+v", got)
	}
}

func TestCheckBookingConflictsExcludesSelf(t *testing.T) {
	bookings := []Booking{bookingFixture(9, 5, "2026-06-10", BookingStatusPending)}
	got := CheckBookingConflicts(ConflictCandidate{DressId: 5, EventDate: "2026-06-11", ExcludeBookingId: 9},
		bookings, DefaultConflictWindowDays)
	if len(got) != 0 {
		t.Fatalf("a booking must not conflict with itself, got %+v", got)
	}
}

func TestCheckBookingConflictsSkipsMalformedDates(t *testing.T) {
	bookings := []Booking{
		bookingFixture(1, 5, "June 10th", BookingStatusPending),
		bookingFixture(2, 5, "", BookingStatusPending),
		bookingFixture(3, 5, "2026-06-11", BookingStatusPending),
	}
	got := CheckBookingConflicts(ConflictCandidate{DressId: 5, EventDate: "2026-06-10"}, bookings, DefaultConflictWindowDays)
	if len(got) != 1 || got[0].BookingId != 3 {
		t.Fatalf("malformed dates must be skipped, not treated as conflicts: %+v", got)
	}
}

func TestCheckBookingConflictsMalformedCandidateDate(t *testing.T) {
	bookings := []Booking{bookingFixture(1, 5, "2026-06-10", BookingStatusPending)}
	got := CheckBookingConflicts(ConflictCandidate{DressId: 5, EventDate: "not-a-date"}, bookings, DefaultConflictWindowDays)
	if len(got) != 0 {
		t.Fatalf("unparseable candidate date must yield no conflicts, got %+v", got)
	}
}

func TestDaysApart(t *testing.T) {
	a := time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)
	b := time.Date(2026, 6, 13, 0, 0, 0, 0, time.UTC)
	if got := daysApart(a, b); got != 3 {
		t.Fatalf("expected 3 days, got %d", got)
	}
	if got := daysApart(b, a); got != 3 {
		t.Fatalf("expected symmetric distance 3, got %d", got)
	}
	if got := daysApart(a, a); got != 0 {
		t.Fatalf("expected 0 days for same date, got %d", got)
	}
}
