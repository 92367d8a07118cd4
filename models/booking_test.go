package models

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestNewBookingRemainingToPay(t *testing.T) {
	input := NewBooking{
		RentalPrice: decimal.RequireFromString("800"),
		PaidDeposit: decimal.RequireFromString("300"),
	}
	if got := input.remainingToPay(); !got.Equal(decimal.RequireFromString("500")) {
		t.Fatalf("expected 500 remaining, got %s", got)
	}

	fullPaid := NewBooking{
		RentalPrice: decimal.RequireFromString("800"),
		PaidDeposit: decimal.RequireFromString("800"),
	}
	if got := fullPaid.remainingToPay(); !got.IsZero() {
		t.Fatalf("expected zero remaining, got %s", got)
	}
}

func TestDepositIncomeRecordLinksEntity(t *testing.T) {
	record := depositIncomeRecord("Booking", 42, decimal.RequireFromString("300"), FinanceCategoryRentalDeposit, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))
	if record.RelatedID == nil || *record.RelatedID != 42 {
		t.Fatalf("expected related id 42, got %v", record.RelatedID)
	}
	if record.RelatedType != "Booking" {
		t.Fatalf("expected related type Booking, got %s", record.RelatedType)
	}
	if record.Type != FinanceTypeIncome {
		t.Fatalf("deposit must be income, got %s", record.Type)
	}
	if record.Category != FinanceCategoryRentalDeposit {
		t.Fatalf("expected rental deposit category, got %s", record.Category)
	}
}

type fakeStateWriter struct {
	bookingStatus map[int]BookingStatus
	dressStatus   map[int]DressStatus
}

func (w *fakeStateWriter) setBookingStatus(_ context.Context, bookingId int, status BookingStatus) error {
	w.bookingStatus[bookingId] = status
	return nil
}

func (w *fakeStateWriter) setDressState(_ context.Context, dressId int, status DressStatus) error {
	w.dressStatus[dressId] = status
	return nil
}

func newFakeStateWriter() *fakeStateWriter {
	return &fakeStateWriter{
		bookingStatus: make(map[int]BookingStatus),
		dressStatus:   make(map[int]DressStatus),
	}
}

func TestCancelActiveBookingReleasesDress(t *testing.T) {
	writer := newFakeStateWriter()
	booking := &Booking{ID: 1, DressId: 5, Status: BookingStatusActive}

	if err := cancelBooking(context.Background(), writer, booking); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := writer.bookingStatus[1]; got != BookingStatusCancelled {
		t.Fatalf("expected booking cancelled, got %s", got)
	}
	if got := writer.dressStatus[5]; got != DressStatusCleaning {
		t.Fatalf("cancelling an active booking must send the dress to cleaning, got %q", got)
	}
}

func TestCancelPendingBookingLeavesDressAlone(t *testing.T) {
	writer := newFakeStateWriter()
	booking := &Booking{ID: 2, DressId: 5, Status: BookingStatusPending}

	if err := cancelBooking(context.Background(), writer, booking); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := writer.bookingStatus[2]; got != BookingStatusCancelled {
		t.Fatalf("expected booking cancelled, got %s", got)
	}
	if len(writer.dressStatus) != 0 {
		t.Fatalf("pending booking never held the dress, got writes %+v", writer.dressStatus)
	}
}
