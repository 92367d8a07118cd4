package workflow

import (
	"context"
	"errors"
	"testing"
	"time"

	"bitbucket.org/mmdatafocus/bridal_backend/config"
	"bitbucket.org/mmdatafocus/bridal_backend/models"
	"github.com/shopspring/decimal"
)

type fakeCreator struct {
	created []*models.FinanceRecord
	failIds map[int]bool
}

func (c *fakeCreator) createFinance(_ context.Context, record *models.FinanceRecord) error {
	if record.RelatedID != nil && c.failIds[*record.RelatedID] {
		return errors.New("store unavailable")
	}
	c.created = append(c.created, record)
	return nil
}

func money(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func bookingWithDeposit(id int, deposit string) models.Booking {
	return models.Booking{
		ID:          id,
		PaidDeposit: money(deposit),
		CreatedAt:   time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
	}
}

func saleWithDeposit(id int, deposit string) models.SaleOrder {
	return models.SaleOrder{
		ID:        id,
		Deposit:   money(deposit),
		CreatedAt: time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC),
	}
}

func depositRow(id int, kind string) models.FinanceRecord {
	related := id
	return models.FinanceRecord{
		Type:        models.FinanceTypeIncome,
		Amount:      money("1"),
		RelatedID:   &related,
		RelatedType: kind,
	}
}

func TestMissingDepositCandidatesSelectivity(t *testing.T) {
	bookings := []models.Booking{
		bookingWithDeposit(1, "300"), // covered below
		bookingWithDeposit(2, "200"), // missing
		bookingWithDeposit(3, "0"),   // no deposit, never a candidate
	}
	sales := []models.SaleOrder{
		saleWithDeposit(1, "500"), // same numeric id as booking 1, different kind: missing
		saleWithDeposit(4, "0"),
	}
	finance := []models.FinanceRecord{depositRow(1, "Booking")}

	got := missingDepositCandidates(bookings, sales, finance)
	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(got))
	}
	if got[0].kind != models.CascadeKindBooking || got[0].id != 2 {
		t.Fatalf("expected Booking #2 first, got %s #%d", got[0].kind, got[0].id)
	}
	if got[1].kind != models.CascadeKindSale || got[1].id != 1 {
		t.Fatalf("expected SaleOrder #1 second, got %s #%d", got[1].kind, got[1].id)
	}
	if !got[1].record.Amount.Equal(money("500")) {
		t.Fatalf("synthesized record must carry the sale deposit, got %s", got[1].record.Amount)
	}
}

func TestMissingDepositCandidatesMembershipIgnoresAmount(t *testing.T) {
	bookings := []models.Booking{bookingWithDeposit(1, "300")}
	// Existing row has the wrong amount; membership is decided on the
	// reference alone, so no candidate is produced.
	finance := []models.FinanceRecord{depositRow(1, "Booking")}

	got := missingDepositCandidates(bookings, nil, finance)
	if len(got) != 0 {
		t.Fatalf("existing reference must suppress the candidate regardless of amount, got %d", len(got))
	}
}

func TestRunReconciliationIdempotent(t *testing.T) {
	ctx := context.Background()
	logger := config.GetLogger()
	bookings := []models.Booking{bookingWithDeposit(1, "300"), bookingWithDeposit(2, "200")}
	sales := []models.SaleOrder{saleWithDeposit(3, "500")}

	creator := &fakeCreator{}
	report := runReconciliation(ctx, logger, bookings, sales, nil, creator)
	if report.Created != 3 || len(report.Failed) != 0 {
		t.Fatalf("first sweep: expected 3 created and 0 failed, got %+v", report)
	}

	// Feed the rows the first sweep wrote back in as the ledger snapshot.
	finance := make([]models.FinanceRecord, 0, len(creator.created))
	for _, r := range creator.created {
		finance = append(finance, *r)
	}
	second := runReconciliation(ctx, logger, bookings, sales, finance, creator)
	if second.Created != 0 || len(second.Failed) != 0 {
		t.Fatalf("second sweep must create nothing, got %+v", second)
	}
}

func TestRunReconciliationContinuesPastFailures(t *testing.T) {
	ctx := context.Background()
	logger := config.GetLogger()
	bookings := []models.Booking{
		bookingWithDeposit(1, "300"),
		bookingWithDeposit(2, "200"),
		bookingWithDeposit(3, "100"),
	}

	creator := &fakeCreator{failIds: map[int]bool{2: true}}
	report := runReconciliation(ctx, logger, bookings, nil, nil, creator)
	if report.Created != 2 {
		t.Fatalf("expected 2 created, got %d", report.Created)
	}
	if len(report.Failed) != 1 || report.Failed[0].ID != 2 || report.Failed[0].Kind != models.CascadeKindBooking {
		t.Fatalf("expected Booking #2 in failed list, got %+v", report.Failed)
	}
	if len(creator.created) != 2 {
		t.Fatalf("creator should have persisted 2 records, got %d", len(creator.created))
	}
}

func TestDepositRecordFor(t *testing.T) {
	createdAt := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	record := depositRecordFor(models.CascadeKindSale, 7, money("450"), models.FinanceCategoryTailoringDeposit, createdAt)
	if record.RelatedID == nil || *record.RelatedID != 7 {
		t.Fatalf("expected related id 7, got %v", record.RelatedID)
	}
	if record.RelatedType != "SaleOrder" {
		t.Fatalf("expected SaleOrder reference, got %s", record.RelatedType)
	}
	if record.Type != models.FinanceTypeIncome {
		t.Fatalf("backfilled deposit must be income, got %s", record.Type)
	}
	if !record.RecordDate.Equal(createdAt) {
		t.Fatalf("record date must come from the entity, got %s", record.RecordDate)
	}
}
