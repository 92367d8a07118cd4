package models

import (
	"context"
	"errors"
	"testing"

	"bitbucket.org/mmdatafocus/bridal_backend/config"
)

func TestRelatedFinanceIds(t *testing.T) {
	ref := func(id int) *int { return &id }
	records := []FinanceRecord{
		{ID: 1, RelatedID: ref(10), RelatedType: "Booking"},
		{ID: 2, RelatedID: ref(10), RelatedType: "SaleOrder"},
		{ID: 3, RelatedID: ref(11), RelatedType: "Booking"},
		{ID: 4, RelatedID: nil, RelatedType: "Booking"},
		{ID: 5, RelatedID: ref(10), RelatedType: "Booking"},
	}

	got := relatedFinanceIds(records, CascadeKindBooking, 10)
	if len(got) != 2 || got[0] != 1 || got[1] != 5 {
		t.Fatalf("expected [1 5], got %v", got)
	}

	got = relatedFinanceIds(records, CascadeKindSale, 10)
	if len(got) != 1 || got[0] != 2 {
		t.Fatalf("expected [2], got %v", got)
	}

	if got := relatedFinanceIds(records, CascadeKindBooking, 99); len(got) != 0 {
		t.Fatalf("expected no matches for unknown id, got %v", got)
	}
}

type fakeCascadeStore struct {
	primaries map[CascadeKind]map[int]bool
	finance   []FinanceRecord
	failIds   map[int]bool
}

func (s *fakeCascadeStore) deletePrimary(_ context.Context, kind CascadeKind, id int) (bool, error) {
	existed := s.primaries[kind][id]
	delete(s.primaries[kind], id)
	return existed, nil
}

func (s *fakeCascadeStore) relatedFinance(_ context.Context, kind CascadeKind, id int) ([]FinanceRecord, error) {
	var related []FinanceRecord
	for _, f := range s.finance {
		if f.RelatedID != nil && *f.RelatedID == id && f.RelatedType == string(kind) {
			related = append(related, f)
		}
	}
	return related, nil
}

func (s *fakeCascadeStore) deleteFinance(_ context.Context, financeId int) error {
	if s.failIds[financeId] {
		return errors.New("store unavailable")
	}
	kept := s.finance[:0]
	for _, f := range s.finance {
		if f.ID != financeId {
			kept = append(kept, f)
		}
	}
	s.finance = kept
	return nil
}

func cascadeFixture() *fakeCascadeStore {
	ref := func(id int) *int { return &id }
	return &fakeCascadeStore{
		primaries: map[CascadeKind]map[int]bool{
			CascadeKindBooking: {10: true},
			CascadeKindSale:    {10: true},
		},
		finance: []FinanceRecord{
			{ID: 1, RelatedID: ref(10), RelatedType: "Booking"},
			{ID: 2, RelatedID: ref(10), RelatedType: "Booking"},
			{ID: 3, RelatedID: ref(10), RelatedType: "SaleOrder"},
		},
	}
}

func TestRunCascadeDeleteCompleteness(t *testing.T) {
	store := cascadeFixture()
	report, err := runCascadeDelete(context.Background(), config.GetLogger(), store, CascadeKindBooking, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !report.PrimaryDeleted {
		t.Fatal("primary must be reported deleted")
	}
	if report.DeletedFinanceCount != 2 || len(report.FailedFinanceIds) != 0 {
		t.Fatalf("expected both booking rows deleted with no failures, got %+v", report)
	}
	// The sale order sharing the numeric id keeps its ledger row.
	if len(store.finance) != 1 || store.finance[0].ID != 3 {
		t.Fatalf("sale-linked row must survive, remaining %+v", store.finance)
	}
}

func TestRunCascadeDeleteIdempotent(t *testing.T) {
	store := cascadeFixture()
	ctx := context.Background()
	logger := config.GetLogger()

	if _, err := runCascadeDelete(ctx, logger, store, CascadeKindBooking, 10); err != nil {
		t.Fatalf("first delete failed: %v", err)
	}
	second, err := runCascadeDelete(ctx, logger, store, CascadeKindBooking, 10)
	if err != nil {
		t.Fatalf("second delete must not error: %v", err)
	}
	if second.PrimaryDeleted {
		t.Fatal("second delete must report the primary as already gone")
	}
	if second.DeletedFinanceCount != 0 || len(second.FailedFinanceIds) != 0 {
		t.Fatalf("second delete must be a no-op, got %+v", second)
	}
}

func TestRunCascadeDeleteContinuesPastFailures(t *testing.T) {
	store := cascadeFixture()
	store.failIds = map[int]bool{1: true}

	report, err := runCascadeDelete(context.Background(), config.GetLogger(), store, CascadeKindBooking, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.DeletedFinanceCount != 1 {
		t.Fatalf("expected the surviving row deleted, got %+v", report)
	}
	if len(report.FailedFinanceIds) != 1 || report.FailedFinanceIds[0] != 1 {
		t.Fatalf("expected finance row 1 in failed list, got %v", report.FailedFinanceIds)
	}
}
