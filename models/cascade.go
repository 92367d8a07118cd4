package models

import (
	"context"
	"errors"
	"fmt"

	"bitbucket.org/mmdatafocus/bridal_backend/config"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type CascadeKind string

const (
	CascadeKindBooking CascadeKind = "Booking"
	CascadeKindSale    CascadeKind = "SaleOrder"
)

// CascadeReport tells the caller exactly what happened; nothing is rolled
// back because the store has no multi-document transaction to lean on.
type CascadeReport struct {
	PrimaryDeleted      bool  `json:"primary_deleted"`
	DeletedFinanceCount int   `json:"deleted_finance_count"`
	FailedFinanceIds    []int `json:"failed_finance_ids"`
}

// cascadeStore is the store surface the coordinator needs; tests swap in
// fakes.
type cascadeStore interface {
	deletePrimary(ctx context.Context, kind CascadeKind, id int) (bool, error)
	relatedFinance(ctx context.Context, kind CascadeKind, id int) ([]FinanceRecord, error)
	deleteFinance(ctx context.Context, financeId int) error
}

type gormCascadeStore struct {
	db *gorm.DB
}

func (s gormCascadeStore) deletePrimary(ctx context.Context, kind CascadeKind, id int) (bool, error) {
	var primary interface{}
	switch kind {
	case CascadeKindBooking:
		primary = &Booking{ID: id}
	case CascadeKindSale:
		primary = &SaleOrder{ID: id}
	default:
		return false, errors.New("invalid cascade kind")
	}
	result := s.db.WithContext(ctx).Delete(primary)
	return result.RowsAffected > 0, result.Error
}

func (s gormCascadeStore) relatedFinance(ctx context.Context, kind CascadeKind, id int) ([]FinanceRecord, error) {
	var related []FinanceRecord
	err := s.db.WithContext(ctx).
		Where("related_id = ? AND related_type = ?", id, string(kind)).
		Find(&related).Error
	return related, err
}

func (s gormCascadeStore) deleteFinance(ctx context.Context, financeId int) error {
	return s.db.WithContext(ctx).Delete(&FinanceRecord{ID: financeId}).Error
}

// relatedFinanceIds picks the ledger rows referencing the target entity.
func relatedFinanceIds(records []FinanceRecord, kind CascadeKind, targetId int) []int {
	var ids []int
	for _, f := range records {
		if f.RelatedID != nil && *f.RelatedID == targetId && f.RelatedType == string(kind) {
			ids = append(ids, f.ID)
		}
	}
	return ids
}

// runCascadeDelete removes the primary row, then every finance row
// referencing it.
//
// The primary row goes first: if we crash after that, the leftover finance
// rows are unreachable orphans, never a booking pointing at deleted history.
// Each finance delete is independent; one failure does not stop the rest.
// Re-invocation is safe, deleting an absent id is a no-op.
func runCascadeDelete(ctx context.Context, logger *logrus.Logger, store cascadeStore, kind CascadeKind, id int) (*CascadeReport, error) {
	report := &CascadeReport{FailedFinanceIds: []int{}}

	deleted, err := store.deletePrimary(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	report.PrimaryDeleted = deleted

	related, err := store.relatedFinance(ctx, kind, id)
	if err != nil {
		return nil, err
	}

	for _, financeId := range relatedFinanceIds(related, kind, id) {
		if err := store.deleteFinance(ctx, financeId); err != nil {
			config.LogError(logger, "cascade.go", "runCascadeDelete", "delete finance record", financeId, err)
			report.FailedFinanceIds = append(report.FailedFinanceIds, financeId)
			continue
		}
		report.DeletedFinanceCount++
	}
	return report, nil
}

// DeleteWithCascade removes a booking or sale order together with every
// finance record referencing it.
func DeleteWithCascade(ctx context.Context, kind CascadeKind, id int) (*CascadeReport, error) {
	logger := config.GetLogger()
	db := config.GetDB()

	report, err := runCascadeDelete(ctx, logger, gormCascadeStore{db: db}, kind, id)
	if err != nil {
		return nil, err
	}

	details := fmt.Sprintf("%s #%d deleted with %d finance records (%d failed)",
		kind, id, report.DeletedFinanceCount, len(report.FailedFinanceIds))
	if err := WriteAudit(ctx, "cascade-delete", id, string(kind), details); err != nil {
		config.LogError(logger, "cascade.go", "DeleteWithCascade", "write audit entry", id, err)
	}

	return report, nil
}
