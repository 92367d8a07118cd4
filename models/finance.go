package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bitbucket.org/mmdatafocus/bridal_backend/config"
	"bitbucket.org/mmdatafocus/bridal_backend/utils"
	"github.com/shopspring/decimal"
)

// FinanceRecord is a cash-basis ledger line. Records are never mutated after
// creation, only deleted (by hand or by a cascade delete).
//
// RelatedID/RelatedType form a weak reference to a Booking or SaleOrder; the
// store does not enforce it, the application does (cascade delete one way,
// reconciliation sweep the other).
type FinanceRecord struct {
	ID          int             `gorm:"primary_key" json:"id"`
	RecordDate  time.Time       `gorm:"not null;index" json:"record_date"`
	Type        FinanceType     `gorm:"size:10;not null" json:"type"`
	Category    FinanceCategory `gorm:"size:30;not null;default:'OTHER'" json:"category"`
	Amount      decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"amount"`
	Notes       string          `gorm:"type:text" json:"notes"`
	RelatedID   *int            `gorm:"index" json:"related_id"`
	RelatedType string          `gorm:"size:20" json:"related_type"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

type NewFinanceRecord struct {
	RecordDate time.Time       `json:"record_date" binding:"required"`
	Type       FinanceType     `json:"type" binding:"required"`
	Category   FinanceCategory `json:"category"`
	Amount     decimal.Decimal `json:"amount"`
	Notes      string          `json:"notes"`
}

const cashSummaryCachePrefix = "cashSummary:"

func CreateFinanceRecord(ctx context.Context, input *NewFinanceRecord) (*FinanceRecord, error) {
	if input.Amount.IsNegative() {
		return nil, errors.New("amount must not be negative")
	}
	category := input.Category
	if category == "" {
		category = FinanceCategoryOther
	}

	record := FinanceRecord{
		RecordDate: input.RecordDate,
		Type:       input.Type,
		Category:   category,
		Amount:     input.Amount,
		Notes:      input.Notes,
	}

	db := config.GetDB()
	tx := db.Begin()
	if err := tx.WithContext(ctx).Create(&record).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := createAuditLog(ctx, tx, "create", record.ID, "FinanceRecord",
		fmt.Sprintf("%s %s %s recorded", record.Type, record.Category, record.Amount)); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	invalidateCashSummary(record.RecordDate)
	return &record, nil
}

func DeleteFinanceRecord(ctx context.Context, id int) error {
	record, err := utils.FetchSingleModel[FinanceRecord](ctx, id)
	if err != nil {
		return err
	}

	db := config.GetDB()
	tx := db.Begin()
	if err := tx.WithContext(ctx).Delete(record).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := createAuditLog(ctx, tx, "delete", record.ID, "FinanceRecord",
		fmt.Sprintf("%s %s %s deleted", record.Type, record.Category, record.Amount)); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit().Error; err != nil {
		return err
	}

	invalidateCashSummary(record.RecordDate)
	return nil
}

func GetFinanceRecord(ctx context.Context, id int) (*FinanceRecord, error) {
	return utils.FetchSingleModel[FinanceRecord](ctx, id)
}

func ListFinanceRecords(ctx context.Context, from *time.Time, to *time.Time, financeType *FinanceType, category *FinanceCategory) ([]FinanceRecord, error) {
	db := config.GetDB()
	dbCtx := db.WithContext(ctx)
	if from != nil && to != nil {
		dbCtx = dbCtx.Where("record_date BETWEEN ? AND ?", *from, *to)
	}
	if financeType != nil && *financeType != "" {
		dbCtx = dbCtx.Where("type = ?", *financeType)
	}
	if category != nil && *category != "" {
		dbCtx = dbCtx.Where("category = ?", *category)
	}
	var records []FinanceRecord
	if err := dbCtx.Order("record_date DESC, id DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

type CashSummary struct {
	Year    int             `json:"year"`
	Month   int             `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}

// MonthlyCashSummary aggregates the ledger for one calendar month. Cached in
// redis for a short TTL; the cache is best effort and invalidated on writes.
func MonthlyCashSummary(ctx context.Context, year int, month int) (*CashSummary, error) {
	cacheKey := fmt.Sprintf("%s%04d-%02d", cashSummaryCachePrefix, year, month)
	var summary CashSummary
	exists, err := config.GetRedisObject(cacheKey, &summary)
	if err == nil && exists {
		return &summary, nil
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	db := config.GetDB()
	type row struct {
		Type  FinanceType
		Total decimal.Decimal
	}
	var rows []row
	err = db.WithContext(ctx).Model(&FinanceRecord{}).
		Select("type, COALESCE(SUM(amount), 0) AS total").
		Where("record_date >= ? AND record_date < ?", start, end).
		Group("type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	summary = CashSummary{Year: year, Month: month, Income: decimal.Zero, Expense: decimal.Zero}
	for _, r := range rows {
		switch r.Type {
		case FinanceTypeIncome:
			summary.Income = r.Total
		case FinanceTypeExpense:
			summary.Expense = r.Total
		}
	}
	summary.Net = summary.Income.Sub(summary.Expense)

	if err := config.SetRedisObject(cacheKey, &summary, 5*time.Minute); err != nil {
		config.LogError(config.GetLogger(), "finance.go", "MonthlyCashSummary", "cache summary", cacheKey, err)
	}
	return &summary, nil
}

func invalidateCashSummary(recordDate time.Time) {
	key := fmt.Sprintf("%s%04d-%02d", cashSummaryCachePrefix, recordDate.Year(), int(recordDate.Month()))
	if err := config.RemoveRedisKey(key); err != nil {
		config.LogError(config.GetLogger(), "finance.go", "invalidateCashSummary", "drop cache key", key, err)
	}
}
