package workflow

import (
	"context"
	"fmt"
	"time"

	"bitbucket.org/mmdatafocus/bridal_backend/config"
	"bitbucket.org/mmdatafocus/bridal_backend/models"
	"bitbucket.org/mmdatafocus/bridal_backend/utils"
	"github.com/bsm/redislock"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// CandidateRef identifies one primary entity in a reconciliation report.
type CandidateRef struct {
	Kind models.CascadeKind `json:"kind"`
	ID   int                `json:"id"`
}

type ReconciliationReport struct {
	Created int            `json:"created"`
	Failed  []CandidateRef `json:"failed"`
}

type depositCandidate struct {
	kind   models.CascadeKind
	id     int
	record *models.FinanceRecord
}

// financeCreator is the single write the sweep performs; tests swap in fakes.
type financeCreator interface {
	createFinance(ctx context.Context, record *models.FinanceRecord) error
}

type gormFinanceCreator struct {
	db *gorm.DB
}

func (c gormFinanceCreator) createFinance(ctx context.Context, record *models.FinanceRecord) error {
	return c.db.WithContext(ctx).Create(record).Error
}

func depositRecordFor(kind models.CascadeKind, id int, amount decimal.Decimal, category models.FinanceCategory, createdAt time.Time) *models.FinanceRecord {
	related := id
	return &models.FinanceRecord{
		RecordDate:  createdAt,
		Type:        models.FinanceTypeIncome,
		Category:    category,
		Amount:      amount,
		Notes:       fmt.Sprintf("reconciled deposit for %s #%d", kind, id),
		RelatedID:   &related,
		RelatedType: string(kind),
	}
}

// missingDepositCandidates diffs bookings and sale orders against the
// ledger. Presence is decided on related-id membership alone, mirroring the
// one-deposit-record-per-entity invariant; amounts of existing rows are
// never inspected. Entities without a positive deposit are never candidates.
func missingDepositCandidates(bookings []models.Booking, sales []models.SaleOrder, finance []models.FinanceRecord) []depositCandidate {
	present := make(map[models.CascadeKind]map[int]bool)
	present[models.CascadeKindBooking] = make(map[int]bool)
	present[models.CascadeKindSale] = make(map[int]bool)
	for _, f := range finance {
		if f.RelatedID == nil {
			continue
		}
		if m, ok := present[models.CascadeKind(f.RelatedType)]; ok {
			m[*f.RelatedID] = true
		}
	}

	var candidates []depositCandidate
	for _, b := range bookings {
		if !b.PaidDeposit.IsPositive() {
			continue
		}
		if present[models.CascadeKindBooking][b.ID] {
			continue
		}
		candidates = append(candidates, depositCandidate{
			kind:   models.CascadeKindBooking,
			id:     b.ID,
			record: depositRecordFor(models.CascadeKindBooking, b.ID, b.PaidDeposit, models.FinanceCategoryRentalDeposit, b.CreatedAt),
		})
	}
	for _, s := range sales {
		if !s.Deposit.IsPositive() {
			continue
		}
		if present[models.CascadeKindSale][s.ID] {
			continue
		}
		candidates = append(candidates, depositCandidate{
			kind:   models.CascadeKindSale,
			id:     s.ID,
			record: depositRecordFor(models.CascadeKindSale, s.ID, s.Deposit, models.FinanceCategoryTailoringDeposit, s.CreatedAt),
		})
	}
	return candidates
}

// runReconciliation persists one synthesized income row per candidate. A
// failed persist is reported and the sweep moves on to the next candidate.
func runReconciliation(ctx context.Context, logger *logrus.Logger, bookings []models.Booking, sales []models.SaleOrder, finance []models.FinanceRecord, creator financeCreator) *ReconciliationReport {
	report := &ReconciliationReport{Failed: []CandidateRef{}}
	for _, candidate := range missingDepositCandidates(bookings, sales, finance) {
		if err := creator.createFinance(ctx, candidate.record); err != nil {
			config.LogError(logger, "reconciliationWorkflow.go", "runReconciliation",
				"persist synthesized deposit record", candidate.id, err)
			report.Failed = append(report.Failed, CandidateRef{Kind: candidate.kind, ID: candidate.id})
			continue
		}
		report.Created++
	}
	return report
}

// RunReconciliation sweeps the full snapshot and backfills deposit income
// rows that never made it into the ledger. Idempotent: a second run right
// after the first creates nothing. The redis lock only stops two sweeps from
// doing duplicate work at the same instant; correctness never depends on it.
func RunReconciliation(ctx context.Context) (*ReconciliationReport, error) {
	logger := config.GetLogger()
	db := config.GetDB()

	if locker := config.GetRedisLock(); locker != nil {
		lock, err := locker.Obtain(ctx, "reconciliation-sweep", time.Minute, nil)
		if err == nil {
			defer lock.Release(ctx)
		} else if err == redislock.ErrNotObtained {
			return nil, fmt.Errorf("a reconciliation sweep is already running")
		}
		// any other redis error: proceed without the lock
	}

	bookings, err := utils.FetchAllModels[models.Booking](ctx)
	if err != nil {
		return nil, err
	}
	sales, err := utils.FetchAllModels[models.SaleOrder](ctx)
	if err != nil {
		return nil, err
	}
	finance, err := utils.FetchAllModels[models.FinanceRecord](ctx)
	if err != nil {
		return nil, err
	}

	report := runReconciliation(ctx, logger, bookings, sales, finance, gormFinanceCreator{db: db})

	details := fmt.Sprintf("reconciliation created %d deposit records, %d failed", report.Created, len(report.Failed))
	if err := models.WriteAudit(ctx, "reconcile", 0, "FinanceRecord", details); err != nil {
		config.LogError(logger, "reconciliationWorkflow.go", "RunReconciliation", "write audit entry", nil, err)
	}

	return report, nil
}
