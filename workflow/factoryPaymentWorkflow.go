package workflow

import (
	"context"
	"fmt"

	"bitbucket.org/mmdatafocus/bridal_backend/config"
	"bitbucket.org/mmdatafocus/bridal_backend/models"
)

type FactoryPaymentReport struct {
	Paid      int   `json:"paid"`
	Skipped   int   `json:"skipped"`
	FailedIds []int `json:"failed_ids"`
}

// PayFactoryBalances settles the outstanding factory balance on each given
// sale order. Orders already paid up are skipped; a failure on one order
// does not stop the rest.
func PayFactoryBalances(ctx context.Context, saleIds []int) (*FactoryPaymentReport, error) {
	logger := config.GetLogger()
	report := &FactoryPaymentReport{FailedIds: []int{}}

	for _, id := range saleIds {
		sale, err := models.GetSaleOrder(ctx, id)
		if err != nil {
			config.LogError(logger, "factoryPaymentWorkflow.go", "PayFactoryBalances", "fetch sale order", id, err)
			report.FailedIds = append(report.FailedIds, id)
			continue
		}
		outstanding := sale.FactoryPrice.Sub(sale.FactoryDepositPaid)
		if !outstanding.IsPositive() {
			report.Skipped++
			continue
		}
		if _, err := models.PayFactory(ctx, id, outstanding); err != nil {
			config.LogError(logger, "factoryPaymentWorkflow.go", "PayFactoryBalances", "pay factory balance", id, err)
			report.FailedIds = append(report.FailedIds, id)
			continue
		}
		report.Paid++
	}

	details := fmt.Sprintf("bulk factory payment: %d paid, %d skipped, %d failed",
		report.Paid, report.Skipped, len(report.FailedIds))
	if err := models.WriteAudit(ctx, "factory-payment-bulk", 0, "SaleOrder", details); err != nil {
		config.LogError(logger, "factoryPaymentWorkflow.go", "PayFactoryBalances", "write audit entry", nil, err)
	}

	return report, nil
}
