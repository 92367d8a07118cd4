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

// SaleOrder is a made-to-order tailoring sale: the bride pays the boutique,
// the boutique pays the factory. Both balances are tracked here; factory
// payments land in the ledger as expenses.
type SaleOrder struct {
	ID                 int             `gorm:"primary_key" json:"id"`
	FactoryCode        string          `gorm:"size:100" json:"factory_code"`
	BrideName          string          `gorm:"size:255;not null" json:"bride_name" binding:"required"`
	BridePhone         string          `gorm:"size:30" json:"bride_phone"`
	SellPrice          decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"sell_price"`
	Deposit            decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"deposit"`
	RemainingFromBride decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"remaining_from_bride"`
	FactoryPrice       decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"factory_price"`
	FactoryDepositPaid decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"factory_deposit_paid"`
	FactoryStatus      FactoryStatus   `gorm:"size:10;not null;default:'UNPAID'" json:"factory_status"`
	Status             SaleStatus      `gorm:"size:20;not null;default:'DESIGNING'" json:"status"`
	Measurements       string          `gorm:"type:text" json:"measurements"`
	CreatedAt          time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewSaleOrder struct {
	FactoryCode        string          `json:"factory_code"`
	BrideName          string          `json:"bride_name" binding:"required"`
	BridePhone         string          `json:"bride_phone"`
	SellPrice          decimal.Decimal `json:"sell_price"`
	Deposit            decimal.Decimal `json:"deposit"`
	FactoryPrice       decimal.Decimal `json:"factory_price"`
	FactoryDepositPaid decimal.Decimal `json:"factory_deposit_paid"`
	Measurements       string          `json:"measurements"`
}

func (input *NewSaleOrder) validate() error {
	if input.SellPrice.IsNegative() || input.Deposit.IsNegative() ||
		input.FactoryPrice.IsNegative() || input.FactoryDepositPaid.IsNegative() {
		return errors.New("prices and deposits must not be negative")
	}
	if input.Deposit.GreaterThan(input.SellPrice) {
		return errors.New("deposit must not exceed sell price")
	}
	if input.FactoryDepositPaid.GreaterThan(input.FactoryPrice) {
		return errors.New("factory deposit must not exceed factory price")
	}
	if input.BridePhone != "" {
		if err := utils.ValidatePhoneNumber(input.BridePhone, utils.CountryCode); err != nil {
			return errors.New("bride phone is not valid")
		}
	}
	return nil
}

func factoryStatusFor(price, paid decimal.Decimal) FactoryStatus {
	switch {
	case paid.IsZero():
		return FactoryStatusUnpaid
	case paid.GreaterThanOrEqual(price):
		return FactoryStatusPaid
	default:
		return FactoryStatusPartial
	}
}

func CreateSaleOrder(ctx context.Context, input *NewSaleOrder) (*SaleOrder, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	sale := SaleOrder{
		FactoryCode:        input.FactoryCode,
		BrideName:          input.BrideName,
		BridePhone:         input.BridePhone,
		SellPrice:          input.SellPrice,
		Deposit:            input.Deposit,
		RemainingFromBride: input.SellPrice.Sub(input.Deposit),
		FactoryPrice:       input.FactoryPrice,
		FactoryDepositPaid: input.FactoryDepositPaid,
		FactoryStatus:      factoryStatusFor(input.FactoryPrice, input.FactoryDepositPaid),
		Status:             SaleStatusDesigning,
		Measurements:       input.Measurements,
	}

	db := config.GetDB()
	tx := db.Begin()
	if err := tx.WithContext(ctx).Create(&sale).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if sale.Deposit.IsPositive() {
		record := depositIncomeRecord("SaleOrder", sale.ID, sale.Deposit, FinanceCategoryTailoringDeposit, time.Now())
		if err := tx.WithContext(ctx).Create(record).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}
	if err := createAuditLog(ctx, tx, "create", sale.ID, "SaleOrder",
		fmt.Sprintf("sale order for %s created", sale.BrideName)); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return &sale, nil
}

func UpdateSaleOrder(ctx context.Context, id int, input *NewSaleOrder) (*SaleOrder, error) {
	sale, err := utils.FetchSingleModel[SaleOrder](ctx, id)
	if err != nil {
		return nil, err
	}
	if sale.Status.IsTerminal() {
		return nil, errors.New("delivered or cancelled sale orders cannot be edited")
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Model(sale).Updates(map[string]interface{}{
		"FactoryCode":        input.FactoryCode,
		"BrideName":          input.BrideName,
		"BridePhone":         input.BridePhone,
		"SellPrice":          input.SellPrice,
		"Deposit":            input.Deposit,
		"RemainingFromBride": input.SellPrice.Sub(input.Deposit),
		"FactoryPrice":       input.FactoryPrice,
		"FactoryDepositPaid": input.FactoryDepositPaid,
		"FactoryStatus":      factoryStatusFor(input.FactoryPrice, input.FactoryDepositPaid),
		"Measurements":       input.Measurements,
	}).Error
	if err != nil {
		return nil, err
	}
	return utils.FetchSingleModel[SaleOrder](ctx, id)
}

func SetSaleStatus(ctx context.Context, id int, status SaleStatus) (*SaleOrder, error) {
	sale, err := utils.FetchSingleModel[SaleOrder](ctx, id)
	if err != nil {
		return nil, err
	}
	if sale.Status.IsTerminal() {
		return nil, errors.New("sale order is already delivered or cancelled")
	}

	db := config.GetDB()
	tx := db.Begin()
	if err := tx.WithContext(ctx).Model(sale).Update("Status", status).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := createAuditLog(ctx, tx, "status", sale.ID, "SaleOrder",
		"sale order status set to "+string(status)); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	sale.Status = status
	return sale, nil
}

// PayFactory records a payment towards the factory balance of one sale
// order: the paid-up amount moves, the factory status advances and an
// expense lands in the ledger, linked to the sale order.
func PayFactory(ctx context.Context, id int, amount decimal.Decimal) (*SaleOrder, error) {
	sale, err := utils.FetchSingleModel[SaleOrder](ctx, id)
	if err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, errors.New("payment amount must be positive")
	}
	outstanding := sale.FactoryPrice.Sub(sale.FactoryDepositPaid)
	if amount.GreaterThan(outstanding) {
		return nil, errors.New("payment exceeds outstanding factory balance")
	}

	paid := sale.FactoryDepositPaid.Add(amount)
	status := factoryStatusFor(sale.FactoryPrice, paid)

	db := config.GetDB()
	tx := db.Begin()
	err = tx.WithContext(ctx).Model(sale).Updates(map[string]interface{}{
		"FactoryDepositPaid": paid,
		"FactoryStatus":      status,
	}).Error
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	related := sale.ID
	record := FinanceRecord{
		RecordDate:  time.Now(),
		Type:        FinanceTypeExpense,
		Category:    FinanceCategoryFactoryPayment,
		Amount:      amount,
		Notes:       fmt.Sprintf("factory payment for SaleOrder #%d (%s)", sale.ID, sale.FactoryCode),
		RelatedID:   &related,
		RelatedType: "SaleOrder",
	}
	if err := tx.WithContext(ctx).Create(&record).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := createAuditLog(ctx, tx, "factory-payment", sale.ID, "SaleOrder",
		fmt.Sprintf("paid %s to factory for sale order #%d", amount, sale.ID)); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	sale.FactoryDepositPaid = paid
	sale.FactoryStatus = status
	return sale, nil
}

func GetSaleOrder(ctx context.Context, id int) (*SaleOrder, error) {
	return utils.FetchSingleModel[SaleOrder](ctx, id)
}

func ListSaleOrders(ctx context.Context, status *SaleStatus, factoryStatus *FactoryStatus, brideName *string) ([]SaleOrder, error) {
	db := config.GetDB()
	dbCtx := db.WithContext(ctx)
	if status != nil && *status != "" {
		dbCtx = dbCtx.Where("status = ?", *status)
	}
	if factoryStatus != nil && *factoryStatus != "" {
		dbCtx = dbCtx.Where("factory_status = ?", *factoryStatus)
	}
	if brideName != nil && *brideName != "" {
		dbCtx = dbCtx.Where("bride_name LIKE ?", "%"+*brideName+"%")
	}
	var sales []SaleOrder
	if err := dbCtx.Order("created_at DESC").Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}
