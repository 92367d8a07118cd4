package models

import (
	"encoding/json"
	"errors"
)

type DressStatus string

const (
	DressStatusAvailable DressStatus = "AVAILABLE"
	DressStatusRented    DressStatus = "RENTED"
	DressStatusCleaning  DressStatus = "CLEANING"
	DressStatusSold      DressStatus = "SOLD"
	DressStatusArchived  DressStatus = "ARCHIVED"
)

func (t *DressStatus) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return errors.New("dress status must be string")
	}
	switch str {
	case "AVAILABLE":
		*t = DressStatusAvailable
	case "RENTED":
		*t = DressStatusRented
	case "CLEANING":
		*t = DressStatusCleaning
	case "SOLD":
		*t = DressStatusSold
	case "ARCHIVED":
		*t = DressStatusArchived
	default:
		return errors.New("invalid dress status")
	}
	return nil
}

type DressKind string

const (
	DressKindRent DressKind = "RENT"
	DressKindSale DressKind = "SALE"
)

func (t *DressKind) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return errors.New("dress kind must be string")
	}
	switch str {
	case "RENT":
		*t = DressKindRent
	case "SALE":
		*t = DressKindSale
	default:
		return errors.New("invalid dress kind")
	}
	return nil
}

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusActive    BookingStatus = "ACTIVE"
	BookingStatusCompleted BookingStatus = "COMPLETED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

// Terminal bookings never participate in conflict checks and no longer
// hold the dress.
func (t BookingStatus) IsTerminal() bool {
	return t == BookingStatusCompleted || t == BookingStatusCancelled
}

func (t *BookingStatus) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return errors.New("booking status must be string")
	}
	switch str {
	case "PENDING":
		*t = BookingStatusPending
	case "ACTIVE":
		*t = BookingStatusActive
	case "COMPLETED":
		*t = BookingStatusCompleted
	case "CANCELLED":
		*t = BookingStatusCancelled
	default:
		return errors.New("invalid booking status")
	}
	return nil
}

type SaleStatus string

const (
	SaleStatusDesigning SaleStatus = "DESIGNING"
	SaleStatusReady     SaleStatus = "READY"
	SaleStatusDelivered SaleStatus = "DELIVERED"
	SaleStatusCancelled SaleStatus = "CANCELLED"
)

func (t SaleStatus) IsTerminal() bool {
	return t == SaleStatusDelivered || t == SaleStatusCancelled
}

func (t *SaleStatus) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return errors.New("sale status must be string")
	}
	switch str {
	case "DESIGNING":
		*t = SaleStatusDesigning
	case "READY":
		*t = SaleStatusReady
	case "DELIVERED":
		*t = SaleStatusDelivered
	case "CANCELLED":
		*t = SaleStatusCancelled
	default:
		return errors.New("invalid sale status")
	}
	return nil
}

type FactoryStatus string

const (
	FactoryStatusUnpaid  FactoryStatus = "UNPAID"
	FactoryStatusPartial FactoryStatus = "PARTIAL"
	FactoryStatusPaid    FactoryStatus = "PAID"
)

func (t *FactoryStatus) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return errors.New("factory status must be string")
	}
	switch str {
	case "UNPAID":
		*t = FactoryStatusUnpaid
	case "PARTIAL":
		*t = FactoryStatusPartial
	case "PAID":
		*t = FactoryStatusPaid
	default:
		return errors.New("invalid factory status")
	}
	return nil
}

type FinanceType string

const (
	FinanceTypeIncome  FinanceType = "INCOME"
	FinanceTypeExpense FinanceType = "EXPENSE"
)

func (t *FinanceType) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return errors.New("finance type must be string")
	}
	switch str {
	case "INCOME":
		*t = FinanceTypeIncome
	case "EXPENSE":
		*t = FinanceTypeExpense
	default:
		return errors.New("invalid finance type")
	}
	return nil
}

// FinanceCategory comes from a fixed vocabulary in the ledger UI. Unknown
// tags map to OTHER instead of failing, so old ledger rows keep loading.
type FinanceCategory string

const (
	FinanceCategoryRentalDeposit    FinanceCategory = "RENTAL_DEPOSIT"
	FinanceCategoryRentalBalance    FinanceCategory = "RENTAL_BALANCE"
	FinanceCategoryTailoringDeposit FinanceCategory = "TAILORING_DEPOSIT"
	FinanceCategoryTailoringBalance FinanceCategory = "TAILORING_BALANCE"
	FinanceCategoryFactoryPayment   FinanceCategory = "FACTORY_PAYMENT"
	FinanceCategoryDamageFee        FinanceCategory = "DAMAGE_FEE"
	FinanceCategorySalary           FinanceCategory = "SALARY"
	FinanceCategoryShopRent         FinanceCategory = "SHOP_RENT"
	FinanceCategoryUtilities        FinanceCategory = "UTILITIES"
	FinanceCategoryOther            FinanceCategory = "OTHER"
)

func ParseFinanceCategory(s string) FinanceCategory {
	categories := map[string]FinanceCategory{
		"RENTAL_DEPOSIT":    FinanceCategoryRentalDeposit,
		"RENTAL_BALANCE":    FinanceCategoryRentalBalance,
		"TAILORING_DEPOSIT": FinanceCategoryTailoringDeposit,
		"TAILORING_BALANCE": FinanceCategoryTailoringBalance,
		"FACTORY_PAYMENT":   FinanceCategoryFactoryPayment,
		"DAMAGE_FEE":        FinanceCategoryDamageFee,
		"SALARY":            FinanceCategorySalary,
		"SHOP_RENT":         FinanceCategoryShopRent,
		"UTILITIES":         FinanceCategoryUtilities,
		"OTHER":             FinanceCategoryOther,
	}
	category, ok := categories[s]
	if !ok {
		return FinanceCategoryOther
	}
	return category
}

func (t *FinanceCategory) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return errors.New("finance category must be string")
	}
	*t = ParseFinanceCategory(str)
	return nil
}
