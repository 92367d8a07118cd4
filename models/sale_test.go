package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFactoryStatusFor(t *testing.T) {
	tests := []struct {
		name   string
		price  string
		paid   string
		expect FactoryStatus
	}{
		{"nothing paid", "500", "0", FactoryStatusUnpaid},
		{"part paid", "500", "200", FactoryStatusPartial},
		{"fully paid", "500", "500", FactoryStatusPaid},
		{"overpaid still paid", "500", "600", FactoryStatusPaid},
		{"zero price zero paid", "0", "0", FactoryStatusUnpaid},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			price := decimal.RequireFromString(tc.price)
			paid := decimal.RequireFromString(tc.paid)
			if got := factoryStatusFor(price, paid); got != tc.expect {
				t.Fatalf("expected %s, got %s", tc.expect, got)
			}
		})
	}
}

func TestNewSaleOrderValidate(t *testing.T) {
	base := NewSaleOrder{
		BrideName:          "Thiri",
		SellPrice:          decimal.RequireFromString("1000"),
		Deposit:            decimal.RequireFromString("300"),
		FactoryPrice:       decimal.RequireFromString("400"),
		FactoryDepositPaid: decimal.RequireFromString("100"),
	}
	if err := base.validate(); err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}

	depositTooHigh := base
	depositTooHigh.Deposit = decimal.RequireFromString("1500")
	if err := depositTooHigh.validate(); err == nil {
		t.Fatal("deposit above sell price must be rejected")
	}

	negative := base
	negative.FactoryPrice = decimal.RequireFromString("-1")
	if err := negative.validate(); err == nil {
		t.Fatal("negative factory price must be rejected")
	}

	factoryOverpaid := base
	factoryOverpaid.FactoryDepositPaid = decimal.RequireFromString("500")
	if err := factoryOverpaid.validate(); err == nil {
		t.Fatal("factory deposit above factory price must be rejected")
	}
}
