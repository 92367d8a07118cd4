package models

import (
	"encoding/json"
	"testing"
)

func TestParseFinanceCategoryFallsBackToOther(t *testing.T) {
	if got := ParseFinanceCategory("SALARY"); got != FinanceCategorySalary {
		t.Fatalf("expected SALARY, got %s", got)
	}
	if got := ParseFinanceCategory("legacy-tag"); got != FinanceCategoryOther {
		t.Fatalf("unknown tag must map to OTHER, got %s", got)
	}
	if got := ParseFinanceCategory(""); got != FinanceCategoryOther {
		t.Fatalf("empty tag must map to OTHER, got %s", got)
	}
}

func TestBookingStatusIsTerminal(t *testing.T) {
	tests := []struct {
		status   BookingStatus
		terminal bool
	}{
		{BookingStatusPending, false},
		{BookingStatusActive, false},
		{BookingStatusCompleted, true},
		{BookingStatusCancelled, true},
	}
	for _, tc := range tests {
		if got := tc.status.IsTerminal(); got != tc.terminal {
			t.Fatalf("%s: expected terminal=%v, got %v", tc.status, tc.terminal, got)
		}
	}
}

func TestSaleStatusIsTerminal(t *testing.T) {
	if SaleStatusDesigning.IsTerminal() || SaleStatusReady.IsTerminal() {
		t.Fatal("open sale statuses must not be terminal")
	}
	if !SaleStatusDelivered.IsTerminal() || !SaleStatusCancelled.IsTerminal() {
		t.Fatal("delivered and cancelled must be terminal")
	}
}

func TestBookingStatusUnmarshalRejectsUnknown(t *testing.T) {
	var status BookingStatus
	if err := json.Unmarshal([]byte(`"ACTIVE"`), &status); err != nil {
		t.Fatalf("valid status rejected: %v", err)
	}
	if status != BookingStatusActive {
		t.Fatalf("expected ACTIVE, got %s", status)
	}
	if err := json.Unmarshal([]byte(`"RUNNING"`), &status); err == nil {
		t.Fatal("unknown status must be rejected")
	}
	if err := json.Unmarshal([]byte(`7`), &status); err == nil {
		t.Fatal("non-string status must be rejected")
	}
}

func TestDressStatusUnmarshalRejectsUnknown(t *testing.T) {
	var status DressStatus
	if err := json.Unmarshal([]byte(`"ARCHIVED"`), &status); err != nil {
		t.Fatalf("valid status rejected: %v", err)
	}
	if err := json.Unmarshal([]byte(`"MISSING"`), &status); err == nil {
		t.Fatal("unknown dress status must be rejected")
	}
}
