package entity

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestBillingComputeTotal(t *testing.T) {
	b := &Billing{
		ConsultationFee: dec("150.00"),
		TestFees:        dec("80.50"),
		ProcedureFees:   dec("200.00"),
		MedicationFees:  dec("45.25"),
		Tax:             dec("47.58"),
		Discount:        dec("50.00"),
	}

	want := dec("473.33")
	if got := b.ComputeTotal(); !got.Equal(want) {
		t.Errorf("ComputeTotal() = %s, want %s", got, want)
	}
}

func TestBillingApplyPaymentExact(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	b := &Billing{
		TotalAmount: dec("5000"),
		AmountDue:   dec("5000"),
		Status:      BillingStatusUnpaid,
	}

	if err := b.ApplyPayment(dec("5000"), PaymentMethodBankTransfer, now); err != nil {
		t.Fatalf("ApplyPayment() error = %v", err)
	}

	if b.Status != BillingStatusPaid {
		t.Errorf("Status = %q, want %q", b.Status, BillingStatusPaid)
	}
	if !b.AmountDue.IsZero() {
		t.Errorf("AmountDue = %s, want 0", b.AmountDue)
	}
	if b.PaidDate == nil || !b.PaidDate.Equal(now) {
		t.Errorf("PaidDate = %v, want %v", b.PaidDate, now)
	}
	if b.PaymentMethod != PaymentMethodBankTransfer {
		t.Errorf("PaymentMethod = %q, want %q", b.PaymentMethod, PaymentMethodBankTransfer)
	}
}

func TestBillingApplyPaymentPartial(t *testing.T) {
	now := time.Now()
	b := &Billing{
		TotalAmount: dec("5000"),
		AmountDue:   dec("5000"),
		Status:      BillingStatusUnpaid,
	}

	if err := b.ApplyPayment(dec("500"), PaymentMethodCash, now); err != nil {
		t.Fatalf("first ApplyPayment() error = %v", err)
	}

	if b.Status != BillingStatusPartiallyPaid {
		t.Errorf("Status = %q, want %q", b.Status, BillingStatusPartiallyPaid)
	}
	if !b.AmountDue.Equal(dec("4500")) {
		t.Errorf("AmountDue = %s, want 4500", b.AmountDue)
	}
	if b.PaidDate != nil {
		t.Errorf("PaidDate should stay nil until fully paid, got %v", b.PaidDate)
	}

	// Pay off the remainder
	if err := b.ApplyPayment(dec("4500"), PaymentMethodCash, now); err != nil {
		t.Fatalf("second ApplyPayment() error = %v", err)
	}
	if b.Status != BillingStatusPaid {
		t.Errorf("Status after full payment = %q, want %q", b.Status, BillingStatusPaid)
	}
	if !b.AmountPaid.Equal(dec("5000")) {
		t.Errorf("AmountPaid = %s, want 5000", b.AmountPaid)
	}
}

// Two payments that together exceed the total must never both land. The
// payment flow serializes them on a row lock, so the second applies against
// the state the first left behind and gets rejected.
func TestBillingSequentialPaymentsCannotOvershoot(t *testing.T) {
	now := time.Now()
	b := &Billing{
		TotalAmount: dec("5000"),
		AmountDue:   dec("5000"),
		Status:      BillingStatusUnpaid,
	}

	if err := b.ApplyPayment(dec("3000"), PaymentMethodCreditCard, now); err != nil {
		t.Fatalf("first ApplyPayment() error = %v", err)
	}

	err := b.ApplyPayment(dec("3000"), PaymentMethodCreditCard, now)
	if !errors.Is(err, ErrPaymentExceedsTotal) {
		t.Fatalf("second ApplyPayment() error = %v, want %v", err, ErrPaymentExceedsTotal)
	}

	if !b.AmountPaid.Equal(dec("3000")) {
		t.Errorf("AmountPaid = %s, want 3000", b.AmountPaid)
	}
	if !b.AmountPaid.Add(b.AmountDue).Equal(b.TotalAmount) {
		t.Errorf("amount_paid + amount_due = %s, want %s", b.AmountPaid.Add(b.AmountDue), b.TotalAmount)
	}
	if b.Status != BillingStatusPartiallyPaid {
		t.Errorf("Status = %q, want %q", b.Status, BillingStatusPartiallyPaid)
	}
}

func TestBillingApplyPaymentRejections(t *testing.T) {
	tests := []struct {
		name    string
		billing Billing
		amount  decimal.Decimal
		wantErr error
	}{
		{
			name: "overpayment",
			billing: Billing{
				TotalAmount: dec("100"),
				AmountPaid:  dec("50"),
				Status:      BillingStatusPartiallyPaid,
			},
			amount:  dec("51"),
			wantErr: ErrPaymentExceedsTotal,
		},
		{
			name: "zero amount",
			billing: Billing{
				TotalAmount: dec("100"),
				Status:      BillingStatusUnpaid,
			},
			amount:  decimal.Zero,
			wantErr: ErrPaymentNotPositive,
		},
		{
			name: "negative amount",
			billing: Billing{
				TotalAmount: dec("100"),
				Status:      BillingStatusUnpaid,
			},
			amount:  dec("-10"),
			wantErr: ErrPaymentNotPositive,
		},
		{
			name: "already paid",
			billing: Billing{
				TotalAmount: dec("100"),
				AmountPaid:  dec("100"),
				Status:      BillingStatusPaid,
			},
			amount:  dec("10"),
			wantErr: ErrBillingAlreadyPaid,
		},
		{
			name: "cancelled bill",
			billing: Billing{
				TotalAmount: dec("100"),
				Status:      BillingStatusCancelled,
			},
			amount:  dec("10"),
			wantErr: ErrBillingTerminalState,
		},
		{
			name: "refunded bill",
			billing: Billing{
				TotalAmount: dec("100"),
				Status:      BillingStatusRefunded,
			},
			amount:  dec("10"),
			wantErr: ErrBillingTerminalState,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := tt.billing
			before := b.AmountPaid
			err := b.ApplyPayment(tt.amount, PaymentMethodCash, time.Now())
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ApplyPayment() error = %v, want %v", err, tt.wantErr)
			}
			if !b.AmountPaid.Equal(before) {
				t.Errorf("AmountPaid changed on rejected payment: %s -> %s", before, b.AmountPaid)
			}
		})
	}
}

func TestBillingReconcileLeavesTerminalUntouched(t *testing.T) {
	b := &Billing{
		TotalAmount: dec("100"),
		AmountPaid:  dec("100"),
		AmountDue:   dec("0"),
		Status:      BillingStatusRefunded,
	}

	b.Reconcile(time.Now())

	if b.Status != BillingStatusRefunded {
		t.Errorf("Status = %q, want %q", b.Status, BillingStatusRefunded)
	}
}

func TestBillingStatusValid(t *testing.T) {
	if !BillingStatusPartiallyPaid.Valid() {
		t.Error("partially_paid should be valid")
	}
	if BillingStatus("overdue").Valid() {
		t.Error("unknown status should not be valid")
	}
}

func TestPaymentMethodValid(t *testing.T) {
	if !PaymentMethodInsurance.Valid() {
		t.Error("insurance should be valid")
	}
	if PaymentMethod("crypto").Valid() {
		t.Error("unknown method should not be valid")
	}
}
