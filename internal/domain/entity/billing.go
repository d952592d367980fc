package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BillingStatus represents the payment status of a billing record
type BillingStatus string

const (
	BillingStatusPending       BillingStatus = "pending"
	BillingStatusUnpaid        BillingStatus = "unpaid"
	BillingStatusPartiallyPaid BillingStatus = "partially_paid"
	BillingStatusPaid          BillingStatus = "paid"
	BillingStatusCancelled     BillingStatus = "cancelled"
	BillingStatusRefunded      BillingStatus = "refunded"
)

// PaymentMethod represents how a payment was made
type PaymentMethod string

const (
	PaymentMethodCreditCard   PaymentMethod = "credit_card"
	PaymentMethodDebitCard    PaymentMethod = "debit_card"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodInsurance    PaymentMethod = "insurance"
	PaymentMethodOther        PaymentMethod = "other"
)

// Reconciliation errors raised by the entity itself
var (
	ErrPaymentNotPositive   = errors.New("payment amount must be greater than zero")
	ErrPaymentExceedsTotal  = errors.New("payment amount exceeds remaining balance")
	ErrBillingAlreadyPaid   = errors.New("bill is already paid")
	ErrBillingTerminalState = errors.New("bill is cancelled or refunded")
)

// Billing is a monetary record attached to a patient and optionally one
// appointment. All amounts use decimal arithmetic; the invariant
// total_amount = consultation + test + procedure + medication + tax - discount
// and amount_due = total_amount - amount_paid hold after every mutation.
type Billing struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"patient_id"`
	AppointmentID *uuid.UUID `gorm:"type:uuid;index" json:"appointment_id,omitempty"`

	InvoiceNumber string `gorm:"type:varchar(50);uniqueIndex;not null" json:"invoice_number"`
	Description   string `gorm:"type:varchar(500)" json:"description,omitempty"`

	ConsultationFee decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"consultation_fee"`
	TestFees        decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"test_fees"`
	ProcedureFees   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"procedure_fees"`
	MedicationFees  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"medication_fees"`
	Discount        decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"discount"`
	Tax             decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"tax"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_amount"`

	AmountPaid    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"amount_paid"`
	AmountDue     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount_due"`
	Status        BillingStatus   `gorm:"type:billing_status;not null;default:'unpaid';index" json:"status"`
	PaymentMethod PaymentMethod   `gorm:"type:varchar(20)" json:"payment_method,omitempty"`

	DueDate *time.Time `json:"due_date,omitempty"`
	Notes   string     `gorm:"type:varchar(500)" json:"notes,omitempty"`

	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	PaidDate  *time.Time `json:"paid_date,omitempty"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient     PatientProfile `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Appointment *Appointment   `gorm:"foreignKey:AppointmentID" json:"appointment,omitempty"`
}

func (Billing) TableName() string {
	return "billing"
}

// ComputeTotal derives the total from the itemized fee components
func (b *Billing) ComputeTotal() decimal.Decimal {
	return b.ConsultationFee.
		Add(b.TestFees).
		Add(b.ProcedureFees).
		Add(b.MedicationFees).
		Add(b.Tax).
		Sub(b.Discount)
}

// IsPaid checks if the bill has been fully paid
func (b *Billing) IsPaid() bool {
	return b.Status == BillingStatusPaid
}

// IsUnpaid checks if no payment has been applied yet
func (b *Billing) IsUnpaid() bool {
	return b.Status == BillingStatusUnpaid
}

// IsTerminal checks for the externally-set terminal states
func (b *Billing) IsTerminal() bool {
	return b.Status == BillingStatusCancelled || b.Status == BillingStatusRefunded
}

// ApplyPayment increases amount_paid by amount and recomputes amount_due
// and status. amount_paid is monotonic and never exceeds total_amount.
func (b *Billing) ApplyPayment(amount decimal.Decimal, method PaymentMethod, now time.Time) error {
	if b.IsPaid() {
		return ErrBillingAlreadyPaid
	}
	if b.IsTerminal() {
		return ErrBillingTerminalState
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrPaymentNotPositive
	}

	newPaid := b.AmountPaid.Add(amount)
	if newPaid.GreaterThan(b.TotalAmount) {
		return ErrPaymentExceedsTotal
	}

	b.AmountPaid = newPaid
	b.PaymentMethod = method
	b.Reconcile(now)
	return nil
}

// Reconcile recomputes amount_due and derives the status from amount_paid
// vs total_amount. Terminal cancelled/refunded states are left untouched.
func (b *Billing) Reconcile(now time.Time) {
	if b.IsTerminal() {
		return
	}

	b.AmountDue = b.TotalAmount.Sub(b.AmountPaid)

	switch {
	case b.AmountPaid.IsZero():
		b.Status = BillingStatusUnpaid
	case b.AmountPaid.Equal(b.TotalAmount):
		b.Status = BillingStatusPaid
		if b.PaidDate == nil {
			paidAt := now
			b.PaidDate = &paidAt
		}
	default:
		b.Status = BillingStatusPartiallyPaid
	}
}

// Valid reports whether the status value belongs to the closed set
func (s BillingStatus) Valid() bool {
	switch s {
	case BillingStatusPending,
		BillingStatusUnpaid,
		BillingStatusPartiallyPaid,
		BillingStatusPaid,
		BillingStatusCancelled,
		BillingStatusRefunded:
		return true
	}
	return false
}

// Valid reports whether the payment method belongs to the closed set
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCreditCard,
		PaymentMethodDebitCard,
		PaymentMethodBankTransfer,
		PaymentMethodCash,
		PaymentMethodInsurance,
		PaymentMethodOther:
		return true
	}
	return false
}

// BillingFilter is a domain-level filter for querying billing records
type BillingFilter struct {
	Status BillingStatus
	Offset int
	Limit  int
}
