package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateBillingRequest struct {
	PatientID       uuid.UUID       `json:"patient_id" validate:"required"`
	AppointmentID   *uuid.UUID      `json:"appointment_id" validate:"omitempty"`
	Description     string          `json:"description" validate:"omitempty,max=500"`
	ConsultationFee decimal.Decimal `json:"consultation_fee"`
	TestFees        decimal.Decimal `json:"test_fees"`
	ProcedureFees   decimal.Decimal `json:"procedure_fees"`
	MedicationFees  decimal.Decimal `json:"medication_fees"`
	Discount        decimal.Decimal `json:"discount"`
	Tax             decimal.Decimal `json:"tax"`
	DueDate         *time.Time      `json:"due_date" validate:"omitempty"`
	Notes           string          `json:"notes" validate:"omitempty,max=500"`
}

type UpdateBillingRequest struct {
	Description string     `json:"description" validate:"omitempty,max=500"`
	Status      string     `json:"status" validate:"omitempty,oneof=pending unpaid partially_paid paid cancelled refunded"`
	DueDate     *time.Time `json:"due_date" validate:"omitempty"`
	Notes       string     `json:"notes" validate:"omitempty,max=500"`
}

type ProcessPaymentRequest struct {
	Amount        decimal.Decimal `json:"amount" validate:"required"`
	PaymentMethod string          `json:"payment_method" validate:"required,oneof=credit_card debit_card bank_transfer cash insurance other"`
}

// Response DTOs

type BillingResponse struct {
	ID              uuid.UUID       `json:"id"`
	PatientID       uuid.UUID       `json:"patient_id"`
	AppointmentID   *uuid.UUID      `json:"appointment_id,omitempty"`
	InvoiceNumber   string          `json:"invoice_number"`
	Description     string          `json:"description,omitempty"`
	ConsultationFee decimal.Decimal `json:"consultation_fee"`
	TestFees        decimal.Decimal `json:"test_fees"`
	ProcedureFees   decimal.Decimal `json:"procedure_fees"`
	MedicationFees  decimal.Decimal `json:"medication_fees"`
	Discount        decimal.Decimal `json:"discount"`
	Tax             decimal.Decimal `json:"tax"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	AmountPaid      decimal.Decimal `json:"amount_paid"`
	AmountDue       decimal.Decimal `json:"amount_due"`
	Status          string          `json:"status"`
	PaymentMethod   string          `json:"payment_method,omitempty"`
	DueDate         *time.Time      `json:"due_date,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	Patient         *ProfileSummary `json:"patient,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	PaidDate        *time.Time      `json:"paid_date,omitempty"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type BillingListResponse struct {
	Records []BillingResponse `json:"records"`
	Total   int               `json:"total"`
}
