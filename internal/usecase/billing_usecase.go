package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"healthcare-admin-api/internal/converter"
	"healthcare-admin-api/internal/delivery/dto"
	"healthcare-admin-api/internal/delivery/http/middleware"
	"healthcare-admin-api/internal/domain/entity"
	"healthcare-admin-api/internal/domain/repository"
	"healthcare-admin-api/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrBillingNotFound     = errors.New("billing record not found")
	ErrBillingNotOwned     = errors.New("billing record does not belong to you")
	ErrNegativeAmount      = errors.New("fee amounts must not be negative")
	ErrBillingNotUnpaid    = errors.New("only unpaid billing records can be deleted")
	ErrBillingNotEditable  = errors.New("cancelled or refunded billing records cannot be modified")
	ErrAppointmentMismatch = errors.New("appointment does not belong to the billed patient")
)

// Retries when the generated invoice number collides with an existing one
const invoiceGenerationAttempts = 3

type BillingUsecase interface {
	Create(ctx context.Context, req *dto.CreateBillingRequest) (*dto.BillingResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.BillingResponse, error)
	GetByInvoiceNumber(ctx context.Context, invoiceNumber string) (*dto.BillingResponse, error)
	GetMyBilling(ctx context.Context, filter *entity.BillingFilter) (*dto.BillingListResponse, error)
	GetAll(ctx context.Context, filter *entity.BillingFilter) (*dto.BillingListResponse, error)
	ProcessPayment(ctx context.Context, id uuid.UUID, req *dto.ProcessPaymentRequest) (*dto.BillingResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateBillingRequest) (*dto.BillingResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type billingUsecase struct {
	db                 *gorm.DB
	log                *logrus.Logger
	billingRepo        repository.BillingRepository
	patientProfileRepo repository.PatientProfileRepository
	appointmentRepo    repository.AppointmentRepository
	notificationRepo   repository.NotificationRepository
	auditService       service.AuditService
}

func NewBillingUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	billingRepo repository.BillingRepository,
	patientProfileRepo repository.PatientProfileRepository,
	appointmentRepo repository.AppointmentRepository,
	notificationRepo repository.NotificationRepository,
	auditService service.AuditService,
) BillingUsecase {
	return &billingUsecase{
		db:                 db,
		log:                log,
		billingRepo:        billingRepo,
		patientProfileRepo: patientProfileRepo,
		appointmentRepo:    appointmentRepo,
		notificationRepo:   notificationRepo,
		auditService:       auditService,
	}
}

// Create issues a new bill. The total and amount due are always derived
// from the itemized components, never taken from the request.
func (u *billingUsecase) Create(ctx context.Context, req *dto.CreateBillingRequest) (*dto.BillingResponse, error) {
	callerID, _ := middleware.GetUserIDFromContext(ctx)

	patient, err := u.patientProfileRepo.FindByUserID(u.db.WithContext(ctx), req.PatientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", req.PatientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	if req.AppointmentID != nil {
		appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), *req.AppointmentID)
		if err != nil {
			return nil, err
		}
		if appointment == nil {
			return nil, ErrAppointmentNotFound
		}
		if appointment.PatientID != req.PatientID {
			return nil, ErrAppointmentMismatch
		}
	}

	for _, amount := range []decimal.Decimal{
		req.ConsultationFee, req.TestFees, req.ProcedureFees, req.MedicationFees, req.Discount, req.Tax,
	} {
		if amount.IsNegative() {
			return nil, ErrNegativeAmount
		}
	}

	billing := &entity.Billing{
		PatientID:       req.PatientID,
		AppointmentID:   req.AppointmentID,
		Description:     req.Description,
		ConsultationFee: req.ConsultationFee,
		TestFees:        req.TestFees,
		ProcedureFees:   req.ProcedureFees,
		MedicationFees:  req.MedicationFees,
		Discount:        req.Discount,
		Tax:             req.Tax,
		DueDate:         req.DueDate,
		Notes:           req.Notes,
		Status:          entity.BillingStatusUnpaid,
	}
	billing.TotalAmount = billing.ComputeTotal()
	billing.AmountDue = billing.TotalAmount

	// Retry on the rare invoice number collision; the unique index on
	// invoice_number is the authority
	for attempt := 0; attempt < invoiceGenerationAttempts; attempt++ {
		billing.InvoiceNumber = generateInvoiceNumber(time.Now())

		err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := u.billingRepo.Create(tx, billing); err != nil {
				return err
			}
			return u.auditService.LogCreate(tx, &callerID, entity.AuditActionBillingCreate, "billing", billing.ID.String(), map[string]interface{}{
				"invoice_number": billing.InvoiceNumber,
				"patient_id":     billing.PatientID.String(),
				"total_amount":   billing.TotalAmount.String(),
			})
		})
		if err == nil {
			break
		}
		if !isDuplicateKeyError(err, "invoice_number") {
			u.log.Warnf("Failed to create billing record: %+v", err)
			return nil, err
		}
	}
	if err != nil {
		u.log.Errorf("Failed to generate unique invoice number after %d attempts: %+v", invoiceGenerationAttempts, err)
		return nil, err
	}

	u.notifyPatient(ctx, billing, "New invoice issued",
		fmt.Sprintf("Invoice %s for %s is due", billing.InvoiceNumber, billing.TotalAmount.StringFixed(2)))

	u.log.Infof("Billing created: id=%s, invoice=%s, total=%s", billing.ID, billing.InvoiceNumber, billing.TotalAmount)
	return converter.BillingToResponse(billing), nil
}

func (u *billingUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.BillingResponse, error) {
	billing, err := u.findAuthorized(ctx, id)
	if err != nil {
		return nil, err
	}
	return converter.BillingToResponse(billing), nil
}

// GetByInvoiceNumber looks a bill up by its human-readable invoice number,
// with the same ownership rules as GetByID
func (u *billingUsecase) GetByInvoiceNumber(ctx context.Context, invoiceNumber string) (*dto.BillingResponse, error) {
	callerID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}
	roleID, _ := middleware.GetRoleIDFromContext(ctx)

	billing, err := u.billingRepo.FindByInvoiceNumber(u.db.WithContext(ctx), invoiceNumber)
	if err != nil {
		u.log.Warnf("Failed to find billing by invoice %s: %+v", invoiceNumber, err)
		return nil, err
	}
	if billing == nil {
		return nil, ErrBillingNotFound
	}
	if roleID != entity.RoleIDAdmin && billing.PatientID != callerID {
		return nil, ErrBillingNotOwned
	}

	return converter.BillingToResponse(billing), nil
}

// GetMyBilling returns billing records for the logged-in patient
func (u *billingUsecase) GetMyBilling(ctx context.Context, filter *entity.BillingFilter) (*dto.BillingListResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	records, err := u.billingRepo.FindByPatientID(u.db.WithContext(ctx), userID, filter)
	if err != nil {
		u.log.Warnf("Failed to find billing for patient %s: %+v", userID, err)
		return nil, err
	}

	return &dto.BillingListResponse{
		Records: converter.BillingsToResponses(records),
		Total:   len(records),
	}, nil
}

// GetAll returns all billing records, admin only (enforced at the route)
func (u *billingUsecase) GetAll(ctx context.Context, filter *entity.BillingFilter) (*dto.BillingListResponse, error) {
	records, err := u.billingRepo.FindAll(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to list billing records: %+v", err)
		return nil, err
	}

	return &dto.BillingListResponse{
		Records: converter.BillingsToResponses(records),
		Total:   len(records),
	}, nil
}

// ProcessPayment applies a payment to a bill. The row is read under
// FOR UPDATE inside the transaction, so concurrent payments serialize on
// the row lock and the second one re-reads the updated amount_paid
// instead of overwriting the first.
func (u *billingUsecase) ProcessPayment(ctx context.Context, id uuid.UUID, req *dto.ProcessPaymentRequest) (*dto.BillingResponse, error) {
	callerID, _ := middleware.GetUserIDFromContext(ctx)

	var billing *entity.Billing
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		billing, err = u.billingRepo.FindByIDForUpdate(tx, id)
		if err != nil {
			return err
		}
		if billing == nil {
			return ErrBillingNotFound
		}

		oldStatus := billing.Status
		oldPaid := billing.AmountPaid

		if err := billing.ApplyPayment(req.Amount, entity.PaymentMethod(req.PaymentMethod), time.Now()); err != nil {
			return err
		}

		if err := u.billingRepo.Update(tx, billing); err != nil {
			return err
		}

		return u.auditService.LogUpdate(tx, &callerID, entity.AuditActionBillingPayment, "billing", billing.ID.String(), map[string]interface{}{
			"status":      string(oldStatus),
			"amount_paid": oldPaid.String(),
		}, map[string]interface{}{
			"status":      string(billing.Status),
			"amount_paid": billing.AmountPaid.String(),
			"payment":     req.Amount.String(),
			"method":      req.PaymentMethod,
		})
	})
	if err != nil {
		if errors.Is(err, ErrBillingNotFound) ||
			errors.Is(err, entity.ErrPaymentNotPositive) ||
			errors.Is(err, entity.ErrPaymentExceedsTotal) ||
			errors.Is(err, entity.ErrBillingAlreadyPaid) ||
			errors.Is(err, entity.ErrBillingTerminalState) {
			return nil, err
		}
		u.log.Warnf("Failed to process payment for billing %s: %+v", id, err)
		return nil, err
	}

	if billing.IsPaid() {
		u.notifyPatient(ctx, billing, "Invoice paid",
			fmt.Sprintf("Invoice %s has been paid in full", billing.InvoiceNumber))
	}

	u.log.Infof("Payment processed: billing=%s, amount=%s, status=%s", id, req.Amount, billing.Status)
	return converter.BillingToResponse(billing), nil
}

// Update modifies descriptive fields and administrative status changes.
// Fee components are immutable after issue; a wrong bill gets cancelled
// and reissued.
func (u *billingUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateBillingRequest) (*dto.BillingResponse, error) {
	callerID, _ := middleware.GetUserIDFromContext(ctx)

	billing, err := u.billingRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find billing %s: %+v", id, err)
		return nil, err
	}
	if billing == nil {
		return nil, ErrBillingNotFound
	}
	if billing.IsTerminal() {
		return nil, ErrBillingNotEditable
	}

	oldSnapshot := map[string]interface{}{
		"status":      string(billing.Status),
		"description": billing.Description,
	}

	if req.Description != "" {
		billing.Description = req.Description
	}
	if req.Notes != "" {
		billing.Notes = req.Notes
	}
	if req.DueDate != nil {
		billing.DueDate = req.DueDate
	}
	if req.Status != "" {
		next := entity.BillingStatus(req.Status)
		// Only the terminal administrative states may be set directly;
		// payment states are derived from amounts
		if next != entity.BillingStatusCancelled && next != entity.BillingStatusRefunded {
			return nil, ErrBillingNotEditable
		}
		billing.Status = next
	}

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.billingRepo.Update(tx, billing); err != nil {
			return err
		}
		return u.auditService.LogUpdate(tx, &callerID, entity.AuditActionBillingUpdate, "billing", billing.ID.String(), oldSnapshot, map[string]interface{}{
			"status":      string(billing.Status),
			"description": billing.Description,
		})
	})
	if err != nil {
		u.log.Warnf("Failed to update billing %s: %+v", id, err)
		return nil, err
	}

	return converter.BillingToResponse(billing), nil
}

// Delete removes a billing record. Only records with no payments applied
// can be removed; the conditional SQL delete enforces this atomically.
func (u *billingUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	callerID, _ := middleware.GetUserIDFromContext(ctx)

	billing, err := u.billingRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find billing %s: %+v", id, err)
		return err
	}
	if billing == nil {
		return ErrBillingNotFound
	}

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		affected, err := u.billingRepo.DeleteIfUnpaid(tx, id)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrBillingNotUnpaid
		}

		return u.auditService.LogDelete(tx, &callerID, entity.AuditActionBillingDelete, "billing", id.String(), map[string]interface{}{
			"invoice_number": billing.InvoiceNumber,
			"status":         string(billing.Status),
		})
	})
	if err != nil {
		if errors.Is(err, ErrBillingNotUnpaid) {
			return err
		}
		u.log.Warnf("Failed to delete billing %s: %+v", id, err)
		return err
	}

	return nil
}

// findAuthorized loads a billing record and verifies the caller may see it.
// Admins see everything, patients only their own bills.
func (u *billingUsecase) findAuthorized(ctx context.Context, id uuid.UUID) (*entity.Billing, error) {
	callerID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}
	roleID, _ := middleware.GetRoleIDFromContext(ctx)

	billing, err := u.billingRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find billing %s: %+v", id, err)
		return nil, err
	}
	if billing == nil {
		return nil, ErrBillingNotFound
	}

	if roleID != entity.RoleIDAdmin && billing.PatientID != callerID {
		return nil, ErrBillingNotOwned
	}

	return billing, nil
}

func (u *billingUsecase) notifyPatient(ctx context.Context, billing *entity.Billing, title, message string) {
	notification := &entity.Notification{
		UserID:            billing.PatientID,
		Type:              entity.NotificationTypeBillingAlert,
		Title:             title,
		Message:           message,
		Channel:           entity.NotificationChannelInApp,
		RelatedEntityType: "billing",
		RelatedEntityID:   billing.ID.String(),
	}
	if err := u.notificationRepo.Create(u.db.WithContext(ctx), notification); err != nil {
		u.log.Warnf("Failed to create billing notification for patient %s: %+v", billing.PatientID, err)
	}
}

// generateInvoiceNumber generates an invoice number: INV-YYYYMMDD-XXXXXXXX
func generateInvoiceNumber(now time.Time) string {
	dateStr := now.Format("20060102")
	randomBytes := make([]byte, 4)
	rand.Read(randomBytes)
	return fmt.Sprintf("INV-%s-%08X", dateStr, randomBytes)
}
