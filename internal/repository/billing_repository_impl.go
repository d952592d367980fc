package repository

import (
	"errors"

	"healthcare-admin-api/internal/domain/entity"
	domainRepo "healthcare-admin-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type billingRepository struct{}

func NewBillingRepository() domainRepo.BillingRepository {
	return &billingRepository{}
}

func (r *billingRepository) Create(db *gorm.DB, billing *entity.Billing) error {
	return db.Create(billing).Error
}

func (r *billingRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Billing, error) {
	var billing entity.Billing
	err := db.Preload("Patient.User").Where("id = ?", id).First(&billing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &billing, nil
}

// FindByIDForUpdate takes a row lock; under READ COMMITTED two concurrent
// payment transactions would otherwise both read the same amount_paid and
// the second write would silently drop the first.
func (r *billingRepository) FindByIDForUpdate(db *gorm.DB, id uuid.UUID) (*entity.Billing, error) {
	var billing entity.Billing
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&billing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &billing, nil
}

func (r *billingRepository) FindByInvoiceNumber(db *gorm.DB, invoiceNumber string) (*entity.Billing, error) {
	var billing entity.Billing
	err := db.Preload("Patient.User").Where("invoice_number = ?", invoiceNumber).First(&billing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &billing, nil
}

func (r *billingRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID, filter *entity.BillingFilter) ([]entity.Billing, error) {
	var records []entity.Billing
	query := db.Where("patient_id = ?", patientID)
	query = applyBillingFilter(query, filter)
	err := query.Order("created_at DESC").Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *billingRepository) FindAll(db *gorm.DB, filter *entity.BillingFilter) ([]entity.Billing, error) {
	var records []entity.Billing
	query := db.Preload("Patient.User")
	query = applyBillingFilter(query, filter)
	err := query.Order("created_at DESC").Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *billingRepository) Update(db *gorm.DB, billing *entity.Billing) error {
	return db.Omit("Patient", "Appointment").Save(billing).Error
}

// DeleteIfUnpaid deletes a billing record ONLY while it is still unpaid.
// Returns affected rows: 0 = record was not unpaid (or absent).
func (r *billingRepository) DeleteIfUnpaid(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.
		Where("id = ? AND status = ?", id, entity.BillingStatusUnpaid).
		Delete(&entity.Billing{})
	return result.RowsAffected, result.Error
}

func applyBillingFilter(query *gorm.DB, filter *entity.BillingFilter) *gorm.DB {
	if filter == nil {
		return query
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	return query
}
