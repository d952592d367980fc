package repository

import (
	"healthcare-admin-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BillingRepository interface {
	Create(db *gorm.DB, billing *entity.Billing) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Billing, error)
	// FindByIDForUpdate loads the row under SELECT ... FOR UPDATE so a
	// read-modify-write inside a transaction serializes against
	// concurrent writers. Must be called with a transaction handle.
	FindByIDForUpdate(db *gorm.DB, id uuid.UUID) (*entity.Billing, error)
	FindByInvoiceNumber(db *gorm.DB, invoiceNumber string) (*entity.Billing, error)
	FindByPatientID(db *gorm.DB, patientID uuid.UUID, filter *entity.BillingFilter) ([]entity.Billing, error)
	FindAll(db *gorm.DB, filter *entity.BillingFilter) ([]entity.Billing, error)
	Update(db *gorm.DB, billing *entity.Billing) error
	// DeleteIfUnpaid removes a billing record only while its status is
	// unpaid. Returns affected rows.
	DeleteIfUnpaid(db *gorm.DB, id uuid.UUID) (int64, error)
}
